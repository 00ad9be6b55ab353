package main

import (
	"fmt"
	"strings"

	"bitsense/internal/bits"
	"bitsense/internal/round"

	"github.com/spf13/cobra"
)

var convertFrom string

// convertCmd converts a single value between bases
var convertCmd = &cobra.Command{
	Use:   "convert <value>",
	Short: "Convert a value between binary and hex",
	Long: `Shows a value in binary, hex and decimal.

The input base is taken from --from, or guessed: a 0x prefix or any digit
other than 0/1 means hex, everything else is binary. A 0b prefix must be
followed by binary digits only.

Examples:
  bitsense convert 10101011
  bitsense convert 0xdead
  bitsense convert --from hex 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "Input base: bin or hex (default: guess)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := strings.Join(args, "")

	base, err := resolveBase(convertFrom, input)
	if err != nil {
		return err
	}

	var (
		value  uint64
		digits int
		width  int
	)
	if base == round.Binary {
		value, digits, err = bits.ParseBinary(input)
		width = roundUpNibble(digits)
	} else {
		value, digits, err = bits.ParseHex(input)
		width = digits * bits.NibbleWidth
	}
	if err != nil {
		return fmt.Errorf("cannot parse %q as %s: %w", input, base, err)
	}
	if width > bits.MaxWidth {
		return fmt.Errorf("%q is wider than %d bits", input, bits.MaxWidth)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "BIN  %s\n", bits.Group(bits.FormatBinary(value, width), bits.NibbleWidth))
	fmt.Fprintf(out, "HEX  %s\n", bits.FormatHex(value, width))
	fmt.Fprintf(out, "DEC  %d\n", value)
	fmt.Fprintf(out, "     %d bits\n", width)
	return nil
}

func resolveBase(from, input string) (round.Base, error) {
	switch strings.ToLower(from) {
	case "bin", "binary", "b":
		return round.Binary, nil
	case "hex", "h", "x":
		return round.Hex, nil
	case "":
	default:
		return 0, fmt.Errorf("unknown base %q (valid: bin, hex)", from)
	}

	s := strings.ToLower(bits.Compact(input))
	if strings.HasPrefix(s, "0x") {
		return round.Hex, nil
	}
	prefixed := strings.HasPrefix(s, "0b")
	s = strings.TrimPrefix(s, "0b")
	for _, r := range s {
		if !bits.IsBinaryDigit(r) {
			if prefixed {
				return 0, fmt.Errorf("%q has a 0b prefix but %q is not a binary digit", input, r)
			}
			return round.Hex, nil
		}
	}
	return round.Binary, nil
}

func roundUpNibble(n int) int {
	return (n + bits.NibbleWidth - 1) / bits.NibbleWidth * bits.NibbleWidth
}
