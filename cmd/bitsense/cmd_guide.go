package main

import (
	"fmt"
	"strings"

	"bitsense/internal/bits"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var guidePlain bool

// guideCmd prints the nibble cheat sheet
var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the nibble cheat sheet",
	Args:  cobra.NoArgs,
	RunE:  runGuide,
}

func init() {
	guideCmd.Flags().BoolVar(&guidePlain, "plain", false, "Print raw markdown")
}

// guideMarkdown builds the cheat sheet. Every hex digit is one nibble, so
// converting is a table lookup per group of four bits.
func guideMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# Binary ↔ Hex\n\n")
	sb.WriteString("One hex digit is exactly four bits (a *nibble*). Convert one group at a time:\n\n")
	sb.WriteString("| Hex | Binary | Dec |\n|:---:|:------:|----:|\n")
	for v := uint64(0); v < 16; v++ {
		fmt.Fprintf(&sb, "| `%s` | `%s` | %d |\n", bits.FormatHex(v, bits.NibbleWidth), bits.FormatBinary(v, bits.NibbleWidth), v)
	}
	sb.WriteString("\n## Tips\n\n")
	sb.WriteString("- Group binary from the **right**: `101011` is `10 1011`, i.e. `2b`.\n")
	sb.WriteString("- Bit weights inside a nibble are `8 4 2 1`.\n")
	sb.WriteString("- `8` is `1000`, `f` is `1111`; everything else sits in between.\n")
	sb.WriteString("- Answers may include spaces and a `0x`/`0b` prefix; case does not matter.\n")
	return sb.String()
}

func runGuide(cmd *cobra.Command, args []string) error {
	md := guideMarkdown()
	out := cmd.OutOrStdout()
	if guidePlain {
		fmt.Fprint(out, md)
		return nil
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render guide: %w", err)
	}
	fmt.Fprint(out, rendered)
	return nil
}
