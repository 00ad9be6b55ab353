// Package bits encodes and parses fixed-width binary and hexadecimal strings.
//
// Encoders always zero-pad: binary to exactly width characters, hex to width/4
// lowercase characters. Parsers are lenient about presentation (whitespace, an
// optional 0b/0x prefix, hex case) but strict about digits.
package bits

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// MaxWidth is the widest value the codec handles (values are uint64).
const MaxWidth = 64

// NibbleWidth is the number of bits per hex digit.
const NibbleWidth = 4

var (
	// ErrEmpty is returned when the input holds no digits.
	ErrEmpty = errors.New("no digits")
	// ErrInvalidDigit is returned for characters outside the base's alphabet.
	ErrInvalidDigit = errors.New("invalid digit")
	// ErrOverflow is returned when the value does not fit in 64 bits.
	ErrOverflow = errors.New("value exceeds 64 bits")
)

// FormatBinary renders v as exactly width binary digits.
// Bits above width are discarded.
func FormatBinary(v uint64, width int) string {
	return pad(strconv.FormatUint(v&Mask(width), 2), width)
}

// FormatHex renders v as exactly width/4 lowercase hex digits.
func FormatHex(v uint64, width int) string {
	return pad(strconv.FormatUint(v&Mask(width), 16), HexDigits(width))
}

// HexDigits returns the number of hex digits needed for width bits.
func HexDigits(width int) int {
	return (width + NibbleWidth - 1) / NibbleWidth
}

// Mask returns a mask with the low width bits set.
func Mask(width int) uint64 {
	if width >= MaxWidth {
		return ^uint64(0)
	}
	if width <= 0 {
		return 0
	}
	return (uint64(1) << uint(width)) - 1
}

// Group splits s into groups of n characters separated by single spaces,
// aligned from the right so "101010" grouped by 4 reads "10 1010".
func Group(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	var sb strings.Builder
	lead := len(s) % n
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += n {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s[i : i+n])
	}
	return sb.String()
}

// Compact removes all whitespace from s.
func Compact(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// ParseBinary parses a binary string such as "1010 1011" or "0b1010".
// It returns the value and the number of digits read.
func ParseBinary(s string) (uint64, int, error) {
	digits := trimPrefix(strings.ToLower(Compact(s)), "0b")
	if digits == "" {
		return 0, 0, ErrEmpty
	}
	for _, r := range digits {
		if r != '0' && r != '1' {
			return 0, 0, fmt.Errorf("%w %q in binary input", ErrInvalidDigit, r)
		}
	}
	v, err := strconv.ParseUint(digits, 2, 64)
	if err != nil {
		return 0, 0, ErrOverflow
	}
	return v, len(digits), nil
}

// ParseHex parses a hex string such as "AB", "0xab" or "de ad".
// It returns the value and the number of digits read.
func ParseHex(s string) (uint64, int, error) {
	digits := trimPrefix(strings.ToLower(Compact(s)), "0x")
	if digits == "" {
		return 0, 0, ErrEmpty
	}
	for _, r := range digits {
		if !IsHexDigit(r) {
			return 0, 0, fmt.Errorf("%w %q in hex input", ErrInvalidDigit, r)
		}
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, 0, ErrOverflow
	}
	return v, len(digits), nil
}

// IsBinaryDigit reports whether r is 0 or 1.
func IsBinaryDigit(r rune) bool {
	return r == '0' || r == '1'
}

// IsHexDigit reports whether r is a hex digit in either case.
func IsHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func trimPrefix(s, prefix string) string {
	return strings.TrimPrefix(s, prefix)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
