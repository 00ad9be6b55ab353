package round

import (
	"strings"

	"bitsense/internal/bits"
)

// Validation is the outcome of checking (possibly partial) input.
type Validation struct {
	// Normalized is the input with whitespace and base prefix removed, lowercased.
	Normalized string
	// Complete is true when Normalized equals the target.
	Complete bool
	// Prefix is true while Normalized is still a prefix of the target.
	Prefix bool
	// Invalid is true when Normalized holds a character outside the target base.
	Invalid bool
}

// Validate checks raw input against target, which is written in base.
// Whitespace is ignored, hex digits compare case-insensitively and an optional
// 0x (hex) or 0b (binary) prefix is dropped. Invalid characters short-circuit
// matching.
func Validate(raw, target string, base Base) Validation {
	compact := strings.ToLower(bits.Compact(raw))
	prefix, digit := "0b", bits.IsBinaryDigit
	if base == Hex {
		prefix, digit = "0x", bits.IsHexDigit
	}
	norm := strings.TrimPrefix(compact, prefix)

	for _, r := range norm {
		if !digit(r) {
			// Keep the prefix so validating Normalized again gives the same answer.
			return Validation{Normalized: compact, Invalid: true}
		}
	}

	target = strings.ToLower(target)
	return Validation{
		Normalized: norm,
		Complete:   norm == target,
		Prefix:     strings.HasPrefix(target, norm),
	}
}
