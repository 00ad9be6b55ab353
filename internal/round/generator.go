package round

import (
	"fmt"

	"bitsense/internal/bits"
)

// Source supplies entropy. *rand.PCG and *rand.ChaCha8 from math/rand/v2
// satisfy it, so a fixed seed reproduces a sequence of challenges.
type Source interface {
	Uint64() uint64
}

// Generator produces challenges from an injected Source.
type Generator struct {
	src Source
}

// NewGenerator returns a generator drawing from src.
func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// ValidateWidth checks that width is a positive multiple of 4 no wider than 64.
func ValidateWidth(width int) error {
	switch {
	case width <= 0:
		return &ConfigError{Field: "bit_width", Reason: fmt.Sprintf("must be positive, got %d", width)}
	case width%bits.NibbleWidth != 0:
		return &ConfigError{Field: "bit_width", Reason: fmt.Sprintf("must be a multiple of %d, got %d", bits.NibbleWidth, width)}
	case width > bits.MaxWidth:
		return &ConfigError{Field: "bit_width", Reason: fmt.Sprintf("must be at most %d, got %d", bits.MaxWidth, width)}
	}
	return nil
}

// Generate draws a uniformly random value of width bits and picks the base
// pair for direction.
func (g *Generator) Generate(width int, direction Direction) (Challenge, error) {
	if err := ValidateWidth(width); err != nil {
		return Challenge{}, err
	}

	var src, dst Base
	switch direction {
	case BinToHex:
		src, dst = Binary, Hex
	case HexToBin:
		src, dst = Hex, Binary
	case Random:
		// One coin flip decides both ends since they must differ.
		if g.src.Uint64()&1 == 0 {
			src, dst = Binary, Hex
		} else {
			src, dst = Hex, Binary
		}
	default:
		return Challenge{}, &ConfigError{Field: "direction", Reason: fmt.Sprintf("unknown direction %d", int(direction))}
	}

	return Challenge{
		Source:   src,
		Target:   dst,
		Value:    g.src.Uint64() & bits.Mask(width),
		BitWidth: width,
	}, nil
}
