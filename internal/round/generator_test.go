package round

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"bitsense/internal/bits"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_RangeAndRoundTrip(t *testing.T) {
	for width := 4; width <= bits.MaxWidth; width += 4 {
		gen := NewGenerator(rand.NewPCG(uint64(width), 42))
		for i := 0; i < 50; i++ {
			ch, err := gen.Generate(width, Random)
			require.NoError(t, err)

			assert.LessOrEqual(t, ch.Value, bits.Mask(width))
			bin := ch.Representation(Binary)
			hex := ch.Representation(Hex)
			assert.Len(t, bin, width)
			assert.Len(t, hex, width/4)

			fromBin, err := strconv.ParseUint(bin, 2, 64)
			require.NoError(t, err)
			fromHex, err := strconv.ParseUint(hex, 16, 64)
			require.NoError(t, err)
			assert.Equal(t, ch.Value, fromBin)
			assert.Equal(t, ch.Value, fromHex)
		}
	}
}

func TestGenerate_InvalidWidth(t *testing.T) {
	gen := NewGenerator(rand.NewPCG(1, 2))
	for _, width := range []int{0, -4, 1, 6, 10, 68, 128} {
		_, err := gen.Generate(width, BinToHex)
		assert.ErrorIs(t, err, ErrInvalidConfig, "width %d", width)

		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "bit_width", cfgErr.Field)
	}
}

func TestGenerate_UnknownDirection(t *testing.T) {
	gen := NewGenerator(rand.NewPCG(1, 2))
	_, err := gen.Generate(8, Direction(9))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerate_FixedDirections(t *testing.T) {
	gen := NewGenerator(&fixedSource{vals: []uint64{0xAB}})

	ch, err := gen.Generate(8, BinToHex)
	require.NoError(t, err)
	assert.Equal(t, Challenge{Source: Binary, Target: Hex, Value: 0xAB, BitWidth: 8}, ch)
	assert.Equal(t, "10101011", ch.SourceRepresentation())
	assert.Equal(t, "ab", ch.TargetRepresentation())
	assert.Equal(t, "1010 1011", ch.Display())

	ch, err = gen.Generate(8, HexToBin)
	require.NoError(t, err)
	assert.Equal(t, Hex, ch.Source)
	assert.Equal(t, Binary, ch.Target)
	assert.Equal(t, "ab", ch.Display())
}

func TestGenerate_RandomDirectionPicksBoth(t *testing.T) {
	gen := NewGenerator(rand.NewPCG(7, 7))
	seen := map[Base]int{}
	for i := 0; i < 200; i++ {
		ch, err := gen.Generate(8, Random)
		require.NoError(t, err)
		assert.NotEqual(t, ch.Source, ch.Target)
		seen[ch.Source]++
	}
	assert.Greater(t, seen[Binary], 0)
	assert.Greater(t, seen[Hex], 0)
}

func TestGenerate_ReproducibleUnderSeed(t *testing.T) {
	draw := func() []Challenge {
		gen := NewGenerator(rand.NewPCG(99, 1))
		var out []Challenge
		for i := 0; i < 20; i++ {
			ch, err := gen.Generate(16, Random)
			require.NoError(t, err)
			out = append(out, ch)
		}
		return out
	}
	if diff := cmp.Diff(draw(), draw()); diff != "" {
		t.Errorf("same seed produced different challenges (-first +second):\n%s", diff)
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"bin2hex": BinToHex, "B2H": BinToHex, "hex2bin": HexToBin,
		"hex-to-bin": HexToBin, " random ": Random, "mixed": Random,
	} {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
