package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		v     uint64
		width int
		bin   string
		hex   string
	}{
		{"zero byte", 0, 8, "00000000", "00"},
		{"ab", 0xAB, 8, "10101011", "ab"},
		{"nibble", 0x5, 4, "0101", "5"},
		{"truncated above width", 0x1FF, 8, "11111111", "ff"},
		{"wide", 0xBEEF, 16, "1011111011101111", "beef"},
		{"max", ^uint64(0), 64, "1111111111111111111111111111111111111111111111111111111111111111", "ffffffffffffffff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.bin, FormatBinary(tt.v, tt.width))
			assert.Equal(t, tt.hex, FormatHex(tt.v, tt.width))
		})
	}
}

func TestGroup(t *testing.T) {
	assert.Equal(t, "1010 1011", Group("10101011", 4))
	assert.Equal(t, "10 1010", Group("101010", 4))
	assert.Equal(t, "1010", Group("1010", 4))
	assert.Equal(t, "", Group("", 4))
	assert.Equal(t, "abc", Group("abc", 0))
}

func TestParseBinary(t *testing.T) {
	v, n, err := ParseBinary(" 1010 1011 ")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xAB), v)
	assert.Equal(t, 8, n)

	v, _, err = ParseBinary("0B0101")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)

	_, _, err = ParseBinary("   ")
	assert.ErrorIs(t, err, ErrEmpty)

	_, _, err = ParseBinary("1021")
	assert.ErrorIs(t, err, ErrInvalidDigit)

	_, _, err = ParseBinary("1" + FormatBinary(0, 64))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestParseHex(t *testing.T) {
	v, n, err := ParseHex("0xAb")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xAB), v)
	assert.Equal(t, 2, n)

	v, _, err = ParseHex("de ad\tbe ef")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEF), v)

	_, _, err = ParseHex("0x")
	assert.ErrorIs(t, err, ErrEmpty)

	_, _, err = ParseHex("fg")
	assert.ErrorIs(t, err, ErrInvalidDigit)

	_, _, err = ParseHex("1ffffffffffffffff")
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestRoundTrip(t *testing.T) {
	for width := 4; width <= MaxWidth; width += 4 {
		v := uint64(0xA5A5A5A5A5A5A5A5) & Mask(width)

		b, _, err := ParseBinary(FormatBinary(v, width))
		require.NoError(t, err)
		assert.Equal(t, v, b, "binary width %d", width)

		h, digits, err := ParseHex(FormatHex(v, width))
		require.NoError(t, err)
		assert.Equal(t, v, h, "hex width %d", width)
		assert.Equal(t, HexDigits(width), digits)
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, uint64(0), Mask(0))
	assert.Equal(t, uint64(0xF), Mask(4))
	assert.Equal(t, uint64(0xFF), Mask(8))
	assert.Equal(t, ^uint64(0), Mask(64))
}
