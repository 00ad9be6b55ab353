package main

import (
	"testing"

	"bitsense/internal/round"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBase(t *testing.T) {
	tests := []struct {
		from  string
		input string
		want  round.Base
	}{
		{"", "10101011", round.Binary},
		{"", "0b1010", round.Binary},
		{"", "0x10", round.Hex},
		{"", "ab", round.Hex},
		{"", "1012", round.Hex},
		{"hex", "10", round.Hex},
		{"BIN", "10", round.Binary},
	}
	for _, tt := range tests {
		got, err := resolveBase(tt.from, tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, "from=%q input=%q", tt.from, tt.input)
	}

	_, err := resolveBase("oct", "17")
	assert.Error(t, err)

	for _, input := range []string{"0b1012", "0B10a1", "0b 1010 2"} {
		_, err := resolveBase("", input)
		assert.Error(t, err, input)
	}
}

func TestRunConvert(t *testing.T) {
	t.Cleanup(func() { convertFrom = "" })

	cmd, buf := newTestCmd()
	require.NoError(t, runConvert(cmd, []string{"1010", "1011"}))
	assert.Contains(t, buf.String(), "BIN  1010 1011")
	assert.Contains(t, buf.String(), "HEX  ab")
	assert.Contains(t, buf.String(), "DEC  171")

	cmd, buf = newTestCmd()
	require.NoError(t, runConvert(cmd, []string{"0xDEAD"}))
	assert.Contains(t, buf.String(), "BIN  1101 1110 1010 1101")
	assert.Contains(t, buf.String(), "16 bits")

	// Binary input is padded to whole nibbles.
	cmd, buf = newTestCmd()
	require.NoError(t, runConvert(cmd, []string{"101"}))
	assert.Contains(t, buf.String(), "BIN  0101")
	assert.Contains(t, buf.String(), "HEX  5")

	convertFrom = "bin"
	cmd, _ = newTestCmd()
	assert.Error(t, runConvert(cmd, []string{"102"}))
}

func TestRunConvert_BinaryPrefixWithHexDigit(t *testing.T) {
	t.Cleanup(func() { convertFrom = "" })
	convertFrom = ""

	cmd, buf := newTestCmd()
	err := runConvert(cmd, []string{"0b1012"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0b prefix")
	assert.Empty(t, buf.String())
}

func TestGuide(t *testing.T) {
	md := guideMarkdown()
	assert.Contains(t, md, "| `a` | `1010` | 10 |")
	assert.Contains(t, md, "| `f` | `1111` | 15 |")

	t.Cleanup(func() { guidePlain = false })
	guidePlain = true
	cmd, buf := newTestCmd()
	require.NoError(t, runGuide(cmd, nil))
	assert.Equal(t, md, buf.String())

	guidePlain = false
	cmd, buf = newTestCmd()
	require.NoError(t, runGuide(cmd, nil))
	assert.NotEmpty(t, buf.String())
}
