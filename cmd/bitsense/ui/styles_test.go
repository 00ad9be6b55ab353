package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")

	t.Setenv("BITSENSE_DARK_MODE", "1")
	assert.True(t, DetectTheme().IsDark, "BITSENSE_DARK_MODE=1 should select dark")

	t.Setenv("BITSENSE_DARK_MODE", "")
	assert.False(t, DetectTheme().IsDark)

	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, DetectTheme().IsDark, "black background should select dark")

	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, DetectTheme().IsDark)
}

func TestThemeFor(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("BITSENSE_DARK_MODE", "")

	assert.True(t, ThemeFor("dark").IsDark)
	assert.True(t, ThemeFor("DARK").IsDark)
	assert.False(t, ThemeFor("light").IsDark)
	assert.False(t, ThemeFor("auto").IsDark)
}

func TestRule(t *testing.T) {
	s := NewStyles(LightTheme())
	assert.Equal(t, 12, strings.Count(s.Rule(12), "─"))
	assert.Equal(t, 40, strings.Count(s.Rule(0), "─"))
}
