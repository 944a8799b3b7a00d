package sym

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/teranos/kpnadi/zodiac"
)

func TestSymbolToCommandAndCommandToSymbolAreBidirectional(t *testing.T) {
	for symbol, cmd := range SymbolToCommand {
		assert.Equal(t, symbol, CommandToSymbol[cmd], "command %q", cmd)
	}
	for cmd, symbol := range CommandToSymbol {
		assert.Equal(t, cmd, SymbolToCommand[symbol], "glyph %q", symbol)
	}
	assert.Len(t, CommandToSymbol, len(SymbolToCommand))
}

func TestCommandDescriptionsMatchCommands(t *testing.T) {
	assert.Len(t, CommandDescriptions, len(CommandToSymbol))
	for cmd := range CommandToSymbol {
		assert.Contains(t, CommandDescriptions, cmd)
	}
}

func TestPaletteOrder(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range PaletteOrder {
		assert.Contains(t, SymbolToCommand, s)
		assert.False(t, seen[s], "duplicate %q", s)
		seen[s] = true
	}
	assert.Len(t, PaletteOrder, len(SymbolToCommand))
}

func TestBodyGlyphs(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range zodiac.Bodies {
		g := Body(b)
		assert.Equal(t, 1, utf8.RuneCountInString(g), "%s glyph %q", b, g)
		assert.False(t, seen[g], "duplicate glyph %q", g)
		seen[g] = true

		back, ok := FromGlyph(g)
		assert.True(t, ok)
		assert.Equal(t, b, back)
	}
	assert.Equal(t, "♃ Jupiter", Labeled(zodiac.Jupiter))
	assert.Equal(t, "?", Body(zodiac.Body(42)))

	_, ok := FromGlyph("x")
	assert.False(t, ok)
}

func TestSignGlyphs(t *testing.T) {
	assert.Equal(t, "♈", Sign(zodiac.Aries))
	assert.Equal(t, "♓", Sign(zodiac.Pisces))
	assert.Equal(t, "?", Sign(zodiac.Sign(12)))
	for s := zodiac.Aries; s <= zodiac.Pisces; s++ {
		assert.True(t, utf8.ValidString(Sign(s)))
	}
}
