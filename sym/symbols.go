// Package sym defines the canonical glyphs for kpnadi commands, bodies and
// signs. These glyphs are stable across CLI output and documentation.
package sym

import "github.com/teranos/kpnadi/zodiac"

// Command glyphs, one per CLI command.
const (
	Chart = "⊕" // chart: full KP chart
	Dasha = "⧗" // dasha: period timeline
	Score = "⚖" // scores: precision scores and aspect matrix
	Cat   = "◈" // category: one life aspect
	Event = "✦" // event: event potential
	Nadi  = "☸" // nadi: Nadi rulership analysis
	Star  = "✧" // nakshatra: sub and sub-sub boundaries
	AM    = "≡" // am: configuration
)

// Body glyphs, indexed by zodiac.Body.
var bodyGlyphs = [zodiac.NumBodies]string{
	zodiac.Sun:     "☉",
	zodiac.Moon:    "☽",
	zodiac.Mars:    "♂",
	zodiac.Mercury: "☿",
	zodiac.Jupiter: "♃",
	zodiac.Venus:   "♀",
	zodiac.Saturn:  "♄",
	zodiac.Rahu:    "☊",
	zodiac.Ketu:    "☋",
}

// Sign glyphs, indexed by zodiac.Sign.
var signGlyphs = [zodiac.NumSigns]string{
	"♈", "♉", "♊", "♋", "♌", "♍", "♎", "♏", "♐", "♑", "♒", "♓",
}

// Body returns the glyph for b, or "?" for an invalid body.
func Body(b zodiac.Body) string {
	if !b.Valid() {
		return "?"
	}
	return bodyGlyphs[b]
}

// Sign returns the glyph for s, or "?" for an invalid sign.
func Sign(s zodiac.Sign) string {
	if s < zodiac.Aries || s > zodiac.Pisces {
		return "?"
	}
	return signGlyphs[s]
}

// Labeled prefixes a body name with its glyph: "♃ Jupiter".
func Labeled(b zodiac.Body) string {
	return Body(b) + " " + b.String()
}

// FromGlyph returns the body drawn by glyph.
func FromGlyph(glyph string) (zodiac.Body, bool) {
	b, ok := glyphToBody[glyph]
	return b, ok
}

var glyphToBody map[string]zodiac.Body

func init() {
	glyphToBody = make(map[string]zodiac.Body, zodiac.NumBodies)
	for _, b := range zodiac.Bodies {
		glyphToBody[bodyGlyphs[b]] = b
	}
}

// PaletteOrder is the order commands are listed in help output.
var PaletteOrder = []string{Chart, Dasha, Score, Cat, Event, Nadi, Star, AM}

// SymbolToCommand maps glyph strings to their command names.
var SymbolToCommand = map[string]string{
	Chart: "chart",
	Dasha: "dasha",
	Score: "scores",
	Cat:   "category",
	Event: "event",
	Nadi:  "nadi",
	Star:  "nakshatra",
	AM:    "am",
}

// CommandToSymbol maps command names to their glyphs.
var CommandToSymbol = map[string]string{
	"chart":     Chart,
	"dasha":     Dasha,
	"scores":    Score,
	"category":  Cat,
	"event":     Event,
	"nadi":      Nadi,
	"nakshatra": Star,
	"am":        AM,
}

// CommandDescriptions are the one-line help texts for each command.
var CommandDescriptions = map[string]string{
	"chart":     "Chart: bodies, cusps, lords and significators",
	"dasha":     "Periods: Vimshottari Mahadasha, Antardasha and Pratyantar",
	"scores":    "Scores: body precision scores and life aspect matrix",
	"category":  "Category: one life aspect ranked by body",
	"event":     "Event: yes/no potential from cusp sub lord and karakas",
	"nadi":      "Nadi: planet, star and sub lord rulership ratings",
	"nakshatra": "Nakshatra: sub and sub-sub lord boundaries of one star",
	"am":        "Configuration: settings and their sources",
}
