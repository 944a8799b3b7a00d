// Package dasha generates the Mahadasha → Antardasha → Pratyantar period tree
// from a birth Moon longitude.
package dasha

import (
	"strings"
	"time"

	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/zodiac"
)

// Level is the depth of a period in the tree.
type Level int

const (
	Mahadasha  Level = 1
	Antardasha Level = 2
	Pratyantar Level = 3
)

func (l Level) String() string {
	switch l {
	case Mahadasha:
		return "mahadasha"
	case Antardasha:
		return "antardasha"
	case Pratyantar:
		return "pratyantar"
	default:
		return "unknown"
	}
}

// MarshalText renders the level by name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ParseLevel accepts a level name or its depth (1-3). Empty means Antardasha.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Antardasha, nil
	case "1", "md", "mahadasha":
		return Mahadasha, nil
	case "2", "ad", "antardasha":
		return Antardasha, nil
	case "3", "pd", "pratyantar", "pratyantardasha":
		return Pratyantar, nil
	default:
		return 0, errors.WithHint(
			errors.NewInvalidDomainValueError("unknown dasha level %q", s),
			"use mahadasha, antardasha or pratyantar (or 1-3)")
	}
}

// Period is a half-open interval [Start, End) ruled by one body.
type Period struct {
	Lord         zodiac.Body `json:"lord"`
	Level        Level       `json:"level"`
	Start        time.Time   `json:"start"`
	End          time.Time   `json:"end"`
	DurationDays float64     `json:"duration_days"`
	// Balance marks the truncated first Mahadasha running at birth.
	Balance  bool     `json:"balance,omitempty"`
	Children []Period `json:"children,omitempty"`

	// day offsets from birth; times are derived from these so that adjacent
	// periods share exactly the same boundary
	startDay float64
	endDay   float64
}

// Contains reports whether Start <= t < End.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Years returns the period's length in years of the given length.
func (p Period) Years(yearDays float64) float64 {
	return p.DurationDays / yearDays
}

// Current is the containing branch of the tree at one instant.
type Current struct {
	At         time.Time `json:"at"`
	Mahadasha  Period    `json:"mahadasha"`
	Antardasha Period    `json:"antardasha"`
	Pratyantar Period    `json:"pratyantar"`
}

// Lords returns the three ruling bodies of the branch, outermost first.
func (c Current) Lords() [3]zodiac.Body {
	return [3]zodiac.Body{c.Mahadasha.Lord, c.Antardasha.Lord, c.Pratyantar.Lord}
}

// Balance describes the Mahadasha running at birth.
type Balance struct {
	Lord zodiac.Body `json:"lord"`
	// ElapsedFraction is how far into its nakshatra the birth Moon sits.
	ElapsedFraction float64 `json:"elapsed_fraction"`
	RemainingYears  float64 `json:"remaining_years"`
}
