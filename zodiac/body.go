// Package zodiac holds the fixed domain tables (bodies, signs, nakshatras,
// period weights) and resolves a longitude into its nested rulers.
package zodiac

import (
	"encoding/json"
	"strings"

	"github.com/teranos/kpnadi/errors"
)

// Body is one of the nine symbolic bodies.
type Body int

const (
	Sun Body = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

// NumBodies is the number of bodies in every table.
const NumBodies = 9

// Bodies lists all bodies in chart order.
var Bodies = [NumBodies]Body{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

var bodyNames = [NumBodies]string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu"}

// SubSequence is the fixed ruling order shared by nakshatras, subs and dashas.
var SubSequence = [NumBodies]Body{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

// TotalWeight is the sum of all period weights, in years.
const TotalWeight = 120.0

// periodWeight is indexed by Body.
var periodWeight = [NumBodies]float64{
	Sun:     6,
	Moon:    10,
	Mars:    7,
	Mercury: 17,
	Jupiter: 16,
	Venus:   20,
	Saturn:  19,
	Rahu:    18,
	Ketu:    7,
}

// Weight returns the body's share of the 120-unit cycle.
func (b Body) Weight() float64 {
	return periodWeight[b]
}

// Valid reports whether b is one of the nine bodies.
func (b Body) Valid() bool {
	return b >= Sun && b <= Ketu
}

// IsShadow reports whether b is a lunar node.
func (b Body) IsShadow() bool {
	return b == Rahu || b == Ketu
}

func (b Body) String() string {
	if !b.Valid() {
		return "Unknown"
	}
	return bodyNames[b]
}

// SequenceIndex returns b's position in SubSequence.
func (b Body) SequenceIndex() int {
	for i, s := range SubSequence {
		if s == b {
			return i
		}
	}
	return -1
}

// ParseBody resolves a case-insensitive body name.
func ParseBody(name string) (Body, error) {
	n := strings.TrimSpace(name)
	for i, candidate := range bodyNames {
		if strings.EqualFold(candidate, n) {
			return Body(i), nil
		}
	}
	switch strings.ToLower(n) {
	case "north node", "northnode":
		return Rahu, nil
	case "south node", "southnode":
		return Ketu, nil
	}
	return 0, errors.NewInvalidDomainValueError("unknown body %q", name)
}

// MarshalText renders the body by name so JSON maps keyed by Body stay readable.
func (b Body) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, errors.NewInvalidDomainValueError("unknown body %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText parses a body name.
func (b *Body) UnmarshalText(text []byte) error {
	parsed, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalJSON is needed so Body values (not only map keys) encode by name.
func (b Body) MarshalJSON() ([]byte, error) {
	text, err := b.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON accepts a body name.
func (b *Body) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return errors.Wrap(err, "body must be a string")
	}
	return b.UnmarshalText([]byte(name))
}
