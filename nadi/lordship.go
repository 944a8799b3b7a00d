// Package nadi implements the Nadi school's occupancy/ownership significators
// and event ratings. It shares only lord resolution with the KP graph.
package nadi

import (
	"sort"

	"github.com/teranos/kpnadi/chart"
	"github.com/teranos/kpnadi/zodiac"
)

// Lordship maps houses to their ruling bodies by rotating the signs from the
// ascendant sign.
type Lordship struct {
	Ascendant zodiac.Sign                  `json:"ascendant"`
	Signs     [chart.NumHouses]zodiac.Sign `json:"signs"`
	Lords     [chart.NumHouses]zodiac.Body `json:"lords"`
	Owned     [zodiac.NumBodies][]int      `json:"owned"`
}

// NewLordship builds the lordship table for an ascendant longitude.
func NewLordship(ascendant float64) Lordship {
	asc := zodiac.SignOf(ascendant)
	l := Lordship{Ascendant: asc}
	for i := range l.Owned {
		l.Owned[i] = []int{}
	}
	for i := 0; i < chart.NumHouses; i++ {
		sign := asc.Add(i)
		l.Signs[i] = sign
		l.Lords[i] = sign.Lord()
		l.Owned[sign.Lord()] = append(l.Owned[sign.Lord()], i+1)
	}
	return l
}

// HouseOfSign returns the whole-sign house a sign occupies.
func (l Lordship) HouseOfSign(s zodiac.Sign) int {
	return (int(s)-int(l.Ascendant)+zodiac.NumSigns)%zodiac.NumSigns + 1
}

// Lord returns the ruler of house h.
func (l Lordship) Lord(h int) zodiac.Body {
	return l.Lords[h-1]
}

// Significator is the Nadi two-part signification of one body.
type Significator struct {
	Body       zodiac.Body `json:"body"`
	Sign       zodiac.Sign `json:"sign"`
	Occupied   int         `json:"occupied"`
	Owned      []int       `json:"owned"`
	Retrograde bool        `json:"retrograde,omitempty"`
	// InheritedFrom is set for shadow bodies.
	InheritedFrom *zodiac.Body `json:"inherited_from,omitempty"`
	// Houses is the evaluated set: occupied ∪ owned, plus {2,11} when retrograde.
	Houses []int `json:"houses"`
}

// Significators computes the significator of every body.
func Significators(positions [zodiac.NumBodies]chart.BodyPosition, l Lordship) [zodiac.NumBodies]Significator {
	var out [zodiac.NumBodies]Significator
	for _, b := range zodiac.Bodies {
		sign := zodiac.SignOf(positions[b].Longitude)
		out[b] = Significator{
			Body:       b,
			Sign:       sign,
			Occupied:   l.HouseOfSign(sign),
			Owned:      l.Owned[b],
			Retrograde: positions[b].Retrograde,
		}
	}

	// shadow bodies own no sign and take over their sign lord's houses
	for _, b := range []zodiac.Body{zodiac.Rahu, zodiac.Ketu} {
		lord := out[b].Sign.Lord()
		s := &out[b]
		s.InheritedFrom = &lord
		s.Owned = union(out[lord].Owned, []int{out[lord].Occupied})
	}

	for _, b := range zodiac.Bodies {
		s := &out[b]
		s.Houses = union([]int{s.Occupied}, s.Owned)
		if s.Retrograde {
			s.Houses = union(s.Houses, retrogradeHouses)
		}
	}
	return out
}

func union(sets ...[]int) []int {
	seen := map[int]bool{}
	out := []int{}
	for _, set := range sets {
		for _, h := range set {
			if !seen[h] {
				seen[h] = true
				out = append(out, h)
			}
		}
	}
	sort.Ints(out)
	return out
}
