// Package significator builds the four-level KP house ↔ body graph.
//
// For every house cusp a body is a significator at
//
//	level 1: its star lord is the cusp's star lord
//	level 2: it is the cusp's sign lord
//	level 3: it occupies the house or aspects it
//	level 4: its star or sub lord is the cusp's sign lord (only if not at 1-3)
//
// The graph is a fixed 12 × 9 assignment; nothing is traversed.
package significator

import (
	"fmt"
	"sort"

	"github.com/teranos/kpnadi/chart"
	"github.com/teranos/kpnadi/zodiac"
)

// Level is the evidentiary strength of a significator link, 1 strongest.
type Level int

const (
	LevelStarLord  Level = 1
	LevelSignLord  Level = 2
	LevelOccupancy Level = 3
	LevelLordLink  Level = 4
)

// NumLevels is the number of significator levels.
const NumLevels = 4

// Rule names recorded in Reason.
const (
	RuleStarLordMatch = "star_lord_match"
	RuleCuspSignLord  = "cusp_sign_lord"
	RuleOccupant      = "occupant"
	RuleAspect        = "aspect"
	RuleLordLink      = "lord_link"
)

// aspectOffsets lists the houses, counted from a body's own house, that the
// body casts a full aspect onto.
var aspectOffsets = map[zodiac.Body][]int{
	zodiac.Mars:    {4, 7, 8},
	zodiac.Jupiter: {5, 7, 9},
	zodiac.Saturn:  {3, 7, 10},
}

var defaultAspect = []int{7}

// AspectOffsets returns the aspect offsets of b.
func AspectOffsets(b zodiac.Body) []int {
	if offsets, ok := aspectOffsets[b]; ok {
		return offsets
	}
	return defaultAspect
}

// Reason records why a body reached a house.
type Reason struct {
	Body   zodiac.Body `json:"body"`
	Level  Level       `json:"level"`
	Rule   string      `json:"rule"`
	Detail string      `json:"detail,omitempty"`
}

// Set holds the significators of one house.
type Set struct {
	House     int           `json:"house"`
	Cusp      zodiac.Lords  `json:"cusp"`
	Level1    []zodiac.Body `json:"level1"`
	Level2    []zodiac.Body `json:"level2"`
	Level3    []zodiac.Body `json:"level3"`
	Level4    []zodiac.Body `json:"level4"`
	All       []zodiac.Body `json:"all"`
	Reasons   []Reason      `json:"reasons,omitempty"`
	Occupants []zodiac.Body `json:"occupants"`
}

// AtLevel returns the bodies at one level.
func (s Set) AtLevel(l Level) []zodiac.Body {
	switch l {
	case LevelStarLord:
		return s.Level1
	case LevelSignLord:
		return s.Level2
	case LevelOccupancy:
		return s.Level3
	case LevelLordLink:
		return s.Level4
	default:
		return nil
	}
}

// Has reports whether b signifies the house at any level.
func (s Set) Has(b zodiac.Body) bool {
	return contains(s.All, b)
}

// StrongestLevel returns the lowest level at which b signifies the house.
func (s Set) StrongestLevel(b zodiac.Body) (Level, bool) {
	for l := LevelStarLord; l <= LevelLordLink; l++ {
		if contains(s.AtLevel(l), b) {
			return l, true
		}
	}
	return 0, false
}

// Graph is the significator assignment for all twelve houses.
type Graph struct {
	Houses [chart.NumHouses]Set `json:"houses"`
	// Placement is the house each body occupies, indexed by body.
	Placement [zodiac.NumBodies]int `json:"placement"`
	// BodyLords are the resolved lords of each body's longitude.
	BodyLords [zodiac.NumBodies]zodiac.Lords `json:"body_lords"`
}

// House returns the set of house h (1..12).
func (g Graph) House(h int) Set {
	return g.Houses[h-1]
}

// HousesOf returns the houses b signifies, ascending.
func (g Graph) HousesOf(b zodiac.Body) []int {
	var out []int
	for _, s := range g.Houses {
		if s.Has(b) {
			out = append(out, s.House)
		}
	}
	return out
}

// ByBody inverts the graph into body → signified houses.
func (g Graph) ByBody() map[zodiac.Body][]int {
	out := make(map[zodiac.Body][]int, zodiac.NumBodies)
	for _, b := range zodiac.Bodies {
		out[b] = g.HousesOf(b)
	}
	return out
}

// Build computes the graph from body positions and the house locator.
func Build(positions [zodiac.NumBodies]chart.BodyPosition, houses chart.Houses) Graph {
	var g Graph

	// aspected[h] lists bodies aspecting house h, with the offset used
	type aspect struct {
		body   zodiac.Body
		offset int
	}
	var aspected [chart.NumHouses][]aspect

	for _, b := range zodiac.Bodies {
		g.BodyLords[b] = zodiac.Resolve(positions[b].Longitude)
		own := houses.HouseOf(positions[b].Longitude)
		g.Placement[b] = own
		for _, offset := range AspectOffsets(b) {
			target := chart.Nth(own, offset)
			aspected[target-1] = append(aspected[target-1], aspect{body: b, offset: offset})
		}
	}

	for i := 0; i < chart.NumHouses; i++ {
		h := i + 1
		cusp := zodiac.Resolve(houses.Cusp(h))
		s := Set{House: h, Cusp: cusp}

		for _, b := range zodiac.Bodies {
			lords := g.BodyLords[b]

			if lords.StarLord == cusp.StarLord {
				s.Level1 = append(s.Level1, b)
				s.Reasons = append(s.Reasons, Reason{Body: b, Level: LevelStarLord, Rule: RuleStarLordMatch,
					Detail: fmt.Sprintf("star lord %s", cusp.StarLord)})
			}

			if b == cusp.SignLord {
				s.Level2 = append(s.Level2, b)
				s.Reasons = append(s.Reasons, Reason{Body: b, Level: LevelSignLord, Rule: RuleCuspSignLord,
					Detail: fmt.Sprintf("lord of %s", cusp.Sign)})
			}

			occupies := g.Placement[b] == h
			if occupies {
				s.Occupants = append(s.Occupants, b)
				s.Reasons = append(s.Reasons, Reason{Body: b, Level: LevelOccupancy, Rule: RuleOccupant})
			}
			aspects := false
			for _, a := range aspected[i] {
				if a.body == b {
					aspects = true
					s.Reasons = append(s.Reasons, Reason{Body: b, Level: LevelOccupancy, Rule: RuleAspect,
						Detail: fmt.Sprintf("%s aspect from house %d", ordinal(a.offset), g.Placement[b])})
				}
			}
			if occupies || aspects {
				s.Level3 = append(s.Level3, b)
			}

			placed := contains(s.Level1, b) || contains(s.Level2, b) || contains(s.Level3, b)
			if !placed && (lords.StarLord == cusp.SignLord || lords.SubLord == cusp.SignLord) {
				s.Level4 = append(s.Level4, b)
				s.Reasons = append(s.Reasons, Reason{Body: b, Level: LevelLordLink, Rule: RuleLordLink,
					Detail: fmt.Sprintf("star/sub lord is %s", cusp.SignLord)})
			}
		}

		s.All = union(s.Level1, s.Level2, s.Level3, s.Level4)
		g.Houses[i] = s
	}
	return g
}

func contains(bodies []zodiac.Body, b zodiac.Body) bool {
	for _, x := range bodies {
		if x == b {
			return true
		}
	}
	return false
}

func union(sets ...[]zodiac.Body) []zodiac.Body {
	seen := make(map[zodiac.Body]bool, zodiac.NumBodies)
	out := []zodiac.Body{}
	for _, set := range sets {
		for _, b := range set {
			if !seen[b] {
				seen[b] = true
				out = append(out, b)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}
