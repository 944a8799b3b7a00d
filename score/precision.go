// Package score rates bodies and dasha periods from a significator graph.
package score

import (
	"github.com/teranos/kpnadi/significator"
	"github.com/teranos/kpnadi/zodiac"
)

// NeutralScore is assigned to a body that signifies no house.
const NeutralScore = 50.0

// Band thresholds, inclusive lower bounds.
const (
	ExcellentThreshold = 75.0
	GoodThreshold      = 60.0
	MixedThreshold     = 40.0
)

// Band is the textual grade of a body score.
type Band string

const (
	Excellent Band = "Excellent"
	Good      Band = "Good"
	Mixed     Band = "Mixed"
	Weak      Band = "Weak"
)

// Label is the textual grade of a period quality.
type Label string

const (
	HighlyFavorable Label = "Highly Favorable"
	Favorable       Label = "Favorable"
	MixedPeriod     Label = "Mixed"
	Challenging     Label = "Challenging"
)

// Period weights.
const (
	MahadashaWeight  = 0.4
	AntardashaWeight = 0.6
)

var unfavorable = map[int]bool{6: true, 8: true, 12: true}

// IsFavorable reports whether h is in the fixed favorable house set
// {1,2,3,4,5,7,9,10,11}.
func IsFavorable(h int) bool {
	return h >= 1 && h <= 12 && !unfavorable[h]
}

// BandOf grades a score.
func BandOf(score float64) Band {
	switch {
	case score >= ExcellentThreshold:
		return Excellent
	case score >= GoodThreshold:
		return Good
	case score >= MixedThreshold:
		return Mixed
	default:
		return Weak
	}
}

// LabelOf grades a period quality.
func LabelOf(score float64) Label {
	switch {
	case score >= ExcellentThreshold:
		return HighlyFavorable
	case score >= GoodThreshold:
		return Favorable
	case score >= MixedThreshold:
		return MixedPeriod
	default:
		return Challenging
	}
}

// BodyScore is the precision score of one body.
type BodyScore struct {
	Body        zodiac.Body `json:"body"`
	Score       float64     `json:"score"`
	Band        Band        `json:"band"`
	Houses      []int       `json:"houses"`
	Favorable   []int       `json:"favorable"`
	Unfavorable []int       `json:"unfavorable"`
}

// ForBody scores b as the share of favorable houses among those it signifies.
func ForBody(g significator.Graph, b zodiac.Body) BodyScore {
	houses := g.HousesOf(b)
	bs := BodyScore{Body: b, Houses: houses, Favorable: []int{}, Unfavorable: []int{}}
	for _, h := range houses {
		if IsFavorable(h) {
			bs.Favorable = append(bs.Favorable, h)
		} else {
			bs.Unfavorable = append(bs.Unfavorable, h)
		}
	}
	if len(houses) == 0 {
		bs.Houses = []int{}
		bs.Score = NeutralScore
	} else {
		bs.Score = 100 * float64(len(bs.Favorable)) / float64(len(houses))
	}
	bs.Band = BandOf(bs.Score)
	return bs
}

// All scores every body in chart order.
func All(g significator.Graph) [zodiac.NumBodies]BodyScore {
	var out [zodiac.NumBodies]BodyScore
	for _, b := range zodiac.Bodies {
		out[b] = ForBody(g, b)
	}
	return out
}

// PeriodQuality combines the Mahadasha and Antardasha lord scores.
type PeriodQuality struct {
	Mahadasha       zodiac.Body `json:"mahadasha"`
	Antardasha      zodiac.Body `json:"antardasha"`
	MahadashaScore  float64     `json:"mahadasha_score"`
	AntardashaScore float64     `json:"antardasha_score"`
	Score           float64     `json:"score"`
	Label           Label       `json:"label"`
}

// Period rates the running Mahadasha/Antardasha pair.
func Period(g significator.Graph, mahadasha, antardasha zodiac.Body) PeriodQuality {
	md := ForBody(g, mahadasha).Score
	ad := ForBody(g, antardasha).Score
	q := MahadashaWeight*md + AntardashaWeight*ad
	return PeriodQuality{
		Mahadasha:       mahadasha,
		Antardasha:      antardasha,
		MahadashaScore:  md,
		AntardashaScore: ad,
		Score:           q,
		Label:           LabelOf(q),
	}
}
