package score

import (
	"github.com/teranos/kpnadi/internal/util"
	"github.com/teranos/kpnadi/significator"
	"github.com/teranos/kpnadi/zodiac"
)

// Aspect-matrix weights by significator level (index 0 is level 1).
var (
	positiveWeights = [significator.NumLevels]float64{15, 10, 5, 2}
	negativeWeights = [significator.NumLevels]float64{12, 8, 4, 2}
)

const (
	KarakaBonus    = 15.0
	MinAspectScore = -50.0
	MaxAspectScore = 100.0
)

// LifeAspect is one row definition of the aspect-strength matrix.
type LifeAspect struct {
	Name     string        `json:"name"`
	Positive []int         `json:"positive"`
	Negative []int         `json:"negative"`
	Karakas  []zodiac.Body `json:"karakas"`
}

// LifeAspects are the seven rated areas of life.
var LifeAspects = []LifeAspect{
	{Name: "career", Positive: []int{10, 6, 2, 11}, Negative: []int{5, 8, 12}, Karakas: []zodiac.Body{zodiac.Saturn, zodiac.Sun}},
	{Name: "finance", Positive: []int{2, 6, 10, 11}, Negative: []int{5, 8, 12}, Karakas: []zodiac.Body{zodiac.Jupiter}},
	{Name: "marriage", Positive: []int{2, 7, 11}, Negative: []int{1, 6, 10}, Karakas: []zodiac.Body{zodiac.Venus}},
	{Name: "health", Positive: []int{1, 5, 11}, Negative: []int{6, 8, 12}, Karakas: []zodiac.Body{zodiac.Sun}},
	{Name: "education", Positive: []int{4, 9, 11}, Negative: []int{3, 8, 12}, Karakas: []zodiac.Body{zodiac.Mercury, zodiac.Jupiter}},
	{Name: "children", Positive: []int{2, 5, 11}, Negative: []int{1, 4, 10}, Karakas: []zodiac.Body{zodiac.Jupiter}},
	{Name: "property", Positive: []int{4, 11, 12}, Negative: []int{3, 8}, Karakas: []zodiac.Body{zodiac.Mars, zodiac.Venus}},
}

// IsKaraka reports whether b is a karaka of the aspect.
func (a LifeAspect) IsKaraka(b zodiac.Body) bool {
	for _, k := range a.Karakas {
		if k == b {
			return true
		}
	}
	return false
}

// AspectScore is one cell of the matrix.
type AspectScore struct {
	Body   zodiac.Body `json:"body"`
	Score  float64     `json:"score"`
	Karaka bool        `json:"karaka,omitempty"`
}

// AspectRow holds every body's score for one life aspect.
type AspectRow struct {
	Aspect string                        `json:"aspect"`
	Scores [zodiac.NumBodies]AspectScore `json:"scores"`
	// Best is the highest scoring body; ties resolve to chart order.
	Best zodiac.Body `json:"best"`
}

// Rate scores b for one life aspect. Each signified house counts once at its
// strongest level.
func Rate(g significator.Graph, a LifeAspect, b zodiac.Body) AspectScore {
	total := 0.0
	for _, h := range a.Positive {
		if lvl, ok := g.House(h).StrongestLevel(b); ok {
			total += positiveWeights[lvl-1]
		}
	}
	for _, h := range a.Negative {
		if lvl, ok := g.House(h).StrongestLevel(b); ok {
			total -= negativeWeights[lvl-1]
		}
	}
	karaka := a.IsKaraka(b)
	if karaka {
		total += KarakaBonus
	}
	return AspectScore{
		Body:   b,
		Score:  util.Clamp(total, MinAspectScore, MaxAspectScore),
		Karaka: karaka,
	}
}

// Matrix rates every body against every life aspect.
func Matrix(g significator.Graph) []AspectRow {
	rows := make([]AspectRow, 0, len(LifeAspects))
	for _, a := range LifeAspects {
		row := AspectRow{Aspect: a.Name}
		for _, b := range zodiac.Bodies {
			row.Scores[b] = Rate(g, a, b)
			if row.Scores[b].Score > row.Scores[row.Best].Score {
				row.Best = b
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// FindAspect looks up a life aspect by name.
func FindAspect(name string) (LifeAspect, bool) {
	for _, a := range LifeAspects {
		if a.Name == name {
			return a, true
		}
	}
	return LifeAspect{}, false
}
