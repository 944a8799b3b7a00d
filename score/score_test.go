package score

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/kpnadi/chart"
	"github.com/teranos/kpnadi/significator"
	"github.com/teranos/kpnadi/zodiac"
)

type link struct {
	house int
	level significator.Level
}

// graphOf builds a graph where each body signifies the listed houses at the
// given level.
func graphOf(links map[zodiac.Body][]link) significator.Graph {
	var g significator.Graph
	for i := range g.Houses {
		g.Houses[i].House = i + 1
	}
	for b, ls := range links {
		for _, l := range ls {
			s := &g.Houses[l.house-1]
			switch l.level {
			case significator.LevelStarLord:
				s.Level1 = append(s.Level1, b)
			case significator.LevelSignLord:
				s.Level2 = append(s.Level2, b)
			case significator.LevelOccupancy:
				s.Level3 = append(s.Level3, b)
			case significator.LevelLordLink:
				s.Level4 = append(s.Level4, b)
			}
			if !s.Has(b) {
				s.All = append(s.All, b)
				sort.Slice(s.All, func(i, j int) bool { return s.All[i] < s.All[j] })
			}
		}
	}
	return g
}

func TestIsFavorable(t *testing.T) {
	for h := 1; h <= chart.NumHouses; h++ {
		want := h != 6 && h != 8 && h != 12
		assert.Equal(t, want, IsFavorable(h), "house %d", h)
	}
	assert.False(t, IsFavorable(0))
	assert.False(t, IsFavorable(13))
}

func TestBandOf(t *testing.T) {
	tests := []struct {
		score float64
		band  Band
		label Label
	}{
		{100, Excellent, HighlyFavorable},
		{75, Excellent, HighlyFavorable},
		{74.99, Good, Favorable},
		{60, Good, Favorable},
		{59.9, Mixed, MixedPeriod},
		{40, Mixed, MixedPeriod},
		{39.9, Weak, Challenging},
		{0, Weak, Challenging},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.band, BandOf(tt.score), "score %v", tt.score)
		assert.Equal(t, tt.label, LabelOf(tt.score), "score %v", tt.score)
	}
}

func TestForBody(t *testing.T) {
	g := graphOf(map[zodiac.Body][]link{
		zodiac.Venus:   {{2, 1}, {7, 3}, {11, 4}, {8, 2}},
		zodiac.Saturn:  {{6, 1}, {8, 3}, {12, 2}},
		zodiac.Jupiter: {{9, 1}},
	})

	venus := ForBody(g, zodiac.Venus)
	assert.Equal(t, 75.0, venus.Score)
	assert.Equal(t, Excellent, venus.Band)
	assert.Equal(t, []int{2, 7, 11}, venus.Favorable)
	assert.Equal(t, []int{8}, venus.Unfavorable)

	saturn := ForBody(g, zodiac.Saturn)
	assert.Equal(t, 0.0, saturn.Score)
	assert.Equal(t, Weak, saturn.Band)

	assert.Equal(t, 100.0, ForBody(g, zodiac.Jupiter).Score)

	moon := ForBody(g, zodiac.Moon)
	assert.Equal(t, NeutralScore, moon.Score)
	assert.Empty(t, moon.Houses)
	assert.Equal(t, Mixed, moon.Band)
}

func TestScoreBoundsOnBuiltGraph(t *testing.T) {
	var positions [zodiac.NumBodies]chart.BodyPosition
	for _, b := range zodiac.Bodies {
		positions[b] = chart.BodyPosition{Body: b, Longitude: float64(b)*37 + 11}
	}
	g := significator.Build(positions, chart.NewHouses(chart.EqualHouses, 15, nil))

	for _, bs := range All(g) {
		assert.GreaterOrEqual(t, bs.Score, 0.0)
		assert.LessOrEqual(t, bs.Score, 100.0)
		if len(bs.Houses) == 0 {
			assert.Equal(t, NeutralScore, bs.Score)
		}
		assert.Len(t, bs.Houses, len(bs.Favorable)+len(bs.Unfavorable))
	}
}

func TestPeriod(t *testing.T) {
	g := graphOf(map[zodiac.Body][]link{
		zodiac.Venus:  {{2, 1}, {7, 3}, {11, 4}, {8, 2}},
		zodiac.Saturn: {{6, 1}, {8, 3}, {12, 2}},
	})

	q := Period(g, zodiac.Venus, zodiac.Saturn)
	assert.Equal(t, 75.0, q.MahadashaScore)
	assert.Equal(t, 0.0, q.AntardashaScore)
	assert.InDelta(t, 30.0, q.Score, 1e-9)
	assert.Equal(t, Challenging, q.Label)

	q = Period(g, zodiac.Saturn, zodiac.Venus)
	assert.InDelta(t, 45.0, q.Score, 1e-9)
	assert.Equal(t, MixedPeriod, q.Label)

	q = Period(g, zodiac.Moon, zodiac.Moon)
	assert.InDelta(t, NeutralScore, q.Score, 1e-9)
}

func TestRate(t *testing.T) {
	marriage, ok := FindAspect("marriage")
	require.True(t, ok)

	g := graphOf(map[zodiac.Body][]link{
		// 2 at L1 (+15), 7 at L3 and L4 counts L3 (+5), 10 at L2 (-8)
		zodiac.Venus: {{2, 1}, {7, 3}, {7, 4}, {10, 2}},
		// 1, 6, 10 at L1: -36
		zodiac.Saturn: {{1, 1}, {6, 1}, {10, 1}},
	})

	venus := Rate(g, marriage, zodiac.Venus)
	assert.True(t, venus.Karaka)
	assert.InDelta(t, 15+5-8+KarakaBonus, venus.Score, 1e-9)

	saturn := Rate(g, marriage, zodiac.Saturn)
	assert.False(t, saturn.Karaka)
	assert.InDelta(t, -36.0, saturn.Score, 1e-9)

	assert.Equal(t, 0.0, Rate(g, marriage, zodiac.Moon).Score)
}

func TestRateClamps(t *testing.T) {
	a := LifeAspect{Name: "all", Positive: []int{1, 2, 3, 4, 5, 6, 7, 8}, Negative: []int{9, 10, 11, 12}}
	var up, down []link
	for h := 1; h <= 8; h++ {
		up = append(up, link{h, 1})
	}
	for h := 9; h <= 12; h++ {
		down = append(down, link{h, 1})
	}
	g := graphOf(map[zodiac.Body][]link{zodiac.Sun: up, zodiac.Moon: down})

	assert.Equal(t, MaxAspectScore, Rate(g, a, zodiac.Sun).Score)
	// four houses at -12 gives -48, inside the floor
	assert.Equal(t, -48.0, Rate(g, a, zodiac.Moon).Score)

	var every []link
	for h := 1; h <= chart.NumHouses; h++ {
		every = append(every, link{h, 1})
	}
	bad := LifeAspect{Name: "bad", Negative: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}}
	g = graphOf(map[zodiac.Body][]link{zodiac.Moon: every})
	assert.Equal(t, MinAspectScore, Rate(g, bad, zodiac.Moon).Score)
}

func TestMatrix(t *testing.T) {
	g := graphOf(map[zodiac.Body][]link{
		zodiac.Saturn: {{10, 1}, {6, 2}},
	})
	rows := Matrix(g)
	require.Len(t, rows, len(LifeAspects))

	career := rows[0]
	assert.Equal(t, "career", career.Aspect)
	assert.Equal(t, zodiac.Saturn, career.Best)
	assert.InDelta(t, 15+10+KarakaBonus, career.Scores[zodiac.Saturn].Score, 1e-9)
	assert.InDelta(t, KarakaBonus, career.Scores[zodiac.Sun].Score, 1e-9)

	for _, row := range rows {
		for _, cell := range row.Scores {
			assert.GreaterOrEqual(t, cell.Score, MinAspectScore)
			assert.LessOrEqual(t, cell.Score, MaxAspectScore)
		}
	}
}

func TestLifeAspectsWellFormed(t *testing.T) {
	assert.Len(t, LifeAspects, 7)
	for _, a := range LifeAspects {
		assert.NotEmpty(t, a.Positive, a.Name)
		assert.NotEmpty(t, a.Negative, a.Name)
		assert.True(t, len(a.Karakas) >= 1 && len(a.Karakas) <= 2, a.Name)
	}
	_, ok := FindAspect("astrology")
	assert.False(t, ok)
}
