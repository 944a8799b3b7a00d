package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/kpnadi/chart"
	"github.com/teranos/kpnadi/dasha"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/event"
	"github.com/teranos/kpnadi/nadi"
	"github.com/teranos/kpnadi/zodiac"
)

var testNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func loadSample(t *testing.T) *chart.Chart {
	t.Helper()
	c, err := chart.NewFileProvider(nil).Load(context.Background(), "../chart/testdata/sample.json")
	require.NoError(t, err)
	return c
}

func newOrchestrator(t *testing.T, opts Options) *Orchestrator {
	t.Helper()
	if opts.Now.IsZero() {
		opts.Now = testNow
	}
	o, err := New(loadSample(t), opts, nil)
	require.NoError(t, err)
	return o
}

func TestNewRejectsInvalidChart(t *testing.T) {
	c := loadSample(t)
	c.Bodies = c.Bodies[2:] // drop Sun and Moon

	_, err := New(c, Options{Now: testNow}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidChartError(err))
	assert.Contains(t, err.Error(), "Moon")

	c = loadSample(t)
	c.Ascendant = nil
	_, err = New(c, Options{Now: testNow}, nil)
	assert.True(t, errors.IsInvalidChartError(err))

	_, err = New(nil, Options{Now: testNow}, nil)
	assert.True(t, errors.IsInvalidChartError(err))
}

func TestNewRejectsHorizonBeyondMaximum(t *testing.T) {
	_, err := New(loadSample(t), Options{Now: testNow, Dasha: dasha.Config{HorizonYears: 300}}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
	assert.False(t, errors.IsInvalidChartError(err))
}

func TestNewRequiresNow(t *testing.T) {
	_, err := New(loadSample(t), Options{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
	assert.False(t, errors.IsInvalidChartError(err))
}

func TestFullChart(t *testing.T) {
	r := newOrchestrator(t, Options{}).FullChart()

	assert.Equal(t, KindFullChart, r.Meta.Report)
	assert.Equal(t, "sample", r.Meta.Chart)
	assert.Equal(t, testNow, r.Meta.Now)
	assert.Len(t, r.Bodies, zodiac.NumBodies)
	assert.Len(t, r.Cusps, 12)
	assert.Len(t, r.Significators, 12)
	assert.Len(t, r.ByBody, zodiac.NumBodies)
	assert.Equal(t, chart.EqualHouses, r.HouseSystem)
	assert.Equal(t, zodiac.Aries, r.Ascendant.Sign)

	// Moon at the start of Rohini: Moon 10y, Mars 7y, then Rahu from 2007
	assert.Equal(t, zodiac.Moon, r.Balance.Lord)
	require.NotNil(t, r.Current)
	assert.Equal(t, zodiac.Rahu, r.Current.Mahadasha.Lord)

	for _, b := range r.Bodies {
		assert.Equal(t, r.ByBody[b.Body], b.Signifies)
	}
}

func TestFullChartBeyondHorizon(t *testing.T) {
	short := dasha.Config{HorizonYears: 20}

	// whole Mahadashas cover the horizon: Moon 10y + Mars 7y + Rahu 18y
	o := newOrchestrator(t, Options{Dasha: short})
	end := o.Dasha().HorizonEnd()
	assert.False(t, end.Before(o.Dasha().Birth().AddDate(20, 0, 0)))
	require.NotNil(t, o.FullChart().Current, "2024 is inside the Rahu Mahadasha")

	o = newOrchestrator(t, Options{Dasha: short, Now: end.AddDate(1, 0, 0)})
	_, err := o.Dasha().Current(end.AddDate(1, 0, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrOutOfRange))

	r := o.FullChart()
	assert.Nil(t, r.Current)
	p := o.PrecisionScores()
	assert.Nil(t, p.Period)
}

func TestReportsAreDeterministic(t *testing.T) {
	a, err := json.Marshal(newOrchestrator(t, Options{}).FullChart())
	require.NoError(t, err)
	b, err := json.Marshal(newOrchestrator(t, Options{}).FullChart())
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	later := newOrchestrator(t, Options{Now: testNow.Add(time.Hour)}).FullChart()
	first := newOrchestrator(t, Options{}).FullChart()
	assert.NotEqual(t, first.Meta.RequestID, later.Meta.RequestID)
}

func TestRequestIDOverride(t *testing.T) {
	r := newOrchestrator(t, Options{RequestID: "fixed"}).PrecisionScores()
	assert.Equal(t, "fixed", r.Meta.RequestID)
}

func TestRequestIDVariesByReport(t *testing.T) {
	o := newOrchestrator(t, Options{})
	assert.NotEqual(t, o.FullChart().Meta.RequestID, o.PrecisionScores().Meta.RequestID)
	assert.NotEqual(t, o.EventPotential("marriage").Meta.RequestID, o.EventPotential("career").Meta.RequestID)
}

func TestDashaTimeline(t *testing.T) {
	o := newOrchestrator(t, Options{})

	r := o.DashaTimeline(dasha.Mahadasha)
	require.NotEmpty(t, r.Periods)
	assert.Equal(t, zodiac.Moon, r.Periods[0].Lord)
	assert.Empty(t, r.Periods[0].Children)
	require.NotNil(t, r.Current)
	assert.Len(t, r.Upcoming, DefaultUpcoming)
	assert.Equal(t, r.Current.Antardasha.Start, r.Upcoming[0].Start)
	require.NotEmpty(t, r.Window)
	assert.Equal(t, r.Current.Mahadasha.Lord, r.Window[0].Lord)
	assert.Equal(t, dasha.Mahadasha, r.Window[0].Level)
	assert.Equal(t, r.Current.Antardasha.Start, r.Window[1].Start)

	r = o.DashaTimeline(dasha.Level(7))
	assert.Equal(t, dasha.Pratyantar, r.Depth)
	require.Len(t, r.Periods[0].Children, zodiac.NumBodies)
	assert.Len(t, r.Periods[0].Children[0].Children, zodiac.NumBodies)

	assert.Equal(t, dasha.Mahadasha, o.DashaTimeline(0).Depth)
}

func TestPrecisionScores(t *testing.T) {
	r := newOrchestrator(t, Options{}).PrecisionScores()
	for _, s := range r.Scores {
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 100.0)
		assert.Equal(t, round2(s.Score), s.Score)
	}
	require.NotNil(t, r.Period)
	assert.Equal(t, zodiac.Rahu, r.Period.Mahadasha)
	assert.Len(t, r.Aspects, 7)
}

func TestCategory(t *testing.T) {
	o := newOrchestrator(t, Options{})

	r, err := o.Category("marriage")
	require.NoError(t, err)
	assert.Equal(t, "marriage", r.Category.Name)
	require.Len(t, r.Ranking, zodiac.NumBodies)
	for i := 1; i < len(r.Ranking); i++ {
		assert.GreaterOrEqual(t, r.Ranking[i-1].Score, r.Ranking[i].Score)
	}
	assert.Len(t, r.Houses, 3)
	assert.Equal(t, "marriage", r.Potential.Event)
	assert.NotEqual(t, event.Unknown, r.Potential.Potential)

	unknown, err := o.Category("astrology")
	require.NoError(t, err)
	assert.Equal(t, "astrology", unknown.Category.Name)
	assert.Empty(t, unknown.Ranking)
	assert.Equal(t, event.Unknown, unknown.Potential.Potential)
}

func TestEventPotential(t *testing.T) {
	o := newOrchestrator(t, Options{})

	r := o.EventPotential("marriage")
	assert.Equal(t, []int{2, 7, 11}, r.Cusp.Houses)
	assert.Equal(t, o.Graph().House(7).Cusp.SubLord, r.Cusp.SubLord)
	assert.Equal(t, len(r.Cusp.FavorableHouses) > 0, r.Cusp.Potential == event.Yes)

	unknown := o.EventPotential("lottery")
	assert.Equal(t, event.Unknown, unknown.Cusp.Potential)
	assert.Equal(t, event.Unknown, unknown.Consolidated.Potential)
}

func TestNadi(t *testing.T) {
	o := newOrchestrator(t, Options{})

	all, err := o.Nadi("")
	require.NoError(t, err)
	assert.Len(t, all.Events, 10)
	assert.Equal(t, zodiac.Aries, all.Lordship.Ascendant)

	one, err := o.Nadi(nadi.Marriage)
	require.NoError(t, err)
	require.Len(t, one.Events, 1)
	assert.Equal(t, nadi.Marriage, one.Events[0].Event)

	unknown, err := o.Nadi("lottery")
	require.NoError(t, err)
	require.Len(t, unknown.Events, 1)
	assert.Equal(t, nadi.VerdictUnknown, unknown.Events[0].Verdict)
	assert.Nil(t, unknown.Events[0].Best)

	// both unknown paths agree with the KP analyzer
	assert.Equal(t, event.Unknown, o.EventPotential("lottery").Cusp.Potential)
}

func TestBuild(t *testing.T) {
	o := newOrchestrator(t, Options{})
	for _, kind := range Kinds() {
		arg := ""
		if kind == KindCategory {
			arg = "career"
		}
		v, err := o.Build(kind, arg)
		require.NoError(t, err, kind)
		assert.NotNil(t, v)
	}

	_, err := o.Build("horoscope", "")
	assert.True(t, errors.IsInvalidDomainValueError(err))

	_, err = o.Build(KindDashaTimeline, "deep")
	assert.True(t, errors.IsInvalidDomainValueError(err))
}

func TestHouseSystemOverride(t *testing.T) {
	c := loadSample(t)
	c.Cusps = []float64{10, 38, 66, 96, 128, 160, 190, 218, 246, 276, 308, 340}
	o, err := New(c, Options{Now: testNow, HouseSystem: chart.CuspHouses}, nil)
	require.NoError(t, err)
	assert.Equal(t, chart.CuspHouses, o.FullChart().HouseSystem)
	// the caller's chart is left untouched
	assert.Equal(t, chart.EqualHouses, c.HouseSystem)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.34, round2(2.345))
	assert.Equal(t, 2.36, round2(2.355))
	assert.Equal(t, 33.33, round2(100.0/3))
	assert.Equal(t, 50.0, round2(50))
}
