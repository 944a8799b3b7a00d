package report

import (
	"sort"
	"time"

	"github.com/teranos/kpnadi/chart"
	"github.com/teranos/kpnadi/dasha"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/event"
	"github.com/teranos/kpnadi/logger"
	"github.com/teranos/kpnadi/nadi"
	"github.com/teranos/kpnadi/score"
	"github.com/teranos/kpnadi/significator"
	"github.com/teranos/kpnadi/zodiac"
)

// BodyDetail is one body row of the full chart.
type BodyDetail struct {
	Body       zodiac.Body  `json:"body"`
	Longitude  float64      `json:"longitude"`
	Retrograde bool         `json:"retrograde,omitempty"`
	House      int          `json:"house"`
	Lords      zodiac.Lords `json:"lords"`
	Signifies  []int        `json:"signifies"`
}

// CuspDetail is one house row of the full chart.
type CuspDetail struct {
	House     int          `json:"house"`
	Longitude float64      `json:"longitude"`
	Lords     zodiac.Lords `json:"lords"`
}

// FullChart is the complete KP picture of a chart.
type FullChart struct {
	Meta          Meta                  `json:"meta"`
	Birth         time.Time             `json:"birth"`
	HouseSystem   chart.HouseSystem     `json:"house_system"`
	Ascendant     zodiac.Lords          `json:"ascendant"`
	Bodies        []BodyDetail          `json:"bodies"`
	Cusps         []CuspDetail          `json:"cusps"`
	Significators []significator.Set    `json:"significators"`
	ByBody        map[zodiac.Body][]int `json:"by_body"`
	Balance       dasha.Balance         `json:"balance"`
	Current       *dasha.Current        `json:"current,omitempty"`
}

// FullChart assembles the full chart report.
func (o *Orchestrator) FullChart() FullChart {
	r := FullChart{
		Meta:          o.meta(KindFullChart),
		Birth:         o.birth,
		HouseSystem:   o.houses.System,
		Ascendant:     zodiac.Resolve(o.chart.AscendantLongitude()),
		Significators: o.graph.Houses[:],
		ByBody:        o.graph.ByBody(),
		Balance:       o.dasha.Balance(),
		Current:       o.current(),
	}
	positions := o.chart.Positions()
	for _, b := range zodiac.Bodies {
		r.Bodies = append(r.Bodies, BodyDetail{
			Body:       b,
			Longitude:  positions[b].Longitude,
			Retrograde: positions[b].Retrograde,
			House:      o.graph.Placement[b],
			Lords:      o.graph.BodyLords[b],
			Signifies:  r.ByBody[b],
		})
	}
	for h := 1; h <= chart.NumHouses; h++ {
		r.Cusps = append(r.Cusps, CuspDetail{
			House:     h,
			Longitude: o.houses.Cusp(h),
			Lords:     o.graph.House(h).Cusp,
		})
	}
	o.logger.Infow("Built report", logger.FieldReport, KindFullChart, logger.FieldRequestID, r.Meta.RequestID)
	return r
}

// DashaTimeline lists the period tree to a chosen depth.
type DashaTimeline struct {
	Meta       Meta           `json:"meta"`
	Birth      time.Time      `json:"birth"`
	HorizonEnd time.Time      `json:"horizon_end"`
	Depth      dasha.Level    `json:"depth"`
	Balance    dasha.Balance  `json:"balance"`
	Periods    []dasha.Period `json:"periods"`
	Current    *dasha.Current `json:"current,omitempty"`
	Upcoming   []dasha.Period `json:"upcoming,omitempty"`
	// Window is the flattened Mahadasha/Antardasha list for the next
	// WindowYears after now.
	Window []dasha.Period `json:"window,omitempty"`
}

const (
	// DefaultUpcoming is the number of upcoming Antardashas listed.
	DefaultUpcoming = 6
	// WindowYears is the span of the flattened timeline window.
	WindowYears = 10
)

// DashaTimeline builds the period timeline. Depth is clamped to 1..3.
func (o *Orchestrator) DashaTimeline(depth dasha.Level) DashaTimeline {
	if depth < dasha.Mahadasha {
		depth = dasha.Mahadasha
	}
	if depth > dasha.Pratyantar {
		depth = dasha.Pratyantar
	}
	r := DashaTimeline{
		Meta:       o.meta(KindDashaTimeline, depth.String()),
		Birth:      o.birth,
		HorizonEnd: o.dasha.HorizonEnd(),
		Depth:      depth,
		Balance:    o.dasha.Balance(),
		Periods:    o.dasha.Tree(depth),
		Current:    o.current(),
	}
	if r.Current != nil {
		upcoming, err := o.dasha.Upcoming(o.opts.Now, DefaultUpcoming)
		if err == nil {
			r.Upcoming = upcoming
		}
		span := time.Duration(WindowYears * o.dasha.Config().YearDays * float64(24*time.Hour))
		window, err := o.dasha.Timeline(o.opts.Now, o.opts.Now.Add(span))
		if err == nil {
			r.Window = window
		}
	}
	o.logger.Infow("Built report",
		logger.FieldReport, KindDashaTimeline,
		logger.FieldRequestID, r.Meta.RequestID,
		logger.FieldCount, len(r.Periods))
	return r
}

// PrecisionScores rates every body, the running period and the life aspects.
type PrecisionScores struct {
	Meta    Meta                              `json:"meta"`
	Scores  [zodiac.NumBodies]score.BodyScore `json:"scores"`
	Period  *score.PeriodQuality              `json:"period,omitempty"`
	Aspects []score.AspectRow                 `json:"aspects"`
}

// PrecisionScores builds the scores report.
func (o *Orchestrator) PrecisionScores() PrecisionScores {
	r := PrecisionScores{
		Meta:    o.meta(KindPrecisionScores),
		Scores:  score.All(o.graph),
		Aspects: score.Matrix(o.graph),
	}
	for i := range r.Scores {
		r.Scores[i].Score = round2(r.Scores[i].Score)
	}
	if cur := o.current(); cur != nil {
		q := score.Period(o.graph, cur.Mahadasha.Lord, cur.Antardasha.Lord)
		q.MahadashaScore = round2(q.MahadashaScore)
		q.AntardashaScore = round2(q.AntardashaScore)
		q.Score = round2(q.Score)
		r.Period = &q
	}
	o.logger.Infow("Built report", logger.FieldReport, KindPrecisionScores, logger.FieldRequestID, r.Meta.RequestID)
	return r
}

// CategoryReport focuses on one life aspect.
type CategoryReport struct {
	Meta      Meta                `json:"meta"`
	Category  score.LifeAspect    `json:"category"`
	Ranking   []score.AspectScore `json:"ranking"`
	Houses    []significator.Set  `json:"houses"`
	Potential event.Consolidated  `json:"potential"`
}

// categoryEvents maps life aspects to the event judged for them.
var categoryEvents = map[string]string{
	"career":    "career",
	"finance":   "finance",
	"marriage":  "marriage",
	"health":    "health",
	"education": "education",
	"children":  "children",
	"property":  "property",
}

// Category builds the report for one life aspect. An unknown name gives an
// empty ranking with an UNKNOWN potential.
func (o *Orchestrator) Category(name string) (CategoryReport, error) {
	a, ok := score.FindAspect(name)
	if !ok {
		o.logger.Debugw("Unknown category", logger.FieldEvent, name)
		return CategoryReport{
			Meta:      o.meta(KindCategory, name),
			Category:  score.LifeAspect{Name: name},
			Ranking:   []score.AspectScore{},
			Houses:    []significator.Set{},
			Potential: o.analyzer.Consolidate(name),
		}, nil
	}

	r := CategoryReport{
		Meta:      o.meta(KindCategory, name),
		Category:  a,
		Potential: o.analyzer.Consolidate(categoryEvents[name]),
	}
	for _, b := range zodiac.Bodies {
		r.Ranking = append(r.Ranking, score.Rate(o.graph, a, b))
	}
	sort.SliceStable(r.Ranking, func(i, j int) bool {
		return r.Ranking[i].Score > r.Ranking[j].Score
	})
	for _, h := range a.Positive {
		r.Houses = append(r.Houses, o.graph.House(h))
	}
	for i := range r.Potential.Checks {
		r.Potential.Checks[i].Percent = round2(r.Potential.Checks[i].Percent)
	}
	o.logger.Infow("Built report",
		logger.FieldReport, KindCategory,
		logger.FieldRequestID, r.Meta.RequestID,
		logger.FieldEvent, name)
	return r, nil
}

// EventPotential judges one event from its cusp and its karakas.
type EventPotential struct {
	Meta         Meta               `json:"meta"`
	Event        string             `json:"event"`
	Cusp         event.Result       `json:"cusp"`
	Consolidated event.Consolidated `json:"consolidated"`
}

// EventPotential builds the event report. Unknown events give UNKNOWN
// verdicts rather than an error.
func (o *Orchestrator) EventPotential(id string) EventPotential {
	r := EventPotential{
		Meta:         o.meta(KindEventPotential, id),
		Event:        id,
		Cusp:         o.analyzer.AnalyzeCusp(id),
		Consolidated: o.analyzer.Consolidate(id),
	}
	for i := range r.Consolidated.Checks {
		r.Consolidated.Checks[i].Percent = round2(r.Consolidated.Checks[i].Percent)
	}
	r.Consolidated.ConfidenceScore = round2(r.Consolidated.ConfidenceScore)
	o.logger.Infow("Built report",
		logger.FieldReport, KindEventPotential,
		logger.FieldRequestID, r.Meta.RequestID,
		logger.FieldEvent, id,
		"potential", r.Cusp.Potential)
	return r
}

// NadiAnalysis is the Nadi report for one or all events.
type NadiAnalysis struct {
	Meta          Meta                                `json:"meta"`
	Lordship      nadi.Lordship                       `json:"lordship"`
	Significators [zodiac.NumBodies]nadi.Significator `json:"significators"`
	Events        []nadi.EventReport                  `json:"events"`
}

// Nadi builds the Nadi report. An empty event id analyzes every event.
func (o *Orchestrator) Nadi(eventID string) (NadiAnalysis, error) {
	r := NadiAnalysis{
		Meta:          o.meta(KindNadi, eventID),
		Lordship:      o.nadi.Lordship(),
		Significators: o.nadi.Significators(),
	}
	if eventID == "" {
		all, err := o.nadi.AnalyzeAll()
		if err != nil {
			return NadiAnalysis{}, err
		}
		r.Events = all
	} else {
		one, err := o.nadi.AnalyzeEvent(eventID)
		if err != nil {
			return NadiAnalysis{}, err
		}
		r.Events = []nadi.EventReport{one}
	}
	// Best points into Analyses, so rounding Analyses covers it
	for i := range r.Events {
		for j := range r.Events[i].Analyses {
			roundAnalysis(&r.Events[i].Analyses[j])
		}
	}
	o.logger.Infow("Built report",
		logger.FieldReport, KindNadi,
		logger.FieldRequestID, r.Meta.RequestID,
		logger.FieldCount, len(r.Events))
	return r, nil
}

func roundAnalysis(a *nadi.Analysis) {
	a.Percentage = round2(a.Percentage)
}

// Build renders the named report kind. arg is the category, event or depth
// the kind needs.
func (o *Orchestrator) Build(kind, arg string) (any, error) {
	switch kind {
	case KindFullChart:
		return o.FullChart(), nil
	case KindDashaTimeline:
		depth, err := dasha.ParseLevel(arg)
		if err != nil {
			return nil, err
		}
		return o.DashaTimeline(depth), nil
	case KindPrecisionScores:
		return o.PrecisionScores(), nil
	case KindCategory:
		return o.Category(arg)
	case KindEventPotential:
		return o.EventPotential(arg), nil
	case KindNadi:
		return o.Nadi(arg)
	default:
		return nil, errors.WithHintf(
			errors.NewInvalidDomainValueError("unknown report %q", kind),
			"known reports: %v", Kinds())
	}
}

// Kinds lists the report kinds.
func Kinds() []string {
	return []string{KindFullChart, KindDashaTimeline, KindPrecisionScores, KindCategory, KindEventPotential, KindNadi}
}
