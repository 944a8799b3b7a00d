package nadi

import (
	"go.uber.org/zap"

	"github.com/teranos/kpnadi/chart"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/logger"
	"github.com/teranos/kpnadi/zodiac"
)

// Analysis is the rating of one body for one event.
type Analysis struct {
	Event      string      `json:"event"`
	Body       zodiac.Body `json:"body"`
	Retrograde bool        `json:"retrograde,omitempty"`
	StarLord   zodiac.Body `json:"star_lord"`
	SubLord    zodiac.Body `json:"sub_lord"`

	Houses         []int `json:"houses"`
	StarLordHouses []int `json:"star_lord_houses"`
	SubLordHouses  []int `json:"sub_lord_houses"`

	PL Status `json:"pl"`
	NL Status `json:"nl"`
	SL Status `json:"sl"`

	Rating     Rating  `json:"rating"`
	Strength   int     `json:"strength"`
	Verdict    Verdict `json:"verdict"`
	Percentage float64 `json:"percentage"`

	// Royal and Downgraded are only meaningful for government_job.
	Royal      bool `json:"royal,omitempty"`
	Downgraded bool `json:"downgraded,omitempty"`

	Split Split `json:"split"`

	// SubLordGender is reported for child_birth.
	SubLordGender zodiac.Gender `json:"sub_lord_gender,omitempty"`
}

// EventReport rates every body for one event. An unknown event has verdict
// UNKNOWN, no analyses and no best body.
type EventReport struct {
	Event       string     `json:"event"`
	Verdict     Verdict    `json:"verdict"`
	Table       HouseTable `json:"table"`
	Analyses    []Analysis `json:"analyses"`
	Best        *Analysis  `json:"best,omitempty"`
	Suggestions []string   `json:"suggestions"`
}

// Engine evaluates Nadi significations for one chart.
type Engine struct {
	positions     [zodiac.NumBodies]chart.BodyPosition
	lords         [zodiac.NumBodies]zodiac.Lords
	lordship      Lordship
	significators [zodiac.NumBodies]Significator
	logger        *zap.SugaredLogger
}

// NewEngine builds the lordship and significator tables for a chart.
func NewEngine(positions [zodiac.NumBodies]chart.BodyPosition, ascendant float64, log *zap.SugaredLogger) *Engine {
	e := &Engine{
		positions: positions,
		lordship:  NewLordship(ascendant),
		logger:    logger.OrNop(log).Named("nadi"),
	}
	for _, b := range zodiac.Bodies {
		e.lords[b] = zodiac.Resolve(positions[b].Longitude)
	}
	e.significators = Significators(positions, e.lordship)
	return e
}

// Lordship returns the house lordship table.
func (e *Engine) Lordship() Lordship {
	return e.lordship
}

// Significators returns every body's significator.
func (e *Engine) Significators() [zodiac.NumBodies]Significator {
	return e.significators
}

// Significator returns one body's significator.
func (e *Engine) Significator(b zodiac.Body) Significator {
	return e.significators[b]
}

// Analyze rates body b for an event. An unknown event gives verdict UNKNOWN
// with the body's houses but no statuses or rating.
func (e *Engine) Analyze(event string, b zodiac.Body) (Analysis, error) {
	if !b.Valid() {
		return Analysis{}, errors.NewInvalidDomainValueError("unknown body %d", int(b))
	}
	table, known := EventHouses(event)

	lords := e.lords[b]
	sig := e.significators[b]
	a := Analysis{
		Event:          event,
		Body:           b,
		Retrograde:     sig.Retrograde,
		StarLord:       lords.StarLord,
		SubLord:        lords.SubLord,
		Houses:         sig.Houses,
		StarLordHouses: e.significators[lords.StarLord].Houses,
		SubLordHouses:  e.significators[lords.SubLord].Houses,
	}
	if !known {
		a.Verdict = VerdictUnknown
		return a, nil
	}
	a.PL = Evaluate(a.Houses, table)
	a.NL = Evaluate(a.StarLordHouses, table)
	a.SL = Evaluate(a.SubLordHouses, table)
	a.Rating = SuccessRating(a.NL, a.SL)

	if event == GovernmentJob {
		a.Royal = e.royal(b, lords)
		if !a.Royal {
			downgraded := downgrade(a.Rating)
			a.Downgraded = downgraded != a.Rating
			a.Rating = downgraded
		}
	}

	a.Strength = a.Rating.Strength()
	if sig.Retrograde && retrogradeBonusEvents[event] {
		a.Strength += RetrogradeBonus
		if a.Strength > MaxStrength {
			a.Strength = MaxStrength
		}
	}
	a.Verdict = VerdictOf(a.Rating)
	a.Percentage = Percentage(a.PL, a.NL, a.SL)
	a.Split = SplitHouses(event, a.Houses)

	if event == ChildBirth {
		a.SubLordGender = DetermineGender(lords.SubLord, e.significators[lords.SubLord].Sign)
	}
	return a, nil
}

// royal reports a Sun or Moon link through the body, its star lord or its sub
// lord, or occupation of Leo or Cancer.
func (e *Engine) royal(b zodiac.Body, lords zodiac.Lords) bool {
	for _, x := range []zodiac.Body{b, lords.StarLord, lords.SubLord} {
		if x == zodiac.Sun || x == zodiac.Moon {
			return true
		}
	}
	sign := e.significators[b].Sign
	return sign == zodiac.Leo || sign == zodiac.Cancer
}

// AnalyzeEvent rates every body for an event and picks the strongest.
// Unknown events give an UNKNOWN report rather than an error.
func (e *Engine) AnalyzeEvent(event string) (EventReport, error) {
	table, ok := EventHouses(event)
	if !ok {
		e.logger.Debugw("Unknown nadi event", logger.FieldEvent, event)
		return EventReport{
			Event:       event,
			Verdict:     VerdictUnknown,
			Analyses:    []Analysis{},
			Suggestions: []string{},
		}, nil
	}

	r := EventReport{Event: event, Table: table, Analyses: make([]Analysis, 0, zodiac.NumBodies)}
	var houseSets [][]int
	best := 0
	for i, b := range zodiac.Bodies {
		a, err := e.Analyze(event, b)
		if err != nil {
			return EventReport{}, err
		}
		r.Analyses = append(r.Analyses, a)
		if i > 0 && better(a, r.Analyses[best]) {
			best = i
		}
		if a.Verdict == VerdictYes {
			houseSets = append(houseSets, a.Houses)
		}
	}
	r.Best = &r.Analyses[best]
	r.Verdict = r.Best.Verdict
	r.Suggestions = Suggest(event, houseSets...)

	e.logger.Debugw("Analyzed nadi event",
		logger.FieldEvent, event,
		logger.FieldBody, r.Best.Body.String(),
		"rating", r.Best.Rating,
		logger.FieldCount, len(r.Suggestions))
	return r, nil
}

// better orders analyses by strength, then display percentage.
func better(a, b Analysis) bool {
	if a.Strength != b.Strength {
		return a.Strength > b.Strength
	}
	return a.Percentage > b.Percentage
}

// AnalyzeAll runs AnalyzeEvent for every supported event.
func (e *Engine) AnalyzeAll() ([]EventReport, error) {
	var out []EventReport
	for _, event := range Events() {
		r, err := e.AnalyzeEvent(event)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
