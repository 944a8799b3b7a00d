package event

import (
	"go.uber.org/zap"

	"github.com/teranos/kpnadi/logger"
	"github.com/teranos/kpnadi/score"
	"github.com/teranos/kpnadi/significator"
	"github.com/teranos/kpnadi/zodiac"
)

// Potential is the verdict on an event.
type Potential string

const (
	Yes     Potential = "YES"
	No      Potential = "NO"
	Mixed   Potential = "MIXED"
	Unknown Potential = "UNKNOWN"
)

// Confidence grades a verdict.
type Confidence string

const (
	High   Confidence = "HIGH"
	Medium Confidence = "MEDIUM"
	Low    Confidence = "LOW"
	None   Confidence = "NONE"
)

// Score returns the numeric value used when averaging confidences.
func (c Confidence) Score() float64 {
	switch c {
	case High:
		return 90
	case Medium:
		return 60
	case Low:
		return 30
	default:
		return 0
	}
}

func confidenceOf(score float64) Confidence {
	switch {
	case score >= 75:
		return High
	case score >= 50:
		return Medium
	case score > 0:
		return Low
	default:
		return None
	}
}

// Result is the single-factor check of one sub lord against one event.
type Result struct {
	Event           string      `json:"event"`
	Houses          []int       `json:"houses"`
	SubLord         zodiac.Body `json:"sub_lord"`
	SubLordHouses   []int       `json:"sub_lord_houses"`
	FavorableHouses []int       `json:"favorable_houses"`
	Potential       Potential   `json:"potential"`
	Confidence      Confidence  `json:"confidence"`
}

// Check intersects the houses a sub lord signifies with the event's houses.
// Confidence is HIGH for every known event.
func Check(id string, subLord zodiac.Body, subLordHouses []int) Result {
	r := Result{
		Event:           id,
		SubLord:         subLord,
		SubLordHouses:   subLordHouses,
		FavorableHouses: []int{},
	}
	if r.SubLordHouses == nil {
		r.SubLordHouses = []int{}
	}
	e, ok := Lookup(id)
	if !ok {
		r.Houses = []int{}
		r.Potential = Unknown
		r.Confidence = None
		return r
	}
	r.Houses = e.Houses

	signified := make(map[int]bool, len(subLordHouses))
	for _, h := range subLordHouses {
		signified[h] = true
	}
	for _, h := range e.Houses {
		if signified[h] {
			r.FavorableHouses = append(r.FavorableHouses, h)
		}
	}

	r.Confidence = High
	if len(r.FavorableHouses) > 0 {
		r.Potential = Yes
	} else {
		r.Potential = No
	}
	return r
}

// KarakaCheck is one karaka's contribution to a consolidated verdict.
type KarakaCheck struct {
	Karaka  zodiac.Body `json:"karaka"`
	Result  Result      `json:"result"`
	Percent float64     `json:"percent"`
	Grade   score.Band  `json:"grade"`
}

// Consolidated aggregates the checks of every karaka of an event.
type Consolidated struct {
	Event           string        `json:"event"`
	Checks          []KarakaCheck `json:"checks"`
	Potential       Potential     `json:"potential"`
	Confidence      Confidence    `json:"confidence"`
	ConfidenceScore float64       `json:"confidence_score"`
}

// Analyzer runs event checks against one significator graph.
type Analyzer struct {
	graph  significator.Graph
	logger *zap.SugaredLogger
}

// NewAnalyzer creates an Analyzer over g.
func NewAnalyzer(g significator.Graph, log *zap.SugaredLogger) *Analyzer {
	return &Analyzer{graph: g, logger: logger.OrNop(log).Named("event")}
}

// CheckBody runs the single-factor check with the houses b signifies.
func (a *Analyzer) CheckBody(id string, b zodiac.Body) Result {
	return Check(id, b, a.graph.HousesOf(b))
}

// AnalyzeCusp judges an event from the sub lord of its deciding cusp.
func (a *Analyzer) AnalyzeCusp(id string) Result {
	e, ok := Lookup(id)
	if !ok {
		a.logger.Debugw("Unknown event", logger.FieldEvent, id)
		return Check(id, 0, nil)
	}
	subLord := a.graph.House(e.Cusp).Cusp.SubLord
	r := a.CheckBody(id, subLord)
	a.logger.Debugw("Analyzed cusp",
		logger.FieldEvent, id,
		logger.FieldHouse, e.Cusp,
		logger.FieldLord, subLord.String(),
		"potential", r.Potential)
	return r
}

// Consolidate checks the sub lord of each karaka of the event. Any Excellent
// or Good karaka gives YES, all Weak gives NO, otherwise MIXED.
func (a *Analyzer) Consolidate(id string) Consolidated {
	c := Consolidated{Event: id, Checks: []KarakaCheck{}}
	e, ok := Lookup(id)
	ks := Karakas(id)
	if !ok || len(ks) == 0 {
		a.logger.Debugw("Unknown event", logger.FieldEvent, id)
		c.Potential = Unknown
		c.Confidence = None
		return c
	}

	total := 0.0
	strong, weak := 0, 0
	for _, k := range ks {
		subLord := a.graph.BodyLords[k].SubLord
		r := a.CheckBody(id, subLord)
		pct := 100 * float64(len(r.FavorableHouses)) / float64(len(e.Houses))
		kc := KarakaCheck{Karaka: k, Result: r, Percent: pct, Grade: score.BandOf(pct)}
		switch kc.Grade {
		case score.Excellent, score.Good:
			strong++
		case score.Weak:
			weak++
		}
		total += r.Confidence.Score()
		c.Checks = append(c.Checks, kc)
	}

	switch {
	case strong > 0:
		c.Potential = Yes
	case weak == len(ks):
		c.Potential = No
	default:
		c.Potential = Mixed
	}
	c.ConfidenceScore = total / float64(len(ks))
	c.Confidence = confidenceOf(c.ConfidenceScore)

	a.logger.Debugw("Consolidated karakas",
		logger.FieldEvent, id,
		logger.FieldCount, len(ks),
		"potential", c.Potential)
	return c
}

// All runs AnalyzeCusp for every known event.
func (a *Analyzer) All() []Result {
	ids := IDs()
	out := make([]Result, 0, len(ids))
	for _, id := range ids {
		out = append(out, a.AnalyzeCusp(id))
	}
	return out
}
