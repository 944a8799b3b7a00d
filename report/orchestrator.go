// Package report composes the engines into the report shapes handed to
// callers. It validates the chart once at the boundary and holds no other
// algorithmic content.
package report

import (
	"time"

	"go.uber.org/zap"

	"github.com/teranos/kpnadi/chart"
	"github.com/teranos/kpnadi/dasha"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/event"
	"github.com/teranos/kpnadi/logger"
	"github.com/teranos/kpnadi/nadi"
	"github.com/teranos/kpnadi/significator"
	"github.com/teranos/kpnadi/zodiac"
)

// Options control report generation.
type Options struct {
	// Now is the instant current periods are resolved against. Required.
	Now time.Time
	// Dasha configures the period horizon and year length.
	Dasha dasha.Config
	// HouseSystem overrides the chart's own house policy when set.
	HouseSystem chart.HouseSystem
	// RequestID overrides the derived request id.
	RequestID string
}

// Orchestrator holds the computed state for one chart.
type Orchestrator struct {
	chart    *chart.Chart
	opts     Options
	birth    time.Time
	houses   chart.Houses
	graph    significator.Graph
	dasha    *dasha.Builder
	nadi     *nadi.Engine
	analyzer *event.Analyzer
	digest   []byte
	logger   *zap.SugaredLogger
}

// New validates c and runs every engine over it. Chart problems are returned
// wrapped in errors.ErrInvalidChart.
func New(c *chart.Chart, opts Options, log *zap.SugaredLogger) (*Orchestrator, error) {
	if c == nil {
		return nil, errors.NewInvalidChartError("no chart supplied")
	}
	if opts.Now.IsZero() {
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrInvalidRequest, "report time is required"),
			"pass --now or set Options.Now explicitly")
	}
	if err := opts.Dasha.Validate(); err != nil {
		return nil, err
	}
	if opts.HouseSystem != "" {
		cp := *c
		cp.HouseSystem = opts.HouseSystem
		c = &cp
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	birth, err := c.BirthInstant()
	if err != nil {
		return nil, errors.Wrap(errors.Wrap(errors.ErrInvalidChart, err.Error()), "invalid birth")
	}

	l := logger.OrNop(log)
	o := &Orchestrator{
		chart:  c,
		opts:   opts,
		birth:  birth,
		houses: c.Houses(),
		digest: chartDigest(c),
		logger: l.Named("report"),
	}
	positions := c.Positions()
	o.graph = significator.Build(positions, o.houses)
	o.dasha = dasha.NewBuilder(birth, positions[zodiac.Moon].Longitude, opts.Dasha, l)
	o.nadi = nadi.NewEngine(positions, c.AscendantLongitude(), l)
	o.analyzer = event.NewAnalyzer(o.graph, l)

	o.logger.Debugw("Prepared chart",
		logger.FieldChart, c.Name,
		"house_system", o.houses.System,
		logger.FieldNow, opts.Now)
	return o, nil
}

// Graph returns the significator graph.
func (o *Orchestrator) Graph() significator.Graph {
	return o.graph
}

// Dasha returns the period builder.
func (o *Orchestrator) Dasha() *dasha.Builder {
	return o.dasha
}

func (o *Orchestrator) meta(kind string, args ...string) Meta {
	id := o.opts.RequestID
	if id == "" {
		id = requestID(kind, o.digest, o.opts.Now, args...)
	}
	return Meta{
		RequestID: id,
		Report:    kind,
		Version:   versionString(),
		Now:       o.opts.Now,
		Chart:     o.chart.Name,
	}
}

// current resolves the running periods, returning nil when now is outside the
// generated horizon.
func (o *Orchestrator) current() *dasha.Current {
	cur, err := o.dasha.Current(o.opts.Now)
	if err != nil {
		o.logger.Warnw("No current period", logger.FieldNow, o.opts.Now, logger.FieldError, err)
		return nil
	}
	return &cur
}
