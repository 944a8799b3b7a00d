package dasha

import (
	"fmt"
	"time"

	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/internal/util"
	"github.com/teranos/kpnadi/logger"
	"github.com/teranos/kpnadi/zodiac"
	"go.uber.org/zap"
)

const (
	// DefaultYearDays is the Julian year used to turn weights into days.
	DefaultYearDays = 365.25

	// DefaultHorizonYears covers one full 120-year cycle.
	DefaultHorizonYears = 120.0

	// MaxHorizonYears keeps day offsets inside time.Duration range.
	MaxHorizonYears = 240.0
)

// Config controls tree generation.
type Config struct {
	HorizonYears float64
	YearDays     float64
}

// DefaultConfig returns the one-cycle horizon with Julian years.
func DefaultConfig() Config {
	return Config{HorizonYears: DefaultHorizonYears, YearDays: DefaultYearDays}
}

// Validate rejects a horizon beyond MaxHorizonYears and negative values.
// Zero fields mean the defaults.
func (c Config) Validate() error {
	if c.HorizonYears < 0 || c.YearDays < 0 {
		return errors.NewInvalidRequestError("dasha horizon %g and year length %g must not be negative",
			c.HorizonYears, c.YearDays)
	}
	if c.HorizonYears > MaxHorizonYears {
		return errors.WithHintf(
			errors.NewInvalidRequestError("dasha horizon %g years exceeds the maximum of %g", c.HorizonYears, MaxHorizonYears),
			"use a horizon of at most %g years", MaxHorizonYears)
	}
	return nil
}

// normalized fills defaults; NewBuilder clamps the horizon, Validate rejects it.
func (c Config) normalized() Config {
	if c.YearDays <= 0 {
		c.YearDays = DefaultYearDays
	}
	if c.HorizonYears <= 0 {
		c.HorizonYears = DefaultHorizonYears
	}
	if c.HorizonYears > MaxHorizonYears {
		c.HorizonYears = MaxHorizonYears
	}
	return c
}

// Builder generates periods for one birth.
// The Mahadasha sequence is computed eagerly; deeper levels on demand.
type Builder struct {
	birth      time.Time
	cfg        Config
	balance    Balance
	mahadashas []Period
	logger     *zap.SugaredLogger
}

// NewBuilder creates a Builder from the birth instant and birth Moon longitude.
func NewBuilder(birth time.Time, moonLongitude float64, cfg Config, log *zap.SugaredLogger) *Builder {
	b := &Builder{
		birth:  birth,
		cfg:    cfg.normalized(),
		logger: logger.OrNop(log).Named("dasha"),
	}
	b.balance = computeBalance(moonLongitude)
	b.mahadashas = b.generateMahadashas()

	b.logger.Debugw("Generated mahadasha sequence",
		logger.FieldLord, b.balance.Lord.String(),
		"remaining_years", b.balance.RemainingYears,
		logger.FieldHorizon, b.cfg.HorizonYears,
		logger.FieldCount, len(b.mahadashas))
	return b
}

func computeBalance(moonLongitude float64) Balance {
	lords := zodiac.Resolve(moonLongitude)
	fraction := lords.PositionInSegment / zodiac.NakshatraSpan
	return Balance{
		Lord:            lords.StarLord,
		ElapsedFraction: fraction,
		RemainingYears:  lords.StarLord.Weight() * (1 - fraction),
	}
}

func (b *Builder) generateMahadashas() []Period {
	horizonDays := b.cfg.HorizonYears * b.cfg.YearDays
	startIdx := b.balance.Lord.SequenceIndex()

	var out []Period
	cursor := 0.0
	for i := 0; cursor < horizonDays-util.FloatTolerance; i++ {
		lord := zodiac.SubSequence[(startIdx+i)%zodiac.NumBodies]
		years := lord.Weight()
		if i == 0 {
			years = b.balance.RemainingYears
		}
		end := cursor + years*b.cfg.YearDays
		p := b.period(lord, Mahadasha, cursor, end)
		p.Balance = i == 0
		out = append(out, p)
		cursor = end
	}
	return out
}

func (b *Builder) period(lord zodiac.Body, level Level, startDay, endDay float64) Period {
	return Period{
		Lord:         lord,
		Level:        level,
		Start:        b.at(startDay),
		End:          b.at(endDay),
		DurationDays: endDay - startDay,
		startDay:     startDay,
		endDay:       endDay,
	}
}

func (b *Builder) at(day float64) time.Time {
	return b.birth.Add(time.Duration(day * float64(24*time.Hour)))
}

// Birth returns the instant the tree is rooted at.
func (b *Builder) Birth() time.Time {
	return b.birth
}

// Config returns the effective configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Balance returns the Mahadasha balance at birth.
func (b *Builder) Balance() Balance {
	return b.balance
}

// HorizonEnd is the end of the last generated Mahadasha.
func (b *Builder) HorizonEnd() time.Time {
	return b.mahadashas[len(b.mahadashas)-1].End
}

// Mahadashas returns the generated Mahadasha sequence without children.
func (b *Builder) Mahadashas() []Period {
	out := make([]Period, len(b.mahadashas))
	copy(out, b.mahadashas)
	return out
}

// Children subdivides a period into its nine sub-periods, rotation starting
// at the period's own lord. Pratyantars have no children.
func (b *Builder) Children(parent Period) []Period {
	if parent.Level >= Pratyantar {
		return nil
	}
	portions := zodiac.Subdivide(parent.Lord, parent.startDay, parent.endDay-parent.startDay)
	out := make([]Period, 0, zodiac.NumBodies)
	for i, p := range portions {
		end := p.End
		if i == len(portions)-1 {
			end = parent.endDay
		}
		out = append(out, b.period(p.Lord, parent.Level+1, p.Start, end))
	}
	return out
}

// Tree returns the Mahadasha sequence expanded down to depth (1..3).
func (b *Builder) Tree(depth Level) []Period {
	out := b.Mahadashas()
	for i := range out {
		b.expand(&out[i], depth)
	}
	return out
}

func (b *Builder) expand(p *Period, depth Level) {
	if p.Level >= depth {
		return
	}
	p.Children = b.Children(*p)
	for i := range p.Children {
		b.expand(&p.Children[i], depth)
	}
}

// Current finds the periods containing now at all three levels.
// Only the containing branch is generated.
func (b *Builder) Current(now time.Time) (Current, error) {
	if now.Before(b.birth) {
		return Current{}, errors.WithHint(
			errors.NewOutOfRangeError("instant %s precedes birth %s",
				now.UTC().Format(time.RFC3339), b.birth.UTC().Format(time.RFC3339)),
			"periods only exist from the birth instant onwards")
	}

	md, ok := find(b.mahadashas, now)
	if !ok {
		return Current{}, errors.WithHint(
			errors.NewOutOfRangeError("instant %s is beyond the generated horizon ending %s",
				now.UTC().Format(time.RFC3339), b.HorizonEnd().UTC().Format(time.RFC3339)),
			b.horizonHint())
	}

	ad, ok := find(b.Children(md), now)
	if !ok {
		return Current{}, errors.AssertionFailedf("no antardasha of %s contains %s", md.Lord, now)
	}
	pd, ok := find(b.Children(ad), now)
	if !ok {
		return Current{}, errors.AssertionFailedf("no pratyantar of %s/%s contains %s", md.Lord, ad.Lord, now)
	}

	b.logger.Debugw("Resolved current period",
		logger.FieldNow, now,
		"mahadasha", md.Lord.String(),
		"antardasha", ad.Lord.String(),
		"pratyantar", pd.Lord.String())

	return Current{At: now, Mahadasha: md, Antardasha: ad, Pratyantar: pd}, nil
}

// Upcoming returns up to n Antardashas starting with the one containing now.
func (b *Builder) Upcoming(now time.Time, n int) ([]Period, error) {
	cur, err := b.Current(now)
	if err != nil {
		return nil, err
	}

	var out []Period
	started := false
	for _, md := range b.mahadashas {
		if md.End.Before(cur.Mahadasha.Start) || md.End.Equal(cur.Mahadasha.Start) {
			continue
		}
		for _, ad := range b.Children(md) {
			if !started && ad.Start.Equal(cur.Antardasha.Start) {
				started = true
			}
			if started {
				out = append(out, ad)
				if len(out) == n {
					return out, nil
				}
			}
		}
	}
	return out, nil
}

// Timeline flattens the Mahadashas and Antardashas overlapping [from, to)
// into one chronological list, each Mahadasha followed by its Antardashas.
func (b *Builder) Timeline(from, to time.Time) ([]Period, error) {
	if !from.Before(to) {
		return nil, errors.NewInvalidRequestError("timeline window %s..%s is empty",
			from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	}

	var out []Period
	for _, md := range b.mahadashas {
		if !overlaps(md, from, to) {
			continue
		}
		out = append(out, md)
		for _, ad := range b.Children(md) {
			if overlaps(ad, from, to) {
				out = append(out, ad)
			}
		}
	}
	return out, nil
}

func overlaps(p Period, from, to time.Time) bool {
	return p.Start.Before(to) && from.Before(p.End)
}

func (b *Builder) horizonHint() string {
	if b.cfg.HorizonYears >= MaxHorizonYears {
		return fmt.Sprintf("the horizon is already at the maximum of %.0f years", MaxHorizonYears)
	}
	return fmt.Sprintf("retry with a horizon larger than %.0f years (at most %.0f)", b.cfg.HorizonYears, MaxHorizonYears)
}

func find(periods []Period, t time.Time) (Period, bool) {
	for _, p := range periods {
		if p.Contains(t) {
			return p, true
		}
	}
	return Period{}, false
}
