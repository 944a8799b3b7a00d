// Package chart is the boundary with the upstream ephemeris collaborator.
//
// A Chart carries already-computed positions: nine body longitudes with
// retrograde flags, the Ascendant, twelve house cusps and the birth instant.
// Nothing here computes astronomy; Validate only checks that the payload is
// complete enough for the engines.
package chart

import (
	"math"
	"strings"
	"time"

	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/geotime"
	"github.com/teranos/kpnadi/internal/util"
	"github.com/teranos/kpnadi/version"
	"github.com/teranos/kpnadi/zodiac"
)

// NumHouses is the number of houses.
const NumHouses = 12

// BodyPosition is one body as supplied upstream.
type BodyPosition struct {
	Body       zodiac.Body `json:"body" yaml:"body" toml:"body"`
	Longitude  float64     `json:"longitude" yaml:"longitude" toml:"longitude"`
	Retrograde bool        `json:"retrograde" yaml:"retrograde" toml:"retrograde"`
}

// Birth is the birth instant as written in the chart file.
type Birth struct {
	// Datetime is RFC3339, or "2006-01-02 15:04" read in Timezone
	Datetime string `json:"datetime,omitempty" yaml:"datetime,omitempty" toml:"datetime,omitempty"`
	Date     string `json:"date,omitempty" yaml:"date,omitempty" toml:"date,omitempty"`
	Time     string `json:"time,omitempty" yaml:"time,omitempty" toml:"time,omitempty"`
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty" toml:"timezone,omitempty"`
}

// Instant resolves the birth instant.
func (b Birth) Instant() (time.Time, error) {
	return geotime.ParseBirth(b.Datetime, b.Date, b.Time, b.Timezone)
}

// Chart is the per-request input to every engine.
type Chart struct {
	SchemaVersion string         `json:"schema_version,omitempty" yaml:"schema_version,omitempty" toml:"schema_version,omitempty"`
	Name          string         `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Birth         Birth          `json:"birth" yaml:"birth" toml:"birth"`
	Bodies        []BodyPosition `json:"bodies" yaml:"bodies" toml:"bodies"`
	Ascendant     *float64       `json:"ascendant" yaml:"ascendant" toml:"ascendant"`
	Cusps         []float64      `json:"cusps,omitempty" yaml:"cusps,omitempty" toml:"cusps,omitempty"`
	HouseSystem   HouseSystem    `json:"house_system,omitempty" yaml:"house_system,omitempty" toml:"house_system,omitempty"`
}

// Validate checks the chart is complete. Every failure wraps
// errors.ErrInvalidChart so callers can tell bad input from engine errors.
func (c *Chart) Validate() error {
	if c == nil {
		return errors.NewInvalidChartError("chart is nil")
	}
	if err := version.CheckChartSchema(c.SchemaVersion); err != nil {
		return err
	}

	if c.Ascendant == nil {
		return errors.WithHint(errors.NewInvalidChartError("missing Ascendant"),
			"the ephemeris export must include an ascendant longitude")
	}
	if !finite(*c.Ascendant) {
		return errors.NewInvalidChartError("ascendant is not a finite number")
	}

	seen := make(map[zodiac.Body]bool, zodiac.NumBodies)
	for _, p := range c.Bodies {
		if !p.Body.Valid() {
			return errors.NewInvalidChartError("unknown body %d", int(p.Body))
		}
		if seen[p.Body] {
			return errors.NewInvalidChartError("duplicate body %s", p.Body)
		}
		if !finite(p.Longitude) {
			return errors.NewInvalidChartError("%s longitude is not a finite number", p.Body)
		}
		seen[p.Body] = true
	}
	if !seen[zodiac.Moon] {
		return errors.WithHint(errors.NewInvalidChartError("missing Moon"),
			"the Moon longitude is required for the dasha balance")
	}
	var missing []string
	for _, b := range zodiac.Bodies {
		if !seen[b] {
			missing = append(missing, b.String())
		}
	}
	if len(missing) > 0 {
		return errors.NewInvalidChartError("missing bodies: %s", strings.Join(missing, ", "))
	}

	if len(c.Cusps) != 0 && len(c.Cusps) != NumHouses {
		return errors.NewInvalidChartError("expected %d cusps, got %d", NumHouses, len(c.Cusps))
	}
	for i, cusp := range c.Cusps {
		if !finite(cusp) {
			return errors.NewInvalidChartError("cusp %d is not a finite number", i+1)
		}
	}
	switch c.HouseSystem {
	case "", EqualHouses:
	case CuspHouses:
		if len(c.Cusps) != NumHouses {
			return errors.NewInvalidChartError("house_system %q requires %d cusps", CuspHouses, NumHouses)
		}
	default:
		return errors.NewInvalidChartError("unknown house_system %q", c.HouseSystem)
	}

	if _, err := c.Birth.Instant(); err != nil {
		return errors.Wrap(errors.Wrap(errors.ErrInvalidChart, err.Error()), "invalid birth")
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Position returns the supplied position of b with its longitude normalized.
func (c *Chart) Position(b zodiac.Body) (BodyPosition, bool) {
	for _, p := range c.Bodies {
		if p.Body == b {
			p.Longitude = util.NormalizeDegrees(p.Longitude)
			return p, true
		}
	}
	return BodyPosition{}, false
}

// Positions returns all nine positions indexed by body. Call Validate first.
func (c *Chart) Positions() [zodiac.NumBodies]BodyPosition {
	var out [zodiac.NumBodies]BodyPosition
	for _, b := range zodiac.Bodies {
		p, _ := c.Position(b)
		p.Body = b
		out[b] = p
	}
	return out
}

// AscendantLongitude returns the normalized Ascendant. Call Validate first.
func (c *Chart) AscendantLongitude() float64 {
	if c.Ascendant == nil {
		return 0
	}
	return util.NormalizeDegrees(*c.Ascendant)
}

// BirthInstant resolves the birth instant.
func (c *Chart) BirthInstant() (time.Time, error) {
	return c.Birth.Instant()
}

// Houses returns the house locator for the chart's policy.
func (c *Chart) Houses() Houses {
	return NewHouses(c.HouseSystem, c.AscendantLongitude(), c.Cusps)
}
