package am

import (
	"github.com/teranos/kpnadi/dasha"
	"github.com/teranos/kpnadi/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Horizon: 0 = use default, negative or beyond the cap is invalid
	if c.Engine.DashaHorizonYears < 0 {
		return errors.Newf("engine.dasha_horizon_years must be >= 0, got %g", c.Engine.DashaHorizonYears)
	}
	if c.Engine.DashaHorizonYears > dasha.MaxHorizonYears {
		return errors.WithHintf(
			errors.Newf("engine.dasha_horizon_years must be <= %g, got %g", dasha.MaxHorizonYears, c.Engine.DashaHorizonYears),
			"two full cycles (%g years) is the supported maximum", dasha.MaxHorizonYears)
	}

	if c.Engine.YearDays < 0 {
		return errors.Newf("engine.year_days must be >= 0, got %g", c.Engine.YearDays)
	}

	if c.Engine.HouseSystem != "" && !oneOf(c.Engine.HouseSystem, HouseSystems) {
		return errors.Newf("engine.house_system must be one of %v, got %q", HouseSystems, c.Engine.HouseSystem)
	}

	if c.Output.Format != "" && !oneOf(c.Output.Format, OutputFormats) {
		return errors.Newf("output.format must be one of %v, got %q", OutputFormats, c.Output.Format)
	}

	if c.Log.Theme != "" && !oneOf(c.Log.Theme, LogThemes) {
		return errors.Newf("log.theme must be one of %v, got %q", LogThemes, c.Log.Theme)
	}

	// Debounce: 0 = reload on every event, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}

// DashaConfig converts the engine settings for the period builder.
func (c *Config) DashaConfig() dasha.Config {
	return dasha.Config{
		HorizonYears: c.Engine.DashaHorizonYears,
		YearDays:     c.Engine.YearDays,
	}
}

func oneOf(s string, allowed []string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
