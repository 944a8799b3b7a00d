package am

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Engine defaults
	v.SetDefault("engine.dasha_horizon_years", 120.0) // one full Vimshottari cycle
	v.SetDefault("engine.year_days", 365.25)
	v.SetDefault("engine.house_system", "") // empty: the chart file decides

	// Output defaults
	v.SetDefault("output.format", "text")
	v.SetDefault("output.pretty", true)

	// Log defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", "everforest")

	// Watch defaults
	v.SetDefault("watch.debounce_ms", 300)
}
