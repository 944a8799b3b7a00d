// Package am loads kpnadi configuration ("I am") from am.toml files and
// KPNADI_* environment variables.
package am

// Config represents the kpnadi configuration
type Config struct {
	Engine EngineConfig `mapstructure:"engine" json:"engine" yaml:"engine" toml:"engine"`
	Output OutputConfig `mapstructure:"output" json:"output" yaml:"output" toml:"output"`
	Log    LogConfig    `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
	Watch  WatchConfig  `mapstructure:"watch" json:"watch" yaml:"watch" toml:"watch"`
}

// EngineConfig configures the computation engines
type EngineConfig struct {
	DashaHorizonYears float64 `mapstructure:"dasha_horizon_years" json:"dasha_horizon_years" yaml:"dasha_horizon_years" toml:"dasha_horizon_years"` // years of Mahadashas generated from birth
	YearDays          float64 `mapstructure:"year_days" json:"year_days" yaml:"year_days" toml:"year_days"`                                         // days in one dasha year
	HouseSystem       string  `mapstructure:"house_system" json:"house_system" yaml:"house_system" toml:"house_system"`                             // equal or cusp, empty uses the chart's own
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Format string `mapstructure:"format" json:"format" yaml:"format" toml:"format"` // text, json, yaml, toml
	Pretty bool   `mapstructure:"pretty" json:"pretty" yaml:"pretty" toml:"pretty"` // indent json output
}

// LogConfig configures the logger
type LogConfig struct {
	JSON  bool   `mapstructure:"json" json:"json" yaml:"json" toml:"json"`
	Theme string `mapstructure:"theme" json:"theme" yaml:"theme" toml:"theme"` // Color theme: gruvbox, everforest
}

// WatchConfig configures --watch mode
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms" toml:"debounce_ms"`
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// Supported values.
var (
	OutputFormats = []string{"text", "json", "yaml", "toml"}
	HouseSystems  = []string{"equal", "cusp"}
	LogThemes     = []string{"everforest", "gruvbox"}
)
