package am

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/kpnadi/errors"
)

// EnvPrefix is the prefix of environment overrides (KPNADI_ENGINE_YEAR_DAYS).
const EnvPrefix = "KPNADI"

// SystemConfigPath is the lowest precedence config file.
var SystemConfigPath = "/etc/kpnadi/am.toml"

var (
	mu             sync.Mutex
	globalConfig   *Config
	viperInstance  *viper.Viper
	explicitConfig string
)

// ConfigSources records, per dotted key, the file that last set it during
// the most recent load.
var ConfigSources = map[string]SourceInfo{}

// SetConfigFile pins the configuration to a single file (the --config flag).
// Environment variables still apply on top.
func SetConfigFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	explicitConfig = path
	globalConfig = nil
	viperInstance = nil
}

// Load reads the kpnadi configuration using Viper
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	mu.Lock()
	defer mu.Unlock()
	v, err := initViper()
	if err != nil {
		// an unreadable explicit file still yields defaults and env
		v = newViper()
	}
	return v
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Set defaults but don't bind environment variables for this specific load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}

	return &config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	explicitConfig = ""
	ConfigSources = map[string]SourceInfo{}
}

func newViper() *viper.Viper {
	v := viper.New()

	// Set up environment variable binding
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	return v
}

// initViper initializes Viper with configuration sources and defaults.
// Callers hold mu.
func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v := newViper()
	ConfigSources = map[string]SourceInfo{}

	if explicitConfig != "" {
		if err := mergeFile(v, explicitConfig, SourceExplicit); err != nil {
			return nil, errors.WithHint(err, "check the path passed with --config")
		}
	} else {
		// Manually merge configs in precedence order: system -> user -> project -> env vars
		mergeConfigFiles(v)
	}

	viperInstance = v
	return v, nil
}

// UserConfigPath returns ~/.kpnadi/am.toml, or "" when there is no home.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kpnadi", "am.toml")
}

// findProjectConfig searches for am.toml by walking up the directory tree
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		amPath := filepath.Join(dir, "am.toml")
		if _, err := os.Stat(amPath); err == nil {
			return amPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// ConfigCandidate is one file in the configuration cascade.
type ConfigCandidate struct {
	Path   string       `json:"path"`
	Source ConfigSource `json:"source"`
	Exists bool         `json:"exists"`
}

// Cascade lists the files checked, lowest precedence first.
func Cascade() []ConfigCandidate {
	mu.Lock()
	explicit := explicitConfig
	mu.Unlock()
	return cascade(explicit)
}

// cascade builds the candidate list without touching mu.
func cascade(explicit string) []ConfigCandidate {
	if explicit != "" {
		return []ConfigCandidate{candidate(explicit, SourceExplicit)}
	}

	out := []ConfigCandidate{candidate(SystemConfigPath, SourceSystem)}
	if user := UserConfigPath(); user != "" {
		out = append(out, candidate(user, SourceUser))
	}
	if project := findProjectConfig(); project != "" {
		out = append(out, candidate(project, SourceProject))
	}
	return out
}

func candidate(path string, source ConfigSource) ConfigCandidate {
	_, err := os.Stat(path)
	return ConfigCandidate{Path: path, Source: source, Exists: err == nil}
}

// mergeConfigFiles manually merges configuration files in the correct precedence order
// Precedence (lowest to highest): system < user < project < env vars
func mergeConfigFiles(v *viper.Viper) {
	for _, c := range cascade("") {
		if !c.Exists {
			continue
		}
		// unreadable files are skipped; am validate reports them
		_ = mergeFile(v, c.Path, c.Source)
	}
}

func mergeFile(v *viper.Viper, path string, source ConfigSource) error {
	tempViper := viper.New()
	tempViper.SetConfigFile(path)
	tempViper.SetConfigType("toml")

	if err := tempViper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	// MergeConfigMap keeps env vars above file values
	if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
		return errors.Wrapf(err, "failed to merge config file %s", path)
	}
	for _, key := range tempViper.AllKeys() {
		ConfigSources[key] = SourceInfo{Source: source, Path: path}
	}
	return nil
}

// Get returns a configuration value using dot notation
func Get(key string) interface{} {
	return GetViper().Get(key)
}

// GetString returns a configuration value as string using dot notation
func GetString(key string) string {
	return GetViper().GetString(key)
}

// GetBool returns a configuration value as bool using dot notation
func GetBool(key string) bool {
	return GetViper().GetBool(key)
}

// GetFloat64 returns a configuration value as float64 using dot notation
func GetFloat64(key string) float64 {
	return GetViper().GetFloat64(key)
}
