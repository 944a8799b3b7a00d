package am

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old backup", "path", back3, logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// loadOrInitialize reads a TOML config file into a map, or returns an empty
// map if it does not exist yet.
func loadOrInitialize(configPath string) (map[string]interface{}, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return nil, errors.Wrap(err, "failed to create config directory")
	}

	config := make(map[string]interface{})
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", configPath)
	}
	return config, nil
}

// SetValue writes one dotted key into the TOML file at configPath, keeping
// rotating backups of the previous content. The result must still validate.
func SetValue(configPath, key string, value interface{}) error {
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidRequest, "key %q needs a section", key),
			"use dot notation, e.g. engine.house_system")
	}
	if !knownKey(key) {
		return errors.WithHint(
			errors.Wrapf(errors.ErrNotFound, "unknown configuration key %q", key),
			"run 'kpnadi am show' to list keys")
	}

	config, err := loadOrInitialize(configPath)
	if err != nil {
		return err
	}

	section := config
	for _, p := range parts[:len(parts)-1] {
		next, ok := section[p].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			section[p] = next
		}
		section = next
	}
	section[parts[len(parts)-1]] = value

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	// validate what would be written before touching the file
	candidate, err := loadBytes(data)
	if err != nil {
		return err
	}
	if err := candidate.Validate(); err != nil {
		return errors.Wrapf(err, "refusing to write %s", key)
	}

	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}
	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	logger.Debugw("Updated configuration", "key", key, "path", configPath)
	return nil
}

func loadBytes(data []byte) (*Config, error) {
	tmp, err := os.CreateTemp("", "kpnadi-am-*.toml")
	if err != nil {
		return nil, errors.Wrap(err, "failed to stage config")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, errors.Wrap(err, "failed to stage config")
	}
	tmp.Close()
	return LoadFromFile(tmp.Name())
}

func knownKey(key string) bool {
	v := newViper()
	for _, k := range v.AllKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// ParseValue converts a command-line string into the TOML scalar it most
// likely means: bool, integer, float, then string.
func ParseValue(s string) interface{} {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
