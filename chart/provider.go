package chart

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/logger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Provider supplies resolved chart data. Implementations wrap whatever
// ephemeris service or export the deployment uses; ref is provider-specific.
type Provider interface {
	Load(ctx context.Context, ref string) (*Chart, error)
}

// Format is a chart file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.WithHint(
			errors.Newf("unsupported chart file extension %q", filepath.Ext(path)),
			"use .json, .yaml, .yml or .toml")
	}
}

// Decode parses a chart payload. The result is not validated.
func Decode(data []byte, format Format) (*Chart, error) {
	var c Chart
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
			return nil, errors.Wrap(errors.Wrap(errors.ErrInvalidChart, err.Error()), "failed to decode JSON chart")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, errors.Wrap(errors.Wrap(errors.ErrInvalidChart, err.Error()), "failed to decode YAML chart")
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &c); err != nil {
			return nil, errors.Wrap(errors.Wrap(errors.ErrInvalidChart, err.Error()), "failed to decode TOML chart")
		}
	default:
		return nil, errors.Newf("unknown chart format %q", format)
	}
	return &c, nil
}

// FileProvider reads pre-computed charts exported by an ephemeris tool.
type FileProvider struct {
	logger *zap.SugaredLogger
}

// NewFileProvider creates a file-backed Provider.
func NewFileProvider(log *zap.SugaredLogger) *FileProvider {
	return &FileProvider{logger: logger.OrNop(log).Named("chart")}
}

// Load reads and validates the chart at path.
func (p *FileProvider) Load(ctx context.Context, path string) (*Chart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read chart file %s", path)
	}

	c, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "chart file %s", path)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "chart file %s", path)
	}

	p.logger.Infow("Loaded chart",
		logger.FieldChart, path,
		"format", string(format),
		"name", c.Name,
		"house_system", string(c.Houses().System))
	return c, nil
}
