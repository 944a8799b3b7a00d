// Package display renders reports for the terminal or for other programs.
//
// Structured formats (json, yaml, toml) all start from the report's JSON
// encoding, so field names and time formats are identical across them.
package display

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/kpnadi/errors"
)

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat validates a format name. "yml" is accepted for yaml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.WithHintf(
			errors.NewInvalidDomainValueError("unsupported format %q", s),
			"supported formats: %v", Formats)
	}
}

// FormatFromCommand picks the output format for a command: an explicit
// --format flag wins, then --json, then the configured fallback.
func FormatFromCommand(cmd *cobra.Command, fallback string) (Format, error) {
	if cmd != nil {
		if f := cmd.Flag("format"); f != nil && f.Changed {
			return ParseFormat(f.Value.String())
		}
		if f := cmd.Flag("json"); f != nil && f.Changed && f.Value.String() == "true" {
			return FormatJSON, nil
		}
	}
	if fallback == "" {
		return FormatText, nil
	}
	return ParseFormat(fallback)
}

// Render writes v to w in the given format. pretty only affects JSON.
func Render(w io.Writer, v interface{}, format Format, pretty bool) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatText:
		return RenderText(w, v)
	case FormatJSON:
		data, err = MarshalJSON(v, pretty)
	case FormatYAML:
		data, err = MarshalYAML(v)
	case FormatTOML:
		data, err = MarshalTOML(v)
	default:
		return errors.NewInvalidDomainValueError("unsupported format %q", format)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s output", format)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, err = w.Write(data)
	return err
}

// MarshalJSON marshals v with two-space indentation when pretty is set.
func MarshalJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// MarshalYAML encodes v as YAML with two-space indentation.
func MarshalYAML(v interface{}) ([]byte, error) {
	generic, err := toGeneric(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalTOML encodes v as TOML. The top level must be an object.
func MarshalTOML(v interface{}) ([]byte, error) {
	generic, err := toGeneric(v)
	if err != nil {
		return nil, err
	}
	if _, ok := generic.(map[string]interface{}); !ok {
		return nil, errors.Newf("toml output needs an object, got %T", generic)
	}
	return toml.Marshal(generic)
}

// toGeneric round-trips v through JSON into maps, slices and scalars.
// Nulls are dropped (TOML has none) and integral numbers become int64.
func toGeneric(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return normalize(generic), nil
}

func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			if val == nil {
				delete(t, k)
				continue
			}
			t[k] = normalize(val)
		}
		return t
	case []interface{}:
		out := make([]interface{}, 0, len(t))
		for _, val := range t {
			if val != nil {
				out = append(out, normalize(val))
			}
		}
		return out
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return int64(t)
		}
		return t
	default:
		return v
	}
}
