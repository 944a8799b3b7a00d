package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/kpnadi/am"
	"github.com/teranos/kpnadi/errors"
)

// setup isolates configuration in temp dirs and returns the absolute path
// of the sample chart.
func setup(t *testing.T) string {
	t.Helper()
	sample, err := filepath.Abs(filepath.Join("..", "..", "..", "chart", "testdata", "sample.json"))
	require.NoError(t, err)

	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))

	oldSystem := am.SystemConfigPath
	am.SystemConfigPath = filepath.Join(t.TempDir(), "am.toml")
	am.Reset()
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		am.SystemConfigPath = oldSystem
		am.Reset()
	})
	return sample
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	am.Reset()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func decode(t *testing.T, out string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &m), out)
	return m
}

func TestChartCommand(t *testing.T) {
	sample := setup(t)

	out, err := run(t, "chart", sample, "--now", "2024-01-01", "--format", "json")
	require.NoError(t, err)
	m := decode(t, out)
	assert.Equal(t, "full_chart", m["meta"].(map[string]interface{})["report"])
	assert.Len(t, m["bodies"], 9)
	assert.Len(t, m["cusps"], 12)

	again, err := run(t, "chart", sample, "--now", "2024-01-01", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, out, again, "identical inputs render identical bytes")
}

func TestDashaCommand(t *testing.T) {
	sample := setup(t)

	out, err := run(t, "dasha", sample, "--now", "2024-01-01", "--depth", "md", "-j")
	require.NoError(t, err)
	m := decode(t, out)
	assert.Equal(t, "mahadasha", m["depth"])
	periods := m["periods"].([]interface{})
	require.NotEmpty(t, periods)
	assert.NotContains(t, periods[0].(map[string]interface{}), "children")

	_, err = run(t, "dasha", sample, "--now", "2024-01-01", "--depth", "deep")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidDomainValueError(err))
}

func TestEventAndNadiCommands(t *testing.T) {
	sample := setup(t)

	out, err := run(t, "event", sample, "marriage", "--now", "2024-01-01", "--format", "yaml")
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &m))
	assert.Equal(t, "marriage", m["event"])
	assert.Contains(t, m["cusp"], "potential")

	out, err = run(t, "event", sample, "space_travel", "--now", "2024-01-01", "-j")
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN", decode(t, out)["cusp"].(map[string]interface{})["potential"])

	out, err = run(t, "nadi", sample, "government_job", "--now", "2024-01-01", "-j")
	require.NoError(t, err)
	assert.Len(t, decode(t, out)["events"], 1)

	out, err = run(t, "nadi", sample, "space_travel", "--now", "2024-01-01", "-j")
	require.NoError(t, err)
	events := decode(t, out)["events"].([]interface{})
	require.Len(t, events, 1)
	assert.Equal(t, "UNKNOWN", events[0].(map[string]interface{})["verdict"])

	out, err = run(t, "nadi", sample, "space_travel", "--now", "2024-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "UNKNOWN")
}

func TestCategoryAndScoresCommands(t *testing.T) {
	sample := setup(t)

	out, err := run(t, "scores", sample, "--now", "2024-01-01", "--format", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "request_id")

	out, err = run(t, "category", sample, "career", "--now", "2024-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "career")

	out, err = run(t, "category", sample, "luck", "--now", "2024-01-01", "-j")
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN", decode(t, out)["potential"].(map[string]interface{})["potential"])
}

func TestReportFlagErrors(t *testing.T) {
	sample := setup(t)

	_, err := run(t, "chart", sample, "--now", "someday")
	assert.Error(t, err)

	_, err = run(t, "chart", sample, "--now", "2024-01-01", "--house-system", "placidus")
	assert.Error(t, err)

	_, err = run(t, "chart", sample, "--now", "2024-01-01", "--horizon", "-4")
	assert.Error(t, err)

	_, err = run(t, "chart", sample, "--now", "2024-01-01", "--format", "xml")
	assert.Error(t, err)

	_, err = run(t, "chart", filepath.Join(t.TempDir(), "missing.json"), "--now", "2024-01-01")
	assert.Error(t, err)
}

func TestNakshatraCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "nakshatra", "purva", "phalguni", "--sub-sub", "-j")
	require.NoError(t, err)
	m := decode(t, out)
	assert.Equal(t, "Purva Phalguni", m["nakshatra"].(map[string]interface{})["name"])
	subs := m["subs"].([]interface{})
	require.Len(t, subs, 9)
	assert.Equal(t, "Venus", subs[0].(map[string]interface{})["lord"])
	assert.Len(t, subs[0].(map[string]interface{})["sub_subs"], 9)

	out, err = run(t, "nakshatra", "rohini")
	require.NoError(t, err)
	assert.Contains(t, out, "Rohini")

	_, err = run(t, "nakshatra", "pluto")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidDomainValueError(err))
}

func TestRequestIDFlag(t *testing.T) {
	sample := setup(t)

	out, err := run(t, "scores", sample, "--now", "2024-01-01", "--request-id", "fixed-id", "-j")
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", decode(t, out)["meta"].(map[string]interface{})["request_id"])
}

func TestAmCommands(t *testing.T) {
	sample := setup(t)

	out, err := run(t, "am", "get", "engine.year_days")
	require.NoError(t, err)
	assert.Equal(t, "365.25\n", out)

	_, err = run(t, "am", "get", "engine.missing")
	assert.True(t, errors.IsNotFoundError(err))

	out, err = run(t, "am", "set", "output.format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "output.format = json")

	out, err = run(t, "am", "get", "output.format")
	require.NoError(t, err)
	assert.Equal(t, "json\n", out)

	// the configured format now applies without flags
	out, err = run(t, "chart", sample, "--now", "2024-01-01")
	require.NoError(t, err)
	decode(t, out)

	_, err = run(t, "am", "set", "output.format", "xml")
	assert.Error(t, err)

	out, err = run(t, "am", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "valid")

	out, err = run(t, "am", "where")
	require.NoError(t, err)
	assert.Contains(t, out, "output.format = json  (user")

	out, err = run(t, "am", "show", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "json", decode(t, out)["output"].(map[string]interface{})["format"])
}

func TestExplicitConfigFlag(t *testing.T) {
	sample := setup(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[output]\nformat = \"json\"\npretty = false\n"), 0644))

	out, err := run(t, "scores", sample, "--now", "2024-01-01", "--config", path)
	require.NoError(t, err)
	decode(t, out)
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("\n")), "pretty=false gives one line")
}

func TestVersionCommand(t *testing.T) {
	setup(t)

	out, err := run(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, decode(t, out), "chart_schema")

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "kpnadi")
}
