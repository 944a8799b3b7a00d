package display

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/kpnadi/chart"
	"github.com/teranos/kpnadi/dasha"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/report"
)

func newOrchestrator(t *testing.T) *report.Orchestrator {
	t.Helper()
	c, err := chart.NewFileProvider(nil).Load(context.Background(), "../chart/testdata/sample.json")
	require.NoError(t, err)
	o, err := report.New(c, report.Options{Now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}, nil)
	require.NoError(t, err)
	return o
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"text": FormatText, "JSON": FormatJSON, "yml": FormatYAML, " toml ": FormatTOML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidDomainValueError(err))
}

func TestFormatFromCommand(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "x"}
		cmd.Flags().String("format", "", "")
		cmd.Flags().Bool("json", false, "")
		return cmd
	}

	f, err := FormatFromCommand(newCmd(), "yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f, "configured fallback applies without flags")

	cmd := newCmd()
	require.NoError(t, cmd.Flags().Set("json", "true"))
	f, err = FormatFromCommand(cmd, "yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	require.NoError(t, cmd.Flags().Set("format", "toml"))
	f, err = FormatFromCommand(cmd, "yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f, "--format beats --json")

	f, err = FormatFromCommand(nil, "")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)
}

func TestNormalize(t *testing.T) {
	in := map[string]interface{}{
		"house": 7.0,
		"score": 66.67,
		"gone":  nil,
		"list":  []interface{}{1.0, nil, "x"},
	}
	out := normalize(in).(map[string]interface{})
	assert.Equal(t, int64(7), out["house"])
	assert.Equal(t, 66.67, out["score"])
	assert.NotContains(t, out, "gone")
	assert.Equal(t, []interface{}{int64(1), "x"}, out["list"])
}

func TestRenderStructured(t *testing.T) {
	o := newOrchestrator(t)
	r := o.PrecisionScores()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, FormatJSON, false))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "compact json is one line")
	var fromJSON map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fromJSON))
	assert.Equal(t, r.Meta.RequestID, fromJSON["meta"].(map[string]interface{})["request_id"])

	buf.Reset()
	require.NoError(t, Render(&buf, r, FormatYAML, true))
	var fromYAML map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, r.Meta.RequestID, fromYAML["meta"].(map[string]interface{})["request_id"])
	assert.Len(t, fromYAML["scores"], 9)

	buf.Reset()
	require.NoError(t, Render(&buf, r, FormatTOML, true))
	var fromTOML map[string]interface{}
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &fromTOML))
	assert.Equal(t, r.Meta.RequestID, fromTOML["meta"].(map[string]interface{})["request_id"])
}

func TestRenderIsDeterministic(t *testing.T) {
	for _, f := range Formats {
		var a, b bytes.Buffer
		require.NoError(t, Render(&a, newOrchestrator(t).FullChart(), f, true))
		require.NoError(t, Render(&b, newOrchestrator(t).FullChart(), f, true))
		assert.Equal(t, a.String(), b.String(), "format %s", f)
	}
}

func TestMarshalTOMLNeedsObject(t *testing.T) {
	_, err := MarshalTOML([]int{1, 2})
	assert.Error(t, err)
}

func TestRenderText(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	o := newOrchestrator(t)
	nadiReport, err := o.Nadi("marriage")
	require.NoError(t, err)
	category, err := o.Category("career")
	require.NoError(t, err)
	unknownCategory, err := o.Category("luck")
	require.NoError(t, err)
	unknownNadi, err := o.Nadi("lottery")
	require.NoError(t, err)
	rohini, err := report.NewNakshatraTable("rohini", true)
	require.NoError(t, err)

	tests := []struct {
		name  string
		value interface{}
		want  []string
	}{
		{"full chart", o.FullChart(), []string{"Bodies", "Cusps", "Significators", "☽ Moon", "Ascendant"}},
		{"dasha", o.DashaTimeline(dasha.Antardasha), []string{"Vimshottari", "Mahadasha", "Running at 2024-01-01", "☊ Rahu"}},
		{"scores", o.PrecisionScores(), []string{"Precision scores", "Life aspects", "* karaka"}},
		{"category", category, []string{"career", "Rank", "Karakas"}},
		{"event", o.EventPotential("marriage"), []string{"marriage", "Cusp sub lord", "Consolidated"}},
		{"nadi", nadiReport, []string{"Nadi lordship", "marriage", "Best"}},
		{"unknown category", unknownCategory, []string{"luck", "Unknown category, potential UNKNOWN"}},
		{"unknown nadi event", unknownNadi, []string{"lottery", "Verdict  UNKNOWN"}},
		{"nakshatra", rohini, []string{"Rohini", "Star lord  ☽ Moon", "Sub-Sub", "40.0000°"}},
		{"fallback", map[string]int{"a": 1}, []string{`"a": 1`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderText(&buf, tt.value))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}
