package chart

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/zodiac"
)

func validChart() *Chart {
	longitudes := map[zodiac.Body]float64{
		zodiac.Sun: 358.2, zodiac.Moon: 40.0, zodiac.Mars: 290.5,
		zodiac.Mercury: 340.1, zodiac.Jupiter: 84.3, zodiac.Venus: 318.9,
		zodiac.Saturn: 292.7, zodiac.Rahu: 301.4, zodiac.Ketu: 121.4,
	}
	ascendant := 15.0
	c := &Chart{
		Name:      "test",
		Birth:     Birth{Datetime: "1990-04-12T06:30:00+05:30"},
		Ascendant: &ascendant,
	}
	for _, b := range zodiac.Bodies {
		c.Bodies = append(c.Bodies, BodyPosition{Body: b, Longitude: longitudes[b]})
	}
	return c
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Chart)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Chart) {}},
		{name: "missing ascendant", mutate: func(c *Chart) { c.Ascendant = nil }, wantErr: "missing Ascendant"},
		{name: "missing moon", mutate: func(c *Chart) { c.Bodies = c.Bodies[:1] }, wantErr: "missing Moon"},
		{name: "missing saturn", mutate: func(c *Chart) {
			c.Bodies = append(c.Bodies[:6], c.Bodies[7:]...)
		}, wantErr: "Saturn"},
		{name: "duplicate", mutate: func(c *Chart) { c.Bodies = append(c.Bodies, c.Bodies[0]) }, wantErr: "duplicate"},
		{name: "wrong cusp count", mutate: func(c *Chart) { c.Cusps = []float64{1, 2, 3} }, wantErr: "cusps"},
		{name: "cusp system without cusps", mutate: func(c *Chart) { c.HouseSystem = CuspHouses }, wantErr: "requires"},
		{name: "unknown house system", mutate: func(c *Chart) { c.HouseSystem = "koch" }, wantErr: "koch"},
		{name: "bad birth", mutate: func(c *Chart) { c.Birth = Birth{} }, wantErr: "birth"},
		{name: "future schema", mutate: func(c *Chart) { c.SchemaVersion = "2.0.0" }, wantErr: "schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validChart()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsInvalidChartError(err), "error should wrap ErrInvalidChart: %v", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPositions(t *testing.T) {
	c := validChart()
	c.Bodies[0].Longitude = 725
	require.NoError(t, c.Validate())

	positions := c.Positions()
	assert.Equal(t, zodiac.Sun, positions[zodiac.Sun].Body)
	assert.InDelta(t, 5, positions[zodiac.Sun].Longitude, 1e-9)
	assert.InDelta(t, 40, positions[zodiac.Moon].Longitude, 1e-9)

	birth, err := c.BirthInstant()
	require.NoError(t, err)
	assert.True(t, birth.Equal(time.Date(1990, 4, 12, 1, 0, 0, 0, time.UTC)))
}

func TestEqualHouses(t *testing.T) {
	h := NewHouses(EqualHouses, 15, nil)

	assert.InDelta(t, 15, h.Cusp(1), 1e-9)
	assert.InDelta(t, 345, h.Cusp(12), 1e-9)
	assert.Equal(t, 1, h.HouseOf(15))
	assert.Equal(t, 1, h.HouseOf(44.9))
	assert.Equal(t, 2, h.HouseOf(45))
	assert.Equal(t, 12, h.HouseOf(14.9))
	assert.Equal(t, 12, h.HouseOf(350))
}

func TestCuspHouses(t *testing.T) {
	cusps := []float64{350, 20, 45, 75, 110, 150, 170, 200, 225, 255, 290, 330}
	h := NewHouses(CuspHouses, 350, cusps)

	assert.Equal(t, 1, h.HouseOf(355))
	assert.Equal(t, 1, h.HouseOf(5))
	assert.Equal(t, 2, h.HouseOf(20))
	assert.Equal(t, 5, h.HouseOf(149.9))
	assert.Equal(t, 12, h.HouseOf(345))
}

func TestNth(t *testing.T) {
	assert.Equal(t, 7, Nth(1, 7))
	assert.Equal(t, 1, Nth(7, 7))
	assert.Equal(t, 3, Nth(10, 6))
	assert.Equal(t, 12, Nth(12, 1))
}

func TestDecodeFormats(t *testing.T) {
	for _, name := range []string{"sample.json", "sample.yaml", "sample.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join("testdata", name)
			format, err := FormatFromPath(path)
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)

			c, err := Decode(data, format)
			require.NoError(t, err)
			require.NoError(t, c.Validate())

			assert.Equal(t, "sample", c.Name)
			assert.InDelta(t, 15.0, c.AscendantLongitude(), 1e-9)
			mercury, ok := c.Position(zodiac.Mercury)
			require.True(t, ok)
			assert.True(t, mercury.Retrograde)
			assert.InDelta(t, 340.1, mercury.Longitude, 1e-9)
		})
	}
}

func TestDecodeRejectsUnknownBody(t *testing.T) {
	_, err := Decode([]byte(`{"bodies":[{"body":"Pluto","longitude":1}]}`), FormatJSON)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidChartError(err))
}

func TestFormatFromPath(t *testing.T) {
	_, err := FormatFromPath("chart.xml")
	assert.Error(t, err)

	f, err := FormatFromPath("chart.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
}

func TestFileProviderLoad(t *testing.T) {
	p := NewFileProvider(nil)

	c, err := p.Load(context.Background(), filepath.Join("testdata", "sample.yaml"))
	require.NoError(t, err)
	assert.Len(t, c.Bodies, zodiac.NumBodies)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bodies":[],"birth":{"date":"1990-01-01"}}`), 0644))
	_, err = p.Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidChartError(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Load(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.json")
	data, err := os.ReadFile(filepath.Join("testdata", "sample.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	w, err := NewWatcher(path, NewFileProvider(nil), nil)
	require.NoError(t, err)

	reloaded := make(chan *Chart, 1)
	w.OnReload(func(c *Chart) error {
		select {
		case reloaded <- c:
		default:
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Give the watcher a moment to start consuming events
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, data, 0644))

	select {
	case c := <-reloaded:
		assert.Equal(t, "sample", c.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload the chart")
	}
}
