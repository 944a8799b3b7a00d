package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teranos/kpnadi/errors"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, ChartSchemaConstraint, info.ChartSchema)
	assert.Contains(t, info.String(), "kpnadi")
	assert.Equal(t, "dev", info.Short())
}

func TestCheckChartSchema(t *testing.T) {
	tests := []struct {
		declared string
		wantErr  bool
	}{
		{"", false},
		{"1.0.0", false},
		{"1.1", false},
		{"1.9.3", false},
		{"2.0.0", true},
		{"0.9.0", true},
		{"not-a-version", true},
	}

	for _, tt := range tests {
		err := CheckChartSchema(tt.declared)
		if tt.wantErr {
			assert.Error(t, err, tt.declared)
			assert.True(t, errors.IsInvalidChartError(err), tt.declared)
		} else {
			assert.NoError(t, err, tt.declared)
		}
	}
}
