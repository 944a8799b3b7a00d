package version

import (
	"github.com/Masterminds/semver/v3"
	"github.com/teranos/kpnadi/errors"
)

// ChartSchemaConstraint is the range of chart file schema versions this
// build can read. Files without a schema_version are treated as CurrentChartSchema.
const ChartSchemaConstraint = ">= 1.0.0, < 2.0.0"

// CurrentChartSchema is written into reports and assumed for unversioned files.
const CurrentChartSchema = "1.1.0"

// CheckChartSchema verifies a chart file's declared schema version.
func CheckChartSchema(declared string) error {
	if declared == "" {
		declared = CurrentChartSchema
	}

	v, err := semver.NewVersion(declared)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidChart, "invalid schema_version %q: %v", declared, err)
	}

	constraint, err := semver.NewConstraint(ChartSchemaConstraint)
	if err != nil {
		return errors.Wrap(err, "invalid built-in chart schema constraint")
	}

	if !constraint.Check(v) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrInvalidChart, "chart schema %s does not satisfy %s", v, ChartSchemaConstraint),
			"regenerate the chart with an ephemeris export for schema %s", CurrentChartSchema)
	}
	return nil
}
