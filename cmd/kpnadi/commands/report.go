package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/kpnadi/am"
	"github.com/teranos/kpnadi/chart"
	"github.com/teranos/kpnadi/display"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/geotime"
	"github.com/teranos/kpnadi/logger"
	"github.com/teranos/kpnadi/report"
)

// addReportFlags registers the flags shared by every report command.
func addReportFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("now", "", "Reference instant (RFC3339 or 2006-01-02); defaults to the current time")
	f.String("tz", "", "Timezone for --now values without an offset (IANA name, abbreviation or +05:30)")
	f.Float64("horizon", 0, "Years of Mahadashas to generate from birth (overrides engine.dasha_horizon_years)")
	f.Float64("year-days", 0, "Days in one dasha year (overrides engine.year_days)")
	f.String("house-system", "", "House placement: equal or cusp (overrides the chart and engine.house_system)")
	f.String("request-id", "", "Fixed request id instead of the derived one")
	f.StringP("format", "f", "", "Output format: text, json, yaml, toml (overrides output.format)")
	f.BoolP("json", "j", false, "Shorthand for --format json")
	f.Bool("pretty", true, "Indent json output (overrides output.pretty)")
	f.BoolP("watch", "w", false, "Re-render whenever the chart file changes")
}

// reportOptions merges flags over configuration.
func reportOptions(cmd *cobra.Command, cfg *am.Config) (report.Options, error) {
	f := cmd.Flags()
	opts := report.Options{Dasha: cfg.DashaConfig()}

	nowFlag, _ := f.GetString("now")
	tz, _ := f.GetString("tz")
	if nowFlag == "" {
		opts.Now = time.Now().UTC()
		logger.Logger.Infow("No --now given, using the current time", "now", opts.Now.Format(time.RFC3339))
	} else {
		now, err := geotime.ParseInstant(nowFlag, tz)
		if err != nil {
			return report.Options{}, errors.WithHint(err, "pass --now as 2024-01-01 or 2024-01-01T09:00:00+05:30")
		}
		opts.Now = now
	}

	if f.Changed("horizon") {
		opts.Dasha.HorizonYears, _ = f.GetFloat64("horizon")
	}
	if f.Changed("year-days") {
		opts.Dasha.YearDays, _ = f.GetFloat64("year-days")
	}

	opts.HouseSystem = chart.HouseSystem(cfg.Engine.HouseSystem)
	if f.Changed("house-system") {
		hs, _ := f.GetString("house-system")
		opts.HouseSystem = chart.HouseSystem(hs)
	}
	opts.RequestID, _ = f.GetString("request-id")

	override := am.Config{Engine: am.EngineConfig{
		DashaHorizonYears: opts.Dasha.HorizonYears,
		YearDays:          opts.Dasha.YearDays,
		HouseSystem:       string(opts.HouseSystem),
	}}
	if err := override.Validate(); err != nil {
		return report.Options{}, errors.Wrap(err, "invalid flag")
	}
	return opts, nil
}

// runReport loads the chart at path, renders one report kind and, with
// --watch, keeps re-rendering on every change until interrupted.
func runReport(cmd *cobra.Command, path, kind, arg string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		return errors.WithHint(
			errors.Wrap(err, "invalid configuration"),
			"run 'kpnadi am where' to see which file sets it")
	}

	opts, err := reportOptions(cmd, cfg)
	if err != nil {
		return err
	}
	format, err := display.FormatFromCommand(cmd, cfg.Output.Format)
	if err != nil {
		return err
	}
	pretty := cfg.Output.Pretty
	if cmd.Flags().Changed("pretty") {
		pretty, _ = cmd.Flags().GetBool("pretty")
	}

	log := logger.Logger.Named("cli")
	render := func(c *chart.Chart) error {
		o, err := report.New(c, opts, logger.Logger)
		if err != nil {
			return err
		}
		v, err := o.Build(kind, arg)
		if err != nil {
			return err
		}
		return display.Render(cmd.OutOrStdout(), v, format, pretty)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	provider := chart.NewFileProvider(logger.Logger)
	c, err := provider.Load(ctx, path)
	if err != nil {
		return err
	}
	if err := render(c); err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); !watch {
		return nil
	}

	w, err := chart.NewWatcher(path, provider, logger.Logger)
	if err != nil {
		return err
	}
	w.SetDebounce(time.Duration(cfg.Watch.DebounceMS) * time.Millisecond)
	w.OnReload(render)
	log.Infow("Watching chart file", logger.FieldChart, path, logger.FieldReport, kind)
	return w.Run(ctx)
}
