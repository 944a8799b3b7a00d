// Package commands implements the kpnadi command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/kpnadi/am"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/logger"
	"github.com/teranos/kpnadi/sym"
)

// NewRootCmd builds the kpnadi command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kpnadi",
		Short: "KP and Nadi rulership and significator engine",
		Long: `kpnadi - Krishnamurti Paddhati and Nadi analysis of a birth chart.

Reads a chart file (json, yaml or toml) holding the sidereal longitudes of
the nine bodies and the ascendant, and reports lords, significators,
Vimshottari periods, precision scores, event potential and Nadi ratings.

Available commands:
  ` + sym.Chart + ` chart     - ` + sym.CommandDescriptions["chart"] + `
  ` + sym.Dasha + ` dasha     - ` + sym.CommandDescriptions["dasha"] + `
  ` + sym.Score + ` scores    - ` + sym.CommandDescriptions["scores"] + `
  ` + sym.Cat + ` category  - ` + sym.CommandDescriptions["category"] + `
  ` + sym.Event + ` event     - ` + sym.CommandDescriptions["event"] + `
  ` + sym.Nadi + ` nadi      - ` + sym.CommandDescriptions["nadi"] + `
  ` + sym.Star + ` nakshatra - ` + sym.CommandDescriptions["nakshatra"] + `
  ` + sym.AM + ` am        - ` + sym.CommandDescriptions["am"] + `

Examples:
  kpnadi chart birth.json --now 2024-01-01
  kpnadi dasha birth.yaml --depth pd --format json
  kpnadi event birth.toml marriage
  kpnadi nadi birth.json government_job --watch
  kpnadi nakshatra rohini --sub-sub`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize(cmd)
		},
	}

	root.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v, -vv)")
	root.PersistentFlags().String("config", "", "Use this am.toml instead of the config cascade")
	root.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	root.AddCommand(
		newChartCmd(),
		newDashaCmd(),
		newScoresCmd(),
		newCategoryCmd(),
		newEventCmd(),
		newNadiCmd(),
		newNakshatraCmd(),
		newAmCmd(),
		newVersionCmd(),
	)
	return root
}

// initialize loads configuration and sets up the global logger before any
// command runs. Logs go to stderr so stdout stays machine readable.
func initialize(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		am.SetConfigFile(path)
	}
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	logger.SetTheme(cfg.Log.Theme)
	verbosity, _ := cmd.Flags().GetCount("verbose")
	jsonLogs, _ := cmd.Flags().GetBool("log-json")
	if err := logger.Initialize(jsonLogs || cfg.Log.JSON, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	logger.Logger.Debugw("Logger initialized",
		logger.FieldComponent, "cli",
		"verbosity", logger.LevelName(verbosity))
	return nil
}
