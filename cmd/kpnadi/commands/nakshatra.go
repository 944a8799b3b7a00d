package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/kpnadi/am"
	"github.com/teranos/kpnadi/display"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/report"
	"github.com/teranos/kpnadi/sym"
)

func newNakshatraCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nakshatra <name>",
		Short: sym.Star + " Show the sub lord boundaries of one nakshatra",
		Long: sym.Star + ` nakshatra - Sub and Sub-Sub lord table

Prints the nine Sub spans of a nakshatra in absolute degrees, starting at
its star lord. With --sub-sub every Sub is split into its nine Sub-Sub
spans. No chart is needed. Multi-word names may be quoted or joined.

Examples:
  kpnadi nakshatra rohini
  kpnadi nakshatra "purva phalguni" --sub-sub --format yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := am.Load()
			if err != nil {
				return errors.Wrap(err, "failed to load configuration")
			}
			format, err := display.FormatFromCommand(cmd, cfg.Output.Format)
			if err != nil {
				return err
			}
			expand, _ := cmd.Flags().GetBool("sub-sub")

			t, err := report.NewNakshatraTable(strings.Join(args, " "), expand)
			if err != nil {
				return err
			}
			return display.Render(cmd.OutOrStdout(), t, format, cfg.Output.Pretty)
		},
	}
	cmd.Flags().BoolP("sub-sub", "s", false, "Expand every Sub into its Sub-Sub spans")
	cmd.Flags().StringP("format", "f", "", "Output format: text, json, yaml, toml (overrides output.format)")
	cmd.Flags().BoolP("json", "j", false, "Shorthand for --format json")
	return cmd
}
