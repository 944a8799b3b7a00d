package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/kpnadi/event"
	"github.com/teranos/kpnadi/nadi"
	"github.com/teranos/kpnadi/report"
	"github.com/teranos/kpnadi/score"
	"github.com/teranos/kpnadi/sym"
)

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart <chart-file>",
		Short: sym.Chart + " Show lords, cusps and significators of a chart",
		Long: sym.Chart + ` chart - The full KP chart

Resolves the sign, star, sub and sub-sub lord of every body and cusp,
places bodies in houses, and lists the four-level significators of each
house together with the Vimshottari balance at birth.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args[0], report.KindFullChart, "")
		},
	}
	addReportFlags(cmd)
	return cmd
}

func newDashaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dasha <chart-file>",
		Short: sym.Dasha + " Show the Vimshottari period timeline",
		Long: sym.Dasha + ` dasha - Vimshottari periods

Lists Mahadashas from birth to the horizon, expanded to the chosen depth,
with the branch running at --now and the next Antardashas.

Depth: md (mahadasha), ad (antardasha), pd (pratyantar), or 1-3.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth, _ := cmd.Flags().GetString("depth")
			return runReport(cmd, args[0], report.KindDashaTimeline, depth)
		},
	}
	addReportFlags(cmd)
	cmd.Flags().StringP("depth", "d", "ad", "Tree depth: md, ad or pd")
	return cmd
}

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores <chart-file>",
		Short: sym.Score + " Show precision scores and the life aspect matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args[0], report.KindPrecisionScores, "")
		},
	}
	addReportFlags(cmd)
	return cmd
}

func newCategoryCmd() *cobra.Command {
	names := make([]string, 0, len(score.LifeAspects))
	for _, a := range score.LifeAspects {
		names = append(names, a.Name)
	}
	cmd := &cobra.Command{
		Use:       "category <chart-file> <category>",
		Short:     sym.Cat + " Rank the bodies for one life aspect",
		Long:      sym.Cat + " category - One life aspect\n\nCategories: " + strings.Join(names, ", "),
		Args:      cobra.ExactArgs(2),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args[0], report.KindCategory, args[1])
		},
	}
	addReportFlags(cmd)
	return cmd
}

func newEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event <chart-file> <event>",
		Short: sym.Event + " Judge whether an event is promised",
		Long: sym.Event + ` event - Event potential

Checks the houses signified by the event cusp's sub lord against the
event's houses, then repeats the check for each karaka of the event.
Unknown events report UNKNOWN.

Events: ` + strings.Join(event.IDs(), ", "),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args[0], report.KindEventPotential, args[1])
		},
	}
	addReportFlags(cmd)
	return cmd
}

func newNadiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nadi <chart-file> [event]",
		Short: sym.Nadi + " Rate planet, star lord and sub lord for Nadi events",
		Long: sym.Nadi + ` nadi - Nadi rulership analysis

Rates every body by the houses it, its star lord and its sub lord signify
under whole-sign lordship. Without an event every event is analyzed.

Events: ` + strings.Join(nadi.Events(), ", "),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID := ""
			if len(args) == 2 {
				eventID = args[1]
			}
			return runReport(cmd, args[0], report.KindNadi, eventID)
		},
	}
	addReportFlags(cmd)
	return cmd
}
