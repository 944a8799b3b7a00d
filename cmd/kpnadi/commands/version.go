package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/kpnadi/display"
	"github.com/teranos/kpnadi/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show kpnadi version information",
		Long:  `Display version, build time, commit hash, platform and the accepted chart schema.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return display.Render(cmd.OutOrStdout(), info, display.FormatJSON, true)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, info.String())
			fmt.Fprintf(out, "Platform: %s\n", info.Platform)
			fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
			fmt.Fprintf(out, "Chart schema: %s\n", info.ChartSchema)
			return nil
		},
	}
	cmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
	return cmd
}
