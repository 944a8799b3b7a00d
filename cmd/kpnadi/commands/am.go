package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teranos/kpnadi/am"
	"github.com/teranos/kpnadi/display"
	"github.com/teranos/kpnadi/errors"
	"github.com/teranos/kpnadi/sym"
)

func newAmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "am",
		Short: sym.AM + " Manage kpnadi configuration",
		Long: sym.AM + ` am - Manage kpnadi configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (KPNADI_* prefix, e.g. KPNADI_OUTPUT_FORMAT)
3. Project config (am.toml, searched upward from the working directory)
4. User config (~/.kpnadi/am.toml)
5. System config (/etc/kpnadi/am.toml)
6. Default values

--config replaces sources 3-5 with a single file.

Examples:
  kpnadi am show                      # Show current configuration
  kpnadi am show --format json        # Show configuration in JSON format
  kpnadi am get engine.year_days      # Get specific config value
  kpnadi am set output.format yaml    # Persist a value in ~/.kpnadi/am.toml
  kpnadi am validate                  # Validate current configuration`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE:  runAmShow,
	}
	show.Flags().String("format", "toml", "Output format: toml, json, yaml")

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a specific configuration value",
		Long:  "Get a specific configuration value using dot notation (e.g., engine.year_days, output.format)",
		Args:  cobra.ExactArgs(1),
		RunE:  runAmGet,
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist a configuration value",
		Long: `Write one value into the user config (~/.kpnadi/am.toml), or into
./am.toml with --project. The previous file is kept as .back1-.back3 and
values that would not validate are refused.`,
		Args: cobra.ExactArgs(2),
		RunE: runAmSet,
	}
	set.Flags().Bool("project", false, "Write ./am.toml instead of the user config")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate current configuration",
		Args:  cobra.NoArgs,
		RunE:  runAmValidate,
	}

	where := &cobra.Command{
		Use:   "where",
		Short: "Show where configuration is loaded from",
		Long: `Show the configuration cascade and which files were checked.

Lists all configuration sources in order of precedence, showing
which files exist and which setting each one supplies.`,
		Args: cobra.NoArgs,
		RunE: runAmWhere,
	}

	cmd.AddCommand(show, get, set, validate, where)
	return cmd
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	name, _ := cmd.Flags().GetString("format")
	format, err := display.ParseFormat(name)
	if err != nil {
		return err
	}
	if format == display.FormatText {
		format = display.FormatTOML
	}
	if format != display.FormatJSON {
		fmt.Fprintln(cmd.OutOrStdout(), "# kpnadi configuration")
	}
	return display.Render(cmd.OutOrStdout(), cfg, format, true)
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	v := am.GetViper()
	if !v.IsSet(key) {
		return errors.WithHint(
			errors.NewNotFoundError("configuration key %q", key),
			"run 'kpnadi am show' to list keys")
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.Get(key))
	return nil
}

func runAmSet(cmd *cobra.Command, args []string) error {
	path := am.UserConfigPath()
	if project, _ := cmd.Flags().GetBool("project"); project {
		abs, err := filepath.Abs("am.toml")
		if err != nil {
			return errors.Wrap(err, "failed to resolve ./am.toml")
		}
		path = abs
	}
	if path == "" {
		return errors.WithHint(
			errors.New("no home directory for the user config"),
			"use --project to write ./am.toml")
	}

	if err := am.SetValue(path, args[0], am.ParseValue(args[1])); err != nil {
		return err
	}
	am.Reset()
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s written to %s\n", args[0], args[1], path)
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return errors.Wrap(err, "failed to get config introspection")
	}

	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  [default]      built-in defaults")
	for _, c := range am.Cascade() {
		state := "missing"
		if c.Exists {
			state = "found"
		}
		fmt.Fprintf(out, "  [%-11s]  %s (%s)\n", c.Source, c.Path, state)
	}
	fmt.Fprintf(out, "  [environment]  %s_* environment variables\n", am.EnvPrefix)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Active configuration:")
	for _, s := range intro.Settings {
		from := string(s.Source)
		if s.SourcePath != "" && s.Source != am.SourceDefault {
			from += " " + s.SourcePath
		}
		valueStr := fmt.Sprintf("%v", s.Value)
		// Truncate long values
		if len(valueStr) > 50 {
			valueStr = valueStr[:47] + "..."
		}
		fmt.Fprintf(out, "  %s = %s  (%s)\n", s.Key, valueStr, from)
	}
	return nil
}
