package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resolveprobe/internal/preflight"
	"resolveprobe/internal/probe"
	"resolveprobe/internal/report"
	"resolveprobe/internal/resolve/bridge"
)

type envReport struct {
	ConfigPath string             `json:"config_path"`
	ConfigFile bool               `json:"config_file"`
	Checks     []preflight.Result `json:"checks"`
	ChildEnv   []string           `json:"child_env"`
}

func newEnvCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Check the scripting environment without contacting Resolve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := bridge.New(bridgeConfig(cfg))
			if err != nil {
				return fmt.Errorf("scripting bridge: %w", err)
			}
			rep := envReport{
				ConfigPath: ctx.configPath,
				ConfigFile: ctx.configSeen,
				Checks:     preflight.RunAll(cmd.Context(), cfg),
				ChildEnv:   client.Environment(),
			}
			if jsonOutput {
				return report.WriteJSON(cmd.OutOrStdout(), rep)
			}

			out := cmd.OutOrStdout()
			colorize := report.ShouldColorize(out, cfg.Report.Color)
			configKind, source := probe.Success, rep.ConfigPath
			if !rep.ConfigFile {
				configKind, source = probe.Warning, source+" (not found, using defaults)"
			}
			fmt.Fprintln(out, report.StatusLine("Config", configKind, source, colorize))
			for _, check := range rep.Checks {
				fmt.Fprintln(out, report.StatusLine(check.Name, checkKind(check), check.Detail, colorize))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Bridge environment:")
			for _, kv := range rep.ChildEnv {
				fmt.Fprintf(out, "  %s\n", kv)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// checkKind maps a preflight result onto the report's status kinds. A failed
// check is not fatal; the run itself decides whether Resolve is reachable.
func checkKind(result preflight.Result) probe.Kind {
	if result.Passed {
		return probe.Success
	}
	return probe.Failure
}
