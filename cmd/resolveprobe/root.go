package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var logFormatFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag, &logFormatFlag)
	runOpts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "resolveprobe",
		Short: "Diagnose connectivity to the DaVinci Resolve scripting API",
		Long: `resolveprobe attaches to a running DaVinci Resolve through its Python
scripting module and walks the object graph stage by stage: project manager,
current project, timeline, media pool and track items. Each stage reports
OK, WARN, FAIL or FATAL, followed by an overall verdict.

Running resolveprobe without a subcommand is the same as "resolveprobe run".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnostics(cmd, ctx, runOpts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format override (console, json)")
	bindRunFlags(rootCmd, runOpts)

	rootCmd.AddCommand(newRunCommand(ctx))
	rootCmd.AddCommand(newEnvCommand(ctx))
	rootCmd.AddCommand(newStagesCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
