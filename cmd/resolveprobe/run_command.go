package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"resolveprobe/internal/config"
	"resolveprobe/internal/diagnose"
	"resolveprobe/internal/logging"
	"resolveprobe/internal/preflight"
	"resolveprobe/internal/probe"
	"resolveprobe/internal/report"
	"resolveprobe/internal/resolve"
	"resolveprobe/internal/resolve/bridge"
	"resolveprobe/internal/resolve/fixture"
)

type runOptions struct {
	format  string
	fixture string
	strict  bool
	noColor bool
}

func bindRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Report format: text, table, or json (defaults to report.format)")
	cmd.Flags().StringVar(&opts.fixture, "fixture", "", "Probe a TOML fixture graph instead of a running Resolve")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit non-zero when any stage fails, not only when the connection is blocked")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable ANSI colors in text output")
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every diagnostic stage and print the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnostics(cmd, ctx, opts)
		},
	}
	bindRunFlags(cmd, opts)
	return cmd
}

func runDiagnostics(cmd *cobra.Command, ctx *commandContext, opts *runOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format == "" {
		format = cfg.Report.Format
	}
	switch format {
	case report.FormatText, report.FormatTable, report.FormatJSON:
	default:
		return fmt.Errorf("unsupported --format %q (want text, table, or json)", opts.format)
	}

	reporter := report.New(report.WithApp(cfg.Resolve.AppName))
	logger, err := ctx.logger("probe", reporter.RunID())
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	entry, err := buildEntry(runCtx, cfg, opts.fixture, logger)
	if err != nil {
		return err
	}

	started := time.Now()
	chain := probe.NewChain(reporter, logger)
	session := diagnose.Run(runCtx, entry, ctx.probeOptions(), chain)
	rep := reporter.Report()

	logger.Debug("diagnostic run complete",
		logging.String("verdict", rep.Verdict.String()),
		logging.Bool("connected", session.Connected),
		logging.Int("stages", rep.Counts.Total()),
		logging.Duration("elapsed", time.Since(started)),
	)

	out := cmd.OutOrStdout()
	colorMode := cfg.Report.Color
	if opts.noColor {
		colorMode = "never"
	}
	if err := report.Render(out, rep, format, report.ShouldColorize(out, colorMode)); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if err := runCtx.Err(); err != nil {
		return err
	}
	if code := exitCode(rep.Verdict, opts.strict); code != 0 {
		return &exitError{code: code, verdict: rep.Verdict.String()}
	}
	return nil
}

// exitCode maps a verdict to the process exit status. Only a blocked run
// fails by default; --strict also fails runs with failed stages.
func exitCode(verdict probe.Kind, strict bool) int {
	switch {
	case verdict == probe.Fatal:
		return 1
	case strict && verdict == probe.Failure:
		return 1
	default:
		return 0
	}
}

func buildEntry(ctx context.Context, cfg *config.Config, fixturePath string, logger *slog.Logger) (resolve.Entry, error) {
	if path := strings.TrimSpace(fixturePath); path != "" {
		graph, err := fixture.Load(path)
		if err != nil {
			logger.Error("fixture graph unusable", logging.String("path", path), logging.Error(err))
			return nil, err
		}
		logger.Debug("probing fixture graph", logging.String("path", path))
		return fixture.New(graph), nil
	}

	for _, result := range preflight.Failed(preflight.RunAll(ctx, cfg)) {
		logger.Warn("preflight check failed",
			logging.String("check", result.Name),
			logging.String("detail", result.Detail),
		)
	}
	client, err := bridge.New(bridgeConfig(cfg))
	if err != nil {
		logger.Error("scripting bridge unavailable", logging.Error(err))
		return nil, fmt.Errorf("scripting bridge: %w", err)
	}
	return client, nil
}

func bridgeConfig(cfg *config.Config) bridge.Config {
	return bridge.Config{
		Python:     cfg.Resolve.Python,
		ScriptAPI:  cfg.Resolve.ScriptAPI,
		ScriptLib:  cfg.Resolve.ScriptLib,
		ModulesDir: cfg.Resolve.ModulesDir,
	}
}
