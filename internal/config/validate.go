package config

import (
	"errors"
	"fmt"
	"strings"

	"resolveprobe/internal/resolve"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateResolve(); err != nil {
		return err
	}
	if err := c.validateProbe(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateReport()
}

func (c *Config) validateResolve() error {
	if strings.TrimSpace(c.Resolve.AppName) == "" {
		return errors.New("resolve.app_name must be set")
	}
	if strings.TrimSpace(c.Resolve.Python) == "" {
		return errors.New("resolve.python must be set")
	}
	return nil
}

func (c *Config) validateProbe() error {
	if _, err := resolve.ParseTrackType(c.Probe.TrackType); err != nil {
		return fmt.Errorf("probe.track_type: %w", err)
	}
	if c.Probe.TrackIndex < 1 {
		return errors.New("probe.track_index must be 1 or greater")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateReport() error {
	switch c.Report.Format {
	case "text", "table", "json":
	default:
		return fmt.Errorf("report.format must be text, table, or json, got %q", c.Report.Format)
	}
	switch c.Report.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("report.color must be auto, always, or never, got %q", c.Report.Color)
	}
	return nil
}

// TrackType returns the validated track kind for the item probe.
func (c *Config) TrackType() resolve.TrackType {
	kind, err := resolve.ParseTrackType(c.Probe.TrackType)
	if err != nil {
		return resolve.TrackVideo
	}
	return kind
}
