package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeResolve(); err != nil {
		return err
	}
	c.normalizeProbe()
	c.normalizeLogging()
	c.normalizeReport()
	return nil
}

func (c *Config) normalizeResolve() error {
	scriptAPI, scriptLib, python := currentPlatformPaths()

	c.Resolve.AppName = strings.TrimSpace(c.Resolve.AppName)
	if c.Resolve.AppName == "" {
		c.Resolve.AppName = defaultAppName
	}

	c.Resolve.ScriptAPI = firstNonEmpty(c.Resolve.ScriptAPI, os.Getenv(EnvScriptAPI), scriptAPI)
	c.Resolve.ScriptLib = firstNonEmpty(c.Resolve.ScriptLib, os.Getenv(EnvScriptLib), scriptLib)
	c.Resolve.Python = firstNonEmpty(c.Resolve.Python, os.Getenv(EnvPython), python)

	var err error
	if c.Resolve.ScriptAPI, err = expandPath(c.Resolve.ScriptAPI); err != nil {
		return fmt.Errorf("resolve.script_api: %w", err)
	}
	if c.Resolve.ScriptLib, err = expandPath(c.Resolve.ScriptLib); err != nil {
		return fmt.Errorf("resolve.script_lib: %w", err)
	}
	if strings.TrimSpace(c.Resolve.ModulesDir) == "" {
		c.Resolve.ModulesDir = filepath.Join(c.Resolve.ScriptAPI, "Modules")
	}
	if c.Resolve.ModulesDir, err = expandPath(strings.TrimSpace(c.Resolve.ModulesDir)); err != nil {
		return fmt.Errorf("resolve.modules_dir: %w", err)
	}
	// Bare interpreter names are resolved through PATH at run time.
	if strings.ContainsAny(c.Resolve.Python, `/\`) || strings.HasPrefix(c.Resolve.Python, "~") {
		if c.Resolve.Python, err = expandPath(c.Resolve.Python); err != nil {
			return fmt.Errorf("resolve.python: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeProbe() {
	c.Probe.TrackType = strings.ToLower(strings.TrimSpace(c.Probe.TrackType))
	if c.Probe.TrackType == "" {
		c.Probe.TrackType = defaultTrackType
	}
	if c.Probe.TrackIndex == 0 {
		c.Probe.TrackIndex = defaultTrackIndex
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		if expanded, err := expandPath(file); err == nil {
			c.Logging.File = expanded
		}
	}
}

func (c *Config) normalizeReport() {
	c.Report.Format = strings.ToLower(strings.TrimSpace(c.Report.Format))
	if c.Report.Format == "" {
		c.Report.Format = defaultReport
	}
	c.Report.Color = strings.ToLower(strings.TrimSpace(c.Report.Color))
	if c.Report.Color == "" {
		c.Report.Color = defaultColor
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
