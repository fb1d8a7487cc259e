package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"resolveprobe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose scripting paths point at a per-test
// directory laid out like a Linux Resolve install. Nothing is created on
// disk unless an option asks for it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Resolve.ScriptAPI = filepath.Join(base, "Developer", "Scripting")
	cfgVal.Resolve.ModulesDir = filepath.Join(cfgVal.Resolve.ScriptAPI, "Modules")
	cfgVal.Resolve.ScriptLib = filepath.Join(base, "libs", "Fusion", "fusionscript.so")
	cfgVal.Resolve.Python = "python-not-installed"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithScriptingInstall creates the script API directory, the Modules
// directory with a DaVinciResolveScript.py stub, and a fusionscript library.
func WithScriptingInstall() ConfigOption {
	return func(b *configBuilder) {
		WriteFile(b.t, filepath.Join(b.cfg.Resolve.ModulesDir, "DaVinciResolveScript.py"), 64)
		WriteFile(b.t, b.cfg.Resolve.ScriptLib, 4096)
	}
}

// WithStubbedInterpreter writes a stub python3 that prints version and
// points the config at it.
func WithStubbedInterpreter(version string) ConfigOption {
	return func(b *configBuilder) {
		if version == "" {
			version = "Python 3.12.1"
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		target := filepath.Join(binDir, "python3")
		script := []byte("#!/bin/sh\necho '" + version + "'\n")
		if err := os.WriteFile(target, script, 0o755); err != nil {
			b.t.Fatalf("write stub python3: %v", err)
		}
		b.cfg.Resolve.Python = target
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Resolve.ScriptAPI))
}

// Isolate points config discovery at empty directories and clears the
// scripting environment variables so a developer's own setup never leaks
// into a test. It returns the temporary home directory.
func Isolate(t testing.TB) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv(config.EnvScriptAPI, "")
	t.Setenv(config.EnvScriptLib, "")
	t.Setenv(config.EnvPython, "")
	t.Chdir(t.TempDir())
	return home
}
