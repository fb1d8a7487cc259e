package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfigLayout(t *testing.T) {
	cfg := NewConfig(t, WithScriptingInstall(), WithStubbedInterpreter(""))
	base := BaseDir(cfg)
	if cfg.Resolve.ScriptAPI != filepath.Join(base, "Developer", "Scripting") {
		t.Fatalf("unexpected script API %q (base %q)", cfg.Resolve.ScriptAPI, base)
	}
	info, err := os.Stat(cfg.Resolve.ScriptLib)
	if err != nil || info.Size() != 4096 {
		t.Fatalf("library not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Resolve.ModulesDir, "DaVinciResolveScript.py")); err != nil {
		t.Fatalf("module stub missing: %v", err)
	}
	if filepath.Base(cfg.Resolve.Python) != "python3" {
		t.Fatalf("interpreter not stubbed: %q", cfg.Resolve.Python)
	}
}
