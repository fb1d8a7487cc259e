package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resolveprobe/internal/config"
	"resolveprobe/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDirectoryAccess_NotConfigured(t *testing.T) {
	result := CheckDirectoryAccess("test", " ")
	if result.Passed || result.Detail != "not configured" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCheckLibrary(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "fusionscript.so")
	if err := os.WriteFile(lib, []byte("ELF"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckLibrary("lib", lib); !result.Passed || !strings.Contains(result.Detail, "3 bytes") {
		t.Fatalf("expected readable library, got %+v", result)
	}
	if result := CheckLibrary("lib", dir); result.Passed {
		t.Fatal("directory should not pass as a library")
	}
	if result := CheckLibrary("lib", filepath.Join(dir, "missing.so")); result.Passed {
		t.Fatal("missing library should fail")
	}
}

func TestCheckModule(t *testing.T) {
	dir := t.TempDir()
	if result := CheckModule("module", dir); result.Passed {
		t.Fatal("expected failure without DaVinciResolveScript.py")
	}
	if err := os.WriteFile(filepath.Join(dir, ModuleFile), []byte("# module\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckModule("module", dir); !result.Passed {
		t.Fatalf("expected module to pass, got %+v", result)
	}
}

func TestCheckInterpreter(t *testing.T) {
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "python3")
	script := []byte("#!/bin/sh\necho 'Python 3.11.9'\n")
	if err := os.WriteFile(stub, script, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", binDir)

	result := CheckInterpreter(context.Background(), "Python", "python3")
	if !result.Passed || !strings.Contains(result.Detail, "Python 3.11.9") {
		t.Fatalf("expected interpreter to pass, got %+v", result)
	}
	if result := CheckInterpreter(context.Background(), "Python", "python-not-installed"); result.Passed {
		t.Fatal("missing interpreter should fail")
	}
}

func TestRunAll(t *testing.T) {
	if RunAll(context.Background(), nil) != nil {
		t.Fatal("expected nil for nil config")
	}
	cfg := config.Default()
	api := t.TempDir()
	cfg.Resolve.ScriptAPI = api
	cfg.Resolve.ScriptLib = filepath.Join(api, "missing.so")
	cfg.Resolve.ModulesDir = filepath.Join(api, "Modules")
	cfg.Resolve.Python = "python-not-installed"

	results := RunAll(context.Background(), &cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if !results[0].Passed {
		t.Fatalf("script API dir should pass: %+v", results[0])
	}
	failed := Failed(results)
	if len(failed) != 3 {
		t.Fatalf("expected 3 failures, got %+v", failed)
	}
}

func TestRunAllWithInstall(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithScriptingInstall(), testsupport.WithStubbedInterpreter("Python 3.10.12"))
	results := RunAll(context.Background(), cfg)
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("expected every check to pass, got %+v", failed)
	}
	if !strings.Contains(results[3].Detail, "Python 3.10.12") {
		t.Fatalf("interpreter detail %q", results[3].Detail)
	}
}
