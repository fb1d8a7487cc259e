package logging_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resolveprobe/internal/config"
	"resolveprobe/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestConsoleLoggerWritesComponentAndAttrs(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "diagnose").Info("run complete", "verdict", "warning")

	content := readLog(t, logPath)
	if !strings.Contains(content, "INFO diagnose: run complete") {
		t.Fatalf("expected component-prefixed message, got %q", content)
	}
	if !strings.Contains(content, "verdict=warning") {
		t.Fatalf("expected attribute, got %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information at info level, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("stage complete")

	if content := readLog(t, logPath); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestJSONLoggerInjectsRunID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "run.json")
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", OutputPaths: []string{logPath}, RunID: "run-123"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello", logging.Args(logging.String(logging.FieldStage, "Connect"))...)

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry[logging.FieldRunID] != "run-123" {
		t.Fatalf("expected run_id, got %v", entry)
	}
	if entry["level"] != "info" || entry["ts"] == nil {
		t.Fatalf("expected normalized level and ts keys, got %v", entry)
	}
	if entry[logging.FieldStage] != "Connect" {
		t.Fatalf("expected stage attr, got %v", entry)
	}
}

func TestErrorAttrRendersCause(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "errors.json")
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Error("scripting bridge unavailable", logging.Error(errors.New("python interpreter required")))
	logger.Error("no cause", logging.Error(nil))

	lines := strings.Split(strings.TrimSpace(readLog(t, logPath)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two records, got %q", lines)
	}
	want := []string{"python interpreter required", "<nil>"}
	for i, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode json log: %v", err)
		}
		if entry["error"] != want[i] || entry["level"] != "error" {
			t.Fatalf("record %d: expected error %q, got %v", i, want[i], entry)
		}
	}
}

func TestLevelFiltersLowerRecords(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden") || !strings.Contains(content, "shown") {
		t.Fatalf("unexpected filtering result: %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigAppendsLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "nested", "resolveprobe.log")

	logger, err := logging.NewFromConfig(&cfg, "abc")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Warn("written to file")

	if content := readLog(t, cfg.Logging.File); !strings.Contains(content, "written to file") {
		t.Fatalf("expected log file content, got %q", content)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(t.Context(), 12) {
		t.Fatal("expected no-op logger to be disabled")
	}
}
