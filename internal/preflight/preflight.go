package preflight

import (
	"context"

	"resolveprobe/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every environment check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryAccess("Script API", cfg.Resolve.ScriptAPI),
		CheckLibrary("Script library", cfg.Resolve.ScriptLib),
		CheckModule("Scripting module", cfg.Resolve.ModulesDir),
		CheckInterpreter(ctx, "Python", cfg.Resolve.Python),
	}
}

// Failed filters results down to the checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
