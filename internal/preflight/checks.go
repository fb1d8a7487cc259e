package preflight

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"resolveprobe/internal/deps"
)

// ModuleFile is the Python module the scripting bridge imports.
const ModuleFile = "DaVinciResolveScript.py"

const interpreterTimeout = 5 * time.Second

// CheckDirectoryAccess verifies that the directory exists and can be listed.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckLibrary verifies that the scripting library is a readable file.
func CheckLibrary(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d bytes)", path, info.Size())}
}

// CheckModule verifies that dir holds the DaVinciResolveScript module.
func CheckModule(name, dir string) Result {
	result := CheckDirectoryAccess(name, dir)
	if !result.Passed {
		return result
	}
	module := filepath.Join(dir, ModuleFile)
	if err := unix.Access(module, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s missing or unreadable)", dir, ModuleFile)}
	}
	return Result{Name: name, Passed: true, Detail: module}
}

// CheckInterpreter resolves the Python interpreter and reports its version.
func CheckInterpreter(ctx context.Context, name, command string) Result {
	status := deps.CheckBinary(deps.Requirement{
		Name:        name,
		Command:     command,
		Description: "Hosts the DaVinciResolveScript bridge",
	})
	if !status.Available {
		return Result{Name: name, Detail: status.Detail}
	}

	checkCtx, cancel := context.WithTimeout(ctx, interpreterTimeout)
	defer cancel()

	output, err := exec.CommandContext(checkCtx, status.Path, "--version").CombinedOutput()
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: version check failed: %v)", status.Path, err)}
	}
	version := strings.TrimSpace(string(output))
	if version == "" {
		return Result{Name: name, Passed: true, Detail: status.Path}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", status.Path, version)}
}
