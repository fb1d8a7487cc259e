package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	defaultConfigPath = "~/.config/resolveprobe/config.toml"
	projectConfigName = "resolveprobe.toml"

	defaultAppName    = "Resolve"
	defaultTrackType  = "video"
	defaultTrackIndex = 1
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultReport     = "text"
	defaultColor      = "auto"

	// Environment variables documented by Blackmagic for external scripting.
	EnvScriptAPI = "RESOLVE_SCRIPT_API"
	EnvScriptLib = "RESOLVE_SCRIPT_LIB"
	EnvPython    = "RESOLVE_PYTHON"
)

// Default returns a Config populated with repository defaults. Scripting paths
// are left empty here and resolved during Load so environment overrides can
// apply.
func Default() Config {
	return Config{
		Resolve: Resolve{
			AppName: defaultAppName,
		},
		Probe: Probe{
			TrackType:  defaultTrackType,
			TrackIndex: defaultTrackIndex,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Report: Report{
			Format: defaultReport,
			Color:  defaultColor,
		},
	}
}

// platformPaths returns the stock scripting API directory, fusionscript
// library, and interpreter for the given OS.
func platformPaths(goos string) (scriptAPI, scriptLib, python string) {
	switch goos {
	case "darwin":
		return "/Library/Application Support/Blackmagic Design/DaVinci Resolve/Developer/Scripting",
			"/Applications/DaVinci Resolve/DaVinci Resolve.app/Contents/Libraries/Fusion/fusionscript.so",
			"python3"
	case "windows":
		programData := os.Getenv("PROGRAMDATA")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "Blackmagic Design", "DaVinci Resolve", "Support", "Developer", "Scripting"),
			`C:\Program Files\Blackmagic Design\DaVinci Resolve\fusionscript.dll`,
			"python"
	default:
		return "/opt/resolve/Developer/Scripting", "/opt/resolve/libs/Fusion/fusionscript.so", "python3"
	}
}

func currentPlatformPaths() (string, string, string) {
	return platformPaths(runtime.GOOS)
}
