package diagnose

import (
	"context"
	"errors"

	"resolveprobe/internal/probe"
	"resolveprobe/internal/resolve"
)

// Session is the root handle obtained from the scripting entry point.
type Session struct {
	Application resolve.App
	Connected   bool
}

// Connect attaches to the named application. Every failure to obtain the
// application is Fatal.
func Connect(ctx context.Context, entry resolve.Entry, appName string) (Session, probe.Outcome) {
	result := connect(ctx, entry, appName)
	return result.Value, probe.Outcome{Stage: StageConnect, Kind: result.Kind, Detail: result.Detail}
}

func connect(ctx context.Context, entry resolve.Entry, appName string) probe.Result[Session] {
	if entry == nil {
		return probe.Abort[Session]("scripting module unavailable: no entry point configured")
	}
	if appName == "" {
		appName = resolve.DefaultAppName
	}
	app, err := entry.ScriptApp(ctx, appName)
	switch {
	case errors.Is(err, resolve.ErrModuleNotFound):
		return probe.Abort[Session]("scripting module unavailable: " + err.Error())
	case errors.Is(err, resolve.ErrAppUnreachable):
		return probe.Abort[Session]("module present, application unreachable")
	case err != nil:
		return probe.Abort[Session](err.Error())
	case app == nil:
		return probe.Abort[Session]("module present, application unreachable")
	}
	return probe.Found(Session{Application: app, Connected: true}, "connected to "+appName)
}
