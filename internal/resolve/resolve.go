package resolve

import (
	"context"
	"fmt"
	"strings"
)

// DefaultAppName is the capability name passed to the scripting entry point.
const DefaultAppName = "Resolve"

// TrackType names a timeline track kind as understood by the scripting API.
type TrackType string

const (
	TrackVideo    TrackType = "video"
	TrackAudio    TrackType = "audio"
	TrackSubtitle TrackType = "subtitle"
)

// ParseTrackType normalizes a configured track kind.
func ParseTrackType(value string) (TrackType, error) {
	switch TrackType(strings.ToLower(strings.TrimSpace(value))) {
	case TrackVideo, "":
		return TrackVideo, nil
	case TrackAudio:
		return TrackAudio, nil
	case TrackSubtitle:
		return TrackSubtitle, nil
	default:
		return "", fmt.Errorf("unsupported track type %q (want video, audio, or subtitle)", value)
	}
}

// Entry is the single opaque entry point into the scripting API.
type Entry interface {
	// ScriptApp attaches to the named application. It returns
	// ErrModuleNotFound when the scripting module cannot be loaded and a nil
	// App with a nil error when the module loaded but the application did not
	// answer.
	ScriptApp(ctx context.Context, name string) (App, error)
}

// App is the root application object.
type App interface {
	Version(ctx context.Context) (string, error)
	ProductName(ctx context.Context) (string, error)
	ProjectManager(ctx context.Context) (ProjectManager, error)
}

// ProjectManager exposes the project database.
type ProjectManager interface {
	// CurrentProject returns nil, nil when no project is open.
	CurrentProject(ctx context.Context) (Project, error)
}

// Project is an open Resolve project.
type Project interface {
	Name(ctx context.Context) (string, error)
	Settings(ctx context.Context) (map[string]string, error)
	TimelineCount(ctx context.Context) (int, error)
	// CurrentTimeline returns nil, nil when the project has no current timeline.
	CurrentTimeline(ctx context.Context) (Timeline, error)
	MediaPool(ctx context.Context) (MediaPool, error)
}

// Timeline is an edit timeline within a project.
type Timeline interface {
	Name(ctx context.Context) (string, error)
	StartFrame(ctx context.Context) (int, error)
	EndFrame(ctx context.Context) (int, error)
	TrackCount(ctx context.Context, kind TrackType) (int, error)
	// ItemsInTrack lists the items on a 1-based track index.
	ItemsInTrack(ctx context.Context, kind TrackType, index int) ([]Item, error)
}

// MediaPool holds the project's source media.
type MediaPool interface {
	RootFolder(ctx context.Context) (Folder, error)
}

// Folder is a media pool bin.
type Folder interface {
	Name(ctx context.Context) (string, error)
	Clips(ctx context.Context) ([]Item, error)
	Subfolders(ctx context.Context) ([]Folder, error)
}

// Item summarizes a clip or timeline item by name.
type Item struct {
	Name string `json:"name" toml:"name"`
}
