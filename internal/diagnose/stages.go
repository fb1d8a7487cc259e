package diagnose

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"resolveprobe/internal/resolve"
)

// Stage names that do not depend on configuration.
const (
	StageConnect         = "Connect"
	StageVersion         = "Version"
	StageProductName     = "Product Name"
	StageProjectManager  = "Project Manager"
	StageCurrentProject  = "Current Project"
	StageProjectSettings = "Project Settings"
	StageTimelineCount   = "Timeline Count"
	StageCurrentTimeline = "Current Timeline"
	StageTimelineRange   = "Timeline Range"
	StageMediaPool       = "Media Pool"
	StageRootFolder      = "Root Folder"
	StageClipList        = "Clip List"
	StageSubfolderList   = "Subfolder List"
)

// Options selects the application and the track the item probe inspects.
type Options struct {
	AppName    string
	TrackType  resolve.TrackType
	TrackIndex int
}

// DefaultOptions probes the first video track of the "Resolve" application.
func DefaultOptions() Options {
	return Options{AppName: resolve.DefaultAppName, TrackType: resolve.TrackVideo, TrackIndex: 1}
}

func (o Options) normalized() Options {
	if o.AppName == "" {
		o.AppName = resolve.DefaultAppName
	}
	if o.TrackType == "" {
		o.TrackType = resolve.TrackVideo
	}
	if o.TrackIndex < 1 {
		o.TrackIndex = 1
	}
	return o
}

func trackLabel(kind resolve.TrackType) string {
	return cases.Title(language.English).String(string(kind))
}

// TrackCountStage names the track count stage, e.g. "Track Count (Video)".
func (o Options) TrackCountStage() string {
	o = o.normalized()
	return fmt.Sprintf("Track Count (%s)", trackLabel(o.TrackType))
}

// TrackItemsStage names the item list stage, e.g. "Track Items (Video 1)".
func (o Options) TrackItemsStage() string {
	o = o.normalized()
	return fmt.Sprintf("Track Items (%s %d)", trackLabel(o.TrackType), o.TrackIndex)
}

// StageInfo describes one declared stage.
type StageInfo struct {
	Name      string `json:"name"`
	DependsOn string `json:"depends_on,omitempty"`
	Query     string `json:"query"`
}

// Plan returns the declared stage sequence in execution order.
func Plan(opts Options) []StageInfo {
	opts = opts.normalized()
	return []StageInfo{
		{Name: StageConnect, Query: fmt.Sprintf("scriptapp(%q)", opts.AppName)},
		{Name: StageVersion, DependsOn: StageConnect, Query: "GetVersionString()"},
		{Name: StageProductName, DependsOn: StageConnect, Query: "GetProductName()"},
		{Name: StageProjectManager, DependsOn: StageConnect, Query: "GetProjectManager()"},
		{Name: StageCurrentProject, DependsOn: StageProjectManager, Query: "GetCurrentProject()"},
		{Name: StageProjectSettings, DependsOn: StageCurrentProject, Query: "GetSetting()"},
		{Name: StageTimelineCount, DependsOn: StageCurrentProject, Query: "GetTimelineCount()"},
		{Name: StageCurrentTimeline, DependsOn: StageCurrentProject, Query: "GetCurrentTimeline()"},
		{Name: StageTimelineRange, DependsOn: StageCurrentTimeline, Query: "GetStartFrame(), GetEndFrame()"},
		{Name: StageMediaPool, DependsOn: StageCurrentProject, Query: "GetMediaPool()"},
		{Name: StageRootFolder, DependsOn: StageMediaPool, Query: "GetRootFolder()"},
		{Name: StageClipList, DependsOn: StageRootFolder, Query: "GetClipList()"},
		{Name: StageSubfolderList, DependsOn: StageRootFolder, Query: "GetSubFolderList()"},
		{Name: opts.TrackCountStage(), DependsOn: StageCurrentTimeline, Query: fmt.Sprintf("GetTrackCount(%q)", opts.TrackType)},
		{Name: opts.TrackItemsStage(), DependsOn: opts.TrackCountStage(), Query: fmt.Sprintf("GetItemListInTrack(%q, %d)", opts.TrackType, opts.TrackIndex)},
	}
}
