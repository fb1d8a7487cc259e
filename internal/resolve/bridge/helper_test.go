package bridge

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"resolveprobe/internal/resolve"
)

// fakeScriptingModule stands in for DaVinciResolveScript.py. The second
// subfolder's clip list is a table, as some Resolve builds return it.
const fakeScriptingModule = `
class Named(object):
    def __init__(self, name):
        self.name = name

    def GetName(self):
        return self.name


class Folder(Named):
    def __init__(self, name, clips, subfolders=()):
        Named.__init__(self, name)
        self.clips = clips
        self.subfolders = list(subfolders)

    def GetClipList(self):
        return self.clips

    def GetSubFolderList(self):
        return self.subfolders


class MediaPool(object):
    def GetRootFolder(self):
        return Folder("Master", [Named("A001"), Named("A002")], [
            Folder("Dailies", {}),
            Folder("Selects", {1: Named("S001")}),
        ])


class Timeline(Named):
    def GetStartFrame(self):
        return 86400

    def GetEndFrame(self):
        return 86519

    def GetTrackCount(self, kind):
        return 2 if kind == "video" else 0

    def GetItemListInTrack(self, kind, index):
        return [Named("%s-%d-shot" % (kind, index))]


class Project(Named):
    def GetSetting(self, name=None):
        return {"timelineFrameRate": "24", "timelineResolutionWidth": "1920"}

    def GetTimelineCount(self):
        return 1

    def GetCurrentTimeline(self):
        return Timeline("Edit")

    def GetMediaPool(self):
        return MediaPool()


class ProjectManager(object):
    def GetCurrentProject(self):
        return Project("Feature")


class Resolve(object):
    def GetVersionString(self):
        return "19.0.1"

    def GetProductName(self):
        return "DaVinci Resolve"

    def GetProjectManager(self):
        return ProjectManager()

    def GetGallery(self):
        return None


def scriptapp(name):
    print("fake scripting banner")
    if name == "Resolve":
        return Resolve()
    return None
`

// newHelperClient runs the embedded helper under a real python3 with
// modulesDir on its import path.
func newHelperClient(t *testing.T, modulesDir string) *Client {
	t.Helper()
	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not available")
	}
	client, err := New(Config{Python: python, ModulesDir: modulesDir},
		WithBaseEnv([]string{"PYTHONDONTWRITEBYTECODE=1"}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func installFakeModule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "DaVinciResolveScript.py"), []byte(fakeScriptingModule), 0o644); err != nil {
		t.Fatalf("write fake module: %v", err)
	}
	return dir
}

func TestHelperWalksPopulatedGraph(t *testing.T) {
	client := newHelperClient(t, installFakeModule(t))
	ctx := context.Background()

	app, err := client.ScriptApp(ctx, resolve.DefaultAppName)
	if err != nil || app == nil {
		t.Fatalf("ScriptApp: %v, %v", app, err)
	}
	if version, err := app.Version(ctx); err != nil || version != "19.0.1" {
		t.Fatalf("Version = %q, %v", version, err)
	}
	pm, err := app.ProjectManager(ctx)
	if err != nil || pm == nil {
		t.Fatalf("ProjectManager: %v, %v", pm, err)
	}
	project, err := pm.CurrentProject(ctx)
	if err != nil || project == nil {
		t.Fatalf("CurrentProject: %v, %v", project, err)
	}
	settings, err := project.Settings(ctx)
	if err != nil || settings["timelineFrameRate"] != "24" {
		t.Fatalf("Settings = %v, %v", settings, err)
	}
	count, err := project.TimelineCount(ctx)
	if err != nil || count != 1 {
		t.Fatalf("TimelineCount = %d, %v", count, err)
	}

	tl, err := project.CurrentTimeline(ctx)
	if err != nil || tl == nil {
		t.Fatalf("CurrentTimeline: %v, %v", tl, err)
	}
	end, err := tl.EndFrame(ctx)
	if err != nil || end != 86519 {
		t.Fatalf("EndFrame = %d, %v", end, err)
	}
	tracks, err := tl.TrackCount(ctx, resolve.TrackVideo)
	if err != nil || tracks != 2 {
		t.Fatalf("TrackCount = %d, %v", tracks, err)
	}
	items, err := tl.ItemsInTrack(ctx, resolve.TrackVideo, 1)
	if err != nil || len(items) != 1 || items[0].Name != "video-1-shot" {
		t.Fatalf("ItemsInTrack = %v, %v", items, err)
	}

	pool, err := project.MediaPool(ctx)
	if err != nil || pool == nil {
		t.Fatalf("MediaPool: %v, %v", pool, err)
	}
	root, err := pool.RootFolder(ctx)
	if err != nil || root == nil {
		t.Fatalf("RootFolder: %v, %v", root, err)
	}
	clips, err := root.Clips(ctx)
	if err != nil || len(clips) != 2 || clips[1].Name != "A002" {
		t.Fatalf("Clips = %v, %v", clips, err)
	}
	subfolders, err := root.Subfolders(ctx)
	if err != nil || len(subfolders) != 2 {
		t.Fatalf("Subfolders = %v, %v", subfolders, err)
	}
	if name, err := subfolders[1].Name(ctx); err != nil || name != "Selects" {
		t.Fatalf("indexed subfolder name = %q, %v", name, err)
	}
	selects, err := subfolders[1].Clips(ctx)
	if err != nil || len(selects) != 1 || selects[0].Name != "S001" {
		t.Fatalf("table clip list = %v, %v", selects, err)
	}
	dailies, err := subfolders[0].Clips(ctx)
	if err != nil || len(dailies) != 0 {
		t.Fatalf("empty table clip list = %v, %v", dailies, err)
	}
}

func TestHelperNullMidPath(t *testing.T) {
	client := newHelperClient(t, installFakeModule(t))
	gallery := node{client: client, app: resolve.DefaultAppName, kind: "Resolve"}.child("Gallery", method("GetGallery"))
	_, err := gallery.queryString(context.Background(), method("GetName"))
	if !errors.Is(err, resolve.ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}

func TestHelperModuleMissing(t *testing.T) {
	client := newHelperClient(t, t.TempDir())
	app, err := client.ScriptApp(context.Background(), resolve.DefaultAppName)
	if app != nil || !errors.Is(err, resolve.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v, %v", app, err)
	}
}

func TestHelperAppUnreachable(t *testing.T) {
	client := newHelperClient(t, installFakeModule(t))
	app, err := client.ScriptApp(context.Background(), "Fusion")
	if err != nil || app != nil {
		t.Fatalf("expected nil app and nil error, got %v, %v", app, err)
	}
}
