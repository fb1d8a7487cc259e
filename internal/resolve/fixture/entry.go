package fixture

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"resolveprobe/internal/resolve"
)

// Entry serves a Graph through the resolve interfaces.
type Entry struct {
	graph *Graph

	mu    sync.Mutex
	calls []string
}

// New wraps a graph. A nil graph behaves like an application that is not running.
func New(g *Graph) *Entry {
	if g == nil {
		g = &Graph{}
	}
	return &Entry{graph: g}
}

// Calls returns the scripting calls served so far, in order.
func (e *Entry) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

// call records a method invocation and applies any injected fault.
func (e *Entry) call(node, method string) error {
	e.mu.Lock()
	e.calls = append(e.calls, node+"."+method)
	e.mu.Unlock()
	if msg, ok := e.graph.fault(node, method); ok {
		return resolve.Wrap(resolve.ErrCallFailed, node, method, errors.New(msg))
	}
	return nil
}

// ScriptApp implements resolve.Entry.
func (e *Entry) ScriptApp(_ context.Context, name string) (resolve.App, error) {
	if err := e.call("scriptapp", name); err != nil {
		return nil, err
	}
	if e.graph.ModuleMissing {
		return nil, resolve.Wrap(resolve.ErrModuleNotFound, "DaVinciResolveScript", "import", nil)
	}
	if name != resolve.DefaultAppName {
		return nil, nil
	}
	if e.graph.App == nil {
		return nil, nil
	}
	return &app{entry: e, def: e.graph.App}, nil
}

type app struct {
	entry *Entry
	def   *App
}

func (a *app) Version(context.Context) (string, error) {
	if err := a.entry.call("App", "Version"); err != nil {
		return "", err
	}
	return a.def.Version, nil
}

func (a *app) ProductName(context.Context) (string, error) {
	if err := a.entry.call("App", "ProductName"); err != nil {
		return "", err
	}
	return a.def.Product, nil
}

func (a *app) ProjectManager(context.Context) (resolve.ProjectManager, error) {
	if err := a.entry.call("App", "ProjectManager"); err != nil {
		return nil, err
	}
	if a.entry.graph.returnsNil("App", "ProjectManager") {
		return nil, nil
	}
	return &projectManager{entry: a.entry, def: a.def}, nil
}

type projectManager struct {
	entry *Entry
	def   *App
}

func (pm *projectManager) CurrentProject(context.Context) (resolve.Project, error) {
	if err := pm.entry.call("ProjectManager", "CurrentProject"); err != nil {
		return nil, err
	}
	if pm.def.Project == nil || pm.entry.graph.returnsNil("ProjectManager", "CurrentProject") {
		return nil, nil
	}
	return &project{entry: pm.entry, def: pm.def.Project}, nil
}

type project struct {
	entry *Entry
	def   *Project
}

func (p *project) Name(context.Context) (string, error) {
	if err := p.entry.call("Project", "Name"); err != nil {
		return "", err
	}
	return p.def.Name, nil
}

func (p *project) Settings(context.Context) (map[string]string, error) {
	if err := p.entry.call("Project", "Settings"); err != nil {
		return nil, err
	}
	if p.entry.graph.returnsNil("Project", "Settings") {
		return nil, nil
	}
	out := make(map[string]string, len(p.def.Settings))
	for k, v := range p.def.Settings {
		out[k] = v
	}
	return out, nil
}

func (p *project) TimelineCount(context.Context) (int, error) {
	if err := p.entry.call("Project", "TimelineCount"); err != nil {
		return 0, err
	}
	return len(p.def.Timelines), nil
}

func (p *project) CurrentTimeline(context.Context) (resolve.Timeline, error) {
	if err := p.entry.call("Project", "CurrentTimeline"); err != nil {
		return nil, err
	}
	if p.def.CurrentTimeline == "" || p.entry.graph.returnsNil("Project", "CurrentTimeline") {
		return nil, nil
	}
	for i := range p.def.Timelines {
		if p.def.Timelines[i].Name == p.def.CurrentTimeline {
			return &timeline{entry: p.entry, def: &p.def.Timelines[i]}, nil
		}
	}
	return nil, resolve.Wrap(resolve.ErrCallFailed, "Project", "CurrentTimeline",
		fmt.Errorf("timeline %q not found", p.def.CurrentTimeline))
}

func (p *project) MediaPool(context.Context) (resolve.MediaPool, error) {
	if err := p.entry.call("Project", "MediaPool"); err != nil {
		return nil, err
	}
	if p.entry.graph.returnsNil("Project", "MediaPool") {
		return nil, nil
	}
	return &mediaPool{entry: p.entry, def: &p.def.MediaPool}, nil
}

type timeline struct {
	entry *Entry
	def   *Timeline
}

func (t *timeline) Name(context.Context) (string, error) {
	if err := t.entry.call("Timeline", "Name"); err != nil {
		return "", err
	}
	return t.def.Name, nil
}

func (t *timeline) StartFrame(context.Context) (int, error) {
	if err := t.entry.call("Timeline", "StartFrame"); err != nil {
		return 0, err
	}
	return t.def.StartFrame, nil
}

func (t *timeline) EndFrame(context.Context) (int, error) {
	if err := t.entry.call("Timeline", "EndFrame"); err != nil {
		return 0, err
	}
	return t.def.EndFrame, nil
}

func (t *timeline) tracks(kind resolve.TrackType) [][]string {
	switch kind {
	case resolve.TrackAudio:
		return t.def.Audio
	case resolve.TrackSubtitle:
		return t.def.Subtitle
	default:
		return t.def.Video
	}
}

func (t *timeline) TrackCount(_ context.Context, kind resolve.TrackType) (int, error) {
	if err := t.entry.call("Timeline", "TrackCount"); err != nil {
		return 0, err
	}
	return len(t.tracks(kind)), nil
}

func (t *timeline) ItemsInTrack(_ context.Context, kind resolve.TrackType, index int) ([]resolve.Item, error) {
	if err := t.entry.call("Timeline", "ItemsInTrack"); err != nil {
		return nil, err
	}
	tracks := t.tracks(kind)
	if index < 1 || index > len(tracks) {
		return nil, resolve.Wrap(resolve.ErrCallFailed, "Timeline", "ItemsInTrack",
			fmt.Errorf("%s track %d out of range (1-%d)", kind, index, len(tracks)))
	}
	return itemsFromNames(tracks[index-1]), nil
}

type mediaPool struct {
	entry *Entry
	def   *MediaPool
}

func (m *mediaPool) RootFolder(context.Context) (resolve.Folder, error) {
	if err := m.entry.call("MediaPool", "RootFolder"); err != nil {
		return nil, err
	}
	if m.entry.graph.returnsNil("MediaPool", "RootFolder") {
		return nil, nil
	}
	return &folder{entry: m.entry, def: &m.def.Root}, nil
}

type folder struct {
	entry *Entry
	def   *Folder
}

func (f *folder) Name(context.Context) (string, error) {
	if err := f.entry.call("Folder", "Name"); err != nil {
		return "", err
	}
	return f.def.Name, nil
}

func (f *folder) Clips(context.Context) ([]resolve.Item, error) {
	if err := f.entry.call("Folder", "Clips"); err != nil {
		return nil, err
	}
	return itemsFromNames(f.def.Clips), nil
}

func (f *folder) Subfolders(context.Context) ([]resolve.Folder, error) {
	if err := f.entry.call("Folder", "Subfolders"); err != nil {
		return nil, err
	}
	out := make([]resolve.Folder, 0, len(f.def.Folders))
	for i := range f.def.Folders {
		out = append(out, &folder{entry: f.entry, def: &f.def.Folders[i]})
	}
	return out, nil
}

func itemsFromNames(names []string) []resolve.Item {
	items := make([]resolve.Item, 0, len(names))
	for _, name := range names {
		items = append(items, resolve.Item{Name: name})
	}
	return items
}
