package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"resolveprobe/internal/resolve"
)

// ScriptApp implements resolve.Entry. An application that does not answer
// scriptapp yields a nil App and a nil error.
func (c *Client) ScriptApp(ctx context.Context, name string) (resolve.App, error) {
	if _, err := c.do(ctx, request{App: name}, "scriptapp", name); err != nil {
		if errors.Is(err, resolve.ErrAppUnreachable) {
			return nil, nil
		}
		return nil, err
	}
	return &app{node{client: c, app: name, kind: "Resolve"}}, nil
}

// node is a navigation path from the application root.
type node struct {
	client *Client
	app    string
	path   []step
	kind   string
}

func (n node) child(kind string, steps ...step) node {
	path := make([]step, 0, len(n.path)+len(steps))
	path = append(path, n.path...)
	path = append(path, steps...)
	return node{client: n.client, app: n.app, path: path, kind: kind}
}

func (n node) query(ctx context.Context, call step) (response, error) {
	return n.client.do(ctx, request{App: n.app, Path: n.path, Call: &call}, n.kind, call.String())
}

// lookup issues call and returns the child node it leads to, or false when
// the call returned nothing.
func (n node) lookup(ctx context.Context, kind string, call step) (node, bool, error) {
	resp, err := n.query(ctx, call)
	if err != nil {
		return node{}, false, err
	}
	if resp.Null {
		return node{}, false, nil
	}
	return n.child(kind, call), true, nil
}

func (n node) queryString(ctx context.Context, call step) (string, error) {
	resp, err := n.query(ctx, call)
	if err != nil {
		return "", err
	}
	if resp.Null {
		return "", resolve.Wrap(resolve.ErrNoResult, n.kind, call.String(), nil)
	}
	var out any
	if err := json.Unmarshal(resp.Value, &out); err != nil {
		return "", resolve.Wrap(resolve.ErrCallFailed, n.kind, call.String(), err)
	}
	switch v := out.(type) {
	case string:
		return v, nil
	default:
		return fmt.Sprint(v), nil
	}
}

func (n node) queryInt(ctx context.Context, call step) (int, error) {
	resp, err := n.query(ctx, call)
	if err != nil {
		return 0, err
	}
	if resp.Null {
		return 0, resolve.Wrap(resolve.ErrNoResult, n.kind, call.String(), nil)
	}
	var f float64
	if err := json.Unmarshal(resp.Value, &f); err != nil {
		return 0, resolve.Wrap(resolve.ErrCallFailed, n.kind, call.String(), fmt.Errorf("expected a number: %w", err))
	}
	if f != math.Trunc(f) {
		return 0, resolve.Wrap(resolve.ErrCallFailed, n.kind, call.String(), fmt.Errorf("expected an integer, got %v", f))
	}
	return int(f), nil
}

func (n node) queryItems(ctx context.Context, call step) ([]string, error) {
	resp, err := n.query(ctx, call)
	if err != nil {
		return nil, err
	}
	if resp.Null {
		return nil, resolve.Wrap(resolve.ErrNoResult, n.kind, call.String(), nil)
	}
	if resp.Items == nil {
		// An empty table carries no values to tell it apart from an empty
		// settings map, so the helper reports it as a value.
		if isEmptyTable(resp.Value) {
			return []string{}, nil
		}
		return nil, resolve.Wrap(resolve.ErrCallFailed, n.kind, call.String(), errors.New("expected a list"))
	}
	return append([]string{}, resp.Items...), nil
}

func isEmptyTable(raw json.RawMessage) bool {
	var table map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &table) != nil {
		return false
	}
	return table != nil && len(table) == 0
}

func toItems(names []string) []resolve.Item {
	items := make([]resolve.Item, 0, len(names))
	for _, name := range names {
		items = append(items, resolve.Item{Name: name})
	}
	return items
}

type app struct{ node }

func (a *app) Version(ctx context.Context) (string, error) {
	return a.queryString(ctx, method("GetVersionString"))
}

func (a *app) ProductName(ctx context.Context) (string, error) {
	return a.queryString(ctx, method("GetProductName"))
}

func (a *app) ProjectManager(ctx context.Context) (resolve.ProjectManager, error) {
	child, ok, err := a.lookup(ctx, "ProjectManager", method("GetProjectManager"))
	if err != nil || !ok {
		return nil, err
	}
	return &projectManager{child}, nil
}

type projectManager struct{ node }

func (pm *projectManager) CurrentProject(ctx context.Context) (resolve.Project, error) {
	child, ok, err := pm.lookup(ctx, "Project", method("GetCurrentProject"))
	if err != nil || !ok {
		return nil, err
	}
	return &project{child}, nil
}

type project struct{ node }

func (p *project) Name(ctx context.Context) (string, error) {
	return p.queryString(ctx, method("GetName"))
}

func (p *project) Settings(ctx context.Context) (map[string]string, error) {
	call := method("GetSetting")
	resp, err := p.query(ctx, call)
	if err != nil {
		return nil, err
	}
	if resp.Null {
		return nil, nil
	}
	settings := map[string]string{}
	if err := json.Unmarshal(resp.Value, &settings); err != nil {
		return nil, resolve.Wrap(resolve.ErrCallFailed, p.kind, call.String(), fmt.Errorf("expected a settings table: %w", err))
	}
	return settings, nil
}

func (p *project) TimelineCount(ctx context.Context) (int, error) {
	return p.queryInt(ctx, method("GetTimelineCount"))
}

func (p *project) CurrentTimeline(ctx context.Context) (resolve.Timeline, error) {
	child, ok, err := p.lookup(ctx, "Timeline", method("GetCurrentTimeline"))
	if err != nil || !ok {
		return nil, err
	}
	return &timeline{child}, nil
}

func (p *project) MediaPool(ctx context.Context) (resolve.MediaPool, error) {
	child, ok, err := p.lookup(ctx, "MediaPool", method("GetMediaPool"))
	if err != nil || !ok {
		return nil, err
	}
	return &mediaPool{child}, nil
}

type timeline struct{ node }

func (t *timeline) Name(ctx context.Context) (string, error) {
	return t.queryString(ctx, method("GetName"))
}

func (t *timeline) StartFrame(ctx context.Context) (int, error) {
	return t.queryInt(ctx, method("GetStartFrame"))
}

func (t *timeline) EndFrame(ctx context.Context) (int, error) {
	return t.queryInt(ctx, method("GetEndFrame"))
}

func (t *timeline) TrackCount(ctx context.Context, kind resolve.TrackType) (int, error) {
	return t.queryInt(ctx, method("GetTrackCount", string(kind)))
}

func (t *timeline) ItemsInTrack(ctx context.Context, kind resolve.TrackType, idx int) ([]resolve.Item, error) {
	names, err := t.queryItems(ctx, method("GetItemListInTrack", string(kind), idx))
	if err != nil {
		return nil, err
	}
	return toItems(names), nil
}

type mediaPool struct{ node }

func (m *mediaPool) RootFolder(ctx context.Context) (resolve.Folder, error) {
	child, ok, err := m.lookup(ctx, "Folder", method("GetRootFolder"))
	if err != nil || !ok {
		return nil, err
	}
	return &folder{child}, nil
}

type folder struct{ node }

func (f *folder) Name(ctx context.Context) (string, error) {
	return f.queryString(ctx, method("GetName"))
}

func (f *folder) Clips(ctx context.Context) ([]resolve.Item, error) {
	names, err := f.queryItems(ctx, method("GetClipList"))
	if err != nil {
		return nil, err
	}
	return toItems(names), nil
}

func (f *folder) Subfolders(ctx context.Context) ([]resolve.Folder, error) {
	call := method("GetSubFolderList")
	names, err := f.queryItems(ctx, call)
	if err != nil {
		return nil, err
	}
	out := make([]resolve.Folder, 0, len(names))
	for i := range names {
		out = append(out, &folder{f.child("Folder", call, index(i))})
	}
	return out, nil
}
