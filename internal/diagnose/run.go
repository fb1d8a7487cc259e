package diagnose

import (
	"context"
	"fmt"

	"resolveprobe/internal/probe"
	"resolveprobe/internal/resolve"
	"resolveprobe/internal/textutil"
)

// trackSet carries the timeline forward with its track count so the item
// probe can check the requested index.
type trackSet struct {
	timeline resolve.Timeline
	count    int
}

type frameRange struct {
	start, end int
}

// Run executes the full stage sequence against entry, recording every
// outcome on chain. It returns the session established by the first stage.
func Run(ctx context.Context, entry resolve.Entry, opts Options, chain *probe.Chain) Session {
	opts = opts.normalized()

	session := probe.Step(ctx, chain, probe.Probe[resolve.Entry, Session]{
		Name: StageConnect,
		Query: func(ctx context.Context, entry resolve.Entry) probe.Result[Session] {
			return connect(ctx, entry, opts.AppName)
		},
	}, probe.Root(entry))

	probe.Step(ctx, chain, probe.Probe[Session, string]{
		Name: StageVersion,
		Query: func(ctx context.Context, s Session) probe.Result[string] {
			version, err := s.Application.Version(ctx)
			if err != nil {
				return probe.Errored[string](err)
			}
			return probe.Found(version, textutil.Ternary(version == "", "empty version string", version))
		},
	}, session)

	probe.Step(ctx, chain, probe.Probe[Session, string]{
		Name: StageProductName,
		Query: func(ctx context.Context, s Session) probe.Result[string] {
			name, err := s.Application.ProductName(ctx)
			if err != nil {
				return probe.Errored[string](err)
			}
			return probe.Found(name, textutil.Ternary(name == "", "empty product name", name))
		},
	}, session)

	manager := probe.Step(ctx, chain, probe.Probe[Session, resolve.ProjectManager]{
		Name: StageProjectManager,
		Query: func(ctx context.Context, s Session) probe.Result[resolve.ProjectManager] {
			pm, err := s.Application.ProjectManager(ctx)
			if err != nil {
				return probe.Errored[resolve.ProjectManager](err)
			}
			if pm == nil {
				return probe.Result[resolve.ProjectManager]{Kind: probe.Failure, Detail: "project manager unavailable"}
			}
			return probe.Found(pm, "available")
		},
	}, session)

	project := probe.Step(ctx, chain, probe.Probe[resolve.ProjectManager, resolve.Project]{
		Name: StageCurrentProject,
		Query: func(ctx context.Context, pm resolve.ProjectManager) probe.Result[resolve.Project] {
			p, err := pm.CurrentProject(ctx)
			if err != nil {
				return probe.Errored[resolve.Project](err)
			}
			if p == nil {
				return probe.Missing[resolve.Project]("no current project open")
			}
			return probe.Found(p, namedDetail(ctx, p.Name))
		},
	}, manager)

	probe.Step(ctx, chain, probe.Probe[resolve.Project, map[string]string]{
		Name: StageProjectSettings,
		Query: func(ctx context.Context, p resolve.Project) probe.Result[map[string]string] {
			settings, err := p.Settings(ctx)
			if err != nil {
				return probe.Errored[map[string]string](err)
			}
			return probe.Found(settings, textutil.Plural(len(settings), "setting"))
		},
	}, project)

	probe.Step(ctx, chain, probe.Probe[resolve.Project, int]{
		Name: StageTimelineCount,
		Query: func(ctx context.Context, p resolve.Project) probe.Result[int] {
			count, err := p.TimelineCount(ctx)
			if err != nil {
				return probe.Errored[int](err)
			}
			return probe.Found(count, textutil.Plural(count, "timeline"))
		},
	}, project)

	timeline := probe.Step(ctx, chain, probe.Probe[resolve.Project, resolve.Timeline]{
		Name: StageCurrentTimeline,
		Query: func(ctx context.Context, p resolve.Project) probe.Result[resolve.Timeline] {
			tl, err := p.CurrentTimeline(ctx)
			if err != nil {
				return probe.Errored[resolve.Timeline](err)
			}
			if tl == nil {
				return probe.Missing[resolve.Timeline]("no current timeline")
			}
			return probe.Found(tl, namedDetail(ctx, tl.Name))
		},
	}, project)

	probe.Step(ctx, chain, probe.Probe[resolve.Timeline, frameRange]{
		Name: StageTimelineRange,
		Query: func(ctx context.Context, tl resolve.Timeline) probe.Result[frameRange] {
			start, err := tl.StartFrame(ctx)
			if err != nil {
				return probe.Errored[frameRange](err)
			}
			end, err := tl.EndFrame(ctx)
			if err != nil {
				return probe.Errored[frameRange](err)
			}
			if end < start {
				return probe.Errored[frameRange](fmt.Errorf("end frame %d precedes start frame %d", end, start))
			}
			return probe.Found(frameRange{start: start, end: end},
				fmt.Sprintf("%d - %d (%s)", start, end, textutil.Plural(end-start, "frame")))
		},
	}, timeline)

	pool := probe.Step(ctx, chain, probe.Probe[resolve.Project, resolve.MediaPool]{
		Name: StageMediaPool,
		Query: func(ctx context.Context, p resolve.Project) probe.Result[resolve.MediaPool] {
			mp, err := p.MediaPool(ctx)
			if err != nil {
				return probe.Errored[resolve.MediaPool](err)
			}
			if mp == nil {
				return probe.Result[resolve.MediaPool]{Kind: probe.Failure, Detail: "media pool unavailable"}
			}
			return probe.Found(mp, "available")
		},
	}, project)

	root := probe.Step(ctx, chain, probe.Probe[resolve.MediaPool, resolve.Folder]{
		Name: StageRootFolder,
		Query: func(ctx context.Context, mp resolve.MediaPool) probe.Result[resolve.Folder] {
			folder, err := mp.RootFolder(ctx)
			if err != nil {
				return probe.Errored[resolve.Folder](err)
			}
			if folder == nil {
				return probe.Result[resolve.Folder]{Kind: probe.Failure, Detail: "root folder unavailable"}
			}
			return probe.Found(folder, "available")
		},
	}, pool)

	probe.Step(ctx, chain, probe.Probe[resolve.Folder, []resolve.Item]{
		Name: StageClipList,
		Query: func(ctx context.Context, f resolve.Folder) probe.Result[[]resolve.Item] {
			clips, err := f.Clips(ctx)
			if err != nil {
				return probe.Errored[[]resolve.Item](err)
			}
			return probe.Found(clips, textutil.Plural(len(clips), "clip")+" in root folder")
		},
	}, root)

	probe.Step(ctx, chain, probe.Probe[resolve.Folder, []resolve.Folder]{
		Name: StageSubfolderList,
		Query: func(ctx context.Context, f resolve.Folder) probe.Result[[]resolve.Folder] {
			subs, err := f.Subfolders(ctx)
			if err != nil {
				return probe.Errored[[]resolve.Folder](err)
			}
			return probe.Found(subs, textutil.Plural(len(subs), "subfolder"))
		},
	}, root)

	tracks := probe.Step(ctx, chain, probe.Probe[resolve.Timeline, trackSet]{
		Name: opts.TrackCountStage(),
		Query: func(ctx context.Context, tl resolve.Timeline) probe.Result[trackSet] {
			count, err := tl.TrackCount(ctx, opts.TrackType)
			if err != nil {
				return probe.Errored[trackSet](err)
			}
			return probe.Found(trackSet{timeline: tl, count: count},
				textutil.Plural(count, string(opts.TrackType)+" track"))
		},
	}, timeline)

	probe.Step(ctx, chain, probe.Probe[trackSet, []resolve.Item]{
		Name: opts.TrackItemsStage(),
		Require: func(ts trackSet) (string, bool) {
			if ts.count <= 0 {
				return fmt.Sprintf("no %s tracks", opts.TrackType), false
			}
			if opts.TrackIndex > ts.count {
				return fmt.Sprintf("%s track %d not present (%s)", opts.TrackType, opts.TrackIndex,
					textutil.Plural(ts.count, "track")), false
			}
			return "", true
		},
		Query: func(ctx context.Context, ts trackSet) probe.Result[[]resolve.Item] {
			items, err := ts.timeline.ItemsInTrack(ctx, opts.TrackType, opts.TrackIndex)
			if err != nil {
				return probe.Errored[[]resolve.Item](err)
			}
			return probe.Found(items, fmt.Sprintf("%s in %s track %d",
				textutil.Plural(len(items), "item"), opts.TrackType, opts.TrackIndex))
		},
	}, tracks)

	value, _ := session.Get()
	return value
}

// namedDetail labels a found node by name. A failing name lookup does not
// invalidate the node itself.
func namedDetail(ctx context.Context, name func(context.Context) (string, error)) string {
	value, err := name(ctx)
	if err != nil {
		return "name unavailable: " + err.Error()
	}
	if value == "" {
		return "unnamed"
	}
	return value
}
