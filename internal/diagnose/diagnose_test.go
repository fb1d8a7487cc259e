package diagnose

import (
	"context"
	"slices"
	"strings"
	"testing"

	"resolveprobe/internal/probe"
	"resolveprobe/internal/resolve"
	"resolveprobe/internal/resolve/fixture"
)

const populatedGraph = `
[app]
version = "19.1.3.7"
product = "DaVinci Resolve Studio"

[app.project]
name = "Short Film"
current_timeline = "Assembly"

[app.project.settings]
timelineFrameRate = "24"

[[app.project.timelines]]
name = "Assembly"
start_frame = 86400
end_frame = 91200
video = [["A001_C002", "A001_C005"], ["Title"]]
audio = [["A001_C002"]]

[app.project.media_pool.root]
name = "Master"
clips = ["A001_C002", "A001_C005"]

[[app.project.media_pool.root.folders]]
name = "Audio"
`

type collector struct {
	outcomes []probe.Outcome
}

func (c *collector) Record(o probe.Outcome) {
	c.outcomes = append(c.outcomes, o)
}

func (c *collector) byStage(t *testing.T, stage string) probe.Outcome {
	t.Helper()
	for _, o := range c.outcomes {
		if o.Stage == stage {
			return o
		}
	}
	t.Fatalf("no outcome for stage %q in %+v", stage, c.outcomes)
	return probe.Outcome{}
}

func (c *collector) worst() probe.Kind {
	verdict := probe.Success
	for _, o := range c.outcomes {
		verdict = probe.Worst(verdict, o.Kind)
	}
	return verdict
}

func parseGraph(t *testing.T, doc string) *fixture.Graph {
	t.Helper()
	g, err := fixture.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return g
}

func runEntry(t *testing.T, entry resolve.Entry, opts Options) (*collector, Session) {
	t.Helper()
	rec := &collector{}
	session := Run(context.Background(), entry, opts, probe.NewChain(rec, nil))
	return rec, session
}

func TestScenarioEntryPointUnavailable(t *testing.T) {
	rec, session := runEntry(t, fixture.New(parseGraph(t, "module_missing = true\n")), DefaultOptions())
	if session.Connected {
		t.Fatal("session should not be connected")
	}
	if len(rec.outcomes) != 1 {
		t.Fatalf("expected exactly one outcome, got %+v", rec.outcomes)
	}
	got := rec.outcomes[0]
	if got.Stage != StageConnect || got.Kind != probe.Fatal {
		t.Fatalf("unexpected outcome %+v", got)
	}
	if !strings.HasPrefix(got.Detail, "scripting module unavailable") {
		t.Fatalf("unexpected detail %q", got.Detail)
	}
}

func TestApplicationUnreachableIsFatal(t *testing.T) {
	rec, _ := runEntry(t, fixture.New(parseGraph(t, "")), DefaultOptions())
	if len(rec.outcomes) != 1 || rec.outcomes[0].Kind != probe.Fatal {
		t.Fatalf("expected a single fatal outcome, got %+v", rec.outcomes)
	}
	if rec.outcomes[0].Detail != "module present, application unreachable" {
		t.Fatalf("unexpected detail %q", rec.outcomes[0].Detail)
	}
}

func TestScenarioNoProjectOpen(t *testing.T) {
	doc := "[app]\nversion = \"19.1\"\nproduct = \"DaVinci Resolve\"\n"
	rec, session := runEntry(t, fixture.New(parseGraph(t, doc)), DefaultOptions())
	if !session.Connected {
		t.Fatal("expected a connected session")
	}
	if len(rec.outcomes) != len(Plan(DefaultOptions())) {
		t.Fatalf("expected every stage to report, got %d outcomes", len(rec.outcomes))
	}
	if got := rec.byStage(t, StageProjectManager); got.Kind != probe.Success {
		t.Fatalf("project manager: %+v", got)
	}
	if got := rec.byStage(t, StageCurrentProject); got.Kind != probe.Warning || got.Detail != "no current project open" {
		t.Fatalf("current project: %+v", got)
	}
	downstream := []string{
		StageProjectSettings, StageTimelineCount, StageCurrentTimeline, StageTimelineRange,
		StageMediaPool, StageRootFolder, StageClipList, StageSubfolderList,
		DefaultOptions().TrackCountStage(), DefaultOptions().TrackItemsStage(),
	}
	for _, stage := range downstream {
		got := rec.byStage(t, stage)
		if got.Kind != probe.Warning || !strings.HasPrefix(got.Detail, "dependency unavailable: ") {
			t.Fatalf("%s: expected dependency skip, got %+v", stage, got)
		}
	}
	if verdict := rec.worst(); verdict != probe.Warning {
		t.Fatalf("verdict = %s, want warning", verdict)
	}
}

func TestScenarioZeroVideoTracks(t *testing.T) {
	doc := `
[app]
version = "19.1"

[app.project]
name = "Empty Edit"
current_timeline = "Timeline 1"

[[app.project.timelines]]
name = "Timeline 1"
start_frame = 0
end_frame = 0
`
	rec, _ := runEntry(t, fixture.New(parseGraph(t, doc)), DefaultOptions())
	count := rec.byStage(t, "Track Count (Video)")
	if count.Kind != probe.Success || count.Detail != "0 video tracks" {
		t.Fatalf("track count: %+v", count)
	}
	items := rec.byStage(t, "Track Items (Video 1)")
	if items.Kind != probe.Warning || items.Detail != "no video tracks" {
		t.Fatalf("track items: %+v", items)
	}
	if got := rec.byStage(t, StageClipList); got.Kind != probe.Success || got.Detail != "0 clips in root folder" {
		t.Fatalf("empty clip list should succeed: %+v", got)
	}
	if verdict := rec.worst(); verdict != probe.Warning {
		t.Fatalf("verdict = %s, want warning", verdict)
	}
}

func TestScenarioFullyPopulated(t *testing.T) {
	rec, _ := runEntry(t, fixture.New(parseGraph(t, populatedGraph)), DefaultOptions())
	for _, o := range rec.outcomes {
		if o.Kind != probe.Success {
			t.Fatalf("expected success for %s, got %+v", o.Stage, o)
		}
	}
	if got := rec.byStage(t, "Track Items (Video 1)"); got.Detail != "2 items in video track 1" {
		t.Fatalf("track items detail %q", got.Detail)
	}
	if got := rec.byStage(t, StageCurrentProject); got.Detail != "Short Film" {
		t.Fatalf("current project detail %q", got.Detail)
	}
	if got := rec.byStage(t, StageTimelineRange); got.Detail != "86400 - 91200 (4800 frames)" {
		t.Fatalf("timeline range detail %q", got.Detail)
	}
	if verdict := rec.worst(); verdict != probe.Success {
		t.Fatalf("verdict = %s, want success", verdict)
	}
}

func TestScenarioMediaPoolFault(t *testing.T) {
	doc := populatedGraph + "\n[faults]\n\"Project.MediaPool\" = \"GetMediaPool raised AttributeError\"\n"
	rec, _ := runEntry(t, fixture.New(parseGraph(t, doc)), DefaultOptions())

	pool := rec.byStage(t, StageMediaPool)
	if pool.Kind != probe.Failure || !strings.Contains(pool.Detail, "GetMediaPool raised AttributeError") {
		t.Fatalf("media pool: %+v", pool)
	}
	for _, stage := range []string{StageRootFolder, StageClipList, StageSubfolderList} {
		got := rec.byStage(t, stage)
		if got.Kind != probe.Warning || !strings.HasPrefix(got.Detail, "dependency unavailable") {
			t.Fatalf("%s: %+v", stage, got)
		}
	}
	if got := rec.byStage(t, StageRootFolder); got.Detail != "dependency unavailable: "+StageMediaPool {
		t.Fatalf("root folder should name its missing dependency: %q", got.Detail)
	}
	for _, stage := range []string{StageCurrentTimeline, "Track Count (Video)", "Track Items (Video 1)"} {
		if got := rec.byStage(t, stage); got.Kind != probe.Success {
			t.Fatalf("%s should be unaffected: %+v", stage, got)
		}
	}
	if verdict := rec.worst(); verdict != probe.Failure {
		t.Fatalf("verdict = %s, want failure", verdict)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	entry := fixture.New(parseGraph(t, populatedGraph))
	first, _ := runEntry(t, entry, DefaultOptions())
	firstCalls := entry.Calls()
	second, _ := runEntry(t, entry, DefaultOptions())
	if !slices.Equal(first.outcomes, second.outcomes) {
		t.Fatalf("outcomes differ between runs:\n%+v\n%+v", first.outcomes, second.outcomes)
	}
	calls := entry.Calls()
	if !slices.Equal(calls[:len(firstCalls)], calls[len(firstCalls):]) {
		t.Fatalf("second run issued different calls: %v", calls)
	}
}

func TestPlanMatchesExecutionOrder(t *testing.T) {
	opts := Options{AppName: resolve.DefaultAppName, TrackType: resolve.TrackAudio, TrackIndex: 1}
	rec, _ := runEntry(t, fixture.New(parseGraph(t, populatedGraph)), opts)
	plan := Plan(opts)
	if len(plan) != len(rec.outcomes) {
		t.Fatalf("plan has %d stages, run produced %d outcomes", len(plan), len(rec.outcomes))
	}
	for i, stage := range plan {
		got := rec.outcomes[i]
		if got.Stage != stage.Name || got.DependsOn != stage.DependsOn {
			t.Fatalf("stage %d: plan %+v, outcome %+v", i, stage, got)
		}
	}
}

func TestTrackIndexBeyondCount(t *testing.T) {
	opts := Options{TrackType: resolve.TrackAudio, TrackIndex: 2}
	rec, _ := runEntry(t, fixture.New(parseGraph(t, populatedGraph)), opts)
	got := rec.byStage(t, "Track Items (Audio 2)")
	if got.Kind != probe.Warning || got.Detail != "audio track 2 not present (1 track)" {
		t.Fatalf("track items: %+v", got)
	}
}

type entryFunc func(ctx context.Context, name string) (resolve.App, error)

func (f entryFunc) ScriptApp(ctx context.Context, name string) (resolve.App, error) {
	return f(ctx, name)
}

type panickyApp struct {
	resolve.App
}

func (panickyApp) Version(context.Context) (string, error) {
	panic("version table corrupted")
}

func TestPanicIsContainedToItsStage(t *testing.T) {
	inner := fixture.New(parseGraph(t, populatedGraph))
	entry := entryFunc(func(ctx context.Context, name string) (resolve.App, error) {
		app, err := inner.ScriptApp(ctx, name)
		if err != nil || app == nil {
			return app, err
		}
		return panickyApp{App: app}, nil
	})
	rec, _ := runEntry(t, entry, DefaultOptions())
	version := rec.byStage(t, StageVersion)
	if version.Kind != probe.Failure || version.Detail != "panic: version table corrupted" {
		t.Fatalf("version: %+v", version)
	}
	if got := rec.byStage(t, StageProductName); got.Kind != probe.Success {
		t.Fatalf("product name should still run: %+v", got)
	}
	if len(rec.outcomes) != len(Plan(DefaultOptions())) {
		t.Fatalf("expected the chain to complete, got %d outcomes", len(rec.outcomes))
	}
}

func TestConnectStandalone(t *testing.T) {
	session, outcome := Connect(context.Background(), fixture.New(parseGraph(t, populatedGraph)), "")
	if !session.Connected || session.Application == nil {
		t.Fatalf("expected connected session, got %+v", session)
	}
	if outcome.Kind != probe.Success || outcome.Stage != StageConnect {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if _, outcome := Connect(context.Background(), nil, ""); outcome.Kind != probe.Fatal {
		t.Fatalf("nil entry should be fatal, got %+v", outcome)
	}
}

func TestStageLabels(t *testing.T) {
	opts := Options{TrackType: resolve.TrackSubtitle, TrackIndex: 3}
	if got := opts.TrackCountStage(); got != "Track Count (Subtitle)" {
		t.Fatalf("TrackCountStage = %q", got)
	}
	if got := opts.TrackItemsStage(); got != "Track Items (Subtitle 3)" {
		t.Fatalf("TrackItemsStage = %q", got)
	}
}
