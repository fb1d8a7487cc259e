package report

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"resolveprobe/internal/probe"
)

// Verdict lines shown beneath the stage list.
const (
	SummarySuccess = "All stages passed"
	SummaryWarning = "Degraded: some stages were skipped or found nothing"
	SummaryFailure = "Degraded: one or more stages failed"
	SummaryFatal   = "Blocked: cannot continue without a connection to DaVinci Resolve"
)

// Counts tallies outcomes by kind.
type Counts struct {
	Success int `json:"success"`
	Warning int `json:"warning"`
	Failure int `json:"failure"`
	Fatal   int `json:"fatal"`
}

// Total returns the number of recorded outcomes.
func (c Counts) Total() int {
	return c.Success + c.Warning + c.Failure + c.Fatal
}

func (c *Counts) add(kind probe.Kind) {
	switch kind {
	case probe.Success:
		c.Success++
	case probe.Warning:
		c.Warning++
	case probe.Failure:
		c.Failure++
	case probe.Fatal:
		c.Fatal++
	}
}

// Report is a finished diagnostic run.
type Report struct {
	RunID      string          `json:"run_id"`
	App        string          `json:"app,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Outcomes   []probe.Outcome `json:"outcomes"`
	Counts     Counts          `json:"counts"`
	Verdict    probe.Kind      `json:"verdict"`
	Summary    string          `json:"summary"`
}

// Blocked reports whether the run stopped at the connection stage.
func (r Report) Blocked() bool {
	return r.Verdict == probe.Fatal
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(r *Reporter) {
		if id != "" {
			r.runID = id
		}
	}
}

// WithClock replaces time.Now (primarily for tests).
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		if now != nil {
			r.now = now
		}
	}
}

// WithApp records the application name the run targeted.
func WithApp(name string) Option {
	return func(r *Reporter) {
		r.app = name
	}
}

// Reporter collects outcomes in execution order.
type Reporter struct {
	mu       sync.Mutex
	runID    string
	app      string
	now      func() time.Time
	started  time.Time
	outcomes []probe.Outcome
}

// New constructs a reporter. The run starts when New returns.
func New(opts ...Option) *Reporter {
	r := &Reporter{runID: uuid.NewString(), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	r.started = r.now()
	return r
}

// RunID returns the identifier attached to this run.
func (r *Reporter) RunID() string {
	return r.runID
}

// Record implements probe.Recorder.
func (r *Reporter) Record(outcome probe.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

// Report snapshots the outcomes recorded so far and computes the verdict.
func (r *Reporter) Report() Report {
	r.mu.Lock()
	outcomes := append([]probe.Outcome(nil), r.outcomes...)
	r.mu.Unlock()

	rep := Report{
		RunID:      r.runID,
		App:        r.app,
		StartedAt:  r.started,
		FinishedAt: r.now(),
		Outcomes:   outcomes,
		Verdict:    Verdict(outcomes),
	}
	for _, o := range outcomes {
		rep.Counts.add(o.Kind)
	}
	rep.Summary = Summary(rep.Verdict)
	return rep
}

// Verdict returns the most severe kind among outcomes, Success when empty.
func Verdict(outcomes []probe.Outcome) probe.Kind {
	verdict := probe.Success
	for _, o := range outcomes {
		verdict = probe.Worst(verdict, o.Kind)
	}
	return verdict
}

// Summary returns the closing line for a verdict.
func Summary(verdict probe.Kind) string {
	switch verdict {
	case probe.Success:
		return SummarySuccess
	case probe.Warning:
		return SummaryWarning
	case probe.Failure:
		return SummaryFailure
	default:
		return SummaryFatal
	}
}
