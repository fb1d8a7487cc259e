package probe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"resolveprobe/internal/logging"
)

// Probe is a single named navigation or query step from In to Out.
type Probe[In, Out any] struct {
	Name string
	// Require optionally gates the query on the dependency value. When it
	// returns false the stage reports a Warning with the given reason.
	Require func(In) (reason string, ok bool)
	Query   func(ctx context.Context, in In) Result[Out]
}

// Chain sequences probe executions and forwards their outcomes.
type Chain struct {
	recorder Recorder
	logger   *slog.Logger
	halted   bool
}

// NewChain constructs a chain that records outcomes into rec.
func NewChain(rec Recorder, logger *slog.Logger) *Chain {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Chain{recorder: rec, logger: logger}
}

// Halted reports whether a Fatal outcome stopped the chain.
func (c *Chain) Halted() bool {
	return c.halted
}

func (c *Chain) emit(outcome Outcome, elapsed time.Duration) {
	if outcome.Kind == Fatal {
		c.halted = true
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldStage, outcome.Stage),
		logging.String("status", outcome.Kind.String()),
		logging.Duration("elapsed", elapsed),
	}
	if outcome.Detail != "" {
		attrs = append(attrs, logging.String("detail", outcome.Detail))
	}
	if outcome.DependsOn != "" {
		attrs = append(attrs, logging.String("depends_on", outcome.DependsOn))
	}
	c.logger.Debug("stage complete", logging.Args(attrs...)...)
	if c.recorder != nil {
		c.recorder.Record(outcome)
	}
}

// Step runs p against dep and returns the stage's output handle. It emits
// exactly one outcome unless the chain has already halted, in which case it
// does nothing and returns an absent handle.
func Step[In, Out any](ctx context.Context, c *Chain, p Probe[In, Out], dep Handle[In]) Handle[Out] {
	out := Handle[Out]{stage: p.Name}
	if c.halted {
		return out
	}
	outcome := Outcome{Stage: p.Name, DependsOn: dep.stage}

	in, ok := dep.Get()
	if !ok {
		outcome.Kind = Warning
		outcome.Detail = "dependency unavailable: " + dep.stage
		c.emit(outcome, 0)
		return out
	}

	start := time.Now()
	result := runQuery(ctx, p, in)
	outcome.Kind = result.Kind
	outcome.Detail = result.Detail
	c.emit(outcome, time.Since(start))

	if result.Kind == Success {
		out.value = result.Value
		out.present = true
	}
	return out
}

// runQuery evaluates the gate and the query with panics contained.
func runQuery[In, Out any](ctx context.Context, p Probe[In, Out], in In) (result Result[Out]) {
	defer func() {
		if r := recover(); r != nil {
			result = Result[Out]{Kind: Failure, Detail: fmt.Sprintf("panic: %v", r)}
		}
	}()
	if p.Require != nil {
		if reason, ok := p.Require(in); !ok {
			return Result[Out]{Kind: Warning, Detail: reason}
		}
	}
	if p.Query == nil {
		return Result[Out]{Kind: Failure, Detail: "probe has no query"}
	}
	if err := ctx.Err(); err != nil {
		return Errored[Out](err)
	}
	return p.Query(ctx, in)
}
