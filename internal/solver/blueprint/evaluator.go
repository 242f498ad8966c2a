package blueprint

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/napolitain/solver-geode/internal/models"
)

// Result holds the outcome of one blueprint search
type Result struct {
	BlueprintID int
	Geodes      int
	Stats       Stats
}

// Quality returns blueprint id times geodes
func (r Result) Quality() int {
	return r.BlueprintID * r.Geodes
}

// TaskError reports a blueprint whose search panicked
type TaskError struct {
	Index       int // position in the input slice
	BlueprintID int // 0 if the blueprint itself was nil
	Panic       any
	Stack       []byte
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("blueprint %d (entry %d): search panicked: %v", e.BlueprintID, e.Index, e.Panic)
}

// Evaluator runs one independent search per blueprint in parallel
type Evaluator struct {
	workers int
	caps    models.Resources
	prune   bool
	logger  *slog.Logger
}

// EvaluatorOption configures an Evaluator
type EvaluatorOption func(*Evaluator)

// WithWorkers caps the number of concurrent searches. 0 means one goroutine
// per blueprint.
func WithWorkers(n int) EvaluatorOption {
	return func(e *Evaluator) {
		e.workers = n
	}
}

// WithCapOverrides forwards production cap overrides to every solver
func WithCapOverrides(caps models.Resources) EvaluatorOption {
	return func(e *Evaluator) {
		e.caps = caps
	}
}

// WithBoundPrune toggles the optimistic-bound prune for every solver
func WithBoundPrune(enabled bool) EvaluatorOption {
	return func(e *Evaluator) {
		e.prune = enabled
	}
}

// WithLogger sets the logger. If nil, uses slog.Default().
func WithLogger(logger *slog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// NewEvaluator creates an evaluator
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{prune: true}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Evaluate searches the first limit blueprints (all if limit <= 0) with the
// given time budget. Results keep input order. The first failing task (panic
// or cancellation) cancels the rest and its error is returned.
func (e *Evaluator) Evaluate(ctx context.Context, blueprints []*models.Blueprint, minutes, limit int) ([]Result, error) {
	if limit > 0 && limit < len(blueprints) {
		blueprints = blueprints[:limit]
	}

	results := make([]Result, len(blueprints))

	g, gCtx := errgroup.WithContext(ctx)
	if e.workers > 0 {
		g.SetLimit(e.workers)
	}

	for i, bp := range blueprints {
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					id := 0
					if bp != nil {
						id = bp.ID
					}
					err = &TaskError{Index: i, BlueprintID: id, Panic: p, Stack: debug.Stack()}
					e.logger.Error("blueprint search panicked", "index", i, "id", id, "panic", p)
				}
			}()

			solver := NewSolver(bp, WithCaps(e.caps), WithPrune(e.prune))
			geodes, stats, err := solver.SimulateContext(gCtx, minutes)
			if err != nil {
				return fmt.Errorf("blueprint %d: %w", bp.ID, err)
			}

			// Each task owns its own slot
			results[i] = Result{BlueprintID: bp.ID, Geodes: geodes, Stats: stats}

			e.logger.Debug("blueprint evaluated",
				"id", bp.ID,
				"minutes", minutes,
				"geodes", geodes,
				"nodes", stats.Nodes,
				"elapsed", stats.Elapsed)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// QualitySum evaluates the blueprints and returns the sum of id * geodes
func (e *Evaluator) QualitySum(ctx context.Context, blueprints []*models.Blueprint, minutes, limit int) (int, []Result, error) {
	results, err := e.Evaluate(ctx, blueprints, minutes, limit)
	if err != nil {
		return 0, nil, err
	}
	return QualitySum(results), results, nil
}

// QualityProduct evaluates the blueprints and returns the product of geodes
func (e *Evaluator) QualityProduct(ctx context.Context, blueprints []*models.Blueprint, minutes, limit int) (int, []Result, error) {
	results, err := e.Evaluate(ctx, blueprints, minutes, limit)
	if err != nil {
		return 0, nil, err
	}
	return QualityProduct(results), results, nil
}

// QualitySum returns the sum of id * geodes
func QualitySum(results []Result) int {
	sum := 0
	for _, r := range results {
		sum += r.Quality()
	}
	return sum
}

// QualityProduct returns the product of geodes. An empty set yields 1.
func QualityProduct(results []Result) int {
	prod := 1
	for _, r := range results {
		prod *= r.Geodes
	}
	return prod
}
