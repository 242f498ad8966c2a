// Package blueprint searches the best robot build order for a blueprint.
//
// The search does not step minute by minute. From every state it branches on
// which robot to commission next, jumps straight to the minute that robot
// becomes affordable, and recurses. Branches are cut when a robot kind has
// reached its production cap, when the robot would be finished too late to
// produce anything, and (optionally) when an optimistic bound cannot beat the
// best geode count found so far.
package blueprint

import (
	"context"
	"time"

	"github.com/napolitain/solver-geode/internal/models"
)

// pollMask controls how often a running search checks its context
const pollMask = 1<<14 - 1

// canonical iteration order, kept in an array so the hot loop does not allocate
var robotKinds = [models.NumResourceKinds]models.ResourceKind{
	models.Ore, models.Clay, models.Obsidian, models.Geode,
}

// Stats describes the work done by one search
type Stats struct {
	Nodes   int64
	Elapsed time.Duration
}

// Solver runs the geode search for one blueprint. It is safe for concurrent
// use: every search keeps its own state.
type Solver struct {
	Blueprint *models.Blueprint
	Caps      models.Resources // max useful robots per kind
	Prune     bool             // optimistic-bound prune
}

// Option configures a Solver
type Option func(*Solver)

// WithCaps overrides the production cap of every kind whose entry is > 0.
// The geode entry is ignored: geode production is never capped.
func WithCaps(overrides models.Resources) Option {
	return func(s *Solver) {
		for k, v := range overrides {
			if v > 0 && models.ResourceKind(k) != models.Geode {
				s.Caps[k] = v
			}
		}
	}
}

// WithPrune enables or disables the optimistic-bound prune (default on)
func WithPrune(enabled bool) Option {
	return func(s *Solver) {
		s.Prune = enabled
	}
}

// NewSolver creates a solver with caps derived from the blueprint costs
func NewSolver(bp *models.Blueprint, opts ...Option) *Solver {
	s := &Solver{
		Blueprint: bp,
		Caps:      models.MaxProduction(bp),
		Prune:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate returns the most geodes obtainable in the given number of minutes,
// starting with one ore robot and nothing in stock.
func (s *Solver) Simulate(minutes int) int {
	return s.BestGeodes(models.Resources{}, models.StartingProduction(), minutes)
}

// SimulateContext is Simulate with cancellation and statistics
func (s *Solver) SimulateContext(ctx context.Context, minutes int) (int, Stats, error) {
	r := s.newRun(ctx, minutes)
	geodes := r.solve(models.Resources{}, models.StartingProduction(), minutes)
	return geodes, r.stats(), r.err
}

// BestGeodes returns the most geodes obtainable from an arbitrary state
func (s *Solver) BestGeodes(held, production models.Resources, remaining int) int {
	r := s.newRun(nil, remaining)
	return r.solve(held, production, remaining)
}

// run is the mutable state of one search
type run struct {
	s       *Solver
	ctx     context.Context
	err     error
	start   time.Time
	minutes int // horizon the search started with, used to date commissions

	best     int
	nodes    int64
	path     []Commission
	bestPath []Commission
}

func (s *Solver) newRun(ctx context.Context, minutes int) *run {
	return &run{
		s:       s,
		ctx:     ctx,
		start:   time.Now(),
		minutes: minutes,
		best:    -1,
		path:    make([]Commission, 0, max(minutes, 0)),
	}
}

func (r *run) stats() Stats {
	return Stats{Nodes: r.nodes, Elapsed: time.Since(r.start)}
}

func (r *run) solve(held, production models.Resources, remaining int) int {
	if remaining < 0 {
		remaining = 0
	}
	if r.ctx != nil {
		if err := r.ctx.Err(); err != nil {
			r.err = err
			return 0
		}
	}
	geodes := r.step(held, production, remaining)
	if r.err != nil {
		return 0
	}
	return max(geodes, r.best)
}

// observe records a reachable final geode count and the path leading to it
func (r *run) observe(geodes int) {
	if geodes > r.best {
		r.best = geodes
		r.bestPath = append(r.bestPath[:0], r.path...)
	}
}

// step returns the best geode count reachable from this state. When pruning
// is on, subtrees that cannot beat r.best may report less than their optimum.
func (r *run) step(held, production models.Resources, remaining int) int {
	r.nodes++
	if r.ctx != nil && r.nodes&pollMask == 0 {
		if err := r.ctx.Err(); err != nil {
			r.err = err
		}
	}
	if r.err != nil {
		return 0
	}

	// Idle until the end
	best := held[models.Geode] + remaining*production[models.Geode]
	r.observe(best)
	if remaining == 0 {
		return best
	}

	// One more geode robot every remaining minute is the most that is possible
	if r.s.Prune && best+remaining*(remaining-1)/2 <= r.best {
		return best
	}

	bp := r.s.Blueprint
	for _, kind := range robotKinds {
		if production[kind] >= r.s.Caps[kind] {
			continue
		}

		cost := bp.Costs[kind]
		wait := 0
		switch b := CanBuild(held, production, cost); b.Status {
		case Never:
			continue
		case In:
			if b.Wait+1 >= remaining {
				continue
			}
			wait = b.Wait
		}

		// Collect for wait+1 minutes at the old rate, pay once, robot joins after
		elapsed := wait + 1
		nextHeld := held.Add(production.Scale(elapsed)).SaturatingSub(cost)
		nextProduction := production
		nextProduction[kind]++

		r.path = append(r.path, Commission{
			Minute: r.minutes - remaining + elapsed,
			Kind:   kind,
		})
		geodes := r.step(nextHeld, nextProduction, remaining-elapsed)
		r.path = r.path[:len(r.path)-1]

		if geodes > best {
			best = geodes
		}
	}

	return best
}
