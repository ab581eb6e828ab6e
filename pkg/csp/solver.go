// This file implements the search controller: explicit-stack backtracking
// over the model's variables with configurable selection heuristics, driving
// the propagator after every tentative assignment.
//
// The search is depth-first and single-threaded (SolveParallel splits the
// root variable across workers, each running this same loop on a private
// store). Failures — an emptied domain, an unbalanceable column, a digit
// collision — are branch-local: the store trail is restored and the next
// candidate is tried. Only an exhausted root means no solution exists.
package csp

import (
	"context"
	"fmt"
	"time"
)

// Heuristic selects the next unassigned variable to branch on.
type Heuristic int

const (
	// HeuristicMRVDeg picks the variable with the fewest remaining digits,
	// breaking ties by the highest constraint degree. The default.
	HeuristicMRVDeg Heuristic = iota
	// HeuristicDomDeg minimizes domain size divided by (1 + degree).
	HeuristicDomDeg
	// HeuristicLex picks the first unassigned variable in creation order.
	HeuristicLex
)

// Config holds solver parameters. The zero value is usable; DefaultConfig
// spells out the defaults.
type Config struct {
	// Heuristic is the variable-selection heuristic.
	Heuristic Heuristic
	// NodeLimit caps the number of explored nodes; 0 means unlimited.
	// When the cap is hit, Solve returns the solutions found so far
	// together with ErrNodeBudget.
	NodeLimit int64
	// Workers is the number of goroutines used by SolveParallel;
	// 0 or negative means runtime.NumCPU().
	Workers int
}

// DefaultConfig returns the default solver configuration.
func DefaultConfig() *Config {
	return &Config{Heuristic: HeuristicMRVDeg}
}

// Assignment is one solution: the digit for each variable, indexed by
// variable ID.
type Assignment []int

// Solver performs backtracking search over a model. A Solver is not safe
// for concurrent use; create one per goroutine (the model may be shared).
type Solver struct {
	model  *Model
	config *Config
	prop   *Propagator
	stats  Stats
}

// NewSolver creates a solver with the default configuration.
func NewSolver(m *Model) *Solver {
	return NewSolverWithConfig(m, nil)
}

// NewSolverWithConfig creates a solver with the given configuration.
// A nil config selects the defaults.
func NewSolverWithConfig(m *Model, config *Config) *Solver {
	if config == nil {
		config = DefaultConfig()
	}
	return &Solver{
		model:  m,
		config: config,
		prop:   NewPropagator(m),
	}
}

// Model returns the model being solved.
func (s *Solver) Model() *Model { return s.model }

// Stats returns the statistics of the most recent solve run.
func (s *Solver) Stats() Stats { return s.stats }

// Solve finds solutions to the model. maxSolutions caps the number of
// solutions returned; maxSolutions <= 0 finds all.
//
// An empty result with a nil error means the problem is proven unsolvable.
// ErrNodeBudget means the search stopped early; the context error is
// returned when the search was cancelled or timed out. Both are distinct
// from "no solution exists".
func (s *Solver) Solve(ctx context.Context, maxSolutions int) ([]Assignment, error) {
	if err := s.model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}
	s.stats = Stats{}
	start := time.Now()
	defer func() { s.stats.Duration = time.Since(start) }()

	st := NewStore(s.model)

	// Root propagation. Failure here proves the model unsolvable.
	s.stats.Propagations++
	if err := s.prop.Propagate(st); err != nil {
		s.stats.Revisions = s.prop.revisions
		return []Assignment{}, nil
	}

	solutions := make([]Assignment, 0)
	err := s.search(ctx, st, &solutions, maxSolutions)
	s.stats.Revisions = s.prop.revisions
	return solutions, err
}

// frame is one backtracking choice point: a variable, its ordered candidate
// digits, and the trail mark to restore when a trial is undone.
type frame struct {
	variable *Variable
	values   []int
	next     int
	// trialMark is the trail position before the current trial, or -1
	// when no trial of this frame is active.
	trialMark int
}

// search runs the explicit-stack backtracking loop on the given store,
// appending solutions found. The store must already be propagated.
func (s *Solver) search(ctx context.Context, st *Store, solutions *[]Assignment, maxSolutions int) error {
	if st.AllBound() {
		*solutions = append(*solutions, s.extract(st))
		s.stats.Solutions++
		return nil
	}

	v, values := s.selectVariable(st)
	if v == nil {
		return nil
	}
	stack := []frame{{variable: v, values: values, trialMark: -1}}

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		f := &stack[len(stack)-1]

		// Undo the previous trial of this frame before trying the next
		// candidate (or before backtracking out of the frame).
		if f.trialMark >= 0 {
			st.Restore(f.trialMark)
			f.trialMark = -1
		}

		if f.next >= len(f.values) {
			stack = stack[:len(stack)-1]
			s.stats.Backtracks++
			continue
		}

		if s.config.NodeLimit > 0 && s.stats.Nodes >= s.config.NodeLimit {
			return ErrNodeBudget
		}
		s.stats.Nodes++
		if len(stack) > s.stats.MaxDepth {
			s.stats.MaxDepth = len(stack)
		}

		digit := f.values[f.next]
		f.next++

		f.trialMark = st.Snapshot()
		err := st.Assign(f.variable, digit)
		if err == nil {
			s.stats.Propagations++
			err = s.prop.PropagateFrom(st, f.variable)
		}
		if err != nil {
			// Branch failure: the next loop iteration restores the trail.
			continue
		}

		if st.AllBound() {
			*solutions = append(*solutions, s.extract(st))
			s.stats.Solutions++
			if maxSolutions > 0 && len(*solutions) >= maxSolutions {
				return nil
			}
			continue
		}

		nv, nvalues := s.selectVariable(st)
		if nv == nil {
			continue
		}
		stack = append(stack, frame{variable: nv, values: nvalues, trialMark: -1})
	}
	return nil
}

// extract reads the digit of every variable from a fully bound store.
func (s *Solver) extract(st *Store) Assignment {
	a := make(Assignment, len(s.model.variables))
	for i, v := range s.model.variables {
		a[i] = st.Value(v)
	}
	return a
}

// selectVariable picks the next unassigned variable per the configured
// heuristic and returns it with its candidate digits in ascending order.
// Returns nil when every variable is bound.
func (s *Solver) selectVariable(st *Store) (*Variable, []int) {
	var best *Variable
	bestCount := 0
	bestDegree := 0
	bestScore := 0.0

	for _, v := range s.model.variables {
		d := st.Domain(v)
		if d.IsSingleton() {
			continue
		}
		count := d.Count()
		degree := s.model.Degree(v)

		switch s.config.Heuristic {
		case HeuristicLex:
			if best == nil {
				best = v
			}
		case HeuristicDomDeg:
			score := float64(count) / float64(1+degree)
			if best == nil || score < bestScore {
				best, bestScore = v, score
			}
		default: // HeuristicMRVDeg
			if best == nil || count < bestCount || (count == bestCount && degree > bestDegree) {
				best, bestCount, bestDegree = v, count, degree
			}
		}
	}

	if best == nil {
		return nil, nil
	}
	return best, st.Domain(best).Values()
}
