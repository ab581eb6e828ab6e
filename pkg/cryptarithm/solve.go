// This file is the high-level solving entry point: it compiles a puzzle,
// runs the constraint solver, and decodes engine assignments into letter
// solutions.
package cryptarithm

import (
	"context"
	"sort"

	"github.com/gitrdm/cryptarithm/pkg/csp"
)

// ErrBudget reports that the search exhausted its node budget before
// reaching a conclusion. It aliases the engine sentinel so callers can
// match it at either layer.
var ErrBudget = csp.ErrNodeBudget

// Options configures a solve run. The zero value finds the first solution
// sequentially with no node limit.
type Options struct {
	// All enumerates every solution instead of stopping at the first.
	All bool

	// NodeLimit caps the number of search nodes; zero means unlimited.
	// Exceeding it returns ErrBudget.
	NodeLimit int64

	// Workers above one splits the search at the root across that many
	// goroutines.
	Workers int

	// Heuristic selects the variable ordering. Zero is MRV with degree
	// tie-breaking.
	Heuristic csp.Heuristic
}

// Result carries the solutions of a solve run together with the search
// statistics. An empty Solutions slice with a nil error means the puzzle
// was proven to have no solution.
type Result struct {
	Solutions []Solution
	Stats     csp.Stats
}

// Solve compiles the puzzle and searches for solutions. It returns an error
// only for structural rejection, an exhausted budget, or a cancelled
// context; an exhaustively-proven absence of solutions is a successful
// result with zero solutions.
func (p *Puzzle) Solve(ctx context.Context, opts Options) (*Result, error) {
	compiled, err := p.Compile()
	if err != nil {
		return nil, err
	}
	return compiled.Solve(ctx, opts)
}

// Solve runs the search on an already compiled puzzle.
func (c *Compiled) Solve(ctx context.Context, opts Options) (*Result, error) {
	config := csp.DefaultConfig()
	config.Heuristic = opts.Heuristic
	config.NodeLimit = opts.NodeLimit
	config.Workers = opts.Workers

	maxSolutions := 1
	if opts.All {
		maxSolutions = 0
	}

	solver := csp.NewSolverWithConfig(c.Model, config)
	var assignments []csp.Assignment
	var err error
	if opts.Workers > 1 {
		assignments, err = solver.SolveParallel(ctx, maxSolutions)
	} else {
		assignments, err = solver.Solve(ctx, maxSolutions)
	}
	if err != nil {
		return nil, err
	}

	solutions := make([]Solution, 0, len(assignments))
	seen := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		s := c.decode(a)
		k := s.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		solutions = append(solutions, s)
	}
	sort.Slice(solutions, func(i, j int) bool {
		return solutions[i].key() < solutions[j].key()
	})

	return &Result{Solutions: solutions, Stats: solver.Stats()}, nil
}

// decode turns an engine assignment into a letter solution, dropping the
// auxiliary carry variables.
func (c *Compiled) decode(a csp.Assignment) Solution {
	digits := make(map[rune]int, len(c.letterVar))
	for r, v := range c.letterVar {
		digits[r] = a[v.ID()]
	}
	return Solution{puzzle: c.Puzzle, base: c.base, digits: digits}
}
