// This file implements parallel search. The root variable's candidate
// digits are split into independent branches, each explored by a worker with
// a private store clone; the model and constraints are shared read-only.
// Solutions are appended to a mutex-guarded slice and the remaining branches
// are cancelled once the requested solution count is reached.
package csp

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/gitrdm/cryptarithm/internal/parallel"
)

// SolveParallel finds solutions like Solve, exploring the root variable's
// candidates concurrently. Results are sorted into a deterministic order, so
// for a given model SolveParallel returns the same solution set as Solve
// regardless of scheduling.
func (s *Solver) SolveParallel(ctx context.Context, maxSolutions int) ([]Assignment, error) {
	if err := s.model.Validate(); err != nil {
		return nil, err
	}
	s.stats = Stats{}
	start := time.Now()
	defer func() { s.stats.Duration = time.Since(start) }()

	base := NewStore(s.model)
	s.stats.Propagations++
	if err := s.prop.Propagate(base); err != nil {
		s.stats.Revisions = s.prop.revisions
		return []Assignment{}, nil
	}
	s.stats.Revisions = s.prop.revisions

	if base.AllBound() {
		s.stats.Solutions++
		return []Assignment{s.extract(base)}, nil
	}

	root, values := s.selectVariable(base)
	if root == nil {
		return []Assignment{}, nil
	}

	branchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu        sync.Mutex
		solutions []Assignment
		firstErr  error
	)

	pool := parallel.NewWorkerPool(s.config.Workers)
	defer pool.Shutdown()

	for _, digit := range values {
		digit := digit
		err := pool.Submit(branchCtx, func() {
			branch := base.Clone()
			worker := NewSolverWithConfig(s.model, s.config)

			if err := branch.Assign(root, digit); err != nil {
				return
			}
			worker.stats.Nodes++
			worker.stats.Propagations++
			if err := worker.prop.PropagateFrom(branch, root); err != nil {
				worker.stats.Revisions = worker.prop.revisions
				mu.Lock()
				s.stats.merge(worker.stats)
				mu.Unlock()
				return
			}

			var found []Assignment
			err := worker.search(branchCtx, branch, &found, maxSolutions)
			worker.stats.Revisions = worker.prop.revisions

			mu.Lock()
			s.stats.merge(worker.stats)
			solutions = append(solutions, found...)
			if err != nil && firstErr == nil && !errors.Is(err, context.Canceled) {
				firstErr = err
			}
			if maxSolutions > 0 && len(solutions) >= maxSolutions {
				cancel()
			}
			mu.Unlock()
		})
		if err != nil {
			break
		}
	}

	pool.Wait()

	// Branch completion order is nondeterministic; sort for reproducibility.
	sort.Slice(solutions, func(i, j int) bool {
		a, b := solutions[i], solutions[j]
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	if maxSolutions > 0 && len(solutions) > maxSolutions {
		solutions = solutions[:maxSolutions]
	}

	if err := ctx.Err(); err != nil {
		return solutions, err
	}
	s.stats.Solutions = int64(len(solutions))
	return solutions, firstErr
}
