// This file defines search statistics collected during solving.
package csp

import (
	"fmt"
	"time"
)

// Stats holds counters describing one solve run. Counters are written by a
// single search goroutine; SolveParallel merges the per-branch counters
// under a lock before returning.
type Stats struct {
	Nodes        int64         // search nodes explored (value trials)
	Backtracks   int64         // frames abandoned after exhausting values
	Solutions    int64         // solutions found
	MaxDepth     int           // deepest search frame reached
	Propagations int64         // propagation runs triggered
	Revisions    int64         // constraint Revise calls
	Duration     time.Duration // wall-clock solve time
}

// merge folds another run's counters into s.
func (s *Stats) merge(other Stats) {
	s.Nodes += other.Nodes
	s.Backtracks += other.Backtracks
	s.Solutions += other.Solutions
	if other.MaxDepth > s.MaxDepth {
		s.MaxDepth = other.MaxDepth
	}
	s.Propagations += other.Propagations
	s.Revisions += other.Revisions
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("nodes=%d backtracks=%d solutions=%d depth=%d propagations=%d revisions=%d time=%s",
		s.Nodes, s.Backtracks, s.Solutions, s.MaxDepth, s.Propagations, s.Revisions, s.Duration)
}
