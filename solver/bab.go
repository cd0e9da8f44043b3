package solver

import (
	"context"
	"math"
	"time"

	"github.com/clueway/croute/clue"
	"github.com/clueway/croute/crserr"
	"github.com/clueway/croute/findnext"
	"github.com/clueway/croute/trace"
)

// BAB is the branch-and-bound solver (spec §4.8), parameterized by a
// findnext.Backend (linear, AB-tree, or PB-tree — giving BAB/AB-tree and
// BAB/PB-tree their names). It performs a depth-first search over feasible
// paths with per-level exclusion sets, a theta relaxation threshold carried
// across backtracks, and UB-driven pruning.
type BAB struct {
	Backend       findnext.Backend
	MaxIterations uint64
	TraceMode     trace.Mode
}

// NewBAB returns a BAB solver over backend.
func NewBAB(backend findnext.Backend, maxIterations uint64, mode trace.Mode) *BAB {
	return &BAB{Backend: backend, MaxIterations: maxIterations, TraceMode: mode}
}

func (s *BAB) Solve(ctx context.Context, q clue.Query) SearchResult {
	start := time.Now()
	coll := trace.NewCollector(s.TraceMode)
	idx := trace.NewIndexBuffer(s.TraceMode)
	k := len(q.Clues)
	coll.Record(trace.Init, []uint64{q.Source}, nil, nil, nil, nil, true, "bab start", nil)

	stackV := []uint64{q.Source}
	stackD := make([]float64, 0, k)
	theta := 0.0
	ub := math.Inf(1)
	var bestPath []uint64
	bestMatching := math.Inf(1)

	excluded := make([]findnext.Excluded, k+1)
	for i := range excluded {
		excluded[i] = findnext.Excluded{}
	}

	var iterations uint64
	outcome := crserr.Infeasible

	popOne := func() {
		stackV = stackV[:len(stackV)-1]
		if len(stackD) > 0 {
			theta = stackD[len(stackD)-1]
			stackD = stackD[:len(stackD)-1]
		} else {
			theta = 0
		}
	}

	for len(stackV) > 0 {
		select {
		case <-ctx.Done():
			outcome = crserr.Cancelled
			coll.Record(trace.Cancelled, stackV, stackD, &ub, nil, nil, false, "cancelled", nil)
			return s.finish(start, bestPath, bestMatching, outcome, iterations, coll)
		default:
		}

		iterations++
		if iterations > s.MaxIterations {
			outcome = crserr.IterationCapExceeded
			coll.Record(trace.IterationCapReached, stackV, stackD, &ub, nil, nil, false, "iteration cap exceeded", nil)
			return s.finish(start, bestPath, bestMatching, outcome, iterations, coll)
		}

		level := len(stackV)
		if level > k {
			popOne()
			continue
		}

		u := stackV[len(stackV)-1]
		c := q.Clues[level-1]
		cand, ok := s.Backend.FindNext(u, c, theta, ub, excluded[level], idx)
		if !ok {
			coll.Record(trace.Prune, stackV, stackD, &ub, nil, nil, false, "no candidate", idx.Drain())
			popOne()
			continue
		}

		m := cand.Matching
		v := cand.Vertex
		if m > ub {
			excluded[level][v] = true
			coll.Record(trace.Prune, stackV, stackD, &ub, &v, &m, false, "matching exceeds UB", idx.Drain())
			popOne()
			continue
		}

		stackV = append(stackV, v)
		stackD = append(stackD, m)
		theta = 0
		coll.Record(trace.Push, stackV, stackD, &ub, &v, &m, true, "accepted", idx.Drain())

		if len(stackV) == k+1 {
			pathMax := 0.0
			for _, d := range stackD {
				if d > pathMax {
					pathMax = d
				}
			}
			if pathMax <= ub {
				ub = pathMax
				bestPath = append([]uint64(nil), stackV...)
				bestMatching = pathMax
				outcome = crserr.Completed
				coll.Record(trace.UpdateUB, stackV, stackD, &ub, nil, nil, true, "new best", nil)
			} else {
				coll.Record(trace.FeasibleNoUpdate, stackV, stackD, &ub, nil, nil, false, "feasible but not better", nil)
			}

			lastLevel := len(stackV) - 1
			lastV := stackV[len(stackV)-1]
			excluded[lastLevel][lastV] = true
			stackV = stackV[:len(stackV)-1]
			stackD = stackD[:len(stackD)-1]

			if len(stackV) > 1 {
				prevLevel := len(stackV) - 1
				prevV := stackV[len(stackV)-1]
				excluded[prevLevel][prevV] = true
				stackV = stackV[:len(stackV)-1]
				if len(stackD) > 0 {
					stackD = stackD[:len(stackD)-1]
				}
				// The level-k exclusion set only needs to survive until an
				// alternative predecessor at level-(k-1) is found; clear it
				// now so level k gets a clean slate once retried. When
				// k==1 there is no level-(k-1) to force an alternative at
				// (the source is fixed), so lastLevel's exclusion must
				// persist instead — the len(stackV) > 1 guard above already
				// skips straight past this branch in that case.
				excluded[lastLevel] = findnext.Excluded{}
			}
			theta = 0
			coll.Record(trace.Backtrack, stackV, stackD, &ub, nil, nil, true, "complete-path backtrack", nil)
		}
	}

	coll.Record(trace.Done, stackV, stackD, &ub, nil, nil, true, outcome.String(), nil)
	return s.finish(start, bestPath, bestMatching, outcome, iterations, coll)
}

func (s *BAB) finish(start time.Time, bestPath []uint64, bestMatching float64, outcome crserr.Outcome, iterations uint64, coll *trace.Collector) SearchResult {
	return SearchResult{
		BestPath:      bestPath,
		BestMatching:  bestMatching,
		Outcome:       outcome,
		ExecutionTime: time.Since(start),
		Iterations:    iterations,
		Trace:         coll.Steps(),
	}
}
