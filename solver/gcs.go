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

// GCS is the greedy solver (spec §4.6): invoke findNext once per clue, in
// order, from the currently held vertex, with theta=0 and UB=+Inf. No
// backtracking — a single failure terminates the search with whatever
// partial path was built so far.
type GCS struct {
	Backend   findnext.Backend
	TraceMode trace.Mode
}

// NewGCS returns a GCS solver over backend, recording a trace at mode.
func NewGCS(backend findnext.Backend, mode trace.Mode) *GCS {
	return &GCS{Backend: backend, TraceMode: mode}
}

func (s *GCS) Solve(ctx context.Context, q clue.Query) SearchResult {
	start := time.Now()
	coll := trace.NewCollector(s.TraceMode)
	idx := trace.NewIndexBuffer(s.TraceMode)
	coll.Record(trace.Init, []uint64{q.Source}, nil, nil, nil, nil, true, "gcs start", nil)

	path := []uint64{q.Source}
	current := q.Source
	excluded := findnext.Excluded{}
	matches := make([]float64, 0, len(q.Clues))
	outcome := crserr.Completed

	for i, c := range q.Clues {
		select {
		case <-ctx.Done():
			outcome = crserr.Cancelled
			coll.Record(trace.Cancelled, path, matches, nil, nil, nil, false, "cancelled", nil)
			return s.finish(start, path, matches, outcome, coll)
		default:
		}

		cand, ok := s.Backend.FindNext(current, c, 0, math.Inf(1), excluded, idx)
		if !ok {
			outcome = crserr.Infeasible
			coll.Record(trace.FindNextAction, path, matches, nil, nil, nil, false,
				"no candidate for clue "+c.Keyword, idx.Drain())
			break
		}

		m := cand.Matching
		v := cand.Vertex
		matches = append(matches, m)
		path = append(path, v)
		current = v
		coll.Record(trace.Push, path, matches, nil, &v, &m, true, "accepted", idx.Drain())

		if i == len(q.Clues)-1 {
			coll.Record(trace.Done, path, matches, nil, nil, nil, true, "all clues satisfied", nil)
		}
	}

	return s.finish(start, path, matches, outcome, coll)
}

// finish assembles the SearchResult: best_matching is the max of obtained
// per-hop matches, or +Inf if none were obtained (spec §4.10).
func (s *GCS) finish(start time.Time, path []uint64, matches []float64, outcome crserr.Outcome, coll *trace.Collector) SearchResult {
	best := math.Inf(1)
	if len(matches) > 0 {
		best = 0
		for _, m := range matches {
			if m > best {
				best = m
			}
		}
	}
	return SearchResult{
		BestPath:      path,
		BestMatching:  best,
		Outcome:       outcome,
		ExecutionTime: time.Since(start),
		Iterations:    uint64(len(matches)),
		Trace:         coll.Steps(),
	}
}
