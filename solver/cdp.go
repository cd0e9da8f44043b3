package solver

import (
	"context"
	"math"
	"time"

	"github.com/clueway/croute/clue"
	"github.com/clueway/croute/core"
	"github.com/clueway/croute/crserr"
	"github.com/clueway/croute/dijkstra"
	"github.com/clueway/croute/trace"
)

// cdpState is one (D(i,v), parent(i,v)) cell (spec §4.7).
type cdpState struct {
	d      float64
	parent uint64
}

// CDP is the exact dynamic-programming solver (spec §4.7): level i's state
// D(i,v) is the minimum, over predecessors v' satisfying level i's interval,
// of max(D(i-1,v'), m_i(v',v)). The optimal matching distance is
// min_u D(k,u); the path is recovered by following parent pointers back to
// the source.
type CDP struct {
	Graph         *core.Graph
	Cache         *dijkstra.Cache
	MaxIterations uint64
	TraceMode     trace.Mode
}

// NewCDP returns a CDP solver over g, using cache for memoized distances.
func NewCDP(g *core.Graph, cache *dijkstra.Cache, maxIterations uint64, mode trace.Mode) *CDP {
	return &CDP{Graph: g, Cache: cache, MaxIterations: maxIterations, TraceMode: mode}
}

func (s *CDP) Solve(ctx context.Context, q clue.Query) SearchResult {
	start := time.Now()
	coll := trace.NewCollector(s.TraceMode)
	coll.Record(trace.Init, []uint64{q.Source}, nil, nil, nil, nil, true, "cdp start", nil)

	k := len(q.Clues)
	levels := make([]map[uint64]cdpState, 0, k)
	var iterations uint64
	outcome := crserr.Completed
	capped := false
	cancelled := false

	checkBudget := func() bool {
		select {
		case <-ctx.Done():
			cancelled = true
			return false
		default:
		}
		iterations++
		if iterations > s.MaxIterations {
			capped = true
			return false
		}
		return true
	}

	c0 := q.Clues[0]
	base := make(map[uint64]cdpState)
	for _, v := range s.Graph.VerticesWithKeyword(c0.Keyword) {
		if !checkBudget() {
			break
		}
		d, err := s.Cache.Distance(s.Graph, q.Source, v)
		if err != nil || !c0.InInterval(d) {
			continue
		}
		base[v] = cdpState{d: c0.MatchingDistance(d), parent: q.Source}
	}
	levels = append(levels, base)

	if !cancelled && !capped {
		cur := base
		for i := 1; i < k; i++ {
			ci := q.Clues[i]
			next := make(map[uint64]cdpState)
			for _, u := range s.Graph.VerticesWithKeyword(ci.Keyword) {
				bestD := math.Inf(1)
				var bestParent uint64
				found := false
				for v, st := range cur {
					if !checkBudget() {
						break
					}
					d, err := s.Cache.Distance(s.Graph, v, u)
					if err != nil || !ci.InInterval(d) {
						continue
					}
					m := ci.MatchingDistance(d)
					cand := math.Max(st.d, m)
					if !found || cand < bestD {
						bestD, bestParent, found = cand, v, true
					}
				}
				if cancelled || capped {
					break
				}
				if found {
					next[u] = cdpState{d: bestD, parent: bestParent}
				}
			}
			levels = append(levels, next)
			if cancelled || capped || len(next) == 0 {
				break
			}
			cur = next
		}
	}

	switch {
	case cancelled:
		outcome = crserr.Cancelled
	case capped:
		outcome = crserr.IterationCapExceeded
	case len(levels) < k || len(levels[k-1]) == 0:
		outcome = crserr.Infeasible
	}

	var path []uint64
	best := math.Inf(1)
	if outcome == crserr.Completed {
		last := levels[k-1]
		var bestV uint64
		found := false
		for v, st := range last {
			if !found || st.d < best {
				best, bestV, found = st.d, v, true
			}
		}
		path = make([]uint64, k+1)
		path[k] = bestV
		cur := bestV
		for i := k; i >= 1; i-- {
			st := levels[i-1][cur]
			path[i-1] = st.parent
			cur = st.parent
		}
	}

	ub := best
	coll.Record(trace.Done, path, nil, &ub, nil, nil, outcome == crserr.Completed, outcome.String(), nil)

	return SearchResult{
		BestPath:      path,
		BestMatching:  best,
		Outcome:       outcome,
		ExecutionTime: time.Since(start),
		Iterations:    iterations,
		Trace:         coll.Steps(),
	}
}
