package pbtree

import (
	"math"

	"github.com/clueway/croute/clue"
	"github.com/clueway/croute/core"
	"github.com/clueway/croute/hublabel"
	"github.com/clueway/croute/internal/bptree"
	"github.com/clueway/croute/trace"
)

// Entry is a single (distance-from-pivot, vertex, keywords) record.
type Entry = bptree.Entry

// Excluded is a vertex-id exclusion set consulted by Pred and Succ.
type Excluded = bptree.Excluded

// Forest holds one B+-tree per pivot of a hublabel.Index.
type Forest struct {
	trees map[uint64]*bptree.Tree
	order int
}

// Build constructs the PB-tree forest over g's label index, per spec §4.4:
// for every pivot o, collect every keyword-bearing vertex v whose label
// contains an entry for o, keyed by that entry's distance, and bulk-load a
// B+-tree of the given order from the result.
func Build(g *core.Graph, labels *hublabel.Index, order int) (*Forest, error) {
	if order < 2 {
		return nil, ErrInvalidOrder
	}

	perPivot := make(map[uint64][]bptree.Entry)
	for _, v := range g.Vertices() {
		vertex, ok := g.Vertex(v)
		if !ok || vertex.Keywords.Empty() {
			continue
		}
		for _, e := range labels.Label(v) {
			perPivot[e.Pivot] = append(perPivot[e.Pivot], bptree.Entry{
				Distance: e.Distance,
				Vertex:   v,
				Keywords: vertex.Keywords,
			})
		}
	}

	trees := make(map[uint64]*bptree.Tree, len(perPivot))
	for pivot, entries := range perPivot {
		t, err := bptree.Build(g.Vocabulary(), entries, order)
		if err != nil {
			return nil, err
		}
		trees[pivot] = t
	}
	return &Forest{trees: trees, order: order}, nil
}

// Tree returns the B+-tree for pivot, if one was built (a pivot with no
// keyword-bearing descendants in its label has none).
func (f *Forest) Tree(pivot uint64) (*bptree.Tree, bool) {
	t, ok := f.trees[pivot]
	return t, ok
}

// Pivots returns the set of pivots this forest has a tree for.
func (f *Forest) Pivots() []uint64 {
	out := make([]uint64, 0, len(f.trees))
	for p := range f.trees {
		out = append(out, p)
	}
	return out
}

// Candidate is a findNext hit: the chosen vertex, its path distance from the
// query's current vertex, and its matching distance against the clue.
type Candidate struct {
	Vertex   uint64
	Distance float64
	Matching float64
}

// FindNext runs the PB-tree findNext backend (spec §4.4) for a step from u
// toward clue c, with branch-and-bound relaxation threshold theta, bound ub
// (the best matching distance found so far on this branch; pass +Inf for
// none), and exclusion set excluded. It walks u's label in ascending
// pivot-distance order, probing each pivot's tree for a candidate within
// shrinking confidence bounds, and verifies every hit against the label
// index's OnShortestPath before accepting it. idx, if non-nil, records the
// sub-steps this call took (spec §4.9); pass nil to skip tracing.
//
//  1. lD, rD ← c.Interval().
//  2. lB, rB ← the UB-scaled confidence window around d, shrinking as
//     better candidates are found.
//  3. For each (pivot o, delta) in label(u) ascending by delta: stop once
//     delta exceeds rB (no further pivot can beat the current best).
//     Probe PB(o) for a successor within [max(0,rDo), rBo] and a
//     predecessor within [lBo, lDo], where rDo/lDo/rBo/lBo are d's window
//     shifted by -delta. Any hit is verified via
//     label_distance(u,v) == delta+δ' (within tolerance) before acceptance.
//  4. Track the best-matching verified candidate across all pivots.
//  5. Fail if best.m < theta (spec §4.4), even if a candidate was found.
func (f *Forest) FindNext(labels *hublabel.Index, u uint64, c clue.Clue, theta, ub float64, excluded Excluded, idx *trace.IndexBuffer) (Candidate, bool) {
	lD, rD := c.Interval()
	spread := c.D * c.Epsilon
	var lB, rB float64
	if math.IsInf(ub, 1) {
		lB, rB = 0, math.Inf(1)
	} else {
		lB = math.Max(0, c.D-spread*ub)
		rB = c.D + spread*ub
	}

	best := Candidate{}
	haveBest := false

	for _, le := range labels.Label(u) {
		if le.Distance > rB {
			break
		}
		o, delta := le.Pivot, le.Distance
		tree, ok := f.Tree(o)
		if !ok {
			idx.Append(trace.SubtreePrune, "no tree for pivot")
			continue
		}

		rDo := rD - delta
		rBo := rB - delta
		if rBo >= 0 && rDo <= rBo {
			lower := math.Max(0, rDo)
			if e, found := tree.Succ(rBo, c.Keyword, excluded, idx); found && e.Distance >= lower {
				idx.Append(trace.SelectSuccessor, "succ candidate found at pivot")
				if cand, ok := f.verify(labels, u, o, delta, e, c); ok {
					if !haveBest || cand.Matching < best.Matching {
						best, haveBest = cand, true
						rB = c.D + spread*cand.Matching
						lB = math.Max(0, c.D-spread*cand.Matching)
					}
				}
			}
		}

		lDo := lD - delta
		lBo := lB - delta
		if lDo >= 0 && lBo <= lDo {
			if e, found := tree.Pred(lDo, c.Keyword, excluded, idx); found && e.Distance >= math.Max(0, lBo) {
				idx.Append(trace.SelectPredecessor, "pred candidate found at pivot")
				if cand, ok := f.verify(labels, u, o, delta, e, c); ok {
					if !haveBest || cand.Matching < best.Matching {
						best, haveBest = cand, true
						rB = c.D + spread*cand.Matching
						lB = math.Max(0, c.D-spread*cand.Matching)
					}
				}
			}
		}
	}

	if !haveBest {
		idx.Append(trace.NoCandidate, "no pivot produced a verified candidate")
		return Candidate{}, false
	}
	if best.Matching < theta {
		idx.Append(trace.ThresholdFail, "matching distance below theta")
		return Candidate{}, false
	}

	return best, true
}

// verify checks that o actually lies on a shortest u-v path (so that
// delta+e.Distance is the true path distance, not an artifact of summing two
// unrelated hub distances), and builds the Candidate on success.
func (f *Forest) verify(labels *hublabel.Index, u, o uint64, delta float64, e Entry, c clue.Clue) (Candidate, bool) {
	if !labels.OnShortestPath(u, e.Vertex, o) {
		return Candidate{}, false
	}
	total := delta + e.Distance
	return Candidate{Vertex: e.Vertex, Distance: total, Matching: c.MatchingDistance(total)}, true
}
