package abtree

import (
	"github.com/clueway/croute/clue"
	"github.com/clueway/croute/core"
	"github.com/clueway/croute/dijkstra"
	"github.com/clueway/croute/internal/bptree"
	"github.com/clueway/croute/trace"
)

// Entry is a single (distance-from-source, vertex, keywords) record.
type Entry = bptree.Entry

// Excluded is a vertex-id exclusion set consulted by Pred and Succ.
type Excluded = bptree.Excluded

// Tree is an AB-tree for a single, fixed source vertex.
type Tree struct {
	inner  *bptree.Tree
	source uint64
}

// Build constructs the AB-tree for source, per spec §4.2: run
// all_distances_from(source), emit one entry per reachable, keyword-bearing
// vertex other than source, sort by distance, and bulk-insert into a fresh
// B+-tree of the given order.
func Build(g *core.Graph, cache *dijkstra.Cache, source uint64, order int) (*Tree, error) {
	if order < 2 {
		return nil, ErrInvalidOrder
	}

	dist, err := cache.AllDistancesFrom(g, source)
	if err != nil {
		return nil, err
	}

	entries := make([]bptree.Entry, 0, len(dist))
	for v, d := range dist {
		if v == source {
			continue
		}
		vertex, ok := g.Vertex(v)
		if !ok || vertex.Keywords.Empty() {
			continue
		}
		entries = append(entries, bptree.Entry{Distance: d, Vertex: v, Keywords: vertex.Keywords})
	}

	inner, err := bptree.Build(g.Vocabulary(), entries, order)
	if err != nil {
		return nil, err
	}
	return &Tree{inner: inner, source: source}, nil
}

// Source returns the vertex this AB-tree was built for.
func (t *Tree) Source() uint64 { return t.source }

// Pred returns the entry with the largest distance <= bound carrying
// keyword w and not in excluded (spec §4.2 predecessor query).
func (t *Tree) Pred(bound float64, w string, excluded Excluded) (Entry, bool) {
	return t.inner.Pred(bound, w, excluded, nil)
}

// Succ implements spec §4.2's successor query, which — per the reference
// behavior documented in spec §9 — coincides with Pred.
func (t *Tree) Succ(bound float64, w string, excluded Excluded) (Entry, bool) {
	return t.inner.Succ(bound, w, excluded, nil)
}

// Range returns every entry with distance in [minD, maxD] carrying keyword
// w, in ascending distance order.
func (t *Tree) Range(minD, maxD float64, w string) []Entry {
	return t.inner.Range(minD, maxD, w)
}

// RangeFunc is the lazy, short-circuiting form of Range.
func (t *Tree) RangeFunc(minD, maxD float64, w string, visit func(Entry) bool) {
	t.inner.RangeFunc(minD, maxD, w, visit)
}

// InOrder returns every entry via the leaf chain, ascending by distance.
func (t *Tree) InOrder() []Entry { return t.inner.InOrder() }

// CheckSubtreeKeywords verifies the subtree-keyword-union invariant
// (spec §8) over the whole tree.
func (t *Tree) CheckSubtreeKeywords() error { return t.inner.CheckSubtreeKeywords() }

// Candidate is a findNext hit: the chosen vertex, its distance from the
// tree's source, and its matching distance against the clue.
type Candidate struct {
	Vertex   uint64
	Distance float64
	Matching float64
}

// FindNext runs the AB-tree findNext backend (spec §4.2 steps 4-5): fetch
// both pred(lD) and succ(rD), and when both exist, choose whichever is
// closer to the clue's target distance d, breaking ties toward the
// predecessor. theta is the branch-and-bound relaxation threshold (spec
// §4.5, §4.8): a chosen entry whose matching distance is below theta is
// rejected, per spec §4.2 step 5. idx, if non-nil, records the sub-steps
// this call took (spec §4.9); pass nil to skip tracing.
func (t *Tree) FindNext(c clue.Clue, theta float64, excluded Excluded, idx *trace.IndexBuffer) (Candidate, bool) {
	lD, rD := c.Interval()
	p, pOK := t.inner.Pred(lD, c.Keyword, bptree.Excluded(excluded), idx)
	if pOK {
		idx.Append(trace.SelectPredecessor, "pred candidate found")
	}
	s, sOK := t.inner.Succ(rD, c.Keyword, bptree.Excluded(excluded), idx)
	if sOK {
		idx.Append(trace.SelectSuccessor, "succ candidate found")
	}

	var chosen Entry
	switch {
	case pOK && sOK:
		if abs(c.D-p.Distance) <= abs(s.Distance-c.D) {
			chosen = p
		} else {
			chosen = s
		}
	case pOK:
		chosen = p
	case sOK:
		chosen = s
	default:
		idx.Append(trace.NoCandidate, "neither predecessor nor successor found")
		return Candidate{}, false
	}

	m := c.MatchingDistance(chosen.Distance)
	if m < theta {
		idx.Append(trace.ThresholdFail, "matching distance below theta")
		return Candidate{}, false
	}

	return Candidate{Vertex: chosen.Vertex, Distance: chosen.Distance, Matching: m}, true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
