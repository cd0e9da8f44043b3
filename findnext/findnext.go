// Package findnext implements the three interchangeable findNext backends
// (spec §4.5): Linear (brute-force keyword scan plus Dijkstra distance),
// AB-tree (spec §4.2 steps 4-5), and PB-tree (spec §4.4). All three answer
// the same question — "given a current vertex u and a clue, what is the
// best next vertex?" — so that GCS, CDP, and BAB (spec §4.6-4.8) can be
// parameterized by whichever backend a Session was configured with.
package findnext

import (
	"github.com/clueway/croute/abtree"
	"github.com/clueway/croute/clue"
	"github.com/clueway/croute/core"
	"github.com/clueway/croute/dijkstra"
	"github.com/clueway/croute/hublabel"
	"github.com/clueway/croute/internal/bptree"
	"github.com/clueway/croute/pbtree"
	"github.com/clueway/croute/trace"
)

// Excluded is a vertex-id exclusion set; shared across all three backends.
type Excluded = bptree.Excluded

// Candidate is a findNext hit: the chosen vertex, its path distance from the
// query's current vertex, and its matching distance against the clue.
type Candidate struct {
	Vertex   uint64
	Distance float64
	Matching float64
}

// Backend answers one findNext call for a step from u toward clue c (spec
// §4.5: findNext(u, clue, θ, UB, excluded)). theta is the branch-and-bound
// relaxation threshold carried across backtracks: a backend must fail
// rather than return a candidate whose matching distance is below theta.
// ub is the best matching distance found so far on the current search
// branch (+Inf if none yet); backends that support confidence-window
// pruning (only PB-tree does) use it to skip work that cannot beat the
// current best. idx, if non-nil, collects the sub-steps this call took
// (spec §4.9); the caller drains it after the call returns.
type Backend interface {
	FindNext(u uint64, c clue.Clue, theta, ub float64, excluded Excluded, idx *trace.IndexBuffer) (Candidate, bool)
}

// Linear is the brute-force backend: scan every vertex carrying the clue's
// keyword, compute its Dijkstra distance from u via the shared cache, and
// return whichever candidate has the smallest matching distance. It never
// uses ub; it always considers every candidate.
//
// Linear is the backend of last resort — always correct, always available,
// used as the ground truth other backends are tested against (spec §8).
type Linear struct {
	Graph *core.Graph
	Cache *dijkstra.Cache
}

// NewLinear returns a Linear backend over g, using cache for memoized
// pairwise distances.
func NewLinear(g *core.Graph, cache *dijkstra.Cache) *Linear {
	return &Linear{Graph: g, Cache: cache}
}

func (l *Linear) FindNext(u uint64, c clue.Clue, theta, ub float64, excluded Excluded, idx *trace.IndexBuffer) (Candidate, bool) {
	best := Candidate{}
	have := false
	for _, v := range l.Graph.VerticesWithKeyword(c.Keyword) {
		if v == u || excluded[v] {
			continue
		}
		d, err := l.Cache.Distance(l.Graph, u, v)
		if err != nil {
			continue
		}
		idx.Append(trace.LeafScan, "scanned candidate vertex")
		m := c.MatchingDistance(d)
		if !have || m < best.Matching {
			best = Candidate{Vertex: v, Distance: d, Matching: m}
			have = true
		}
	}
	if !have {
		idx.Append(trace.NoCandidate, "no non-excluded vertex other than u carries the clue's keyword")
		return Candidate{}, false
	}
	if best.Matching < theta {
		idx.Append(trace.ThresholdFail, "matching distance below theta")
		return Candidate{}, false
	}
	return best, true
}

// ABTree wraps a per-source abtree.Tree cache, building one lazily per
// source on first use and reusing it for every subsequent call with that
// source, mirroring the Session's AB-tree cache (spec §5).
type ABTree struct {
	Graph *core.Graph
	Cache *dijkstra.Cache
	Order int

	trees map[uint64]*abtree.Tree
}

// NewABTree returns an AB-tree backend over g, building trees of the given
// order on demand.
func NewABTree(g *core.Graph, cache *dijkstra.Cache, order int) *ABTree {
	return &ABTree{Graph: g, Cache: cache, Order: order, trees: make(map[uint64]*abtree.Tree)}
}

func (a *ABTree) treeFor(source uint64) (*abtree.Tree, error) {
	if t, ok := a.trees[source]; ok {
		return t, nil
	}
	t, err := abtree.Build(a.Graph, a.Cache, source, a.Order)
	if err != nil {
		return nil, err
	}
	a.trees[source] = t
	return t, nil
}

func (a *ABTree) FindNext(u uint64, c clue.Clue, theta, ub float64, excluded Excluded, idx *trace.IndexBuffer) (Candidate, bool) {
	t, err := a.treeFor(u)
	if err != nil {
		return Candidate{}, false
	}
	cand, ok := t.FindNext(c, theta, Excluded(excluded), idx)
	if !ok {
		return Candidate{}, false
	}
	return Candidate(cand), true
}

// PBTree wraps a single, Session-wide pbtree.Forest plus the hublabel.Index
// it was built from (spec §5: the label index and PB-tree forest are both
// built once and shared across every query, unlike the per-source AB-tree).
type PBTree struct {
	Labels *hublabel.Index
	Forest *pbtree.Forest
}

// NewPBTree returns a PB-tree backend over an already-built label index and
// forest.
func NewPBTree(labels *hublabel.Index, forest *pbtree.Forest) *PBTree {
	return &PBTree{Labels: labels, Forest: forest}
}

func (p *PBTree) FindNext(u uint64, c clue.Clue, theta, ub float64, excluded Excluded, idx *trace.IndexBuffer) (Candidate, bool) {
	cand, ok := p.Forest.FindNext(p.Labels, u, c, theta, ub, pbtree.Excluded(excluded), idx)
	if !ok {
		return Candidate{}, false
	}
	return Candidate(cand), true
}
