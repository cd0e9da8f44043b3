package dijkstra

import (
	"container/heap"
	"math"

	"github.com/clueway/croute/core"
)

// Run computes shortest distances from source to every vertex reachable in
// g, using a binary min-heap keyed by tentative distance and a lazy
// decrease-key strategy (push a new, smaller entry rather than mutating the
// heap in place; stale pops are detected via the visited set and skipped).
//
// dist maps vertex id to minimum distance from source; a vertex absent from
// dist is unreachable (equivalently, at +∞), per spec §4.1. prev is nil
// unless WithReturnPath is given, in which case prev[v] == u means the
// shortest path to v passes through u; source itself has no entry in prev.
func Run(g *core.Graph, source uint64, opts ...Option) (dist map[uint64]float64, prev map[uint64]uint64, err error) {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}

	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if !g.HasVertex(source) {
		return nil, nil, ErrVertexNotFound
	}

	dist = make(map[uint64]float64)
	if cfg.ReturnPath {
		prev = make(map[uint64]uint64)
	}
	visited := make(map[uint64]bool)

	pq := make(nodePQ, 0, g.VertexCount())
	heap.Init(&pq)
	heap.Push(&pq, &nodeItem{id: source, dist: 0})
	dist[source] = 0

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*nodeItem)
		u, d := item.id, item.dist

		if visited[u] {
			continue // stale lazy-decrease-key entry
		}
		visited[u] = true

		for _, e := range g.Neighbors(u) {
			v := e.To
			newDist := d + e.Weight
			if old, ok := dist[v]; ok && newDist >= old {
				continue
			}
			dist[v] = newDist
			if prev != nil {
				prev[v] = u
			}
			heap.Push(&pq, &nodeItem{id: v, dist: newDist})
		}
	}

	return dist, prev, nil
}

// Reconstruct walks prev backward from v to source and returns the forward
// path [source, ..., v]. It returns an empty slice if v is unreachable
// (absent from prev and not itself source).
func Reconstruct(source, v uint64, prev map[uint64]uint64) []uint64 {
	if v == source {
		return []uint64{source}
	}
	if _, ok := prev[v]; !ok {
		return nil
	}
	path := []uint64{v}
	cur := v
	for cur != source {
		p, ok := prev[cur]
		if !ok {
			return nil
		}
		path = append(path, p)
		cur = p
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Distance runs Dijkstra from u and returns the distance to v, or +∞ if v
// is unreachable. Prefer dijkstra.Cache.Distance in solver hot paths —
// this free function does not memoize.
func Distance(g *core.Graph, u, v uint64) (float64, error) {
	dist, _, err := Run(g, u)
	if err != nil {
		return math.Inf(1), err
	}
	d, ok := dist[v]
	if !ok {
		return math.Inf(1), nil
	}
	return d, nil
}

// ShortestPath runs Dijkstra from u with path reconstruction enabled and
// returns (distance, vertex sequence) for the path to v. An unreachable v
// yields (+∞, nil), matching spec §4.1's failure semantics.
func ShortestPath(g *core.Graph, u, v uint64) (float64, []uint64, error) {
	dist, prev, err := Run(g, u, WithReturnPath())
	if err != nil {
		return math.Inf(1), nil, err
	}
	d, ok := dist[v]
	if !ok {
		return math.Inf(1), nil, nil
	}
	return d, Reconstruct(u, v, prev), nil
}

// nodeItem is a (vertex, tentative distance) pair stored in the heap.
type nodeItem struct {
	id   uint64
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by ascending dist.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
