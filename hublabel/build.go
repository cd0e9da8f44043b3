package hublabel

import (
	"container/heap"
	"math"
	"sort"

	"github.com/clueway/croute/core"
)

// Build constructs a 2-hop label index over g using pruned Dijkstra in the
// order given by order (or rank, when order == Custom). tolerance
// configures the Index's OnShortestPath comparisons; pass DefaultTolerance
// if unsure.
//
// Construction (spec §4.3):
//  1. Order vertices by the chosen ranking.
//  2. For each pivot o in that order, run a Dijkstra from o pruned by the
//     already-built partial labels: when settling vertex n, if the
//     partial label_distance(o,n) already matches or beats the tentative
//     distance, skip appending the label and stop expanding from n.
//  3. Sort every vertex's label by distance once all pivots are processed.
func Build(g *core.Graph, order PivotOrder, rank PivotRankFunc, tolerance float64) *Index {
	pivots := ranking(g, order, rank)

	labels := make(map[uint64]Label, g.VertexCount())
	for _, v := range g.Vertices() {
		labels[v] = nil
	}

	for _, o := range pivots {
		prunedDijkstra(g, o, labels)
	}

	for v, l := range labels {
		sorted := make(Label, len(l))
		copy(sorted, l)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Distance < sorted[j].Distance })
		labels[v] = sorted
	}

	return &Index{labels: labels, tolerance: tolerance}
}

// ranking computes the pivot processing order for the requested strategy.
func ranking(g *core.Graph, order PivotOrder, rank PivotRankFunc) []uint64 {
	if order == Custom {
		if rank == nil {
			order = DegreeDesc
		} else {
			return rank(g)
		}
	}

	ids := g.Vertices() // already ascending by id
	switch order {
	case IDAsc:
		return ids
	default: // DegreeDesc
		out := make([]uint64, len(ids))
		copy(out, ids)
		degree := make(map[uint64]int, len(ids))
		for _, id := range ids {
			degree[id] = len(g.Neighbors(id))
		}
		sort.Slice(out, func(i, j int) bool {
			di, dj := degree[out[i]], degree[out[j]]
			if di != dj {
				return di > dj
			}
			return out[i] < out[j]
		})
		return out
	}
}

// prunedDijkstra runs one pruned-landmark Dijkstra from pivot o, appending
// a label entry (o, d) to every vertex it settles without pruning, and
// mutates labels in place.
func prunedDijkstra(g *core.Graph, o uint64, labels map[uint64]Label) {
	dist := map[uint64]float64{o: 0}
	visited := map[uint64]bool{}

	pq := make(hlPQ, 0, g.VertexCount())
	heap.Init(&pq)
	heap.Push(&pq, &hlItem{id: o, dist: 0})

	// The pivot's own label always gets a trivial (o, 0) entry before any
	// pruning check, matching the reference's self-inclusion convention.
	labels[o] = append(labels[o], LabelEntry{Pivot: o, Distance: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*hlItem)
		n, d := item.id, item.dist
		if visited[n] {
			continue
		}
		visited[n] = true

		if n != o {
			if ld := partialDistance(labels, n, o); ld <= d {
				// Pruned: an earlier pivot already covers this distance
				// at least as well. Do not label n, do not expand it.
				continue
			}
			labels[n] = append(labels[n], LabelEntry{Pivot: o, Distance: d})
		}

		for _, e := range g.Neighbors(n) {
			newDist := d + e.Weight
			if old, ok := dist[e.To]; ok && newDist >= old {
				continue
			}
			dist[e.To] = newDist
			heap.Push(&pq, &hlItem{id: e.To, dist: newDist})
		}
	}
}

// partialDistance computes the label-distance between u and o using
// whatever labels have been built so far (an in-progress Index), the
// pruning test required by spec §4.3's construction algorithm.
func partialDistance(labels map[uint64]Label, u, o uint64) float64 {
	lu, lo := labels[u], labels[o]
	if len(lu) == 0 || len(lo) == 0 {
		return math.Inf(1)
	}
	byPivot := make(map[uint64]float64, len(lu))
	for _, e := range lu {
		byPivot[e.Pivot] = e.Distance
	}
	best := math.Inf(1)
	for _, e := range lo {
		if d, ok := byPivot[e.Pivot]; ok {
			if sum := d + e.Distance; sum < best {
				best = sum
			}
		}
	}
	return best
}

type hlItem struct {
	id   uint64
	dist float64
}

type hlPQ []*hlItem

func (pq hlPQ) Len() int            { return len(pq) }
func (pq hlPQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq hlPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *hlPQ) Push(x interface{}) { *pq = append(*pq, x.(*hlItem)) }
func (pq *hlPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
