package core

import (
	"fmt"
	"sort"
	"sync"
)

// Graph is a directed, weighted road network: a vertex table, an adjacency
// list of outgoing edges, and a keyword inverted index. It is built once by
// BuildGraph and is read-only afterwards — every exported method here takes
// only an RLock, so concurrent queries never contend with each other.
//
// Invariant: every edge endpoint is present in the vertex table, and the
// keyword index exactly equals the union of per-vertex keyword sets. Both
// are established once, in BuildGraph, and never drift because nothing
// mutates a Graph after construction.
type Graph struct {
	mu sync.RWMutex

	vocab *Vocabulary

	vertices   map[uint64]*Vertex
	adjacency  map[uint64][]Edge
	keywordIdx map[string]map[uint64]struct{}

	// ids holds every vertex id in ascending order, computed once, so
	// Vertices() and diagnostics get a deterministic enumeration without
	// re-sorting on every call.
	ids []uint64
}

// BuildGraph constructs a Graph from ingester-supplied vertex and edge
// records. It is the only way to obtain a Graph; there is no incremental
// mutation API, per spec §3's "built once at load, read-only thereafter."
//
// Validation, in order:
//  1. vertex ids are unique (ErrDuplicateVertex),
//  2. every edge endpoint resolves to a declared vertex (ErrUnknownEndpoint),
//  3. every edge weight is positive (ErrNonPositiveWeight).
//
// Keywords are case-folded to lowercase here; the ingester need not fold
// them. Bidirectional roads must already be two EdgeRecords — BuildGraph
// never synthesizes a reverse edge.
func BuildGraph(vertices []VertexRecord, edges []EdgeRecord) (*Graph, error) {
	vocab := NewVocabulary()
	g := &Graph{
		vocab:      vocab,
		vertices:   make(map[uint64]*Vertex, len(vertices)),
		adjacency:  make(map[uint64][]Edge, len(vertices)),
		keywordIdx: make(map[string]map[uint64]struct{}),
	}

	for _, vr := range vertices {
		if _, exists := g.vertices[vr.ID]; exists {
			return nil, fmt.Errorf("%w: id=%d", ErrDuplicateVertex, vr.ID)
		}
		ks := EmptyKeywordSet(vocab)
		for _, w := range vr.Keywords {
			ks.Add(w)
		}
		g.vertices[vr.ID] = &Vertex{ID: vr.ID, Lat: vr.Lat, Lon: vr.Lon, Keywords: ks}
		g.adjacency[vr.ID] = nil
		for _, w := range ks.Words() {
			bucket, ok := g.keywordIdx[w]
			if !ok {
				bucket = make(map[uint64]struct{})
				g.keywordIdx[w] = bucket
			}
			bucket[vr.ID] = struct{}{}
		}
	}

	for _, er := range edges {
		if _, ok := g.vertices[er.From]; !ok {
			return nil, fmt.Errorf("%w: from=%d", ErrUnknownEndpoint, er.From)
		}
		if _, ok := g.vertices[er.To]; !ok {
			return nil, fmt.Errorf("%w: to=%d", ErrUnknownEndpoint, er.To)
		}
		if er.Weight <= 0 {
			return nil, fmt.Errorf("%w: %d->%d weight=%v", ErrNonPositiveWeight, er.From, er.To, er.Weight)
		}
		g.adjacency[er.From] = append(g.adjacency[er.From], Edge{From: er.From, To: er.To, Weight: er.Weight})
	}

	g.ids = make([]uint64, 0, len(g.vertices))
	for id := range g.vertices {
		g.ids = append(g.ids, id)
	}
	sort.Slice(g.ids, func(i, j int) bool { return g.ids[i] < g.ids[j] })

	return g, nil
}

// Vocabulary exposes the Graph's shared keyword vocabulary so that callers
// building their own KeywordSet (e.g. a Clue's keyword, or a query-time
// filter) can intern against the same bit positions.
func (g *Graph) Vocabulary() *Vocabulary { return g.vocab }

// Vertex returns the vertex with the given id, or (nil, false) if absent.
func (g *Graph) Vertex(id uint64) (*Vertex, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.vertices[id]
	return v, ok
}

// HasVertex reports whether id names a vertex in the graph.
func (g *Graph) HasVertex(id uint64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[id]
	return ok
}

// Vertices returns every vertex id in ascending order, for deterministic
// enumeration (e.g. AB-tree bulk-load, diagnostics).
func (g *Graph) Vertices() []uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]uint64, len(g.ids))
	copy(out, g.ids)
	return out
}

// Neighbors returns the outgoing edges of vertex id, or nil if id has none
// or does not exist.
func (g *Graph) Neighbors(id uint64) []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.adjacency[id]
}

// VerticesWithKeyword returns every vertex id whose keyword set contains w
// (case-folded), in ascending order. An unseen keyword yields an empty,
// non-nil slice — clue keywords absent from the index are not an error,
// per spec §6: "the solver will simply fail to progress."
func (g *Graph) VerticesWithKeyword(w string) []uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	bucket, ok := g.keywordIdx[normalizeKeyword(w)]
	if !ok {
		return []uint64{}
	}
	out := make([]uint64, 0, len(bucket))
	for id := range bucket {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// VertexCount returns the number of vertices in the graph.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.vertices)
}
