// Package core defines the road-network graph that every solver and index
// in this repository reads from: vertices with geographic coordinates and
// keyword sets, directed weighted edges, and the keyword inverted index.
//
// A Graph is built once, at load time, from an ingester's vertex and edge
// records (see BuildGraph) and is read-only thereafter: solvers, the AB-tree,
// the PB-tree and the 2-hop label index all borrow it concurrently; its
// accessors take only a read lock, so concurrent readers never block one
// another, matching the "Graph: read-only after construction; safe to share
// between concurrent queries" rule.
package core

import "errors"

// Sentinel errors surfaced at graph-construction time. These are the only
// errors core.BuildGraph returns; once a Graph exists it cannot become
// invalid, so no query-time method here returns a construction-time error.
var (
	// ErrDuplicateVertex indicates two vertex records share the same ID.
	ErrDuplicateVertex = errors.New("core: duplicate vertex id")

	// ErrUnknownEndpoint indicates an edge record referenced a vertex id
	// that was never declared.
	ErrUnknownEndpoint = errors.New("core: edge endpoint not declared as a vertex")

	// ErrNonPositiveWeight indicates an edge record carried a weight <= 0.
	ErrNonPositiveWeight = errors.New("core: edge weight must be positive")

	// ErrVertexNotFound indicates a query referenced a vertex id absent
	// from the graph.
	ErrVertexNotFound = errors.New("core: vertex not found")
)

// VertexRecord is the ingestion-side shape of a vertex, per spec §6: a
// stable 64-bit id, geographic coordinates, and a keyword set. Keywords are
// case-folded to lowercase by BuildGraph; the ingester need not fold them.
type VertexRecord struct {
	ID       uint64
	Lat, Lon float64
	Keywords []string
}

// EdgeRecord is the ingestion-side shape of a directed edge. Bidirectional
// roads must be supplied as two EdgeRecords by the ingester; the core never
// infers a reverse edge.
type EdgeRecord struct {
	From, To uint64
	Weight   float64
}

// Vertex is immutable after BuildGraph returns. Keywords is backed by a
// bitset over the Graph's shared vocabulary (see KeywordSet) so that
// AB-tree/PB-tree subtree-keyword unions stay cheap.
type Vertex struct {
	ID       uint64
	Lat, Lon float64
	Keywords *KeywordSet
}

// Edge is a directed, positively weighted connection between two vertices.
// Edges are never mutated after construction.
type Edge struct {
	From, To uint64
	Weight   float64
}
