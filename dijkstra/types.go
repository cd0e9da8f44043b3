// Package dijkstra implements the graph's shortest-path service (spec §4.1):
// Dijkstra's algorithm over core.Graph with three call shapes — distance
// only, distance plus predecessor chain for path reconstruction, and a full
// distance vector from a single source — plus a write-once memoization
// cache shared across queries within a Session.
package dijkstra

import "errors"

// Sentinel errors returned by Run. Run does not check edge weights itself;
// core.BuildGraph already rejects non-positive weights.
var (
	// ErrVertexNotFound indicates the requested source vertex is absent
	// from the graph.
	ErrVertexNotFound = errors.New("dijkstra: source vertex not found")

	// ErrNilGraph indicates a nil *core.Graph was passed to Run.
	ErrNilGraph = errors.New("dijkstra: graph is nil")
)

// Options configures a single Run call.
type Options struct {
	// ReturnPath, if true, makes Run also return a predecessor map so the
	// caller can reconstruct a shortest path via Reconstruct.
	ReturnPath bool
}

// Option is a functional option for Run.
type Option func(*Options)

// WithReturnPath requests the predecessor map alongside distances.
func WithReturnPath() Option {
	return func(o *Options) { o.ReturnPath = true }
}
