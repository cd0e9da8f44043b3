// Package solver implements the three solver families (spec §4.6-4.8): GCS
// (greedy), CDP (exact dynamic programming), and BAB (branch-and-bound,
// parameterized by a findnext.Backend). All three share the Solver
// capability interface and SearchResult output shape (spec §6).
package solver

import (
	"time"

	"github.com/clueway/croute/crserr"
	"github.com/clueway/croute/trace"
)

// SearchResult is a solver invocation's complete output (spec §3, §6).
type SearchResult struct {
	BestPath       []uint64
	BestMatching   float64
	Outcome        crserr.Outcome
	ExecutionTime  time.Duration
	Iterations     uint64
	Trace          []trace.Step
	IndexBuildTime time.Duration
}
