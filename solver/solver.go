package solver

import (
	"context"

	"github.com/clueway/croute/clue"
)

// Solver answers one Query and returns a SearchResult. Implementations never
// panic on query-time conditions; infeasibility, iteration caps, and
// cancellation are all reported via SearchResult.Outcome (spec §7).
type Solver interface {
	Solve(ctx context.Context, q clue.Query) SearchResult
}
