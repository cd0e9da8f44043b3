package diagnostics

import (
	"errors"
	"fmt"

	"github.com/clueway/croute/clue"
	"github.com/clueway/croute/core"
	"github.com/clueway/croute/dijkstra"
)

// Sentinel errors for ValidatePath, a post-hoc re-check of a solver's
// output independent of whichever solver (or backend) produced it.
var (
	ErrEmptyPath      = errors.New("diagnostics: path is empty")
	ErrWrongSource    = errors.New("diagnostics: path does not start at query source")
	ErrWrongLength    = errors.New("diagnostics: path length does not match clue count")
	ErrKeywordMissing = errors.New("diagnostics: hop vertex lacks the clue's keyword")
	ErrOutOfInterval  = errors.New("diagnostics: hop distance falls outside the clue's interval")
)

// ValidatePath re-derives, from scratch, whether path is a feasible answer
// to q: same source, right length, every hop vertex carries its clue's
// keyword, and every hop distance falls within its clue's confidence
// interval. It never consults a solver's trace or internal state — only the
// graph and distance cache — so it can catch a solver bug the solver itself
// would not notice.
func ValidatePath(g *core.Graph, cache *dijkstra.Cache, q clue.Query, path []uint64) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	if path[0] != q.Source {
		return ErrWrongSource
	}
	if len(path) != q.Len()+1 {
		return ErrWrongLength
	}

	for i, c := range q.Clues {
		u, v := path[i], path[i+1]
		vertex, ok := g.Vertex(v)
		if !ok || !vertex.Keywords.Has(c.Keyword) {
			return fmt.Errorf("%w: clue %d (%s)", ErrKeywordMissing, i, c.Keyword)
		}
		d, err := cache.Distance(g, u, v)
		if err != nil {
			return err
		}
		if !c.InInterval(d) {
			return fmt.Errorf("%w: clue %d, distance=%v", ErrOutOfInterval, i, d)
		}
	}
	return nil
}
