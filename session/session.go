// Package session implements the Session component (spec §2, §4, §5): the
// owner of a Graph's shared caches — the distance cache, the per-source
// AB-tree cache, and the Session-wide 2-hop label index and PB-tree forest —
// and the dispatcher that hands a Query to whichever Solver the caller asks
// for.
package session

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clueway/croute/abtree"
	"github.com/clueway/croute/clue"
	"github.com/clueway/croute/core"
	"github.com/clueway/croute/crserr"
	"github.com/clueway/croute/dijkstra"
	"github.com/clueway/croute/findnext"
	"github.com/clueway/croute/hublabel"
	"github.com/clueway/croute/pbtree"
	"github.com/clueway/croute/solver"
	"github.com/clueway/croute/trace"
)

// SolverKind selects which solver configuration Query dispatches to: GCS,
// CDP, or BAB over the linear, AB-tree or PB-tree findNext backend.
type SolverKind int

const (
	GCS SolverKind = iota
	CDP
	BABLinear
	BABAbTree
	BABPbTree
)

// Session owns a Graph and every cache built against it: the distance cache
// (always present), the per-source AB-tree cache (built on demand), and the
// Session-wide 2-hop label index plus PB-tree forest (built once, eagerly or
// lazily per Config.BuildIndicesLazily).
type Session struct {
	graph  *core.Graph
	cache  *dijkstra.Cache
	config *Config

	abtrees map[uint64]*abtree.Tree

	labels *hublabel.Index
	forest *pbtree.Forest

	lastIndexBuildTime time.Duration
}

// NewSession constructs a Session over g. When Config.BuildIndicesLazily is
// false, the 2-hop label and PB-tree forest are built immediately; any
// construction failure is returned wrapped as crserr.ErrInvalidGraph, per
// spec §7: "construction-time errors are fatal to Session initialization."
func NewSession(g *core.Graph, opts ...Option) (*Session, error) {
	cfg := newConfig(opts...)
	s := &Session{
		graph:   g,
		cache:   dijkstra.NewCache(),
		config:  cfg,
		abtrees: make(map[uint64]*abtree.Tree),
	}

	if !cfg.BuildIndicesLazily {
		if err := s.buildIndices(); err != nil {
			return nil, err
		}
	}

	cfg.Logger.Info().
		Int("vertices", g.VertexCount()).
		Bool("lazy_indices", cfg.BuildIndicesLazily).
		Msg("session initialized")

	return s, nil
}

// buildIndices constructs the 2-hop label index and PB-tree forest, if not
// already built.
func (s *Session) buildIndices() error {
	if s.labels != nil && s.forest != nil {
		return nil
	}

	start := time.Now()
	s.labels = hublabel.Build(s.graph, s.config.LabelPivotOrder, s.config.LabelPivotRank, s.config.DistanceToleranceEpsilon)
	forest, err := pbtree.Build(s.graph, s.labels, s.config.PBTreeOrder)
	if err != nil {
		return crserr.InvalidGraph(err)
	}
	s.forest = forest
	s.lastIndexBuildTime = time.Since(start)

	s.config.Logger.Info().
		Dur("build_time", s.lastIndexBuildTime).
		Msg("built 2-hop label index and PB-tree forest")
	return nil
}

// abtreeFor returns the cached AB-tree for source, building it on first use.
func (s *Session) abtreeFor(source uint64) (*abtree.Tree, error) {
	if t, ok := s.abtrees[source]; ok {
		return t, nil
	}
	t, err := abtree.Build(s.graph, s.cache, source, s.config.ABTreeOrder)
	if err != nil {
		return nil, err
	}
	s.abtrees[source] = t
	return t, nil
}

// backendFor resolves a findnext.Backend for kind, building whatever
// per-query-shape index it lazily needs.
func (s *Session) backendFor(kind SolverKind, source uint64) (findnext.Backend, error) {
	switch kind {
	case BABLinear:
		return findnext.NewLinear(s.graph, s.cache), nil
	case BABAbTree:
		if _, err := s.abtreeFor(source); err != nil {
			return nil, err
		}
		return &abtreeBackendAdapter{session: s}, nil
	case BABPbTree:
		if err := s.buildIndices(); err != nil {
			return nil, err
		}
		return findnext.NewPBTree(s.labels, s.forest), nil
	default:
		return findnext.NewLinear(s.graph, s.cache), nil
	}
}

// abtreeBackendAdapter adapts abtree.Tree.FindNext (which takes no UB
// parameter, per spec §4.5: "Does not take UB") to the shared
// findnext.Backend interface by ignoring ub. Each call runs against the
// Session's cached AB-tree for u, building it on first use.
type abtreeBackendAdapter struct{ session *Session }

func (a *abtreeBackendAdapter) FindNext(u uint64, c clue.Clue, theta, ub float64, excluded findnext.Excluded, idx *trace.IndexBuffer) (findnext.Candidate, bool) {
	t, err := a.session.abtreeFor(u)
	if err != nil {
		return findnext.Candidate{}, false
	}
	cand, ok := t.FindNext(c, theta, abtree.Excluded(excluded), idx)
	if !ok {
		return findnext.Candidate{}, false
	}
	return findnext.Candidate(cand), true
}

// Query validates q, then dispatches it to the solver named by kind.
// Validation failures are returned as crserr.ErrInvalidQuery; everything
// else — infeasibility, iteration caps, cancellation — comes back inside
// the SearchResult's Outcome, never as an error (spec §7).
func (s *Session) Query(ctx context.Context, q clue.Query, kind SolverKind) (solver.SearchResult, error) {
	if err := s.validate(q); err != nil {
		return solver.SearchResult{}, crserr.InvalidQuery(err)
	}

	backend, err := s.backendFor(kind, q.Source)
	if err != nil {
		return solver.SearchResult{}, err
	}

	var sv solver.Solver
	switch kind {
	case GCS:
		sv = solver.NewGCS(backend, s.config.TraceMode)
	case CDP:
		sv = solver.NewCDP(s.graph, s.cache, s.config.MaxIterations, s.config.TraceMode)
	default:
		sv = solver.NewBAB(backend, s.config.MaxIterations, s.config.TraceMode)
	}

	result := sv.Solve(ctx, q)
	if kind == BABPbTree {
		result.IndexBuildTime = s.lastIndexBuildTime
	}

	s.config.Logger.Debug().
		Uint64("source", q.Source).
		Int("clues", q.Len()).
		Str("outcome", result.Outcome.String()).
		Uint64("iterations", result.Iterations).
		Msg("query completed")

	return result, nil
}

// validate checks source existence and delegates clue-shape validation to
// clue.NewQuery (already performed by the caller when constructing q, but
// source existence is a graph-dependent check only the Session can make).
func (s *Session) validate(q clue.Query) error {
	if q.Len() == 0 {
		return clue.ErrEmptyClues
	}
	if !s.graph.HasVertex(q.Source) {
		return core.ErrVertexNotFound
	}
	return nil
}

// WarmCaches pre-builds the AB-tree for every source in sources, bounded by
// Go's runtime-chosen GOMAXPROCS via errgroup — a best-effort optimization
// Query never depends on, since backendFor builds lazily anyway.
func (s *Session) WarmCaches(ctx context.Context, sources []uint64) error {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	var mu sync.Mutex
	for _, src := range sources {
		src := src
		g.Go(func() error {
			t, err := abtree.Build(s.graph, s.cache, src, s.config.ABTreeOrder)
			if err != nil {
				return err
			}
			mu.Lock()
			s.abtrees[src] = t
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// ClearCaches drops the distance cache, every cached AB-tree, and the
// Session-wide label index and PB-tree forest (spec §5,
// Session::clear_caches). Safe to call between queries; nothing is
// retained across the call.
func (s *Session) ClearCaches() {
	s.cache.Clear()
	s.abtrees = make(map[uint64]*abtree.Tree)
	s.labels = nil
	s.forest = nil
	s.config.Logger.Info().Msg("caches cleared")
}

// Graph returns the Session's underlying Graph.
func (s *Session) Graph() *core.Graph { return s.graph }
