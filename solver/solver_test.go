package solver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clueway/croute/clue"
	"github.com/clueway/croute/core"
	"github.com/clueway/croute/crserr"
	"github.com/clueway/croute/dijkstra"
	"github.com/clueway/croute/findnext"
	"github.com/clueway/croute/solver"
	"github.com/clueway/croute/trace"
)

// chain builds A(1,start)-B(2,p)-C(3,q)-D(4,r) with weights 100,150,200.
func chain(t *testing.T) *core.Graph {
	t.Helper()
	vertices := []core.VertexRecord{
		{ID: 1, Keywords: []string{"start"}},
		{ID: 2, Keywords: []string{"p"}},
		{ID: 3, Keywords: []string{"q"}},
		{ID: 4, Keywords: []string{"r"}},
	}
	edges := []core.EdgeRecord{
		{From: 1, To: 2, Weight: 100},
		{From: 2, To: 1, Weight: 100},
		{From: 2, To: 3, Weight: 150},
		{From: 3, To: 2, Weight: 150},
		{From: 3, To: 4, Weight: 200},
		{From: 4, To: 3, Weight: 200},
	}
	g, err := core.BuildGraph(vertices, edges)
	require.NoError(t, err)
	return g
}

func chainQuery(t *testing.T) clue.Query {
	t.Helper()
	p, err := clue.New("p", 100, 0.1)
	require.NoError(t, err)
	q, err := clue.New("q", 150, 0.1)
	require.NoError(t, err)
	r, err := clue.New("r", 200, 0.1)
	require.NoError(t, err)
	query, err := clue.NewQuery(1, []clue.Clue{p, q, r})
	require.NoError(t, err)
	return query
}

func TestGCS_Solve_AllCluesSatisfied(t *testing.T) {
	g := chain(t)
	cache := dijkstra.NewCache()
	backend := findnext.NewLinear(g, cache)
	s := solver.NewGCS(backend, trace.Summary)

	result := s.Solve(context.Background(), chainQuery(t))
	assert.Equal(t, crserr.Completed, result.Outcome)
	assert.Equal(t, []uint64{1, 2, 3, 4}, result.BestPath)
	assert.InDelta(t, 0, result.BestMatching, 1e-6)
	assert.NotEmpty(t, result.Trace)
}

func TestGCS_Solve_InfeasibleOnMissingClue(t *testing.T) {
	g := chain(t)
	cache := dijkstra.NewCache()
	backend := findnext.NewLinear(g, cache)
	s := solver.NewGCS(backend, trace.None)

	missing, err := clue.New("nonexistent", 50, 0.1)
	require.NoError(t, err)
	q, err := clue.NewQuery(1, []clue.Clue{missing})
	require.NoError(t, err)

	result := s.Solve(context.Background(), q)
	assert.Equal(t, crserr.Infeasible, result.Outcome)
	assert.Equal(t, []uint64{1}, result.BestPath)
}

func TestCDP_Solve_ExactMatch(t *testing.T) {
	g := chain(t)
	cache := dijkstra.NewCache()
	s := solver.NewCDP(g, cache, 10_000, trace.None)

	result := s.Solve(context.Background(), chainQuery(t))
	assert.Equal(t, crserr.Completed, result.Outcome)
	assert.Equal(t, []uint64{1, 2, 3, 4}, result.BestPath)
	assert.InDelta(t, 0, result.BestMatching, 1e-6)
}

func TestCDP_Solve_Infeasible(t *testing.T) {
	g := chain(t)
	cache := dijkstra.NewCache()
	s := solver.NewCDP(g, cache, 10_000, trace.None)

	missing, err := clue.New("nonexistent", 50, 0.1)
	require.NoError(t, err)
	q, err := clue.NewQuery(1, []clue.Clue{missing})
	require.NoError(t, err)

	result := s.Solve(context.Background(), q)
	assert.Equal(t, crserr.Infeasible, result.Outcome)
}

func TestBAB_Solve_FindsOptimalPath(t *testing.T) {
	g := chain(t)
	cache := dijkstra.NewCache()
	backend := findnext.NewLinear(g, cache)
	s := solver.NewBAB(backend, 10_000, trace.Full)

	result := s.Solve(context.Background(), chainQuery(t))
	assert.Equal(t, crserr.Completed, result.Outcome)
	assert.Equal(t, []uint64{1, 2, 3, 4}, result.BestPath)
	assert.InDelta(t, 0, result.BestMatching, 1e-6)
	assert.NotEmpty(t, result.Trace)
}

func TestBAB_Solve_IterationCapExceeded(t *testing.T) {
	g := chain(t)
	cache := dijkstra.NewCache()
	backend := findnext.NewLinear(g, cache)
	s := solver.NewBAB(backend, 1, trace.None)

	result := s.Solve(context.Background(), chainQuery(t))
	assert.Equal(t, crserr.IterationCapExceeded, result.Outcome)
}

func TestBAB_Solve_SingleClueTerminates(t *testing.T) {
	// Regression guard for the k=1 backtrack edge case: a single-clue query
	// must not infinite-loop re-selecting the same excluded candidate.
	g := chain(t)
	cache := dijkstra.NewCache()
	backend := findnext.NewLinear(g, cache)
	s := solver.NewBAB(backend, 1_000, trace.None)

	p, err := clue.New("p", 100, 0.1)
	require.NoError(t, err)
	q, err := clue.NewQuery(1, []clue.Clue{p})
	require.NoError(t, err)

	result := s.Solve(context.Background(), q)
	assert.Equal(t, crserr.Completed, result.Outcome)
	assert.Equal(t, []uint64{1, 2}, result.BestPath)
	assert.Less(t, result.Iterations, uint64(1_000))
}

func TestSolverOrdering_CDPAtLeastAsGoodAsBAB(t *testing.T) {
	g := chain(t)
	cache := dijkstra.NewCache()
	linear := findnext.NewLinear(g, cache)

	cdp := solver.NewCDP(g, cache, 10_000, trace.None)
	bab := solver.NewBAB(linear, 10_000, trace.None)
	gcs := solver.NewGCS(linear, trace.None)

	query := chainQuery(t)
	cdpResult := cdp.Solve(context.Background(), query)
	babResult := bab.Solve(context.Background(), query)
	gcsResult := gcs.Solve(context.Background(), query)

	assert.LessOrEqual(t, cdpResult.BestMatching, babResult.BestMatching+1e-9)
	assert.LessOrEqual(t, babResult.BestMatching, gcsResult.BestMatching+1e-9)
}
