package pbtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clueway/croute/clue"
	"github.com/clueway/croute/core"
	"github.com/clueway/croute/hublabel"
	"github.com/clueway/croute/pbtree"
)

// line builds A(1)-B(2)-C(3)-D(4) with weights 100,150,200, keywords p,q,r on
// B,C,D and none on A.
func line(t *testing.T) *core.Graph {
	t.Helper()
	vertices := []core.VertexRecord{
		{ID: 1},
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

func TestBuild_InvalidOrder(t *testing.T) {
	g := line(t)
	labels := hublabel.Build(g, hublabel.DegreeDesc, nil, hublabel.DefaultTolerance)
	_, err := pbtree.Build(g, labels, 1)
	assert.ErrorIs(t, err, pbtree.ErrInvalidOrder)
}

func TestBuild_OnlyKeywordBearingVerticesIndexed(t *testing.T) {
	g := line(t)
	labels := hublabel.Build(g, hublabel.DegreeDesc, nil, hublabel.DefaultTolerance)
	forest, err := pbtree.Build(g, labels, 4)
	require.NoError(t, err)

	for _, pivot := range forest.Pivots() {
		tree, ok := forest.Tree(pivot)
		require.True(t, ok)
		for _, e := range tree.InOrder() {
			// vertex 1 carries no keywords, so no pivot's tree indexes it.
			assert.NotEqual(t, uint64(1), e.Vertex)
		}
	}
}

func TestFindNext_FindsExactMatchAcrossPivots(t *testing.T) {
	g := line(t)
	labels := hublabel.Build(g, hublabel.DegreeDesc, nil, hublabel.DefaultTolerance)
	forest, err := pbtree.Build(g, labels, 4)
	require.NoError(t, err)

	c, err := clue.New("q", 250, 0.2)
	require.NoError(t, err)

	cand, ok := forest.FindNext(labels, 1, c, 0, 1.0, pbtree.Excluded{}, nil)
	require.True(t, ok)
	assert.Equal(t, uint64(3), cand.Vertex)
	assert.InDelta(t, 250, cand.Distance, 1e-6)
	assert.InDelta(t, 0, cand.Matching, 1e-6)
}

func TestFindNext_NoCandidateForUnknownKeyword(t *testing.T) {
	g := line(t)
	labels := hublabel.Build(g, hublabel.DegreeDesc, nil, hublabel.DefaultTolerance)
	forest, err := pbtree.Build(g, labels, 4)
	require.NoError(t, err)

	c, err := clue.New("nonexistent", 250, 0.2)
	require.NoError(t, err)

	_, ok := forest.FindNext(labels, 1, c, 0, 1.0, pbtree.Excluded{}, nil)
	assert.False(t, ok)
}

func TestFindNext_ExcludedVertexSkipped(t *testing.T) {
	g := line(t)
	labels := hublabel.Build(g, hublabel.DegreeDesc, nil, hublabel.DefaultTolerance)
	forest, err := pbtree.Build(g, labels, 4)
	require.NoError(t, err)

	c, err := clue.New("q", 250, 0.2)
	require.NoError(t, err)

	_, ok := forest.FindNext(labels, 1, c, 0, 1.0, pbtree.Excluded{3: true}, nil)
	assert.False(t, ok)
}

func TestFindNext_RejectsBelowTheta(t *testing.T) {
	g := line(t)
	labels := hublabel.Build(g, hublabel.DegreeDesc, nil, hublabel.DefaultTolerance)
	forest, err := pbtree.Build(g, labels, 4)
	require.NoError(t, err)

	c, err := clue.New("q", 250, 0.2)
	require.NoError(t, err)

	// The exact match (matching distance 0) would normally be accepted, but
	// a theta above 0 forces it to be rejected.
	_, ok := forest.FindNext(labels, 1, c, 0.5, 1.0, pbtree.Excluded{}, nil)
	assert.False(t, ok)
}
