package abtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clueway/croute/abtree"
	"github.com/clueway/croute/clue"
	"github.com/clueway/croute/core"
	"github.com/clueway/croute/dijkstra"
	"github.com/clueway/croute/trace"
)

// line builds A(1)-B(2)-C(3)-D(4) with weights 100,150,200, keywords p,q,r on B,C,D.
func line(t *testing.T) *core.Graph {
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

func TestBuild_ExcludesSource(t *testing.T) {
	g := line(t)
	cache := dijkstra.NewCache()
	tree, err := abtree.Build(g, cache, 1, 4)
	require.NoError(t, err)

	entries := tree.InOrder()
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.NotEqual(t, uint64(1), e.Vertex)
	}
}

func TestBuild_InvalidOrder(t *testing.T) {
	g := line(t)
	cache := dijkstra.NewCache()
	_, err := abtree.Build(g, cache, 1, 1)
	assert.ErrorIs(t, err, abtree.ErrInvalidOrder)
}

func TestFindNext_PicksClosestToTarget(t *testing.T) {
	g := line(t)
	cache := dijkstra.NewCache()
	// AB-tree rooted at B(2): d(B,C)=150 exactly matches clue q.
	tree, err := abtree.Build(g, cache, 2, 4)
	require.NoError(t, err)

	c, err := clue.New("q", 150, 0.2)
	require.NoError(t, err)

	cand, ok := tree.FindNext(c, 0, abtree.Excluded{}, nil)
	require.True(t, ok)
	assert.Equal(t, uint64(3), cand.Vertex)
	assert.InDelta(t, 0, cand.Matching, 1e-9)
}

func TestFindNext_NoCandidate(t *testing.T) {
	g := line(t)
	cache := dijkstra.NewCache()
	tree, err := abtree.Build(g, cache, 1, 4)
	require.NoError(t, err)

	c, err := clue.New("nonexistent", 150, 0.2)
	require.NoError(t, err)
	_, ok := tree.FindNext(c, 0, abtree.Excluded{}, nil)
	assert.False(t, ok)
}

func TestFindNext_RejectsBelowTheta(t *testing.T) {
	g := line(t)
	cache := dijkstra.NewCache()
	tree, err := abtree.Build(g, cache, 2, 4)
	require.NoError(t, err)

	c, err := clue.New("q", 150, 0.2)
	require.NoError(t, err)

	// The exact match (matching distance 0) would normally be accepted, but
	// a theta above 0 forces it to be rejected.
	_, ok := tree.FindNext(c, 0.5, abtree.Excluded{}, nil)
	assert.False(t, ok)
}

func TestFindNext_RecordsIndexSteps(t *testing.T) {
	g := line(t)
	cache := dijkstra.NewCache()
	tree, err := abtree.Build(g, cache, 2, 4)
	require.NoError(t, err)

	c, err := clue.New("q", 150, 0.2)
	require.NoError(t, err)

	idx := trace.NewIndexBuffer(trace.Full)
	_, ok := tree.FindNext(c, 0, abtree.Excluded{}, idx)
	require.True(t, ok)
	assert.NotEmpty(t, idx.Drain())
}
