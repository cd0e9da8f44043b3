package testgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clueway/croute/testgraph"
)

func TestRandomGeometric_VertexCount(t *testing.T) {
	opts := testgraph.GeometricOptions{
		Vertices:          30,
		GridSide:          6,
		NeighborRadius:    1,
		Keywords:          []string{"a", "b", "c"},
		KeywordsPerVertex: 1,
		Seed:              7,
	}
	g, err := testgraph.RandomGeometric(opts)
	require.NoError(t, err)
	assert.Equal(t, 30, g.VertexCount())
}

func TestRandomGeometric_DeterministicUnderFixedSeed(t *testing.T) {
	opts := testgraph.GeometricOptions{
		Vertices:          30,
		GridSide:          6,
		NeighborRadius:    1,
		Keywords:          []string{"a", "b", "c"},
		KeywordsPerVertex: 1,
		Seed:              7,
	}
	g1, err := testgraph.RandomGeometric(opts)
	require.NoError(t, err)
	g2, err := testgraph.RandomGeometric(opts)
	require.NoError(t, err)

	for _, v := range g1.Vertices() {
		n1, n2 := g1.Neighbors(v), g2.Neighbors(v)
		require.Len(t, n2, len(n1))
		for i := range n1 {
			assert.Equal(t, n1[i].To, n2[i].To)
			assert.InDelta(t, n1[i].Weight, n2[i].Weight, 1e-12)
		}
	}
}

func TestRandomGeometric_GridTooSmall(t *testing.T) {
	opts := testgraph.GeometricOptions{
		Vertices:       100,
		GridSide:       3,
		NeighborRadius: 1,
		Keywords:       []string{"a"},
		Seed:           1,
	}
	_, err := testgraph.RandomGeometric(opts)
	assert.Error(t, err)
}

func TestRandomGeometric_EveryVertexHasKeywords(t *testing.T) {
	opts := testgraph.DefaultGeometricOptions()
	opts.Vertices = 40
	opts.GridSide = 7
	g, err := testgraph.RandomGeometric(opts)
	require.NoError(t, err)

	for _, v := range g.Vertices() {
		vertex, ok := g.Vertex(v)
		require.True(t, ok)
		assert.False(t, vertex.Keywords.Empty())
	}
}
