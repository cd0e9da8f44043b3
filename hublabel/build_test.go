package hublabel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clueway/croute/core"
	"github.com/clueway/croute/dijkstra"
	"github.com/clueway/croute/hublabel"
)

// grid builds a small 3x3 undirected grid graph (unit weights) for label
// correctness checks.
func grid(t *testing.T) (*core.Graph, func(r, c int) uint64) {
	t.Helper()
	id := func(r, c int) uint64 { return uint64(r*3 + c + 1) }

	var vertices []core.VertexRecord
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			vertices = append(vertices, core.VertexRecord{ID: id(r, c)})
		}
	}
	var edges []core.EdgeRecord
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if c+1 < 3 {
				edges = append(edges,
					core.EdgeRecord{From: id(r, c), To: id(r, c+1), Weight: 1},
					core.EdgeRecord{From: id(r, c+1), To: id(r, c), Weight: 1})
			}
			if r+1 < 3 {
				edges = append(edges,
					core.EdgeRecord{From: id(r, c), To: id(r+1, c), Weight: 1},
					core.EdgeRecord{From: id(r+1, c), To: id(r, c), Weight: 1})
			}
		}
	}
	g, err := core.BuildGraph(vertices, edges)
	require.NoError(t, err)
	return g, id
}

func TestBuild_LabelDistanceMatchesNetworkDistance(t *testing.T) {
	g, id := grid(t)
	idx := hublabel.Build(g, hublabel.DegreeDesc, nil, hublabel.DefaultTolerance)
	cache := dijkstra.NewCache()

	for _, u := range g.Vertices() {
		for _, v := range g.Vertices() {
			want, err := cache.Distance(g, u, v)
			require.NoError(t, err)
			got := idx.Distance(u, v)
			assert.InDelta(t, want, got, 1e-6, "u=%d v=%d", u, v)
		}
	}
	_ = id
}

func TestBuild_IDAscOrderAlsoCorrect(t *testing.T) {
	g, _ := grid(t)
	idx := hublabel.Build(g, hublabel.IDAsc, nil, hublabel.DefaultTolerance)
	cache := dijkstra.NewCache()

	want, err := cache.Distance(g, 1, 9)
	require.NoError(t, err)
	assert.InDelta(t, want, idx.Distance(1, 9), 1e-6)
}

func TestDistance_NoCommonPivot_Unreachable(t *testing.T) {
	vertices := []core.VertexRecord{{ID: 1}, {ID: 2}}
	g, err := core.BuildGraph(vertices, nil)
	require.NoError(t, err)

	idx := hublabel.Build(g, hublabel.DegreeDesc, nil, hublabel.DefaultTolerance)
	assert.True(t, math.IsInf(idx.Distance(1, 2), 1))
}

func TestOnShortestPath(t *testing.T) {
	g, id := grid(t)
	idx := hublabel.Build(g, hublabel.DegreeDesc, nil, hublabel.DefaultTolerance)

	corner, mid, other := id(0, 0), id(1, 1), id(2, 2)
	// center (1,1) lies on a shortest path between opposite corners.
	assert.True(t, idx.OnShortestPath(corner, other, mid))
	// corner itself trivially lies on a shortest path from corner to
	// anywhere.
	assert.True(t, idx.OnShortestPath(corner, other, corner))
}

func TestOnShortestPath_NotOnPath(t *testing.T) {
	g, id := grid(t)
	idx := hublabel.Build(g, hublabel.DegreeDesc, nil, hublabel.DefaultTolerance)

	a, b := id(0, 0), id(0, 1)
	farCorner := id(2, 0)
	assert.False(t, idx.OnShortestPath(a, b, farCorner))
}
