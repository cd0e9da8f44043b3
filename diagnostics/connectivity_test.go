package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clueway/croute/core"
	"github.com/clueway/croute/diagnostics"
)

// disconnected builds two components: A(1)-B(2) and C(3)-D(4), no edges
// between them.
func disconnected(t *testing.T) *core.Graph {
	t.Helper()
	vertices := []core.VertexRecord{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	edges := []core.EdgeRecord{
		{From: 1, To: 2, Weight: 1},
		{From: 2, To: 1, Weight: 1},
		{From: 3, To: 4, Weight: 1},
		{From: 4, To: 3, Weight: 1},
	}
	g, err := core.BuildGraph(vertices, edges)
	require.NoError(t, err)
	return g
}

func TestConnectivity_UnknownSource(t *testing.T) {
	g := disconnected(t)
	_, err := diagnostics.Connectivity(g, 999)
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
}

func TestConnectivity_ReachesOnlyOwnComponent(t *testing.T) {
	g := disconnected(t)
	report, err := diagnostics.Connectivity(g, 1)
	require.NoError(t, err)

	assert.Len(t, report.Reachable, 2)
	assert.Contains(t, report.Reachable, uint64(1))
	assert.Contains(t, report.Reachable, uint64(2))
	assert.NotContains(t, report.Reachable, uint64(3))
	assert.Equal(t, 0, report.Reachable[1])
	assert.Equal(t, 1, report.Reachable[2])
}

func TestConnectivityReport_Percent(t *testing.T) {
	g := disconnected(t)
	report, err := diagnostics.Connectivity(g, 1)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, report.Percent(4), 1e-9)
	assert.InDelta(t, 0, report.Percent(0), 1e-9)
}
