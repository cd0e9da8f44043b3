package dijkstra_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clueway/croute/dijkstra"
)

func TestCache_MemoizationAgreement(t *testing.T) {
	g := diamond(t)
	cache := dijkstra.NewCache()

	fresh, err := dijkstra.Distance(g, 1, 4)
	require.NoError(t, err)

	cached, err := cache.Distance(g, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, fresh, cached)

	// Second call must hit the cache and return the identical value.
	cachedAgain, err := cache.Distance(g, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, cached, cachedAgain)
}

func TestCache_AllDistancesFromPopulatesEveryReached(t *testing.T) {
	g := diamond(t)
	cache := dijkstra.NewCache()

	dist, err := cache.AllDistancesFrom(g, 1)
	require.NoError(t, err)
	assert.Len(t, dist, 4)

	// Every entry should now be servable without a fresh Dijkstra run,
	// i.e. Distance must return exactly what AllDistancesFrom computed.
	for v, d := range dist {
		got, err := cache.Distance(g, 1, v)
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
}

func TestCache_Clear(t *testing.T) {
	g := diamond(t)
	cache := dijkstra.NewCache()
	_, err := cache.Distance(g, 1, 4)
	require.NoError(t, err)
	cache.Clear()

	// Clearing must not error on a subsequent query; it simply
	// recomputes.
	d, err := cache.Distance(g, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)
}

func TestCache_ShortestPath(t *testing.T) {
	g := diamond(t)
	cache := dijkstra.NewCache()
	d, path, err := cache.ShortestPath(g, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)
	assert.Equal(t, []uint64{1, 2, 3, 4}, path)
}
