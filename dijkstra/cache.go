package dijkstra

import (
	"math"
	"sync"

	"github.com/clueway/croute/core"
)

// pairKey is the memoization key for a single (u,v) distance query.
type pairKey struct{ u, v uint64 }

// Cache is the shortest-path service's memoization layer (spec §4.1): an
// unbounded, write-once-per-key cache of pairwise distances. Because edge
// weights never change once a Graph is built, a cached value is never
// overwritten — concurrent callers computing the same key race harmlessly
// to the same answer. Call Clear to release memory (spec §5,
// Session::clear_caches).
type Cache struct {
	mu       sync.Mutex
	pairwise map[pairKey]float64
}

// NewCache returns an empty memoization cache.
func NewCache() *Cache {
	return &Cache{pairwise: make(map[pairKey]float64)}
}

// Distance returns the network distance from u to v, computing and caching
// a full distance vector from u on a cache miss. Unreachable pairs are
// cached as +∞ so repeated queries for a disconnected pair stay O(1).
func (c *Cache) Distance(g *core.Graph, u, v uint64) (float64, error) {
	if d, ok := c.peek(u, v); ok {
		return d, nil
	}

	dist, err := c.AllDistancesFrom(g, u)
	if err != nil {
		return math.Inf(1), err
	}
	if d, ok := dist[v]; ok {
		return d, nil
	}
	c.mu.Lock()
	if _, exists := c.pairwise[pairKey{u, v}]; !exists {
		c.pairwise[pairKey{u, v}] = math.Inf(1)
	}
	c.mu.Unlock()
	return math.Inf(1), nil
}

// AllDistancesFrom returns the full distance vector from source, populating
// the pairwise cache for every reached vertex (spec §4.1: "the full-vector
// variant populates the cache for every reached vertex").
func (c *Cache) AllDistancesFrom(g *core.Graph, source uint64) (map[uint64]float64, error) {
	dist, _, err := Run(g, source)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for v, d := range dist {
		k := pairKey{source, v}
		if _, exists := c.pairwise[k]; !exists {
			c.pairwise[k] = d
		}
	}
	c.mu.Unlock()

	return dist, nil
}

// ShortestPath returns the distance and vertex sequence from u to v,
// reusing Run's predecessor chain (path reconstruction is not memoized —
// only pairwise distances are — since a path is cheap to rederive from a
// distance vector the cache has likely already warmed).
func (c *Cache) ShortestPath(g *core.Graph, u, v uint64) (float64, []uint64, error) {
	dist, prev, err := Run(g, u, WithReturnPath())
	if err != nil {
		return math.Inf(1), nil, err
	}

	c.mu.Lock()
	for w, d := range dist {
		k := pairKey{u, w}
		if _, exists := c.pairwise[k]; !exists {
			c.pairwise[k] = d
		}
	}
	c.mu.Unlock()

	d, ok := dist[v]
	if !ok {
		return math.Inf(1), nil, nil
	}
	return d, Reconstruct(u, v, prev), nil
}

// peek returns a cached distance without triggering computation.
func (c *Cache) peek(u, v uint64) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.pairwise[pairKey{u, v}]
	return d, ok
}

// Clear drops every memoized entry. Safe to call concurrently with queries
// already in flight (they hold their own dist map, not a cache reference).
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pairwise = make(map[pairKey]float64)
}
