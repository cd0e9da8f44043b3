// Package testgraph builds deterministic, seeded random graph fixtures for
// property tests (spec §8 scenario 5: "a random 500-vertex geometric graph
// with random keyword assignments"), in the teacher corpus's builder-style
// seeded-RNG idiom.
package testgraph

import (
	"fmt"
	"math/rand"

	"github.com/clueway/croute/core"
)

// GeometricOptions configures RandomGeometric.
type GeometricOptions struct {
	Vertices       int
	GridSide       int      // vertices are laid out on a GridSide x GridSide jittered grid
	NeighborRadius int      // each vertex connects to grid-neighbors within this Chebyshev radius
	Keywords       []string // vocabulary random keywords are drawn from
	KeywordsPerVertex int   // how many distinct keywords (Zipf-weighted) each vertex gets
	Seed           int64
}

// DefaultGeometricOptions returns the spec §8 scenario 5 shape: 500
// vertices, a handful of keywords, Zipf-skewed assignment.
func DefaultGeometricOptions() GeometricOptions {
	return GeometricOptions{
		Vertices:          500,
		GridSide:          23, // 23*23 = 529 >= 500 grid cells to sample from
		NeighborRadius:    1,
		Keywords:          []string{"cafe", "park", "school", "hospital", "market", "station", "museum", "hotel"},
		KeywordsPerVertex: 2,
		Seed:              1,
	}
}

// RandomGeometric builds a Graph over a jittered grid layout: each vertex
// sits near a distinct grid cell, Haversine-weighted edges connect
// grid-adjacent vertices (within NeighborRadius, bidirectionally), and each
// vertex is assigned KeywordsPerVertex keywords drawn from opts.Keywords
// with a Zipf-like skew (opts.Keywords[0] is most common).
func RandomGeometric(opts GeometricOptions) (*core.Graph, error) {
	rng := rand.New(rand.NewSource(opts.Seed))

	type cell struct{ row, col int }
	cells := make([]cell, 0, opts.GridSide*opts.GridSide)
	for r := 0; r < opts.GridSide; r++ {
		for c := 0; c < opts.GridSide; c++ {
			cells = append(cells, cell{r, c})
		}
	}
	rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	if opts.Vertices > len(cells) {
		return nil, fmt.Errorf("testgraph: grid side %d too small for %d vertices", opts.GridSide, opts.Vertices)
	}
	cells = cells[:opts.Vertices]

	const cellDegrees = 0.01 // ~1.1km per grid cell at the equator
	type placed struct {
		id       uint64
		lat, lon float64
		cell     cell
	}
	vertices := make([]placed, opts.Vertices)
	cellIndex := make(map[cell]int, opts.Vertices)
	for i, cl := range cells {
		jitterLat := (rng.Float64() - 0.5) * cellDegrees * 0.3
		jitterLon := (rng.Float64() - 0.5) * cellDegrees * 0.3
		vertices[i] = placed{
			id:   uint64(i + 1),
			lat:  float64(cl.row)*cellDegrees + jitterLat,
			lon:  float64(cl.col)*cellDegrees + jitterLon,
			cell: cl,
		}
		cellIndex[cl] = i
	}

	records := make([]core.VertexRecord, opts.Vertices)
	for i, v := range vertices {
		records[i] = core.VertexRecord{
			ID:       v.id,
			Lat:      v.lat,
			Lon:      v.lon,
			Keywords: zipfKeywords(rng, opts.Keywords, opts.KeywordsPerVertex),
		}
	}

	var edges []core.EdgeRecord
	seen := make(map[[2]uint64]bool)
	for _, v := range vertices {
		for dr := -opts.NeighborRadius; dr <= opts.NeighborRadius; dr++ {
			for dc := -opts.NeighborRadius; dc <= opts.NeighborRadius; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				nbrCell := cell{v.cell.row + dr, v.cell.col + dc}
				j, ok := cellIndex[nbrCell]
				if !ok {
					continue
				}
				u := vertices[j]
				key := [2]uint64{v.id, u.id}
				if seen[key] {
					continue
				}
				seen[key] = true
				w := core.Haversine(v.lat, v.lon, u.lat, u.lon)
				edges = append(edges, core.EdgeRecord{From: v.id, To: u.id, Weight: w})
			}
		}
	}

	return core.BuildGraph(records, edges)
}

// zipfKeywords draws n distinct keywords from vocab, favoring earlier
// entries (a manual Zipf-like skew: position i is chosen with weight
// 1/(i+1)).
func zipfKeywords(rng *rand.Rand, vocab []string, n int) []string {
	if n > len(vocab) {
		n = len(vocab)
	}
	weights := make([]float64, len(vocab))
	total := 0.0
	for i := range vocab {
		weights[i] = 1.0 / float64(i+1)
		total += weights[i]
	}

	chosen := make(map[int]bool, n)
	out := make([]string, 0, n)
	for len(out) < n {
		r := rng.Float64() * total
		acc := 0.0
		pick := len(vocab) - 1
		for i, w := range weights {
			acc += w
			if r <= acc {
				pick = i
				break
			}
		}
		if chosen[pick] {
			continue
		}
		chosen[pick] = true
		out = append(out, vocab[pick])
	}
	return out
}
