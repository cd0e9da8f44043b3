// Package diagnostics provides advisory, correctness-independent reports
// over a Graph and its query results (spec §1: "Diagnostics (connectivity
// reports, path validators) are advisory, not part of correctness."). They
// exist to help a caller understand *why* a query failed, never to
// participate in a solver's decision-making.
package diagnostics

import "github.com/clueway/croute/core"

// ConnectivityReport is an unweighted breadth-first reachability report from
// one source vertex.
type ConnectivityReport struct {
	Source    uint64
	Reachable map[uint64]int // vertex -> hop count from Source
	Order     []uint64       // visit order, BFS layer by layer
}

// Percent reports what fraction of total vertices this report reached.
func (r *ConnectivityReport) Percent(total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(len(r.Reachable)) / float64(total) * 100
}

// Connectivity runs an unweighted BFS from source over g's adjacency and
// reports which vertices are reachable. Unlike dijkstra.Run, it ignores
// edge weights entirely — it answers "can we get there at all", not "how
// far", which is cheaper and is all a connectivity report needs.
func Connectivity(g *core.Graph, source uint64) (*ConnectivityReport, error) {
	if !g.HasVertex(source) {
		return nil, core.ErrVertexNotFound
	}

	report := &ConnectivityReport{
		Source:    source,
		Reachable: map[uint64]int{source: 0},
		Order:     []uint64{source},
	}

	queue := []uint64{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range g.Neighbors(u) {
			if _, seen := report.Reachable[e.To]; seen {
				continue
			}
			report.Reachable[e.To] = report.Reachable[u] + 1
			report.Order = append(report.Order, e.To)
			queue = append(queue, e.To)
		}
	}
	return report, nil
}
