// Package croute answers clue-based route search (CRS) queries on a road
// network: given a source vertex and an ordered sequence of clues — each
// naming a keyword, an expected network distance, and a tolerance — it
// finds a path that visits one vertex per clue within its distance
// tolerance, minimizing the worst per-hop deviation.
//
// Four solvers answer the same query with different tradeoffs:
//
//	session.GCS       — greedy, one findNext call per clue, no backtracking
//	session.CDP       — exact dynamic programming over clue levels
//	session.BABAbTree — branch-and-bound accelerated by a per-source AB-tree
//	session.BABPbTree — branch-and-bound accelerated by a pivot-partitioned
//	                    PB-tree built over a 2-hop distance label
//
// A Session owns the Graph and every cache built against it:
//
//	g, err := core.BuildGraph(vertices, edges)
//	sess, err := session.NewSession(g, session.WithMaxIterations(50_000))
//	q, err := clue.NewQuery(sourceID, clues)
//	result, err := sess.Query(ctx, q, session.BABPbTree)
//
// Subpackages, leaves first: core (graph, vertices, keywords), dijkstra
// (shortest paths with memoization), clue (clue/query types), abtree and
// hublabel/pbtree (the two accelerating indices), findnext (the three
// interchangeable backends), trace (step-by-step search inspection),
// solver (GCS/CDP/BAB), crserr (error kinds), diagnostics (advisory
// connectivity and path validation), and session (the entry point above).
package croute
