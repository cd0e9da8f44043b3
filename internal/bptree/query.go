package bptree

import "github.com/clueway/croute/trace"

// Excluded is the per-level exclusion set BAB and findNext pass down: a
// vertex id present in it is never returned by Pred/Succ.
type Excluded map[uint64]bool

// Pred returns the entry with the largest distance <= bound whose keyword
// set contains w and whose vertex is not excluded, or (Entry{}, false) if
// none exists. It implements spec §4.2's predecessor query, including the
// keyword-based subtree pruning at every node. idx, if non-nil, records
// every subtree-prune and leaf-scan sub-step (spec §4.9); pass nil to skip
// tracing.
func (t *Tree) Pred(bound float64, w string, excluded Excluded, idx *trace.IndexBuffer) (Entry, bool) {
	return predNode(t.root, bound, w, excluded, idx)
}

// Succ returns the entry with the largest distance <= bound matching w —
// the reference's "successor" is, per spec §9's open-question note, the
// same query as Pred (nearest-from-below to the bound, not the
// conventional nearest-from-above), because the clue interval caps at the
// bound. Implementers are told to follow this reference behavior rather
// than the conventional one.
func (t *Tree) Succ(bound float64, w string, excluded Excluded, idx *trace.IndexBuffer) (Entry, bool) {
	return predNode(t.root, bound, w, excluded, idx)
}

func predNode(n *node, bound float64, w string, excluded Excluded, idx *trace.IndexBuffer) (Entry, bool) {
	if n == nil {
		return Entry{}, false
	}
	if !n.subtreeKeywords.Has(w) {
		idx.Append(trace.SubtreePrune, "subtree lacks keyword "+w)
		return Entry{}, false
	}

	if n.leaf {
		idx.Append(trace.LeafScan, "scanning leaf")
		for i := len(n.entries) - 1; i >= 0; i-- {
			e := n.entries[i]
			if e.Distance > bound {
				continue
			}
			if !e.Keywords.Has(w) {
				continue
			}
			if excluded[e.Vertex] {
				continue
			}
			return e, true
		}
		return Entry{}, false
	}

	childIdx := childFor(n.keys, bound)
	for i := childIdx; i >= 0; i-- {
		if e, ok := predNode(n.children[i], bound, w, excluded, idx); ok {
			return e, true
		}
	}
	return Entry{}, false
}

// RangeFunc visits, in ascending distance order, every entry with distance
// in [minD, maxD] and keyword w, stopping early if visit returns false.
// Exposed as a callback rather than a materialized slice so that PB-tree
// verification (spec §4.4) can short-circuit mid-scan once it has found a
// candidate it is willing to accept (spec §9, "Iterators / ranges").
func (t *Tree) RangeFunc(minD, maxD float64, w string, visit func(Entry) bool) {
	leaf := t.leafAtOrAfter(minD)
	for leaf != nil {
		if len(leaf.entries) > 0 && leaf.entries[0].Distance > maxD {
			return
		}
		if leaf.subtreeKeywords.Has(w) {
			for _, e := range leaf.entries {
				if e.Distance < minD {
					continue
				}
				if e.Distance > maxD {
					return
				}
				if e.Keywords.Has(w) {
					if !visit(e) {
						return
					}
				}
			}
		}
		leaf = leaf.next
	}
}

// Range collects RangeFunc's results into a slice.
func (t *Tree) Range(minD, maxD float64, w string) []Entry {
	var out []Entry
	t.RangeFunc(minD, maxD, w, func(e Entry) bool {
		out = append(out, e)
		return true
	})
	if out == nil {
		out = []Entry{}
	}
	return out
}

// leafAtOrAfter descends to the leaf that would contain minD, ignoring
// keywords, so Range can start its forward scan close to the target
// instead of always walking from the head of the chain.
func (t *Tree) leafAtOrAfter(minD float64) *node {
	n := t.root
	for !n.leaf {
		idx := childFor(n.keys, minD)
		n = n.children[idx]
	}
	// n may end slightly before minD (its own entries all < minD); the
	// caller's loop condition over entries already tolerates that by
	// skipping entries < minD, but walking forward one extra leaf when
	// this one is entirely behind minD avoids an always-empty first pass.
	for n != nil && len(n.entries) > 0 && n.entries[len(n.entries)-1].Distance < minD {
		n = n.next
	}
	return n
}
