// Package bptree is the shared B+-tree engine behind both the AB-tree
// (spec §4.2) and the PB-tree (spec §4.4): "Same shape as AB-tree node" is
// spec language for the PB-tree, so the engine lives here once and the two
// public packages (abtree, pbtree) are thin construction wrappers that
// decide what "distance" means — distance-from-source for one,
// distance-from-pivot for the other.
//
// A Tree is built once, by bulk-loading a distance-sorted entry slice, and
// is read-only afterward: no Insert/Delete, because the reference rebuilds
// the whole structure whenever its source/pivot's distances change rather
// than maintaining it incrementally.
package bptree

import (
	"errors"
	"sort"

	"github.com/clueway/croute/core"
)

// ErrInvalidOrder indicates an order < 2 was requested.
var ErrInvalidOrder = errors.New("bptree: order must be >= 2")

// Entry is a single (distance, vertex, keywords) record stored in a leaf.
type Entry struct {
	Distance float64
	Vertex   uint64
	Keywords *core.KeywordSet
}

// node is either a leaf (entries populated, children nil) or an internal
// routing node (keys + children populated, entries nil). Every node —
// leaf or internal — carries subtreeKeywords, the union of every entry's
// keyword set in its subtree, enabling the keyword-based subtree pruning
// that both pred/succ and range rely on.
type node struct {
	leaf            bool
	entries         []Entry
	keys            []float64 // len(children)-1 routing keys, ascending
	children        []*node
	subtreeKeywords *core.KeywordSet
	next            *node // leaf chain; nil on internal nodes and on the last leaf
}

// Tree is a read-only, bulk-loaded B+-tree keyed by float64 distance.
type Tree struct {
	root  *node
	head  *node // leftmost leaf, entry point for range scans
	order int
	vocab *core.Vocabulary
}

// Build bulk-loads entries (which need not be pre-sorted) into a new Tree
// of the given order. An empty entries slice yields a Tree with a single
// empty leaf as root, so queries against it simply find nothing.
func Build(vocab *core.Vocabulary, entries []Entry, order int) (*Tree, error) {
	if order < 2 {
		return nil, ErrInvalidOrder
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Distance != sorted[j].Distance {
			return sorted[i].Distance < sorted[j].Distance
		}
		return sorted[i].Vertex < sorted[j].Vertex
	})

	t := &Tree{order: order, vocab: vocab}

	leaves := buildLeaves(vocab, sorted, order)
	if len(leaves) == 0 {
		empty := &node{leaf: true, subtreeKeywords: core.EmptyKeywordSet(vocab)}
		t.root = empty
		t.head = empty
		return t, nil
	}

	// Link the leaf chain.
	for i := 0; i+1 < len(leaves); i++ {
		leaves[i].next = leaves[i+1]
	}
	t.head = leaves[0]

	level := make([]*node, len(leaves))
	copy(level, leaves)
	for len(level) > 1 {
		level = buildInternalLevel(vocab, level, order)
	}
	t.root = level[0]

	return t, nil
}

// chunkSizes splits n items into balanced groups of at most max items each,
// with every group (except possibly none, since n>0 here) holding at least
// ceil(max/2) items when n is large enough to need more than one group —
// the standard B+-tree bulk-load balancing rule.
func chunkSizes(n, max int) []int {
	if n == 0 {
		return nil
	}
	if n <= max {
		return []int{n}
	}
	numChunks := (n + max - 1) / max
	base := n / numChunks
	rem := n % numChunks
	sizes := make([]int, numChunks)
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes
}

func buildLeaves(vocab *core.Vocabulary, sorted []Entry, order int) []*node {
	sizes := chunkSizes(len(sorted), order)
	leaves := make([]*node, 0, len(sizes))
	offset := 0
	for _, sz := range sizes {
		chunk := sorted[offset : offset+sz]
		offset += sz

		union := core.EmptyKeywordSet(vocab)
		for _, e := range chunk {
			union.UnionWith(e.Keywords)
		}
		entries := make([]Entry, sz)
		copy(entries, chunk)
		leaves = append(leaves, &node{leaf: true, entries: entries, subtreeKeywords: union})
	}
	return leaves
}

func buildInternalLevel(vocab *core.Vocabulary, children []*node, order int) []*node {
	sizes := chunkSizes(len(children), order)
	level := make([]*node, 0, len(sizes))
	offset := 0
	for _, sz := range sizes {
		group := children[offset : offset+sz]
		offset += sz

		union := core.EmptyKeywordSet(vocab)
		keys := make([]float64, 0, sz-1)
		for i, child := range group {
			union.UnionWith(child.subtreeKeywords)
			if i > 0 {
				keys = append(keys, minDistance(child))
			}
		}
		kids := make([]*node, sz)
		copy(kids, group)
		level = append(level, &node{keys: keys, children: kids, subtreeKeywords: union})
	}
	return level
}

// minDistance returns the smallest distance key reachable under n, used as
// the routing key separating n from its left sibling.
func minDistance(n *node) float64 {
	for !n.leaf {
		n = n.children[0]
	}
	if len(n.entries) == 0 {
		return 0
	}
	return n.entries[0].Distance
}

// childFor returns the index of the child whose range [k_{i-1}, k_i)
// contains x, given ascending routing keys.
func childFor(keys []float64, x float64) int {
	return sort.Search(len(keys), func(i int) bool { return keys[i] > x })
}
