package bptree

import "github.com/clueway/croute/core"

// InOrder returns every entry in the tree via the leaf chain, in ascending
// distance order. Intended for tests asserting the sorted-leaf-chain
// invariant (spec §8), not for hot-path queries.
func (t *Tree) InOrder() []Entry {
	var out []Entry
	for n := t.head; n != nil; n = n.next {
		out = append(out, n.entries...)
	}
	return out
}

// CheckSubtreeKeywords recursively verifies that every node's
// subtreeKeywords equals the union of its descendants' entry keywords
// (spec §8). It returns the first mismatch found, or nil if the tree is
// consistent.
func (t *Tree) CheckSubtreeKeywords() error {
	return checkNode(t.root)
}

func checkNode(n *node) error {
	if n == nil {
		return nil
	}
	if n.leaf {
		expect := emptyLike(n.subtreeKeywords)
		for _, e := range n.entries {
			expect.UnionWith(e.Keywords)
		}
		if !sameWords(expect, n.subtreeKeywords) {
			return errMismatch
		}
		return nil
	}
	expect := emptyLike(n.subtreeKeywords)
	for _, c := range n.children {
		if err := checkNode(c); err != nil {
			return err
		}
		expect.UnionWith(c.subtreeKeywords)
	}
	if !sameWords(expect, n.subtreeKeywords) {
		return errMismatch
	}
	return nil
}

func emptyLike(k *core.KeywordSet) *core.KeywordSet {
	return core.EmptyKeywordSet(k.Vocabulary())
}

func sameWords(a, b *core.KeywordSet) bool {
	aw, bw := a.Words(), b.Words()
	if len(aw) != len(bw) {
		return false
	}
	seen := make(map[string]bool, len(aw))
	for _, w := range aw {
		seen[w] = true
	}
	for _, w := range bw {
		if !seen[w] {
			return false
		}
	}
	return true
}

var errMismatch = mismatchErr{}

type mismatchErr struct{}

func (mismatchErr) Error() string { return "bptree: subtreeKeywords mismatch" }
