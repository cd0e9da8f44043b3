package core

import (
	"strings"
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// Vocabulary assigns a dense, incrementing bit position to each distinct
// case-folded keyword seen while a Graph is being built. It is shared by
// every KeywordSet produced from the same Graph, so unioning two keyword
// sets (as AB-tree and PB-tree nodes do for subtreeKeywords) is a single
// bitset.Union call rather than a map merge.
//
// A Vocabulary is write-once during BuildGraph and read-only afterwards,
// mirroring the Graph it belongs to.
type Vocabulary struct {
	mu    sync.RWMutex
	index map[string]uint
	words []string
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{index: make(map[string]uint)}
}

// intern returns the bit position for word, assigning a new one if needed.
// word is case-folded by the caller (see KeywordSet.Add).
func (v *Vocabulary) intern(word string) uint {
	v.mu.Lock()
	defer v.mu.Unlock()

	if pos, ok := v.index[word]; ok {
		return pos
	}
	pos := uint(len(v.words))
	v.index[word] = pos
	v.words = append(v.words, word)
	return pos
}

// lookup returns the bit position for word without interning it.
func (v *Vocabulary) lookup(word string) (uint, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	pos, ok := v.index[word]
	return pos, ok
}

// word returns the keyword interned at bit position pos.
func (v *Vocabulary) word(pos uint) string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.words[pos]
}

// KeywordSet is a case-folded set of keywords backed by a bitset over a
// shared Vocabulary. The zero value is not usable; construct with
// EmptyKeywordSet.
type KeywordSet struct {
	vocab *Vocabulary
	bits  *bitset.BitSet
}

// EmptyKeywordSet returns a new, empty KeywordSet bound to vocab.
func EmptyKeywordSet(vocab *Vocabulary) *KeywordSet {
	return &KeywordSet{vocab: vocab, bits: bitset.New(0)}
}

// Add inserts word into the set, case-folding it first.
func (k *KeywordSet) Add(word string) {
	pos := k.vocab.intern(strings.ToLower(word))
	k.bits.Set(pos)
}

// Has reports whether word (case-folded) is a member of the set. A word
// never seen by the Vocabulary is trivially absent.
func (k *KeywordSet) Has(word string) bool {
	pos, ok := k.vocab.lookup(strings.ToLower(word))
	if !ok {
		return false
	}
	return k.bits.Test(pos)
}

// Vocabulary returns the shared vocabulary k is backed by.
func (k *KeywordSet) Vocabulary() *Vocabulary { return k.vocab }

// Empty reports whether the keyword set has no members.
func (k *KeywordSet) Empty() bool {
	return k.bits.None()
}

// Clone returns an independent copy of k sharing the same vocabulary.
func (k *KeywordSet) Clone() *KeywordSet {
	return &KeywordSet{vocab: k.vocab, bits: k.bits.Clone()}
}

// UnionWith mutates k in place to be the union of k and other. Both must
// share the same Vocabulary. This is the primitive AB-tree and PB-tree
// nodes use to recompute subtreeKeywords after a split.
func (k *KeywordSet) UnionWith(other *KeywordSet) {
	k.bits.InPlaceUnion(other.bits)
}

// Union returns a new KeywordSet holding the union of a and b without
// mutating either.
func Union(a, b *KeywordSet) *KeywordSet {
	out := &KeywordSet{vocab: a.vocab, bits: a.bits.Clone()}
	out.bits.InPlaceUnion(b.bits)
	return out
}

// Words returns the set's members as lowercase strings, in vocabulary
// insertion order. Intended for diagnostics and trace formatting, not for
// hot-path queries (use Has instead).
func (k *KeywordSet) Words() []string {
	out := make([]string, 0, k.bits.Count())
	for i, e := k.bits.NextSet(0); e; i, e = k.bits.NextSet(i + 1) {
		out = append(out, k.vocab.word(i))
	}
	return out
}
