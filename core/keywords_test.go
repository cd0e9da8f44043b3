package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clueway/croute/core"
)

func TestKeywordSet_AddHasCaseFold(t *testing.T) {
	vocab := core.NewVocabulary()
	ks := core.EmptyKeywordSet(vocab)
	ks.Add("Cafe")
	assert.True(t, ks.Has("cafe"))
	assert.True(t, ks.Has("CAFE"))
	assert.False(t, ks.Has("park"))
}

func TestKeywordSet_Empty(t *testing.T) {
	vocab := core.NewVocabulary()
	ks := core.EmptyKeywordSet(vocab)
	assert.True(t, ks.Empty())
	ks.Add("x")
	assert.False(t, ks.Empty())
}

func TestKeywordSet_UnionWith(t *testing.T) {
	vocab := core.NewVocabulary()
	a := core.EmptyKeywordSet(vocab)
	a.Add("cafe")
	b := core.EmptyKeywordSet(vocab)
	b.Add("park")

	a.UnionWith(b)
	assert.True(t, a.Has("cafe"))
	assert.True(t, a.Has("park"))
	// b is untouched.
	assert.False(t, b.Has("cafe"))
}

func TestUnion_DoesNotMutateInputs(t *testing.T) {
	vocab := core.NewVocabulary()
	a := core.EmptyKeywordSet(vocab)
	a.Add("cafe")
	b := core.EmptyKeywordSet(vocab)
	b.Add("park")

	u := core.Union(a, b)
	assert.True(t, u.Has("cafe"))
	assert.True(t, u.Has("park"))
	assert.False(t, a.Has("park"))
	assert.False(t, b.Has("cafe"))
}

func TestKeywordSet_Clone(t *testing.T) {
	vocab := core.NewVocabulary()
	a := core.EmptyKeywordSet(vocab)
	a.Add("cafe")
	clone := a.Clone()
	clone.Add("park")
	assert.False(t, a.Has("park"))
	assert.True(t, clone.Has("cafe"))
}

func TestKeywordSet_Words(t *testing.T) {
	vocab := core.NewVocabulary()
	a := core.EmptyKeywordSet(vocab)
	a.Add("cafe")
	a.Add("park")
	assert.ElementsMatch(t, []string{"cafe", "park"}, a.Words())
}
