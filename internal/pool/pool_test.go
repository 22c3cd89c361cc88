package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/sightdrill/internal/catalog"
)

func TestBuildPoolUnionsLists(t *testing.T) {
	t.Parallel()

	cat := catalog.Builtin()

	k := BuildPool(cat, []string{"sight_words_k"})
	assert.True(t, k.Contains("a"))
	assert.False(t, k.Contains("dino"))

	both := BuildPool(cat, []string{"sight_words_k", "dinosaurs"})
	assert.True(t, both.Contains("a"))
	assert.True(t, both.Contains("dino"))
}

func TestBuildPoolDedupes(t *testing.T) {
	t.Parallel()

	cat := catalog.Builtin()
	p := BuildPool(cat, []string{"sight_words_k", "sight_words_1", "sight_words_k"})

	seen := map[string]int{}
	for _, w := range p {
		seen[w]++
	}
	for w, n := range seen {
		assert.Equal(t, 1, n, "word %q duplicated", w)
	}
	// "has", "him", "his", "of", "an" are in both grade lists.
	k, _ := cat.Get("sight_words_k")
	first, _ := cat.Get("sight_words_1")
	assert.Less(t, p.Len(), len(k.Words)+len(first.Words))
	assert.True(t, p.Contains("has"))
}

func TestBuildPoolMembersComeFromReferencedLists(t *testing.T) {
	t.Parallel()

	cat := catalog.Builtin()
	ids := []string{"dinosaurs", "sight_words_1"}
	union := map[string]bool{}
	for _, id := range ids {
		cat.Words(id, func(w string) { union[w] = true })
	}
	for _, w := range BuildPool(cat, ids) {
		assert.True(t, union[w], "unexpected word %q", w)
	}
}

func TestBuildPoolIgnoresUnknownIDs(t *testing.T) {
	t.Parallel()

	cat := catalog.Builtin()
	assert.Empty(t, BuildPool(cat, []string{"retired_list"}))
	assert.Empty(t, BuildPool(cat, nil))

	p := BuildPool(cat, []string{"retired_list", "dinosaurs"})
	assert.Equal(t, BuildPool(cat, []string{"dinosaurs"}), p)
}

func TestSelectionToggle(t *testing.T) {
	t.Parallel()

	sel := NewSelection([]string{"sight_words_k"}, catalog.DefaultListID)

	sel, err := sel.Toggle("dinosaurs")
	require.NoError(t, err)
	assert.Equal(t, []string{"sight_words_k", "dinosaurs"}, sel.IDs())

	sel, err = sel.Toggle("sight_words_k")
	require.NoError(t, err)
	assert.Equal(t, []string{"dinosaurs"}, sel.IDs())

	same, err := sel.Toggle("dinosaurs")
	assert.ErrorIs(t, err, ErrLastList)
	assert.Equal(t, []string{"dinosaurs"}, same.IDs())
}

func TestNewSelectionFallsBack(t *testing.T) {
	t.Parallel()

	sel := NewSelection([]string{" ", ""}, catalog.DefaultListID)
	assert.Equal(t, []string{catalog.DefaultListID}, sel.IDs())

	sel = NewSelection([]string{"a", "b", "a"}, catalog.DefaultListID)
	assert.Equal(t, []string{"a", "b"}, sel.IDs())
}

func TestSelectionPrune(t *testing.T) {
	t.Parallel()

	cat := catalog.Builtin()
	sel := NewSelection([]string{"retired", "dinosaurs"}, catalog.DefaultListID)
	assert.Equal(t, []string{"dinosaurs"}, sel.Prune(cat.Has).IDs())

	onlyUnknown := NewSelection([]string{"retired"}, catalog.DefaultListID)
	assert.Equal(t, []string{"retired"}, onlyUnknown.Prune(cat.Has).IDs())
}
