package generator

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/sightdrill/internal/mastery"
)

// scriptedRand returns queued coin values and indexes, then repeats the last ones.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (s *scriptedRand) Float64() float64 {
	v := s.floats[0]
	if len(s.floats) > 1 {
		s.floats = s.floats[1:]
	}
	return v
}

func (s *scriptedRand) Intn(n int) int {
	v := s.ints[0]
	if len(s.ints) > 1 {
		s.ints = s.ints[1:]
	}
	return v % n
}

func seeded(seed int64) *Generator {
	return NewWithRand(rand.New(rand.NewSource(seed)))
}

func TestNextEmptyPoolIsSentinel(t *testing.T) {
	t.Parallel()

	g := seeded(1)
	for _, policy := range []mastery.Policy{mastery.CurrentTargets, mastery.AllTargets} {
		word, ok := g.Next(policy, nil, mastery.History{"a": {Status: mastery.Mastered}})
		assert.False(t, ok)
		assert.Empty(t, word)
	}
}

func TestNextAllTargetsReachesEveryWord(t *testing.T) {
	t.Parallel()

	g := seeded(42)
	pool := []string{"a", "dog", "the", "you"}
	history := mastery.History{"a": {Status: mastery.Mastered, Streak: 5, Correct: 5}}

	seen := map[string]int{}
	for i := 0; i < 400; i++ {
		word, ok := g.Next(mastery.AllTargets, pool, history)
		require.True(t, ok)
		seen[word]++
	}
	got := make([]string, 0, len(seen))
	for w := range seen {
		got = append(got, w)
	}
	sort.Strings(got)
	assert.Equal(t, pool, got)
}

func TestNextCurrentTargetsPrefersLearning(t *testing.T) {
	t.Parallel()

	pool := []string{"a", "dog", "the"}
	history := mastery.History{"a": {Status: mastery.Mastered, Streak: 5, Correct: 5}}

	g := NewWithRand(&scriptedRand{floats: []float64{0.9}, ints: []int{1}})
	word, ok := g.Next(mastery.CurrentTargets, pool, history)
	require.True(t, ok)
	assert.Equal(t, "the", word, "learning set is [dog the], index 1")

	g = NewWithRand(&scriptedRand{floats: []float64{0.1}, ints: []int{0}})
	word, ok = g.Next(mastery.CurrentTargets, pool, history)
	require.True(t, ok)
	assert.Equal(t, "a", word)
}

func TestNextCurrentTargetsBoundaryCoin(t *testing.T) {
	t.Parallel()

	pool := []string{"a", "b"}
	history := mastery.History{"a": {Status: mastery.Mastered}}

	// A draw of exactly MasteredShare belongs to the learning side.
	g := NewWithRand(&scriptedRand{floats: []float64{mastery.MasteredShare}, ints: []int{0}})
	word, _ := g.Next(mastery.CurrentTargets, pool, history)
	assert.Equal(t, "b", word)
}

func TestNextCurrentTargetsFallsBackWhenPreferredEmpty(t *testing.T) {
	t.Parallel()

	pool := []string{"a", "b", "c"}
	allMastered := mastery.History{
		"a": {Status: mastery.Mastered},
		"b": {Status: mastery.Mastered},
		"c": {Status: mastery.Mastered},
	}

	// Learning preferred but empty.
	g := NewWithRand(&scriptedRand{floats: []float64{0.95}, ints: []int{2}})
	word, ok := g.Next(mastery.CurrentTargets, pool, allMastered)
	require.True(t, ok)
	assert.Equal(t, "c", word)

	// Mastered preferred but empty.
	g = NewWithRand(&scriptedRand{floats: []float64{0.05}, ints: []int{1}})
	word, ok = g.Next(mastery.CurrentTargets, pool, mastery.History{})
	require.True(t, ok)
	assert.Equal(t, "b", word)
}

func TestNextCurrentTargetsFullyMasteredNeverSentinel(t *testing.T) {
	t.Parallel()

	g := seeded(7)
	pool := []string{"go", "no", "so"}
	history := mastery.History{}
	for _, w := range pool {
		history[w] = mastery.WordRecord{Correct: 5, Streak: 5, Status: mastery.Mastered}
	}
	for i := 0; i < 200; i++ {
		word, ok := g.Next(mastery.CurrentTargets, pool, history)
		require.True(t, ok)
		assert.Contains(t, pool, word)
	}
}

func TestNextCurrentTargetsSplit(t *testing.T) {
	t.Parallel()

	g := seeded(2024)
	pool := []string{"m1", "m2", "l1", "l2"}
	history := mastery.History{
		"m1": {Status: mastery.Mastered},
		"m2": {Status: mastery.Mastered},
	}

	const trials = 10000
	masteredHits := 0
	for i := 0; i < trials; i++ {
		word, _ := g.Next(mastery.CurrentTargets, pool, history)
		if word == "m1" || word == "m2" {
			masteredHits++
		}
	}
	share := float64(masteredHits) / trials
	assert.InDelta(t, mastery.MasteredShare, share, 0.03)
}

func TestNextDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	g := seeded(3)
	pool := []string{"b", "a"}
	history := mastery.History{"a": {Status: mastery.Mastered}}
	for i := 0; i < 20; i++ {
		g.Next(mastery.CurrentTargets, pool, history)
	}
	assert.Equal(t, []string{"b", "a"}, pool)
	assert.Equal(t, mastery.History{"a": {Status: mastery.Mastered}}, history)
}

func TestScramble(t *testing.T) {
	t.Parallel()

	g := seeded(9)
	for _, word := range []string{"the", "said", "fossil"} {
		tiles := g.Scramble(word)
		assert.NotEqual(t, word, string(tiles))
		sortedTiles := []rune(string(tiles))
		sortedWord := []rune(word)
		sort.Slice(sortedTiles, func(i, j int) bool { return sortedTiles[i] < sortedTiles[j] })
		sort.Slice(sortedWord, func(i, j int) bool { return sortedWord[i] < sortedWord[j] })
		assert.Equal(t, string(sortedWord), string(sortedTiles))
	}
	assert.Equal(t, "a", string(g.Scramble("a")))
	assert.Equal(t, "ee", string(g.Scramble("ee")))
}
