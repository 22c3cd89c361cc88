// Package generator draws the next word to practice.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/sightdrill/internal/mastery"
)

// Rand is the random source used for selection. *rand.Rand implements it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Generator selects words under a mastery policy.
type Generator struct {
	rnd Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithRand returns a Generator drawing from rnd.
func NewWithRand(rnd Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Next picks the next word from pool. ok is false only when pool is empty.
//
// AllTargets draws uniformly from the pool. CurrentTargets prefers the mastered set
// with probability mastery.MasteredShare and the learning set otherwise; an empty
// preferred set falls back to the whole pool. Every call draws afresh, so the same
// word may come up twice in a row.
func (g *Generator) Next(policy mastery.Policy, pool []string, history mastery.History) (word string, ok bool) {
	if len(pool) == 0 {
		return "", false
	}
	if policy == mastery.AllTargets {
		return g.pick(pool), true
	}

	mastered, learning := mastery.Classify(pool, history)
	preferred := learning
	if g.rnd.Float64() < mastery.MasteredShare {
		preferred = mastered
	}
	if len(preferred) > 0 {
		return g.pick(preferred), true
	}
	return g.pick(pool), true
}

// Scramble returns the letters of word in random order for spelling tiles.
// For words with at least two distinct letters the result differs from word.
func (g *Generator) Scramble(word string) []rune {
	runes := []rune(word)
	if !hasDistinct(runes) {
		return runes
	}
	out := make([]rune, len(runes))
	for {
		copy(out, runes)
		for i := len(out) - 1; i > 0; i-- {
			j := g.rnd.Intn(i + 1)
			out[i], out[j] = out[j], out[i]
		}
		if string(out) != word {
			return out
		}
	}
}

func (g *Generator) pick(words []string) string {
	return words[g.rnd.Intn(len(words))]
}

func hasDistinct(runes []rune) bool {
	for i := 1; i < len(runes); i++ {
		if runes[i] != runes[0] {
			return true
		}
	}
	return false
}
