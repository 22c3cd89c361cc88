// Package pool derives the set of candidate words from the enabled word lists.
package pool

import (
	"sort"
)

// Source yields the words of a list. It reports false for unknown ids.
// *catalog.Catalog implements it.
type Source interface {
	Words(id string, fn func(word string)) bool
}

// Pool is a sorted set of distinct words.
type Pool []string

// BuildPool unions the words of every known id in ids. Unknown ids contribute nothing.
// Zero ids, or only unknown ones, give an empty pool.
func BuildPool(src Source, ids []string) Pool {
	set := map[string]struct{}{}
	for _, id := range ids {
		src.Words(id, func(word string) {
			set[word] = struct{}{}
		})
	}
	out := make(Pool, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether word is in the pool.
func (p Pool) Contains(word string) bool {
	i := sort.SearchStrings(p, word)
	return i < len(p) && p[i] == word
}

// Len returns the number of words.
func (p Pool) Len() int {
	return len(p)
}
