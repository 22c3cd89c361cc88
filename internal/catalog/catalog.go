// Package catalog holds the read-only mapping from list id to word list.
package catalog

import (
	"errors"
	"slices"
	"sort"
)

// ErrDuplicateList is returned when one source defines the same list id twice.
var ErrDuplicateList = errors.New("catalog: duplicate list id")

// List is a named collection of distinct lowercase words.
type List struct {
	ID    string
	Name  string
	Words []string
}

// Catalog is built once at startup and never mutated afterwards.
type Catalog struct {
	lists map[string]List
	order []string
}

// New builds a catalog from lists. A later list replaces an earlier one with the same id
// but keeps its position.
func New(lists ...List) *Catalog {
	c := &Catalog{lists: make(map[string]List, len(lists))}
	for _, l := range lists {
		if _, ok := c.lists[l.ID]; !ok {
			c.order = append(c.order, l.ID)
		}
		c.lists[l.ID] = List{ID: l.ID, Name: l.Name, Words: slices.Clone(l.Words)}
	}
	return c
}

// Builtin returns the catalog of lists shipped with the app.
func Builtin() *Catalog {
	return New(builtinLists...)
}

// Get returns the list for id. The returned Words slice is a copy.
func (c *Catalog) Get(id string) (List, bool) {
	l, ok := c.lists[id]
	if !ok {
		return List{}, false
	}
	l.Words = slices.Clone(l.Words)
	return l, true
}

// Has reports whether id names a list.
func (c *Catalog) Has(id string) bool {
	_, ok := c.lists[id]
	return ok
}

// IDs returns list ids in catalog order: built-ins first, then custom lists.
func (c *Catalog) IDs() []string {
	return slices.Clone(c.order)
}

// Lists returns every list in catalog order.
func (c *Catalog) Lists() []List {
	out := make([]List, 0, len(c.order))
	for _, id := range c.order {
		l, _ := c.Get(id)
		out = append(out, l)
	}
	return out
}

// Words calls fn for every word of list id without copying. It reports whether the list exists.
func (c *Catalog) Words(id string, fn func(word string)) bool {
	l, ok := c.lists[id]
	if !ok {
		return false
	}
	for _, w := range l.Words {
		fn(w)
	}
	return true
}

func sortedKeys(m map[string]List) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
