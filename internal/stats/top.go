package stats

import (
	"sort"

	"github.com/verte-zerg/sightdrill/internal/mastery"
)

// TopWordsByPractice returns the n most answered words.
func TopWordsByPractice(history mastery.History, n int) []string {
	if n <= 0 || len(history) == 0 {
		return nil
	}
	type item struct {
		word  string
		total int
	}
	items := make([]item, 0, len(history))
	for word, wr := range history {
		items = append(items, item{word: word, total: wr.Attempts()})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].total == items[j].total {
			return items[i].word < items[j].word
		}
		return items[i].total > items[j].total
	})
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, items[i].word)
	}
	return out
}
