package stats

import (
	"sort"

	"github.com/verte-zerg/sightdrill/internal/mastery"
)

// WordRow pairs a word with its record for reporting.
type WordRow struct {
	Word   string
	Record mastery.WordRecord
}

// SelectWeakWords returns up to top learning words with the lowest accuracy.
// Ties go to the word with more misses, then alphabetically.
func SelectWeakWords(history mastery.History, top int) []WordRow {
	candidates := make([]WordRow, 0, len(history))
	for word, wr := range history {
		if wr.Status == mastery.Mastered || wr.Attempts() == 0 {
			continue
		}
		candidates = append(candidates, WordRow{Word: word, Record: wr})
	}
	sort.Slice(candidates, func(i, j int) bool {
		ai := candidates[i].Record.Accuracy()
		aj := candidates[j].Record.Accuracy()
		if ai != aj {
			return ai < aj
		}
		if candidates[i].Record.Incorrect != candidates[j].Record.Incorrect {
			return candidates[i].Record.Incorrect > candidates[j].Record.Incorrect
		}
		return candidates[i].Word < candidates[j].Word
	})
	if top > 0 && top < len(candidates) {
		candidates = candidates[:top]
	}
	return candidates
}
