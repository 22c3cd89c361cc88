package mastery

// Threshold is the per-word streak that promotes a word to Mastered.
const Threshold = 5

// WordRecord is the performance state of one word.
type WordRecord struct {
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
	Streak    int    `json:"streak"`
	Status    Status `json:"status"`
}

// NewRecord returns the record of a word that has never been answered.
func NewRecord() WordRecord {
	return WordRecord{Status: Learning}
}

// Attempts returns the total number of recorded answers.
func (r WordRecord) Attempts() int {
	return r.Correct + r.Incorrect
}

// Accuracy returns the share of correct answers, or 0 when the word was never answered.
func (r WordRecord) Accuracy() float64 {
	total := r.Attempts()
	if total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(total)
}

// IsMastered reports whether the record is in the Mastered state.
func (r WordRecord) IsMastered() bool {
	return r.Status == Mastered
}

// History maps a word, matched case-sensitively, to its record.
type History map[string]WordRecord

// Lookup returns the stored record for word and whether one exists.
func (h History) Lookup(word string) (WordRecord, bool) {
	rec, ok := h[word]
	return rec, ok
}

// Get returns the stored record for word, or NewRecord when absent.
func (h History) Get(word string) WordRecord {
	if rec, ok := h.Lookup(word); ok {
		return rec
	}
	return NewRecord()
}

// With returns a copy of h with word set to rec. h itself is not modified.
func (h History) With(word string, rec WordRecord) History {
	out := make(History, len(h)+1)
	for k, v := range h {
		out[k] = v
	}
	out[word] = rec
	return out
}

// Clone returns a shallow copy of h. WordRecord has no reference fields, so the copy is independent.
func (h History) Clone() History {
	out := make(History, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// MasteredCount returns the number of mastered words in h.
func (h History) MasteredCount() int {
	n := 0
	for _, rec := range h {
		if rec.IsMastered() {
			n++
		}
	}
	return n
}

// RecordOutcome returns the record for word after one answer.
//
// A correct answer extends the streak and promotes the word once the streak reaches
// Threshold. A miss resets the streak and demotes the word unconditionally.
func RecordOutcome(word string, correct bool, history History) WordRecord {
	rec := history.Get(word)
	if correct {
		rec.Correct++
		rec.Streak++
		if rec.Streak >= Threshold {
			rec.Status = Mastered
		}
		return rec
	}
	rec.Incorrect++
	rec.Streak = 0
	rec.Status = Learning
	return rec
}

// Classify partitions pool into mastered and learning words, keeping pool order.
// Words without a record are learning.
func Classify(pool []string, history History) (mastered, learning []string) {
	for _, word := range pool {
		if rec, ok := history.Lookup(word); ok && rec.Status == Mastered {
			mastered = append(mastered, word)
			continue
		}
		learning = append(learning, word)
	}
	return mastered, learning
}
