// Package profile defines the persisted per-child record and the storage port.
package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/sightdrill/internal/catalog"
	"github.com/verte-zerg/sightdrill/internal/mastery"
)

var (
	ErrNotFound    = errors.New("profile not found")
	ErrInvalidName = errors.New("invalid profile name")
)

const (
	// DefaultPreviewMs is how long the spelling word stays visible.
	DefaultPreviewMs = 3000
	// PointsPerCorrect is added to the session score for each correct answer.
	PointsPerCorrect = 10

	maxNameRunes = 40
)

// PreviewChoices are the preview durations offered in the settings screen.
var PreviewChoices = []int{1000, 3000, 5000}

// Record is everything persisted for one profile.
type Record struct {
	Name         string
	EnabledLists []string
	History      mastery.History
	Session      SessionAggregate
	Mode         Mode
	PreviewMs    int
	Policy       mastery.Policy
	UpdatedAt    time.Time
}

// New returns a fresh record for name with default settings.
func New(name string) Record {
	return Normalize(Record{Name: name})
}

// Normalize coerces each missing or invalid field to its default instead of rejecting the record.
// Persisted word status is kept as is; it is never re-derived from the streak.
func Normalize(rec Record) Record {
	out := rec
	out.Name = strings.TrimSpace(rec.Name)

	lists := make([]string, 0, len(rec.EnabledLists))
	for _, id := range rec.EnabledLists {
		if id = strings.TrimSpace(id); id != "" {
			lists = append(lists, id)
		}
	}
	if len(lists) == 0 {
		lists = []string{catalog.DefaultListID}
	}
	out.EnabledLists = lists

	history := make(mastery.History, len(rec.History))
	for word, wr := range rec.History {
		if word == "" {
			continue
		}
		history[word] = normalizeWord(wr)
	}
	out.History = history

	out.Session = SessionAggregate{Score: nonNegative(rec.Session.Score), Streak: nonNegative(rec.Session.Streak)}
	if !rec.Mode.IsValid() {
		out.Mode = ModeFlashcard
	}
	if rec.PreviewMs <= 0 {
		out.PreviewMs = DefaultPreviewMs
	}
	if !rec.Policy.IsValid() {
		out.Policy = mastery.CurrentTargets
	}
	return out
}

func normalizeWord(wr mastery.WordRecord) mastery.WordRecord {
	wr.Correct = nonNegative(wr.Correct)
	wr.Incorrect = nonNegative(wr.Incorrect)
	wr.Streak = nonNegative(wr.Streak)
	if !wr.Status.IsValid() {
		wr.Status = mastery.Learning
	}
	return wr
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// CleanName trims name and checks it is usable as a profile key.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > maxNameRunes {
		return "", fmt.Errorf("%w: name must be at most %d characters", ErrInvalidName, maxNameRunes)
	}
	return name, nil
}

// ResetProgress clears word history and the session aggregate, keeping settings.
func (r Record) ResetProgress() Record {
	r.History = mastery.History{}
	r.Session = SessionAggregate{}
	return r
}

// SeenCount returns the number of words with at least one recorded answer.
func (r Record) SeenCount() int {
	return len(r.History)
}
