package filestore

import (
	"fmt"
	"sort"
	"time"

	"github.com/verte-zerg/sightdrill/internal/mastery"
	"github.com/verte-zerg/sightdrill/internal/profile"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Profiles []profileSchema `toml:"profiles"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported profiles schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func (s fileSchema) indexOf(name string) int {
	for i := range s.Profiles {
		if s.Profiles[i].Name == name {
			return i
		}
	}
	return -1
}

type profileSchema struct {
	Name         string       `toml:"name"`
	EnabledLists []string     `toml:"enabled_lists"`
	Score        int          `toml:"score"`
	Streak       int          `toml:"streak"`
	Mode         string       `toml:"mode"`
	PreviewMs    int          `toml:"preview_ms"`
	Policy       string       `toml:"policy"`
	UpdatedAt    string       `toml:"updated_at"`
	Words        []wordSchema `toml:"words,omitempty"`
}

type wordSchema struct {
	Word      string `toml:"word"`
	Correct   int    `toml:"correct"`
	Incorrect int    `toml:"incorrect"`
	Streak    int    `toml:"streak"`
	Status    string `toml:"status"`
}

func toProfileSchema(rec profile.Record) profileSchema {
	words := make([]wordSchema, 0, len(rec.History))
	for word, wr := range rec.History {
		words = append(words, wordSchema{
			Word:      word,
			Correct:   wr.Correct,
			Incorrect: wr.Incorrect,
			Streak:    wr.Streak,
			Status:    wr.Status.String(),
		})
	}
	sort.Slice(words, func(i, j int) bool { return words[i].Word < words[j].Word })

	return profileSchema{
		Name:         rec.Name,
		EnabledLists: append([]string(nil), rec.EnabledLists...),
		Score:        rec.Session.Score,
		Streak:       rec.Session.Streak,
		Mode:         string(rec.Mode),
		PreviewMs:    rec.PreviewMs,
		Policy:       rec.Policy.String(),
		UpdatedAt:    formatTime(rec.UpdatedAt),
		Words:        words,
	}
}

func fromProfileSchema(schema profileSchema) profile.Record {
	history := make(mastery.History, len(schema.Words))
	for _, w := range schema.Words {
		wr := mastery.WordRecord{Correct: w.Correct, Incorrect: w.Incorrect, Streak: w.Streak}
		if st, err := mastery.ParseStatus(w.Status); err == nil {
			wr.Status = st
		}
		history[w.Word] = wr
	}

	rec := profile.Record{
		Name:         schema.Name,
		EnabledLists: schema.EnabledLists,
		History:      history,
		Session:      profile.SessionAggregate{Score: schema.Score, Streak: schema.Streak},
		Mode:         profile.Mode(schema.Mode),
		PreviewMs:    schema.PreviewMs,
		UpdatedAt:    parseTime(schema.UpdatedAt),
	}
	if p, err := mastery.ParsePolicy(schema.Policy); err == nil {
		rec.Policy = p
	}
	return profile.Normalize(rec)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
