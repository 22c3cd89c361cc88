package profile

import (
	"context"
	"time"
)

// Store persists profile records. Writes are last-write-wins.
type Store interface {
	// Load returns ErrNotFound when no profile has that name.
	Load(ctx context.Context, name string) (Record, error)
	Save(ctx context.Context, rec Record) error
	// List returns profile names sorted alphabetically.
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// Answer is one recorded answer event.
type Answer struct {
	SessionID string
	Word      string
	Correct   bool
	Mode      Mode
	At        time.Time
}

// SessionSummary aggregates the answers of one drill session.
type SessionSummary struct {
	SessionID string
	StartedAt time.Time
	EndedAt   time.Time
	Correct   int
	Incorrect int
}

// AnswerLog is implemented by stores that keep every answer event.
type AnswerLog interface {
	RecordAnswer(ctx context.Context, profile string, ev Answer) error
	// ListSessions returns sessions ordered by start time, oldest first.
	ListSessions(ctx context.Context, profile string) ([]SessionSummary, error)
}
