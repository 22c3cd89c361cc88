package store

import (
	"context"
	"time"

	"github.com/verte-zerg/sightdrill/internal/profile"
)

// RecordAnswer appends one answer event for a profile.
func (s *Store) RecordAnswer(ctx context.Context, name string, ev profile.Answer) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	correct := 0
	if ev.Correct {
		correct = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO answers (profile, session_id, word, correct, mode, answered_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name,
		ev.SessionID,
		ev.Word,
		correct,
		string(ev.Mode),
		at.UTC().Format(timeLayout),
	)
	return err
}

// ListSessions aggregates a profile's answers per drill session, oldest first.
func (s *Store) ListSessions(ctx context.Context, name string) ([]profile.SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, MIN(answered_at) AS started_at, MAX(answered_at) AS ended_at,
			SUM(correct) AS correct, SUM(1 - correct) AS incorrect
		 FROM answers
		 WHERE profile = ?
		 GROUP BY session_id
		 ORDER BY started_at ASC`, name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []profile.SessionSummary
	for rows.Next() {
		var (
			agg       profile.SessionSummary
			startedAt string
			endedAt   string
		)
		if err := rows.Scan(&agg.SessionID, &startedAt, &endedAt, &agg.Correct, &agg.Incorrect); err != nil {
			return nil, err
		}
		if agg.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, err
		}
		if agg.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
