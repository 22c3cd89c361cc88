// Package store handles SQLite persistence of profiles and answers.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/verte-zerg/sightdrill/internal/mastery"
	"github.com/verte-zerg/sightdrill/internal/profile"

	_ "modernc.org/sqlite" // SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// Fixed-width UTC timestamps so that text ordering in SQL matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Store wraps SQLite access for profile data.
type Store struct {
	db *sql.DB
}

var (
	_ profile.Store     = (*Store)(nil)
	_ profile.AnswerLog = (*Store)(nil)
)

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Load reads a profile and its word history.
func (s *Store) Load(ctx context.Context, name string) (profile.Record, error) {
	var (
		rec       profile.Record
		lists     string
		mode      string
		policy    string
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT name, enabled_lists, score, streak, mode, preview_ms, policy, updated_at
		 FROM profiles WHERE name = ?`, name).
		Scan(&rec.Name, &lists, &rec.Session.Score, &rec.Session.Streak, &mode, &rec.PreviewMs, &policy, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profile.Record{}, profile.ErrNotFound
		}
		return profile.Record{}, err
	}

	// Malformed columns fall back to defaults in profile.Normalize.
	if jerr := json.Unmarshal([]byte(lists), &rec.EnabledLists); jerr != nil {
		rec.EnabledLists = nil
	}
	rec.Mode = profile.Mode(mode)
	if p, perr := mastery.ParsePolicy(policy); perr == nil {
		rec.Policy = p
	}
	if t, terr := time.Parse(timeLayout, updatedAt); terr == nil {
		rec.UpdatedAt = t
	}

	history, err := s.loadHistory(ctx, name)
	if err != nil {
		return profile.Record{}, err
	}
	rec.History = history
	return profile.Normalize(rec), nil
}

func (s *Store) loadHistory(ctx context.Context, name string) (mastery.History, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, correct, incorrect, streak, status FROM word_history WHERE profile = ?`, name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	history := mastery.History{}
	for rows.Next() {
		var (
			word   string
			rec    mastery.WordRecord
			status string
		)
		if err := rows.Scan(&word, &rec.Correct, &rec.Incorrect, &rec.Streak, &status); err != nil {
			return nil, err
		}
		if st, serr := mastery.ParseStatus(status); serr == nil {
			rec.Status = st
		}
		history[word] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

// Save replaces the stored profile and its history in one transaction.
func (s *Store) Save(ctx context.Context, rec profile.Record) (err error) {
	rec = profile.Normalize(rec)
	if rec.Name == "" {
		return fmt.Errorf("%w: name is required", profile.ErrInvalidName)
	}
	lists, err := json.Marshal(rec.EnabledLists)
	if err != nil {
		return fmt.Errorf("encode enabled lists: %w", err)
	}
	updatedAt := rec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (name, enabled_lists, score, streak, mode, preview_ms, policy, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			enabled_lists = excluded.enabled_lists,
			score = excluded.score,
			streak = excluded.streak,
			mode = excluded.mode,
			preview_ms = excluded.preview_ms,
			policy = excluded.policy,
			updated_at = excluded.updated_at`,
		rec.Name,
		string(lists),
		rec.Session.Score,
		rec.Session.Streak,
		string(rec.Mode),
		rec.PreviewMs,
		rec.Policy.String(),
		updatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM word_history WHERE profile = ?`, rec.Name); err != nil {
		return err
	}

	if len(rec.History) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO word_history (profile, word, correct, incorrect, streak, status)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for word, wr := range rec.History {
			if _, err = stmt.ExecContext(ctx, rec.Name, word, wr.Correct, wr.Incorrect, wr.Streak, wr.Status.String()); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// List returns stored profile names in alphabetical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM profiles ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// Delete removes a profile, its history and its answers.
func (s *Store) Delete(ctx context.Context, name string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = profile.ErrNotFound
		return err
	}
	for _, stmt := range []string{
		`DELETE FROM word_history WHERE profile = ?`,
		`DELETE FROM answers WHERE profile = ?`,
	} {
		if _, err = tx.ExecContext(ctx, stmt, name); err != nil {
			return err
		}
	}
	return tx.Commit()
}
