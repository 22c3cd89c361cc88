// Package drill runs practice for one active profile: it keeps the profile record,
// the derived word pool and the word on display, and persists every change.
package drill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/sightdrill/internal/catalog"
	"github.com/verte-zerg/sightdrill/internal/generator"
	"github.com/verte-zerg/sightdrill/internal/mastery"
	"github.com/verte-zerg/sightdrill/internal/pool"
	"github.com/verte-zerg/sightdrill/internal/profile"
)

var (
	// ErrNoWord is returned by Answer when there is nothing on display.
	ErrNoWord = errors.New("drill: no word to answer")
	// ErrUnknownList is returned when toggling a list id the catalog does not have.
	ErrUnknownList = errors.New("drill: unknown word list")
	// ErrNotStarted is returned by operations that need an active profile.
	ErrNotStarted = errors.New("drill: no active profile")
	// ErrNotInPool is returned by AnswerWord for words outside the enabled lists.
	ErrNotInPool = errors.New("drill: word is not in the enabled lists")
)

// Options configures a Drill. Store and Catalog are required.
type Options struct {
	Store     profile.Store
	Catalog   *catalog.Catalog
	Generator *generator.Generator
	Logger    *slog.Logger
	// Now and NewSessionID default to time.Now and uuid.NewString.
	Now          func() time.Time
	NewSessionID func() string
}

// Outcome describes one recorded answer.
type Outcome struct {
	Word    string
	Correct bool
	Record  mastery.WordRecord
	// Promoted is true when this answer moved the word to mastered.
	Promoted bool
	Session  profile.SessionAggregate
}

// Drill is not safe for concurrent use.
type Drill struct {
	store   profile.Store
	answers profile.AnswerLog
	catalog *catalog.Catalog
	gen     *generator.Generator
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string

	started   bool
	sessionID string
	rec       profile.Record
	override  []string
	pool      pool.Pool
	word      string
	hasWord   bool
}

// New builds a Drill from opts.
func New(opts Options) *Drill {
	d := &Drill{
		store:   opts.Store,
		catalog: opts.Catalog,
		gen:     opts.Generator,
		logger:  opts.Logger,
		now:     opts.Now,
		newID:   opts.NewSessionID,
	}
	if log, ok := opts.Store.(profile.AnswerLog); ok {
		d.answers = log
	}
	if d.catalog == nil {
		d.catalog = catalog.Builtin()
	}
	if d.gen == nil {
		d.gen = generator.New()
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.now == nil {
		d.now = time.Now
	}
	if d.newID == nil {
		d.newID = uuid.NewString
	}
	return d
}

// Start loads the named profile, creating it when absent, and draws the first word.
func (d *Drill) Start(ctx context.Context, name string) error {
	name, err := profile.CleanName(name)
	if err != nil {
		return err
	}
	rec, err := d.store.Load(ctx, name)
	switch {
	case errors.Is(err, profile.ErrNotFound):
		rec = profile.New(name)
		rec.UpdatedAt = d.now()
		if err := d.store.Save(ctx, rec); err != nil {
			return fmt.Errorf("create profile %q: %w", name, err)
		}
		d.logger.Info("created profile", "profile", name)
	case err != nil:
		return fmt.Errorf("load profile %q: %w", name, err)
	}

	rec = profile.Normalize(rec)

	d.started = true
	d.sessionID = d.newID()
	d.rec = rec
	d.override = nil
	d.rebuild()
	d.advance()
	d.logger.Debug("drill started",
		"profile", name,
		"session", d.sessionID,
		"pool", d.pool.Len(),
		"policy", rec.Policy.String())
	return nil
}

// SwitchProfile replaces the whole drill context with the named profile.
// On failure the current context is kept.
func (d *Drill) SwitchProfile(ctx context.Context, name string) error {
	prev := *d
	if err := d.Start(ctx, name); err != nil {
		*d = prev
		return err
	}
	return nil
}

// UseLists overrides the enabled lists for this run without saving them.
// Unknown ids are dropped; nil clears the override.
func (d *Drill) UseLists(ids []string) {
	if ids == nil {
		d.override = nil
	} else {
		sel := pool.NewSelection(ids, catalog.DefaultListID).Prune(d.catalog.Has)
		d.override = sel.IDs()
	}
	d.rebuild()
	d.redrawIfGone()
}

// Current returns the word on display. ok is false when the pool is empty.
func (d *Drill) Current() (word string, ok bool) {
	return d.word, d.hasWord
}

// Answer records the outcome for the current word, saves the profile and draws
// the next word from the updated history.
func (d *Drill) Answer(ctx context.Context, correct bool) (Outcome, error) {
	if !d.hasWord {
		return Outcome{}, ErrNoWord
	}
	word := d.word
	before := d.rec.History.Get(word)
	after := mastery.RecordOutcome(word, correct, d.rec.History)

	d.rec.History = d.rec.History.With(word, after)
	d.rec.Session = d.rec.Session.Apply(correct)
	d.rec.UpdatedAt = d.now()

	out := Outcome{
		Word:     word,
		Correct:  correct,
		Record:   after,
		Promoted: before.Status != mastery.Mastered && after.Status == mastery.Mastered,
		Session:  d.rec.Session,
	}

	if d.answers != nil {
		ev := profile.Answer{
			SessionID: d.sessionID,
			Word:      word,
			Correct:   correct,
			Mode:      d.rec.Mode,
			At:        d.rec.UpdatedAt,
		}
		if err := d.answers.RecordAnswer(ctx, d.rec.Name, ev); err != nil {
			d.logger.Warn("record answer failed", "profile", d.rec.Name, "word", word, "err", err)
		}
	}

	d.advance()
	return out, d.save(ctx)
}

// AnswerWord records an answer for a specific pool word instead of the one on display.
func (d *Drill) AnswerWord(ctx context.Context, word string, correct bool) (Outcome, error) {
	if !d.pool.Contains(word) {
		return Outcome{}, fmt.Errorf("%w: %q", ErrNotInPool, word)
	}
	d.word, d.hasWord = word, true
	return d.Answer(ctx, correct)
}

// Skip draws a new word without recording anything.
func (d *Drill) Skip() (word string, ok bool) {
	d.advance()
	return d.word, d.hasWord
}

// ToggleList enables or disables a word list in the stored selection of the active
// profile and drops any run-only override. Disabling the last list the catalog knows
// returns pool.ErrLastList. Stored ids the catalog does not know are kept.
func (d *Drill) ToggleList(ctx context.Context, id string) error {
	if !d.started {
		return ErrNotStarted
	}
	if !d.catalog.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownList, id)
	}
	stored := pool.NewSelection(d.rec.EnabledLists, catalog.DefaultListID)
	if _, err := stored.Prune(d.catalog.Has).Toggle(id); err != nil {
		return err
	}
	sel, err := stored.Toggle(id)
	if err != nil {
		return err
	}
	d.override = nil
	d.rec.EnabledLists = sel.IDs()
	d.rebuild()
	d.redrawIfGone()
	return d.touchAndSave(ctx)
}

// SetPolicy changes the selection policy.
func (d *Drill) SetPolicy(ctx context.Context, p mastery.Policy) error {
	if !d.started {
		return ErrNotStarted
	}
	if !p.IsValid() {
		return fmt.Errorf("invalid policy %v", p)
	}
	d.rec.Policy = p
	return d.touchAndSave(ctx)
}

// SetMode changes the presentation mode.
func (d *Drill) SetMode(ctx context.Context, m profile.Mode) error {
	if !d.started {
		return ErrNotStarted
	}
	if !m.IsValid() {
		return fmt.Errorf("invalid mode %q", m)
	}
	d.rec.Mode = m
	return d.touchAndSave(ctx)
}

// SetPreview changes how long the spelling word stays visible.
func (d *Drill) SetPreview(ctx context.Context, ms int) error {
	if !d.started {
		return ErrNotStarted
	}
	if ms <= 0 {
		return fmt.Errorf("preview must be positive, got %d", ms)
	}
	d.rec.PreviewMs = ms
	return d.touchAndSave(ctx)
}

// Reset clears the word history and session aggregate of the active profile.
func (d *Drill) Reset(ctx context.Context) error {
	if !d.started {
		return ErrNotStarted
	}
	d.rec = d.rec.ResetProgress()
	d.advance()
	d.logger.Info("progress reset", "profile", d.rec.Name)
	return d.touchAndSave(ctx)
}

// Scramble returns shuffled letters of the current word.
func (d *Drill) Scramble() []rune {
	if !d.hasWord {
		return nil
	}
	return d.gen.Scramble(d.word)
}

// Record returns a copy of the active profile record.
func (d *Drill) Record() profile.Record {
	rec := d.rec
	rec.History = d.rec.History.Clone()
	rec.EnabledLists = append([]string(nil), d.rec.EnabledLists...)
	return rec
}

// EnabledLists returns the known list ids the pool is built from: the run-only
// override when set, otherwise the stored selection without ids the catalog lacks.
func (d *Drill) EnabledLists() []string {
	if d.override != nil {
		return append([]string(nil), d.override...)
	}
	return pool.NewSelection(d.rec.EnabledLists, catalog.DefaultListID).Prune(d.catalog.Has).IDs()
}

// Pool returns the current word pool.
func (d *Drill) Pool() pool.Pool {
	return append(pool.Pool(nil), d.pool...)
}

// MasteredInPool counts pool words whose status is mastered.
func (d *Drill) MasteredInPool() int {
	mastered, _ := mastery.Classify(d.pool, d.rec.History)
	return len(mastered)
}

// Catalog returns the catalog the drill draws lists from.
func (d *Drill) Catalog() *catalog.Catalog {
	return d.catalog
}

// SessionID identifies this run in the answer log.
func (d *Drill) SessionID() string {
	return d.sessionID
}

func (d *Drill) rebuild() {
	d.pool = pool.BuildPool(d.catalog, d.EnabledLists())
}

func (d *Drill) advance() {
	d.word, d.hasWord = d.gen.Next(d.rec.Policy, d.pool, d.rec.History)
}

func (d *Drill) redrawIfGone() {
	if !d.hasWord || !d.pool.Contains(d.word) {
		d.advance()
	}
}

func (d *Drill) touchAndSave(ctx context.Context) error {
	d.rec.UpdatedAt = d.now()
	return d.save(ctx)
}

func (d *Drill) save(ctx context.Context) error {
	if err := d.store.Save(ctx, d.rec); err != nil {
		d.logger.Error("save profile failed", "profile", d.rec.Name, "err", err)
		return fmt.Errorf("save profile %q: %w", d.rec.Name, err)
	}
	return nil
}
