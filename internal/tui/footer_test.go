package tui

import (
	"context"
	"sort"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/sightdrill/internal/catalog"
	"github.com/verte-zerg/sightdrill/internal/drill"
	"github.com/verte-zerg/sightdrill/internal/generator"
	"github.com/verte-zerg/sightdrill/internal/logger"
	"github.com/verte-zerg/sightdrill/internal/profile"
)

type firstRand struct{}

func (firstRand) Float64() float64 { return 0.99 }
func (firstRand) Intn(int) int      { return 0 }

type memStore struct {
	records map[string]profile.Record
}

func (s *memStore) Load(_ context.Context, name string) (profile.Record, error) {
	rec, ok := s.records[name]
	if !ok {
		return profile.Record{}, profile.ErrNotFound
	}
	return rec, nil
}

func (s *memStore) Save(_ context.Context, rec profile.Record) error {
	s.records[rec.Name] = profile.Normalize(rec)
	return nil
}

func (s *memStore) List(context.Context) ([]string, error) {
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *memStore) Delete(_ context.Context, name string) error {
	delete(s.records, name)
	return nil
}

type recordingSpeaker struct {
	words []string
}

func (s *recordingSpeaker) Speak(_ context.Context, word string) error {
	s.words = append(s.words, word)
	return nil
}

func newTestModel(t *testing.T, mode profile.Mode) (*Model, *recordingSpeaker) {
	t.Helper()
	store := &memStore{records: map[string]profile.Record{}}
	d := drill.New(drill.Options{
		Store: store,
		Catalog: catalog.New(
			catalog.List{ID: catalog.DefaultListID, Name: "Kindergarten", Words: []string{"the", "a", "and"}},
			catalog.List{ID: "dinosaurs", Name: "Dinosaurs", Words: []string{"rex"}},
		),
		Generator:    generator.NewWithRand(firstRand{}),
		NewSessionID: func() string { return "test" },
		Logger:       logger.Discard(),
	})
	ctx := context.Background()
	if err := d.Start(ctx, "Maya"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := d.SetMode(ctx, mode); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	speaker := &recordingSpeaker{}
	m := NewModel(ctx, Options{Drill: d, Store: store, Speaker: speaker, Logger: logger.Discard()})
	return m, speaker
}

func runCmd(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.BatchMsg); ok {
			return
		}
		m.Update(msg)
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRenderFooterFormats(t *testing.T) {
	m, _ := newTestModel(t, profile.ModeFlashcard)
	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Maya", "Score 0", "Streak 0", "Mastered 0/3", "Current Targets", "Standard Flashcards"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestFlashcardAnswerKeys(t *testing.T) {
	m, _ := newTestModel(t, profile.ModeFlashcard)
	m.Init()

	m.Update(keyRunes("y"))
	m.Update(keyRunes("y"))
	m.Update(keyRunes("n"))
	rec := m.drill.Record()
	if rec.Session.Score != 20 || rec.Session.Streak != 0 {
		t.Fatalf("unexpected session: %+v", rec.Session)
	}
	if !strings.Contains(m.View(), "Keep practicing") {
		t.Fatalf("expected miss feedback in view")
	}
}

func TestPolicyKeyToggles(t *testing.T) {
	m, _ := newTestModel(t, profile.ModeFlashcard)
	m.Update(keyRunes("p"))
	if !strings.Contains(m.renderFooter(), "All Targets") {
		t.Fatalf("expected policy toggle, footer %s", m.renderFooter())
	}
}

func TestTabSwitchesToHearingAndSpeaks(t *testing.T) {
	m, speaker := newTestModel(t, profile.ModeFlashcard)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	runCmd(m, cmd)

	if m.mode() != profile.ModeHearing {
		t.Fatalf("expected hearing mode, got %s", m.mode())
	}
	if len(speaker.words) != 1 || speaker.words[0] != "a" {
		t.Fatalf("expected current word to be spoken, got %v", speaker.words)
	}
	if !strings.Contains(m.viewDrill(), "Listen to the word") {
		t.Fatalf("word should be hidden before reveal")
	}

	_, cmd = m.Update(keyRunes("r"))
	runCmd(m, cmd)
	if !m.revealed || len(speaker.words) != 2 {
		t.Fatalf("reveal should show and speak again: revealed=%v spoken=%v", m.revealed, speaker.words)
	}
}

func TestSpellingSubmit(t *testing.T) {
	m, _ := newTestModel(t, profile.ModeSpelling)
	m.Init()
	if !m.previewing || len(m.tiles) != 1 {
		t.Fatalf("expected preview with tiles, previewing=%v tiles=%q", m.previewing, m.tiles)
	}

	m.Update(previewDoneMsg{seq: m.previewSeq - 1})
	if !m.previewing {
		t.Fatalf("stale preview message should be ignored")
	}
	m.Update(previewDoneMsg{seq: m.previewSeq})
	if m.previewing {
		t.Fatalf("preview should end")
	}

	m.input.SetValue("A")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.drill.Record().Session.Score; got != 10 {
		t.Fatalf("expected correct spelling to score, got %d", got)
	}

	m.input.SetValue("zzz")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.drill.Record().Session.Streak; got != 0 {
		t.Fatalf("expected wrong spelling to reset streak, got %d", got)
	}
}

func TestSpellingSpeaksPresentedWord(t *testing.T) {
	m, speaker := newTestModel(t, profile.ModeSpelling)
	if err := m.drill.SetPreview(context.Background(), 1); err != nil {
		t.Fatalf("set preview: %v", err)
	}

	batch, ok := m.Init()().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected batched commands for spelling")
	}
	for _, cmd := range batch {
		if cmd == nil {
			continue
		}
		if msg, ok := cmd().(speakDoneMsg); ok {
			m.Update(msg)
		}
	}
	if len(speaker.words) != 1 || speaker.words[0] != "a" {
		t.Fatalf("expected spelling word to be spoken once, got %v", speaker.words)
	}
}

func TestSettingsKeepLastList(t *testing.T) {
	m, _ := newTestModel(t, profile.ModeFlashcard)
	m.Update(keyRunes("o"))
	if m.screen != screenSettings {
		t.Fatalf("expected settings screen")
	}
	for i := 0; i < 3; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.status, "At least one word list") {
		t.Fatalf("expected last list notice, got %q", m.status)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.drill.Pool().Len(); got != 4 {
		t.Fatalf("expected dinosaurs to join the pool, got %d words", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenDrill {
		t.Fatalf("expected esc to return to the drill")
	}
}

func TestNextPreviewCycles(t *testing.T) {
	if got := nextPreview(1000); got != 3000 {
		t.Fatalf("nextPreview(1000) = %d", got)
	}
	if got := nextPreview(5000); got != 1000 {
		t.Fatalf("nextPreview(5000) = %d", got)
	}
	if got := nextPreview(1234); got != 1000 {
		t.Fatalf("nextPreview(1234) = %d", got)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
