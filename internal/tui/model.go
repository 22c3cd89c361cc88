// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sightdrill/internal/drill"
	"github.com/verte-zerg/sightdrill/internal/profile"
	"github.com/verte-zerg/sightdrill/internal/tts"
)

type screen int

const (
	screenDrill screen = iota
	screenSettings
	screenProfiles
	screenConfirmReset
)

// Options wires the model to its collaborators.
type Options struct {
	Drill   *drill.Drill
	Store   profile.Store
	Speaker tts.Speaker
	Logger  *slog.Logger
}

// Model implements the Bubble Tea drill UI.
type Model struct {
	ctx     context.Context
	drill   *drill.Drill
	store   profile.Store
	speaker tts.Speaker
	logger  *slog.Logger

	width  int
	height int
	screen screen

	// hearing mode
	revealed bool

	// spelling mode
	input      textinput.Model
	tiles      []rune
	previewing bool
	previewSeq int

	status    string
	statusBad bool

	settings settingsMenu
	profiles profileMenu
}

type previewDoneMsg struct{ seq int }

type speakDoneMsg struct{ err error }

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 6).
			Bold(true)
	wordStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	goodStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	badStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	tileStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#3A3A5A")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a drill TUI model. The drill must already be started.
func NewModel(ctx context.Context, opts Options) *Model {
	in := textinput.New()
	in.Placeholder = "type the word"
	in.CharLimit = 32
	in.Prompt = "> "

	m := &Model{
		ctx:     ctx,
		drill:   opts.Drill,
		store:   opts.Store,
		speaker: opts.Speaker,
		logger:  opts.Logger,
		input:   in,
	}
	if m.speaker == nil {
		m.speaker = tts.Nop{}
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.presentWord()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case previewDoneMsg:
		if msg.seq == m.previewSeq {
			m.previewing = false
		}
		return m, nil
	case speakDoneMsg:
		if msg.err != nil {
			m.setStatus("Speech is not available.", true)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case screenSettings:
			return m, m.updateSettings(msg)
		case screenProfiles:
			return m, m.updateProfiles(msg)
		case screenConfirmReset:
			return m, m.updateConfirmReset(msg)
		default:
			return m.updateDrill(msg)
		}
	default:
		if m.screen == screenDrill && m.mode() == profile.ModeSpelling {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		if m.screen == screenProfiles && m.profiles.adding {
			var cmd tea.Cmd
			m.profiles.input, cmd = m.profiles.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m *Model) updateDrill(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc":
		return m, tea.Quit
	case "tab":
		return m, m.cycleMode()
	case "ctrl+o":
		return m, m.openSettings()
	}

	if m.mode() == profile.ModeSpelling {
		switch key {
		case "enter":
			return m, m.submitSpelling()
		case "ctrl+s":
			return m, m.skip()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "y", "enter", "right":
		return m, m.answer(true)
	case "n", "left":
		return m, m.answer(false)
	case "s":
		return m, m.skip()
	case "p":
		return m, m.togglePolicy()
	case "o":
		return m, m.openSettings()
	}
	if m.mode() == profile.ModeHearing {
		switch key {
		case "r":
			m.revealed = true
			return m, m.speakCurrent()
		case " ":
			return m, m.speakCurrent()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.screen {
	case screenSettings:
		content = m.viewSettings()
	case screenProfiles:
		content = m.viewProfiles()
	case screenConfirmReset:
		content = m.viewConfirmReset()
	default:
		content = m.viewDrill()
	}
	if m.width == 0 || m.height == 0 {
		return content + "\n" + m.renderFooter()
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) viewDrill() string {
	word, ok := m.drill.Current()
	if !ok {
		return lipgloss.JoinVertical(lipgloss.Center,
			cardStyle.Render(wordStyle.Render("Done!")),
			hintStyle.Render("No words to practice. Press o to choose word lists."),
		)
	}

	var parts []string
	switch m.mode() {
	case profile.ModeHearing:
		if m.revealed {
			parts = append(parts, cardStyle.Render(wordStyle.Render(word)))
		} else {
			parts = append(parts, cardStyle.Render(hintStyle.Render("Listen to the word...")))
		}
		parts = append(parts, hintStyle.Render("space: listen again  r: reveal  y: got it  n: try again  s: skip"))
	case profile.ModeSpelling:
		if m.previewing {
			parts = append(parts, cardStyle.Render(wordStyle.Render(word)))
		} else {
			parts = append(parts, cardStyle.Render(hintStyle.Render("Ready?")))
		}
		parts = append(parts, renderTiles(m.tiles, m.contentWidth()), m.input.View())
		parts = append(parts, hintStyle.Render("enter: check  ctrl+s: skip  tab: mode  ctrl+o: settings"))
	default:
		parts = append(parts, cardStyle.Render(wordStyle.Render(word)))
		parts = append(parts, hintStyle.Render("y: got it  n: try again  s: skip  p: policy  tab: mode  o: settings"))
	}
	if m.status != "" {
		style := goodStyle
		if m.statusBad {
			style = badStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m *Model) renderFooter() string {
	rec := m.drill.Record()
	segments := []string{
		rec.Name,
		fmt.Sprintf("Score %d", rec.Session.Score),
		fmt.Sprintf("Streak %d", rec.Session.Streak),
		fmt.Sprintf("Mastered %d/%d", m.drill.MasteredInPool(), m.drill.Pool().Len()),
		rec.Policy.Label(),
		rec.Mode.Label(),
	}
	return footerStyle.Render(strings.Join(segments, " · "))
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) mode() profile.Mode {
	return m.drill.Record().Mode
}

func (m *Model) answer(correct bool) tea.Cmd {
	out, err := m.drill.Answer(m.ctx, correct)
	if errors.Is(err, drill.ErrNoWord) {
		return nil
	}
	switch {
	case err != nil:
		m.setStatus("Progress could not be saved.", true)
	case out.Promoted:
		m.setStatus(fmt.Sprintf("%q is mastered!", out.Word), false)
	case correct:
		m.setStatus("Great job!", false)
	default:
		m.setStatus(fmt.Sprintf("Keep practicing %q.", out.Word), true)
	}
	return m.presentWord()
}

func (m *Model) submitSpelling() tea.Cmd {
	word, ok := m.drill.Current()
	if !ok {
		return nil
	}
	typed := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if typed == "" {
		return nil
	}
	return m.answer(typed == word)
}

func (m *Model) skip() tea.Cmd {
	m.drill.Skip()
	m.status = ""
	return m.presentWord()
}

func (m *Model) togglePolicy() tea.Cmd {
	next := m.drill.Record().Policy.Next()
	if err := m.drill.SetPolicy(m.ctx, next); err != nil {
		m.setStatus("Settings could not be saved.", true)
		return nil
	}
	m.setStatus("Policy: "+next.Label(), false)
	return nil
}

func (m *Model) cycleMode() tea.Cmd {
	next := m.mode().Next()
	if err := m.drill.SetMode(m.ctx, next); err != nil {
		m.setStatus("Settings could not be saved.", true)
		return nil
	}
	m.setStatus("Mode: "+next.Label(), false)
	return m.presentWord()
}

// presentWord resets per-word UI state and starts mode side effects for the current word.
func (m *Model) presentWord() tea.Cmd {
	m.revealed = false
	m.previewing = false
	m.tiles = nil
	m.input.Reset()
	m.input.Blur()

	if _, ok := m.drill.Current(); !ok {
		return nil
	}
	switch m.mode() {
	case profile.ModeHearing:
		return m.speakCurrent()
	case profile.ModeSpelling:
		m.tiles = m.drill.Scramble()
		m.previewing = true
		m.previewSeq++
		seq := m.previewSeq
		preview := time.Duration(m.drill.Record().PreviewMs) * time.Millisecond
		return tea.Batch(
			m.input.Focus(),
			m.speakCurrent(),
			tea.Tick(preview, func(time.Time) tea.Msg { return previewDoneMsg{seq: seq} }),
		)
	}
	return nil
}

func (m *Model) speakCurrent() tea.Cmd {
	word, ok := m.drill.Current()
	if !ok {
		return nil
	}
	ctx, speaker := m.ctx, m.speaker
	return func() tea.Msg {
		return speakDoneMsg{err: speaker.Speak(ctx, word)}
	}
}

func (m *Model) setStatus(text string, bad bool) {
	m.status = text
	m.statusBad = bad
}

func (m *Model) updateConfirmReset(msg tea.KeyMsg) tea.Cmd {
	m.screen = screenSettings
	if msg.String() != "y" {
		return nil
	}
	if err := m.drill.Reset(m.ctx); err != nil {
		m.logger.Error("reset failed", "err", err)
		m.setStatus("Progress could not be reset.", true)
		return nil
	}
	m.screen = screenDrill
	m.setStatus("Progress reset.", false)
	return m.presentWord()
}

func (m *Model) viewConfirmReset() string {
	name := m.drill.Record().Name
	return lipgloss.JoinVertical(lipgloss.Center,
		badStyle.Render(fmt.Sprintf("Reset all progress for %s?", name)),
		hintStyle.Render("y: reset  any other key: cancel"),
	)
}
