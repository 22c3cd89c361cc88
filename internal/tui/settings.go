package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sightdrill/internal/pool"
	"github.com/verte-zerg/sightdrill/internal/profile"
)

type settingsMenu struct {
	cursor int
}

type settingItem struct {
	label string
	apply func() tea.Cmd
}

type profileMenu struct {
	names  []string
	cursor int
	adding bool
	input  textinput.Model
}

func (m *Model) openSettings() tea.Cmd {
	m.screen = screenSettings
	m.settings.cursor = 0
	m.input.Blur()
	return nil
}

func (m *Model) closeSettings() tea.Cmd {
	m.screen = screenDrill
	return m.presentWord()
}

// settingItems lists the parent-facing settings in display order.
func (m *Model) settingItems() []settingItem {
	rec := m.drill.Record()
	enabled := m.drill.EnabledLists()

	items := []settingItem{
		{
			label: "Policy: " + rec.Policy.Label(),
			apply: func() tea.Cmd {
				return m.saveSetting(m.drill.SetPolicy(m.ctx, rec.Policy.Next()))
			},
		},
		{
			label: "Mode: " + rec.Mode.Label(),
			apply: func() tea.Cmd {
				return m.saveSetting(m.drill.SetMode(m.ctx, rec.Mode.Next()))
			},
		},
		{
			label: "Spelling preview: " + previewLabel(rec.PreviewMs),
			apply: func() tea.Cmd {
				return m.saveSetting(m.drill.SetPreview(m.ctx, nextPreview(rec.PreviewMs)))
			},
		},
	}
	for _, list := range m.drill.Catalog().Lists() {
		id := list.ID
		items = append(items, settingItem{
			label: listLabel(list.Name, len(list.Words), slices.Contains(enabled, id)),
			apply: func() tea.Cmd {
				err := m.drill.ToggleList(m.ctx, id)
				if errors.Is(err, pool.ErrLastList) {
					m.setStatus("At least one word list must stay on.", true)
					return nil
				}
				return m.saveSetting(err)
			},
		})
	}
	items = append(items,
		settingItem{label: "Switch profile", apply: m.openProfiles},
		settingItem{label: "Reset progress", apply: func() tea.Cmd {
			m.screen = screenConfirmReset
			return nil
		}},
	)
	return items
}

func (m *Model) saveSetting(err error) tea.Cmd {
	if err != nil {
		m.logger.Error("update settings failed", "err", err)
		m.setStatus("Settings could not be saved.", true)
		return nil
	}
	m.status = ""
	return nil
}

func (m *Model) updateSettings(msg tea.KeyMsg) tea.Cmd {
	items := m.settingItems()
	switch msg.String() {
	case "esc", "o", "ctrl+o", "q":
		return m.closeSettings()
	case "up", "k":
		if m.settings.cursor > 0 {
			m.settings.cursor--
		}
	case "down", "j":
		if m.settings.cursor < len(items)-1 {
			m.settings.cursor++
		}
	case "enter", " ":
		if m.settings.cursor < len(items) {
			return items[m.settings.cursor].apply()
		}
	}
	return nil
}

func (m *Model) viewSettings() string {
	items := m.settingItems()
	lines := []string{wordStyle.Render("Settings"), ""}
	for i, item := range items {
		lines = append(lines, menuLine(item.label, i == m.settings.cursor))
	}
	lines = append(lines, "", hintStyle.Render("↑/↓: move  enter: change  esc: back"))
	if m.status != "" && m.statusBad {
		lines = append(lines, badStyle.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) openProfiles() tea.Cmd {
	names, err := m.store.List(m.ctx)
	if err != nil {
		m.logger.Error("list profiles failed", "err", err)
		m.setStatus("Profiles could not be loaded.", true)
		return nil
	}
	in := textinput.New()
	in.Placeholder = "name"
	in.CharLimit = 40
	in.Prompt = "New profile: "

	m.profiles = profileMenu{names: names, input: in}
	if i := slices.Index(names, m.drill.Record().Name); i >= 0 {
		m.profiles.cursor = i
	}
	m.screen = screenProfiles
	return nil
}

func (m *Model) updateProfiles(msg tea.KeyMsg) tea.Cmd {
	if m.profiles.adding {
		switch msg.String() {
		case "esc":
			m.profiles.adding = false
			m.profiles.input.Blur()
			return nil
		case "enter":
			name, err := profile.CleanName(m.profiles.input.Value())
			if err != nil {
				m.setStatus(strings.TrimPrefix(err.Error(), profile.ErrInvalidName.Error()+": "), true)
				return nil
			}
			return m.switchProfile(name)
		}
		var cmd tea.Cmd
		m.profiles.input, cmd = m.profiles.input.Update(msg)
		return cmd
	}

	// The last row is "new profile".
	last := len(m.profiles.names)
	switch msg.String() {
	case "esc", "q":
		m.screen = screenSettings
	case "up", "k":
		if m.profiles.cursor > 0 {
			m.profiles.cursor--
		}
	case "down", "j":
		if m.profiles.cursor < last {
			m.profiles.cursor++
		}
	case "a":
		m.profiles.adding = true
		return m.profiles.input.Focus()
	case "enter", " ":
		if m.profiles.cursor == last {
			m.profiles.adding = true
			return m.profiles.input.Focus()
		}
		return m.switchProfile(m.profiles.names[m.profiles.cursor])
	}
	return nil
}

func (m *Model) switchProfile(name string) tea.Cmd {
	if err := m.drill.SwitchProfile(m.ctx, name); err != nil {
		m.logger.Error("switch profile failed", "profile", name, "err", err)
		m.setStatus("Profile could not be opened.", true)
		return nil
	}
	m.profiles.adding = false
	m.screen = screenDrill
	m.setStatus(fmt.Sprintf("Hi, %s!", name), false)
	return m.presentWord()
}

func (m *Model) viewProfiles() string {
	lines := []string{wordStyle.Render("Profiles"), ""}
	active := m.drill.Record().Name
	for i, name := range m.profiles.names {
		label := name
		if name == active {
			label += " (active)"
		}
		lines = append(lines, menuLine(label, i == m.profiles.cursor))
	}
	lines = append(lines, menuLine("+ New profile", m.profiles.cursor == len(m.profiles.names)))
	if m.profiles.adding {
		lines = append(lines, "", m.profiles.input.View())
	}
	lines = append(lines, "", hintStyle.Render("enter: open  a: add  esc: back"))
	if m.status != "" && m.statusBad {
		lines = append(lines, badStyle.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func menuLine(label string, selected bool) string {
	if selected {
		return selectedStyle.Render("> " + label)
	}
	return "  " + label
}

func listLabel(name string, words int, enabled bool) string {
	box := "[ ]"
	if enabled {
		box = "[x]"
	}
	return fmt.Sprintf("%s %s (%d words)", box, name, words)
}

func previewLabel(ms int) string {
	return fmt.Sprintf("%gs", float64(ms)/1000)
}

// nextPreview cycles through profile.PreviewChoices, starting over from the first.
func nextPreview(ms int) int {
	for i, choice := range profile.PreviewChoices {
		if choice == ms {
			return profile.PreviewChoices[(i+1)%len(profile.PreviewChoices)]
		}
	}
	return profile.PreviewChoices[0]
}
