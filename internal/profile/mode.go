package profile

import (
	"fmt"
	"strings"
)

// Mode is the presentation mode of the drill UI. The scheduler never looks at it.
type Mode string

const (
	ModeFlashcard Mode = "flashcard"
	ModeHearing   Mode = "hearing"
	ModeSpelling  Mode = "spelling"
)

var modes = []Mode{ModeFlashcard, ModeHearing, ModeSpelling}

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	for _, known := range modes {
		if m == known {
			return true
		}
	}
	return false
}

// Next cycles flashcard → hearing → spelling → flashcard.
func (m Mode) Next() Mode {
	for i, known := range modes {
		if m == known {
			return modes[(i+1)%len(modes)]
		}
	}
	return ModeFlashcard
}

// Label returns the settings-screen name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeFlashcard:
		return "Standard Flashcards"
	case ModeHearing:
		return "Hearing Mode"
	case ModeSpelling:
		return "Spelling Mode"
	default:
		return string(m)
	}
}

// ParseMode validates a mode name.
func ParseMode(name string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(name)))
	if !m.IsValid() {
		return "", fmt.Errorf("unknown mode %q (want flashcard, hearing or spelling)", name)
	}
	return m, nil
}
