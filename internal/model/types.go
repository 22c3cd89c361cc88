// Package model defines shared settings structures.
package model

import (
	"github.com/verte-zerg/sightdrill/internal/mastery"
	"github.com/verte-zerg/sightdrill/internal/profile"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendTOML   = "toml"
)

// Config defines the resolved run settings after flags are merged over the config file.
type Config struct {
	Profile   string         `validate:"required,max=40"`
	Policy    mastery.Policy `validate:"min=1,max=2"`
	Mode      profile.Mode   `validate:"oneof=flashcard hearing spelling"`
	PreviewMs int            `validate:"gt=0,lte=60000"`
	// Lists overrides the stored list selection for one run when non-empty.
	Lists []string `validate:"dive,required"`

	Backend     string `validate:"oneof=sqlite toml"`
	StorePath   string
	ListsPath   string
	WordListDir string

	SpeechCommand string
	LogLevel      string `validate:"omitempty,oneof=debug info warn warning error"`
}

// StatsConfig defines options for stats output.
type StatsConfig struct {
	Profile     string `validate:"required"`
	Weak        int    `validate:"gte=0"`
	Last        int    `validate:"gte=0"`
	CurveWindow int    `validate:"gte=0"`
}
