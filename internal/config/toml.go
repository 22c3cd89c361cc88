// Package config provides configuration file parsing, validation and XDG paths.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Storage  StorageConfig  `toml:"storage"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Speech   SpeechConfig   `toml:"speech"`
	Log      LogConfig      `toml:"log"`
}

// PracticeConfig maps drill settings.
type PracticeConfig struct {
	Profile   *string   `toml:"profile"`
	Policy    *string   `toml:"policy"`
	Mode      *string   `toml:"mode"`
	PreviewMs *int      `toml:"preview-ms"`
	Lists     *[]string `toml:"lists"`
}

// StorageConfig selects where profiles are kept.
type StorageConfig struct {
	Backend *string `toml:"backend"`
	Path    *string `toml:"path"`
}

// CatalogConfig points at custom word list sources.
type CatalogConfig struct {
	ListsFile   *string `toml:"lists-file"`
	WordListDir *string `toml:"wordlist-dir"`
}

// SpeechConfig configures the text-to-speech command used in hearing mode.
type SpeechConfig struct {
	Command *string `toml:"command"`
}

// LogConfig configures diagnostics.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
