package config

import (
	"os"
	"path/filepath"
)

const appDir = "sightdrill"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	return xdgHome("XDG_CONFIG_HOME", ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	return xdgHome("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgHome(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, fallback)
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}

// DefaultListsPath returns the default YAML file with custom word lists.
func DefaultListsPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "lists.yaml")
}

// DefaultWordListDir returns the default directory for plain-text word lists.
func DefaultWordListDir() string {
	return filepath.Join(XDGConfigHome(), appDir, "wordlists")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appDir, "sightdrill.db")
}

// DefaultProfilesPath returns the default path for the TOML profile file.
func DefaultProfilesPath() string {
	return filepath.Join(XDGDataHome(), appDir, "profiles.toml")
}

// DefaultLogPath returns the log file used while the full-screen drill is running.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), appDir, "sightdrill.log")
}
