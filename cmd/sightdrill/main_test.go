package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/sightdrill/internal/catalog"
	"github.com/verte-zerg/sightdrill/internal/config"
	"github.com/verte-zerg/sightdrill/internal/drill"
	"github.com/verte-zerg/sightdrill/internal/mastery"
	"github.com/verte-zerg/sightdrill/internal/profile"
)

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var lines []string
	for _, line := range strings.Split(defaultConfigTemplate(), "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
		}
		lines = append(lines, line)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Practice.Profile == nil || *cfg.Practice.Profile != defaultProfile {
		t.Fatalf("unexpected profile: %v", cfg.Practice.Profile)
	}
	if cfg.Practice.PreviewMs == nil || *cfg.Practice.PreviewMs != defaultPreviewMs {
		t.Fatalf("unexpected preview: %v", cfg.Practice.PreviewMs)
	}
	if cfg.Practice.Lists == nil || len(*cfg.Practice.Lists) != 1 || (*cfg.Practice.Lists)[0] != catalog.DefaultListID {
		t.Fatalf("unexpected lists: %v", cfg.Practice.Lists)
	}
	if cfg.Storage.Backend == nil || *cfg.Storage.Backend != defaultBackend {
		t.Fatalf("unexpected backend: %v", cfg.Storage.Backend)
	}
	if cfg.Speech.Command == nil || *cfg.Speech.Command != "espeak-ng -s 120" {
		t.Fatalf("unexpected speech command: %v", cfg.Speech.Command)
	}
}

func TestApplyConfigRespectsChangedFlags(t *testing.T) {
	var lists []string
	var mode string
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringArrayVar(&lists, "list", nil, "")
	cmd.Flags().StringVar(&mode, "mode", "flashcard", "")

	fileLists := []string{"dinosaurs"}
	fileMode := "spelling"
	applyStringSliceConfig(cmd, "list", &lists, &fileLists)
	applyStringConfig(cmd, "mode", &mode, &fileMode)
	if len(lists) != 1 || lists[0] != "dinosaurs" || mode != "spelling" {
		t.Fatalf("file values not applied: %v %q", lists, mode)
	}

	if err := cmd.Flags().Set("list", "sight_words_1"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := cmd.Flags().Set("mode", "hearing"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	applyStringSliceConfig(cmd, "list", &lists, &fileLists)
	applyStringConfig(cmd, "mode", &mode, &fileMode)
	if mode != "hearing" {
		t.Fatalf("flag should win, got %q", mode)
	}
	if lists[len(lists)-1] != "sight_words_1" {
		t.Fatalf("flag should win, got %v", lists)
	}

	applyStringConfig(cmd, "mode", &mode, nil)
	if mode != "hearing" {
		t.Fatalf("nil file value changed target: %q", mode)
	}
}

func TestParseVerdict(t *testing.T) {
	cases := map[string]bool{"yes": true, " Y ": true, "correct": true, "no": false, "N": false, "wrong": false}
	for in, want := range cases {
		got, err := parseVerdict(in)
		if err != nil {
			t.Fatalf("parseVerdict(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("parseVerdict(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := parseVerdict("maybe"); err == nil {
		t.Fatalf("expected error for unknown verdict")
	}
}

func TestConfirm(t *testing.T) {
	ok, err := confirm(strings.NewReader("yes\n"), "")
	if err != nil || !ok {
		t.Fatalf("expected confirmation, got %v %v", ok, err)
	}
	ok, err = confirm(strings.NewReader(""), "")
	if err != nil || ok {
		t.Fatalf("empty input must not confirm, got %v %v", ok, err)
	}
}

func TestWriteListsMarksEnabled(t *testing.T) {
	var buf bytes.Buffer
	if err := writeLists(&buf, catalog.Builtin(), []string{"dinosaurs"}); err != nil {
		t.Fatalf("writeLists: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(catalog.Builtin().IDs()) {
		t.Fatalf("expected one line per list, got %d", len(lines))
	}
	for _, line := range lines {
		enabled := strings.HasPrefix(line, "*")
		if enabled != strings.Contains(line, "dinosaurs") {
			t.Fatalf("unexpected mark: %q", line)
		}
	}
}

func TestWriteOutcome(t *testing.T) {
	var buf bytes.Buffer
	out := drill.Outcome{
		Word:     "the",
		Correct:  true,
		Record:   mastery.WordRecord{Correct: 5, Streak: 5, Status: mastery.Mastered},
		Promoted: true,
		Session:  profile.SessionAggregate{Score: 50, Streak: 5},
	}
	if err := writeOutcome(&buf, out); err != nil {
		t.Fatalf("writeOutcome: %v", err)
	}
	got := buf.String()
	want := "the: correct (streak 5/5, mastered) score 50\nthe is mastered!\n"
	if got != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", got, want)
	}
}
