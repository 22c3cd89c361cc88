package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/sightdrill/internal/catalog"
	"github.com/verte-zerg/sightdrill/internal/config"
	"github.com/verte-zerg/sightdrill/internal/drill"
	"github.com/verte-zerg/sightdrill/internal/logger"
	"github.com/verte-zerg/sightdrill/internal/mastery"
	"github.com/verte-zerg/sightdrill/internal/model"
	"github.com/verte-zerg/sightdrill/internal/profile"
	"github.com/verte-zerg/sightdrill/internal/stats"
)

// cliEnv holds what the non-interactive subcommands share.
type cliEnv struct {
	cfg   model.Config
	log   *slog.Logger
	cat   *catalog.Catalog
	store profile.Store
	close func()
}

func setupEnv(cmd *cobra.Command) (*cliEnv, error) {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := logger.Setup(cfg.LogLevel, os.Stderr)
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return &cliEnv{cfg: cfg, log: log, cat: cat, store: st, close: closeStore}, nil
}

// loadProfile returns the stored profile, or a fresh one when none exists yet.
func (e *cliEnv) loadProfile(ctx context.Context) (profile.Record, error) {
	name, err := profile.CleanName(e.cfg.Profile)
	if err != nil {
		return profile.Record{}, err
	}
	rec, err := e.store.Load(ctx, name)
	if errors.Is(err, profile.ErrNotFound) {
		return profile.New(name), nil
	}
	if err != nil {
		return profile.Record{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return rec, nil
}

func (e *cliEnv) startDrill(ctx context.Context) (*drill.Drill, error) {
	d := drill.New(drill.Options{Store: e.store, Catalog: e.cat, Logger: e.log})
	if err := d.Start(ctx, e.cfg.Profile); err != nil {
		return nil, fmt.Errorf("failed to start drill: %w", err)
	}
	if len(e.cfg.Lists) > 0 {
		d.UseLists(e.cfg.Lists)
	}
	return d, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newListsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "List word lists, marking the ones enabled for the profile",
		Args:  cobra.NoArgs,
		RunE:  runListsCmd,
	}
}

func runListsCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	rec, err := env.loadProfile(cmd.Context())
	if err != nil {
		return err
	}
	return writeLists(cmd.OutOrStdout(), env.cat, rec.EnabledLists)
}

func writeLists(w io.Writer, cat *catalog.Catalog, enabled []string) error {
	for _, list := range cat.Lists() {
		mark := " "
		if slices.Contains(enabled, list.ID) {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %-16s %s (%d words)\n", mark, list.ID, list.Name, len(list.Words)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE:  runProfilesCmd,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Create a profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfilesAddCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm NAME",
		Short: "Delete a profile and its progress",
		Args:  cobra.ExactArgs(1),
		RunE:  runProfilesRmCmd,
	})
	return cmd
}

func runProfilesCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	names, err := env.store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(names) == 0 {
		logErrln("No profiles yet. Start a drill or run: sightdrill profiles add NAME")
		return nil
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runProfilesAddCmd(cmd *cobra.Command, args []string) error {
	env, err := setupEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	ctx := cmd.Context()
	name, err := profile.CleanName(args[0])
	if err != nil {
		return err
	}
	if _, err := env.store.Load(ctx, name); err == nil {
		return fmt.Errorf("profile %q already exists", name)
	} else if !errors.Is(err, profile.ErrNotFound) {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	rec := profile.New(name)
	rec.UpdatedAt = time.Now()
	if err := env.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	logErrf("Created profile %q\n", name)
	return nil
}

func runProfilesRmCmd(cmd *cobra.Command, args []string) error {
	env, err := setupEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	name := strings.TrimSpace(args[0])
	if err := env.store.Delete(cmd.Context(), name); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return fmt.Errorf("profile %q not found", name)
		}
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	logErrf("Deleted profile %q\n", name)
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show progress for a profile",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().IntVar(&statsWeak, "weak", defaultWeakTop, "number of weakest words to show")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	cfg := model.StatsConfig{
		Profile:     env.cfg.Profile,
		Weak:        statsWeak,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}
	if err := config.ValidateStats(cfg); err != nil {
		return err
	}

	report, err := stats.BuildReport(cmd.Context(), env.store, env.cat, cfg)
	if errors.Is(err, profile.ErrNotFound) {
		return fmt.Errorf("profile %q not found", cfg.Profile)
	}
	if err != nil {
		return fmt.Errorf("failed to build stats: %w", err)
	}
	out := cmd.OutOrStdout()
	return stats.RenderReport(out, report, cfg.CurveWindow, stats.TerminalWidth(), stats.ShouldUseColor(out, false))
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear word history and score for a profile",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetYes, "yes", false, "do not ask for confirmation")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	ctx := cmd.Context()
	name, err := profile.CleanName(env.cfg.Profile)
	if err != nil {
		return err
	}
	rec, err := env.store.Load(ctx, name)
	if errors.Is(err, profile.ErrNotFound) {
		return fmt.Errorf("profile %q not found", name)
	}
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	if !resetYes {
		ok, err := confirm(cmd.InOrStdin(), fmt.Sprintf("Reset all progress for %q? [y/N]: ", name))
		if err != nil {
			return err
		}
		if !ok {
			logErrln("Aborted.")
			return nil
		}
	}

	rec = rec.ResetProgress()
	rec.UpdatedAt = time.Now()
	if err := env.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	logErrf("Progress for %q was reset\n", name)
	return nil
}

func confirm(in io.Reader, prompt string) (bool, error) {
	logErrf("%s", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func newNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Print the next word to practice",
		Args:  cobra.NoArgs,
		RunE:  runNextCmd,
	}
}

func runNextCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	d, err := env.startDrill(cmd.Context())
	if err != nil {
		return err
	}
	word, ok := d.Current()
	if !ok {
		return fmt.Errorf("no words available in the enabled lists")
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), word); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer WORD yes|no",
		Short: "Record an answer and print the next word",
		Args:  cobra.ExactArgs(2),
		RunE:  runAnswerCmd,
	}
}

func runAnswerCmd(cmd *cobra.Command, args []string) error {
	correct, err := parseVerdict(args[1])
	if err != nil {
		return err
	}
	env, err := setupEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	d, err := env.startDrill(cmd.Context())
	if err != nil {
		return err
	}
	out, err := d.AnswerWord(cmd.Context(), strings.TrimSpace(args[0]), correct)
	if err != nil {
		return err
	}
	if err := writeOutcome(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	if next, ok := d.Current(); ok {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "next: %s\n", next); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func writeOutcome(w io.Writer, out drill.Outcome) error {
	verdict := "missed"
	if out.Correct {
		verdict = "correct"
	}
	line := fmt.Sprintf("%s: %s (streak %d/%d, %s) score %d",
		out.Word, verdict, out.Record.Streak, mastery.Threshold, out.Record.Status, out.Session.Score)
	if out.Promoted {
		line += fmt.Sprintf("\n%s is mastered!", out.Word)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func parseVerdict(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "correct", "right":
		return true, nil
	case "no", "n", "incorrect", "wrong":
		return false, nil
	default:
		return false, fmt.Errorf("answer must be yes or no, got %q", s)
	}
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sightdrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# profile = %q          # Profile to open
# policy = %q           # Word selection: current (focus on learning words) or all
# mode = %q         # flashcard, hearing or spelling
# preview-ms = %d          # How long the spelling word stays visible
# lists = [%q]  # Word lists for every run, overriding the profile's choice

[storage]
# backend = %q           # sqlite or toml
# path = ""                 # Database or profiles file (default: XDG data dir)

[catalog]
# lists-file = %q
# wordlist-dir = %q

[speech]
# command = "espeak-ng -s 120"   # Program that speaks the word in hearing mode

[log]
# level = "info"            # debug, info, warn or error
`,
		defaultProfile,
		defaultPolicy,
		defaultMode,
		defaultPreviewMs,
		catalog.DefaultListID,
		defaultBackend,
		config.DefaultListsPath(),
		config.DefaultWordListDir(),
	)
}
