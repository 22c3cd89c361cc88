// Package main provides the CLI entrypoint for sightdrill.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/verte-zerg/sightdrill/internal/catalog"
	"github.com/verte-zerg/sightdrill/internal/config"
	"github.com/verte-zerg/sightdrill/internal/drill"
	"github.com/verte-zerg/sightdrill/internal/filestore"
	"github.com/verte-zerg/sightdrill/internal/logger"
	"github.com/verte-zerg/sightdrill/internal/mastery"
	"github.com/verte-zerg/sightdrill/internal/model"
	"github.com/verte-zerg/sightdrill/internal/pool"
	"github.com/verte-zerg/sightdrill/internal/profile"
	"github.com/verte-zerg/sightdrill/internal/store"
	"github.com/verte-zerg/sightdrill/internal/tts"
	"github.com/verte-zerg/sightdrill/internal/tui"
)

const (
	defaultProfile     = "default"
	defaultPolicy      = "current"
	defaultMode        = string(profile.ModeFlashcard)
	defaultPreviewMs   = profile.DefaultPreviewMs
	defaultBackend     = model.BackendSQLite
	defaultWeakTop     = 10
	defaultCurveWindow = 5

	envPrefix = "SIGHTDRILL"
)

var (
	flagProfile   string
	flagBackend   string
	flagStorePath string
	flagLogLevel  string

	practicePolicy    string
	practiceMode      string
	practicePreviewMs int
	practiceLists     []string

	statsWeak        int
	statsLast        int
	statsCurveWindow int

	resetYes bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sightdrill",
		Short:         "Sight-word drill for early readers",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDrillCmd,
	}

	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", defaultProfile, "profile name")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", defaultBackend, "profile storage backend (sqlite|toml)")
	rootCmd.PersistentFlags().StringVar(&flagStorePath, "store-path", "", "profile storage path (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug|info|warn|error)")

	rootCmd.Flags().StringVar(&practicePolicy, "policy", defaultPolicy, "word selection policy (current|all)")
	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "drill mode (flashcard|hearing|spelling)")
	rootCmd.Flags().IntVar(&practicePreviewMs, "preview-ms", defaultPreviewMs, "spelling preview duration in milliseconds")
	rootCmd.Flags().StringArrayVar(&practiceLists, "list", nil, "word list id to practice this run (repeatable)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newListsCmd())
	rootCmd.AddCommand(newProfilesCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newAnswerCmd())

	return rootCmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	cfg, fileCfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logFile, err := openLogFile(config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()
	log := logger.Setup(cfg.LogLevel, logFile)

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := cmd.Context()
	d := drill.New(drill.Options{Store: st, Catalog: cat, Logger: log})
	if err := d.Start(ctx, cfg.Profile); err != nil {
		return fmt.Errorf("failed to start drill: %w", err)
	}
	if err := applyPracticeSettings(ctx, cmd, fileCfg, cfg, d); err != nil {
		return err
	}

	m := tui.NewModel(ctx, tui.Options{
		Drill:   d,
		Store:   st,
		Speaker: tts.New(cfg.SpeechCommand, log),
		Logger:  log,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// applyPracticeSettings saves the settings given on the command line or in the config
// file into the profile. A --list selection only lasts for this run.
func applyPracticeSettings(ctx context.Context, cmd *cobra.Command, fileCfg config.FileConfig, cfg model.Config, d *drill.Drill) error {
	if isSet(cmd, "policy", fileCfg.Practice.Policy != nil) {
		if err := d.SetPolicy(ctx, cfg.Policy); err != nil {
			return err
		}
	}
	if isSet(cmd, "mode", fileCfg.Practice.Mode != nil) {
		if err := d.SetMode(ctx, cfg.Mode); err != nil {
			return err
		}
	}
	if isSet(cmd, "preview-ms", fileCfg.Practice.PreviewMs != nil) {
		if err := d.SetPreview(ctx, cfg.PreviewMs); err != nil {
			return err
		}
	}
	if len(cfg.Lists) > 0 {
		d.UseLists(cfg.Lists)
		if requested := pool.NewSelection(cfg.Lists, catalog.DefaultListID).IDs(); len(d.EnabledLists()) != len(requested) {
			slog.Warn("ignoring unknown word lists", "requested", cfg.Lists, "using", d.EnabledLists())
		}
	}
	return nil
}

// resolveConfig merges the config file under the command-line flags and validates the result.
func resolveConfig(cmd *cobra.Command) (model.Config, config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fileCfg, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "profile", &flagProfile, fileCfg.Practice.Profile)
	applyStringConfig(cmd, "policy", &practicePolicy, fileCfg.Practice.Policy)
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyIntConfig(cmd, "preview-ms", &practicePreviewMs, fileCfg.Practice.PreviewMs)
	applyStringSliceConfig(cmd, "list", &practiceLists, fileCfg.Practice.Lists)
	applyStringConfig(cmd, "backend", &flagBackend, fileCfg.Storage.Backend)
	applyStringConfig(cmd, "store-path", &flagStorePath, fileCfg.Storage.Path)
	applyStringConfig(cmd, "log-level", &flagLogLevel, fileCfg.Log.Level)

	policy, err := mastery.ParsePolicy(practicePolicy)
	if err != nil {
		return model.Config{}, fileCfg, fmt.Errorf("--policy must be one of: current all")
	}
	mode, err := profile.ParseMode(practiceMode)
	if err != nil {
		return model.Config{}, fileCfg, fmt.Errorf("--mode must be one of: flashcard hearing spelling")
	}

	cfg := model.Config{
		Profile:     strings.TrimSpace(flagProfile),
		Policy:      policy,
		Mode:        mode,
		PreviewMs:   practicePreviewMs,
		Lists:       practiceLists,
		Backend:     strings.ToLower(strings.TrimSpace(flagBackend)),
		StorePath:   flagStorePath,
		ListsPath:   config.DefaultListsPath(),
		WordListDir: config.DefaultWordListDir(),
		LogLevel:    strings.ToLower(strings.TrimSpace(flagLogLevel)),
	}
	if p := fileCfg.Catalog.ListsFile; p != nil {
		cfg.ListsPath = *p
	}
	if p := fileCfg.Catalog.WordListDir; p != nil {
		cfg.WordListDir = *p
	}
	if c := fileCfg.Speech.Command; c != nil {
		cfg.SpeechCommand = *c
	}

	if err := config.Validate(cfg); err != nil {
		return model.Config{}, fileCfg, err
	}
	return cfg, fileCfg, nil
}

func loadCatalog(cfg model.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(catalog.Sources{YAMLPath: cfg.ListsPath, WordListDir: cfg.WordListDir})
	if err != nil {
		return nil, fmt.Errorf("failed to load word lists: %w", err)
	}
	return cat, nil
}

// openStore returns the configured profile store and a function that releases it.
func openStore(cfg model.Config) (profile.Store, func(), error) {
	switch cfg.Backend {
	case model.BackendTOML:
		v := viper.New()
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
		if cfg.StorePath != "" {
			v.Set(filestore.PathKey, cfg.StorePath)
		}
		repo, err := filestore.NewRepository(v)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open profiles file: %w", err)
		}
		slog.Debug("using profiles file", "path", repo.Path())
		return repo, func() {}, nil
	default:
		path := cfg.StorePath
		if path == "" {
			path = config.DefaultDBPath()
		}
		st, err := store.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db: %w", err)
		}
		slog.Debug("using database", "path", path)
		return st, func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}, nil
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func isSet(cmd *cobra.Command, name string, inFile bool) bool {
	return cmd.Flags().Changed(name) || inFile
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = append([]string(nil), (*value)...)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
