package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/casebundle/internal/api"
	"github.com/jackzampolin/casebundle/internal/config"
	"github.com/jackzampolin/casebundle/internal/home"
	"github.com/jackzampolin/casebundle/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "casebundle",
	Short: "Compile court bundles from ordered PDF documents",
	Long: `casebundle compiles an ordered list of PDF documents into a single court
bundle: a generated table of contents followed by every document, with each
page stamped with its bundle page number.

Bundles can be described by a manifest file or read from a case database.
Documents added after a bundle was served can be sub-numbered (45A, 45B)
instead of repaginating everything that follows.`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.casebundle/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "casebundle home directory (default: ~/.casebundle)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// newLogger returns the CLI logger. Logs go to stderr so stdout stays
// parseable.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// env is what local commands need: the home directory, the file config and
// the effective config with stored overrides applied.
type env struct {
	home   *home.Dir
	mgr    *config.Manager
	live   *config.Live
	logger *slog.Logger
	close  func()
}

// loadEnv reads the config. Overrides from the settings store apply when the
// store exists; it is never created here.
func loadEnv(ctx context.Context) (*env, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}

	path := cfgFile
	if path == "" && h.ConfigExists() {
		path = h.ConfigPath()
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		return nil, err
	}

	logger := newLogger()
	e := &env{home: h, mgr: mgr, logger: logger, close: func() {}}

	var store config.Store
	if _, err := os.Stat(h.SettingsDBPath()); err == nil {
		s, err := config.OpenStore(ctx, h.SettingsDBPath())
		if err != nil {
			return nil, err
		}
		store = s
		e.close = func() { s.Close() }
	}

	live, err := config.NewLive(ctx, mgr, store, logger)
	if err != nil {
		e.close()
		return nil, err
	}
	e.live = live
	return e, nil
}

// caseDBPath resolves --db, then case_db, then {home}/cases.db.
func (e *env) caseDBPath(flag string) string {
	if flag != "" {
		return flag
	}
	if p := e.live.Get().CaseDB; p != "" {
		return p
	}
	return e.home.CaseDBPath()
}

// outputDir resolves --out, then output.dir, then {home}/bundles.
func (e *env) outputDir(flag string) string {
	if flag != "" {
		return flag
	}
	if dir := e.live.Get().Output.Dir; dir != "" {
		return dir
	}
	return e.home.BundlesPath()
}
