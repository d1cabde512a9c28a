package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/config"
	"github.com/pable/go-cricket-metrics/internal/dataset"
	"github.com/pable/go-cricket-metrics/internal/model"
)

var (
	cfg     *config.Config
	logger  *slog.Logger
	verbose bool

	flagMatches    string
	flagDeliveries string
	flagDB         string
)

var (
	cWarn   = color.New(color.FgYellow)
	cError  = color.New(color.FgRed, color.Bold)
	cHeader = color.New(color.FgCyan, color.Bold)
)

var rootCmd = &cobra.Command{
	Use:   "cricmetrics",
	Short: "Cricket match analytics tool",
	Long: `Compute team, player, season and venue summaries from cricket match and
ball-by-ball delivery records, segment players and teams, mine association
rules over match context and estimate in-game win probability.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cError.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagMatches, "matches", "", "path or http(s) URL of the matches CSV (default from config)")
	pf.StringVar(&flagDeliveries, "deliveries", "", "path or http(s) URL of the deliveries CSV (default from config)")
	pf.StringVar(&flagDB, "db", "", "path to SQLite import store (default ~/.cricmetrics/cricket.db)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(venuesCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(seasonsCmd)
	rootCmd.AddCommand(oversCmd)
	rootCmd.AddCommand(clustersCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(winprobCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
}

// setup loads configuration and lets explicit flags override it.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagMatches != "" {
		c.MatchesPath = flagMatches
	}
	if flagDeliveries != "" {
		c.DeliveriesPath = flagDeliveries
	}
	if flagDB != "" {
		c.DBPath = flagDB
	}
	level, err := logLevel(c, verbose)
	if err != nil {
		return err
	}
	cfg = c
	logger = newLogger(level)
	return nil
}

// logLevel resolves the configured level; --verbose forces debug.
func logLevel(c *config.Config, verbose bool) (slog.Level, error) {
	level, err := c.Level()
	if err != nil {
		return 0, err
	}
	if verbose {
		return slog.LevelDebug, nil
	}
	return level, nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if s, ok := a.Value.Any().(string); ok && s == "" {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// storePath is the configured store, or the per-user default.
func storePath() string {
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath
	}
	return filepath.Join(mustUserHome(), ".cricmetrics", "cricket.db")
}

// loadDataset reads the store when one exists, else the CSV files, and warns
// on stderr when the synthetic fallback is in use.
func loadDataset(ctx context.Context) *model.Dataset {
	opts := dataset.Options{MatchesPath: cfg.MatchesPath, DeliveriesPath: cfg.DeliveriesPath}
	if p := storePath(); fileExists(p) {
		opts.DBPath = p
	}
	ds := dataset.Load(ctx, logger, opts)
	if ds.Synthetic {
		cWarn.Fprintln(os.Stderr, "warning: source data unavailable, showing synthetic data")
	}
	return ds
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
