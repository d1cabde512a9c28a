// Package dataset loads the matches and deliveries relations from the SQLite
// store or CSV files, falling back to a small synthetic dataset.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

const (
	DefaultMatchesPath    = "matches.csv"
	DefaultDeliveriesPath = "deliveries.csv"
)

// Options selects the dataset source. When DBPath is set and the store holds
// an import, the store wins over the CSV files.
type Options struct {
	MatchesPath    string
	DeliveriesPath string
	DBPath         string
}

// Load returns the dataset for the process lifetime. It never fails: any
// source error is logged and the synthetic dataset is returned instead.
func Load(ctx context.Context, log *slog.Logger, opts Options) *model.Dataset {
	ds, err := load(ctx, log, opts)
	if err != nil {
		log.Warn("dataset load failed, using synthetic data", "error", err)
		return Synthetic()
	}
	log.Info("dataset loaded",
		"matches", len(ds.Matches),
		"deliveries", len(ds.Deliveries),
		"over_column", ds.Columns.Over,
		"is_wicket_column", ds.Columns.IsWicket,
	)
	return ds
}

func load(ctx context.Context, log *slog.Logger, opts Options) (*model.Dataset, error) {
	if opts.DBPath != "" {
		ds, err := fromStore(opts.DBPath)
		switch {
		case err == nil:
			log.Debug("dataset read from store", "db", opts.DBPath)
			return ds, nil
		case errors.Is(err, storage.ErrEmptyStore):
			log.Debug("store is empty, reading csv", "db", opts.DBPath)
		default:
			log.Warn("store unreadable, reading csv", "db", opts.DBPath, "error", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadCSV(ctx, opts.MatchesPath, opts.DeliveriesPath)
}

func fromStore(path string) (*model.Dataset, error) {
	db, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.LoadDataset()
}

// LoadCSV reads both relations from CSV files or http(s) URLs. Empty paths
// use the defaults.
func LoadCSV(ctx context.Context, matchesPath, deliveriesPath string) (*model.Dataset, error) {
	if matchesPath == "" {
		matchesPath = DefaultMatchesPath
	}
	if deliveriesPath == "" {
		deliveriesPath = DefaultDeliveriesPath
	}

	ds := &model.Dataset{}
	var err error
	if ds.Matches, ds.Columns.TossWinner, err = readMatches(ctx, matchesPath); err != nil {
		return nil, fmt.Errorf("read matches: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ds.Deliveries, ds.Columns.Over, ds.Columns.IsWicket, err = readDeliveries(ctx, deliveriesPath); err != nil {
		return nil, fmt.Errorf("read deliveries: %w", err)
	}
	return ds, nil
}
