package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/dataset"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the matches and deliveries CSVs into the SQLite store",
	Long: `Parse the matches and deliveries CSV files once and store them in SQLite.
Later commands read the store instead of the CSV files. Importing again
replaces the stored data.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func runImport(cmd *cobra.Command, _ []string) error {
	ds, err := dataset.LoadCSV(cmd.Context(), cfg.MatchesPath, cfg.DeliveriesPath)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	path := storePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(path)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	source := cfg.MatchesPath + "," + cfg.DeliveriesPath
	id, err := db.ImportDataset(ds, source)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	logger.Debug("import stored", "id", id, "db", path)
	fmt.Fprintf(os.Stdout, "Imported %d matches and %d deliveries into %s (import %s)\n",
		len(ds.Matches), len(ds.Deliveries), path, id)
	return nil
}
