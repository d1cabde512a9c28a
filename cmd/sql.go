package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/report"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the import store",
	Long: `Run an arbitrary SQL query against the imported data and print results as a table.

Schema overview:
  matches(id, season, city, team1, team2, winner, venue, toss_winner)
  deliveries(seq, match_id, batter, bowler, over, batsman_runs, total_runs, is_wicket)
  imports(id, imported_at, source, has_over, has_is_wicket, has_toss_winner,
    match_count, delivery_count)

Note: season is stored as TEXT in its raw form, e.g. '2007/08'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(storePath())
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	report.PrintRawTable(os.Stdout, cols, rows)
	return nil
}
