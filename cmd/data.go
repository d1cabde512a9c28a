package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-metrics/internal/aggregator"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
)

var playersSuggest bool

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show dataset totals and the team standings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		showOverview(os.Stdout, loadDataset(cmd.Context()))
		return nil
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams [team]",
	Short: "Show team win percentages, or one team's record by season",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := loadDataset(cmd.Context())
		if len(args) == 0 {
			report.PrintTeamTable(os.Stdout, aggregator.TeamPerformance(ds), "")
			return nil
		}
		showTeam(os.Stdout, ds, args[0])
		return nil
	},
}

var venuesCmd = &cobra.Command{
	Use:   "venues",
	Short: "Show the 15 cities that hosted the most matches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		report.PrintVenueTable(os.Stdout, aggregator.VenueAnalysis(loadDataset(cmd.Context())))
		return nil
	},
}

var playersCmd = &cobra.Command{
	Use:   "players [name]",
	Short: "Show run and wicket leaders, or one batter's profile",
	Long: `Without arguments, show the top 20 run scorers and wicket takers.
With a name, show that batter's profile; with --suggest, list batters whose
name contains the argument.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := loadDataset(cmd.Context())
		switch {
		case len(args) == 0:
			report.PrintLeaders(os.Stdout, aggregator.PlayerStats(ds))
		case playersSuggest:
			showSuggestions(os.Stdout, ds, args[0])
		default:
			report.PrintPlayerProfile(os.Stdout, aggregator.PlayerProfile(ds, args[0]))
		}
		return nil
	},
}

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "Show sixes and fours per season",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		report.PrintTrendTable(os.Stdout, aggregator.SeasonTrends(loadDataset(cmd.Context())))
		return nil
	},
}

var oversCmd = &cobra.Command{
	Use:   "overs",
	Short: "Show total runs scored in each over number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ds := loadDataset(cmd.Context())
		report.PrintOverTable(os.Stdout, aggregator.MatchDetails(ds), !ds.Columns.Over)
		return nil
	},
}

func init() {
	playersCmd.Flags().BoolVar(&playersSuggest, "suggest", false, "treat the argument as a search string")
}

func showOverview(w io.Writer, ds *model.Dataset) {
	report.PrintOverview(w, aggregator.Overview(ds), ds.Synthetic)
	report.PrintTeamTable(w, aggregator.TeamPerformance(ds), "")
}

func showTeam(w io.Writer, ds *model.Dataset, team string) {
	report.PrintSeasonTable(w, team, aggregator.TeamDetails(ds, team))
	report.PrintTeamStats(w, team, aggregator.TeamStats(ds, team))
}

func showSuggestions(w io.Writer, ds *model.Dataset, query string) {
	names := aggregator.SuggestPlayers(ds, query, aggregator.DefaultSuggestLimit)
	if len(names) == 0 {
		cWarn.Fprintf(w, "no batters match %q\n", query)
		return
	}
	for _, n := range names {
		io.WriteString(w, n+"\n")
	}
}
