package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/winprob"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func pct(v float64) string { return fmt.Sprintf("%.2f%%", v) }

// PrintOverview prints the dataset summary line.
func PrintOverview(w io.Writer, o model.Overview, synthetic bool) {
	fmt.Fprintf(w, "\nMatches: %d  |  Seasons: %d  |  Teams: %d  |  Deliveries: %d\n",
		o.TotalMatches, o.TotalSeasons, o.TotalTeams, o.TotalDeliveries)
	if synthetic {
		fmt.Fprintln(w, "(synthetic fallback data)")
	}
	fmt.Fprintln(w)
}

// PrintTeamTable prints team records in the order given.
// If focus is non-empty, that team's row is marked with ">".
func PrintTeamTable(w io.Writer, teams []model.TeamRecord, focus string) {
	table := newTable(w)
	table.Header(" ", "TEAM", "MATCHES", "WINS", "WIN%")
	for _, t := range teams {
		marker := " "
		if focus != "" && t.Team == focus {
			marker = ">"
		}
		table.Append(marker, t.Team, strconv.Itoa(t.Matches), strconv.Itoa(t.Wins), pct(t.WinPercentage))
	}
	table.Render()
}

// PrintSeasonTable prints one team's season-by-season record.
func PrintSeasonTable(w io.Writer, team string, seasons []model.SeasonRecord) {
	fmt.Fprintf(w, "\n%s by season\n", team)
	if len(seasons) == 0 {
		fmt.Fprintln(w, "  no matches found")
		return
	}
	table := newTable(w)
	table.Header("SEASON", "MATCHES", "WINS", "WIN%")
	for _, s := range seasons {
		table.Append(strconv.Itoa(s.Season), strconv.Itoa(s.Matches), strconv.Itoa(s.Wins), pct(s.WinPercentage))
	}
	table.Render()
}

// PrintTeamStats prints a team's overall record and scoring rate per season.
func PrintTeamStats(w io.Writer, team string, s model.TeamStats) {
	fmt.Fprintf(w, "\n%s  |  Matches: %d  |  Wins: %d  |  Win%%: %s\n", team, s.Matches, s.Wins, pct(s.WinPct))
	if len(s.Seasons) == 0 {
		return
	}
	table := newTable(w)
	table.Header("SEASON", "RUNS/BALL")
	for _, a := range s.Seasons {
		table.Append(strconv.Itoa(a.Season), fmt.Sprintf("%.2f", a.AvgRuns))
	}
	table.Render()
}

// PrintVenueTable prints match counts per city.
func PrintVenueTable(w io.Writer, venues []model.CityCount) {
	table := newTable(w)
	table.Header("#", "CITY", "MATCHES")
	for i, v := range venues {
		table.Append(strconv.Itoa(i+1), v.City, strconv.Itoa(v.MatchCount))
	}
	table.Render()
}

// PrintLeaders prints the run and wicket leaderboards side by side.
func PrintLeaders(w io.Writer, l model.PlayerLeaders) {
	table := newTable(w)
	table.Header("#", "BATTER", "RUNS", "BOWLER", "WKTS")
	n := max(len(l.TopBatsmen), len(l.TopBowlers))
	for i := 0; i < n; i++ {
		bat, runs, bowl, wkts := "—", "", "—", ""
		if i < len(l.TopBatsmen) {
			bat, runs = l.TopBatsmen[i].Player, strconv.Itoa(l.TopBatsmen[i].TotalRuns)
		}
		if i < len(l.TopBowlers) {
			bowl, wkts = l.TopBowlers[i].Player, strconv.Itoa(l.TopBowlers[i].Wickets)
		}
		table.Append(strconv.Itoa(i+1), bat, runs, bowl, wkts)
	}
	table.Render()
}

// PrintPlayerProfile prints a single batter's summary.
func PrintPlayerProfile(w io.Writer, p model.PlayerProfile) {
	if p.BallsFaced == 0 {
		fmt.Fprintf(w, "\nNo deliveries found for %q.\n", p.Player)
		return
	}
	fmt.Fprintf(w, "\n%s (%s)\n", p.Player, p.Role)
	table := newTable(w)
	table.Header("RUNS", "BALLS", "MATCHES", "SR", "AVG")
	table.Append(strconv.Itoa(p.TotalRuns), strconv.Itoa(p.BallsFaced), strconv.Itoa(p.Matches),
		fmt.Sprintf("%.2f", p.StrikeRate), fmt.Sprintf("%.2f", p.Average))
	table.Render()
}

// PrintTrendTable prints boundary counts per season.
func PrintTrendTable(w io.Writer, trends []model.BoundaryTrend) {
	table := newTable(w)
	table.Header("SEASON", "SIXES", "FOURS")
	for _, t := range trends {
		table.Append(strconv.Itoa(t.Season), strconv.Itoa(t.Sixes), strconv.Itoa(t.Fours))
	}
	table.Render()
}

// PrintOverTable prints total runs per over with a proportional bar.
func PrintOverTable(w io.Writer, overs []model.OverRuns, placeholder bool) {
	if placeholder {
		fmt.Fprintln(w, "(no over column in source; placeholder series)")
	}
	peak := 0
	for _, o := range overs {
		peak = max(peak, o.TotalRuns)
	}
	table := newTable(w)
	table.Header("OVER", "RUNS", "")
	for _, o := range overs {
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("█", o.TotalRuns*30/peak)
		}
		table.Append(strconv.Itoa(o.Over), strconv.Itoa(o.TotalRuns), bar)
	}
	table.Render()
}

// PrintSegments prints cluster assignments with their display features.
func PrintSegments(w io.Writer, segs []model.Segment, featureNames ...string) {
	table := newTable(w)
	header := []any{"ENTITY", "CLUSTER", "NAME"}
	for _, f := range featureNames {
		header = append(header, strings.ToUpper(f))
	}
	table.Header(header...)
	for _, s := range segs {
		row := []any{s.EntityID, strconv.Itoa(s.ClusterID), s.ClusterName}
		for _, f := range s.Features {
			row = append(row, fmt.Sprintf("%.2f", f))
		}
		table.Append(row...)
	}
	table.Render()
}

// PrintRules prints association rules in mining order.
func PrintRules(w io.Writer, rules []model.AssociationRule) {
	if len(rules) == 0 {
		fmt.Fprintln(w, "No rules cleared the thresholds.")
		return
	}
	table := newTable(w)
	table.Header("#", "IF", "THEN", "SUPPORT", "CONF", "LIFT")
	for i, r := range rules {
		table.Append(
			strconv.Itoa(i+1),
			"{"+strings.Join(r.Antecedent, ", ")+"}",
			"{"+strings.Join(r.Consequent, ", ")+"}",
			fmt.Sprintf("%.2f", r.Support),
			fmt.Sprintf("%.2f", r.Confidence),
			fmt.Sprintf("%.2f", r.Lift),
		)
	}
	table.Render()
}

// PrintWinProbability prints an estimate and the match state behind it.
func PrintWinProbability(w io.Writer, r winprob.Result) {
	side := r.BattingTeam
	if side == "" {
		side = "Batting side"
	}
	fmt.Fprintf(w, "\n%s win probability: %.0f%%\n", side, r.WinProbability*100)
	table := newTable(w)
	table.Header("RUNS_LEFT", "BALLS_LEFT", "WKTS_LEFT", "CRR", "RRR")
	table.Append(strconv.Itoa(r.RunsLeft), strconv.Itoa(r.BallsLeft), strconv.Itoa(r.WicketsLeft),
		fmt.Sprintf("%.2f", r.CurrentRunRate), fmt.Sprintf("%.2f", r.RequiredRunRate))
	table.Render()
}

// PrintRawTable prints arbitrary query output.
func PrintRawTable(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)
	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}
