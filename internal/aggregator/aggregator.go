// Package aggregator computes per-team, per-player, per-season, per-venue and
// per-over summaries from a Dataset. Every function is a pure query: it reads
// the dataset and returns freshly built records.
package aggregator

import (
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/season"
)

const (
	TopVenues  = 15
	TopPlayers = 20

	// DefaultSuggestLimit caps player-name suggestions.
	DefaultSuggestLimit = 10

	placeholderOvers = 20
	placeholderSeed  = 42
)

// Overview counts matches, distinct raw seasons, distinct teams and deliveries.
func Overview(ds *model.Dataset) model.Overview {
	seasons := make(map[string]struct{})
	for _, m := range ds.Matches {
		if m.Season == "" {
			continue
		}
		seasons[m.Season] = struct{}{}
	}
	return model.Overview{
		TotalMatches:    len(ds.Matches),
		TotalSeasons:    len(seasons),
		TotalTeams:      len(ds.Teams()),
		TotalDeliveries: len(ds.Deliveries),
	}
}

// TeamPerformance returns one record per team ordered by win percentage
// descending. Teams with equal percentages keep their discovery order.
func TeamPerformance(ds *model.Dataset) []model.TeamRecord {
	out := TeamRecords(ds)
	for i := range out {
		out[i].WinPercentage = model.Round2(out[i].WinPercentage)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WinPercentage > out[j].WinPercentage
	})
	return out
}

// TeamRecords builds unrounded team records in team discovery order.
func TeamRecords(ds *model.Dataset) []model.TeamRecord {
	teams := ds.Teams()
	played := make(map[string]int, len(teams))
	wins := make(map[string]int, len(teams))
	for _, m := range ds.Matches {
		if m.Team1 != "" {
			played[m.Team1]++
		}
		if m.Team2 != "" && m.Team2 != m.Team1 {
			played[m.Team2]++
		}
		if m.Winner != "" {
			wins[m.Winner]++
		}
	}

	out := make([]model.TeamRecord, 0, len(teams))
	for _, t := range teams {
		out = append(out, model.TeamRecord{
			Team:          t,
			Matches:       played[t],
			Wins:          wins[t],
			WinPercentage: model.Pct(wins[t], played[t]),
		})
	}
	return out
}

// TeamDetails breaks a team's record down by canonical season, ascending.
// An unknown team yields an empty slice.
func TeamDetails(ds *model.Dataset, team string) []model.SeasonRecord {
	type acc struct{ matches, wins int }
	bySeason := make(map[int]*acc)
	for _, m := range ds.Matches {
		if !m.Involves(team) {
			continue
		}
		s := season.Normalize(m.Season)
		a := bySeason[s]
		if a == nil {
			a = &acc{}
			bySeason[s] = a
		}
		a.matches++
		if m.Winner == team {
			a.wins++
		}
	}

	out := make([]model.SeasonRecord, 0, len(bySeason))
	for s, a := range bySeason {
		out = append(out, model.SeasonRecord{
			Season:        s,
			Matches:       a.matches,
			Wins:          a.wins,
			WinPercentage: model.Round2(model.Pct(a.wins, a.matches)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Season < out[j].Season })
	return out
}

// VenueAnalysis counts matches per city and returns the busiest 15.
func VenueAnalysis(ds *model.Dataset) []model.CityCount {
	counts := make(map[string]int)
	for _, m := range ds.Matches {
		if m.City == "" {
			continue
		}
		counts[m.City]++
	}
	out := make([]model.CityCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, model.CityCount{City: c, MatchCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchCount != out[j].MatchCount {
			return out[i].MatchCount > out[j].MatchCount
		}
		return out[i].City < out[j].City
	})
	return head(out, TopVenues)
}

// PlayerStats returns the top 20 run scorers and the top 20 wicket takers.
// Without an is_wicket column every delivery bowled counts toward the tally.
func PlayerStats(ds *model.Dataset) model.PlayerLeaders {
	runs := make(map[string]int)
	wickets := make(map[string]int)
	for _, d := range ds.Deliveries {
		if d.Batter != "" {
			runs[d.Batter] += d.BatsmanRuns
		}
		if d.Bowler == "" {
			continue
		}
		if !ds.Columns.IsWicket || d.IsWicket == 1 {
			wickets[d.Bowler]++
		}
	}

	batters := make([]model.BatterTotal, 0, len(runs))
	for p, r := range runs {
		batters = append(batters, model.BatterTotal{Player: p, TotalRuns: r})
	}
	sort.Slice(batters, func(i, j int) bool {
		if batters[i].TotalRuns != batters[j].TotalRuns {
			return batters[i].TotalRuns > batters[j].TotalRuns
		}
		return batters[i].Player < batters[j].Player
	})

	bowlers := make([]model.BowlerTotal, 0, len(wickets))
	for p, w := range wickets {
		bowlers = append(bowlers, model.BowlerTotal{Player: p, Wickets: w})
	}
	sort.Slice(bowlers, func(i, j int) bool {
		if bowlers[i].Wickets != bowlers[j].Wickets {
			return bowlers[i].Wickets > bowlers[j].Wickets
		}
		return bowlers[i].Player < bowlers[j].Player
	})

	return model.PlayerLeaders{
		TopBatsmen: head(batters, TopPlayers),
		TopBowlers: head(bowlers, TopPlayers),
	}
}

// SeasonTrends counts sixes (batsman_runs == 6) and fours (total_runs == 4)
// per canonical season. Fours include byes and no-balls worth four; deliveries
// whose match is unknown are skipped.
func SeasonTrends(ds *model.Dataset) []model.BoundaryTrend {
	seasonOf := matchSeasons(ds)
	bySeason := make(map[int]*model.BoundaryTrend)
	for _, d := range ds.Deliveries {
		s, ok := seasonOf[d.MatchID]
		if !ok {
			continue
		}
		tr := bySeason[s]
		if tr == nil {
			tr = &model.BoundaryTrend{Season: s}
			bySeason[s] = tr
		}
		if d.BatsmanRuns == 6 {
			tr.Sixes++
		}
		if d.TotalRuns == 4 {
			tr.Fours++
		}
	}

	out := make([]model.BoundaryTrend, 0, len(bySeason))
	for _, tr := range bySeason {
		out = append(out, *tr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Season < out[j].Season })
	return out
}

// MatchDetails sums total runs per over number. When the source has no over
// column a fixed placeholder series for overs 1..20 is returned instead.
func MatchDetails(ds *model.Dataset) []model.OverRuns {
	if !ds.Columns.Over {
		return placeholderOverRuns()
	}
	byOver := make(map[int]int)
	for _, d := range ds.Deliveries {
		if !d.HasOver {
			continue
		}
		byOver[d.Over] += d.TotalRuns
	}
	out := make([]model.OverRuns, 0, len(byOver))
	for o, r := range byOver {
		out = append(out, model.OverRuns{Over: o, TotalRuns: r})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Over < out[j].Over })
	return out
}

func placeholderOverRuns() []model.OverRuns {
	rng := rand.New(rand.NewPCG(placeholderSeed, placeholderSeed))
	out := make([]model.OverRuns, placeholderOvers)
	for i := range out {
		out[i] = model.OverRuns{Over: i + 1, TotalRuns: 30 + rng.IntN(50)}
	}
	return out
}

// TeamStats returns a team's overall record plus, per canonical season, the
// mean total runs per delivery across the team's matches.
func TeamStats(ds *model.Dataset, team string) model.TeamStats {
	out := model.TeamStats{Seasons: []model.SeasonAverage{}}
	if team == "" {
		return out
	}

	type runAcc struct{ runs, balls int }
	seasonOf := make(map[int]int)
	perSeason := make(map[int]*runAcc)
	for _, m := range ds.Matches {
		if m.Winner == team {
			out.Wins++
		}
		if !m.Involves(team) {
			continue
		}
		out.Matches++
		s := season.Normalize(m.Season)
		seasonOf[m.ID] = s
		if perSeason[s] == nil {
			perSeason[s] = &runAcc{}
		}
	}
	for _, d := range ds.Deliveries {
		s, ok := seasonOf[d.MatchID]
		if !ok {
			continue
		}
		perSeason[s].runs += d.TotalRuns
		perSeason[s].balls++
	}

	for s, a := range perSeason {
		out.Seasons = append(out.Seasons, model.SeasonAverage{
			Season:  s,
			AvgRuns: model.Round2(model.Ratio(float64(a.runs), float64(a.balls))),
		})
	}
	sort.Slice(out.Seasons, func(i, j int) bool { return out.Seasons[i].Season < out.Seasons[j].Season })
	out.WinPct = model.Round2(model.Pct(out.Wins, out.Matches))
	return out
}

// SuggestPlayers returns batters whose name contains query (case-insensitive),
// in order of first appearance, at most limit names.
func SuggestPlayers(ds *model.Dataset, query string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	q := strings.ToLower(query)
	seen := make(map[string]struct{})
	out := []string{}
	for _, d := range ds.Deliveries {
		if d.Batter == "" {
			continue
		}
		if _, ok := seen[d.Batter]; ok {
			continue
		}
		seen[d.Batter] = struct{}{}
		if strings.Contains(strings.ToLower(d.Batter), q) {
			out = append(out, d.Batter)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// PlayerProfile summarises one batter. Unknown names yield zero values.
func PlayerProfile(ds *model.Dataset, name string) model.PlayerProfile {
	var runs, balls int
	matches := make(map[int]struct{})
	for _, d := range ds.Deliveries {
		if d.Batter != name {
			continue
		}
		runs += d.BatsmanRuns
		balls++
		matches[d.MatchID] = struct{}{}
	}
	return model.PlayerProfile{
		PlayerRecord:  model.NewPlayerRecord(name, runs, balls, len(matches)),
		Role:          "Batsman",
		RecentMatches: []int{},
	}
}

func matchSeasons(ds *model.Dataset) map[int]int {
	out := make(map[int]int, len(ds.Matches))
	for _, m := range ds.Matches {
		out[m.ID] = season.Normalize(m.Season)
	}
	return out
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
