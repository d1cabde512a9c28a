// Package features derives numeric feature vectors for players and teams.
package features

import (
	"sort"

	"github.com/pable/go-cricket-metrics/internal/aggregator"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// MinBallsFaced is the default qualification threshold for player clustering.
const MinBallsFaced = 100

// PlayerSet is the qualifying batters and their (strike_rate, average) rows.
type PlayerSet struct {
	Players []model.PlayerRecord
	Points  [][]float64
}

// Players groups deliveries by batter, keeps batters with at least minBalls
// balls faced and returns them sorted by name. Rates that would divide by
// zero are reported as 0.
func Players(ds *model.Dataset, minBalls int) PlayerSet {
	type acc struct {
		runs, balls int
		matches     map[int]struct{}
	}
	byBatter := make(map[string]*acc)
	for _, d := range ds.Deliveries {
		if d.Batter == "" {
			continue
		}
		a := byBatter[d.Batter]
		if a == nil {
			a = &acc{matches: make(map[int]struct{})}
			byBatter[d.Batter] = a
		}
		a.runs += d.BatsmanRuns
		a.balls++
		a.matches[d.MatchID] = struct{}{}
	}

	names := make([]string, 0, len(byBatter))
	for n, a := range byBatter {
		if a.balls >= minBalls {
			names = append(names, n)
		}
	}
	sort.Strings(names)

	set := PlayerSet{
		Players: make([]model.PlayerRecord, 0, len(names)),
		Points:  make([][]float64, 0, len(names)),
	}
	for _, n := range names {
		a := byBatter[n]
		rec := model.NewPlayerRecord(n, a.runs, a.balls, len(a.matches))
		set.Players = append(set.Players, rec)
		set.Points = append(set.Points, []float64{rec.StrikeRate, rec.Average})
	}
	return set
}

// TeamSet is every team with its single win-percentage feature.
type TeamSet struct {
	Teams  []model.TeamRecord
	Points [][]float64
}

// Teams returns one unrounded win-percentage row per team in discovery order.
func Teams(ds *model.Dataset) TeamSet {
	recs := aggregator.TeamRecords(ds)
	set := TeamSet{Teams: recs, Points: make([][]float64, len(recs))}
	for i, r := range recs {
		set.Points[i] = []float64{r.WinPercentage}
	}
	return set
}
