package dataset

import (
	"math/rand/v2"
	"strconv"

	"github.com/pable/go-cricket-metrics/internal/model"
)

const (
	syntheticMatches    = 100
	syntheticDeliveries = 100
	syntheticSeed       = 42
)

// Synthetic returns the fixed fallback dataset: 100 matches over two seasons
// and 100 deliveries, all in match 1. Run values come from a seeded generator
// so repeated calls are identical.
func Synthetic() *model.Dataset {
	var (
		seasons = []string{"2020", "2021"}
		cities  = []string{"Mumbai", "Delhi", "Bangalore", "Chennai"}
		team1   = []string{"MI", "CSK", "RCB", "KKR"}
		team2   = []string{"DC", "RR", "SRH", "PBKS"}
		venues  = []string{"Wankhede", "Chepauk", "Chinnaswamy", "Eden"}
	)

	ds := &model.Dataset{Synthetic: true}
	for i := 0; i < syntheticMatches; i++ {
		ds.Matches = append(ds.Matches, model.Match{
			ID:     i + 1,
			Season: seasons[i%len(seasons)],
			City:   cities[i%len(cities)],
			Team1:  team1[i%len(team1)],
			Team2:  team2[i%len(team2)],
			Winner: team1[i%len(team1)],
			Venue:  venues[i%len(venues)],
		})
	}

	rng := rand.New(rand.NewPCG(syntheticSeed, syntheticSeed))
	ds.Deliveries = make([]model.Delivery, syntheticDeliveries)
	for i := range ds.Deliveries {
		n := strconv.Itoa(i%10 + 1)
		ds.Deliveries[i] = model.Delivery{
			MatchID:     1,
			Batter:      "Player" + n,
			Bowler:      "Bowler" + n,
			BatsmanRuns: rng.IntN(7),
		}
	}
	for i := range ds.Deliveries {
		ds.Deliveries[i].TotalRuns = rng.IntN(7)
	}
	return ds
}
