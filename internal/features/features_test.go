package features

import (
	"fmt"
	"testing"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// balls returns n deliveries for batter spread round-robin over matches.
func balls(batter string, n, runsEach, matches int) []model.Delivery {
	out := make([]model.Delivery, n)
	for i := range out {
		out[i] = model.Delivery{
			MatchID:     i%matches + 1,
			Batter:      batter,
			Bowler:      "B",
			BatsmanRuns: runsEach,
			TotalRuns:   runsEach,
		}
	}
	return out
}

func TestPlayers_QualificationFilter(t *testing.T) {
	ds := &model.Dataset{}
	ds.Deliveries = append(ds.Deliveries, balls("Zed", 120, 2, 4)...)
	ds.Deliveries = append(ds.Deliveries, balls("Amy", 100, 1, 5)...)
	ds.Deliveries = append(ds.Deliveries, balls("Short", 99, 6, 1)...)

	set := Players(ds, MinBallsFaced)
	if len(set.Players) != 2 {
		t.Fatalf("expected 2 qualifying players, got %d", len(set.Players))
	}
	if set.Players[0].Player != "Amy" || set.Players[1].Player != "Zed" {
		t.Errorf("expected name order Amy, Zed; got %s, %s", set.Players[0].Player, set.Players[1].Player)
	}

	amy := set.Players[0]
	if amy.TotalRuns != 100 || amy.BallsFaced != 100 || amy.Matches != 5 {
		t.Errorf("Amy record: %+v", amy)
	}
	if set.Points[0][0] != 100 || set.Points[0][1] != 20 {
		t.Errorf("Amy features: %v", set.Points[0])
	}
	zed := set.Points[1]
	if zed[0] != 200 || zed[1] != 60 {
		t.Errorf("Zed features: %v", zed)
	}
}

func TestPlayers_ZeroThresholdKeepsEveryone(t *testing.T) {
	ds := &model.Dataset{Deliveries: balls("Solo", 3, 0, 1)}
	set := Players(ds, 0)
	if len(set.Players) != 1 || set.Points[0][0] != 0 || set.Points[0][1] != 0 {
		t.Errorf("expected one zero-rate player, got %+v", set)
	}
}

func TestTeams(t *testing.T) {
	ds := &model.Dataset{}
	for i := 0; i < 4; i++ {
		winner := "A"
		if i == 3 {
			winner = "B"
		}
		ds.Matches = append(ds.Matches, model.Match{ID: i, Season: "2020", Team1: "A", Team2: "B", Winner: winner})
	}
	set := Teams(ds)
	if len(set.Points) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(set.Points))
	}
	got := fmt.Sprintf("%s=%.0f %s=%.0f", set.Teams[0].Team, set.Points[0][0], set.Teams[1].Team, set.Points[1][0])
	if got != "A=75 B=25" {
		t.Errorf("team features: %s", got)
	}
}
