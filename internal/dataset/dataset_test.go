package dataset

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/storage"
)

const matchesCSV = `id,season,city,team1,team2,toss_winner,winner,venue
1,2007/08,Mumbai,MI,CSK,CSK,MI,Wankhede
2,2009,,RCB,KKR,RCB,,Chinnaswamy
`

const deliveriesCSV = `match_id,inning,batsman,bowler,over,batsman_runs,extra_runs,total_runs,is_wicket
1,1,Rohit,Ashwin,1,4,0,4,0
1,1,Rohit,Ashwin,1,0,1,1,1
2,1,Kohli,Narine,,6,0,6,0
`

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFiles(t *testing.T, matches, deliveries string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	mp := filepath.Join(dir, "matches.csv")
	dp := filepath.Join(dir, "deliveries.csv")
	require.NoError(t, os.WriteFile(mp, []byte(matches), 0o644))
	require.NoError(t, os.WriteFile(dp, []byte(deliveries), 0o644))
	return mp, dp
}

func TestLoadCSV(t *testing.T) {
	mp, dp := writeFiles(t, matchesCSV, deliveriesCSV)
	ds, err := LoadCSV(context.Background(), mp, dp)
	require.NoError(t, err)

	require.Len(t, ds.Matches, 2)
	assert.Equal(t, model.Match{ID: 1, Season: "2007/08", City: "Mumbai", Team1: "MI", Team2: "CSK",
		Winner: "MI", Venue: "Wankhede", TossWinner: "CSK"}, ds.Matches[0])
	assert.Equal(t, "", ds.Matches[1].City)
	assert.Equal(t, "", ds.Matches[1].Winner)

	require.Len(t, ds.Deliveries, 3)
	assert.Equal(t, "Rohit", ds.Deliveries[0].Batter, "batsman is accepted for batter")
	assert.True(t, ds.Deliveries[0].HasOver)
	assert.Equal(t, 1, ds.Deliveries[1].IsWicket)
	assert.False(t, ds.Deliveries[2].HasOver)

	assert.Equal(t, model.Columns{Over: true, IsWicket: true, TossWinner: true}, ds.Columns)
	assert.False(t, ds.Synthetic)
}

func TestLoadCSV_OptionalColumnsAbsent(t *testing.T) {
	mp, dp := writeFiles(t,
		"id,season,team1,team2,winner\n1,2015,MI,CSK,MI\n",
		"match_id,batter,bowler,batsman_runs,total_runs\n1,Rohit,Ashwin,2,3\n")
	ds, err := LoadCSV(context.Background(), mp, dp)
	require.NoError(t, err)
	assert.Equal(t, model.Columns{}, ds.Columns)
	assert.Equal(t, "", ds.Matches[0].City)
	assert.Equal(t, 3, ds.Deliveries[0].TotalRuns)
}

func TestLoadCSV_Errors(t *testing.T) {
	mp, dp := writeFiles(t, "id,season,team1\n1,2015,MI\n", deliveriesCSV)
	_, err := LoadCSV(context.Background(), mp, dp)
	assert.ErrorIs(t, err, ErrMissingColumn)

	mp, dp = writeFiles(t, matchesCSV, strings.Replace(deliveriesCSV, "1,1,Rohit,Ashwin,1,4", "x,1,Rohit,Ashwin,1,4", 1))
	_, err = LoadCSV(context.Background(), mp, dp)
	assert.Error(t, err)

	_, err = LoadCSV(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), dp)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCSV_RejectsInvalidMatches(t *testing.T) {
	cases := map[string]string{
		"duplicate id": matchesCSV + "2,2010,Delhi,PBKS,RR,RR,RR,Kotla\n",
		"same teams":   matchesCSV + "3,2010,Delhi,RR,RR,RR,RR,Kotla\n",
	}
	for name, matches := range cases {
		t.Run(name, func(t *testing.T) {
			mp, dp := writeFiles(t, matches, deliveriesCSV)
			_, err := LoadCSV(context.Background(), mp, dp)
			assert.ErrorIs(t, err, ErrInvalidMatch)
			assert.Contains(t, err.Error(), "row 4")
		})
	}
}

func TestLoad_FallsBackToSynthetic(t *testing.T) {
	dir := t.TempDir()
	ds := Load(context.Background(), discard(), Options{
		MatchesPath:    filepath.Join(dir, "missing.csv"),
		DeliveriesPath: filepath.Join(dir, "missing.csv"),
	})
	assert.True(t, ds.Synthetic)
	assert.Len(t, ds.Matches, 100)
	assert.Len(t, ds.Deliveries, 100)
}

func TestLoad_PrefersStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cricket.db")
	db, err := storage.Open(dbPath)
	require.NoError(t, err)
	stored := &model.Dataset{Matches: []model.Match{{ID: 42, Season: "2016", Team1: "SRH", Team2: "RCB", Winner: "SRH"}}}
	_, err = db.ImportDataset(stored, "test")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	mp, dp := writeFiles(t, matchesCSV, deliveriesCSV)
	ds := Load(context.Background(), discard(), Options{MatchesPath: mp, DeliveriesPath: dp, DBPath: dbPath})
	require.Len(t, ds.Matches, 1)
	assert.Equal(t, 42, ds.Matches[0].ID)
}

func TestLoad_EmptyStoreReadsCSV(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	mp, dp := writeFiles(t, matchesCSV, deliveriesCSV)
	ds := Load(context.Background(), discard(), Options{MatchesPath: mp, DeliveriesPath: dp, DBPath: dbPath})
	assert.False(t, ds.Synthetic)
	assert.Len(t, ds.Matches, 2)
}

func TestSynthetic(t *testing.T) {
	a, b := Synthetic(), Synthetic()
	assert.Equal(t, a, b, "synthetic data must be deterministic")

	assert.Equal(t, "2020", a.Matches[0].Season)
	assert.Equal(t, "2021", a.Matches[1].Season)
	assert.Equal(t, "KKR", a.Matches[3].Team1)
	assert.Equal(t, "PBKS", a.Matches[3].Team2)
	assert.Equal(t, "Player10", a.Deliveries[9].Batter)
	assert.Equal(t, "Bowler1", a.Deliveries[10].Bowler)
	for _, d := range a.Deliveries {
		assert.Equal(t, 1, d.MatchID)
		assert.GreaterOrEqual(t, d.BatsmanRuns, 0)
		assert.LessOrEqual(t, d.BatsmanRuns, 6)
		assert.LessOrEqual(t, d.TotalRuns, 6)
	}
	assert.Equal(t, model.Columns{}, a.Columns)
}

func TestLoadCSV_FromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/matches.csv":
			io.WriteString(w, matchesCSV)
		case "/deliveries.csv":
			io.WriteString(w, deliveriesCSV)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ds, err := LoadCSV(context.Background(), srv.URL+"/matches.csv", srv.URL+"/deliveries.csv")
	require.NoError(t, err)
	assert.Len(t, ds.Matches, 2)
	assert.Len(t, ds.Deliveries, 3)

	_, err = LoadCSV(context.Background(), srv.URL+"/missing.csv", srv.URL+"/deliveries.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}
