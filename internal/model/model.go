package model

import "math"

// ---- Raw records supplied by the dataset source ----

// Match is one row of the matches relation. Empty strings stand for absent values.
type Match struct {
	ID         int
	Season     string // raw representation, e.g. "2015" or "2007/08"
	City       string
	Team1      string
	Team2      string
	Winner     string // "" when no result
	Venue      string
	TossWinner string
}

// Delivery is one ball of one innings.
type Delivery struct {
	MatchID     int
	Batter      string
	Bowler      string
	Over        int
	HasOver     bool // false when the row carried no over number
	BatsmanRuns int
	TotalRuns   int
	IsWicket    int // 0 or 1; meaningful only when the source has the column
}

// Columns records which optional columns the source carried.
type Columns struct {
	Over       bool
	IsWicket   bool
	TossWinner bool
}

// Dataset holds the two relations loaded once at startup. Callers must treat it
// as read-only; every query function builds its own request-local state.
type Dataset struct {
	Matches    []Match
	Deliveries []Delivery
	Columns    Columns
	Synthetic  bool // true when the fallback dataset was substituted
}

// ---- Derived records ----

// Overview is the dataset-wide count summary.
type Overview struct {
	TotalMatches    int `json:"total_matches"`
	TotalSeasons    int `json:"total_seasons"`
	TotalTeams      int `json:"total_teams"`
	TotalDeliveries int `json:"total_deliveries"`
}

// TeamRecord is a team's win/loss summary over some set of matches.
type TeamRecord struct {
	Team          string  `json:"team"`
	Matches       int     `json:"matches"`
	Wins          int     `json:"wins"`
	WinPercentage float64 `json:"win_percentage"`
}

// SeasonRecord is one team's record restricted to a single canonical season.
type SeasonRecord struct {
	Season        int     `json:"season"`
	Matches       int     `json:"matches"`
	Wins          int     `json:"wins"`
	WinPercentage float64 `json:"win_percentage"`
}

// CityCount is the number of matches hosted in a city.
type CityCount struct {
	City       string `json:"city"`
	MatchCount int    `json:"match_count"`
}

// BatterTotal is a batter's career run tally.
type BatterTotal struct {
	Player    string `json:"player"`
	TotalRuns int    `json:"total_runs"`
}

// BowlerTotal is a bowler's wicket tally.
type BowlerTotal struct {
	Player  string `json:"player"`
	Wickets int    `json:"wickets"`
}

// PlayerLeaders holds the top run scorers and wicket takers.
type PlayerLeaders struct {
	TopBatsmen []BatterTotal `json:"top_batsmen"`
	TopBowlers []BowlerTotal `json:"top_bowlers"`
}

// BoundaryTrend counts boundaries hit in one canonical season.
type BoundaryTrend struct {
	Season int `json:"season"`
	Sixes  int `json:"sixes"`
	Fours  int `json:"fours"`
}

// OverRuns is the total of runs scored in one over number across all matches.
type OverRuns struct {
	Over      int `json:"over"`
	TotalRuns int `json:"total_runs"`
}

// SeasonAverage is the mean runs per delivery in one season.
type SeasonAverage struct {
	Season  int     `json:"season"`
	AvgRuns float64 `json:"avg_runs"`
}

// TeamStats is the aggregate record for one team plus per-season scoring rate.
type TeamStats struct {
	Matches int             `json:"matches"`
	Wins    int             `json:"wins"`
	WinPct  float64         `json:"win_pct"`
	Seasons []SeasonAverage `json:"seasons"`
}

// PlayerRecord is a batter's batting summary.
type PlayerRecord struct {
	Player     string  `json:"player"`
	TotalRuns  int     `json:"total_runs"`
	BallsFaced int     `json:"balls_faced"`
	Matches    int     `json:"matches"`
	StrikeRate float64 `json:"strike_rate"`
	Average    float64 `json:"average"`
}

// PlayerProfile is the single-player lookup record.
type PlayerProfile struct {
	PlayerRecord
	Role          string `json:"role"`
	RecentMatches []int  `json:"recent_matches"`
}

// Segment assigns an entity to a named cluster. Exactly one of Player and
// Team is set, holding the record the features were taken from.
type Segment struct {
	EntityID    string
	ClusterID   int
	ClusterName string
	Features    []float64

	Player *PlayerRecord
	Team   *TeamRecord
}

// AssociationRule is an antecedent => consequent implication over match items.
type AssociationRule struct {
	Antecedent []string `json:"antecedent"`
	Consequent []string `json:"consequent"`
	Support    float64  `json:"support"`
	Confidence float64  `json:"confidence"`
	Lift       float64  `json:"lift"`
}

// Ratio returns num/den, or 0 when den is zero.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Pct returns num/den*100 for integer counts, 0 when den is zero.
func Pct(num, den int) float64 {
	return Ratio(float64(num), float64(den)) * 100
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (r *PlayerRecord) computeRates() {
	r.StrikeRate = Ratio(float64(r.TotalRuns), float64(r.BallsFaced)) * 100
	r.Average = Ratio(float64(r.TotalRuns), float64(r.Matches))
}

// NewPlayerRecord builds a PlayerRecord and derives its strike rate and average.
func NewPlayerRecord(player string, runs, balls, matches int) PlayerRecord {
	r := PlayerRecord{Player: player, TotalRuns: runs, BallsFaced: balls, Matches: matches}
	r.computeRates()
	return r
}

// Teams returns every distinct team, first from the Team1 column then from the
// Team2 column, in order of first appearance.
func (ds *Dataset) Teams() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(t string) {
		if t == "" {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	for _, m := range ds.Matches {
		add(m.Team1)
	}
	for _, m := range ds.Matches {
		add(m.Team2)
	}
	return out
}

// Involves reports whether team played in m.
func (m *Match) Involves(team string) bool {
	return m.Team1 == team || m.Team2 == team
}
