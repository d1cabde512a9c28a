package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pable/go-cricket-metrics/internal/aggregator"
	"github.com/pable/go-cricket-metrics/internal/mining"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/segment"
	"github.com/pable/go-cricket-metrics/internal/winprob"
)

const maxBodyBytes = 1 << 20

type healthResponse struct {
	Status    string `json:"status"`
	Synthetic bool   `json:"synthetic"`
}

// Response envelopes keep the key names the dashboard reads.
type (
	teamStatsResponse struct {
		TeamStats []model.TeamRecord `json:"team_stats"`
	}
	seasonPerformanceResponse struct {
		PerformanceBySeason []model.SeasonRecord `json:"performance_by_season"`
	}
	venueResponse struct {
		CityMatches []model.CityCount `json:"city_matches"`
	}
	trendsResponse struct {
		BoundariesTrend []model.BoundaryTrend `json:"boundaries_trend"`
	}
	overRunsResponse struct {
		RunsByOver []model.OverRuns `json:"runs_by_over"`
	}
	clustersResponse struct {
		Clusters []any `json:"clusters"`
	}
)

// Cluster rows flatten a segment into its source record plus the assignment.
type (
	playerClusterRow struct {
		model.PlayerRecord
		Cluster     int    `json:"cluster"`
		ClusterName string `json:"cluster_name"`
	}
	teamClusterRow struct {
		model.TeamRecord
		Cluster     int    `json:"cluster"`
		ClusterName string `json:"cluster_name"`
	}
)

func clusterRows(segs []model.Segment) clustersResponse {
	rows := make([]any, 0, len(segs))
	for _, sg := range segs {
		switch {
		case sg.Player != nil:
			rows = append(rows, playerClusterRow{PlayerRecord: *sg.Player, Cluster: sg.ClusterID, ClusterName: sg.ClusterName})
		case sg.Team != nil:
			rows = append(rows, teamClusterRow{TeamRecord: *sg.Team, Cluster: sg.ClusterID, ClusterName: sg.ClusterName})
		}
	}
	return clustersResponse{Clusters: rows}
}

type profileResponse struct {
	Name          string  `json:"name"`
	TotalRuns     int     `json:"total_runs"`
	BallsFaced    int     `json:"balls_faced"`
	Matches       int     `json:"matches"`
	StrikeRate    float64 `json:"strike_rate"`
	Average       float64 `json:"average"`
	Role          string  `json:"role"`
	RecentMatches []int   `json:"recent_matches"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Synthetic: s.ds.Synthetic})
}

func (s *Server) handleOverview(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, aggregator.Overview(s.ds))
}

func (s *Server) handleTeamPerformance(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, teamStatsResponse{TeamStats: aggregator.TeamPerformance(s.ds)})
}

func (s *Server) handleTeamDetails(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, seasonPerformanceResponse{PerformanceBySeason: aggregator.TeamDetails(s.ds, r.PathValue("team"))})
}

func (s *Server) handleVenueAnalysis(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, venueResponse{CityMatches: aggregator.VenueAnalysis(s.ds)})
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, aggregator.PlayerStats(s.ds))
}

func (s *Server) handleSeasonTrends(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, trendsResponse{BoundariesTrend: aggregator.SeasonTrends(s.ds)})
}

func (s *Server) handleMatchDetails(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, overRunsResponse{RunsByOver: aggregator.MatchDetails(s.ds)})
}

func (s *Server) handleBatsmanClusters(w http.ResponseWriter, r *http.Request) {
	strategy, err := segment.ByName(r.URL.Query().Get("method"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	segs, err := observe(s, "batsman_clusters", func() ([]model.Segment, error) {
		return segment.ClusterPlayers(s.ds, strategy, s.opts.MinBallsFaced)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clusterRows(segs))
}

func (s *Server) handleTeamClusters(w http.ResponseWriter, r *http.Request) {
	strategy, err := segment.ByName(r.URL.Query().Get("method"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	segs, err := observe(s, "team_clusters", func() ([]model.Segment, error) {
		return segment.ClusterTeams(s.ds, strategy)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clusterRows(segs))
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	opts := mining.Options{
		MinSupport:    s.opts.MinSupport,
		MinConfidence: s.opts.MinConfidence,
		MaxRules:      s.opts.MaxRules,
	}
	var err error
	q := r.URL.Query()
	if opts.MinConfidence, err = floatParam(q.Get("min_conf"), opts.MinConfidence); err != nil {
		s.fail(w, r, err)
		return
	}
	if opts.MinSupport, err = floatParam(q.Get("min_sup"), opts.MinSupport); err != nil {
		s.fail(w, r, err)
		return
	}

	rules, err := observe(s, "rules", func() ([]model.AssociationRule, error) {
		return mining.MineRules(s.ds, mining.Apriori{}, opts)
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	for i := range rules {
		rules[i].Support = model.Round2(rules[i].Support)
		rules[i].Confidence = model.Round2(rules[i].Confidence)
		rules[i].Lift = model.Round2(rules[i].Lift)
	}
	writeJSON(w, http.StatusOK, rules)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, aggregator.SuggestPlayers(s.ds, r.URL.Query().Get("q"), aggregator.DefaultSuggestLimit))
}

func (s *Server) handlePlayerProfile(w http.ResponseWriter, r *http.Request) {
	p := aggregator.PlayerProfile(s.ds, r.URL.Query().Get("name"))
	writeJSON(w, http.StatusOK, profileResponse{
		Name:          p.Player,
		TotalRuns:     p.TotalRuns,
		BallsFaced:    p.BallsFaced,
		Matches:       p.Matches,
		StrikeRate:    model.Round2(p.StrikeRate),
		Average:       model.Round2(p.Average),
		Role:          p.Role,
		RecentMatches: p.RecentMatches,
	})
}

func (s *Server) handleTeamStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, aggregator.TeamStats(s.ds, r.URL.Query().Get("team")))
}

func (s *Server) handleWinProbability(w http.ResponseWriter, r *http.Request) {
	in := winprob.DefaultInput()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		s.fail(w, r, fmt.Errorf("%w: %v", winprob.ErrMalformedInput, err))
		return
	}
	res, err := winprob.Estimate(in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res.WinProbability = model.Round2(res.WinProbability)
	res.RequiredRunRate = model.Round2(res.RequiredRunRate)
	res.CurrentRunRate = model.Round2(res.CurrentRunRate)
	writeJSON(w, http.StatusOK, res)
}

func floatParam(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrBadRequest, raw)
	}
	return v, nil
}
