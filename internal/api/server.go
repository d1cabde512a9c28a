// Package api serves the analytics over HTTP as JSON.
package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/pable/go-cricket-metrics/internal/metrics"
	"github.com/pable/go-cricket-metrics/internal/mining"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// Options carries request defaults taken from configuration.
type Options struct {
	MinSupport    float64
	MinConfidence float64
	MaxRules      int
	MinBallsFaced int
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		MinSupport:    mining.DefaultMinSupport,
		MinConfidence: mining.DefaultMinConfidence,
		MaxRules:      mining.DefaultMaxRules,
		MinBallsFaced: 100,
	}
}

// Server wires HTTP routes over one immutable dataset. Every request
// recomputes its result; the server holds no mutable state besides metrics.
type Server struct {
	ds      *model.Dataset
	log     *slog.Logger
	metrics *metrics.Manager
	opts    Options
}

// NewServer creates a Server. A nil metrics manager gets a fresh one.
func NewServer(ds *model.Dataset, log *slog.Logger, m *metrics.Manager, opts Options) *Server {
	if m == nil {
		m = metrics.NewManager()
	}
	m.SetDataset(ds)
	return &Server{ds: ds, log: log, metrics: m, opts: opts}
}

// Handler returns the fully wrapped route tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return s.requestID(cors(mux))
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.Handle("GET /metrics", s.metrics.Handler())
	mux.HandleFunc("GET /healthz", s.instrument("healthz", s.handleHealth))

	mux.HandleFunc("GET /api/data/overview", s.instrument("overview", s.handleOverview))
	mux.HandleFunc("GET /api/data/team-performance", s.instrument("team_performance", s.handleTeamPerformance))
	mux.HandleFunc("GET /api/data/team-details/{team}", s.instrument("team_details", s.handleTeamDetails))
	mux.HandleFunc("GET /api/data/venue-analysis", s.instrument("venue_analysis", s.handleVenueAnalysis))
	mux.HandleFunc("GET /api/data/player-stats", s.instrument("player_stats", s.handlePlayerStats))
	mux.HandleFunc("GET /api/data/season-trends", s.instrument("season_trends", s.handleSeasonTrends))
	mux.HandleFunc("GET /api/data/match-details", s.instrument("match_details", s.handleMatchDetails))

	mux.HandleFunc("GET /api/clustering/batsman-clusters", s.instrument("batsman_clusters", s.handleBatsmanClusters))
	mux.HandleFunc("GET /api/clustering/team-clusters", s.instrument("team_clusters", s.handleTeamClusters))
	mux.HandleFunc("GET /api/rules", s.instrument("rules", s.handleRules))

	mux.HandleFunc("GET /api/players/suggest", s.instrument("players_suggest", s.handleSuggest))
	mux.HandleFunc("GET /api/players/stats", s.instrument("players_stats", s.handlePlayerProfile))
	mux.HandleFunc("GET /api/players/team-stats", s.instrument("players_team_stats", s.handleTeamStats))

	mux.HandleFunc("POST /api/win-probability", s.instrument("win_probability", s.handleWinProbability))
}

// observe times one computation and records its outcome.
func observe[T any](s *Server, op string, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	s.metrics.ObserveCompute(op, start, err)
	return v, err
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before touching the response so an unencodable value
// becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Code: "internal", Message: "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
