// Package segment groups players and teams into a fixed number of clusters.
//
// Cluster ids are mapped to names through a positional table. The names carry
// no statistical meaning: cluster 0 is "Aggressive" whatever its centroid.
package segment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/pable/go-cricket-metrics/internal/features"
	"github.com/pable/go-cricket-metrics/internal/model"
)

// K is the number of clusters produced for both players and teams.
const K = 3

// MaxPlayerSegments caps the number of player segments returned.
const MaxPlayerSegments = 50

// Labels maps a cluster id to its display name.
var Labels = map[int]string{
	0: "Aggressive",
	1: "Consistent",
	2: "Balanced",
}

var (
	// ErrInsufficientData is matched by every *InsufficientDataError.
	ErrInsufficientData = errors.New("insufficient data for clustering")
	ErrUnknownMethod    = errors.New("unknown clustering method")
)

// InsufficientDataError reports that fewer distinct points than clusters were
// available.
type InsufficientDataError struct {
	Distinct int
	K        int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for clustering: %d distinct points, need %d", e.Distinct, e.K)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// ClusteringStrategy assigns each point a cluster id in [0, k).
type ClusteringStrategy interface {
	Fit(points [][]float64, k int) ([]int, error)
}

// ByName resolves a strategy from its CLI/API name.
func ByName(method string) (ClusteringStrategy, error) {
	switch strings.ToLower(method) {
	case "", "kmeans", "k-means":
		return NewKMeans(), nil
	case "hierarchical", "agglomerative", "ward":
		return Agglomerative{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
}

// Label returns the display name for a cluster id.
func Label(id int) string {
	if name, ok := Labels[id]; ok {
		return name
	}
	return "Cluster " + strconv.Itoa(id)
}

// Standardize rescales every column to zero mean and unit population standard
// deviation. Constant columns are only centred.
func Standardize(points [][]float64) [][]float64 {
	if len(points) == 0 {
		return nil
	}
	dims := len(points[0])
	out := make([][]float64, len(points))
	for i := range out {
		out[i] = make([]float64, dims)
	}
	col := make([]float64, len(points))
	for j := 0; j < dims; j++ {
		for i, p := range points {
			col[i] = p[j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		for i, p := range points {
			out[i][j] = (p[j] - mean) / std
		}
	}
	return out
}

// ClusterPlayers segments batters with at least minBalls balls faced on
// standardized (strike rate, average). At most MaxPlayerSegments are returned,
// in player name order.
func ClusterPlayers(ds *model.Dataset, strategy ClusteringStrategy, minBalls int) ([]model.Segment, error) {
	set := features.Players(ds, minBalls)
	ids, err := strategy.Fit(Standardize(set.Points), K)
	if err != nil {
		return nil, fmt.Errorf("cluster players: %w", err)
	}
	n := min(len(set.Players), MaxPlayerSegments)
	out := make([]model.Segment, 0, n)
	for i := 0; i < n; i++ {
		p := set.Players[i]
		p.StrikeRate, p.Average = model.Round2(p.StrikeRate), model.Round2(p.Average)
		out = append(out, model.Segment{
			EntityID:    p.Player,
			ClusterID:   ids[i],
			ClusterName: Label(ids[i]),
			Features:    []float64{p.StrikeRate, p.Average},
			Player:      &p,
		})
	}
	return out, nil
}

// ClusterTeams segments teams on their raw win percentage.
func ClusterTeams(ds *model.Dataset, strategy ClusteringStrategy) ([]model.Segment, error) {
	set := features.Teams(ds)
	ids, err := strategy.Fit(set.Points, K)
	if err != nil {
		return nil, fmt.Errorf("cluster teams: %w", err)
	}
	out := make([]model.Segment, len(set.Teams))
	for i, t := range set.Teams {
		t.WinPercentage = model.Round2(t.WinPercentage)
		out[i] = model.Segment{
			EntityID:    t.Team,
			ClusterID:   ids[i],
			ClusterName: Label(ids[i]),
			Features:    []float64{t.WinPercentage},
			Team:        &t,
		}
	}
	return out, nil
}

// checkInput validates k and counts distinct points.
func checkInput(points [][]float64, k int) error {
	if k <= 0 {
		return fmt.Errorf("segment: k must be positive, got %d", k)
	}
	seen := make(map[string]struct{}, len(points))
	for _, p := range points {
		seen[fmt.Sprint(p)] = struct{}{}
		if len(seen) >= k {
			return nil
		}
	}
	return &InsufficientDataError{Distinct: len(seen), K: k}
}
