package segment

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// KMeans is Lloyd's algorithm with k-means++ seeding. The restart with the
// lowest inertia wins. A fixed Seed gives identical assignments across runs.
type KMeans struct {
	Restarts int
	MaxIter  int
	Tol      float64
	Seed     uint64
}

// NewKMeans returns the default configuration.
func NewKMeans() KMeans {
	return KMeans{Restarts: 10, MaxIter: 300, Tol: 1e-4, Seed: 42}
}

func (km KMeans) Fit(points [][]float64, k int) ([]int, error) {
	if err := checkInput(points, k); err != nil {
		return nil, err
	}
	restarts := max(km.Restarts, 1)
	rng := rand.New(rand.NewPCG(km.Seed, km.Seed))

	var best []int
	bestInertia := math.Inf(1)
	for r := 0; r < restarts; r++ {
		centers := seedPlusPlus(points, k, rng)
		labels, inertia := km.lloyd(points, centers)
		if inertia < bestInertia {
			best, bestInertia = labels, inertia
		}
	}
	return best, nil
}

func (km KMeans) lloyd(points, centers [][]float64) ([]int, float64) {
	k := len(centers)
	dims := len(points[0])
	labels := make([]int, len(points))
	next := make([][]float64, k)
	counts := make([]int, k)

	for iter := 0; iter < max(km.MaxIter, 1); iter++ {
		for i, p := range points {
			labels[i], _ = nearest(p, centers)
		}

		for c := range next {
			next[c] = make([]float64, dims)
			counts[c] = 0
		}
		for i, p := range points {
			floats.Add(next[labels[i]], p)
			counts[labels[i]]++
		}
		shift := 0.0
		for c := range next {
			if counts[c] == 0 {
				// empty cluster keeps its centre
				copy(next[c], centers[c])
				continue
			}
			floats.Scale(1/float64(counts[c]), next[c])
			d := floats.Distance(next[c], centers[c], 2)
			shift += d * d
		}
		for c := range centers {
			copy(centers[c], next[c])
		}
		if shift <= km.Tol {
			break
		}
	}

	inertia := 0.0
	for i, p := range points {
		var d float64
		labels[i], d = nearest(p, centers)
		inertia += d
	}
	return labels, inertia
}

// seedPlusPlus picks k initial centres, each drawn with probability
// proportional to its squared distance from the closest centre so far.
func seedPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(points[rng.IntN(len(points))]))

	d2 := make([]float64, len(points))
	for len(centers) < k {
		total := 0.0
		for i, p := range points {
			_, d2[i] = nearest(p, centers)
			total += d2[i]
		}
		target := rng.Float64() * total
		pick := -1
		acc := 0.0
		for i, d := range d2 {
			if d == 0 {
				continue
			}
			pick = i
			acc += d
			if acc >= target {
				break
			}
		}
		centers = append(centers, clone(points[pick]))
	}
	return centers
}

// nearest returns the index of the closest centre and the squared distance to
// it. Ties go to the lower index.
func nearest(p []float64, centers [][]float64) (int, float64) {
	best, bestD := 0, math.Inf(1)
	for c, ctr := range centers {
		d := floats.Distance(p, ctr, 2)
		if d*d < bestD {
			best, bestD = c, d*d
		}
	}
	return best, bestD
}

func clone(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
