package segment

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Agglomerative is bottom-up Ward clustering. At each step the pair of
// clusters whose merge least increases within-cluster variance is merged;
// ties go to the pair with the lowest indices. Cluster ids are numbered in
// order of first appearance in the input.
type Agglomerative struct{}

type wardCluster struct {
	centroid []float64
	size     int
	members  []int
}

func (Agglomerative) Fit(points [][]float64, k int) ([]int, error) {
	if err := checkInput(points, k); err != nil {
		return nil, err
	}

	clusters := make([]*wardCluster, len(points))
	for i, p := range points {
		clusters[i] = &wardCluster{centroid: clone(p), size: 1, members: []int{i}}
	}

	for len(clusters) > k {
		bi, bj := 0, 1
		bestCost := math.Inf(1)
		for i := 0; i < len(clusters); i++ {
			for j := i + 1; j < len(clusters); j++ {
				if c := wardCost(clusters[i], clusters[j]); c < bestCost {
					bi, bj, bestCost = i, j, c
				}
			}
		}
		clusters[bi] = merge(clusters[bi], clusters[bj])
		clusters = append(clusters[:bj], clusters[bj+1:]...)
	}

	owner := make([]int, len(points))
	for c, cl := range clusters {
		for _, m := range cl.members {
			owner[m] = c
		}
	}
	ids := make(map[int]int, k)
	labels := make([]int, len(points))
	for i, c := range owner {
		id, ok := ids[c]
		if !ok {
			id = len(ids)
			ids[c] = id
		}
		labels[i] = id
	}
	return labels, nil
}

// wardCost is the increase in total within-cluster sum of squares caused by
// merging a and b.
func wardCost(a, b *wardCluster) float64 {
	d := floats.Distance(a.centroid, b.centroid, 2)
	na, nb := float64(a.size), float64(b.size)
	return na * nb / (na + nb) * d * d
}

func merge(a, b *wardCluster) *wardCluster {
	n := a.size + b.size
	centroid := make([]float64, len(a.centroid))
	floats.AddScaled(centroid, float64(a.size), a.centroid)
	floats.AddScaled(centroid, float64(b.size), b.centroid)
	floats.Scale(1/float64(n), centroid)
	members := append(append([]int(nil), a.members...), b.members...)
	return &wardCluster{centroid: centroid, size: n, members: members}
}
