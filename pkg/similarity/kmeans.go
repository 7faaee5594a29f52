package similarity

import (
	"math"
	"math/rand"
)

const (
	DefaultMaxIterations = 100
	DefaultSeed          = 42
)

// KMeans clusters vectors into k groups.
// It returns one cluster id per vector and the final centroids. Degenerate input
// (no vectors, k <= 0, k > len(vectors)) yields empty results.
//
// Initial centroids are k distinct input vectors sampled from a source seeded
// with seed, so identical input and seed always produce the same clustering.
func KMeans(vectors [][]float64, k, maxIterations int, seed int64) ([]int, [][]float64) {
	if len(vectors) == 0 || k <= 0 || k > len(vectors) {
		return []int{}, [][]float64{}
	}

	rng := rand.New(rand.NewSource(seed))
	centroids := make([][]float64, k)
	for j, idx := range rng.Perm(len(vectors))[:k] {
		centroids[j] = append([]float64(nil), vectors[idx]...)
	}

	assignments := make([]int, len(vectors))
	for i := range assignments {
		assignments[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, vec := range vectors {
			nearest := nearestCentroid(vec, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed = true
			}
		}
		if !changed {
			break
		}
		updateCentroids(vectors, assignments, centroids)
	}

	return assignments, centroids
}

// nearestCentroid returns the first centroid at minimum distance.
func nearestCentroid(vec []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for j, c := range centroids {
		d := euclidean(vec, c)
		if d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

func updateCentroids(vectors [][]float64, assignments []int, centroids [][]float64) {
	dims := len(vectors[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for i, vec := range vectors {
		c := assignments[i]
		if sums[c] == nil {
			sums[c] = make([]float64, dims)
		}
		for d := 0; d < dims && d < len(vec); d++ {
			sums[c][d] += vec[d]
		}
		counts[c]++
	}

	for j := range centroids {
		// empty clusters keep their previous centroid
		if counts[j] == 0 {
			continue
		}
		for d := range sums[j] {
			sums[j][d] /= float64(counts[j])
		}
		centroids[j] = sums[j]
	}
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := 0; i < len(a) && i < len(b); i++ {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
