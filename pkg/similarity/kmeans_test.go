package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKMeansDegenerateInput(t *testing.T) {
	vectors := [][]float64{{0, 1}, {1, 0}}

	tests := []struct {
		name    string
		vectors [][]float64
		k       int
	}{
		{name: "k zero", vectors: vectors, k: 0},
		{name: "k negative", vectors: vectors, k: -1},
		{name: "k greater than input", vectors: vectors, k: 3},
		{name: "empty input", vectors: nil, k: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignments, centroids := KMeans(tt.vectors, tt.k, DefaultMaxIterations, DefaultSeed)
			assert.Empty(t, assignments)
			assert.Empty(t, centroids)
		})
	}
}

func TestKMeansSeparatesObviousGroups(t *testing.T) {
	vectors := [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{10, 10}, {10.1, 10}, {10, 10.1},
	}

	assignments, centroids := KMeans(vectors, 2, DefaultMaxIterations, DefaultSeed)
	require.Len(t, assignments, 6)
	require.Len(t, centroids, 2)

	assert.Equal(t, assignments[0], assignments[1])
	assert.Equal(t, assignments[0], assignments[2])
	assert.Equal(t, assignments[3], assignments[4])
	assert.Equal(t, assignments[3], assignments[5])
	assert.NotEqual(t, assignments[0], assignments[3])

	low := centroids[assignments[0]]
	assert.InDelta(t, 0.0333, low[0], 1e-3)
	assert.InDelta(t, 0.0333, low[1], 1e-3)
}

func TestKMeansDeterministic(t *testing.T) {
	_, vectors := BuildTfIdf([]string{
		"go rust systems",
		"python data science",
		"go concurrency",
		"javascript react frontend",
		"python machine learning",
		"rust memory safety",
	})

	a1, c1 := KMeans(vectors, 3, DefaultMaxIterations, 7)
	a2, c2 := KMeans(vectors, 3, DefaultMaxIterations, 7)

	assert.Equal(t, a1, a2)
	assert.Equal(t, c1, c2)
}

func TestKMeansTiesGoToLowestCentroid(t *testing.T) {
	// identical points: every centroid is at distance zero
	vectors := [][]float64{{1, 1}, {1, 1}, {1, 1}}

	assignments, _ := KMeans(vectors, 3, DefaultMaxIterations, DefaultSeed)
	assert.Equal(t, []int{0, 0, 0}, assignments)
}

func TestKMeansSingleIterationLimit(t *testing.T) {
	vectors := [][]float64{{0}, {1}, {2}, {3}}

	assignments, centroids := KMeans(vectors, 2, 1, DefaultSeed)
	assert.Len(t, assignments, 4)
	assert.Len(t, centroids, 2)
	for _, a := range assignments {
		assert.True(t, a == 0 || a == 1)
	}
}
