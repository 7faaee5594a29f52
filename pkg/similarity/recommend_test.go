package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type profile struct {
	name      string
	interests string
}

func (p profile) GetInterests() string { return p.interests }

func TestRecommendNoOthers(t *testing.T) {
	assert.Empty(t, Recommend("go rust", nil, DefaultMaxClusters))
	assert.Empty(t, RecommendProfiles(profile{interests: "go"}, []profile{}, DefaultMaxClusters))
}

func TestRecommendNonPositiveMaxClusters(t *testing.T) {
	assert.Empty(t, Recommend("go", []string{"go"}, 0))
}

func TestRecommendSingleOtherAlwaysMatches(t *testing.T) {
	// k = 1 puts everyone in the same cluster
	assert.Equal(t, []int{0}, Recommend("go", []string{"cooking baking"}, DefaultMaxClusters))
}

func TestRecommendReturnsSameClusterSubset(t *testing.T) {
	user := profile{name: "me", interests: "go concurrency channels"}
	others := []profile{
		{name: "a", interests: "go concurrency goroutines"},
		{name: "b", interests: "baking bread sourdough"},
		{name: "c", interests: "go channels concurrency"},
		{name: "d", interests: "gardening tomatoes"},
		{name: "e", interests: "painting watercolor"},
		{name: "f", interests: "baking cakes"},
	}

	got := RecommendProfiles(user, others, DefaultMaxClusters)

	texts := make([]string, 0, len(others)+1)
	texts = append(texts, user.interests)
	for _, o := range others {
		texts = append(texts, o.interests)
	}
	_, vectors := BuildTfIdf(texts)
	assignments, _ := KMeans(vectors, DefaultMaxClusters, DefaultMaxIterations, DefaultSeed)

	for _, p := range got {
		assert.Contains(t, others, p)
	}
	for i, o := range others {
		if assignments[i+1] == assignments[0] {
			assert.Contains(t, got, o)
		} else {
			assert.NotContains(t, got, o)
		}
	}
}

func TestRecommendPreservesOrder(t *testing.T) {
	indices := Recommend("python", []string{"python", "python", "python"}, 2)
	for i := 1; i < len(indices); i++ {
		assert.Less(t, indices[i-1], indices[i])
	}
}
