package similarity

// DefaultMaxClusters caps k when clustering interest profiles.
const DefaultMaxClusters = 5

// Recommend returns the indices into others whose interests fall into the same
// cluster as userInterests. The user is always document 0 of the clustered set,
// and k is min(len(others), maxClusters).
func Recommend(userInterests string, others []string, maxClusters int) []int {
	if len(others) == 0 {
		return []int{}
	}

	docs := make([]string, 0, len(others)+1)
	docs = append(docs, userInterests)
	docs = append(docs, others...)

	_, vectors := BuildTfIdf(docs)

	k := len(others)
	if maxClusters < k {
		k = maxClusters
	}

	assignments, _ := KMeans(vectors, k, DefaultMaxIterations, DefaultSeed)
	if len(assignments) == 0 {
		return []int{}
	}

	userCluster := assignments[0]
	similar := make([]int, 0)
	for i := range others {
		if assignments[i+1] == userCluster {
			similar = append(similar, i)
		}
	}
	return similar
}

// Profiled is anything carrying free-text interests.
type Profiled interface {
	GetInterests() string
}

// RecommendProfiles is Recommend over profile values; the result is a subset of others
// in their original order.
func RecommendProfiles[P Profiled](user P, others []P, maxClusters int) []P {
	texts := make([]string, len(others))
	for i, p := range others {
		texts[i] = p.GetInterests()
	}

	indices := Recommend(user.GetInterests(), texts, maxClusters)
	result := make([]P, 0, len(indices))
	for _, i := range indices {
		result = append(result, others[i])
	}
	return result
}
