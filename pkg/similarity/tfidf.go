package similarity

import (
	"math"
	"strings"
)

// Vocabulary maps words to vector indices in first-seen order.
type Vocabulary struct {
	Index map[string]int
	Words []string
}

// Size returns the number of distinct words.
func (v Vocabulary) Size() int {
	return len(v.Words)
}

func tokenize(doc string) []string {
	return strings.Fields(strings.ToLower(doc))
}

// BuildTfIdf vectorizes documents with smoothed TF-IDF weights.
// Each returned vector has one entry per vocabulary word and is L2-normalized
// (all-zero vectors stay all-zero).
func BuildTfIdf(documents []string) (Vocabulary, [][]float64) {
	vocab := Vocabulary{Index: make(map[string]int)}
	tokenized := make([][]string, len(documents))
	docFreq := make(map[string]int)

	for i, doc := range documents {
		tokens := tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[string]bool, len(tokens))
		for _, word := range tokens {
			if _, ok := vocab.Index[word]; !ok {
				vocab.Index[word] = len(vocab.Words)
				vocab.Words = append(vocab.Words, word)
			}
			if !seen[word] {
				seen[word] = true
				docFreq[word]++
			}
		}
	}

	n := float64(len(documents))
	vectors := make([][]float64, len(documents))
	for i, tokens := range tokenized {
		counts := make(map[string]int, len(tokens))
		for _, word := range tokens {
			counts[word]++
		}

		docLen := float64(len(tokens))
		if docLen < 1 {
			docLen = 1
		}

		vec := make([]float64, vocab.Size())
		for word, count := range counts {
			tf := float64(count) / docLen
			idf := math.Log((n+1)/(float64(docFreq[word])+1)) + 1
			vec[vocab.Index[word]] = tf * idf
		}
		vectors[i] = normalize(vec)
	}

	return vocab, vectors
}

func normalize(vec []float64) []float64 {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
