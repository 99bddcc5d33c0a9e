package matching

import (
	"math"

	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/normalize"
)

// TFIDF scores queries by cosine similarity of TF-IDF weighted token
// vectors. Document frequencies are computed over the joint corpus and query
// set; vectors are L2-normalized at Prepare time so the cosine reduces to a
// sparse dot product.
type TFIDF struct {
	base
	corpusVectors []Vector
	queryVectors  []Vector
}

// NewTFIDF creates the weighted-term cosine algorithm with the given
// acceptance threshold.
func NewTFIDF(threshold float64) *TFIDF {
	return &TFIDF{base: base{name: "tfidf", threshold: threshold}}
}

func (t *TFIDF) Prepare(corpus, queries []normalize.TextRecord) {
	t.setInputs(corpus, queries)

	vectorizer := NewTokenVectorizer(false)
	corpusTexts := normalizedOf(corpus)
	queryTexts := normalizedOf(queries)
	vectorizer.Fit(corpusTexts, queryTexts)

	corpusCounts := vectorizer.TransformAll(corpusTexts)
	queryCounts := vectorizer.TransformAll(queryTexts)

	idf := inverseDocumentFrequencies(vectorizer.VocabularySize(), corpusCounts, queryCounts)

	t.corpusVectors = weightAll(corpusCounts, idf)
	t.queryVectors = weightAll(queryCounts, idf)
}

func (t *TFIDF) MatchQuery(idx int) (Result, error) {
	if err := t.checkIndex(idx); err != nil {
		return Result{}, err
	}
	if t.queries[idx].Normalized == "" || len(t.corpus) == 0 {
		return t.noMatch(idx), nil
	}

	queryVec := t.queryVectors[idx]
	if len(queryVec) == 0 {
		return t.noMatch(idx), nil
	}

	bestIdx := -1
	bestScore := -1.0
	for i, refVec := range t.corpusVectors {
		score := queryVec.Dot(refVec)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	// Guard against floating-point drift above 1 on near-identical vectors.
	if bestScore > 1 {
		bestScore = 1
	}
	return t.match(idx, bestIdx, bestScore), nil
}

// inverseDocumentFrequencies computes smoothed IDF weights,
// ln((1+N)/(1+df)) + 1, over all supplied documents.
func inverseDocumentFrequencies(vocabSize int, groups ...[]Vector) []float64 {
	df := make([]float64, vocabSize)
	total := 0
	for _, vectors := range groups {
		total += len(vectors)
		for _, vec := range vectors {
			for term := range vec {
				df[term]++
			}
		}
	}

	idf := make([]float64, vocabSize)
	for term := range idf {
		idf[term] = math.Log((1+float64(total))/(1+df[term])) + 1
	}
	return idf
}

// weightAll applies IDF weights and L2-normalizes each count vector.
// All-zero vectors stay empty rather than dividing by a zero norm.
func weightAll(counts []Vector, idf []float64) []Vector {
	weighted := make([]Vector, len(counts))
	for i, vec := range counts {
		w := make(Vector, len(vec))
		for term, count := range vec {
			w[term] = count * idf[term]
		}
		if norm := w.Norm(); norm > 0 {
			for term := range w {
				w[term] /= norm
			}
		}
		weighted[i] = w
	}
	return weighted
}
