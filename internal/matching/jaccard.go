package matching

import (
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/normalize"
)

// Jaccard scores queries by token-set overlap: |q ∩ r| / |q ∪ r| over binary
// bag-of-token vectors. The vocabulary is learned jointly from corpus and
// queries so indices are comparable, and is discarded with the run.
type Jaccard struct {
	base
	corpusVectors []Vector
	corpusSums    []float64
	queryVectors  []Vector
}

// NewJaccard creates the token-overlap algorithm with the given acceptance
// threshold.
func NewJaccard(threshold float64) *Jaccard {
	return &Jaccard{base: base{name: "jaccard", threshold: threshold}}
}

func (j *Jaccard) Prepare(corpus, queries []normalize.TextRecord) {
	j.setInputs(corpus, queries)

	vectorizer := NewTokenVectorizer(true)
	corpusTexts := normalizedOf(corpus)
	queryTexts := normalizedOf(queries)
	vectorizer.Fit(corpusTexts, queryTexts)

	j.corpusVectors = vectorizer.TransformAll(corpusTexts)
	j.queryVectors = vectorizer.TransformAll(queryTexts)
	j.corpusSums = make([]float64, len(j.corpusVectors))
	for i, vec := range j.corpusVectors {
		j.corpusSums[i] = vec.Sum()
	}
}

func (j *Jaccard) MatchQuery(idx int) (Result, error) {
	if err := j.checkIndex(idx); err != nil {
		return Result{}, err
	}
	if j.queries[idx].Normalized == "" || len(j.corpus) == 0 {
		return j.noMatch(idx), nil
	}

	queryVec := j.queryVectors[idx]
	querySum := queryVec.Sum()

	bestIdx := -1
	bestScore := -1.0
	for i, refVec := range j.corpusVectors {
		intersection := queryVec.Dot(refVec)
		union := querySum + j.corpusSums[i] - intersection
		score := 0.0
		if union > 0 {
			score = intersection / union
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	return j.match(idx, bestIdx, bestScore), nil
}

// normalizedOf extracts the normalized column of a record sequence.
func normalizedOf(records []normalize.TextRecord) []string {
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Normalized
	}
	return texts
}
