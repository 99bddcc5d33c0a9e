package matching

import (
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/normalize"
)

// ngramSize is the character n-gram width of the n-gram overlap algorithm.
const ngramSize = 2

// Ngram scores queries by n-gram overlap: |q ∩ r| / (|q| + |r| − |q ∩ r|)
// over character n-gram count vectors, with the multiset minimum as the
// intersection so the ratio stays within [0, 1] when n-grams repeat.
type Ngram struct {
	base
	corpusVectors []Vector
	corpusSums    []float64
	queryVectors  []Vector
}

// NewNgram creates the n-gram overlap algorithm with the given acceptance
// threshold.
func NewNgram(threshold float64) *Ngram {
	return &Ngram{base: base{name: "ngram", threshold: threshold}}
}

func (n *Ngram) Prepare(corpus, queries []normalize.TextRecord) {
	n.setInputs(corpus, queries)

	vectorizer := NewCharNgramVectorizer(ngramSize)
	corpusTexts := normalizedOf(corpus)
	queryTexts := normalizedOf(queries)
	vectorizer.Fit(corpusTexts, queryTexts)

	n.corpusVectors = vectorizer.TransformAll(corpusTexts)
	n.queryVectors = vectorizer.TransformAll(queryTexts)
	n.corpusSums = make([]float64, len(n.corpusVectors))
	for i, vec := range n.corpusVectors {
		n.corpusSums[i] = vec.Sum()
	}
}

func (n *Ngram) MatchQuery(idx int) (Result, error) {
	if err := n.checkIndex(idx); err != nil {
		return Result{}, err
	}
	if n.queries[idx].Normalized == "" || len(n.corpus) == 0 {
		return n.noMatch(idx), nil
	}

	queryVec := n.queryVectors[idx]
	if len(queryVec) == 0 {
		return n.noMatch(idx), nil
	}
	querySum := queryVec.Sum()

	bestIdx := -1
	bestScore := -1.0
	for i, refVec := range n.corpusVectors {
		intersection := queryVec.MinSum(refVec)
		union := querySum + n.corpusSums[i] - intersection
		score := 0.0
		if union > 0 {
			score = intersection / union
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	return n.match(idx, bestIdx, bestScore), nil
}
