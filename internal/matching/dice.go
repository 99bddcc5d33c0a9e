package matching

import (
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/normalize"
)

// diceNgramSize fixes the character n-gram width for the Dice coefficient:
// always bigrams.
const diceNgramSize = 2

// Dice scores queries by the weighted-overlap coefficient
// 2·|q ∩ r| / (|q| + |r|) over character bigram count vectors. The
// intersection is the multiset minimum, so repeated bigrams cannot push the
// score past 1.
type Dice struct {
	base
	corpusVectors []Vector
	corpusSums    []float64
	queryVectors  []Vector
}

// NewDice creates the weighted-overlap algorithm with the given acceptance
// threshold.
func NewDice(threshold float64) *Dice {
	return &Dice{base: base{name: "dice", threshold: threshold}}
}

func (d *Dice) Prepare(corpus, queries []normalize.TextRecord) {
	d.setInputs(corpus, queries)

	vectorizer := NewCharNgramVectorizer(diceNgramSize)
	corpusTexts := normalizedOf(corpus)
	queryTexts := normalizedOf(queries)
	vectorizer.Fit(corpusTexts, queryTexts)

	d.corpusVectors = vectorizer.TransformAll(corpusTexts)
	d.queryVectors = vectorizer.TransformAll(queryTexts)
	d.corpusSums = make([]float64, len(d.corpusVectors))
	for i, vec := range d.corpusVectors {
		d.corpusSums[i] = vec.Sum()
	}
}

func (d *Dice) MatchQuery(idx int) (Result, error) {
	if err := d.checkIndex(idx); err != nil {
		return Result{}, err
	}
	if d.queries[idx].Normalized == "" || len(d.corpus) == 0 {
		return d.noMatch(idx), nil
	}

	queryVec := d.queryVectors[idx]
	if len(queryVec) == 0 {
		// Too short to produce a single bigram.
		return d.noMatch(idx), nil
	}
	querySum := queryVec.Sum()

	bestIdx := -1
	bestScore := -1.0
	for i, refVec := range d.corpusVectors {
		denominator := querySum + d.corpusSums[i]
		score := 0.0
		if denominator > 0 {
			score = 2 * queryVec.MinSum(refVec) / denominator
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	return d.match(idx, bestIdx, bestScore), nil
}
