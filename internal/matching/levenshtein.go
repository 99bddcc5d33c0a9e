package matching

import (
	"fmt"

	"github.com/hbollon/go-edlib"

	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/normalize"
)

// Levenshtein scores queries by normalized edit-distance similarity:
// 1 - distance/max(len(q), len(r)). The score is symmetric and bounded to
// [0, 1]. No working structures beyond the normalized text are needed, so
// each query performs a full scan of the corpus.
type Levenshtein struct {
	base
}

// NewLevenshtein creates the edit-distance algorithm with the given
// acceptance threshold.
func NewLevenshtein(threshold float64) *Levenshtein {
	return &Levenshtein{base{name: "levenshtein", threshold: threshold}}
}

func (l *Levenshtein) Prepare(corpus, queries []normalize.TextRecord) {
	l.setInputs(corpus, queries)
}

func (l *Levenshtein) MatchQuery(idx int) (Result, error) {
	if err := l.checkIndex(idx); err != nil {
		return Result{}, err
	}
	query := l.queries[idx]
	if query.Normalized == "" || len(l.corpus) == 0 {
		return l.noMatch(idx), nil
	}

	bestIdx := -1
	bestScore := -1.0
	for i, ref := range l.corpus {
		score := 0.0
		if ref.Normalized != "" {
			sim, err := edlib.StringsSimilarity(query.Normalized, ref.Normalized, edlib.Levenshtein)
			if err != nil {
				return Result{}, fmt.Errorf("levenshtein similarity for query %d against reference %d: %w", idx, i, err)
			}
			score = float64(sim)
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	return l.match(idx, bestIdx, bestScore), nil
}
