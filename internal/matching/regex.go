package matching

import (
	"strings"

	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/normalize"
)

// Regex scores queries by substring containment: a query matches a reference
// when either normalized string contains the other. Normalization already
// lowercases both sides, so the test is case-insensitive. The score is
// boolean (1 on containment, 0 otherwise) and the first containing reference
// wins.
type Regex struct {
	base
}

// NewRegex creates the containment algorithm. The threshold is vacuous for a
// boolean score but kept so the contract stays uniform.
func NewRegex(threshold float64) *Regex {
	return &Regex{base{name: "regex", threshold: threshold}}
}

func (r *Regex) Prepare(corpus, queries []normalize.TextRecord) {
	r.setInputs(corpus, queries)
}

func (r *Regex) MatchQuery(idx int) (Result, error) {
	if err := r.checkIndex(idx); err != nil {
		return Result{}, err
	}
	query := r.queries[idx]
	if query.Normalized == "" || len(r.corpus) == 0 {
		return r.noMatch(idx), nil
	}

	for i, ref := range r.corpus {
		if ref.Normalized == "" {
			continue
		}
		if strings.Contains(ref.Normalized, query.Normalized) ||
			strings.Contains(query.Normalized, ref.Normalized) {
			return r.match(idx, i, 1), nil
		}
	}

	// No containment in either direction: keep the boolean score so the
	// row classifies as rejected rather than missing.
	result := r.noMatch(idx)
	score := 0.0
	result.Score = &score
	return result, nil
}
