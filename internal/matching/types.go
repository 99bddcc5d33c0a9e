package matching

import (
	"fmt"

	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/normalize"
)

// Result is the matching outcome for a single query record. BestMatch and
// Score are nil when the query produced no match (empty after normalization,
// or an empty reference corpus). GroundTruth stays nil until the validation
// collaborator returns the row with a human-reviewed label. Accepted is
// derived once by Classify; results are not mutated afterwards.
type Result struct {
	QueryIndex  int      `json:"query_index"`
	Query       string   `json:"query"`
	BestMatch   *string  `json:"best_match,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	GroundTruth *int     `json:"ground_truth,omitempty"`
	Accepted    bool     `json:"accepted"`
}

// Algorithm is the uniform contract shared by the six similarity variants.
//
// The lifecycle is Prepare -> MatchQuery (once per query) -> Classify.
// Prepare may be called again with a new corpus/query pair; doing so
// invalidates all previous state, so an instance must never be shared by
// concurrent runs. Once Prepare has returned, MatchQuery is safe for
// concurrent use: it only reads the prepared state.
type Algorithm interface {
	// Name is the lowercase algorithm identifier used in configuration,
	// export column prefixes and store keys.
	Name() string

	// Threshold is the acceptance cutoff applied by Classify.
	Threshold() float64

	// Prepare builds the per-run working structures. Empty inputs are not
	// an error; every subsequent MatchQuery reports no match instead.
	Prepare(corpus, queries []normalize.TextRecord)

	// QueryCount reports the number of prepared queries.
	QueryCount() int

	// MatchQuery scores query idx against every reference record and
	// returns the arg-max, ties broken by lowest reference index.
	MatchQuery(idx int) (Result, error)

	// Classify sets Accepted on each result by thresholding its score.
	// Results without a score are never accepted.
	Classify(results []Result) []Result
}

// base carries the prepared state and the behavior every algorithm shares.
type base struct {
	name      string
	threshold float64
	corpus    []normalize.TextRecord
	queries   []normalize.TextRecord
}

func (b *base) Name() string { return b.name }

func (b *base) Threshold() float64 { return b.threshold }

func (b *base) QueryCount() int { return len(b.queries) }

func (b *base) setInputs(corpus, queries []normalize.TextRecord) {
	b.corpus = corpus
	b.queries = queries
}

// noMatch is the result for a query that cannot be scored.
func (b *base) noMatch(idx int) Result {
	return Result{QueryIndex: idx, Query: b.queries[idx].Original}
}

// match builds a scored result pointing at reference refIdx.
func (b *base) match(idx, refIdx int, score float64) Result {
	best := b.corpus[refIdx].Original
	return Result{
		QueryIndex: idx,
		Query:      b.queries[idx].Original,
		BestMatch:  &best,
		Score:      &score,
	}
}

func (b *base) checkIndex(idx int) error {
	if idx < 0 || idx >= len(b.queries) {
		return fmt.Errorf("query index %d out of range (%d queries prepared)", idx, len(b.queries))
	}
	return nil
}

func (b *base) Classify(results []Result) []Result {
	for i := range results {
		results[i].Accepted = results[i].Score != nil && *results[i].Score >= b.threshold
	}
	return results
}
