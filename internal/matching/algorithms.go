package matching

import (
	"fmt"
)

// Names lists the six algorithm identifiers in canonical run order.
func Names() []string {
	return []string{"levenshtein", "jaccard", "dice", "ngram", "regex", "tfidf"}
}

// New creates the algorithm selected by name with its acceptance threshold.
func New(name string, threshold float64) (Algorithm, error) {
	switch name {
	case "levenshtein":
		return NewLevenshtein(threshold), nil
	case "jaccard":
		return NewJaccard(threshold), nil
	case "dice":
		return NewDice(threshold), nil
	case "ngram":
		return NewNgram(threshold), nil
	case "regex":
		return NewRegex(threshold), nil
	case "tfidf":
		return NewTFIDF(threshold), nil
	default:
		return nil, fmt.Errorf("unknown matching algorithm %q", name)
	}
}
