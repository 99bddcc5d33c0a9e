package matching

import (
	"math"
	"strings"
)

// Vector is a sparse term-count vector over a run-scoped vocabulary.
type Vector map[int]float64

// Sum returns the total weight of the vector.
func (v Vector) Sum() float64 {
	var s float64
	for _, w := range v {
		s += w
	}
	return s
}

// Dot returns the elementwise product sum of two vectors.
func (v Vector) Dot(o Vector) float64 {
	if len(o) < len(v) {
		v, o = o, v
	}
	var s float64
	for t, w := range v {
		if ow, ok := o[t]; ok {
			s += w * ow
		}
	}
	return s
}

// MinSum returns the multiset intersection weight of two count vectors,
// Σ min(v_t, o_t) over shared terms. Unlike Dot it never exceeds the
// smaller vector's Sum, so overlap ratios built on it stay within [0, 1]
// even when a term repeats.
func (v Vector) MinSum(o Vector) float64 {
	if len(o) < len(v) {
		v, o = o, v
	}
	var s float64
	for t, w := range v {
		if ow, ok := o[t]; ok {
			s += math.Min(w, ow)
		}
	}
	return s
}

// Norm returns the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	var s float64
	for _, w := range v {
		s += w * w
	}
	return math.Sqrt(s)
}

// Analyzer splits a normalized text into countable terms.
type Analyzer func(text string) []string

// TokenAnalyzer splits on whitespace. Normalized text contains only
// alphanumerics and spaces, so this yields the word tokens.
func TokenAnalyzer(text string) []string {
	return strings.Fields(text)
}

// CharNgramAnalyzer emits the overlapping character n-grams of each text.
// Texts shorter than n yield no terms.
func CharNgramAnalyzer(n int) Analyzer {
	return func(text string) []string {
		runes := []rune(text)
		if len(runes) < n {
			return nil
		}
		grams := make([]string, 0, len(runes)-n+1)
		for i := 0; i+n <= len(runes); i++ {
			grams = append(grams, string(runes[i:i+n]))
		}
		return grams
	}
}

// Vectorizer learns a vocabulary from normalized texts and turns each text
// into a sparse vector over it. The vocabulary is specific to one corpus and
// query set pair and must be discarded with the run that built it.
type Vectorizer struct {
	analyzer Analyzer
	binary   bool
	vocab    map[string]int
}

// NewTokenVectorizer builds a word-level vectorizer. With binary set, term
// presence is recorded instead of term counts.
func NewTokenVectorizer(binary bool) *Vectorizer {
	return &Vectorizer{analyzer: TokenAnalyzer, binary: binary, vocab: make(map[string]int)}
}

// NewCharNgramVectorizer builds a character n-gram count vectorizer.
func NewCharNgramVectorizer(n int) *Vectorizer {
	return &Vectorizer{analyzer: CharNgramAnalyzer(n), vocab: make(map[string]int)}
}

// Fit learns the joint vocabulary from every supplied text group. Indices
// are assigned in first-occurrence order, so fitting is deterministic.
func (v *Vectorizer) Fit(groups ...[]string) {
	for _, texts := range groups {
		for _, text := range texts {
			for _, term := range v.analyzer(text) {
				if _, ok := v.vocab[term]; !ok {
					v.vocab[term] = len(v.vocab)
				}
			}
		}
	}
}

// Transform maps a text onto the learned vocabulary. Terms outside the
// vocabulary are ignored.
func (v *Vectorizer) Transform(text string) Vector {
	vec := make(Vector)
	for _, term := range v.analyzer(text) {
		idx, ok := v.vocab[term]
		if !ok {
			continue
		}
		if v.binary {
			vec[idx] = 1
		} else {
			vec[idx]++
		}
	}
	return vec
}

// TransformAll vectorizes a batch of texts in order.
func (v *Vectorizer) TransformAll(texts []string) []Vector {
	out := make([]Vector, len(texts))
	for i, text := range texts {
		out[i] = v.Transform(text)
	}
	return out
}

// VocabularySize reports the number of distinct learned terms.
func (v *Vectorizer) VocabularySize() int { return len(v.vocab) }
