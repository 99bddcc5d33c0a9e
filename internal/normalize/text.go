package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TextRecord pairs an original value with its normalized comparison form.
// Identity is positional within the source table; records are never mutated
// after construction.
type TextRecord struct {
	Original   string `json:"original"`
	Normalized string `json:"normalized"`
}

// replacement is one ordered substring rewrite.
type replacement struct {
	from string
	to   string
}

// Abbreviation expansions run before any character folding. The expansions
// emit diacritics that the mutation table folds afterwards, so the order of
// the two passes must not change.
var abbreviations = []replacement{
	{"Str.", "Straße"},
	{"str.", "straße"},
	{"Nr.", "Nummer"},
	{"nr.", "nummer"},
	{"Gebr.", "Gebrüder"},
}

// German umlaut and ligature mutations to their ASCII digraph equivalents.
var mutations = []replacement{
	{"ä", "ae"},
	{"ö", "oe"},
	{"ü", "ue"},
	{"ß", "ss"},
	{"Ä", "Ae"},
	{"Ö", "Oe"},
	{"Ü", "Ue"},
	{"ẞ", "SS"},
}

// Normalize turns raw free text into its canonical comparison form:
// abbreviation expansion, umlaut folding, lowercasing, whitespace trimming
// and removal of everything that is neither alphanumeric nor whitespace.
// It is a deterministic pure function and total over all strings; missing
// values are passed in as the empty string.
func Normalize(raw string) string {
	s := raw
	for _, r := range abbreviations {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	for _, r := range mutations {
		s = strings.ReplaceAll(s, r.from, r.to)
	}

	s = strings.ToLower(strings.TrimSpace(s))

	// Fold any remaining combining marks (é -> e). The German digraph
	// mutations above must already have run, otherwise ä would collapse
	// to a instead of ae.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Records builds the normalized record sequence for one text column,
// preserving input order.
func Records(values []string) []TextRecord {
	records := make([]TextRecord, len(values))
	for i, v := range values {
		records[i] = TextRecord{Original: v, Normalized: Normalize(v)}
	}
	return records
}

// IsBlank reports whether a value is effectively empty after normalization.
func IsBlank(raw string) bool {
	return Normalize(raw) == ""
}
