package matching

import (
	"math"
	"testing"

	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/normalize"
)

// records builds normalized test records from raw values.
func records(values ...string) []normalize.TextRecord {
	return normalize.Records(values)
}

// almostEqual compares similarity scores with a small tolerance.
func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// mustScore extracts the score of a result that is expected to carry one.
func mustScore(t *testing.T, r Result) float64 {
	t.Helper()
	if r.Score == nil {
		t.Fatalf("result for query %d has no score", r.QueryIndex)
	}
	return *r.Score
}

// mustBestMatch extracts the best match of a result that is expected to
// carry one.
func mustBestMatch(t *testing.T, r Result) string {
	t.Helper()
	if r.BestMatch == nil {
		t.Fatalf("result for query %d has no best match", r.QueryIndex)
	}
	return *r.BestMatch
}

func TestNames(t *testing.T) {
	want := []string{"levenshtein", "jaccard", "dice", "ngram", "regex", "tfidf"}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() returned %d names, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		algo, err := New(name, 0.7)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if algo.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, algo.Name())
		}
		if algo.Threshold() != 0.7 {
			t.Errorf("New(%q).Threshold() = %v, want 0.7", name, algo.Threshold())
		}
	}

	if _, err := New("soundex", 0.5); err == nil {
		t.Error("New with unknown name did not return an error")
	}
}

func TestClassify(t *testing.T) {
	algo := NewLevenshtein(0.8)

	low := 0.5
	exact := 0.8
	high := 0.95
	results := []Result{
		{QueryIndex: 0, Score: &low},
		{QueryIndex: 1, Score: &exact},
		{QueryIndex: 2, Score: &high},
		{QueryIndex: 3}, // no score
	}

	classified := algo.Classify(results)
	wantAccepted := []bool{false, true, true, false}
	for i, want := range wantAccepted {
		if classified[i].Accepted != want {
			t.Errorf("result %d accepted = %v, want %v", i, classified[i].Accepted, want)
		}
	}
}

func TestMatchQueryIndexOutOfRange(t *testing.T) {
	for _, name := range Names() {
		algo, err := New(name, 0.5)
		if err != nil {
			t.Fatal(err)
		}
		algo.Prepare(records("hauptstrasse 1"), records("hauptstrasse"))

		if _, err := algo.MatchQuery(-1); err == nil {
			t.Errorf("%s: MatchQuery(-1) did not return an error", name)
		}
		if _, err := algo.MatchQuery(1); err == nil {
			t.Errorf("%s: MatchQuery(1) did not return an error", name)
		}
	}
}

func TestScoresWithinUnitRange(t *testing.T) {
	corpus := records("Schlossstrasse", "Hauptstrasse 1", "aaaa", "Gartenweg 7")
	queries := records("Schlossstrasse", "hauptstrasse", "aaaa", "schloss strasse")

	for _, name := range Names() {
		algo, err := New(name, 0.5)
		if err != nil {
			t.Fatal(err)
		}
		algo.Prepare(corpus, queries)

		for i := 0; i < algo.QueryCount(); i++ {
			result, err := algo.MatchQuery(i)
			if err != nil {
				t.Fatalf("%s query %d: %v", name, i, err)
			}
			if result.Score == nil {
				continue
			}
			if *result.Score < 0 || *result.Score > 1 {
				t.Errorf("%s query %q score = %v, outside [0, 1]",
					name, queries[i].Original, *result.Score)
			}
		}
	}
}

func TestEmptyInputsProduceNoMatch(t *testing.T) {
	for _, name := range Names() {
		algo, err := New(name, 0.5)
		if err != nil {
			t.Fatal(err)
		}

		// Empty query against a real corpus.
		algo.Prepare(records("hauptstrasse 1"), records(""))
		result, err := algo.MatchQuery(0)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if result.BestMatch != nil {
			t.Errorf("%s: empty query produced a best match", name)
		}

		// Real query against an empty corpus.
		algo.Prepare(nil, records("hauptstrasse 1"))
		result, err = algo.MatchQuery(0)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if result.BestMatch != nil {
			t.Errorf("%s: empty corpus produced a best match", name)
		}
	}
}
