package matching

import "testing"

func TestLevenshteinAbbreviatedStreet(t *testing.T) {
	algo := NewLevenshtein(0.8)
	algo.Prepare(
		records("Schlossstrasse 5", "Hauptstrasse 1", "Gartenweg 7"),
		records("Schlossstr. 5"),
	)

	result, err := algo.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}
	if got := mustBestMatch(t, result); got != "Schlossstrasse 5" {
		t.Errorf("best match = %q, want %q", got, "Schlossstrasse 5")
	}
	if got := mustScore(t, result); !almostEqual(got, 1.0) {
		t.Errorf("score = %v, want 1.0", got)
	}

	classified := algo.Classify([]Result{result})
	if !classified[0].Accepted {
		t.Error("exact normalized match not accepted at threshold 0.8")
	}
}

func TestLevenshteinSymmetry(t *testing.T) {
	forward := NewLevenshtein(0.8)
	forward.Prepare(records("hauptstrasse"), records("hauptstrase"))
	fr, err := forward.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}

	backward := NewLevenshtein(0.8)
	backward.Prepare(records("hauptstrase"), records("hauptstrasse"))
	br, err := backward.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(mustScore(t, fr), mustScore(t, br)) {
		t.Errorf("similarity not symmetric: %v vs %v", *fr.Score, *br.Score)
	}
}

func TestLevenshteinPicksClosest(t *testing.T) {
	algo := NewLevenshtein(0.8)
	algo.Prepare(
		records("Gartenweg 7", "Hauptstrasse 1", "Hauptstrasse 11"),
		records("Hauptstrasse 1"),
	)

	result, err := algo.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}
	if got := mustBestMatch(t, result); got != "Hauptstrasse 1" {
		t.Errorf("best match = %q, want %q", got, "Hauptstrasse 1")
	}
	if got := mustScore(t, result); !almostEqual(got, 1.0) {
		t.Errorf("score = %v, want 1.0", got)
	}
}

func TestLevenshteinTieKeepsFirstReference(t *testing.T) {
	algo := NewLevenshtein(0.8)
	// Both references are one edit away from the query.
	algo.Prepare(records("abcx", "abcy"), records("abcd"))

	result, err := algo.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}
	if got := mustBestMatch(t, result); got != "abcx" {
		t.Errorf("tie broken to %q, want first reference %q", got, "abcx")
	}
}

func TestLevenshteinBlankReferences(t *testing.T) {
	algo := NewLevenshtein(0.8)
	algo.Prepare(records("", "   "), records("hauptstrasse"))

	result, err := algo.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}
	if got := mustScore(t, result); got != 0 {
		t.Errorf("score against blank references = %v, want 0", got)
	}

	classified := algo.Classify([]Result{result})
	if classified[0].Accepted {
		t.Error("zero score accepted")
	}
}
