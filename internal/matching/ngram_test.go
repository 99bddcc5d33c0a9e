package matching

import "testing"

func TestNgramOverlap(t *testing.T) {
	algo := NewNgram(0.5)
	algo.Prepare(records("abce"), records("abcd"))

	result, err := algo.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}
	// Bigrams {ab, bc, cd} vs {ab, bc, ce}: 2 / (3+3−2).
	if got := mustScore(t, result); !almostEqual(got, 0.5) {
		t.Errorf("score = %v, want 0.5", got)
	}

	classified := algo.Classify([]Result{result})
	if !classified[0].Accepted {
		t.Error("score at the threshold not accepted")
	}
}

func TestNgramIdenticalTexts(t *testing.T) {
	algo := NewNgram(0.5)
	algo.Prepare(records("Hauptstrasse 1", "Gartenweg 7"), records("hauptstrasse 1"))

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

func TestNgramRepeatedBigrams(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"repeated bigram", "Schlossstrasse"},
		{"single repeated character", "aaaa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			algo := NewNgram(0.5)
			algo.Prepare(records(tt.text), records(tt.text))

			result, err := algo.MatchQuery(0)
			if err != nil {
				t.Fatal(err)
			}
			// The multiset intersection keeps the union positive and
			// identical texts at exactly 1.
			if got := mustScore(t, result); !almostEqual(got, 1.0) {
				t.Errorf("identical-text score = %v, want 1.0", got)
			}
		})
	}
}

func TestNgramScoresBelowDice(t *testing.T) {
	// For partial overlaps the n-gram union denominator exceeds the Dice
	// average, so the n-gram score is strictly smaller.
	ngram := NewNgram(0.5)
	ngram.Prepare(records("abce"), records("abcd"))
	nr, err := ngram.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}

	dice := NewDice(0.5)
	dice.Prepare(records("abce"), records("abcd"))
	dr, err := dice.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}

	if mustScore(t, nr) >= mustScore(t, dr) {
		t.Errorf("ngram score %v not below dice score %v", *nr.Score, *dr.Score)
	}
}
