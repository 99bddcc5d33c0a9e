package matching

import "testing"

func TestDiceBigramOverlap(t *testing.T) {
	algo := NewDice(0.5)
	algo.Prepare(records("abce"), records("abcd"))

	result, err := algo.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}
	// Bigrams {ab, bc, cd} vs {ab, bc, ce}: 2·2 / (3+3).
	if got := mustScore(t, result); !almostEqual(got, 2.0/3.0) {
		t.Errorf("score = %v, want 2/3", got)
	}

	classified := algo.Classify([]Result{result})
	if !classified[0].Accepted {
		t.Error("score 2/3 not accepted at threshold 0.5")
	}
}

func TestDiceIdenticalTexts(t *testing.T) {
	algo := NewDice(0.5)
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

func TestDiceRepeatedBigrams(t *testing.T) {
	algo := NewDice(0.5)
	// "schlossstrasse" contains "ss" three times; the multiset
	// intersection keeps identical texts at exactly 1.
	algo.Prepare(records("Schlossstrasse"), records("Schlossstrasse"))

	result, err := algo.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}
	if got := mustScore(t, result); !almostEqual(got, 1.0) {
		t.Errorf("identical-text score = %v, want 1.0", got)
	}
}

func TestDiceSingleCharacterQuery(t *testing.T) {
	algo := NewDice(0.5)
	// One character yields no bigram at all.
	algo.Prepare(records("hauptstrasse 1"), records("a"))

	result, err := algo.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}
	if result.BestMatch != nil {
		t.Error("single-character query produced a best match")
	}
	if result.Score != nil {
		t.Error("single-character query produced a score")
	}
}
