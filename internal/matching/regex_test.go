package matching

import "testing"

func TestRegexContainment(t *testing.T) {
	tests := []struct {
		name      string
		corpus    []string
		query     string
		wantMatch string
	}{
		{
			name:      "query contained in reference",
			corpus:    []string{"Gartenweg 7", "Hauptstrasse 1"},
			query:     "hauptstrasse",
			wantMatch: "Hauptstrasse 1",
		},
		{
			name:      "reference contained in query",
			corpus:    []string{"Hauptstrasse 1"},
			query:     "Hauptstrasse 1 Hinterhof",
			wantMatch: "Hauptstrasse 1",
		},
		{
			name:      "case folds through normalization",
			corpus:    []string{"HAUPTSTRASSE 1"},
			query:     "hauptstrasse 1",
			wantMatch: "HAUPTSTRASSE 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			algo := NewRegex(0.5)
			algo.Prepare(records(tt.corpus...), records(tt.query))

			result, err := algo.MatchQuery(0)
			if err != nil {
				t.Fatal(err)
			}
			if got := mustBestMatch(t, result); got != tt.wantMatch {
				t.Errorf("best match = %q, want %q", got, tt.wantMatch)
			}
			if got := mustScore(t, result); got != 1 {
				t.Errorf("score = %v, want 1", got)
			}
		})
	}
}

func TestRegexFirstContainingReferenceWins(t *testing.T) {
	algo := NewRegex(0.5)
	// Both references contain the query; the scan stops at the first.
	algo.Prepare(records("Hauptstrasse 1", "Hauptstrasse 2"), records("hauptstrasse"))

	result, err := algo.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}
	if got := mustBestMatch(t, result); got != "Hauptstrasse 1" {
		t.Errorf("best match = %q, want first reference", got)
	}
}

func TestRegexNoContainment(t *testing.T) {
	algo := NewRegex(0.5)
	algo.Prepare(records("Gartenweg 7"), records("hauptstrasse"))

	result, err := algo.MatchQuery(0)
	if err != nil {
		t.Fatal(err)
	}
	if result.BestMatch != nil {
		t.Error("no-containment query produced a best match")
	}
	if got := mustScore(t, result); got != 0 {
		t.Errorf("score = %v, want 0", got)
	}

	classified := algo.Classify([]Result{result})
	if classified[0].Accepted {
		t.Error("zero score accepted")
	}
}
