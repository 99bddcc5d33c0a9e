package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/normalize"
)

// stubAlgorithm scores every query with a fixed value and fails or panics at
// chosen indices, so the runner's fan-out behavior can be observed in
// isolation.
type stubAlgorithm struct {
	base
	score   float64
	failAt  map[int]error
	panicAt map[int]bool
}

func newStub(threshold, score float64) *stubAlgorithm {
	return &stubAlgorithm{
		base:    base{name: "stub", threshold: threshold},
		score:   score,
		failAt:  make(map[int]error),
		panicAt: make(map[int]bool),
	}
}

func (s *stubAlgorithm) Prepare(corpus, queries []normalize.TextRecord) {
	s.setInputs(corpus, queries)
}

func (s *stubAlgorithm) MatchQuery(idx int) (Result, error) {
	if err := s.checkIndex(idx); err != nil {
		return Result{}, err
	}
	if s.panicAt[idx] {
		panic("scoring blew up")
	}
	if err := s.failAt[idx]; err != nil {
		return Result{}, err
	}
	if len(s.corpus) == 0 {
		return s.noMatch(idx), nil
	}
	return s.match(idx, 0, s.score), nil
}

func TestRunnerPreservesQueryOrder(t *testing.T) {
	corpus := records("Hauptstrasse 1")
	queries := records("q0", "q1", "q2", "q3", "q4", "q5", "q6", "q7")

	runner := NewRunner(newStub(0.5, 0.9), 4, false)
	results, failures, stats, err := runner.Run(context.Background(), corpus, queries)
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	if len(results) != len(queries) {
		t.Fatalf("got %d results, want %d", len(results), len(queries))
	}
	for i, r := range results {
		if r.QueryIndex != i {
			t.Errorf("result %d has query index %d", i, r.QueryIndex)
		}
		if r.Query != queries[i].Original {
			t.Errorf("result %d query = %q, want %q", i, r.Query, queries[i].Original)
		}
	}
	if stats.Queries != len(queries) || stats.Matched != len(queries) {
		t.Errorf("stats = %+v, want %d queries all matched", stats, len(queries))
	}
}

func TestRunnerIsolatesFailedQueries(t *testing.T) {
	stub := newStub(0.5, 0.9)
	stub.failAt[1] = errors.New("bad query")
	stub.panicAt[3] = true

	runner := NewRunner(stub, 2, false)
	results, failures, stats, err := runner.Run(context.Background(),
		records("Hauptstrasse 1"), records("q0", "q1", "q2", "q3", "q4"))
	if err != nil {
		t.Fatal(err)
	}

	if len(failures) != 2 {
		t.Fatalf("got %d failures, want 2", len(failures))
	}
	if failures[0].Index != 1 || failures[1].Index != 3 {
		t.Errorf("failure indices = %d, %d, want 1, 3", failures[0].Index, failures[1].Index)
	}

	// The table holds exactly the successful queries, still in input order.
	wantIndices := []int{0, 2, 4}
	if len(results) != len(wantIndices) {
		t.Fatalf("got %d results, want %d", len(results), len(wantIndices))
	}
	for i, want := range wantIndices {
		if results[i].QueryIndex != want {
			t.Errorf("result %d has query index %d, want %d", i, results[i].QueryIndex, want)
		}
	}

	if stats.Failed != 2 || stats.Queries != 5 || stats.Matched != 3 {
		t.Errorf("stats = %+v, want 5 queries, 3 matched, 2 failed", stats)
	}
}

func TestRunnerClassifiesResults(t *testing.T) {
	accepted, _, acceptedStats, err := NewRunner(newStub(0.5, 0.9), 0, false).
		Run(context.Background(), records("ref"), records("q0", "q1"))
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range accepted {
		if !r.Accepted {
			t.Errorf("result %d with score above threshold not accepted", i)
		}
	}
	if acceptedStats.Accepted != 2 {
		t.Errorf("accepted count = %d, want 2", acceptedStats.Accepted)
	}

	rejected, _, rejectedStats, err := NewRunner(newStub(0.5, 0.3), 0, false).
		Run(context.Background(), records("ref"), records("q0", "q1"))
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range rejected {
		if r.Accepted {
			t.Errorf("result %d with score below threshold accepted", i)
		}
	}
	if rejectedStats.Accepted != 0 {
		t.Errorf("accepted count = %d, want 0", rejectedStats.Accepted)
	}
}

func TestRunnerEmptyQuerySet(t *testing.T) {
	results, failures, stats, err := NewRunner(newStub(0.5, 0.9), 4, false).
		Run(context.Background(), records("ref"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 || len(failures) != 0 || stats.Queries != 0 {
		t.Errorf("empty query set yielded results=%d failures=%d stats=%+v",
			len(results), len(failures), stats)
	}
}

func TestDefaultWorkersBounded(t *testing.T) {
	workers := DefaultWorkers()
	if workers < 1 || workers > 32 {
		t.Errorf("DefaultWorkers() = %d, want within [1, 32]", workers)
	}
}
