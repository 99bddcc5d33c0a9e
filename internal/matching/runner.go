package matching

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/debug"
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/normalize"
)

// DefaultWorkers is the bounded pool size used for the per-query fan-out:
// min(32, available parallelism + 4).
func DefaultWorkers() int {
	workers := runtime.NumCPU() + 4
	if workers > 32 {
		workers = 32
	}
	return workers
}

// QueryFailure records one query whose scoring failed. The query is omitted
// from the result table; the failure is surfaced here so downstream
// consumers can see which indices are missing.
type QueryFailure struct {
	Index int   `json:"index"`
	Err   error `json:"-"`
}

// RunStats summarizes one matching run.
type RunStats struct {
	Queries  int
	Matched  int
	Failed   int
	Accepted int
	Duration time.Duration
}

// Runner drives one algorithm over one corpus/query pair: prepare once, fan
// the per-query search out over a bounded worker pool, classify, and
// reassemble results in query input order. The Runner owns the algorithm
// instance for the duration of the run; it never mutates the supplied
// records.
type Runner struct {
	algo    Algorithm
	workers int
	debug   bool
}

// NewRunner creates a runner for one algorithm. workers <= 0 selects the
// default pool size.
func NewRunner(algo Algorithm, workers int, debugEnabled bool) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	return &Runner{algo: algo, workers: workers, debug: debugEnabled}
}

// Run executes prepare -> search -> classify and returns the result table,
// per-query failure diagnostics and run statistics. A failed query never
// aborts the batch: it is logged with its index and excluded from the table,
// so the table holds exactly one row per successful query, in input order.
func (r *Runner) Run(ctx context.Context, corpus, queries []normalize.TextRecord) ([]Result, []QueryFailure, RunStats, error) {
	defer debug.Timing(r.debug, fmt.Sprintf("%s matching run", r.algo.Name()))()

	start := time.Now()
	r.algo.Prepare(corpus, queries)
	n := r.algo.QueryCount()

	slots := make([]*Result, n)
	errs := make([]error, n)

	var processed atomic.Int64
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)
	for i := 0; i < n; i++ {
		i := i
		group.Go(func() error {
			defer func() {
				if p := recover(); p != nil {
					errs[i] = fmt.Errorf("panic scoring query %d: %v", i, p)
				}
			}()
			result, err := r.algo.MatchQuery(i)
			if err != nil {
				errs[i] = err
				return nil
			}
			slots[i] = &result
			debug.Progress(r.debug, int(processed.Add(1)), n, 1000, "queries")
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, RunStats{}, fmt.Errorf("matching fan-out: %w", err)
	}

	results := make([]Result, 0, n)
	var failures []QueryFailure
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			log.Printf("matching: algorithm %s query %d failed: %v", r.algo.Name(), i, errs[i])
			failures = append(failures, QueryFailure{Index: i, Err: errs[i]})
			continue
		}
		results = append(results, *slots[i])
	}

	results = r.algo.Classify(results)

	stats := RunStats{
		Queries:  n,
		Failed:   len(failures),
		Duration: time.Since(start),
	}
	for _, result := range results {
		if result.BestMatch != nil {
			stats.Matched++
		}
		if result.Accepted {
			stats.Accepted++
		}
	}

	debug.Output(r.debug, "%s: %d queries, %d matched, %d accepted, %d failed in %v",
		r.algo.Name(), stats.Queries, stats.Matched, stats.Accepted, stats.Failed, stats.Duration)

	return results, failures, stats, nil
}
