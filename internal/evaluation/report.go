package evaluation

import (
	"fmt"
	"log"
	"strings"

	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/dataset"
)

// Report groups the scored output for one dataset.
type Report struct {
	Dataset  string                     `json:"dataset"`
	Metrics  map[string]MetricSet       `json:"metrics"`
	Matrices map[string]ConfusionMatrix `json:"matrices"`
	Skipped  map[string]string          `json:"skipped,omitempty"`
}

// Algorithms lists the algorithms that were scored, in the order supplied to
// Evaluate.
func (r *Report) Algorithms(candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, algo := range candidates {
		if _, ok := r.Metrics[algo]; ok {
			out = append(out, algo)
		}
	}
	return out
}

// truthColumn and predictionColumn name the validated-table columns for one
// algorithm, e.g. LEVENSHTEIN_TRUE_MATCH / LEVENSHTEIN_BEST_MATCH_BINARY.
func truthColumn(algo string) string { return strings.ToUpper(algo) + "_TRUE_MATCH" }

func predictionColumn(algo string) string { return strings.ToUpper(algo) + "_BEST_MATCH_BINARY" }

// Evaluate scores every named algorithm against a validated table. A pair
// whose columns are missing, whose labels fall outside {0, 1}, or whose
// filtered rows cannot be scored is reported and skipped, never fatal to the
// rest of the run.
func Evaluate(datasetName string, table *dataset.Table, algorithms []string) *Report {
	report := &Report{
		Dataset:  datasetName,
		Metrics:  make(map[string]MetricSet),
		Matrices: make(map[string]ConfusionMatrix),
		Skipped:  make(map[string]string),
	}

	for _, algo := range algorithms {
		truths, okTruth := table.Column(truthColumn(algo))
		predictions, okPred := table.Column(predictionColumn(algo))
		if !okTruth || !okPred {
			reason := fmt.Sprintf("columns %s/%s not found", truthColumn(algo), predictionColumn(algo))
			log.Printf("evaluation: dataset %s algorithm %s skipped: %s", datasetName, algo, reason)
			report.Skipped[algo] = reason
			continue
		}

		samples := make([]Sample, len(truths))
		for i := range truths {
			samples[i] = Sample{Truth: truths[i], Predicted: predictions[i]}
		}

		matrix, metrics, err := Score(samples)
		if err != nil {
			log.Printf("evaluation: dataset %s algorithm %s skipped: %v", datasetName, algo, err)
			report.Skipped[algo] = err.Error()
			continue
		}
		report.Matrices[algo] = matrix
		report.Metrics[algo] = metrics
	}

	return report
}
