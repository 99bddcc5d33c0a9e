package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/dataset"
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/evaluation"
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/matching"
)

// CSV handoff with the validation collaborator. One file per
// (source file, column, algorithm) unit goes out for human review; validated
// files come back with the TRUE_MATCH column filled in.

// fileKeyLength truncates source file names to a short directory key.
const fileKeyLength = 13

// FileKey derives the directory key for a source file.
func FileKey(sourceFile string) string {
	base := filepath.Base(sourceFile)
	if len(base) > fileKeyLength {
		return base[:fileKeyLength]
	}
	return base
}

// resultColumns lays a result slice out as a validation table. Column names
// other than MATCH are prefixed with the uppercase algorithm name.
func resultColumns(algo string, results []matching.Result) *dataset.Table {
	prefix := strings.ToUpper(algo)
	n := len(results)

	match := make([]string, n)
	bestFound := make([]string, n)
	trueMatch := make([]string, n)
	score := make([]string, n)
	binary := make([]string, n)
	index := make([]string, n)

	for i, r := range results {
		index[i] = strconv.Itoa(r.QueryIndex)
		match[i] = r.Query
		if r.BestMatch != nil {
			bestFound[i] = *r.BestMatch
		}
		if r.Score != nil {
			score[i] = strconv.FormatFloat(*r.Score, 'f', -1, 64)
		}
		binary[i] = strconv.FormatBool(r.Accepted)
	}

	t := dataset.NewTable()
	_ = t.AddColumn("QUERY_INDEX", index)
	_ = t.AddColumn("MATCH", match)
	_ = t.AddColumn(prefix+"_BEST_FOUND_MATCH", bestFound)
	_ = t.AddColumn(prefix+"_TRUE_MATCH", trueMatch)
	_ = t.AddColumn(prefix+"_BEST_MATCH", score)
	_ = t.AddColumn(prefix+"_BEST_MATCH_BINARY", binary)
	return t
}

// ExportForValidation writes one unit's result table below the validation
// directory: <dir>/<fileKey>/<column>/<date>_<ALGO>_NEED_VALIDATION.csv.
// It returns the written path.
func ExportForValidation(dir, sourceFile, column, algo string, results []matching.Result) (string, error) {
	name := fmt.Sprintf("%s_%s_NEED_VALIDATION.csv",
		time.Now().Format("2006-01-02"), strings.ToUpper(algo))
	path := filepath.Join(dir, FileKey(sourceFile), column, name)

	if err := dataset.WriteCSV(resultColumns(algo, results), path); err != nil {
		return "", fmt.Errorf("exporting validation file: %w", err)
	}
	return path, nil
}

// LoadValidated merges every validated file for one dataset name across all
// file-key directories: <dir>/<fileKey>/<datasetName>/validated/*.csv.
// Files within one directory merge side by side (duplicate columns dropped);
// directories concatenate vertically. A missing layout yields an empty
// table, not an error.
func LoadValidated(dir, datasetName string) (*dataset.Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return dataset.NewTable(), nil
		}
		return nil, fmt.Errorf("reading validation directory %s: %w", dir, err)
	}

	merged := dataset.NewTable()
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		validatedDir := filepath.Join(dir, entry.Name(), datasetName, "validated")
		files, err := filepath.Glob(filepath.Join(validatedDir, "*.csv"))
		if err != nil {
			return nil, fmt.Errorf("globbing %s: %w", validatedDir, err)
		}
		if len(files) == 0 {
			continue
		}
		sort.Strings(files)

		combined := dataset.NewTable()
		for _, file := range files {
			table, err := dataset.ReadCSV(file)
			if err != nil {
				return nil, fmt.Errorf("loading validated file: %w", err)
			}
			combined.Merge(table)
		}
		merged.Append(combined)
	}
	return merged, nil
}

// ExportEvalData writes the metrics-by-algorithm table for one dataset to
// <dataDir>/<date>_<dataset>_eval_results.csv and one confusion-matrix file
// per algorithm under <matrixDir>. It returns the metrics file path.
func ExportEvalData(dataDir, matrixDir string, report *evaluation.Report, algorithms []string) (string, error) {
	scored := report.Algorithms(algorithms)

	metricsTable := dataset.NewTable()
	_ = metricsTable.AddColumn("METRIC", evaluation.MetricNames())
	for _, algo := range scored {
		values := report.Metrics[algo].Values()
		column := make([]string, len(values))
		for i, v := range values {
			column[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := metricsTable.AddColumn(algo, column); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dataDir, fmt.Sprintf("%s_%s_eval_results.csv",
		time.Now().Format("2006-01-02"), report.Dataset))
	if err := dataset.WriteCSV(metricsTable, path); err != nil {
		return "", fmt.Errorf("exporting evaluation results: %w", err)
	}

	for _, algo := range scored {
		cm := report.Matrices[algo]
		matrixTable := dataset.NewTable()
		_ = matrixTable.AddColumn("ACTUAL", []string{"True Negative", "True Positive"})
		_ = matrixTable.AddColumn("Predicted Negative", []string{
			strconv.Itoa(cm.TrueNegative), strconv.Itoa(cm.FalseNegative)})
		_ = matrixTable.AddColumn("Predicted Positive", []string{
			strconv.Itoa(cm.FalsePositive), strconv.Itoa(cm.TruePositive)})

		matrixPath := filepath.Join(matrixDir,
			fmt.Sprintf("%s_%s_confusion_matrix.csv", algo, report.Dataset))
		if err := dataset.WriteCSV(matrixTable, matrixPath); err != nil {
			return "", fmt.Errorf("exporting confusion matrix for %s: %w", algo, err)
		}
	}

	return path, nil
}
