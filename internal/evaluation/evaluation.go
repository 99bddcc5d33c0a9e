package evaluation

import (
	"errors"
	"fmt"
	"strings"
)

// The evaluator consumes validated result tables (ground-truth label plus
// binary match decision per row) and scores classification quality per
// algorithm per dataset.

var (
	// ErrNoSamples means no row had both labels present.
	ErrNoSamples = errors.New("no rows with both ground truth and prediction")
	// ErrLabelDomain means a label was outside {0, 1} after coercion.
	ErrLabelDomain = errors.New("label outside {0, 1}")
)

// ConfusionMatrix is the 2x2 contingency table of validated outcomes.
type ConfusionMatrix struct {
	TrueNegative  int `json:"true_negative"`
	FalsePositive int `json:"false_positive"`
	FalseNegative int `json:"false_negative"`
	TruePositive  int `json:"true_positive"`
}

// Total returns the number of scored rows.
func (cm ConfusionMatrix) Total() int {
	return cm.TrueNegative + cm.FalsePositive + cm.FalseNegative + cm.TruePositive
}

// MetricSet holds the five classification metrics for one algorithm on one
// dataset. All denominators-of-zero resolve to 0.
type MetricSet struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
	ROCAUC    float64 `json:"roc_auc"`
}

// MetricNames lists the metric labels in report order.
func MetricNames() []string {
	return []string{"Accuracy", "Precision", "Recall", "F1-Score", "ROC-AUC"}
}

// Values returns the metrics in MetricNames order.
func (m MetricSet) Values() []float64 {
	return []float64{m.Accuracy, m.Precision, m.Recall, m.F1Score, m.ROCAUC}
}

// Metrics derives the metric set from the confusion matrix. With binary
// predictions ROC-AUC reduces to balanced accuracy, (TPR + TNR) / 2.
func (cm ConfusionMatrix) Metrics() MetricSet {
	tp := float64(cm.TruePositive)
	tn := float64(cm.TrueNegative)
	fp := float64(cm.FalsePositive)
	fn := float64(cm.FalseNegative)

	var m MetricSet
	if total := tp + tn + fp + fn; total > 0 {
		m.Accuracy = (tp + tn) / total
	}
	if tp+fp > 0 {
		m.Precision = tp / (tp + fp)
	}
	if tp+fn > 0 {
		m.Recall = tp / (tp + fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1Score = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	specificity := 0.0
	if tn+fp > 0 {
		specificity = tn / (tn + fp)
	}
	m.ROCAUC = (m.Recall + specificity) / 2
	return m
}

// Sample is one validated row for a single algorithm: the raw textual
// ground-truth label and the raw textual prediction. Empty means missing.
type Sample struct {
	Truth     string
	Predicted string
}

// coerceLabel maps a textual label to {0, 1}. The second return is false for
// a missing label.
func coerceLabel(raw string) (value int, present bool, err error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return 0, false, nil
	case "1", "1.0", "true", "t", "yes", "y":
		return 1, true, nil
	case "0", "0.0", "false", "f", "no", "n":
		return 0, true, nil
	default:
		return 0, false, fmt.Errorf("%w: %q", ErrLabelDomain, raw)
	}
}

// Score filters rows with missing labels, coerces the rest to {0, 1} and
// computes the confusion matrix with its metric set. A label outside the
// binary domain or an empty filtered set returns an error; the caller skips
// that algorithm/dataset pair and continues. A single-class ground truth
// still scores the four counting metrics, but its ROC-AUC is undefined and
// reported as 0.
func Score(samples []Sample) (ConfusionMatrix, MetricSet, error) {
	var cm ConfusionMatrix
	positives, negatives := 0, 0

	for _, s := range samples {
		truth, truthPresent, err := coerceLabel(s.Truth)
		if err != nil {
			return ConfusionMatrix{}, MetricSet{}, err
		}
		predicted, predictedPresent, err := coerceLabel(s.Predicted)
		if err != nil {
			return ConfusionMatrix{}, MetricSet{}, err
		}
		if !truthPresent || !predictedPresent {
			continue
		}

		switch {
		case truth == 1 && predicted == 1:
			cm.TruePositive++
		case truth == 1 && predicted == 0:
			cm.FalseNegative++
		case truth == 0 && predicted == 1:
			cm.FalsePositive++
		default:
			cm.TrueNegative++
		}
		if truth == 1 {
			positives++
		} else {
			negatives++
		}
	}

	if cm.Total() == 0 {
		return ConfusionMatrix{}, MetricSet{}, ErrNoSamples
	}

	metrics := cm.Metrics()
	if positives == 0 || negatives == 0 {
		metrics.ROCAUC = 0
	}
	return cm, metrics, nil
}
