package model

import (
	"fmt"
	"math"
)

const (
	MultiClassMultinomial = "multinomial"
	MultiClassOVR         = "ovr"
)

// LogisticRegression is a fitted linear classifier. It is immutable once built.
type LogisticRegression struct {
	featureNames []string
	classes      []string
	coef         [][]float64
	intercept    []float64
	multiClass   string
}

// NewLogisticRegression validates the fitted parameters. coef has one row for a binary
// model and one row per class otherwise.
func NewLogisticRegression(featureNames, classes []string, coef [][]float64, intercept []float64, multiClass string) (*LogisticRegression, error) {
	if len(featureNames) == 0 {
		return nil, fmt.Errorf("model has no feature names")
	}
	if len(classes) < 2 {
		return nil, fmt.Errorf("model needs at least 2 classes, got %d", len(classes))
	}
	wantRows := len(classes)
	if len(classes) == 2 {
		wantRows = 1
	}
	if len(coef) != wantRows {
		return nil, fmt.Errorf("model has %d coefficient rows, want %d for %d classes", len(coef), wantRows, len(classes))
	}
	for i, row := range coef {
		if len(row) != len(featureNames) {
			return nil, fmt.Errorf("coefficient row %d has %d values, want %d", i, len(row), len(featureNames))
		}
	}
	if len(intercept) != len(coef) {
		return nil, fmt.Errorf("model has %d intercepts, want %d", len(intercept), len(coef))
	}
	if multiClass == "" {
		multiClass = MultiClassMultinomial
	}
	if multiClass != MultiClassMultinomial && multiClass != MultiClassOVR {
		return nil, fmt.Errorf("unsupported multi_class %q", multiClass)
	}

	m := &LogisticRegression{
		featureNames: append([]string(nil), featureNames...),
		classes:      append([]string(nil), classes...),
		intercept:    append([]float64(nil), intercept...),
		multiClass:   multiClass,
	}
	for _, row := range coef {
		m.coef = append(m.coef, append([]float64(nil), row...))
	}
	return m, nil
}

// FeatureNames returns the ordered feature list the model was fitted on.
func (m *LogisticRegression) FeatureNames() []string {
	return append([]string(nil), m.featureNames...)
}

func (m *LogisticRegression) Classes() []string {
	return append([]string(nil), m.classes...)
}

// PredictProba returns one probability per class, in class order.
func (m *LogisticRegression) PredictProba(x []float64) ([]float64, error) {
	if len(x) != len(m.featureNames) {
		return nil, fmt.Errorf("feature vector has %d values, model expects %d", len(x), len(m.featureNames))
	}

	if len(m.coef) == 1 {
		p := sigmoid(m.decision(0, x))
		return []float64{1 - p, p}, nil
	}

	scores := make([]float64, len(m.coef))
	for k := range m.coef {
		scores[k] = m.decision(k, x)
	}
	if m.multiClass == MultiClassOVR {
		var sum float64
		for k, s := range scores {
			scores[k] = sigmoid(s)
			sum += scores[k]
		}
		for k := range scores {
			scores[k] /= sum
		}
		return scores, nil
	}
	return softmax(scores), nil
}

func (m *LogisticRegression) decision(k int, x []float64) float64 {
	z := m.intercept[k]
	for i, w := range m.coef[k] {
		z += w * x[i]
	}
	return z
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func softmax(scores []float64) []float64 {
	max := math.Inf(-1)
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	var sum float64
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = math.Exp(s - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
