package transform

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/locvowork/payment_probability/internal/domain"
	"github.com/locvowork/payment_probability/internal/model"
)

var (
	ErrEmptyField  = errors.New("required field is empty")
	ErrParseNumber = errors.New("invalid numeric value")
)

type slotKind int

const (
	slotZero slotKind = iota
	slotNumeric
	slotIndicator
)

type featureSlot struct {
	kind  slotKind
	field string
	pos   int
}

// RowResult is the outcome of transforming one data row.
// Probability is empty whenever Err is set.
type RowResult struct {
	Cells       []string
	Probability string
	Err         error
	Warnings    []string
}

// Transformer turns data rows into probability strings. The feature plan is
// computed once from the model's declared feature order, so Transform is a pure
// function of the row.
type Transformer struct {
	artifact   *model.Artifact
	index      IndexMap
	width      int
	layout     *IndicatorLayout
	plan       []featureSlot
	unresolved []string
}

// NewTransformer builds the feature plan. width is the header length rows are padded to.
func NewTransformer(artifact *model.Artifact, index IndexMap, width int) (*Transformer, error) {
	for _, f := range domain.CanonicalFields {
		i, ok := index[f]
		if !ok {
			return nil, fmt.Errorf("index map has no column for %s", f)
		}
		if i < 0 || i >= width {
			return nil, fmt.Errorf("column index %d for %s is outside a header of %d columns", i, f, width)
		}
	}

	t := &Transformer{
		artifact: artifact,
		index:    index,
		width:    width,
		layout:   NewIndicatorLayout(artifact.Encoder),
	}

	numeric := make(map[string]bool, len(domain.NumericFields))
	for _, f := range domain.NumericFields {
		numeric[f] = true
	}

	for _, name := range artifact.Classifier.FeatureNames() {
		switch {
		case numeric[name]:
			t.plan = append(t.plan, featureSlot{kind: slotNumeric, field: name})
		case strings.HasPrefix(name, t.layout.Prefix()):
			category := strings.TrimPrefix(name, t.layout.Prefix())
			if pos, ok := t.layout.Slot(category); ok {
				t.plan = append(t.plan, featureSlot{kind: slotIndicator, pos: pos})
				continue
			}
			t.plan = append(t.plan, featureSlot{kind: slotZero})
			if !t.layout.IsBaseline(category) {
				t.unresolved = append(t.unresolved, name)
			}
		default:
			t.plan = append(t.plan, featureSlot{kind: slotZero})
			t.unresolved = append(t.unresolved, name)
		}
	}
	return t, nil
}

// UnresolvedFeatures lists model features that will always be fed 0.
func (t *Transformer) UnresolvedFeatures() []string {
	return append([]string(nil), t.unresolved...)
}

// Transform computes the probability string for one data row. Failures are
// reported in RowResult.Err and leave Probability empty.
func (t *Transformer) Transform(row []string) RowResult {
	res := RowResult{Cells: PadRow(row, t.width)}

	x, warnings, err := t.vector(res.Cells)
	res.Warnings = warnings
	if err != nil {
		res.Err = err
		return res
	}

	probs, err := t.artifact.Classifier.PredictProba(x)
	if err != nil {
		res.Err = err
		return res
	}
	if len(probs) < 2 {
		res.Err = fmt.Errorf("model returned %d class probabilities", len(probs))
		return res
	}

	res.Probability = FormatProbability(probs[1])
	return res
}

// vector assembles the feature vector for a padded row in the model's declared order.
func (t *Transformer) vector(cells []string) ([]float64, []string, error) {
	raw := make(map[string]string, len(domain.CanonicalFields))
	for _, f := range domain.CanonicalFields {
		v := strings.TrimSpace(cells[t.index[f]])
		if v == "" {
			return nil, nil, fmt.Errorf("%w: %s", ErrEmptyField, f)
		}
		raw[f] = v
	}

	values := make(map[string]float64, len(domain.NumericFields))
	for _, f := range domain.NumericFields {
		v, err := ParseDecimal(raw[f])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", f, err)
		}
		values[f] = v
	}

	var warnings []string
	region := raw[domain.FieldUF]
	encoded, err := t.artifact.Encoder.Transform(region)
	if err != nil {
		return nil, nil, err
	}
	if !t.artifact.Encoder.Known(region) {
		warnings = append(warnings, fmt.Sprintf("%s %q was not seen when the encoder was fitted, all indicators set to 0", t.artifact.Encoder.Feature(), region))
	}

	x := make([]float64, len(t.plan))
	for i, s := range t.plan {
		switch s.kind {
		case slotNumeric:
			x[i] = values[s.field]
		case slotIndicator:
			x[i] = encoded[s.pos]
		}
	}
	return x, warnings, nil
}

// PadRow returns a copy of row right-padded with empty cells, or truncated, to width.
func PadRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

// ParseDecimal parses a number that may use a comma as decimal separator.
// Hex floats are rejected.
func ParseDecimal(s string) (float64, error) {
	if strings.ContainsAny(s, "xX") {
		return 0, fmt.Errorf("%w: %q", ErrParseNumber, s)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrParseNumber, s)
	}
	return v, nil
}

// FormatProbability renders p with 4 decimals and a comma separator (0.8231 -> "0,8231").
func FormatProbability(p float64) string {
	return strings.Replace(strconv.FormatFloat(p, 'f', 4, 64), ".", ",", 1)
}
