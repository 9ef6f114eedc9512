package transform

import "github.com/locvowork/payment_probability/internal/model"

// IndicatorLayout maps each encoded category to its slot in the encoder output.
type IndicatorLayout struct {
	prefix   string
	baseline string
	dropped  bool
	slots    map[string]int
}

func NewIndicatorLayout(enc *model.OneHotEncoder) *IndicatorLayout {
	l := &IndicatorLayout{
		prefix: enc.Feature() + "_",
		slots:  make(map[string]int),
	}
	if enc.DropsBaseline() {
		l.dropped = true
		l.baseline = enc.Categories()[0]
	}
	for i, c := range enc.OutputCategories() {
		l.slots[c] = i
	}
	return l
}

// Prefix is the tag indicator feature names start with, e.g. "UF_".
func (l *IndicatorLayout) Prefix() string { return l.prefix }

// Slot returns the encoder output position of category.
func (l *IndicatorLayout) Slot(category string) (int, bool) {
	i, ok := l.slots[category]
	return i, ok
}

// IsBaseline reports whether category is the dropped reference category.
func (l *IndicatorLayout) IsBaseline(category string) bool {
	return l.dropped && category == l.baseline
}
