package model

import (
	"errors"
	"fmt"
)

const (
	HandleUnknownError  = "error"
	HandleUnknownIgnore = "ignore"
	HandleUnknownInfreq = "infrequent_if_exist"

	DropNone     = ""
	DropFirst    = "first"
	DropIfBinary = "if_binary"
)

// ErrUnknownCategory is returned by a strict encoder for a value it was not fitted on.
var ErrUnknownCategory = errors.New("category not seen during encoder fitting")

// OneHotEncoder expands a single categorical feature into indicator values.
type OneHotEncoder struct {
	feature       string
	categories    []string
	handleUnknown string
	drop          string
}

func NewOneHotEncoder(feature string, categories []string, handleUnknown, drop string) (*OneHotEncoder, error) {
	if feature == "" {
		return nil, fmt.Errorf("encoder feature name is empty")
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("encoder for %s has no fitted categories", feature)
	}
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if seen[c] {
			return nil, fmt.Errorf("encoder for %s has duplicate category %q", feature, c)
		}
		seen[c] = true
	}
	if handleUnknown == "" {
		handleUnknown = HandleUnknownError
	}
	switch handleUnknown {
	case HandleUnknownError, HandleUnknownIgnore, HandleUnknownInfreq:
	default:
		return nil, fmt.Errorf("unsupported handle_unknown %q", handleUnknown)
	}
	switch drop {
	case DropNone, DropFirst, DropIfBinary:
	default:
		return nil, fmt.Errorf("unsupported drop %q", drop)
	}
	return &OneHotEncoder{
		feature:       feature,
		categories:    append([]string(nil), categories...),
		handleUnknown: handleUnknown,
		drop:          drop,
	}, nil
}

// Feature is the name of the encoded column, also the prefix tag of its indicator features.
func (e *OneHotEncoder) Feature() string { return e.feature }

// Categories returns the fitted categories, including a dropped baseline.
func (e *OneHotEncoder) Categories() []string {
	return append([]string(nil), e.categories...)
}

// Strict reports whether unseen categories are an error.
func (e *OneHotEncoder) Strict() bool { return e.handleUnknown == HandleUnknownError }

// DropsBaseline reports whether the first category is omitted from the output.
func (e *OneHotEncoder) DropsBaseline() bool {
	switch e.drop {
	case DropFirst:
		return true
	case DropIfBinary:
		return len(e.categories) == 2
	}
	return false
}

// OutputCategories lists the categories that own a slot in the encoded vector, in order.
func (e *OneHotEncoder) OutputCategories() []string {
	if e.DropsBaseline() {
		return append([]string(nil), e.categories[1:]...)
	}
	return e.Categories()
}

// Known reports whether value was among the fitted categories.
func (e *OneHotEncoder) Known(value string) bool {
	for _, c := range e.categories {
		if c == value {
			return true
		}
	}
	return false
}

// Transform encodes value. Unknown values yield an all-zero vector unless the encoder is strict.
func (e *OneHotEncoder) Transform(value string) ([]float64, error) {
	out := make([]float64, len(e.OutputCategories()))
	if !e.Known(value) {
		if e.Strict() {
			return nil, fmt.Errorf("%w: %s=%q", ErrUnknownCategory, e.feature, value)
		}
		return out, nil
	}
	for i, c := range e.OutputCategories() {
		if c == value {
			out[i] = 1
		}
	}
	return out, nil
}
