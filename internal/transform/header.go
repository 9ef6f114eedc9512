package transform

import (
	"sort"

	"github.com/locvowork/payment_probability/internal/domain"
)

// IndexMap maps each canonical field to its column index in the sheet header.
type IndexMap map[string]int

// HeaderResolver locates canonical fields in a sheet header, honoring the column aliases.
// The alias map is inverted once at construction.
type HeaderResolver struct {
	fields  []string
	columns map[string]string
}

// NewHeaderResolver builds a resolver. regionField is always searched under its own name.
func NewHeaderResolver(fields []string, aliases map[string]string, regionField string) *HeaderResolver {
	// Sorted so that two aliases of one field resolve deterministically.
	sheetNames := make([]string, 0, len(aliases))
	for sheetName := range aliases {
		sheetNames = append(sheetNames, sheetName)
	}
	sort.Strings(sheetNames)

	inverted := make(map[string]string, len(aliases))
	for _, sheetName := range sheetNames {
		canonical := aliases[sheetName]
		if _, ok := inverted[canonical]; !ok {
			inverted[canonical] = sheetName
		}
	}

	columns := make(map[string]string, len(fields))
	for _, f := range fields {
		switch sheetName, aliased := inverted[f]; {
		case f == regionField:
			columns[f] = f
		case aliased:
			columns[f] = sheetName
		default:
			columns[f] = f
		}
	}

	return &HeaderResolver{
		fields:  append([]string(nil), fields...),
		columns: columns,
	}
}

// DefaultHeaderResolver resolves the payment model's five input fields.
func DefaultHeaderResolver() *HeaderResolver {
	return NewHeaderResolver(domain.CanonicalFields, domain.ColumnAliases, domain.FieldUF)
}

// ColumnFor returns the sheet column name searched for field.
func (r *HeaderResolver) ColumnFor(field string) string {
	return r.columns[field]
}

// Fields returns the canonical fields in resolution order.
func (r *HeaderResolver) Fields() []string {
	return append([]string(nil), r.fields...)
}

// Resolve finds every field in header by exact match, first occurrence wins.
// A single missing column fails the whole resolution.
func (r *HeaderResolver) Resolve(header []string) (IndexMap, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := positions[name]; !ok {
			positions[name] = i
		}
	}

	index := make(IndexMap, len(r.fields))
	for _, f := range r.fields {
		column := r.columns[f]
		i, ok := positions[column]
		if !ok {
			return nil, &domain.HeaderError{
				Missing:  column,
				Header:   append([]string(nil), header...),
				Expected: r.Fields(),
			}
		}
		index[f] = i
	}
	return index, nil
}
