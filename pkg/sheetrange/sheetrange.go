// Package sheetrange does the A1-notation arithmetic used to address spreadsheet ranges.
package sheetrange

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnLetter converts a 1-based column number to its letter label (1 -> A, 27 -> AA).
// Numbers below 1 map to "A".
func ColumnLetter(n int) string {
	if n <= 0 {
		return "A"
	}
	var label []byte
	for n > 0 {
		rem := (n - 1) % 26
		label = append([]byte{byte('A' + rem)}, label...)
		n = (n - 1) / 26
	}
	return string(label)
}

// ColumnNumber is the inverse of ColumnLetter. It returns 0 for an invalid label.
func ColumnNumber(label string) int {
	n := 0
	for _, r := range strings.ToUpper(label) {
		if r < 'A' || r > 'Z' {
			return 0
		}
		n = n*26 + int(r-'A') + 1
	}
	return n
}

// WriteRange builds the range covering a table of rows x cols anchored at A1.
// Empty dimensions still yield a well-formed range.
func WriteRange(sheet string, rows, cols int) string {
	if rows < 1 {
		rows = 1
	}
	return fmt.Sprintf("%s!A1:%s%d", sheet, ColumnLetter(cols), rows)
}

// SheetName extracts the sheet part of a range expression, or returns fallback when there is none.
func SheetName(rng, fallback string) string {
	if i := strings.LastIndex(rng, "!"); i >= 0 {
		return rng[:i]
	}
	if isSheetName(rng) {
		return rng
	}
	return fallback
}

// MaxColumns is the widest column span a whole-sheet range covers.
const MaxColumns = 18278 // ZZZ

// Range is a parsed A1 range. Zero rows mean the bound is open (A:G).
type Range struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// Parse reads expressions such as "Sheet!A:G", "'My Sheet'!B2:D10" or "A1:C3".
// A bare sheet name ("Sheet" or "'My Sheet'") covers the whole sheet.
func Parse(rng string) (Range, error) {
	var r Range
	cells := rng
	if i := strings.LastIndex(rng, "!"); i >= 0 {
		r.Sheet = UnquoteSheet(rng[:i])
		cells = rng[i+1:]
	} else if isSheetName(rng) {
		r.Sheet = UnquoteSheet(rng)
		r.StartCol, r.EndCol = 1, MaxColumns
		return r, nil
	}
	if cells == "" {
		return r, fmt.Errorf("range %q has no cell reference", rng)
	}

	parts := strings.SplitN(cells, ":", 2)
	var err error
	r.StartCol, r.StartRow, err = parseCell(parts[0])
	if err != nil {
		return r, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	if len(parts) == 1 {
		r.EndCol, r.EndRow = r.StartCol, r.StartRow
		return r, nil
	}
	r.EndCol, r.EndRow, err = parseCell(parts[1])
	if err != nil {
		return r, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	if r.EndCol < r.StartCol || (r.EndRow != 0 && r.EndRow < r.StartRow) {
		return r, fmt.Errorf("invalid range %q: end before start", rng)
	}
	return r, nil
}

// isSheetName reports whether rng without a "!" names a sheet rather than cells.
// Quoted names always do; otherwise anything that is not a cell reference within
// MaxColumns does, so "Sheet1" is a sheet and "C3" a cell.
func isSheetName(rng string) bool {
	if rng == "" {
		return false
	}
	if strings.HasPrefix(rng, "'") {
		return true
	}
	for _, part := range strings.SplitN(rng, ":", 2) {
		col, _, err := parseCell(part)
		if err != nil || col > MaxColumns {
			return true
		}
	}
	return false
}

// UnquoteSheet strips A1 sheet quoting ('It''s' -> It's).
func UnquoteSheet(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

func parseCell(ref string) (col, row int, err error) {
	ref = strings.ReplaceAll(ref, "$", "")
	i := 0
	for i < len(ref) && (ref[i] >= 'A' && ref[i] <= 'Z' || ref[i] >= 'a' && ref[i] <= 'z') {
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("cell %q has no column", ref)
	}
	col = ColumnNumber(ref[:i])
	if i == len(ref) {
		return col, 0, nil
	}
	row, err = strconv.Atoi(ref[i:])
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("cell %q has an invalid row", ref)
	}
	return col, row, nil
}
