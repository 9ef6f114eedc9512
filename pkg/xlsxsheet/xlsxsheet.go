// Package xlsxsheet reads and writes cell ranges of a local .xlsx workbook with the same
// contract as the Google Sheets values API, so a batch can run against a file.
package xlsxsheet

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/locvowork/payment_probability/pkg/sheetrange"
	"github.com/xuri/excelize/v2"
)

// Store treats the spreadsheet ID as the workbook path.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// ReadRange returns the rows of rng. Like the Sheets API, trailing empty cells and
// trailing empty rows are omitted.
func (s *Store) ReadRange(ctx context.Context, path, rng string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := sheetrange.Parse(rng)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet, err := resolveSheet(f, r.Sheet)
	if err != nil {
		return nil, err
	}

	// RawCellValue keeps cells as stored, matching what the sheet shows for text cells.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	startRow := 1
	if r.StartRow > 0 {
		startRow = r.StartRow
	}
	endRow := len(rows)
	if r.EndRow > 0 && r.EndRow < endRow {
		endRow = r.EndRow
	}

	var out [][]string
	for rowNum := startRow; rowNum <= endRow; rowNum++ {
		out = append(out, trimRight(sliceColumns(rows[rowNum-1], r.StartCol, r.EndCol)))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

// WriteRange overwrites the cells of rng with values as plain strings and saves the workbook.
// A missing workbook or sheet is created.
func (s *Store) WriteRange(ctx context.Context, path, rng string, values [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r, err := sheetrange.Parse(rng)
	if err != nil {
		return err
	}
	startRow := r.StartRow
	if startRow == 0 {
		startRow = 1
	}

	f, err := openOrCreate(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := r.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	for i, row := range values {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(r.StartCol+j, startRow+i)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func openOrCreate(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return excelize.NewFile(), nil
	}
	return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
}

func resolveSheet(f *excelize.File, name string) (string, error) {
	if name == "" {
		return f.GetSheetName(0), nil
	}
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return "", fmt.Errorf("sheet %q not found in workbook", name)
	}
	return name, nil
}

func sliceColumns(row []string, startCol, endCol int) []string {
	from := startCol - 1
	if from >= len(row) {
		return nil
	}
	to := endCol
	if to > len(row) {
		to = len(row)
	}
	return append([]string(nil), row[from:to]...)
}

func trimRight(row []string) []string {
	for len(row) > 0 && row[len(row)-1] == "" {
		row = row[:len(row)-1]
	}
	return row
}
