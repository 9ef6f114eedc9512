package sheetrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{
		0:     "A",
		1:     "A",
		7:     "G",
		26:    "Z",
		27:    "AA",
		52:    "AZ",
		702:   "ZZ",
		703:   "AAA",
		16384: "XFD",
	}
	for n, want := range cases {
		assert.Equal(t, want, ColumnLetter(n), "column %d", n)
	}
}

func TestColumnLetter_MatchesExcelize(t *testing.T) {
	for n := 1; n <= 2000; n++ {
		want, err := excelize.ColumnNumberToName(n)
		require.NoError(t, err)
		assert.Equal(t, want, ColumnLetter(n))
		assert.Equal(t, n, ColumnNumber(want))
	}
}

func TestWriteRange(t *testing.T) {
	assert.Equal(t, "Página1!A1:G5", WriteRange("Página1", 5, 7))
	assert.Equal(t, "Sheet!A1:A1", WriteRange("Sheet", 0, 0))
	assert.Equal(t, "'My Sheet'!A1:B2", WriteRange("'My Sheet'", 2, 2))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Página1", SheetName("Página1!A:G", "Default"))
	assert.Equal(t, "'A!B'", SheetName("'A!B'!A:G", "Default"))
	assert.Equal(t, "Default", SheetName("A:G", "Default"))
	assert.Equal(t, "Página1", SheetName("Página1", "Default"))
	assert.Equal(t, "'My Sheet'", SheetName("'My Sheet'", "Default"))
}

func TestParse(t *testing.T) {
	r, err := Parse("Página1!A:G")
	require.NoError(t, err)
	assert.Equal(t, Range{Sheet: "Página1", StartCol: 1, EndCol: 7}, r)

	r, err = Parse("'It''s'!$B$2:D10")
	require.NoError(t, err)
	assert.Equal(t, Range{Sheet: "It's", StartCol: 2, StartRow: 2, EndCol: 4, EndRow: 10}, r)

	r, err = Parse("C3")
	require.NoError(t, err)
	assert.Equal(t, Range{StartCol: 3, StartRow: 3, EndCol: 3, EndRow: 3}, r)

	r, err = Parse("Página1")
	require.NoError(t, err)
	assert.Equal(t, Range{Sheet: "Página1", StartCol: 1, EndCol: MaxColumns}, r)

	r, err = Parse("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", r.Sheet)
	assert.Zero(t, r.StartRow)

	r, err = Parse("'It''s'")
	require.NoError(t, err)
	assert.Equal(t, "It's", r.Sheet)

	for _, bad := range []string{"Sheet!", "Sheet!12", "Sheet!G:A", "Sheet!A0:B2", "Sheet!A5:B2"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
}
