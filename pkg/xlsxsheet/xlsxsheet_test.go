package xlsxsheet

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planilha.xlsx")

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadRange(t *testing.T) {
	path := writeWorkbook(t, "Página1", [][]interface{}{
		{"Cliente", "Valor_Parcela", "Atraso", "Quant_Boletos_Pagos", "Idade", "UF", "Probabilidade", "Notas"},
		{"João", "150,50", "10", "3", "2", "CE"},
		{"Maria", "80", "", "1"},
	})

	rows, err := NewStore().ReadRange(context.Background(), path, "Página1!A:G")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Cliente", "Valor_Parcela", "Atraso", "Quant_Boletos_Pagos", "Idade", "UF", "Probabilidade"}, rows[0])
	assert.Equal(t, []string{"João", "150,50", "10", "3", "2", "CE"}, rows[1])
	assert.Equal(t, []string{"Maria", "80", "", "1"}, rows[2])
}

func TestReadRange_Bounded(t *testing.T) {
	path := writeWorkbook(t, "Dados", [][]interface{}{
		{"a", "b", "c"},
		{"1", "2", "3"},
		{"4", "5", "6"},
	})

	rows, err := NewStore().ReadRange(context.Background(), path, "Dados!B2:C2")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2", "3"}}, rows)
}

func TestReadRange_WholeSheet(t *testing.T) {
	path := writeWorkbook(t, "Página1", [][]interface{}{
		{"Cliente", "UF", "Probabilidade", "Notas"},
		{"João", "CE"},
	})

	rows, err := NewStore().ReadRange(context.Background(), path, "Página1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Cliente", "UF", "Probabilidade", "Notas"}, {"João", "CE"}}, rows)
}

func TestReadRange_MissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Dados", [][]interface{}{{"a"}})
	_, err := NewStore().ReadRange(context.Background(), path, "Outra!A:G")
	assert.Error(t, err)

	_, err = NewStore().ReadRange(context.Background(), filepath.Join(t.TempDir(), "none.xlsx"), "Dados!A:G")
	assert.Error(t, err)
}

func TestWriteRange(t *testing.T) {
	path := writeWorkbook(t, "Página1", [][]interface{}{
		{"UF"},
		{"CE"},
	})
	store := NewStore()
	ctx := context.Background()

	values := [][]string{{"UF", "Probabilidade"}, {"CE", "0,8231"}}
	require.NoError(t, store.WriteRange(ctx, path, "Página1!A1:B2", values))

	rows, err := store.ReadRange(ctx, path, "Página1!A:G")
	require.NoError(t, err)
	assert.Equal(t, values, rows)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	typ, err := f.GetCellType("Página1", "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeNumber, typ)
}

func TestWriteRange_CreatesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nova.xlsx")
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.WriteRange(ctx, path, "Saida!A1:A2", [][]string{{"x"}, {"y"}}))
	rows, err := store.ReadRange(ctx, path, "Saida!A:A")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x"}, {"y"}}, rows)
}
