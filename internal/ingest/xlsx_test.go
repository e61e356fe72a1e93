package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadXLSX(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Soru 1", "Birim"},
		{5, "Tıp"},
		{3, "Hukuk"},
	})
	table, err := ReadXLSX(buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"Soru 1", "Birim"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Tıp", table.Rows[0]["Birim"].String())

	n, ok := table.Rows[0]["Soru 1"].Int()
	require.True(t, ok)
	assert.Equal(t, 5, n)
}

// A blank trailing cell must become an empty value under its header, not a
// missing key.
func TestReadXLSXPadsBlankCells(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Soru 1", "Birim", "Görüş"},
		{5, "Tıp"},
	})
	table, err := ReadXLSX(buf)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Len(t, row, 3)
	assert.True(t, row["Görüş"].IsEmpty())
}

func TestReadXLSXHeadersTrimmed(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{" Soru 1 ", " Birim "},
		{5, "Tıp"},
	})
	table, err := ReadXLSX(buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Soru 1", "Birim"}, table.Headers)
}

func TestReadXLSXEmpty(t *testing.T) {
	t.Run("header only", func(t *testing.T) {
		buf := buildWorkbook(t, [][]interface{}{{"Soru 1", "Birim"}})
		_, err := ReadXLSX(buf)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})
	t.Run("blank workbook", func(t *testing.T) {
		buf := buildWorkbook(t, nil)
		_, err := ReadXLSX(buf)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})
	t.Run("not a workbook", func(t *testing.T) {
		_, err := ReadXLSX(strings.NewReader("bu bir excel dosyası değil"))
		assert.Error(t, err)
	})
}
