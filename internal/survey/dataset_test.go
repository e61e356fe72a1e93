package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoHeaders() []string {
	return []string{"Soru 1: İçerik yeterliydi", "Soru 2: Süre uygundu", "Biriminiz neresidir?"}
}

func demoRaw() []RawRow {
	h := demoHeaders()
	return []RawRow{
		{h[0]: NumberCell(5), h[1]: TextCell("4 - Katılıyorum"), h[2]: TextCell("Tıp")},
		{h[0]: NumberCell(1), h[1]: TextCell("bilmem"), h[2]: TextCell("Hukuk")},
		{h[0]: Cell{}, h[1]: NumberCell(2), h[2]: TextCell("Tıp")},
	}
}

func TestNewDataset(t *testing.T) {
	ds := NewDataset("anket.csv", demoHeaders(), demoRaw())

	assert.NotEmpty(t, ds.ID)
	assert.Equal(t, "anket.csv", ds.SourceName)
	require.Len(t, ds.Columns.Questions, 2)
	require.Len(t, ds.Rows, 3)

	assert.Equal(t, []int{5, 4}, ds.Rows[0].Scores)
	assert.Equal(t, []int{1, 3}, ds.Rows[1].Scores) // "bilmem" collapses to 3
	assert.Equal(t, []int{3, 2}, ds.Rows[2].Scores) // empty collapses to 3
}

func TestRowScore(t *testing.T) {
	r := Row{Scores: []int{5, 2}}

	got, ok := r.Score("Q2")
	require.True(t, ok)
	assert.Equal(t, 2, got)

	for _, key := range []string{"Q0", "Q3", "Q", "X1", "Q1a", ""} {
		_, ok := r.Score(key)
		assert.False(t, ok, key)
	}
}

func TestWithCell(t *testing.T) {
	ds := NewDataset("anket.csv", demoHeaders(), demoRaw())
	soru2 := demoHeaders()[1]

	edited := ds.WithCell(1, soru2, ParseCell("5"))

	assert.Equal(t, []int{1, 5}, edited.Rows[1].Scores)
	assert.NotEqual(t, ds.ID, edited.ID)

	// The receiver keeps its own rows and maps; the edit is invisible to it.
	assert.Equal(t, "bilmem", ds.Raw[1][soru2].String())
	assert.Equal(t, []int{1, 3}, ds.Rows[1].Scores)
}

func TestApplyFilters(t *testing.T) {
	ds := NewDataset("anket.csv", demoHeaders(), demoRaw())
	birim := demoHeaders()[2]

	t.Run("no filters returns input", func(t *testing.T) {
		got := ApplyFilters(ds.Rows, nil)
		assert.Len(t, got, 3)
	})

	t.Run("all value is inactive", func(t *testing.T) {
		got := ApplyFilters(ds.Rows, []Filter{{Column: birim, Value: FilterAll}})
		assert.Len(t, got, 3)
	})

	t.Run("single filter", func(t *testing.T) {
		got := ApplyFilters(ds.Rows, []Filter{{Column: birim, Value: "Tıp"}})
		assert.Len(t, got, 2)
	})

	t.Run("filters conjoin", func(t *testing.T) {
		got := ApplyFilters(ds.Rows, []Filter{
			{Column: birim, Value: "Tıp"},
			{Column: demoHeaders()[0], Value: "5"},
		})
		require.Len(t, got, 1)
		assert.Equal(t, []int{5, 4}, got[0].Scores)
	})

	t.Run("zero matches yield empty non-nil slice", func(t *testing.T) {
		got := ApplyFilters(ds.Rows, []Filter{{Column: birim, Value: "Eczacılık"}})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("filtering never mutates the dataset", func(t *testing.T) {
		before := len(ds.Rows)
		ApplyFilters(ds.Rows, []Filter{{Column: birim, Value: "Tıp"}})
		assert.Len(t, ds.Rows, before)
	})
}
