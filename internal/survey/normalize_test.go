package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind CellKind
	}{
		{"empty", "", CellEmpty},
		{"whitespace only", "   ", CellEmpty},
		{"integer", "4", CellNumber},
		{"float", "4.7", CellNumber},
		{"negative", "-2", CellNumber},
		{"text", "katılıyorum", CellText},
		{"labelled score", "5 - Kesinlikle Katılıyorum", CellText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, ParseCell(tt.raw).Kind)
		})
	}
}

func TestCellInt(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"4", 4, true},
		{"4.7", 4, true}, // truncated, not rounded
		{"5 - Kesinlikle Katılıyorum", 5, true},
		{"-3", -3, true},
		{"katılıyorum", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCell(tt.raw).Int()
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

// NormalizeScore must be total: any cell whatsoever maps to a value in 1-5.
func TestNormalizeScore(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"valid low", "1", 1},
		{"valid high", "5", 5},
		{"float truncates", "4.7", 4},
		{"labelled answer", "3 - Kararsızım", 3},
		{"above range", "7", DefaultScore},
		{"below range", "0", DefaultScore},
		{"negative", "-1", DefaultScore},
		{"text", "bilmiyorum", DefaultScore},
		{"empty", "", DefaultScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeScore(ParseCell(tt.raw))
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, ScaleMin)
			assert.LessOrEqual(t, got, ScaleMax)
		})
	}
}

func TestNumberCellRoundTrip(t *testing.T) {
	c := NumberCell(4)
	assert.Equal(t, "4", c.String())
	n, ok := c.Int()
	assert.True(t, ok)
	assert.Equal(t, 4, n)
}

func TestCellFloat(t *testing.T) {
	f, ok := ParseCell("4.7").Float()
	assert.True(t, ok)
	assert.InDelta(t, 4.7, f, 1e-9)

	_, ok = ParseCell("katılıyorum").Float()
	assert.False(t, ok)
}
