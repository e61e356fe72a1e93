package survey

import (
	"github.com/google/uuid"
)

// Row is a canonical respondent record: the original cells plus one
// normalized score per detected question. Scores[i] belongs to
// Classification.Questions[i] and is always within the 1-5 scale.
type Row struct {
	Raw    RawRow
	Scores []int
}

// Score returns the normalized value for a "Qn" question key.
func (r Row) Score(key string) (int, bool) {
	if len(key) < 2 || key[0] != 'Q' {
		return 0, false
	}
	idx := 0
	for _, ch := range key[1:] {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		idx = idx*10 + int(ch-'0')
	}
	if idx < 1 || idx > len(r.Scores) {
		return 0, false
	}
	return r.Scores[idx-1], true
}

// Dataset is the immutable per-load analysis value. It is rebuilt wholesale
// on every upload or edit; statistics never mutate it.
type Dataset struct {
	ID         string
	SourceName string
	Headers    []string
	Raw        []RawRow
	Rows       []Row
	Columns    Classification
}

// BuildRows normalizes every question cell of every raw row. Pure: the same
// input always yields the same output, and the raw rows are not modified.
func BuildRows(raw []RawRow, questions []QuestionColumn) []Row {
	rows := make([]Row, len(raw))
	for i, rr := range raw {
		scores := make([]int, len(questions))
		for j, q := range questions {
			scores[j] = NormalizeScore(rr[q.SourceHeader])
		}
		rows[i] = Row{Raw: rr, Scores: scores}
	}
	return rows
}

// NewDataset classifies the headers and builds the canonical rows in one pass.
func NewDataset(sourceName string, headers []string, raw []RawRow) *Dataset {
	cls := Classify(headers, raw)
	return &Dataset{
		ID:         uuid.NewString(),
		SourceName: sourceName,
		Headers:    headers,
		Raw:        raw,
		Rows:       BuildRows(raw, cls.Questions),
		Columns:    cls,
	}
}

// WithCell returns a new dataset with one raw cell replaced, reclassified and
// renormalized from scratch. The receiver is left untouched: the edited row
// goes into a fresh map and a fresh slice, so concurrent readers of the
// current dataset never observe the write.
func (d *Dataset) WithCell(row int, column string, value Cell) *Dataset {
	raw := make([]RawRow, len(d.Raw))
	copy(raw, d.Raw)

	edited := make(RawRow, len(raw[row]))
	for k, v := range raw[row] {
		edited[k] = v
	}
	edited[column] = value
	raw[row] = edited

	return NewDataset(d.SourceName, d.Headers, raw)
}

// FilterAll is the no-op filter value.
const FilterAll = "all"

// Filter restricts rows to those whose stringified cell at Column equals
// Value. A Value of "all" matches everything.
type Filter struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// ApplyFilters returns the rows passing every active filter (conjunction).
// An empty filter list returns the input unchanged; zero matches yield an
// empty, non-nil slice.
func ApplyFilters(rows []Row, filters []Filter) []Row {
	active := filters[:0:0]
	for _, f := range filters {
		if f.Value != FilterAll {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		return rows
	}

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		pass := true
		for _, f := range active {
			if row.Raw[f.Column].String() != f.Value {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, row)
		}
	}
	return out
}
