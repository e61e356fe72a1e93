package survey

// DefaultScore is substituted for any cell that does not hold a valid Likert
// response, so every statistic downstream operates on a dense 1-5 matrix.
const DefaultScore = 3

// ScaleMin and ScaleMax bound the canonical Likert scale.
const (
	ScaleMin = 1
	ScaleMax = 5
)

// NormalizeScore maps a raw cell to a canonical 1-5 integer score. Non-numeric,
// out-of-range and empty values all collapse to DefaultScore; the function is
// total and never fails.
func NormalizeScore(c Cell) int {
	n, ok := c.Int()
	if !ok || n < ScaleMin || n > ScaleMax {
		return DefaultScore
	}
	return n
}
