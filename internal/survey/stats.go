package survey

import (
	"math"
	"sort"
)

// QuestionStats summarizes one Likert item over a filtered view.
type QuestionStats struct {
	Key    string  `json:"key"`
	Text   string  `json:"text"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	N      int     `json:"n"`
	Status string  `json:"status"`
}

// CorrelationPair is a strongly correlated question pair.
type CorrelationPair struct {
	Q1          string  `json:"q1"`
	Q2          string  `json:"q2"`
	Correlation float64 `json:"correlation"`
}

// GroupAverages holds per-question means for one grouping value.
type GroupAverages struct {
	Group string    `json:"group"`
	Size  int       `json:"size"`
	Means []float64 `json:"means"` // aligned with the question list
}

// GroupCount is a respondent count for one grouping value.
type GroupCount struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}

// UnspecifiedGroup labels rows with no value for the grouping column.
const UnspecifiedGroup = "Belirtilmemiş"

const (
	correlationThreshold = 0.6
	correlationLimit     = 5
	groupedAveragesTopN  = 5
)

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleStd returns the sample standard deviation (n-1 divisor), 0 when
// fewer than two values are present.
func SampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// sampleVariance is SampleStd squared without the root, 0 when n < 2.
func sampleVariance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values)-1)
}

// questionValues extracts the normalized scores of one question index.
func questionValues(rows []Row, idx int) []float64 {
	vals := make([]float64, 0, len(rows))
	for _, r := range rows {
		if idx < len(r.Scores) {
			vals = append(vals, float64(r.Scores[idx]))
		}
	}
	return vals
}

// questionStatus maps a mean to the dashboard's table badge.
func questionStatus(mean float64) string {
	switch {
	case mean >= 4:
		return "Çok İyi"
	case mean >= 3:
		return "Orta"
	default:
		return "Geliştirilmeli"
	}
}

// PerQuestionStats computes mean, sample std and count for every question.
func PerQuestionStats(rows []Row, questions []QuestionColumn) []QuestionStats {
	stats := make([]QuestionStats, len(questions))
	for i, q := range questions {
		vals := questionValues(rows, i)
		m := Mean(vals)
		stats[i] = QuestionStats{
			Key:    q.Key,
			Text:   q.DisplayText,
			Mean:   m,
			Std:    SampleStd(vals),
			N:      len(vals),
			Status: questionStatus(m),
		}
	}
	return stats
}

// OverallMean pools every score of every question across all rows; it is the
// mean of the flattened matrix, not a mean of per-question means.
func OverallMean(rows []Row, questionCount int) float64 {
	sum := 0.0
	count := 0
	for _, r := range rows {
		for i := 0; i < questionCount && i < len(r.Scores); i++ {
			sum += float64(r.Scores[i])
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// AverageStd is the mean of the per-question sample deviations, the headline
// consistency figure of the dashboard.
func AverageStd(stats []QuestionStats) float64 {
	if len(stats) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range stats {
		sum += s.Std
	}
	return sum / float64(len(stats))
}

// CronbachAlpha estimates internal consistency over the filtered rows.
// Requires at least two rows and two questions, otherwise 0. Per-row totals
// treat missing question values as 0 rather than dropping the row, and the
// result is reported raw: values above 1 or below 0 are possible and left to
// the caller to display.
func CronbachAlpha(rows []Row, questionCount int) float64 {
	n := len(rows)
	k := questionCount
	if n < 2 || k < 2 {
		return 0
	}

	sumItemVariances := 0.0
	for i := 0; i < k; i++ {
		vals := questionValues(rows, i)
		sumItemVariances += sampleVariance(vals)
	}

	totals := make([]float64, n)
	for ri, r := range rows {
		total := 0.0
		for i := 0; i < k; i++ {
			if i < len(r.Scores) {
				total += float64(r.Scores[i])
			}
		}
		totals[ri] = total
	}

	varTotal := sampleVariance(totals)
	if varTotal == 0 {
		return 0
	}

	return (float64(k) / float64(k-1)) * (1 - sumItemVariances/varTotal)
}

// PearsonCorrelation computes the product-moment correlation of two equal
// length series, 0 when the denominator vanishes.
func PearsonCorrelation(a, b []float64) float64 {
	n := len(a)
	if n == 0 || n != len(b) {
		return 0
	}
	var sumA, sumB, sumAB, sumA2, sumB2 float64
	for i := 0; i < n; i++ {
		sumA += a[i]
		sumB += b[i]
		sumAB += a[i] * b[i]
		sumA2 += a[i] * a[i]
		sumB2 += b[i] * b[i]
	}
	num := float64(n)*sumAB - sumA*sumB
	den := math.Sqrt((float64(n)*sumA2 - sumA*sumA) * (float64(n)*sumB2 - sumB*sumB))
	if den == 0 {
		return 0
	}
	return num / den
}

// TopCorrelatedPairs returns the strongest question pairs with correlation
// above 0.6, sorted descending, at most five.
func TopCorrelatedPairs(rows []Row, questions []QuestionColumn) []CorrelationPair {
	var pairs []CorrelationPair
	for i := 0; i < len(questions); i++ {
		valsI := questionValues(rows, i)
		for j := i + 1; j < len(questions); j++ {
			valsJ := questionValues(rows, j)
			corr := PearsonCorrelation(valsI, valsJ)
			if corr > correlationThreshold {
				pairs = append(pairs, CorrelationPair{
					Q1:          questions[i].Key,
					Q2:          questions[j].Key,
					Correlation: corr,
				})
			}
		}
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].Correlation > pairs[b].Correlation })
	if len(pairs) > correlationLimit {
		pairs = pairs[:correlationLimit]
	}
	return pairs
}

// GroupedAverages partitions rows by the grouping column's stringified value
// and computes per-question means inside each partition. Blank values fall
// into the "Belirtilmemiş" partition. Only the five largest partitions are
// kept, ordered by member count descending.
func GroupedAverages(rows []Row, questions []QuestionColumn, groupingKey string) []GroupAverages {
	type acc struct {
		count  int
		sums   []float64
		counts []int
	}
	groups := make(map[string]*acc)
	order := []string{}

	for _, r := range rows {
		g := r.Raw[groupingKey].String()
		if g == "" {
			g = UnspecifiedGroup
		}
		a := groups[g]
		if a == nil {
			a = &acc{sums: make([]float64, len(questions)), counts: make([]int, len(questions))}
			groups[g] = a
			order = append(order, g)
		}
		a.count++
		for i := range questions {
			if i < len(r.Scores) {
				a.sums[i] += float64(r.Scores[i])
				a.counts[i]++
			}
		}
	}

	out := make([]GroupAverages, 0, len(groups))
	for _, g := range order {
		a := groups[g]
		means := make([]float64, len(questions))
		for i := range questions {
			if a.counts[i] > 0 {
				means[i] = a.sums[i] / float64(a.counts[i])
			}
		}
		out = append(out, GroupAverages{Group: g, Size: a.count, Means: means})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Size > out[j].Size })
	if len(out) > groupedAveragesTopN {
		out = out[:groupedAveragesTopN]
	}
	return out
}

// GroupDistribution counts respondents per grouping value for the
// distribution chart, in first-seen order.
func GroupDistribution(rows []Row, groupingKey string) []GroupCount {
	counts := make(map[string]int)
	order := []string{}
	for _, r := range rows {
		g := r.Raw[groupingKey].String()
		if g == "" {
			g = UnspecifiedGroup
		}
		if _, ok := counts[g]; !ok {
			order = append(order, g)
		}
		counts[g]++
	}
	out := make([]GroupCount, 0, len(order))
	for _, g := range order {
		out = append(out, GroupCount{Group: g, Count: counts[g]})
	}
	return out
}

// ScoreDistribution buckets every score of every question into the 1-5
// histogram, rounding to the nearest integer first.
func ScoreDistribution(rows []Row, questionCount int) [5]int {
	var dist [5]int
	for _, r := range rows {
		for i := 0; i < questionCount && i < len(r.Scores); i++ {
			rounded := int(math.Round(float64(r.Scores[i])))
			if rounded >= ScaleMin && rounded <= ScaleMax {
				dist[rounded-1]++
			}
		}
	}
	return dist
}
