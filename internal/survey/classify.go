package survey

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// QuestionColumn is a detected Likert item.
type QuestionColumn struct {
	SourceHeader string `json:"source_header"`
	DisplayText  string `json:"display_text"`
	Key          string `json:"key"` // "Q1", "Q2", ... in detection order
}

// GroupingCandidate is a demographic column usable for filtering and breakdowns.
type GroupingCandidate struct {
	SourceHeader string   `json:"source_header"`
	Label        string   `json:"label"`
	Options      []string `json:"options"` // sorted, deduplicated
}

// MultiSelectCandidate is a checkbox-style column whose cells join several
// options with ';' or ','.
type MultiSelectCandidate struct {
	SourceHeader string `json:"source_header"`
	Label        string `json:"label"`
}

// FeedbackColumn is a free-text opinion column.
type FeedbackColumn struct {
	SourceHeader string `json:"source_header"`
	Label        string `json:"label"`
}

// Classification partitions a sheet's headers into survey roles. Roles other
// than Question are detected independently, so one header may appear in both
// the grouping and multi-select lists.
type Classification struct {
	Questions   []QuestionColumn       `json:"questions"`
	Grouping    []GroupingCandidate    `json:"grouping"`
	MultiSelect []MultiSelectCandidate `json:"multi_select"`
	Feedback    []FeedbackColumn       `json:"feedback"`
}

// QuestionByKey returns the question with the given "Qn" key.
func (c Classification) QuestionByKey(key string) (QuestionColumn, bool) {
	for _, q := range c.Questions {
		if q.Key == key {
			return q, true
		}
	}
	return QuestionColumn{}, false
}

const (
	groupingMinOptions = 2
	groupingMaxOptions = 40
	groupingMaxLen     = 60
	displayTextMaxLen  = 50

	// Label given to the two hardcoded institutional feedback columns.
	generalFeedbackLabel = "Genel Görüş ve Öneriler"
)

var (
	questionPrefixRe = regexp.MustCompile(`(?i)^(soru|question|q|s)\s*\d+`)
	bracketRe        = regexp.MustCompile(`\[(.*?)\]`)
)

// isQuestionHeader applies the Likert-item heuristics. Any single rule
// matching qualifies the header.
func isQuestionHeader(header string) bool {
	lower := strings.ToLower(header)
	if strings.Contains(lower, "memnuniyet") && strings.Contains(lower, "değerlendirme") {
		return true
	}
	if strings.Contains(header, "[") {
		return true
	}
	if questionPrefixRe.MatchString(header) {
		return true
	}
	if strings.Contains(lower, "puan") || strings.Contains(lower, "skor") || strings.Contains(lower, "rating") {
		return true
	}
	return false
}

// questionDisplayText derives the short label shown in charts: bracketed
// sub-labels win, otherwise the header is truncated to 50 characters.
func questionDisplayText(header string) string {
	if m := bracketRe.FindStringSubmatch(header); m != nil {
		return m[1]
	}
	runes := []rune(header)
	if len(runes) > displayTextMaxLen {
		return string(runes[:displayTextMaxLen]) + "..."
	}
	return header
}

// groupingLabel remaps well-known institutional headers to friendly labels.
func groupingLabel(header string) string {
	switch {
	case strings.Contains(header, "Biriminiz"):
		return "Birim / Fakülte"
	case strings.Contains(header, "seçeneği işaretleyiniz"):
		return "Rol / Unvan"
	case strings.Contains(header, "Cinsiyet"):
		return "Cinsiyet"
	default:
		return header
	}
}

// isPriorityFeedback matches the two hardcoded compound institutional phrases.
// These columns are forced to the general label and inserted at the front of
// the feedback list; the header is not considered for any other feedback rule.
func isPriorityFeedback(lower string) bool {
	if strings.Contains(lower, "uzaktan eğitim merkezi müdürlüğü") && strings.Contains(lower, "görüş ve öneriniz") {
		return true
	}
	if strings.Contains(lower, "yukarda yer almayan") && strings.Contains(lower, "görüş ve öneriniz") {
		return true
	}
	return false
}

// isGenericFeedback matches opinion/suggestion keywords.
func isGenericFeedback(lower string) bool {
	for _, kw := range []string{"görüş", "öneri", "ifade", "düşünce"} {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Classify inspects headers and rows and partitions the headers into question,
// grouping, multi-select and feedback roles. Headers classified as questions
// are excluded from every other role. The function is pure; re-running it on
// identical input yields identical output.
func Classify(headers []string, rows []RawRow) Classification {
	var cls Classification

	questionSet := make(map[string]bool, len(headers))
	for _, h := range headers {
		if !isQuestionHeader(h) {
			continue
		}
		questionSet[h] = true
		cls.Questions = append(cls.Questions, QuestionColumn{
			SourceHeader: h,
			DisplayText:  questionDisplayText(h),
			Key:          "Q" + strconv.Itoa(len(cls.Questions)+1),
		})
	}

	for _, h := range headers {
		if questionSet[h] {
			continue
		}

		distinct := make(map[string]bool)
		hasDelimiter := false
		for _, row := range rows {
			val := row[h].String()
			if val == "" {
				continue
			}
			distinct[val] = true
			if strings.ContainsAny(val, ";,") {
				hasDelimiter = true
			}
		}

		if len(distinct) >= groupingMinOptions && len(distinct) <= groupingMaxOptions {
			longText := false
			for v := range distinct {
				if len([]rune(v)) > groupingMaxLen {
					longText = true
					break
				}
			}
			if !longText {
				options := make([]string, 0, len(distinct))
				for v := range distinct {
					options = append(options, v)
				}
				sort.Strings(options)
				cls.Grouping = append(cls.Grouping, GroupingCandidate{
					SourceHeader: h,
					Label:        groupingLabel(h),
					Options:      options,
				})
			}
		}

		if hasDelimiter {
			cls.MultiSelect = append(cls.MultiSelect, MultiSelectCandidate{SourceHeader: h, Label: h})
		}

		lower := strings.ToLower(h)
		if isPriorityFeedback(lower) {
			// Prepend: the institutional catch-all columns outrank generic
			// matches regardless of column order, and skip the numeric check.
			cls.Feedback = append([]FeedbackColumn{{SourceHeader: h, Label: generalFeedbackLabel}}, cls.Feedback...)
			continue
		}

		if isGenericFeedback(lower) {
			// Keyword matches on numeric rating columns are false positives;
			// require at least one non-empty value that is not an integer.
			if hasNonIntegerSample(rows, h) {
				cls.Feedback = append(cls.Feedback, FeedbackColumn{SourceHeader: h, Label: h})
			}
		}
	}

	return cls
}

// hasNonIntegerSample reports whether the first answered value in the column
// fails to parse as an integer, mirroring the single-sample check of the
// dashboard's classifier. A numeric zero counts as unanswered and keeps the
// search going, the same way blanks do.
func hasNonIntegerSample(rows []RawRow, header string) bool {
	for _, row := range rows {
		c := row[header]
		if c.IsEmpty() {
			continue
		}
		if f, ok := c.Float(); ok && f == 0 {
			continue
		}
		_, ok := c.Int()
		return !ok
	}
	return false
}
