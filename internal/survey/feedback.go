package survey

import (
	"regexp"
	"sort"
	"strings"
)

// Comment is one analyzed feedback cell.
type Comment struct {
	Text     string   `json:"text"`
	Score    float64  `json:"score"`
	Polarity Polarity `json:"polarity"`
}

// WordCount is one entry of the word-frequency list behind the word cloud.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// FeedbackAnalysis aggregates one feedback column over a filtered view.
type FeedbackAnalysis struct {
	Comments      []Comment   `json:"comments"`
	PositiveCount int         `json:"positive_count"`
	NegativeCount int         `json:"negative_count"`
	Words         []WordCount `json:"words"`
}

// Turkish stopwords excluded from the word-frequency list.
var feedbackStopwords = toSet([]string{
	"ve", "ile", "bir", "bu", "da", "de", "için", "çok", "daha", "en", "ise", "ama",
	"fakat", "ancak", "gibi", "kadar", "olan", "olarak", "var", "yok", "veya", "mu",
	"mı", "ben", "sen", "o", "biz", "siz", "onlar", "her", "şey", "ki", "hayır",
	"teşekkürler", "teşekkür", "yoktur", "memnunum", "gayet", "iyi", "güzel", "ilgili",
	"hakkında", "konusunda", "tarafından", "dair", "üzere", "dolayı", "rağmen",
})

// Placeholder answers that carry no opinion and are dropped outright.
var emptyAnswers = toSet([]string{"yok", "hayır", "yoktur", "boş"})

var (
	punctOnlyRe  = regexp.MustCompile(`[.,\-_!?]`)
	cloudPunctRe = regexp.MustCompile("[.,/#!$%^&*;:{}=\\-_`~()]")
)

const maxCloudWords = 40

// rowLikertMean averages the normalized scores of one respondent, used as a
// fallback signal when the comment text itself scores neutral.
func rowLikertMean(r Row) (float64, bool) {
	if len(r.Scores) == 0 {
		return 0, false
	}
	sum := 0
	for _, s := range r.Scores {
		sum += s
	}
	return float64(sum) / float64(len(r.Scores)), true
}

// AnalyzeFeedback scores every usable comment in the given feedback column,
// counts polarities and builds the word-frequency list. When search is
// non-empty, only comments containing it (case-insensitive) are collected,
// though polarity counters still cover all comments.
func AnalyzeFeedback(rows []Row, column string, search string) FeedbackAnalysis {
	out := FeedbackAnalysis{Comments: []Comment{}, Words: []WordCount{}}
	search = strings.ToLower(strings.TrimSpace(search))

	wordCounts := make(map[string]int)
	wordOrder := []string{}

	for _, r := range rows {
		text := r.Raw[column].String()
		if strings.TrimSpace(punctOnlyRe.ReplaceAllString(text, "")) == "" {
			continue
		}
		if len([]rune(text)) < 3 {
			continue
		}
		lower := strings.ToLower(text)
		if emptyAnswers[lower] {
			continue
		}

		sent := ScoreSentiment(text)
		score := sent.Score

		// Hybrid fallback: a textually neutral comment inherits polarity
		// from the respondent's own Likert average.
		if score == 0 {
			if avg, ok := rowLikertMean(r); ok {
				if avg >= 4.0 {
					score = 1
				} else if avg <= 2.5 {
					score = -1
				}
			}
		}

		if score > 0 {
			out.PositiveCount++
		} else if score < 0 {
			out.NegativeCount++
		}

		if search != "" && !strings.Contains(lower, search) {
			continue
		}

		polarity := Neutral
		if score > 0 {
			polarity = Positive
		} else if score < 0 {
			polarity = Negative
		}
		out.Comments = append(out.Comments, Comment{Text: text, Score: score, Polarity: polarity})

		for _, tok := range strings.Fields(cloudPunctRe.ReplaceAllString(lower, "")) {
			if len([]rune(tok)) < 3 || feedbackStopwords[tok] {
				continue
			}
			if _, seen := wordCounts[tok]; !seen {
				wordOrder = append(wordOrder, tok)
			}
			wordCounts[tok]++
		}
	}

	words := make([]WordCount, 0, len(wordOrder))
	for _, w := range wordOrder {
		words = append(words, WordCount{Word: w, Count: wordCounts[w]})
	}
	sort.SliceStable(words, func(i, j int) bool { return words[i].Count > words[j].Count })
	if len(words) > maxCloudWords {
		words = words[:maxCloudWords]
	}
	out.Words = words

	return out
}

// OptionCount is one multi-select option with its selection count.
type OptionCount struct {
	Option string `json:"option"`
	Count  int    `json:"count"`
}

var multiSelectSplitRe = regexp.MustCompile(`[,;]\s*`)

// MultiSelectCounts splits every cell of a checkbox column on ',' or ';' and
// counts the chosen options over the filtered view, sorted by count
// descending.
func MultiSelectCounts(rows []Row, column string) []OptionCount {
	counts := make(map[string]int)
	order := []string{}
	for _, r := range rows {
		val := r.Raw[column].String()
		if val == "" {
			continue
		}
		for _, opt := range multiSelectSplitRe.Split(val, -1) {
			opt = strings.TrimSpace(opt)
			if opt == "" {
				continue
			}
			if _, seen := counts[opt]; !seen {
				order = append(order, opt)
			}
			counts[opt]++
		}
	}
	out := make([]OptionCount, 0, len(order))
	for _, o := range order {
		out = append(out, OptionCount{Option: o, Count: counts[o]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
