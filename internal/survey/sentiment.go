package survey

import (
	"strings"
)

// Polarity is the overall orientation of a scored text.
type Polarity string

const (
	Positive Polarity = "positive"
	Negative Polarity = "negative"
	Neutral  Polarity = "neutral"
)

// Sentiment is the result of scoring one comment.
type Sentiment struct {
	Score    float64  `json:"score"`
	Polarity Polarity `json:"polarity"`
	Matched  []string `json:"matched,omitempty"`
}

// Turkish sentiment lexicons. Static word lists, not logic; kept verbatim
// from the dashboard's dictionary.
var (
	positiveWords = toSet([]string{
		"teşekkür", "iyi", "güzel", "harika", "memnun", "başarılı", "süper", "verimli",
		"faydalı", "beğendim", "etkili", "kaliteli", "mükemmel", "destekleyici", "açıklayıcı",
		"anlaşılır", "rahat", "kolay", "sevdim", "tebrik", "mutlu", "geliştirici", "yeterli",
		"profesyonel", "nazik", "ilgili", "hızlı", "düzenli", "sistemli", "keyifli",
		"artı", "avantaj", "muazzam", "şahane", "tavsiye", "önemli", "katkı", "pozitif",
		"güvenilir", "sağlam", "inanılmaz", "olağanüstü", "kusursuz", "net", "açık",
		"yardımcı", "kibar", "zengin", "ideal", "hoş", "tatmin", "başarı", "seviyeli",
		"efsane", "bayıldım", "on numara", "mis", "temiz", "ferah", "aydınlatıcı",
	})
	negativeWords = toSet([]string{
		"kötü", "berbat", "yetersiz", "sorun", "sıkıntı", "zor", "karışık", "anlaşılmaz",
		"yavaş", "ilgisiz", "gereksiz", "beğenmedim", "hata", "mağdur", "şeker", "eksik",
		"zayıf", "donuyor", "kasıyor", "kopuyor", "ses yok", "görüntü yok", "ulaşamadım",
		"açılmıyor", "giremiyorum", "memnun değilim", "saçma", "vakit kaybı", "düşük",
		"kalitesiz", "karmaşık", "sistemsiz", "kopuk", "verimsiz", "sıkıcı", "pahalı",
		"negatif", "düzensiz", "karmaşa", "kaos", "rezalet", "iğrenç", "yanlış", "hatalı",
		"çirkin", "kaba", "saygısız", "uzun", "yorucu", "bıktım", "usandım", "pişman",
		"soğuk", "bozuk", "çalışmıyor", "gitmiyor", "batar", "bitik", "amatör",
	})
	negatorWords = toSet([]string{
		"değil", "yok", "hayır", "maalesef", "hiç", "asla", "sakın", "olmaz", "olmamış",
	})
	intensifierWords = toSet([]string{
		"çok", "aşırı", "fazla", "baya", "bayağı", "oldukça", "ekstra", "en",
	})
)

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

var sentimentPunct = strings.NewReplacer(
	".", " ", ",", " ", "!", " ", "?", " ", ";", " ", ":", " ", "(", " ", ")", " ", `"`, " ",
)

// sentimentTokens lowercases, strips punctuation and drops tokens of length
// two or shorter.
func sentimentTokens(text string) []string {
	fields := strings.Fields(sentimentPunct.Replace(strings.ToLower(text)))
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// ScoreSentiment runs a single left-to-right pass over the text. An
// intensifier immediately before a lexicon word multiplies its weight by 1.5.
// Positive words look back up to two tokens for a negator and flip to -2x
// when negated; negative words look back one token and mitigate to a fixed
// +0.5 when negated.
func ScoreSentiment(text string) Sentiment {
	tokens := sentimentTokens(text)
	if len(tokens) == 0 {
		return Sentiment{Polarity: Neutral}
	}

	score := 0.0
	var matched []string

	for i, word := range tokens {
		multiplier := 1.0
		if i > 0 && intensifierWords[tokens[i-1]] {
			multiplier = 1.5
		}

		switch {
		case positiveWords[word]:
			negated := (i > 0 && negatorWords[tokens[i-1]]) || (i > 1 && negatorWords[tokens[i-2]])
			if negated {
				score -= 2 * multiplier
				matched = append(matched, "-"+word+" (negated)")
			} else {
				score += 1 * multiplier
				matched = append(matched, "+"+word)
			}
		case negativeWords[word]:
			if i > 0 && negatorWords[tokens[i-1]] {
				score += 0.5
				matched = append(matched, "~"+word+" (negated)")
			} else {
				score -= 1 * multiplier
				matched = append(matched, "-"+word)
			}
		}
	}

	polarity := Neutral
	if score > 0 {
		polarity = Positive
	} else if score < 0 {
		polarity = Negative
	}

	return Sentiment{Score: score, Polarity: polarity, Matched: matched}
}
