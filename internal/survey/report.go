package survey

import (
	"fmt"
	"sort"
)

// Finding is one highlighted observation of the narrative report.
type Finding struct {
	Kind  string `json:"kind"` // "top", "bottom", "reliability", "consistency"
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Action is one recommended follow-up, ordered by priority.
type Action struct {
	Priority string `json:"priority"` // "high", "medium", "low"
	Text     string `json:"text"`
}

// Report is the full narrative model derived from a filtered view. It is
// plain data; rendering and export are the caller's concern.
type Report struct {
	ParticipantCount int             `json:"participant_count"`
	QuestionCount    int             `json:"question_count"`
	TotalResponses   int             `json:"total_responses"`
	OverallMean      float64         `json:"overall_mean"`
	OverallStd       float64         `json:"overall_std"`
	Alpha            float64         `json:"alpha"`
	OverallLevel     string          `json:"overall_level"`
	SatisfactionBand string          `json:"satisfaction_band"`
	ReliabilityBand  string          `json:"reliability_band"`
	ConsistencyBand  string          `json:"consistency_band"`
	Summary          string          `json:"summary"`
	QuestionStats    []QuestionStats `json:"question_stats"`
	TopQuestions     []QuestionStats `json:"top_questions"`
	BottomQuestions  []QuestionStats `json:"bottom_questions"`
	Findings         []Finding       `json:"findings"`
	Actions          []Action        `json:"actions"`
	Strengths        []QuestionStats `json:"strengths"`
	Weaknesses       []QuestionStats `json:"weaknesses"`
	Distribution     [5]int          `json:"distribution"`
}

func satisfactionBand(mean float64) string {
	switch {
	case mean >= 4.2:
		return "yüksek"
	case mean >= 3.5:
		return "orta-yüksek"
	case mean >= 2.8:
		return "orta"
	default:
		return "düşük"
	}
}

func reliabilityBand(alpha float64) string {
	switch {
	case alpha >= 0.9:
		return "mükemmel"
	case alpha >= 0.8:
		return "iyi"
	case alpha >= 0.7:
		return "kabul edilebilir"
	default:
		return "düşük"
	}
}

func consistencyBand(std float64) string {
	switch {
	case std < 0.7:
		return "çok yüksek tutarlılık"
	case std < 1.0:
		return "yüksek tutarlılık"
	case std < 1.3:
		return "orta tutarlılık"
	default:
		return "düşük tutarlılık"
	}
}

func overallLevel(mean float64) string {
	switch {
	case mean >= 4.5:
		return "Mükemmel"
	case mean >= 4.0:
		return "Çok İyi"
	case mean >= 3.5:
		return "İyi"
	case mean >= 3.0:
		return "Orta"
	default:
		return "Geliştirilmeli"
	}
}

// Synthesize derives the narrative report from a filtered view. Purely a
// function of the statistics engine's outputs; calling it twice on the same
// rows yields the same report.
func Synthesize(rows []Row, questions []QuestionColumn) Report {
	stats := PerQuestionStats(rows, questions)
	overallMean := OverallMean(rows, len(questions))
	overallStd := AverageStd(stats)
	alpha := CronbachAlpha(rows, len(questions))

	sorted := make([]QuestionStats, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Mean > sorted[j].Mean })

	top := sorted[:min(3, len(sorted))]
	bottom := make([]QuestionStats, 0, 3)
	for i := len(sorted) - 1; i >= 0 && len(bottom) < 3; i-- {
		bottom = append(bottom, sorted[i])
	}

	rep := Report{
		ParticipantCount: len(rows),
		QuestionCount:    len(questions),
		TotalResponses:   len(rows) * len(questions),
		OverallMean:      overallMean,
		OverallStd:       overallStd,
		Alpha:            alpha,
		OverallLevel:     overallLevel(overallMean),
		SatisfactionBand: satisfactionBand(overallMean),
		ReliabilityBand:  reliabilityBand(alpha),
		ConsistencyBand:  consistencyBand(overallStd),
		QuestionStats:    stats,
		TopQuestions:     top,
		BottomQuestions:  bottom,
		Distribution:     ScoreDistribution(rows, len(questions)),
	}

	if len(rows) == 0 || len(questions) == 0 {
		return rep
	}

	rep.Summary = fmt.Sprintf(
		"%d katılımcıdan toplanan verilere göre, %d soru üzerinden yapılan değerlendirmede "+
			"genel memnuniyet skoru %.2f/5.0 olarak hesaplanmıştır. Bu, %s bir memnuniyet düzeyine işaret etmektedir. "+
			"Verilerin iç tutarlılık katsayısı (Cronbach's Alpha) %.2f olup, bu değer ölçüm aracının %s güvenilirliğe "+
			"sahip olduğunu göstermektedir. Standart sapma değeri %.2f ile katılımcılar arasında %s gözlemlenmiştir.",
		rep.ParticipantCount, rep.QuestionCount, overallMean, rep.SatisfactionBand,
		alpha, rep.ReliabilityBand, overallStd, rep.ConsistencyBand,
	)

	rep.Findings = buildFindings(rep)
	rep.Actions = buildActions(rep)

	for _, q := range top {
		if q.Mean >= 3.5 {
			rep.Strengths = append(rep.Strengths, q)
		}
	}
	for _, q := range bottom {
		if q.Mean < 4.0 {
			rep.Weaknesses = append(rep.Weaknesses, q)
		}
	}

	return rep
}

func buildFindings(rep Report) []Finding {
	top := rep.TopQuestions[0]
	bottom := rep.BottomQuestions[0]

	findings := []Finding{
		{
			Kind:  "top",
			Title: "En Başarılı Konu",
			Text:  fmt.Sprintf("\"%s\" %.2f puan ile en yüksek memnuniyeti aldı.", top.Text, top.Mean),
		},
		{
			Kind:  "bottom",
			Title: "Dikkat Gerektiren Alan",
			Text:  fmt.Sprintf("\"%s\" %.2f puan ile en düşük skorlu konu olarak öne çıkıyor.", bottom.Text, bottom.Mean),
		},
	}

	if rep.Alpha >= 0.8 {
		findings = append(findings, Finding{
			Kind:  "reliability",
			Title: "Yüksek Güvenilirlik",
			Text:  fmt.Sprintf("%.2f Cronbach's Alpha değeri, anket sonuçlarının güvenilir olduğunu gösteriyor.", rep.Alpha),
		})
	} else {
		findings = append(findings, Finding{
			Kind:  "reliability",
			Title: "Güvenilirlik Uyarısı",
			Text:  fmt.Sprintf("%.2f Cronbach's Alpha değeri, ölçüm aracının gözden geçirilmesi gerekebileceğini gösteriyor.", rep.Alpha),
		})
	}

	if rep.OverallStd > 1.2 {
		findings = append(findings, Finding{
			Kind:  "consistency",
			Title: "Değişken Görüşler",
			Text:  fmt.Sprintf("%.2f standart sapma ile katılımcılar arasında görüş farklılıkları mevcut.", rep.OverallStd),
		})
	}

	return findings
}

func buildActions(rep Report) []Action {
	var actions []Action

	limit := min(2, len(rep.BottomQuestions))
	for _, q := range rep.BottomQuestions[:limit] {
		if q.Mean < 3.5 {
			actions = append(actions, Action{
				Priority: "high",
				Text:     fmt.Sprintf("\"%s\" konusunda iyileştirme planı oluşturun (Mevcut: %.2f/5.0)", q.Text, q.Mean),
			})
		} else if q.Mean < 4.0 {
			actions = append(actions, Action{
				Priority: "medium",
				Text:     fmt.Sprintf("\"%s\" için gelişim fırsatlarını değerlendirin (%.2f/5.0)", q.Text, q.Mean),
			})
		}
	}

	if rep.Alpha < 0.7 {
		actions = append(actions, Action{
			Priority: "high",
			Text:     "Anket sorularını gözden geçirin ve tutarlılığı artırmak için revize edin",
		})
	}

	if rep.OverallStd > 1.2 {
		actions = append(actions, Action{
			Priority: "medium",
			Text:     "Farklı grupların ihtiyaçlarını analiz edin ve özelleştirilmiş çözümler geliştirin",
		})
	}

	if rep.TopQuestions[0].Mean >= 4.5 {
		actions = append(actions, Action{
			Priority: "low",
			Text:     fmt.Sprintf("\"%s\" konusundaki başarıyı sürdürmek için en iyi uygulamaları belgeleyin", rep.TopQuestions[0].Text),
		})
	}

	if rep.OverallMean >= 4.0 && rep.BottomQuestions[0].Mean < 3.5 {
		actions = append(actions, Action{
			Priority: "medium",
			Text:     "Düşük puanlı alanlara odaklanarak genel memnuniyeti daha da artırın",
		})
	}

	return actions
}
