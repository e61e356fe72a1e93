package ingest

import (
	"fmt"
	"math/rand"
	"strings"

	"anket-backend/internal/survey"
)

// SampleRowCount is the size of the generated demo dataset.
const SampleRowCount = 120

var (
	sampleDepartments = []string{"İnsan Kaynakları", "Bilgi İşlem", "Satış & Pazarlama", "Üretim", "Finans"}
	sampleTitles      = []string{"Uzman", "Uzman Yardımcısı", "Yönetici", "Direktör", "Stajyer"}
	sampleLocations   = []string{"İstanbul", "Ankara", "İzmir", "Bursa"}
	sampleTools       = []string{"Excel", "PowerBI", "Tableau", "Jira", "Slack", "Teams", "Zoom"}

	sampleQuestions = []string{
		"Şirket hedefleri ve stratejileri hakkında yeterince bilgilendiriliyorum.",
		"Yöneticimden aldığım geri bildirimler gelişimime katkı sağlıyor.",
		"Çalışma ortamım verimli çalışmam için uygundur.",
		"Takım arkadaşlarım arasında iş birliği ve dayanışma yüksektir.",
		"Şirket içi iletişim kanalları etkin bir şekilde kullanılıyor.",
		"Yaptığım işin şirket başarısına katkısını görebiliyorum.",
		"Kariyer gelişimim için yeterli fırsatlar sunuluyor.",
		"Ücret ve yan haklar politikası adil ve tatmin edicidir.",
		"İş-özel hayat dengesini kurabiliyorum.",
		"Genel olarak bu şirkette çalışmaktan memnunum.",
	}

	sampleFeedback = []string{
		"Genel olarak çalışma ortamından memnunum ancak sosyal alanlar geliştirilebilir.",
		"Yöneticim çok ilgili, teşekkürler.",
		"Maaş artış oranları beklentimin altında kaldı.",
		"Eğitim fırsatları daha fazla olmalı diye düşünüyorum.",
		"Harika bir ekip ortamımız var, herkes çok yardımcı.",
		"Yemekhane kalitesi artırılmalı.",
		"Uzaktan çalışma imkanları çok değerli.",
		"İletişim kopuklukları yaşanabiliyor bazen.",
		"Şirketin vizyonuna inanıyorum.",
		"Toplantı süreleri çok uzun, daha verimli olabilir.",
	}
)

// SampleData generates the demo survey dataset: demographics, ten Likert
// questions skewed toward positive answers, one multi-select tools column and
// sparse free-text feedback. A fixed seed makes the demo reproducible.
func SampleData(seed int64) *Table {
	rng := rand.New(rand.NewSource(seed))

	headers := []string{"Departman", "Unvan", "Lokasyon", "Kıdem Yılı"}
	for i, q := range sampleQuestions {
		headers = append(headers, fmt.Sprintf("Soru %d: %s", i+1, q))
	}
	headers = append(headers, "Kullandığınız Araçlar (Çoklu Seçim)", "Genel Görüş ve Önerileriniz")

	table := &Table{Headers: headers}
	for i := 0; i < SampleRowCount; i++ {
		row := make(survey.RawRow, len(headers))
		row["Departman"] = survey.TextCell(sampleDepartments[rng.Intn(len(sampleDepartments))])
		row["Unvan"] = survey.TextCell(sampleTitles[rng.Intn(len(sampleTitles))])
		row["Lokasyon"] = survey.TextCell(sampleLocations[rng.Intn(len(sampleLocations))])
		row["Kıdem Yılı"] = survey.NumberCell(float64(rng.Intn(15) + 1))

		for qi := range sampleQuestions {
			row[headers[4+qi]] = survey.NumberCell(float64(likertSample(rng)))
		}

		row["Kullandığınız Araçlar (Çoklu Seçim)"] = survey.TextCell(toolSample(rng))

		if rng.Float64() < 0.4 {
			row["Genel Görüş ve Önerileriniz"] = survey.TextCell(sampleFeedback[rng.Intn(len(sampleFeedback))])
		} else {
			row["Genel Görüş ve Önerileriniz"] = survey.Cell{}
		}

		table.Rows = append(table.Rows, row)
	}
	return table
}

// likertSample skews answers toward 3-5 for a realistic demo.
func likertSample(rng *rand.Rand) int {
	r := rng.Float64()
	switch {
	case r < 0.1:
		return 1
	case r < 0.25:
		return 2
	case r < 0.5:
		return 3
	case r < 0.8:
		return 4
	default:
		return 5
	}
}

func toolSample(rng *rand.Rand) string {
	n := rng.Intn(4) + 1
	seen := map[string]bool{}
	var picked []string
	for i := 0; i < n; i++ {
		tool := sampleTools[rng.Intn(len(sampleTools))]
		if !seen[tool] {
			seen[tool] = true
			picked = append(picked, tool)
		}
	}
	return strings.Join(picked, "; ")
}
