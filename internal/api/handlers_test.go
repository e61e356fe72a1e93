package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"anket-backend/internal/config"
	"anket-backend/internal/models"
	"anket-backend/internal/state"
	"anket-backend/internal/survey"
)

func testServer(t *testing.T) (*Handler, http.Handler) {
	t.Helper()
	cfg := &config.Config{
		Port:           "0",
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
		SampleSeed:     42,
	}
	h := NewHandler(state.New(), cfg, zap.NewNop())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return h, r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func TestHealthCheck(t *testing.T) {
	_, r := testServer(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestStatusBeforeLoad(t *testing.T) {
	_, r := testServer(t)
	var status models.StatusResponse
	rec := doJSON(t, r, http.MethodGet, "/api/status", nil, &status)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, status.Loaded)
}

func TestEndpointsRequireDataset(t *testing.T) {
	_, r := testServer(t)
	for _, path := range []string{"/api/stats", "/api/report", "/api/feedback", "/api/multiselect", "/api/cell"} {
		rec := doJSON(t, r, http.MethodPost, path, map[string]interface{}{}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
	rec := doJSON(t, r, http.MethodGet, "/api/columns", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSampleDataFlow(t *testing.T) {
	_, r := testServer(t)

	var up models.UploadResponse
	rec := doJSON(t, r, http.MethodPost, "/api/sample-data", nil, &up)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 120, up.Rows)
	assert.Equal(t, 10, up.Questions)
	assert.NotEmpty(t, up.DatasetID)

	var status models.StatusResponse
	doJSON(t, r, http.MethodGet, "/api/status", nil, &status)
	assert.True(t, status.Loaded)
	assert.Equal(t, up.DatasetID, status.DatasetID)

	var cols models.ColumnsResponse
	rec = doJSON(t, r, http.MethodGet, "/api/columns", nil, &cols)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, cols.Questions, 10)
	assert.NotEmpty(t, cols.Grouping)
}

func TestStats(t *testing.T) {
	_, r := testServer(t)
	doJSON(t, r, http.MethodPost, "/api/sample-data", nil, nil)

	var stats models.StatsResponse
	rec := doJSON(t, r, http.MethodPost, "/api/stats", models.StatsRequest{GroupBy: "Departman"}, &stats)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 120, stats.Rows)
	assert.Greater(t, stats.OverallMean, 1.0)
	assert.Less(t, stats.OverallMean, 5.0)
	assert.Len(t, stats.Questions, 10)
	assert.NotEmpty(t, stats.Groups)
	assert.NotEmpty(t, stats.GroupCounts)

	total := 0
	for _, n := range stats.Distribution {
		total += n
	}
	assert.Equal(t, 120*10, total)
}

func TestStatsFiltered(t *testing.T) {
	_, r := testServer(t)
	doJSON(t, r, http.MethodPost, "/api/sample-data", nil, nil)

	var all, filtered models.StatsResponse
	doJSON(t, r, http.MethodPost, "/api/stats", models.StatsRequest{}, &all)
	doJSON(t, r, http.MethodPost, "/api/stats", models.StatsRequest{
		Filters: []survey.Filter{{Column: "Lokasyon", Value: "Ankara"}},
	}, &filtered)

	assert.Less(t, filtered.Rows, all.Rows)
	assert.Greater(t, filtered.Rows, 0)
}

func TestReport(t *testing.T) {
	_, r := testServer(t)
	doJSON(t, r, http.MethodPost, "/api/sample-data", nil, nil)

	var rep survey.Report
	rec := doJSON(t, r, http.MethodPost, "/api/report", models.ReportRequest{}, &rep)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 120, rep.ParticipantCount)
	assert.NotEmpty(t, rep.Summary)
	assert.NotEmpty(t, rep.Findings)
}

func TestFeedbackDefaultsToFirstColumn(t *testing.T) {
	_, r := testServer(t)
	doJSON(t, r, http.MethodPost, "/api/sample-data", nil, nil)

	var fb survey.FeedbackAnalysis
	rec := doJSON(t, r, http.MethodPost, "/api/feedback", models.FeedbackRequest{}, &fb)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, fb.Comments)
}

func TestMultiSelect(t *testing.T) {
	_, r := testServer(t)
	doJSON(t, r, http.MethodPost, "/api/sample-data", nil, nil)

	var counts []survey.OptionCount
	rec := doJSON(t, r, http.MethodPost, "/api/multiselect", models.MultiSelectRequest{
		Column: "Kullandığınız Araçlar (Çoklu Seçim)",
	}, &counts)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, counts)

	rec = doJSON(t, r, http.MethodPost, "/api/multiselect", models.MultiSelectRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSentimentEndpoint(t *testing.T) {
	_, r := testServer(t)

	var resp models.SentimentResponse
	rec := doJSON(t, r, http.MethodPost, "/api/sentiment", models.SentimentRequest{Text: "eğitim çok güzel geçti"}, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 1.5, resp.Score, 1e-9)
	assert.Equal(t, "positive", resp.Polarity)
}

func TestUploadCSV(t *testing.T) {
	_, r := testServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "anket.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Soru 1: İçerik,Birim\n5,Tıp\n3,Hukuk\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var up models.UploadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&up))
	assert.Equal(t, 2, up.Rows)
	assert.Equal(t, 1, up.Questions)
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	_, r := testServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "bos.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Soru 1\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "dosya boş"))
}

func TestEditCell(t *testing.T) {
	h, r := testServer(t)
	doJSON(t, r, http.MethodPost, "/api/sample-data", nil, nil)

	before := h.State.Dataset()
	col := before.Headers[4] // first question column
	origCell := before.Raw[0][col]
	origScore := before.Rows[0].Scores[0]
	value := "1"
	if origScore == 1 {
		value = "5"
	}

	rec := doJSON(t, r, http.MethodPost, "/api/cell", models.CellEditRequest{
		Row: 0, Column: col, Value: value,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	after := h.State.Dataset()
	assert.NotEqual(t, before.ID, after.ID)
	assert.NotEqual(t, origScore, after.Rows[0].Scores[0])

	// The previously published dataset must be untouched: readers holding it
	// mid-request never see the edit.
	assert.Equal(t, origCell, before.Raw[0][col])
	assert.Equal(t, origScore, before.Rows[0].Scores[0])

	t.Run("unknown column", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/cell", models.CellEditRequest{
			Row: 0, Column: "Yok Böyle Bir Sütun", Value: "1",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("row out of range", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/api/cell", models.CellEditRequest{
			Row: 9999, Column: col, Value: "1",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEditCellConcurrentWithStats(t *testing.T) {
	_, r := testServer(t)
	doJSON(t, r, http.MethodPost, "/api/sample-data", nil, nil)

	col := "Departman"
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func(row int) {
			defer wg.Done()
			for i := 0; i < 8; i++ {
				body, _ := json.Marshal(models.CellEditRequest{Row: row, Column: col, Value: "Finans"})
				req := httptest.NewRequest(http.MethodPost, "/api/cell", bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				rec := httptest.NewRecorder()
				r.ServeHTTP(rec, req)
				if rec.Code != http.StatusOK {
					errs <- rec.Body.String()
				}
			}
		}(g)
		go func() {
			defer wg.Done()
			for i := 0; i < 8; i++ {
				req := httptest.NewRequest(http.MethodPost, "/api/stats", strings.NewReader(`{"filters":[]}`))
				req.Header.Set("Content-Type", "application/json")
				rec := httptest.NewRecorder()
				r.ServeHTTP(rec, req)
				if rec.Code != http.StatusOK {
					errs <- rec.Body.String()
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Errorf("request failed: %s", e)
	}
}

func TestDBRoutesWithoutConnection(t *testing.T) {
	_, r := testServer(t)

	rec := doJSON(t, r, http.MethodGet, "/api/db/tables", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/db/load", models.DBLoadRequest{Table: "anket"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
