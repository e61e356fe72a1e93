package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"anket-backend/internal/config"
	"anket-backend/internal/ingest"
	"anket-backend/internal/models"
	"anket-backend/internal/service"
	"anket-backend/internal/state"
	"anket-backend/internal/survey"
)

const defaultDBLoadLimit = 10000

type Handler struct {
	State     *state.AppState
	Config    *config.Config
	Logger    *zap.Logger
	CurrentDB service.DataSource // active DB connection, nil until /api/db/connect
}

func NewHandler(st *state.AppState, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		State:  st,
		Config: cfg,
		Logger: logger,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Post("/api/upload", h.Upload)
	r.Post("/api/sample-data", h.LoadSampleData)
	r.Get("/api/status", h.GetStatus)
	r.Get("/api/columns", h.GetColumns)

	r.Post("/api/stats", h.GetStats)
	r.Post("/api/report", h.GetReport)
	r.Post("/api/feedback", h.GetFeedback)
	r.Post("/api/multiselect", h.GetMultiSelect)
	r.Post("/api/sentiment", h.ScoreSentiment)
	r.Post("/api/cell", h.EditCell)

	// DB routes
	r.Post("/api/db/connect", h.ConnectDB)
	r.Get("/api/db/tables", h.ListTables)
	r.Post("/api/db/load", h.LoadTable)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// ============================================================================
// Dataset loading
// ============================================================================

// Upload reads a CSV or Excel file from a multipart form and replaces the
// active dataset.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Config.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.Config.MaxUploadBytes); err != nil {
		h.writeError(w, http.StatusBadRequest, "dosya çok büyük veya form geçersiz")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "dosya alınamadı")
		return
	}
	defer file.Close()

	var table *ingest.Table
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx", ".xls":
		table, err = ingest.ReadXLSX(file)
	default:
		table, err = ingest.ReadCSV(file)
	}
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.saveUploadCopy(file, header.Filename)

	ds := survey.NewDataset(header.Filename, table.Headers, table.Rows)
	h.State.SetDataset(ds)
	h.Logger.Info("dataset loaded",
		zap.String("source", header.Filename),
		zap.Int("rows", len(ds.Rows)),
		zap.Int("questions", len(ds.Columns.Questions)))

	h.writeJSON(w, http.StatusOK, uploadResponse(ds))
}

// LoadSampleData generates a deterministic demo dataset.
func (h *Handler) LoadSampleData(w http.ResponseWriter, r *http.Request) {
	table := ingest.SampleData(h.Config.SampleSeed)
	ds := survey.NewDataset("ornek-veri", table.Headers, table.Rows)
	h.State.SetDataset(ds)
	h.Logger.Info("sample dataset loaded", zap.Int("rows", len(ds.Rows)))

	h.writeJSON(w, http.StatusOK, uploadResponse(ds))
}

func uploadResponse(ds *survey.Dataset) models.UploadResponse {
	return models.UploadResponse{
		Message:     "Veri başarıyla yüklendi",
		DatasetID:   ds.ID,
		Rows:        len(ds.Rows),
		Columns:     len(ds.Headers),
		ColumnNames: ds.Headers,
		Questions:   len(ds.Columns.Questions),
	}
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ds := h.State.Dataset()
	if ds == nil {
		h.writeJSON(w, http.StatusOK, models.StatusResponse{Loaded: false})
		return
	}
	h.writeJSON(w, http.StatusOK, models.StatusResponse{
		Loaded:    true,
		DatasetID: ds.ID,
		Source:    ds.SourceName,
		Rows:      len(ds.Rows),
		Columns:   len(ds.Headers),
		Questions: len(ds.Columns.Questions),
	})
}

func (h *Handler) GetColumns(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.requireDataset(w)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, models.ColumnsResponse{
		Questions:   ds.Columns.Questions,
		Grouping:    ds.Columns.Grouping,
		MultiSelect: ds.Columns.MultiSelect,
		Feedback:    ds.Columns.Feedback,
	})
}

// ============================================================================
// Analytics
// ============================================================================

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.requireDataset(w)
	if !ok {
		return
	}
	var req models.StatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}

	rows := survey.ApplyFilters(ds.Rows, req.Filters)
	questions := ds.Columns.Questions
	perQuestion := survey.PerQuestionStats(rows, questions)

	resp := models.StatsResponse{
		Rows:          len(rows),
		OverallMean:   survey.OverallMean(rows, len(questions)),
		OverallStd:    survey.AverageStd(perQuestion),
		CronbachAlpha: survey.CronbachAlpha(rows, len(questions)),
		Questions:     perQuestion,
		Correlations:  survey.TopCorrelatedPairs(rows, questions),
		Distribution:  survey.ScoreDistribution(rows, len(questions)),
	}
	if req.GroupBy != "" {
		resp.Groups = survey.GroupedAverages(rows, questions, req.GroupBy)
		resp.GroupCounts = survey.GroupDistribution(rows, req.GroupBy)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.requireDataset(w)
	if !ok {
		return
	}
	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}

	rows := survey.ApplyFilters(ds.Rows, req.Filters)
	report := survey.Synthesize(rows, ds.Columns.Questions)
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.requireDataset(w)
	if !ok {
		return
	}
	var req models.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}
	if req.Column == "" && len(ds.Columns.Feedback) > 0 {
		req.Column = ds.Columns.Feedback[0].SourceHeader
	}
	if req.Column == "" {
		h.writeError(w, http.StatusBadRequest, "geri bildirim sütunu bulunamadı")
		return
	}

	rows := survey.ApplyFilters(ds.Rows, req.Filters)
	result := survey.AnalyzeFeedback(rows, req.Column, req.Search)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) GetMultiSelect(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.requireDataset(w)
	if !ok {
		return
	}
	var req models.MultiSelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}
	if req.Column == "" {
		h.writeError(w, http.StatusBadRequest, "sütun belirtilmedi")
		return
	}

	rows := survey.ApplyFilters(ds.Rows, req.Filters)
	counts := survey.MultiSelectCounts(rows, req.Column)
	h.writeJSON(w, http.StatusOK, counts)
}

func (h *Handler) ScoreSentiment(w http.ResponseWriter, r *http.Request) {
	var req models.SentimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}

	s := survey.ScoreSentiment(req.Text)
	h.writeJSON(w, http.StatusOK, models.SentimentResponse{
		Score:    s.Score,
		Polarity: string(s.Polarity),
		Matched:  s.Matched,
	})
}

// EditCell replaces one raw cell and publishes a rebuilt dataset. The edit
// goes through Dataset.WithCell, so the currently published dataset is never
// written to while other requests read it.
func (h *Handler) EditCell(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.requireDataset(w)
	if !ok {
		return
	}
	var req models.CellEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}
	if req.Row < 0 || req.Row >= len(ds.Raw) {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("satır %d bulunamadı", req.Row))
		return
	}
	found := false
	for _, hdr := range ds.Headers {
		if hdr == req.Column {
			found = true
			break
		}
	}
	if !found {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("sütun %q bulunamadı", req.Column))
		return
	}

	ds = ds.WithCell(req.Row, req.Column, survey.ParseCell(req.Value))
	h.State.SetDataset(ds)

	h.writeJSON(w, http.StatusOK, uploadResponse(ds))
}

// ============================================================================
// Database ingestion
// ============================================================================

func (h *Handler) ConnectDB(w http.ResponseWriter, r *http.Request) {
	var req models.DBConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}
	if req.SSLMode == "" {
		req.SSLMode = "disable"
	}

	ds := &service.PostgresDataSource{}
	err := ds.Connect(service.DataSourceConfig{
		Type:     "postgres",
		Host:     req.Host,
		Port:     req.Port,
		User:     req.User,
		Password: req.Password,
		DBName:   req.DBName,
		SSLMode:  req.SSLMode,
	})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, fmt.Sprintf("bağlantı kurulamadı: %v", err))
		return
	}

	if h.CurrentDB != nil {
		h.CurrentDB.Close()
	}
	h.CurrentDB = ds
	h.Logger.Info("database connected", zap.String("host", req.Host), zap.String("dbname", req.DBName))

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "connected"})
}

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	if h.CurrentDB == nil {
		h.writeError(w, http.StatusBadRequest, "veritabanı bağlantısı yok")
		return
	}
	tables, err := h.CurrentDB.ListTables()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, fmt.Sprintf("tablolar listelenemedi: %v", err))
		return
	}
	h.writeJSON(w, http.StatusOK, models.DBTablesResponse{Tables: tables})
}

// LoadTable imports a table as the active dataset. The table name is checked
// against ListTables before being interpolated into the query.
func (h *Handler) LoadTable(w http.ResponseWriter, r *http.Request) {
	if h.CurrentDB == nil {
		h.writeError(w, http.StatusBadRequest, "veritabanı bağlantısı yok")
		return
	}
	var req models.DBLoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "geçersiz istek gövdesi")
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultDBLoadLimit
	}

	tables, err := h.CurrentDB.ListTables()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, fmt.Sprintf("tablolar listelenemedi: %v", err))
		return
	}
	known := false
	for _, t := range tables {
		if t == req.Table {
			known = true
			break
		}
	}
	if !known {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("tablo %q bulunamadı", req.Table))
		return
	}

	table, err := h.CurrentDB.FetchTable(req.Table, req.Limit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, fmt.Sprintf("tablo okunamadı: %v", err))
		return
	}

	ds := survey.NewDataset(req.Table, table.Headers, table.Rows)
	h.State.SetDataset(ds)
	h.Logger.Info("dataset loaded from database",
		zap.String("table", req.Table),
		zap.Int("rows", len(ds.Rows)))

	h.writeJSON(w, http.StatusOK, uploadResponse(ds))
}

// ============================================================================
// Helpers
// ============================================================================

// saveUploadCopy keeps a copy of the uploaded file under the upload
// directory. Failures are logged and ignored: the dataset is already parsed.
func (h *Handler) saveUploadCopy(file multipart.File, name string) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return
	}
	if err := os.MkdirAll(h.Config.UploadDir, 0o755); err != nil {
		h.Logger.Warn("create upload dir", zap.Error(err))
		return
	}
	dst, err := os.Create(filepath.Join(h.Config.UploadDir, filepath.Base(name)))
	if err != nil {
		h.Logger.Warn("save upload", zap.Error(err))
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		h.Logger.Warn("save upload", zap.Error(err))
	}
}

func (h *Handler) requireDataset(w http.ResponseWriter) (*survey.Dataset, bool) {
	ds := h.State.Dataset()
	if ds == nil {
		h.writeError(w, http.StatusBadRequest, "henüz veri yüklenmedi")
		return nil, false
	}
	return ds, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Logger.Error("encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, models.ErrorResponse{Error: msg})
}
