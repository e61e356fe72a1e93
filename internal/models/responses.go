// Package models defines the JSON request and response payloads of the HTTP
// API.
package models

import "anket-backend/internal/survey"

// UploadResponse is returned after a spreadsheet or database table is loaded.
type UploadResponse struct {
	Message     string   `json:"message"`
	DatasetID   string   `json:"dataset_id"`
	Rows        int      `json:"rows"`
	Columns     int      `json:"columns"`
	ColumnNames []string `json:"column_names"`
	Questions   int      `json:"questions"`
}

// StatusResponse is returned by /api/status.
type StatusResponse struct {
	Loaded    bool   `json:"loaded"`
	DatasetID string `json:"dataset_id,omitempty"`
	Source    string `json:"source,omitempty"`
	Rows      int    `json:"rows"`
	Columns   int    `json:"columns"`
	Questions int    `json:"questions"`
}

// ColumnsResponse describes the classified columns of the loaded dataset.
type ColumnsResponse struct {
	Questions   []survey.QuestionColumn       `json:"questions"`
	Grouping    []survey.GroupingCandidate    `json:"grouping"`
	MultiSelect []survey.MultiSelectCandidate `json:"multi_select"`
	Feedback    []survey.FeedbackColumn       `json:"feedback"`
}

// StatsRequest selects the rows and optional grouping for /api/stats.
type StatsRequest struct {
	Filters []survey.Filter `json:"filters"`
	GroupBy string          `json:"group_by,omitempty"`
}

// StatsResponse carries the full statistics payload for the dashboard.
type StatsResponse struct {
	Rows          int                      `json:"rows"`
	OverallMean   float64                  `json:"overall_mean"`
	OverallStd    float64                  `json:"overall_std"`
	CronbachAlpha float64                  `json:"cronbach_alpha"`
	Questions     []survey.QuestionStats   `json:"questions"`
	Correlations  []survey.CorrelationPair `json:"correlations"`
	Groups        []survey.GroupAverages   `json:"groups,omitempty"`
	GroupCounts   []survey.GroupCount      `json:"group_counts,omitempty"`
	Distribution  [5]int                   `json:"distribution"`
}

// ReportRequest selects the rows for /api/report.
type ReportRequest struct {
	Filters []survey.Filter `json:"filters"`
}

// FeedbackRequest selects a feedback column for /api/feedback.
type FeedbackRequest struct {
	Column  string          `json:"column"`
	Search  string          `json:"search,omitempty"`
	Filters []survey.Filter `json:"filters"`
}

// MultiSelectRequest selects a multi-select column for /api/multiselect.
type MultiSelectRequest struct {
	Column  string          `json:"column"`
	Filters []survey.Filter `json:"filters"`
}

// SentimentRequest scores a single free-text answer.
type SentimentRequest struct {
	Text string `json:"text"`
}

// SentimentResponse is the result of scoring one text.
type SentimentResponse struct {
	Score    float64  `json:"score"`
	Polarity string   `json:"polarity"`
	Matched  []string `json:"matched"`
}

// CellEditRequest overwrites one cell of the loaded dataset.
type CellEditRequest struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value"`
}

// DBConnectRequest carries postgres connection details for /api/db/connect.
type DBConnectRequest struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

// DBTablesResponse lists importable tables.
type DBTablesResponse struct {
	Tables []string `json:"tables"`
}

// DBLoadRequest imports one table as the active dataset.
type DBLoadRequest struct {
	Table string `json:"table"`
	Limit int    `json:"limit,omitempty"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
