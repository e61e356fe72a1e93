// Package service provides the database ingestion path: survey responses can
// be pulled from a postgres table instead of an uploaded spreadsheet.
package service

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"anket-backend/internal/ingest"
	"anket-backend/internal/survey"
)

// DataSourceConfig holds connection details.
type DataSourceConfig struct {
	Type     string `json:"type"` // only "postgres" is supported
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"` // "disable", "require"
}

// DataSource is an ingestion backend that can enumerate tables and read one
// as survey rows.
type DataSource interface {
	Connect(config DataSourceConfig) error
	Close() error
	ListTables() ([]string, error)
	FetchTable(tableName string, limit int) (*ingest.Table, error)
}

// PostgresDataSource implements DataSource for PostgreSQL.
type PostgresDataSource struct {
	db *sql.DB
}

func (p *PostgresDataSource) Connect(config DataSourceConfig) error {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	p.db = db
	return nil
}

func (p *PostgresDataSource) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// ListTables returns the public tables available for import.
func (p *PostgresDataSource) ListTables() ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name;
	`
	rows, err := p.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}
	return tables, rows.Err()
}

// FetchTable reads up to limit rows of a table as raw survey rows. Column
// names become headers; NULLs become empty cells. The table name must come
// from ListTables: it is validated against that whitelist by the handler.
func (p *PostgresDataSource) FetchTable(tableName string, limit int) (*ingest.Table, error) {
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", pq.QuoteIdentifier(tableName), limit)

	rows, err := p.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("fetch table %s: %w", tableName, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	table := &ingest.Table{Headers: columns}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(survey.RawRow, len(columns))
		for i, col := range columns {
			row[col] = cellFromDB(values[i])
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(table.Rows) == 0 {
		return nil, ingest.ErrEmptyFile
	}
	return table, nil
}

func cellFromDB(v interface{}) survey.Cell {
	switch val := v.(type) {
	case nil:
		return survey.Cell{}
	case []byte:
		return survey.ParseCell(string(val))
	case string:
		return survey.ParseCell(val)
	case int64:
		return survey.NumberCell(float64(val))
	case float64:
		return survey.NumberCell(val)
	case bool:
		return survey.TextCell(strconv.FormatBool(val))
	default:
		return survey.ParseCell(fmt.Sprint(val))
	}
}
