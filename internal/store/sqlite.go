package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/cardioref/ptp-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id         TEXT PRIMARY KEY,
	input      TEXT NOT NULL,
	ptp        TEXT NOT NULL,
	cac        TEXT,
	category   TEXT NOT NULL DEFAULT '',
	symptom    TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_assessments_category ON assessments(category);
CREATE INDEX IF NOT EXISTS idx_assessments_symptom ON assessments(symptom);
CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveAssessment(ctx context.Context, a model.Assessment) error {
	inputJSON, ptpJSON, cacJSON, err := marshalAssessment(a)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, input, ptp, cac, category, symptom, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, inputJSON, ptpJSON, cacJSON, string(a.Category()), a.Input.Symptom, a.CreatedAt.UTC(),
	)
	return eris.Wrapf(err, "sqlite: insert assessment %s", a.ID)
}

func (s *SQLiteStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, input, ptp, cac, created_at FROM assessments WHERE id = ?`,
		id,
	)
	a, err := scanAssessment(row)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("assessment not found: %s", id)
	}
	return a, err
}

func (s *SQLiteStore) ListAssessments(ctx context.Context, filter AssessmentFilter) ([]model.Assessment, error) {
	query := `SELECT id, input, ptp, cac, created_at FROM assessments WHERE 1=1`
	var args []any

	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	if filter.Symptom != "" {
		query += ` AND symptom = ?`
		args = append(args, string(filter.Symptom))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list assessments")
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list assessments iterate")
}

// helpers

func marshalAssessment(a model.Assessment) (input, ptp string, cac sql.NullString, err error) {
	inputJSON, err := json.Marshal(a.Input)
	if err != nil {
		return "", "", cac, eris.Wrap(err, "store: marshal input")
	}
	ptpJSON, err := json.Marshal(a.PTP)
	if err != nil {
		return "", "", cac, eris.Wrap(err, "store: marshal ptp result")
	}
	if a.CAC != nil {
		cacJSON, err := json.Marshal(a.CAC)
		if err != nil {
			return "", "", cac, eris.Wrap(err, "store: marshal cac result")
		}
		cac = sql.NullString{String: string(cacJSON), Valid: true}
	}
	return string(inputJSON), string(ptpJSON), cac, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanAssessment(row scannable) (*model.Assessment, error) {
	var a model.Assessment
	var inputJSON, ptpJSON string
	var cacJSON sql.NullString
	var createdAt time.Time

	err := row.Scan(&a.ID, &inputJSON, &ptpJSON, &cacJSON, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "store: scan assessment")
	}

	if err := json.Unmarshal([]byte(inputJSON), &a.Input); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal input")
	}
	if err := json.Unmarshal([]byte(ptpJSON), &a.PTP); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal ptp result")
	}
	if cacJSON.Valid {
		a.CAC = &model.CACResult{}
		if err := json.Unmarshal([]byte(cacJSON.String), a.CAC); err != nil {
			return nil, eris.Wrap(err, "store: unmarshal cac result")
		}
	}
	a.CreatedAt = createdAt.UTC()
	return &a, nil
}
