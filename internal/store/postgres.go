package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/cardioref/ptp-cli/internal/db"
	"github.com/cardioref/ptp-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id         TEXT PRIMARY KEY,
	input      JSONB NOT NULL,
	ptp        JSONB NOT NULL,
	cac        JSONB,
	category   TEXT NOT NULL DEFAULT '',
	symptom    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_assessments_category ON assessments(category);
CREATE INDEX IF NOT EXISTS idx_assessments_symptom ON assessments(symptom);
CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveAssessment(ctx context.Context, a model.Assessment) error {
	inputJSON, ptpJSON, cacJSON, err := marshalAssessment(a)
	if err != nil {
		return err
	}

	var cacArg any
	if cacJSON.Valid {
		cacArg = cacJSON.String
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO assessments (id, input, ptp, cac, category, symptom, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, inputJSON, ptpJSON, cacArg, string(a.Category()), a.Input.Symptom, a.CreatedAt.UTC(),
	)
	return eris.Wrapf(err, "postgres: insert assessment %s", a.ID)
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, input, ptp, cac, created_at FROM assessments WHERE id = $1`,
		id,
	)
	a, err := scanPgAssessment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("assessment not found: %s", id)
	}
	return a, err
}

func (s *PostgresStore) ListAssessments(ctx context.Context, filter AssessmentFilter) ([]model.Assessment, error) {
	query := `SELECT id, input, ptp, cac, created_at FROM assessments WHERE 1=1`
	var args []any

	if filter.Category != "" {
		args = append(args, string(filter.Category))
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if filter.Symptom != "" {
		args = append(args, string(filter.Symptom))
		query += fmt.Sprintf(` AND symptom = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list assessments")
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		a, err := scanPgAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list assessments iterate")
}

// scanPgAssessment scans a row whose JSONB columns arrive as []byte.
func scanPgAssessment(row pgx.Row) (*model.Assessment, error) {
	var a model.Assessment
	var inputJSON, ptpJSON []byte
	var cacJSON []byte
	var createdAt time.Time

	err := row.Scan(&a.ID, &inputJSON, &ptpJSON, &cacJSON, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan assessment")
	}

	if err := json.Unmarshal(inputJSON, &a.Input); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal input")
	}
	if err := json.Unmarshal(ptpJSON, &a.PTP); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal ptp result")
	}
	if len(cacJSON) > 0 {
		a.CAC = &model.CACResult{}
		if err := json.Unmarshal(cacJSON, a.CAC); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal cac result")
		}
	}
	a.CreatedAt = createdAt.UTC()
	return &a, nil
}
