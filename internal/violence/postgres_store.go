package violence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// PostgresStore persists violence reports in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed report store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, r *Report) error {
	entitiesJSON, err := json.Marshal(r.Assessment.Entities)
	if err != nil {
		return fmt.Errorf("failed to marshal entities: %w", err)
	}
	routedJSON, err := json.Marshal(r.Assessment.RoutedTo)
	if err != nil {
		return fmt.Errorf("failed to marshal routing: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO violence_reports (
			id, reporter_id, report_type, content,
			entities, urgency_score, should_escalate, routed_to,
			status, created_at, updated_at
		)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		r.ID, r.ReporterID, string(r.Type), r.Content,
		entitiesJSON, r.Assessment.UrgencyScore, r.Assessment.ShouldEscalate, routedJSON,
		string(r.Status), r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Report, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(reporter_id, ''), report_type, content,
		       entities, urgency_score, should_escalate, routed_to,
		       status, created_at, updated_at
		FROM violence_reports WHERE id = $1
	`, id)

	r, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status Status, limit int) ([]*Report, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(reporter_id, ''), report_type, content,
		       entities, urgency_score, should_escalate, routed_to,
		       status, created_at, updated_at
		FROM violence_reports
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			continue
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE violence_reports SET status = $2, updated_at = $3 WHERE id = $1
	`, id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrReportNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*Report, error) {
	var r Report
	var entitiesJSON, routedJSON []byte

	err := row.Scan(
		&r.ID, &r.ReporterID, &r.Type, &r.Content,
		&entitiesJSON, &r.Assessment.UrgencyScore, &r.Assessment.ShouldEscalate, &routedJSON,
		&r.Status, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	_ = json.Unmarshal(entitiesJSON, &r.Assessment.Entities)
	_ = json.Unmarshal(routedJSON, &r.Assessment.RoutedTo)
	return &r, nil
}
