package alerts

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresStore persists crisis alerts in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed alert store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, alert *CrisisAlert) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crisis_alerts (
			id, user_id, assessment_id, risk_score, risk_level,
			suicide_risk, self_harm_risk, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		alert.ID, nullString(alert.UserID), alert.AssessmentID, alert.RiskScore, string(alert.RiskLevel),
		alert.Flags.SuicideRisk, alert.Flags.SelfHarmRisk, string(alert.Status), alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*CrisisAlert, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, assessment_id, risk_score, risk_level,
		       suicide_risk, self_harm_risk, status, created_at,
		       acknowledged_by, acknowledged_at
		FROM crisis_alerts
		WHERE id = $1
	`, id)

	alert, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, ErrAlertNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return alert, nil
}

func (s *PostgresStore) ListPending(ctx context.Context, limit int) ([]*CrisisAlert, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, assessment_id, risk_score, risk_level,
		       suicide_risk, self_harm_risk, status, created_at,
		       acknowledged_by, acknowledged_at
		FROM crisis_alerts
		WHERE status = 'pending'
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*CrisisAlert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			continue
		}
		result = append(result, alert)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, alert *CrisisAlert) error {
	var ackBy sql.NullString
	var ackAt sql.NullTime
	if alert.AcknowledgedBy != "" {
		ackBy = sql.NullString{String: alert.AcknowledgedBy, Valid: true}
	}
	if alert.AcknowledgedAt != nil {
		ackAt = sql.NullTime{Time: *alert.AcknowledgedAt, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE crisis_alerts
		SET status = $2, acknowledged_by = $3, acknowledged_at = $4
		WHERE id = $1
	`, alert.ID, string(alert.Status), ackBy, ackAt)
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrAlertNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAlert(row rowScanner) (*CrisisAlert, error) {
	var alert CrisisAlert
	var userID, ackBy sql.NullString
	var ackAt sql.NullTime
	var createdAt time.Time

	if err := row.Scan(
		&alert.ID, &userID, &alert.AssessmentID, &alert.RiskScore, &alert.RiskLevel,
		&alert.Flags.SuicideRisk, &alert.Flags.SelfHarmRisk, &alert.Status, &createdAt,
		&ackBy, &ackAt,
	); err != nil {
		return nil, err
	}
	alert.UserID = userID.String
	alert.AcknowledgedBy = ackBy.String
	alert.CreatedAt = createdAt
	if ackAt.Valid {
		t := ackAt.Time
		alert.AcknowledgedAt = &t
	}
	return &alert, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
