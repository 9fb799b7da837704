package mood

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresStore persists mood events in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed mood store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event *Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mood_events (
			id, user_id, assessment_id, mood, risk_score,
			suicide_risk, self_harm_risk, language, recorded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		event.ID, event.UserID, event.AssessmentID, string(event.Mood), event.RiskScore,
		event.SuicideRisk, event.SelfHarmRisk, string(event.Language), event.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append mood event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = TrendWindow
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, assessment_id, mood, risk_score,
		       suicide_risk, self_harm_risk, language, recorded_at
		FROM mood_events
		WHERE user_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list mood events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*Event
	for rows.Next() {
		var e Event
		var recordedAt time.Time
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.AssessmentID, &e.Mood, &e.RiskScore,
			&e.SuicideRisk, &e.SelfHarmRisk, &e.Language, &recordedAt,
		); err != nil {
			continue
		}
		e.RecordedAt = recordedAt
		result = append(result, &e)
	}
	return result, rows.Err()
}
