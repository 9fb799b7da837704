package triage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// PostgresStore persists assessments in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed assessment store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Record(ctx context.Context, a *Assessment) error {
	scoresJSON, err := json.Marshal(a.CategoryScores)
	if err != nil {
		return fmt.Errorf("failed to marshal category scores: %w", err)
	}
	levelsJSON, err := json.Marshal(a.CategoryLevels)
	if err != nil {
		return fmt.Errorf("failed to marshal category levels: %w", err)
	}
	recsJSON, err := json.Marshal(a.Recommendations)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessments (
			id, mood, confidence, suicide_risk, self_harm_risk, needs_support,
			category_scores, category_levels, coping_present,
			risk_score, risk_level, recommendations, language, evaluated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		a.ID, string(a.Mood), a.Confidence, a.SuicideRisk, a.SelfHarmRisk, a.NeedsSupport,
		scoresJSON, levelsJSON, a.CopingPresent,
		a.RiskScore, string(a.RiskLevel), recsJSON, string(a.Language), a.EvaluatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record assessment: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*Assessment, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mood, confidence, suicide_risk, self_harm_risk, needs_support,
		       category_scores, category_levels, coping_present,
		       risk_score, risk_level, recommendations, language, evaluated_at
		FROM assessments
		ORDER BY evaluated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*Assessment
	for rows.Next() {
		var a Assessment
		var scoresJSON, levelsJSON, recsJSON []byte
		var evaluatedAt time.Time

		if err := rows.Scan(
			&a.ID, &a.Mood, &a.Confidence, &a.SuicideRisk, &a.SelfHarmRisk, &a.NeedsSupport,
			&scoresJSON, &levelsJSON, &a.CopingPresent,
			&a.RiskScore, &a.RiskLevel, &recsJSON, &a.Language, &evaluatedAt,
		); err != nil {
			continue
		}
		a.EvaluatedAt = evaluatedAt
		_ = json.Unmarshal(scoresJSON, &a.CategoryScores)
		_ = json.Unmarshal(levelsJSON, &a.CategoryLevels)
		_ = json.Unmarshal(recsJSON, &a.Recommendations)
		result = append(result, &a)
	}
	return result, rows.Err()
}
