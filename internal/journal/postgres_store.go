package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/nmorris876/yaadmind/internal/pagination"
)

// PostgresStore persists journal entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed journal store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, entry *Entry) error {
	assessmentJSON, err := json.Marshal(entry.Assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO journal_entries (
			id, user_id, title, content, language, word_count,
			reading_time_min, keywords, assessment, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		entry.ID, entry.UserID, entry.Title, entry.Content, string(entry.Language), entry.WordCount,
		entry.ReadingTimeMin, pq.Array(entry.Keywords), assessmentJSON, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, content, language, word_count,
		       reading_time_min, keywords, assessment, created_at, updated_at
		FROM journal_entries
		WHERE id = $1
	`, id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}
	return entry, nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string, limit int, before *pagination.Cursor) ([]*Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, user_id, title, content, language, word_count,
		       reading_time_min, keywords, assessment, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1
	`
	args := []interface{}{userID}
	if before != nil {
		query += ` AND (created_at, id) < ($2, $3)`
		args = append(args, before.CreatedAt, before.ID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			continue
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Update(ctx context.Context, entry *Entry) error {
	assessmentJSON, err := json.Marshal(entry.Assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE journal_entries
		SET title = $2, content = $3, word_count = $4, reading_time_min = $5,
		    keywords = $6, assessment = $7, updated_at = $8
		WHERE id = $1
	`,
		entry.ID, entry.Title, entry.Content, entry.WordCount, entry.ReadingTimeMin,
		pq.Array(entry.Keywords), assessmentJSON, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var entry Entry
	var keywords pq.StringArray
	var assessmentJSON []byte
	var createdAt, updatedAt time.Time

	if err := row.Scan(
		&entry.ID, &entry.UserID, &entry.Title, &entry.Content, &entry.Language, &entry.WordCount,
		&entry.ReadingTimeMin, &keywords, &assessmentJSON, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	entry.Keywords = []string(keywords)
	entry.CreatedAt = createdAt
	entry.UpdatedAt = updatedAt
	if len(assessmentJSON) > 0 {
		_ = json.Unmarshal(assessmentJSON, &entry.Assessment)
	}
	return &entry, nil
}
