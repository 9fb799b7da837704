// Package journal manages journal entries: the primary write path of the
// platform. Creating an entry runs the full analysis pipeline and fans out
// to mood history and the crisis alert queue.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/nmorris876/yaadmind/internal/lexicon"
	"github.com/nmorris876/yaadmind/internal/pagination"
	"github.com/nmorris876/yaadmind/internal/triage"
)

var (
	ErrEntryNotFound = errors.New("journal entry not found")
	ErrNotOwner      = errors.New("entry belongs to another user")
	ErrInvalidCursor = errors.New("invalid pagination cursor")
)

// Entry is a journal entry with its attached analysis.
type Entry struct {
	ID             string             `json:"id"`
	UserID         string             `json:"user_id"`
	Title          string             `json:"title,omitempty"`
	Content        string             `json:"content"`
	Language       lexicon.Language   `json:"language"`
	WordCount      int                `json:"word_count"`
	ReadingTimeMin int                `json:"reading_time_min"`
	Keywords       []string           `json:"keywords,omitempty"`
	Assessment     *triage.Assessment `json:"assessment,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// Store persists journal entries.
type Store interface {
	Create(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	ListByUser(ctx context.Context, userID string, limit int, before *pagination.Cursor) ([]*Entry, error)
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id string) error
}
