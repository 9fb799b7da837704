package journal

import (
	"context"
	"testing"
	"time"

	"github.com/nmorris876/yaadmind/internal/lexicon"
	"github.com/nmorris876/yaadmind/internal/pagination"
	"github.com/nmorris876/yaadmind/internal/testutil"
	"github.com/nmorris876/yaadmind/internal/triage"
)

func TestPostgresStore_RoundTrip(t *testing.T) {
	db, cleanup := testutil.PGTest(t)
	defer cleanup()

	store := NewPostgresStore(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	entry := &Entry{
		ID:             "jrn_pgtest1",
		UserID:         "user1",
		Title:          "rough day",
		Content:        "I feel hopeless and alone",
		Language:       lexicon.LangEnglish,
		WordCount:      5,
		ReadingTimeMin: 1,
		Keywords:       []string{"hopeless", "alone"},
		Assessment: &triage.Assessment{
			ID:        "asm_pgtest1",
			Mood:      triage.MoodSad,
			RiskLevel: triage.RiskModerate,
			Language:  lexicon.LangEnglish,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := store.Create(ctx, entry); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Content != entry.Content {
		t.Errorf("content mismatch: got %q", got.Content)
	}
	if len(got.Keywords) != 2 || got.Keywords[0] != "hopeless" {
		t.Errorf("keywords not round-tripped: %v", got.Keywords)
	}
	if got.Assessment == nil || got.Assessment.Mood != triage.MoodSad {
		t.Errorf("assessment not round-tripped: %+v", got.Assessment)
	}
}

func TestPostgresStore_ListByUserPagination(t *testing.T) {
	db, cleanup := testutil.PGTest(t)
	defer cleanup()

	store := NewPostgresStore(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 3; i++ {
		entry := &Entry{
			ID:        "jrn_page" + string(rune('a'+i)),
			UserID:    "pager",
			Content:   "entry",
			Language:  lexicon.LangEnglish,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			UpdatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := store.Create(ctx, entry); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	first, err := store.ListByUser(ctx, "pager", 2, nil)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(first))
	}

	last := first[len(first)-1]
	rest, err := store.ListByUser(ctx, "pager", 2, &pagination.Cursor{
		CreatedAt: last.CreatedAt,
		ID:        last.ID,
	})
	if err != nil {
		t.Fatalf("ListByUser with cursor failed: %v", err)
	}
	if len(rest) != 1 {
		t.Fatalf("expected 1 remaining entry, got %d", len(rest))
	}
	for _, e := range first {
		if e.ID == rest[0].ID {
			t.Error("cursor page repeated an entry")
		}
	}
}
