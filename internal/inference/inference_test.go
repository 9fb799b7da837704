package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nmorris876/yaadmind/internal/lexicon"
	"github.com/nmorris876/yaadmind/internal/triage"
	"github.com/nmorris876/yaadmind/internal/violence"
)

func TestSentiment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != sentimentPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req["language"] != "patois" {
			t.Errorf("expected language passthrough, got %q", req["language"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"label":      "negative",
			"confidence": 0.93,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Sentiment(context.Background(), "mi feel bruk dung", lexicon.LangPatois)
	if err != nil {
		t.Fatal(err)
	}
	if got.Label != triage.SentimentNegative || got.Confidence != 0.93 {
		t.Errorf("unexpected sentiment %+v", got)
	}
}

func TestSentimentUnknownLabelBecomesNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"label": "LABEL_2", "confidence": 0.5})
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).Sentiment(context.Background(), "hm", lexicon.LangEnglish)
	if err != nil {
		t.Fatal(err)
	}
	if got.Label != triage.SentimentNeutral {
		t.Errorf("unknown label must map to neutral, got %s", got.Label)
	}
}

func TestEntities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != entitiesPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"entities": map[string]any{
				"locations": []string{"Spanish Town"},
				"persons":   []string{"John Brown"},
			},
		})
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).Entities(context.Background(), "a fight in Spanish Town", violence.TypeCommunityViolence)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Locations) != 1 || got.Locations[0] != "Spanish Town" {
		t.Errorf("unexpected entities %+v", got)
	}
}

func TestServerErrorReturnsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Sentiment(context.Background(), "text", lexicon.LangEnglish)
	if err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()
	for i := 0; i < breakerThreshold; i++ {
		if _, err := c.Sentiment(ctx, "text", lexicon.LangEnglish); err == nil {
			t.Fatal("expected error")
		}
	}

	// Circuit is now open; the next call must be rejected without a request.
	before := hits
	if _, err := c.Sentiment(ctx, "text", lexicon.LangEnglish); err == nil {
		t.Fatal("expected circuit-open error")
	}
	if hits != before {
		t.Errorf("open circuit must not hit the server, got %d extra hits", hits-before)
	}
}

func TestBreakerKeysAreIndependent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == sentimentPath {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"entities": map[string]any{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()
	for i := 0; i < breakerThreshold; i++ {
		_, _ = c.Sentiment(ctx, "text", lexicon.LangEnglish)
	}

	// Sentiment circuit open must not block entity extraction.
	if _, err := c.Entities(ctx, "text", violence.TypeOther); err != nil {
		t.Errorf("entity endpoint must stay closed: %v", err)
	}
}
