package journal

import (
	"reflect"
	"strings"
	"testing"
)

func TestWordCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"today was a long day", 5},
		{"  spaced   out   words  ", 3},
	}
	for _, tc := range cases {
		if got := WordCount(tc.in); got != tc.want {
			t.Errorf("WordCount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestReadingTime(t *testing.T) {
	cases := []struct {
		words int
		want  int
	}{
		{0, 1},
		{50, 1},
		{200, 1},
		{300, 2}, // 1.5 rounds up
		{400, 2},
		{1000, 5},
	}
	for _, tc := range cases {
		if got := ReadingTime(tc.words); got != tc.want {
			t.Errorf("ReadingTime(%d) = %d, want %d", tc.words, got, tc.want)
		}
	}
}

func TestExtractKeywords(t *testing.T) {
	text := "school school school stress stress today"
	got := ExtractKeywords(text, 10)
	want := []string{"school", "stress", "today"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractKeywords = %v, want %v", got, want)
	}
}

func TestExtractKeywordsSkipsStopAndShortWords(t *testing.T) {
	got := ExtractKeywords("the cat sat on that mat with they and i", 10)
	// "that" and "with" and "they" are stop words; everything else is
	// shorter than four letters.
	if len(got) != 0 {
		t.Errorf("expected no keywords, got %v", got)
	}
}

func TestExtractKeywordsLimit(t *testing.T) {
	text := strings.Join([]string{"alpha", "bravo", "delta", "eagle", "fight"}, " ")
	got := ExtractKeywords(text, 3)
	if len(got) != 3 {
		t.Errorf("expected 3 keywords, got %v", got)
	}
}

func TestExtractKeywordsDeterministicTies(t *testing.T) {
	text := "river ocean river ocean"
	first := ExtractKeywords(text, 10)
	for i := 0; i < 20; i++ {
		if got := ExtractKeywords(text, 10); !reflect.DeepEqual(got, first) {
			t.Fatalf("keyword order must be deterministic: %v vs %v", got, first)
		}
	}
	if first[0] != "river" {
		t.Errorf("ties keep first-seen order, got %v", first)
	}
}
