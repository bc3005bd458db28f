package domain

import (
	"reflect"
	"testing"
	"time"
)

func TestTokenize_DropsShortTokens(t *testing.T) {
	got := Tokenize("a blue banners last month ok")
	want := []string{"blue", "banners", "last", "month"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize: got %v, want %v", got, want)
	}
}

func TestTokenize_Empty(t *testing.T) {
	if got := Tokenize("   ab  x "); len(got) != 0 {
		t.Errorf("expected no tokens, got %v", got)
	}
}

func TestFallbackIntent(t *testing.T) {
	intent := FallbackIntent("blue banners last month")

	if !reflect.DeepEqual(intent.Categories, DefaultCategories()) {
		t.Errorf("expected default categories, got %v", intent.Categories)
	}
	want := []string{"blue", "banners", "last", "month"}
	if !reflect.DeepEqual(intent.Keywords, want) {
		t.Errorf("keywords: got %v, want %v", intent.Keywords, want)
	}
	if intent.Sort != SortRelevance {
		t.Errorf("expected relevance sort, got %q", intent.Sort)
	}
	if len(intent.Filters.Tags) != 0 || intent.Filters.DateRange != "" || intent.Filters.Location != "" {
		t.Errorf("expected empty filters, got %+v", intent.Filters)
	}
}

func TestParseCategories(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []Category
	}{
		{"known subset", []string{"files", "events"}, []Category{CategoryFiles, CategoryEvents}},
		{"unknown ignored", []string{"files", "suppliers"}, []Category{CategoryFiles}},
		{"duplicates collapsed", []string{"forum", "forum"}, []Category{CategoryForum}},
		{"all unknown degrades to default", []string{"suppliers", "widgets"}, DefaultCategories()},
		{"empty degrades to default", nil, DefaultCategories()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseCategories(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	if ParseSort("date") != SortDate {
		t.Error("expected date")
	}
	if ParseSort("popularity") != SortPopularity {
		t.Error("expected popularity")
	}
	if ParseSort("") != SortRelevance {
		t.Error("expected relevance for empty")
	}
	if ParseSort("nonsense") != SortRelevance {
		t.Error("expected relevance for unrecognized")
	}
}

func TestDateRangeBounds(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	t.Run("last week", func(t *testing.T) {
		r := DateRangeBounds("last week", now)
		if r.From != now.AddDate(0, 0, -7) || r.To != now {
			t.Errorf("unexpected range %+v", r)
		}
	})

	t.Run("last month", func(t *testing.T) {
		r := DateRangeBounds("last month", now)
		wantFrom := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
		wantTo := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
		if r.From != wantFrom || r.To != wantTo {
			t.Errorf("unexpected range %+v", r)
		}
	})

	t.Run("Q2", func(t *testing.T) {
		r := DateRangeBounds("Q2", now)
		if r.From != time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC) {
			t.Errorf("unexpected from %v", r.From)
		}
		if r.To != time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC) {
			t.Errorf("unexpected to %v", r.To)
		}
	})

	t.Run("unrecognized defaults to year start", func(t *testing.T) {
		r := DateRangeBounds("whenever", now)
		if r.From != time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC) {
			t.Errorf("unexpected from %v", r.From)
		}
		if !r.To.IsZero() {
			t.Errorf("expected open upper bound, got %v", r.To)
		}
	})
}
