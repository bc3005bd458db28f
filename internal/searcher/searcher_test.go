package searcher

import (
	"context"
	"testing"
	"time"

	"github.com/sign-company/searchd/internal/domain"
)

func TestFiles_KeywordMatchesAnyField(t *testing.T) {
	db := openTestDB(t)
	insertFile(t, db, "f1", "Banner order form", "", "", 0, ts(t, 1))
	insertFile(t, db, "f2", "Pricing sheet", "vinyl banner pricing", "", 0, ts(t, 1))
	insertFile(t, db, "f3", "Holiday schedule", "", "", 0, ts(t, 1))

	results, err := NewFiles(db, 0).Search(context.Background(), domain.Intent{
		Keywords: []string{"banner"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Category != domain.CategoryFiles {
			t.Errorf("unexpected category %q", r.Category)
		}
		if r.Link != "/library/file/"+r.ID {
			t.Errorf("unexpected link %q", r.Link)
		}
	}
}

func TestFiles_KeywordsAreCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	insertFile(t, db, "f1", "NEON Signage Guide", "", "", 0, ts(t, 1))

	results, err := NewFiles(db, 0).Search(context.Background(), domain.Intent{
		Keywords: []string{"neon"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestFiles_TagFilterIntersects(t *testing.T) {
	db := openTestDB(t)
	insertFile(t, db, "f1", "Banner order form", "", "vinyl,print", 0, ts(t, 1))
	insertFile(t, db, "f2", "Banner care guide", "", "led", 0, ts(t, 1))

	results, err := NewFiles(db, 0).Search(context.Background(), domain.Intent{
		Keywords: []string{"banner"},
		Filters:  domain.Filters{Tags: []string{"vinyl"}},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "f1" {
		t.Fatalf("expected only f1, got %v", results)
	}
}

func TestFiles_LimitCapsResults(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 15; i++ {
		insertFile(t, db, string(rune('a'+i)), "banner", "", "", 0, ts(t, 1))
	}

	results, err := NewFiles(db, 10).Search(context.Background(), domain.Intent{
		Keywords: []string{"banner"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 10 {
		t.Fatalf("expected cap of 10, got %d", len(results))
	}
}

func TestFiles_PopularitySort(t *testing.T) {
	db := openTestDB(t)
	insertFile(t, db, "cold", "banner", "", "", 2, ts(t, 5))
	insertFile(t, db, "hot", "banner", "", "", 90, ts(t, 20))

	results, err := NewFiles(db, 0).Search(context.Background(), domain.Intent{
		Keywords: []string{"banner"},
		Sort:     domain.SortPopularity,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results[0].ID != "hot" {
		t.Errorf("expected downloads-descending order, got %v first", results[0].ID)
	}
}

func TestOwners_LocationFilter(t *testing.T) {
	db := openTestDB(t)
	insertOwner(t, db, "o1", "Dana Reyes", "Reyes Signs", "wraps", "Austin", "TX", 5, ts(t, 3))
	insertOwner(t, db, "o2", "Kim Osei", "Osei Graphics", "wraps", "Tulsa", "OK", 9, ts(t, 3))

	results, err := NewOwners(db, 0).Search(context.Background(), domain.Intent{
		Keywords: []string{"wraps"},
		Filters:  domain.Filters{Location: "austin"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "o1" {
		t.Fatalf("expected only the Austin owner, got %v", results)
	}
	if results[0].Description != "Reyes Signs - Austin, TX" {
		t.Errorf("unexpected description %q", results[0].Description)
	}
}

func TestEvents_DateRangeFilter(t *testing.T) {
	db := openTestDB(t)
	now := time.Now().UTC()
	inRange := now.AddDate(0, 0, -3).Format(time.RFC3339)
	outOfRange := now.AddDate(0, 0, -45).Format(time.RFC3339)
	insertEvent(t, db, "e1", "Sign Expo", "", "Dallas", inRange, 40, ts(t, 10))
	insertEvent(t, db, "e2", "Sign Expo archive", "", "Dallas", outOfRange, 10, ts(t, 50))

	results, err := NewEvents(db, 0).Search(context.Background(), domain.Intent{
		Keywords: []string{"expo"},
		Filters:  domain.Filters{DateRange: "last week"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "e1" {
		t.Fatalf("expected only the recent event, got %v", results)
	}
	if results[0].Metadata["attendees"] != "40" {
		t.Errorf("unexpected attendees metadata %q", results[0].Metadata["attendees"])
	}
}

func TestForum_SnippetsLongContent(t *testing.T) {
	db := openTestDB(t)
	long := ""
	for i := 0; i < 40; i++ {
		long += "banner tips "
	}
	insertPost(t, db, "p1", "Mounting advice", long, "install", "sam", 12, ts(t, 2))

	results, err := NewForum(db, 0).Search(context.Background(), domain.Intent{
		Keywords: []string{"banner"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if got := len([]rune(results[0].Description)); got != descriptionSnippetLen+3 {
		t.Errorf("expected snippeted description, got length %d", got)
	}
	if results[0].Link != "/forum/post/p1" {
		t.Errorf("unexpected link %q", results[0].Link)
	}
}

func TestStories_PrefersSummary(t *testing.T) {
	db := openTestDB(t)
	insertStory(t, db, "s1", "Grand opening win", "long content about banners", "A banner success story", ts(t, 2))

	results, err := NewStories(db, 0).Search(context.Background(), domain.Intent{
		Keywords: []string{"banner"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Description != "A banner success story" {
		t.Errorf("expected summary as description, got %q", results[0].Description)
	}
}

func TestRegistry_LookupAndLen(t *testing.T) {
	db := openTestDB(t)
	reg := NewRegistry(
		NewFiles(db, 0),
		NewOwners(db, 0),
		NewEvents(db, 0),
		NewForum(db, 0),
		NewStories(db, 0),
	)

	if reg.Len() != 5 {
		t.Fatalf("expected 5 registered searchers, got %d", reg.Len())
	}
	for _, c := range domain.DefaultCategories() {
		s, ok := reg.Lookup(c)
		if !ok {
			t.Errorf("missing searcher for %q", c)
			continue
		}
		if s.Category() != c {
			t.Errorf("searcher registered under wrong category: %q", c)
		}
	}
	if _, ok := reg.Lookup(domain.Category("suppliers")); ok {
		t.Error("unexpected searcher for unknown category")
	}
}

func TestSearchers_EmptyIntentReturnsRows(t *testing.T) {
	// No keywords and no filters means an unconstrained store query,
	// still capped by the per-category limit.
	db := openTestDB(t)
	insertFile(t, db, "f1", "Banner order form", "", "", 0, ts(t, 1))

	results, err := NewFiles(db, 0).Search(context.Background(), domain.Intent{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}
