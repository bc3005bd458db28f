package searcher

import (
	"reflect"
	"testing"

	"github.com/sign-company/searchd/internal/domain"
)

func TestKeywordClause_OneDisjunctionOverFieldsAndKeywords(t *testing.T) {
	clause, args := keywordClause([]string{"name", "tags"}, []string{"Neon", "banner"})

	want := "(instr(lower(name), ?) > 0 OR instr(lower(name), ?) > 0 OR " +
		"instr(lower(tags), ?) > 0 OR instr(lower(tags), ?) > 0)"
	if clause != want {
		t.Errorf("clause:\ngot:  %s\nwant: %s", clause, want)
	}

	wantArgs := []any{"neon", "banner", "neon", "banner"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args: got %v, want %v", args, wantArgs)
	}
}

func TestKeywordClause_EmptyKeywords(t *testing.T) {
	clause, args := keywordClause([]string{"name"}, nil)
	if clause != "" || args != nil {
		t.Errorf("expected empty clause, got %q %v", clause, args)
	}
}

func TestTagClause(t *testing.T) {
	clause, args := tagClause("tags", []string{"Vinyl", " led "})

	want := "(instr(',' || lower(tags) || ',', ?) > 0 OR instr(',' || lower(tags) || ',', ?) > 0)"
	if clause != want {
		t.Errorf("clause:\ngot:  %s\nwant: %s", clause, want)
	}
	wantArgs := []any{",vinyl,", ",led,"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args: got %v, want %v", args, wantArgs)
	}
}

func TestSortClause(t *testing.T) {
	if got := sortClause(domain.SortDate, "views"); got != " ORDER BY created_at DESC" {
		t.Errorf("date: got %q", got)
	}
	if got := sortClause(domain.SortPopularity, "views"); got != " ORDER BY views DESC, created_at DESC" {
		t.Errorf("popularity: got %q", got)
	}
	if got := sortClause(domain.SortRelevance, "views"); got != " ORDER BY created_at DESC" {
		t.Errorf("relevance: got %q", got)
	}
}

func TestSnippet(t *testing.T) {
	if got := snippet("short", 150); got != "short" {
		t.Errorf("got %q", got)
	}
	long := make([]rune, 200)
	for i := range long {
		long[i] = 'x'
	}
	got := snippet(string(long), 150)
	if len([]rune(got)) != 153 { // 150 + "..."
		t.Errorf("unexpected snippet length %d", len([]rune(got)))
	}
}

func TestWhereBuilder_Empty(t *testing.T) {
	b := &whereBuilder{}
	clause, args := b.clause()
	if clause != "" || args != nil {
		t.Errorf("expected empty where, got %q %v", clause, args)
	}
}

func TestWhereBuilder_JoinsWithAnd(t *testing.T) {
	b := &whereBuilder{}
	b.add("a = ?", 1)
	b.add("b = ?", 2)
	clause, args := b.clause()
	if clause != " WHERE a = ? AND b = ?" {
		t.Errorf("got %q", clause)
	}
	if !reflect.DeepEqual(args, []any{1, 2}) {
		t.Errorf("args: got %v", args)
	}
}
