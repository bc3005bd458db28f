package searcher

import (
	"strings"
	"time"

	"github.com/sign-company/searchd/internal/domain"
)

// whereBuilder accumulates AND-joined conjuncts with their arguments.
type whereBuilder struct {
	conjuncts []string
	args      []any
}

func (b *whereBuilder) add(clause string, args ...any) {
	b.conjuncts = append(b.conjuncts, clause)
	b.args = append(b.args, args...)
}

// clause renders the accumulated WHERE clause (with leading space), or an
// empty string when nothing was added.
func (b *whereBuilder) clause() (string, []any) {
	if len(b.conjuncts) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(b.conjuncts, " AND "), b.args
}

// keywordClause builds one disjunction over every (field, keyword) pair:
// a row matches if ANY field case-insensitively contains ANY keyword.
// Keywords and fields are OR'd together, never cross-product AND'd.
func keywordClause(fields, keywords []string) (string, []any) {
	if len(keywords) == 0 {
		return "", nil
	}
	terms := make([]string, 0, len(fields)*len(keywords))
	args := make([]any, 0, len(fields)*len(keywords))
	for _, f := range fields {
		for _, kw := range keywords {
			terms = append(terms, "instr(lower("+f+"), ?) > 0")
			args = append(args, strings.ToLower(kw))
		}
	}
	return "(" + strings.Join(terms, " OR ") + ")", args
}

// tagClause requires the record's comma-separated tag column to intersect
// the filter's tag set.
func tagClause(column string, tags []string) (string, []any) {
	if len(tags) == 0 {
		return "", nil
	}
	terms := make([]string, 0, len(tags))
	args := make([]any, 0, len(tags))
	for _, tag := range tags {
		terms = append(terms, "instr(',' || lower("+column+") || ',', ?) > 0")
		args = append(args, ","+strings.ToLower(strings.TrimSpace(tag))+",")
	}
	return "(" + strings.Join(terms, " OR ") + ")", args
}

// sortClause translates the intent's sort preference into the store's
// native ordering. None of the tables carries an internal score field, so
// the relevance proxy is recency.
func sortClause(sort domain.SortPreference, popularityCol string) string {
	switch sort {
	case domain.SortDate:
		return " ORDER BY created_at DESC"
	case domain.SortPopularity:
		return " ORDER BY " + popularityCol + " DESC, created_at DESC"
	default: // relevance
		return " ORDER BY created_at DESC"
	}
}

// snippet truncates display text the way the forum and stories cards do.
func snippet(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// parseTime reads an RFC3339 timestamp column, tolerating empty values.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
