package searcher

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sign-company/searchd/internal/domain"
)

// Compile-time check: Stories implements Searcher.
var _ Searcher = (*Stories)(nil)

// Stories searches success stories and insights.
type Stories struct {
	db    *sql.DB
	limit int
}

// NewStories creates the stories searcher. limit <= 0 uses DefaultLimit.
func NewStories(db *sql.DB, limit int) *Stories {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stories{db: db, limit: limit}
}

// Category implements Searcher.
func (s *Stories) Category() domain.Category { return domain.CategoryStories }

// Search implements Searcher.
func (s *Stories) Search(ctx context.Context, intent domain.Intent) ([]domain.Result, error) {
	b := &whereBuilder{}
	if clause, args := keywordClause([]string{"title", "content", "tags"}, intent.Keywords); clause != "" {
		b.add(clause, args...)
	}
	if clause, args := tagClause("tags", intent.Filters.Tags); clause != "" {
		b.add(clause, args...)
	}

	where, args := b.clause()
	query := `SELECT id, title, content, summary, category, author, created_at FROM stories` +
		where + sortClause(intent.Sort, "views") + " LIMIT ?"
	args = append(args, s.limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying stories: %w", err)
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		var id, title, content, summary, category, author, createdAt string
		if err := rows.Scan(&id, &title, &content, &summary, &category, &author, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning story row: %w", err)
		}

		description := summary
		if description == "" {
			description = snippet(content, descriptionSnippetLen)
		}

		results = append(results, domain.Result{
			ID:          id,
			Category:    domain.CategoryStories,
			Title:       title,
			Description: description,
			Link:        "/stories/" + id,
			Metadata: map[string]string{
				"author":   author,
				"date":     createdAt,
				"category": category,
			},
			CreatedAt: parseTime(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating story rows: %w", err)
	}
	return results, nil
}
