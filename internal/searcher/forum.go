package searcher

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/sign-company/searchd/internal/domain"
)

// Compile-time check: Forum implements Searcher.
var _ Searcher = (*Forum)(nil)

// descriptionSnippetLen bounds the post/story excerpt shown in result cards.
const descriptionSnippetLen = 150

// Forum searches forum posts.
type Forum struct {
	db    *sql.DB
	limit int
}

// NewForum creates the forum searcher. limit <= 0 uses DefaultLimit.
func NewForum(db *sql.DB, limit int) *Forum {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Forum{db: db, limit: limit}
}

// Category implements Searcher.
func (s *Forum) Category() domain.Category { return domain.CategoryForum }

// Search implements Searcher.
func (s *Forum) Search(ctx context.Context, intent domain.Intent) ([]domain.Result, error) {
	b := &whereBuilder{}
	if clause, args := keywordClause([]string{"title", "content", "tags"}, intent.Keywords); clause != "" {
		b.add(clause, args...)
	}
	if clause, args := tagClause("tags", intent.Filters.Tags); clause != "" {
		b.add(clause, args...)
	}

	where, args := b.clause()
	query := `SELECT id, title, content, author, reply_count, views, created_at FROM forum_posts` +
		where + sortClause(intent.Sort, "views") + " LIMIT ?"
	args = append(args, s.limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying forum posts: %w", err)
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		var (
			id, title, content, author, createdAt string
			replies, views                        int64
		)
		if err := rows.Scan(&id, &title, &content, &author, &replies, &views, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning forum row: %w", err)
		}

		results = append(results, domain.Result{
			ID:          id,
			Category:    domain.CategoryForum,
			Title:       title,
			Description: snippet(content, descriptionSnippetLen),
			Link:        "/forum/post/" + id,
			Metadata: map[string]string{
				"author":  author,
				"date":    createdAt,
				"replies": strconv.FormatInt(replies, 10),
				"views":   strconv.FormatInt(views, 10),
			},
			CreatedAt: parseTime(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating forum rows: %w", err)
	}
	return results, nil
}
