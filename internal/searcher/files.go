package searcher

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/sign-company/searchd/internal/domain"
)

// Compile-time check: Files implements Searcher.
var _ Searcher = (*Files)(nil)

// Files searches the file library.
type Files struct {
	db    *sql.DB
	limit int
}

// NewFiles creates the files searcher. limit <= 0 uses DefaultLimit.
func NewFiles(db *sql.DB, limit int) *Files {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Files{db: db, limit: limit}
}

// Category implements Searcher.
func (s *Files) Category() domain.Category { return domain.CategoryFiles }

// Search implements Searcher.
func (s *Files) Search(ctx context.Context, intent domain.Intent) ([]domain.Result, error) {
	b := &whereBuilder{}
	if clause, args := keywordClause([]string{"name", "description", "tags"}, intent.Keywords); clause != "" {
		b.add(clause, args...)
	}
	if clause, args := tagClause("tags", intent.Filters.Tags); clause != "" {
		b.add(clause, args...)
	}

	where, args := b.clause()
	query := `SELECT id, name, description, mime_type, size_bytes, download_count, created_at FROM files` +
		where + sortClause(intent.Sort, "download_count") + " LIMIT ?"
	args = append(args, s.limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		var (
			id, name, description, mimeType, createdAt string
			sizeBytes, downloads                       int64
		)
		if err := rows.Scan(&id, &name, &description, &mimeType, &sizeBytes, &downloads, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning file row: %w", err)
		}

		results = append(results, domain.Result{
			ID:          id,
			Category:    domain.CategoryFiles,
			Title:       name,
			Description: description,
			Link:        "/library/file/" + id,
			Metadata: map[string]string{
				"size":      strconv.FormatInt(sizeBytes, 10),
				"type":      mimeType,
				"date":      createdAt,
				"downloads": strconv.FormatInt(downloads, 10),
			},
			CreatedAt: parseTime(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating file rows: %w", err)
	}
	return results, nil
}
