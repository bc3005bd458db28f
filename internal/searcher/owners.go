package searcher

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sign-company/searchd/internal/domain"
)

// Compile-time check: Owners implements Searcher.
var _ Searcher = (*Owners)(nil)

// Owners searches the franchise owner directory. It is the only searcher
// that recognizes the location filter.
type Owners struct {
	db    *sql.DB
	limit int
}

// NewOwners creates the owners searcher. limit <= 0 uses DefaultLimit.
func NewOwners(db *sql.DB, limit int) *Owners {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Owners{db: db, limit: limit}
}

// Category implements Searcher.
func (s *Owners) Category() domain.Category { return domain.CategoryOwners }

// Search implements Searcher.
func (s *Owners) Search(ctx context.Context, intent domain.Intent) ([]domain.Result, error) {
	b := &whereBuilder{}
	fields := []string{"name", "company", "specialties", "city", "state"}
	if clause, args := keywordClause(fields, intent.Keywords); clause != "" {
		b.add(clause, args...)
	}
	if clause, args := tagClause("specialties", intent.Filters.Tags); clause != "" {
		b.add(clause, args...)
	}
	if loc := strings.TrimSpace(intent.Filters.Location); loc != "" {
		b.add("(instr(lower(city), ?) > 0 OR instr(lower(state), ?) > 0)",
			strings.ToLower(loc), strings.ToLower(loc))
	}

	where, args := b.clause()
	query := `SELECT id, name, company, specialties, city, state, open_date, created_at FROM owners` +
		where + sortClause(intent.Sort, "profile_views") + " LIMIT ?"
	args = append(args, s.limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying owners: %w", err)
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		var id, name, company, specialties, city, state, openDate, createdAt string
		if err := rows.Scan(&id, &name, &company, &specialties, &city, &state, &openDate, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning owner row: %w", err)
		}

		results = append(results, domain.Result{
			ID:          id,
			Category:    domain.CategoryOwners,
			Title:       name,
			Description: fmt.Sprintf("%s - %s, %s", company, city, state),
			Link:        "/owners/" + id,
			Metadata: map[string]string{
				"specialties": specialties,
				"openDate":    openDate,
				"author":      name,
			},
			CreatedAt: parseTime(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating owner rows: %w", err)
	}
	return results, nil
}
