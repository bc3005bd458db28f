package searcher

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/sign-company/searchd/internal/domain"
)

// Compile-time check: Events implements Searcher.
var _ Searcher = (*Events)(nil)

// Events searches the events calendar. It is the only searcher that
// recognizes the dateRange filter, applied to the event start time.
type Events struct {
	db    *sql.DB
	limit int
	now   func() time.Time
}

// NewEvents creates the events searcher. limit <= 0 uses DefaultLimit.
func NewEvents(db *sql.DB, limit int) *Events {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Events{db: db, limit: limit, now: time.Now}
}

// Category implements Searcher.
func (s *Events) Category() domain.Category { return domain.CategoryEvents }

// Search implements Searcher.
func (s *Events) Search(ctx context.Context, intent domain.Intent) ([]domain.Result, error) {
	b := &whereBuilder{}
	if clause, args := keywordClause([]string{"title", "description", "location"}, intent.Keywords); clause != "" {
		b.add(clause, args...)
	}
	if clause, args := tagClause("tags", intent.Filters.Tags); clause != "" {
		b.add(clause, args...)
	}
	if intent.Filters.DateRange != "" {
		r := domain.DateRangeBounds(intent.Filters.DateRange, s.now())
		b.add("starts_at >= ?", r.From.UTC().Format(time.RFC3339))
		if !r.To.IsZero() {
			b.add("starts_at < ?", r.To.UTC().Format(time.RFC3339))
		}
	}

	where, args := b.clause()
	query := `SELECT id, title, description, location, starts_at, attendee_count, created_at FROM events` +
		where + sortClause(intent.Sort, "attendee_count") + " LIMIT ?"
	args = append(args, s.limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		var (
			id, title, description, location, startsAt, createdAt string
			attendees                                             int64
		)
		if err := rows.Scan(&id, &title, &description, &location, &startsAt, &attendees, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}

		results = append(results, domain.Result{
			ID:          id,
			Category:    domain.CategoryEvents,
			Title:       title,
			Description: description,
			Link:        "/events/" + id,
			Metadata: map[string]string{
				"date":      startsAt,
				"location":  location,
				"attendees": strconv.FormatInt(attendees, 10),
			},
			CreatedAt: parseTime(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event rows: %w", err)
	}
	return results, nil
}
