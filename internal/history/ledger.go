// Package history keeps the append-only per-actor log of executed
// queries, with retention pruning and the aggregations behind
// suggestions, recent, and popular searches.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sign-company/searchd/internal/domain"
)

// DefaultCap is how many entries are retained per actor.
const DefaultCap = 100

// DefaultPopularWindow is the trailing window for popular-query aggregation.
const DefaultPopularWindow = 7 * 24 * time.Hour

// Ledger records and aggregates search history in SQLite.
type Ledger struct {
	db  *sql.DB
	cap int
	now func() time.Time
}

// New creates a ledger. cap <= 0 uses DefaultCap.
func New(db *sql.DB, cap int) *Ledger {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &Ledger{db: db, cap: cap, now: time.Now}
}

// Record appends an entry for the actor, then prunes the oldest entries
// beyond the retention cap so exactly the cap remains.
func (l *Ledger) Record(ctx context.Context, actor, query string) error {
	issuedAt := l.now().UTC().Format(time.RFC3339)

	if _, err := l.db.ExecContext(ctx,
		`INSERT INTO search_history (actor, query, issued_at) VALUES (?, ?, ?)`,
		actor, query, issuedAt,
	); err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}

	// Keep only the newest cap entries; issued_at ties break on insert order.
	if _, err := l.db.ExecContext(ctx,
		`DELETE FROM search_history
		 WHERE actor = ?
		   AND id NOT IN (
		       SELECT id FROM search_history
		       WHERE actor = ?
		       ORDER BY issued_at DESC, id DESC
		       LIMIT ?
		   )`,
		actor, actor, l.cap,
	); err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}

	return nil
}

// Recent returns the actor's distinct queries, most recent first.
func (l *Ledger) Recent(ctx context.Context, actor string, limit int) ([]string, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT query FROM search_history
		 WHERE actor = ?
		 GROUP BY query
		 ORDER BY MAX(issued_at) DESC, MAX(id) DESC
		 LIMIT ?`,
		actor, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent searches: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// Suggestions returns queries starting with prefix (case-insensitive),
// grouped by exact text and ordered by frequency descending.
func (l *Ledger) Suggestions(ctx context.Context, prefix string, limit int) ([]string, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT query FROM search_history
		 WHERE instr(lower(query), ?) = 1
		 GROUP BY query
		 ORDER BY COUNT(*) DESC, MAX(issued_at) DESC
		 LIMIT ?`,
		strings.ToLower(prefix), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying suggestions: %w", err)
	}
	defer rows.Close()

	return scanStrings(rows)
}

// Popular returns (query, count) pairs within the trailing window,
// ordered by frequency descending.
func (l *Ledger) Popular(ctx context.Context, limit int, window time.Duration) ([]domain.QueryCount, error) {
	if window <= 0 {
		window = DefaultPopularWindow
	}
	since := l.now().UTC().Add(-window).Format(time.RFC3339)

	rows, err := l.db.QueryContext(ctx,
		`SELECT query, COUNT(*) AS cnt FROM search_history
		 WHERE issued_at >= ?
		 GROUP BY query
		 ORDER BY cnt DESC, MAX(issued_at) DESC
		 LIMIT ?`,
		since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying popular searches: %w", err)
	}
	defer rows.Close()

	var out []domain.QueryCount
	for rows.Next() {
		var qc domain.QueryCount
		if err := rows.Scan(&qc.Query, &qc.Count); err != nil {
			return nil, fmt.Errorf("scanning popular row: %w", err)
		}
		out = append(out, qc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating popular rows: %w", err)
	}
	return out, nil
}

// Count reports how many entries the actor currently has.
func (l *Ledger) Count(ctx context.Context, actor string) (int, error) {
	var n int
	if err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM search_history WHERE actor = ?`, actor,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting history entries: %w", err)
	}
	return n, nil
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}
