package searcher

import (
	"database/sql"
	"testing"
	"time"

	"github.com/sign-company/searchd/internal/store"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ts(t *testing.T, daysAgo int) string {
	t.Helper()
	return time.Now().UTC().AddDate(0, 0, -daysAgo).Format(time.RFC3339)
}

func insertFile(t *testing.T, db *sql.DB, id, name, description, tags string, downloads int, createdAt string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO files (id, name, description, tags, mime_type, size_bytes, download_count, created_at)
		 VALUES (?, ?, ?, ?, 'application/pdf', 1024, ?, ?)`,
		id, name, description, tags, downloads, createdAt,
	)
	if err != nil {
		t.Fatalf("inserting file %s: %v", id, err)
	}
}

func insertOwner(t *testing.T, db *sql.DB, id, name, company, specialties, city, state string, views int, createdAt string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO owners (id, name, company, specialties, city, state, open_date, profile_views, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, '2019-03-01', ?, ?)`,
		id, name, company, specialties, city, state, views, createdAt,
	)
	if err != nil {
		t.Fatalf("inserting owner %s: %v", id, err)
	}
}

func insertEvent(t *testing.T, db *sql.DB, id, title, description, location, startsAt string, attendees int, createdAt string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO events (id, title, description, location, tags, starts_at, attendee_count, created_at)
		 VALUES (?, ?, ?, ?, '', ?, ?, ?)`,
		id, title, description, location, startsAt, attendees, createdAt,
	)
	if err != nil {
		t.Fatalf("inserting event %s: %v", id, err)
	}
}

func insertPost(t *testing.T, db *sql.DB, id, title, content, tags, author string, views int, createdAt string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO forum_posts (id, title, content, tags, author, reply_count, views, created_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		id, title, content, tags, author, views, createdAt,
	)
	if err != nil {
		t.Fatalf("inserting post %s: %v", id, err)
	}
}

func insertStory(t *testing.T, db *sql.DB, id, title, content, summary string, createdAt string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO stories (id, title, content, summary, category, tags, author, views, created_at)
		 VALUES (?, ?, ?, ?, 'growth', '', 'Editorial', 0, ?)`,
		id, title, content, summary, createdAt,
	)
	if err != nil {
		t.Fatalf("inserting story %s: %v", id, err)
	}
}
