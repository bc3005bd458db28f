// Command seeder populates a record store with demo rows for local
// development.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sign-company/searchd/internal/config"
	logpkg "github.com/sign-company/searchd/internal/logger"
	"github.com/sign-company/searchd/internal/store"
)

func main() {
	dbPath := flag.String("db", "", "record store path (defaults to the configured database.path)")
	wipe := flag.Bool("wipe", false, "delete existing rows before seeding")
	flag.Parse()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	path := cfg.Database.Path
	if *dbPath != "" {
		path = *dbPath
	}

	db, err := store.Open(path)
	if err != nil {
		logger.Fatal("Failed to open record store", zap.String("path", path), zap.Error(err))
	}
	defer db.Close()

	if *wipe {
		for _, table := range []string{"files", "owners", "events", "forum_posts", "stories", "search_history"} {
			if _, err := db.Exec("DELETE FROM " + table); err != nil {
				logger.Fatal("Failed to wipe table", zap.String("table", table), zap.Error(err))
			}
		}
		logger.Info("Wiped existing rows")
	}

	n, err := seed(db)
	if err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}

	logger.Info("Seeded demo data", zap.String("path", path), zap.Int("rows", n))
}

func seed(db *sql.DB) (int, error) {
	now := time.Now().UTC()
	ts := func(daysAgo int) string {
		return now.AddDate(0, 0, -daysAgo).Format(time.RFC3339)
	}

	total := 0

	files := []struct {
		name, description, tags, mime string
		size, downloads, daysAgo      int
	}{
		{"Banner price list 2026", "Current pricing for 13oz and 18oz vinyl banners", "pricing,banners", "application/pdf", 182000, 240, 3},
		{"Channel letter install guide", "Step-by-step raceway and flush mount instructions", "install,channel-letters", "application/pdf", 910000, 88, 21},
		{"Permit checklist", "Municipal sign permit application checklist", "permits,compliance", "application/pdf", 54000, 310, 60},
		{"LED retrofit spec sheet", "Module spacing and driver sizing for cabinet retrofits", "led,retrofit", "application/pdf", 230000, 45, 9},
	}
	for _, f := range files {
		_, err := db.Exec(
			`INSERT INTO files (id, name, description, tags, mime_type, size_bytes, download_count, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), f.name, f.description, f.tags, f.mime, f.size, f.downloads, ts(f.daysAgo),
		)
		if err != nil {
			return total, fmt.Errorf("seeding file %q: %w", f.name, err)
		}
		total++
	}

	owners := []struct {
		name, company, specialties, city, state, openDate string
		views, daysAgo                                    int
	}{
		{"Maria Chen", "Chen Signs & Graphics", "channel-letters,wayfinding", "Austin", "TX", "2012-05-01", 420, 200},
		{"Deshawn Cole", "Cole Sign Co", "vehicle-wraps,banners", "Columbus", "OH", "2018-09-15", 150, 95},
		{"Priya Natarajan", "Lonestar Lighted Signs", "led,monument-signs", "Houston", "TX", "2009-02-20", 610, 400},
	}
	for _, o := range owners {
		_, err := db.Exec(
			`INSERT INTO owners (id, name, company, specialties, city, state, open_date, profile_views, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), o.name, o.company, o.specialties, o.city, o.state, o.openDate, o.views, ts(o.daysAgo),
		)
		if err != nil {
			return total, fmt.Errorf("seeding owner %q: %w", o.name, err)
		}
		total++
	}

	events := []struct {
		title, description, location, tags string
		startsInDays, attendees, daysAgo   int
	}{
		{"Regional sign expo", "Vendor booths, wrap demos, and estimating workshops", "Dallas, TX", "expo,networking", 30, 180, 14},
		{"Permit law webinar", "City code changes affecting illuminated signage", "Online", "permits,webinar", 7, 95, 2},
		{"Shop safety training", "OSHA refresher for fabrication and install crews", "Columbus, OH", "safety,training", 45, 40, 28},
	}
	for _, e := range events {
		_, err := db.Exec(
			`INSERT INTO events (id, title, description, location, tags, starts_at, attendee_count, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), e.title, e.description, e.location, e.tags,
			now.AddDate(0, 0, e.startsInDays).Format(time.RFC3339), e.attendees, ts(e.daysAgo),
		)
		if err != nil {
			return total, fmt.Errorf("seeding event %q: %w", e.title, err)
		}
		total++
	}

	posts := []struct {
		title, content, tags, author string
		replies, views, daysAgo      int
	}{
		{"Best 13oz banner supplier?", "Our usual supplier raised prices again. Who are you all using for 13oz scrim banner rolls?", "materials,banners", "dave_m", 12, 340, 5},
		{"Raceway vs flush mount on brick", "Landlord wants flush mount but the brick is crumbling. Talk me out of a raceway.", "install,channel-letters", "signs_by_kate", 8, 210, 11},
		{"Quoting LED retrofits", "How are you pricing cabinet retrofits per square foot these days?", "led,pricing", "bigcitysigns", 15, 480, 33},
	}
	for _, p := range posts {
		_, err := db.Exec(
			`INSERT INTO forum_posts (id, title, content, tags, author, reply_count, views, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), p.title, p.content, p.tags, p.author, p.replies, p.views, ts(p.daysAgo),
		)
		if err != nil {
			return total, fmt.Errorf("seeding post %q: %w", p.title, err)
		}
		total++
	}

	stories := []struct {
		title, content, summary, category, tags, author string
		views, daysAgo                                  int
	}{
		{"From garage to three crews", "Maria started wrapping vehicles in her garage in 2012. Today Chen Signs runs three install crews across central Texas.", "How one shop scaled from a garage to three install crews", "growth", "growth,profile", "Editorial", 900, 40},
		{"Winning the hospital wayfinding bid", "A small shop's path through a 200-sign interior wayfinding package, from survey to punch list.", "", "projects", "wayfinding,case-study", "Editorial", 450, 12},
	}
	for _, s := range stories {
		_, err := db.Exec(
			`INSERT INTO stories (id, title, content, summary, category, tags, author, views, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), s.title, s.content, s.summary, s.category, s.tags, s.author, s.views, ts(s.daysAgo),
		)
		if err != nil {
			return total, fmt.Errorf("seeding story %q: %w", s.title, err)
		}
		total++
	}

	return total, nil
}
