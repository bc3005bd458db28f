package domain

import "time"

// Result is a single search hit in the shape all categories share.
// It is assembled fresh per query and never persisted; Score is computed
// at merge time and is only comparable to scores from the same merge.
type Result struct {
	ID          string            `json:"id"`
	Category    Category          `json:"category"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Link        string            `json:"link"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	Score       int               `json:"score"`
}

// HistoryEntry is one executed query in an actor's search history.
type HistoryEntry struct {
	Actor    string    `json:"actor"`
	Query    string    `json:"query"`
	IssuedAt time.Time `json:"issuedAt"`
}

// QueryCount is an aggregated (query, frequency) pair.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}
