package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sign-company/searchd/internal/cache"
	"github.com/sign-company/searchd/internal/domain"
	"github.com/sign-company/searchd/internal/history"
	"github.com/sign-company/searchd/internal/metrics"
	"github.com/sign-company/searchd/internal/ranking"
	"github.com/sign-company/searchd/internal/searcher"
)

const (
	// DefaultTTL is how long a merged response stays cached.
	DefaultTTL = 15 * time.Minute

	// DefaultMergedLimit caps the basic search response.
	DefaultMergedLimit = 20

	minQueryLen = 2
)

// Service wires the orchestration collaborators together.
type Service struct {
	cache      cache.Cache
	classifier Classifier
	registry   *searcher.Registry
	history    History
	logger     *zap.Logger

	ttl         time.Duration
	mergedLimit int
	now         func() time.Time
}

// Config carries the Service collaborators and tunables.
type Config struct {
	Cache       cache.Cache
	Classifier  Classifier
	Registry    *searcher.Registry
	History     History
	Logger      *zap.Logger
	TTL         time.Duration
	MergedLimit int
}

// NewService builds the orchestrator. Zero tunables take defaults.
func NewService(cfg Config) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MergedLimit <= 0 {
		cfg.MergedLimit = DefaultMergedLimit
	}
	return &Service{
		cache:       cfg.Cache,
		classifier:  cfg.Classifier,
		registry:    cfg.Registry,
		history:     cfg.History,
		logger:      cfg.Logger,
		ttl:         cfg.TTL,
		mergedLimit: cfg.MergedLimit,
		now:         time.Now,
	}
}

// Search runs the full basic orchestration for one actor and query.
// limit <= 0 or above the configured merged limit uses the merged limit.
func (s *Service) Search(ctx context.Context, actor, rawQuery string, limit int) ([]domain.Result, error) {
	start := s.now()

	if len(strings.TrimSpace(rawQuery)) < minQueryLen {
		return nil, domain.ErrQueryTooShort
	}
	if limit <= 0 || limit > s.mergedLimit {
		limit = s.mergedLimit
	}

	// The cache always holds the full merged-limit list; the request
	// limit is applied as a slice after lookup, so entries written by
	// one limit never shrink or inflate another caller's response.
	key := cacheKey(actor, rawQuery)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached []domain.Result
		err := json.Unmarshal(raw, &cached)
		if err == nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			metrics.SearchDuration.WithLabelValues("basic").Observe(s.now().Sub(start).Seconds())
			return truncate(cached, limit), nil
		}
		s.logger.Warn("search: discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	intent := s.classifier.Classify(ctx, rawQuery)
	merged := ranking.Merge(s.fanOut(ctx, intent), intent, s.now(), s.mergedLimit)

	if encoded, err := json.Marshal(merged); err == nil {
		s.cache.Set(ctx, key, encoded, s.ttl)
	} else {
		s.logger.Warn("search: encoding results for cache", zap.Error(err))
	}

	if err := s.history.Record(ctx, actor, rawQuery); err != nil {
		s.logger.Warn("search: recording history", zap.String("actor", actor), zap.Error(err))
	}

	metrics.SearchDuration.WithLabelValues("basic").Observe(s.now().Sub(start).Seconds())
	return truncate(merged, limit), nil
}

func truncate(results []domain.Result, limit int) []domain.Result {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}

// AdvancedParams is the caller-supplied structured query.
type AdvancedParams struct {
	Query      string
	Categories []string
	Tags       []string
	DateRange  string
	Location   string
	Sort       string
	Page       int
	Limit      int
}

// AdvancedResult is one page of an advanced search.
type AdvancedResult struct {
	Results    []domain.Result
	Total      int
	Page       int
	TotalPages int
}

// Advanced runs a structured search with caller-chosen categories and
// filters, paginating the uncapped merged set. It bypasses the cache and
// the history ledger.
func (s *Service) Advanced(ctx context.Context, params AdvancedParams) (AdvancedResult, error) {
	start := s.now()

	if len(strings.TrimSpace(params.Query)) < minQueryLen {
		return AdvancedResult{}, domain.ErrQueryTooShort
	}
	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = s.mergedLimit
	}
	if params.Page < 1 || params.Limit < 1 {
		return AdvancedResult{}, domain.ErrInvalidPage
	}

	intent := domain.Intent{
		Categories: domain.ParseCategories(params.Categories),
		Filters: domain.Filters{
			Tags:      params.Tags,
			DateRange: params.DateRange,
			Location:  params.Location,
		},
		Keywords: domain.Tokenize(params.Query),
		Sort:     domain.ParseSort(params.Sort),
	}

	merged := ranking.Merge(s.fanOut(ctx, intent), intent, s.now(), 0)

	total := len(merged)
	totalPages := (total + params.Limit - 1) / params.Limit
	offset := (params.Page - 1) * params.Limit
	page := []domain.Result{}
	if offset < total {
		end := offset + params.Limit
		if end > total {
			end = total
		}
		page = merged[offset:end]
	}

	metrics.SearchDuration.WithLabelValues("advanced").Observe(s.now().Sub(start).Seconds())
	return AdvancedResult{
		Results:    page,
		Total:      total,
		Page:       params.Page,
		TotalPages: totalPages,
	}, nil
}

// Suggestions returns history queries starting with the prefix. Prefixes
// shorter than two characters yield an empty list.
func (s *Service) Suggestions(ctx context.Context, prefix string, limit int) ([]string, error) {
	if len(strings.TrimSpace(prefix)) < minQueryLen {
		return []string{}, nil
	}
	return s.history.Suggestions(ctx, prefix, limit)
}

// Recent returns the actor's most recent distinct queries.
func (s *Service) Recent(ctx context.Context, actor string, limit int) ([]string, error) {
	return s.history.Recent(ctx, actor, limit)
}

// Popular returns the most frequent queries over the trailing week.
func (s *Service) Popular(ctx context.Context, limit int) ([]domain.QueryCount, error) {
	return s.history.Popular(ctx, limit, history.DefaultPopularWindow)
}

// fanOut dispatches the intent to each requested category's searcher in
// parallel. A failed or unregistered category contributes an empty list;
// one category's failure never degrades the others.
func (s *Service) fanOut(ctx context.Context, intent domain.Intent) [][]domain.Result {
	lists := make([][]domain.Result, len(intent.Categories))

	var wg sync.WaitGroup
	for i, cat := range intent.Categories {
		sr, ok := s.registry.Lookup(cat)
		if !ok {
			s.logger.Warn("search: no searcher registered for category", zap.String("category", string(cat)))
			continue
		}

		wg.Add(1)
		go func(i int, cat domain.Category, sr searcher.Searcher) {
			defer wg.Done()
			results, err := sr.Search(ctx, intent)
			if err != nil {
				metrics.SearcherFailuresTotal.WithLabelValues(string(cat)).Inc()
				s.logger.Warn("search: category searcher failed",
					zap.String("category", string(cat)),
					zap.Error(err),
				)
				return
			}
			lists[i] = results
		}(i, cat, sr)
	}
	wg.Wait()

	return lists
}

func cacheKey(actor, query string) string {
	return fmt.Sprintf("search:%s:%s", actor, query)
}
