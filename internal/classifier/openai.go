package classifier

import (
	"context"
	"encoding/json"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/sign-company/searchd/internal/domain"
	"github.com/sign-company/searchd/internal/metrics"
)

// Compile-time check: OpenAI implements Classifier.
var _ Classifier = (*OpenAI)(nil)

// systemPrompt describes the structured output schema the model must emit.
const systemPrompt = `You are a search intent parser for a sign company dashboard. ` +
	`Parse the user's query and return a JSON object with:
- dataTypes: array of types to search (files, owners, events, forum, stories)
- filters: object with optional tags (array), dateRange (label like "last month" or "Q1"), and location fields
- keywords: array of important keywords
- sortBy: how to sort results (relevance, date, popularity)`

// OpenAI classifies intents via an OpenAI-compatible chat-completions API
// (OpenRouter in production).
type OpenAI struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds the classification provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewOpenAI creates an OpenAI-compatible intent classifier.
func NewOpenAI(cfg Config) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAI{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// wireIntent is the JSON schema the model is instructed to return.
type wireIntent struct {
	DataTypes []string    `json:"dataTypes"`
	Filters   wireFilters `json:"filters"`
	Keywords  []string    `json:"keywords"`
	SortBy    string      `json:"sortBy"`
}

type wireFilters struct {
	Tags      []string `json:"tags"`
	DateRange string   `json:"dateRange"`
	Location  string   `json:"location"`
}

// Classify invokes the external classifier and converts its response into
// an intent. Transport errors, timeouts, and unparseable content all fall
// back to the deterministic intent.
func (c *OpenAI) Classify(ctx context.Context, rawQuery string) domain.Intent {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: rawQuery},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return c.fallback(rawQuery, "request failed", err)
	}
	if len(resp.Choices) == 0 {
		return c.fallback(rawQuery, "empty response", nil)
	}

	var wire wireIntent
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &wire); err != nil {
		return c.fallback(rawQuery, "unparseable response", err)
	}

	metrics.ClassifierRequestsTotal.WithLabelValues("classified").Inc()
	return intentFromWire(wire)
}

func (c *OpenAI) fallback(rawQuery, reason string, err error) domain.Intent {
	metrics.ClassifierRequestsTotal.WithLabelValues("fallback").Inc()
	c.logger.Warn("intent classification fell back to keyword split",
		zap.String("reason", reason),
		zap.Error(err),
	)
	return domain.FallbackIntent(rawQuery)
}

// intentFromWire maps the model's schema onto the domain intent: unknown
// categories are dropped (empty degrades to the default set), keywords
// shorter than three characters are filtered, and an unrecognized sort
// defaults to relevance.
func intentFromWire(w wireIntent) domain.Intent {
	keywords := make([]string, 0, len(w.Keywords))
	for _, kw := range w.Keywords {
		if len(kw) > 2 {
			keywords = append(keywords, kw)
		}
	}

	return domain.Intent{
		Categories: domain.ParseCategories(w.DataTypes),
		Filters: domain.Filters{
			Tags:      w.Filters.Tags,
			DateRange: w.Filters.DateRange,
			Location:  w.Filters.Location,
		},
		Keywords: keywords,
		Sort:     domain.ParseSort(w.SortBy),
	}
}
