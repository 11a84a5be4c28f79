package brain

import (
	"context"
	"net/http"
	"strings"
)

// Learn teaches the service a pattern observed in the given context.
// The configured learning rate is sent with it.
func (c *Client) Learn(ctx context.Context, pattern string, contextItems []string) error {
	if strings.TrimSpace(pattern) == "" {
		return invalidInput("learn: pattern is required")
	}
	if contextItems == nil {
		contextItems = []string{}
	}

	req := map[string]any{
		"pattern": pattern,
		"context": contextItems,
		"rate":    c.cfg.LearningRate,
	}
	return c.do(ctx, http.MethodPost, "/api/learning/learn", req, nil)
}

// LearningPatterns lists the patterns the service has learned.
func (c *Client) LearningPatterns(ctx context.Context) ([]LearningPattern, error) {
	var resp patternsResponse
	if err := c.query(ctx, http.MethodGet, "/api/learning/patterns", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Patterns == nil {
		return []LearningPattern{}, nil
	}
	for i := range resp.Patterns {
		resp.Patterns[i].fillEmpty()
	}
	return resp.Patterns, nil
}

// Reason asks the service to reason about query, bounded by the configured
// maximum reasoning depth.
func (c *Client) Reason(ctx context.Context, query string, contextItems []string) (*ReasoningResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, invalidInput("reason: query is required")
	}
	if contextItems == nil {
		contextItems = []string{}
	}

	req := map[string]any{
		"query":    query,
		"context":  contextItems,
		"maxDepth": c.cfg.MaxReasoningDepth,
	}

	var result ReasoningResult
	if err := c.query(ctx, http.MethodPost, "/api/reasoning/reason", req, &result); err != nil {
		return nil, err
	}
	result.fillEmpty()
	return &result, nil
}

// AddFeedback reports feedback about earlier information and reasoning.
func (c *Client) AddFeedback(ctx context.Context, feedbackType FeedbackType, information, reasoning string) error {
	if strings.TrimSpace(information) == "" {
		return invalidInput("add feedback: information is required")
	}

	req := map[string]any{
		"type":        feedbackType,
		"information": information,
		"reasoning":   reasoning,
		"timestamp":   c.timestamp(),
	}
	return c.do(ctx, http.MethodPost, "/api/feedback", req, nil)
}
