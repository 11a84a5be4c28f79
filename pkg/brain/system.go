package brain

import (
	"context"
	"net/http"
)

// StatusHealthy is the status value a healthy service reports.
const StatusHealthy = "healthy"

// Status returns the service status document.
func (c *Client) Status(ctx context.Context) (map[string]any, error) {
	return c.getMap(ctx, "/api/status")
}

// Statistics returns the service's usage statistics.
func (c *Client) Statistics(ctx context.Context) (map[string]any, error) {
	return c.getMap(ctx, "/api/stats")
}

func (c *Client) getMap(ctx context.Context, path string) (map[string]any, error) {
	var m map[string]any
	if err := c.query(ctx, http.MethodGet, path, nil, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// ClearAll deletes all memories, vectors, patterns and graph data on the service.
func (c *Client) ClearAll(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/clear", nil, nil)
}

// Batch sends several operations in one request and returns one result per
// operation, in the order the service reports them.
func (c *Client) Batch(ctx context.Context, ops []BatchOperation) ([]map[string]any, error) {
	if ops == nil {
		ops = []BatchOperation{}
	}

	var resp batchResponse
	req := map[string]any{"operations": ops}
	if err := c.do(ctx, http.MethodPost, "/api/batch", req, &resp); err != nil {
		return nil, err
	}

	results := make([]map[string]any, 0, len(resp.Results))
	for _, r := range resp.Results {
		if m, ok := r.(map[string]any); ok {
			results = append(results, m)
		}
	}
	return results, nil
}

// HealthCheck reports whether the service says it is healthy. A request
// failure returns false together with the error.
func (c *Client) HealthCheck(ctx context.Context) (bool, error) {
	status, err := c.Status(ctx)
	if err != nil {
		c.logger.Debug("health_check_failed", "error", err)
		return false, err
	}
	s, _ := status["status"].(string)
	return s == StatusHealthy, nil
}
