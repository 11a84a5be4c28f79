package brain

import (
	"context"
	"net/http"
	"strings"

	brainerrors "github.com/Aman-CERP/brainai/internal/errors"
)

// StoreMemory stores content as a new memory with full strength and returns
// the id the service assigned. An empty memType stores an episodic memory.
func (c *Client) StoreMemory(ctx context.Context, content any, memType MemoryType, metadata map[string]any) (string, error) {
	if content == nil {
		return "", invalidInput("store memory: content is required")
	}
	if s, ok := content.(string); ok && strings.TrimSpace(s) == "" {
		return "", invalidInput("store memory: content is required")
	}
	if memType == "" {
		memType = MemoryEpisodic
	}
	if !memType.Valid() {
		return "", invalidInput("store memory: unknown memory type %q", memType)
	}
	if metadata == nil {
		metadata = map[string]any{}
	}

	node := MemoryNode{
		Content:     content,
		Type:        memType,
		Strength:    1.0,
		Timestamp:   c.timestamp(),
		Connections: []string{},
		Metadata:    metadata,
	}

	var resp idResponse
	if err := c.do(ctx, http.MethodPost, "/api/memory", node, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", brainerrors.New(brainerrors.ErrCodeInvalidResponse, "invalid response: missing id", nil)
	}
	return resp.ID, nil
}

// GetMemory fetches a memory by id. A missing memory yields an error
// matching ErrNotFound.
func (c *Client) GetMemory(ctx context.Context, id string) (*MemoryNode, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalidInput("get memory: id is required")
	}

	var node MemoryNode
	if err := c.query(ctx, http.MethodGet, "/api/memory/"+escapeID(id), nil, &node); err != nil {
		return nil, err
	}
	node.fillEmpty()
	return &node, nil
}

// SearchMemories returns memories similar to query, best first. The service
// applies the configured similarity threshold. A limit of 0 or less uses
// DefaultSearchLimit.
func (c *Client) SearchMemories(ctx context.Context, query any, limit int) ([]SearchResult, error) {
	if query == nil {
		return nil, invalidInput("search memories: query is required")
	}
	if s, ok := query.(string); ok && strings.TrimSpace(s) == "" {
		return nil, invalidInput("search memories: query is required")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	req := map[string]any{
		"query":     query,
		"limit":     limit,
		"threshold": c.cfg.SimilarityThreshold,
	}

	var resp searchResponse
	if err := c.query(ctx, http.MethodPost, "/api/memory/search", req, &resp); err != nil {
		return nil, err
	}
	return fillSearchResults(resp.Results), nil
}

// ConnectMemories links two memories with the given strength.
func (c *Client) ConnectMemories(ctx context.Context, memoryID1, memoryID2 string, strength float64) error {
	if memoryID1 == "" || memoryID2 == "" {
		return invalidInput("connect memories: both memory ids are required")
	}

	req := map[string]any{
		"memoryId1": memoryID1,
		"memoryId2": memoryID2,
		"strength":  strength,
	}
	return c.do(ctx, http.MethodPost, "/api/memory/connect", req, nil)
}

// UpdateMemoryStrength adjusts a memory's strength by delta.
func (c *Client) UpdateMemoryStrength(ctx context.Context, id string, delta float64) error {
	if strings.TrimSpace(id) == "" {
		return invalidInput("update memory strength: id is required")
	}
	req := map[string]any{"delta": delta}
	return c.do(ctx, http.MethodPatch, "/api/memory/"+escapeID(id)+"/strength", req, nil)
}
