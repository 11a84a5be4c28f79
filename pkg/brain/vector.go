package brain

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	brainerrors "github.com/Aman-CERP/brainai/internal/errors"
)

// StoreVector stores a vector for similarity search and returns its id.
func (c *Client) StoreVector(ctx context.Context, vector []float64, metadata map[string]any) (string, error) {
	return c.storeVector(ctx, VectorEntry{Vector: vector, Metadata: metadata})
}

func (c *Client) storeVector(ctx context.Context, entry VectorEntry) (string, error) {
	v, err := c.prepareVector("store vector", entry.Vector)
	if err != nil {
		return "", err
	}
	entry.Vector = v
	if entry.Metadata == nil {
		entry.Metadata = map[string]any{}
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = c.timestamp()
	}

	var resp idResponse
	if err := c.do(ctx, http.MethodPost, "/api/vector", entry, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", brainerrors.New(brainerrors.ErrCodeInvalidResponse, "invalid response: missing id", nil)
	}
	return resp.ID, nil
}

// StoreVectors stores entries with at most concurrency requests in flight
// (Config.PoolSize when concurrency <= 0). The returned ids are in input
// order. Every vector is validated before any request is sent; the first
// request failure cancels the rest.
func (c *Client) StoreVectors(ctx context.Context, entries []VectorEntry, concurrency int) ([]string, error) {
	for i, e := range entries {
		if _, err := c.prepareVector(fmt.Sprintf("store vectors[%d]", i), e.Vector); err != nil {
			return nil, err
		}
	}
	if concurrency <= 0 {
		concurrency = c.cfg.PoolSize
	}

	ids := make([]string, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, e := range entries {
		g.Go(func() error {
			id, err := c.storeVector(gctx, e)
			if err != nil {
				return fmt.Errorf("store vectors[%d]: %w", i, err)
			}
			ids[i] = id
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

// SearchSimilarVectors returns stored vectors similar to vector, best first.
// A limit of 0 or less uses DefaultSearchLimit.
func (c *Client) SearchSimilarVectors(ctx context.Context, vector []float64, limit int) ([]SearchResult, error) {
	v, err := c.prepareVector("search vectors", vector)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	req := map[string]any{
		"vector":    v,
		"limit":     limit,
		"threshold": c.cfg.SimilarityThreshold,
	}

	var resp searchResponse
	if err := c.query(ctx, http.MethodPost, "/api/vector/search", req, &resp); err != nil {
		return nil, err
	}
	return fillSearchResults(resp.Results), nil
}
