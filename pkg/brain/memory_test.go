package brain

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	brainerrors "github.com/Aman-CERP/brainai/internal/errors"
)

func TestStoreMemory_SendsMemoryNode(t *testing.T) {
	// Given: a service that assigns ids
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"id": "mem-1"})
	})
	c := newTestClient(t, fs, Config{})

	// When: storing a semantic memory
	id, err := c.StoreMemory(context.Background(), "the sky is blue", MemorySemantic,
		map[string]any{"source": "test"})

	// Then: the id is returned and the body has full strength and a timestamp
	require.NoError(t, err)
	assert.Equal(t, "mem-1", id)

	req := fs.Last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/memory", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "the sky is blue", req.Body["content"])
	assert.Equal(t, "semantic", req.Body["type"])
	assert.Equal(t, 1.0, req.Body["strength"])
	assert.Equal(t, float64(fixedNow.UnixMilli()), req.Body["timestamp"])
	assert.Equal(t, []any{}, req.Body["connections"])
	assert.Equal(t, map[string]any{"source": "test"}, req.Body["metadata"])
	assert.NotContains(t, req.Body, "id")
}

func TestStoreMemory_DefaultsToEpisodic(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": "mem-2"})
	})
	c := newTestClient(t, fs, Config{})

	_, err := c.StoreMemory(context.Background(), map[string]any{"event": "login"}, "", nil)

	require.NoError(t, err)
	assert.Equal(t, "episodic", fs.Last(t).Body["type"])
	assert.Equal(t, map[string]any{}, fs.Last(t).Body["metadata"])
}

func TestStoreMemory_RejectsBadInput(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": "x"})
	})
	c := newTestClient(t, fs, Config{})

	_, err := c.StoreMemory(context.Background(), nil, MemorySemantic, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.StoreMemory(context.Background(), "  ", MemorySemantic, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.StoreMemory(context.Background(), "x", MemoryType("dream"), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, fs.Requests())
}

func TestStoreMemory_MissingIDIsInvalidResponse(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	c := newTestClient(t, fs, Config{})

	_, err := c.StoreMemory(context.Background(), "x", MemorySemantic, nil)

	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "missing id")
}

func TestGetMemory_DecodesNode(t *testing.T) {
	// Given: a service still using integer memory types and omitting collections
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"id":        "mem-7",
			"content":   "hello",
			"type":      2,
			"strength":  0.5,
			"timestamp": 1700000000000,
		})
	})
	c := newTestClient(t, fs, Config{})

	// When: fetching the memory
	node, err := c.GetMemory(context.Background(), "mem-7")

	// Then: the node is decoded with non-nil collections
	require.NoError(t, err)
	assert.Equal(t, "mem-7", node.ID)
	assert.Equal(t, "hello", node.Content)
	assert.Equal(t, MemoryProcedural, node.Type)
	assert.Equal(t, 0.5, node.Strength)
	assert.Equal(t, int64(1700000000000), node.Timestamp)
	assert.NotNil(t, node.Connections)
	assert.NotNil(t, node.Metadata)
	assert.Equal(t, "/api/memory/mem-7", fs.Last(t).Path)
}

func TestGetMemory_EscapesID(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": "a/b c"})
	})
	c := newTestClient(t, fs, Config{})

	_, err := c.GetMemory(context.Background(), "a/b c")

	require.NoError(t, err)
	assert.Equal(t, "/api/memory/a%2Fb%20c", fs.Last(t).Path)
}

func TestGetMemory_NotFound(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "no such memory"})
	})
	c := newTestClient(t, fs, Config{})

	node, err := c.GetMemory(context.Background(), "missing")

	assert.Nil(t, node)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestGetMemory_RequiresID(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {})
	c := newTestClient(t, fs, Config{})

	_, err := c.GetMemory(context.Background(), "")

	assert.Equal(t, brainerrors.ErrCodeInvalidInput, brainerrors.GetCode(err))
	assert.Empty(t, fs.Requests())
}

func TestSearchMemories_SendsThresholdAndLimit(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"results": []map[string]any{
				{"id": "m1", "score": 0.93, "content": "sky"},
				{"id": "m2", "score": 0.71, "content": "sea", "metadata": map[string]any{"k": "v"}},
			},
		})
	})
	c := newTestClient(t, fs, Config{SimilarityThreshold: 0.65})

	results, err := c.SearchMemories(context.Background(), "blue things", 0)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "m1", results[0].ID)
	assert.Equal(t, 0.93, results[0].Score)
	assert.NotNil(t, results[0].Metadata)
	assert.Equal(t, "v", results[1].Metadata["k"])

	req := fs.Last(t)
	assert.Equal(t, "/api/memory/search", req.Path)
	assert.Equal(t, "blue things", req.Body["query"])
	assert.Equal(t, float64(DefaultSearchLimit), req.Body["limit"])
	assert.Equal(t, 0.65, req.Body["threshold"])
}

func TestSearchMemories_NoResultsKey(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	c := newTestClient(t, fs, Config{})

	results, err := c.SearchMemories(context.Background(), "q", 5)

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestConnectMemories(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	c := newTestClient(t, fs, Config{})

	require.NoError(t, c.ConnectMemories(context.Background(), "m1", "m2", 0.8))

	req := fs.Last(t)
	assert.Equal(t, "/api/memory/connect", req.Path)
	assert.Equal(t, map[string]any{"memoryId1": "m1", "memoryId2": "m2", "strength": 0.8}, req.Body)

	err := c.ConnectMemories(context.Background(), "m1", "", 0.8)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateMemoryStrength(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, fs, Config{})

	require.NoError(t, c.UpdateMemoryStrength(context.Background(), "m1", -0.25))

	req := fs.Last(t)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/api/memory/m1/strength", req.Path)
	assert.Equal(t, map[string]any{"delta": -0.25}, req.Body)
}
