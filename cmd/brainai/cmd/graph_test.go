package cmd

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphNode(t *testing.T) {
	fb := newFakeBrain(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/graph/node": reply(map[string]any{}),
	})

	out, err := execute(t, fb.URL, "graph", "node", "go", "Go language", "--type", "language", "--prop", "year=2009")

	require.NoError(t, err)
	assert.Contains(t, out, "Created node go (Go language)")
	body := fb.last(t).Body
	assert.Equal(t, "language", body["type"])
	assert.Equal(t, map[string]any{"year": float64(2009)}, body["properties"])
	assert.Equal(t, 1.0, body["weight"])
}

func TestGraphConnect(t *testing.T) {
	fb := newFakeBrain(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/graph/connect": reply(map[string]any{}),
	})

	_, err := execute(t, fb.URL, "graph", "connect", "go", "c", "--weight", "0.3")

	require.NoError(t, err)
	body := fb.last(t).Body
	assert.Equal(t, "go", body["nodeId1"])
	assert.Equal(t, 0.3, body["weight"])
}

func TestGraphNeighbors(t *testing.T) {
	fb := newFakeBrain(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/graph/neighbors/go": reply(map[string]any{
			"neighbors": []map[string]any{{"id": "c", "label": "C", "type": "language", "weight": 0.3}},
		}),
	})

	out, err := execute(t, fb.URL, "graph", "neighbors", "go", "--depth", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "c  C [language] weight 0.30")
	assert.Equal(t, float64(2), fb.last(t).Body["depth"])
}

func TestGraphNeighbors_None(t *testing.T) {
	fb := newFakeBrain(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/graph/neighbors/lonely": reply(map[string]any{}),
	})

	out, err := execute(t, fb.URL, "graph", "neighbors", "lonely")

	require.NoError(t, err)
	assert.Contains(t, out, "lonely has no neighbors")
}
