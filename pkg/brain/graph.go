package brain

import (
	"context"
	"net/http"
	"strings"
)

// CreateGraphNode adds a node with unit weight to the knowledge graph.
func (c *Client) CreateGraphNode(ctx context.Context, id, label, nodeType string, properties map[string]any) error {
	if strings.TrimSpace(id) == "" {
		return invalidInput("create graph node: id is required")
	}
	if properties == nil {
		properties = map[string]any{}
	}

	node := GraphNode{
		ID:          id,
		Label:       label,
		Type:        nodeType,
		Properties:  properties,
		Connections: []string{},
		Weight:      1.0,
	}
	return c.do(ctx, http.MethodPost, "/api/graph/node", node, nil)
}

// ConnectGraphNodes adds a weighted edge between two nodes.
func (c *Client) ConnectGraphNodes(ctx context.Context, nodeID1, nodeID2 string, weight float64) error {
	if nodeID1 == "" || nodeID2 == "" {
		return invalidInput("connect graph nodes: both node ids are required")
	}

	req := map[string]any{
		"nodeId1": nodeID1,
		"nodeId2": nodeID2,
		"weight":  weight,
	}
	return c.do(ctx, http.MethodPost, "/api/graph/connect", req, nil)
}

// GraphNeighbors returns the nodes within depth hops of nodeID.
// A depth of 0 or less asks for direct neighbors.
func (c *Client) GraphNeighbors(ctx context.Context, nodeID string, depth int) ([]GraphNode, error) {
	if strings.TrimSpace(nodeID) == "" {
		return nil, invalidInput("graph neighbors: node id is required")
	}
	if depth <= 0 {
		depth = 1
	}

	var resp neighborsResponse
	req := map[string]any{"depth": depth}
	if err := c.query(ctx, http.MethodPost, "/api/graph/neighbors/"+escapeID(nodeID), req, &resp); err != nil {
		return nil, err
	}
	if resp.Neighbors == nil {
		return []GraphNode{}, nil
	}
	for i := range resp.Neighbors {
		resp.Neighbors[i].fillEmpty()
	}
	return resp.Neighbors, nil
}
