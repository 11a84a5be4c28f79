package brain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MemoryType classifies a stored memory.
type MemoryType string

const (
	MemoryEpisodic   MemoryType = "episodic"
	MemorySemantic   MemoryType = "semantic"
	MemoryProcedural MemoryType = "procedural"
	MemoryEmotional  MemoryType = "emotional"
)

// memoryTypesByIndex is the order older services use for integer types.
var memoryTypesByIndex = []MemoryType{MemoryEpisodic, MemorySemantic, MemoryProcedural, MemoryEmotional}

// Valid reports whether t is one of the known memory types.
func (t MemoryType) Valid() bool {
	for _, known := range memoryTypesByIndex {
		if t == known {
			return true
		}
	}
	return false
}

// ParseMemoryType parses a case-insensitive memory type name.
func ParseMemoryType(s string) (MemoryType, error) {
	t := MemoryType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown memory type %q (want episodic, semantic, procedural or emotional)", s)
	}
	return t, nil
}

// UnmarshalJSON accepts the type name or the legacy integer form (0-3).
func (t *MemoryType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = MemoryType(s)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("memory type must be a string or integer: %s", data)
	}
	if n < 0 || n >= len(memoryTypesByIndex) {
		return fmt.Errorf("memory type index %d out of range", n)
	}
	*t = memoryTypesByIndex[n]
	return nil
}

// FeedbackType is the polarity of feedback sent to the learning system.
type FeedbackType string

const (
	FeedbackPositive FeedbackType = "positive"
	FeedbackNegative FeedbackType = "negative"
	FeedbackNeutral  FeedbackType = "neutral"
)

// ParseFeedbackType parses a case-insensitive feedback type name.
func ParseFeedbackType(s string) (FeedbackType, error) {
	switch f := FeedbackType(strings.ToLower(strings.TrimSpace(s))); f {
	case FeedbackPositive, FeedbackNegative, FeedbackNeutral:
		return f, nil
	default:
		return "", fmt.Errorf("unknown feedback type %q (want positive, negative or neutral)", s)
	}
}

// MarshalJSON writes unknown feedback types as "neutral".
func (f FeedbackType) MarshalJSON() ([]byte, error) {
	switch f {
	case FeedbackPositive, FeedbackNegative:
		return json.Marshal(string(f))
	default:
		return json.Marshal(string(FeedbackNeutral))
	}
}

// MemoryNode is a single stored memory.
type MemoryNode struct {
	ID          string         `json:"id,omitempty"`
	Content     any            `json:"content"`
	Type        MemoryType     `json:"type"`
	Strength    float64        `json:"strength"`
	Timestamp   int64          `json:"timestamp"`
	Connections []string       `json:"connections"`
	Metadata    map[string]any `json:"metadata"`
}

// LearningPattern is a pattern the service has learned, with usage stats.
type LearningPattern struct {
	Pattern     string   `json:"pattern"`
	Frequency   int      `json:"frequency"`
	Strength    float64  `json:"strength"`
	Context     []string `json:"context"`
	LastUpdated int64    `json:"lastUpdated"`
}

// ReasoningResult is the outcome of a reasoning request.
type ReasoningResult struct {
	Conclusion         string   `json:"conclusion"`
	Confidence         float64  `json:"confidence"`
	ReasoningPath      []string `json:"reasoning_path"`
	SupportingEvidence []string `json:"supporting_evidence"`
	Timestamp          int64    `json:"timestamp"`
}

// VectorEntry is a vector stored for similarity search.
type VectorEntry struct {
	ID        string         `json:"id,omitempty"`
	Vector    []float64      `json:"vector"`
	Metadata  map[string]any `json:"metadata"`
	Timestamp int64          `json:"timestamp"`
}

// GraphNode is a node of the knowledge graph.
type GraphNode struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Type        string         `json:"type"`
	Properties  map[string]any `json:"properties"`
	Connections []string       `json:"connections"`
	Weight      float64        `json:"weight"`
}

// SearchResult is one hit from a memory or vector search.
type SearchResult struct {
	ID       string         `json:"id"`
	Score    float64        `json:"score"`
	Content  any            `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

// BatchOperation is a single request inside a Batch call.
type BatchOperation struct {
	Type     string `json:"type"`
	Endpoint string `json:"endpoint"`
	Method   string `json:"method"`
	Data     any    `json:"data"`
}

// Response envelopes.

type idResponse struct {
	ID string `json:"id"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

type patternsResponse struct {
	Patterns []LearningPattern `json:"patterns"`
}

type neighborsResponse struct {
	Neighbors []GraphNode `json:"neighbors"`
}

type batchResponse struct {
	Results []any `json:"results"`
}

// The service omits empty collections. Callers always get non-nil values.

func (m *MemoryNode) fillEmpty() {
	if m.Connections == nil {
		m.Connections = []string{}
	}
	if m.Metadata == nil {
		m.Metadata = map[string]any{}
	}
}

func (p *LearningPattern) fillEmpty() {
	if p.Context == nil {
		p.Context = []string{}
	}
}

func (r *ReasoningResult) fillEmpty() {
	if r.ReasoningPath == nil {
		r.ReasoningPath = []string{}
	}
	if r.SupportingEvidence == nil {
		r.SupportingEvidence = []string{}
	}
}

func (n *GraphNode) fillEmpty() {
	if n.Properties == nil {
		n.Properties = map[string]any{}
	}
	if n.Connections == nil {
		n.Connections = []string{}
	}
}

func (s *SearchResult) fillEmpty() {
	if s.Metadata == nil {
		s.Metadata = map[string]any{}
	}
}

func fillSearchResults(in []SearchResult) []SearchResult {
	if in == nil {
		return []SearchResult{}
	}
	for i := range in {
		in[i].fillEmpty()
	}
	return in
}
