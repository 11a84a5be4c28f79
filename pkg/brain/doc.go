// Package brain is a typed client for the Brain AI memory and reasoning service.
//
// A Client wraps the service's JSON-over-HTTP API: memories, learning
// patterns, reasoning, feedback, vector storage and search, and the
// knowledge graph. Every remote call takes a context and carries a fresh
// X-Request-ID. Reads (gets, searches, neighbors, reasoning) are retried with
// exponential backoff when the failure is transient (timeouts, 5xx, 429);
// writes are sent once so a late failure never applies them twice. A circuit
// breaker fails fast once the service has failed repeatedly.
//
// Failures are reported as *Error values with stable codes. Use errors.Is with
// ErrNotFound, ErrDimensionMismatch, ErrInvalidInput, or ErrClientClosed to
// branch on them.
//
// Registry keeps a bounded set of named clients and closes any client it
// evicts. Vector helpers live in the sibling vecmath package.
package brain
