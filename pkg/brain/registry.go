package brain

import (
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultRegistryCapacity is the number of named clients a Registry keeps
// when no capacity is given.
const DefaultRegistryCapacity = 64

// Registry hands out shared clients by name. It holds at most capacity
// clients; the least recently used one is closed and dropped when a new name
// would exceed that. Removed and cleared clients are closed too.
type Registry struct {
	mu      sync.Mutex
	clients *lru.Cache[string, *Client]
}

// NewRegistry creates a Registry. A capacity of 0 or less uses
// DefaultRegistryCapacity.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultRegistryCapacity
	}
	clients, _ := lru.NewWithEvict[string, *Client](capacity, func(name string, c *Client) {
		slog.Debug("brain_client_released", slog.String("name", name))
		_ = c.Close()
	})
	return &Registry{clients: clients}
}

// GetOrCreate returns the client registered under name, creating it from cfg
// and opts if there is none. cfg is ignored when the client already exists.
func (r *Registry) GetOrCreate(name string, cfg Config, opts ...Option) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients.Get(name); ok {
		return c, nil
	}

	c, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	r.clients.Add(name, c)
	return c, nil
}

// Get returns the client registered under name.
func (r *Registry) Get(name string) (*Client, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients.Get(name)
}

// Remove closes and drops the client registered under name. It reports
// whether there was one.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients.Remove(name)
}

// Clear closes and drops every client.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients.Purge()
}

// Len returns the number of registered clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients.Len()
}

// Names returns the registered names, least recently used first.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients.Keys()
}
