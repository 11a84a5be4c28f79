package brain

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(fs *fakeService) Config {
	return Config{BaseURL: fs.URL}
}

func TestRegistry_GetOrCreateReturnsSameClient(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {})
	reg := NewRegistry(4)
	defer reg.Clear()

	// Given: a client created under a name
	a, err := reg.GetOrCreate("main", testConfig(fs))
	require.NoError(t, err)

	// When: asking again with a different config
	b, err := reg.GetOrCreate("main", Config{BaseURL: "http://other.invalid"})
	require.NoError(t, err)

	// Then: the original client is returned
	assert.Same(t, a, b)
	assert.Equal(t, fs.URL, b.Config().BaseURL)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_CreateErrorIsNotCached(t *testing.T) {
	reg := NewRegistry(4)

	_, err := reg.GetOrCreate("bad", Config{})

	require.Error(t, err)
	assert.Equal(t, 0, reg.Len())
	_, ok := reg.Get("bad")
	assert.False(t, ok)
}

func TestRegistry_EvictionClosesClient(t *testing.T) {
	// Given: a registry with room for two clients
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "healthy"})
	})
	reg := NewRegistry(2)
	defer reg.Clear()

	first, err := reg.GetOrCreate("first", testConfig(fs))
	require.NoError(t, err)
	_, err = reg.GetOrCreate("second", testConfig(fs))
	require.NoError(t, err)

	// When: a third name is added
	_, err = reg.GetOrCreate("third", testConfig(fs))
	require.NoError(t, err)

	// Then: the least recently used client is dropped and closed
	assert.Equal(t, []string{"second", "third"}, reg.Names())
	_, err = first.Status(context.Background())
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestRegistry_GetRefreshesRecency(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {})
	reg := NewRegistry(2)
	defer reg.Clear()

	_, _ = reg.GetOrCreate("a", testConfig(fs))
	_, _ = reg.GetOrCreate("b", testConfig(fs))

	_, ok := reg.Get("a")
	require.True(t, ok)
	_, _ = reg.GetOrCreate("c", testConfig(fs))

	assert.Equal(t, []string{"a", "c"}, reg.Names())
}

func TestRegistry_RemoveAndClearCloseClients(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {})
	reg := NewRegistry(0)

	a, _ := reg.GetOrCreate("a", testConfig(fs))
	b, _ := reg.GetOrCreate("b", testConfig(fs))

	assert.True(t, reg.Remove("a"))
	assert.False(t, reg.Remove("a"))
	assert.True(t, a.isClosed())
	assert.False(t, b.isClosed())

	reg.Clear()
	assert.True(t, b.isClosed())
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Names())
}

func TestRegistry_ConcurrentGetOrCreate(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {})
	reg := NewRegistry(8)
	defer reg.Clear()

	var wg sync.WaitGroup
	clients := make([]*Client, 20)
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := reg.GetOrCreate("shared", testConfig(fs))
			assert.NoError(t, err)
			clients[i] = c
		}(i)
	}
	wg.Wait()

	for _, c := range clients {
		assert.Same(t, clients[0], c)
	}
	assert.Equal(t, 1, reg.Len())
}
