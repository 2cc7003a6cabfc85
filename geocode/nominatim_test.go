package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memCache) Set(_ context.Context, key, address string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = address
}

func TestReverseUsesDisplayNameAndCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "12.9716", r.URL.Query().Get("lat"))
		assert.Equal(t, "77.5946", r.URL.Query().Get("lon"))
		_, _ = w.Write([]byte(`{"display_name":"MG Road, Bengaluru"}`))
	}))
	defer srv.Close()

	cache := &memCache{data: map[string]string{}}
	c := NewClient(srv.URL, time.Second, cache, nil)

	assert.Equal(t, "MG Road, Bengaluru", c.Reverse(context.Background(), 12.9716, 77.5946))
	assert.Equal(t, "MG Road, Bengaluru", c.Reverse(context.Background(), 12.9716, 77.5946))
	assert.Equal(t, 1, calls)
}

func TestReverseFallsBackToCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, nil)
	assert.Equal(t, "12.97160, 77.59460", c.Reverse(context.Background(), 12.9716, 77.5946))
}

func TestReverseFallsBackOnEmptyAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, nil)
	assert.Equal(t, "1.00000, 2.00000", c.Reverse(context.Background(), 1, 2))
}
