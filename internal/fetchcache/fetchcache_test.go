package fetchcache

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string][]byte)}
}

func (m *memStore) GetCache(_ context.Context, cache, url string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.entries[cache+"|"+url]
	return b, ok, nil
}

func (m *memStore) PutCache(_ context.Context, cache, url string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[cache+"|"+url] = body
	return nil
}

func (m *memStore) has(cache, url string) bool {
	_, ok, _ := m.GetCache(context.Background(), cache, url)
	return ok
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/_assets/optional/versions/NET.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"book_names":{}}`))
	})
	mux.HandleFunc("/_assets/optional/puzzles/007.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchAndCacheStoresBody(t *testing.T) {
	srv := newServer(t)
	st := newMemStore()
	c, err := New(Config{BaseURL: srv.URL}, st, nil)
	require.NoError(t, err)

	body := c.FetchAndCache(context.Background(), "bible_versions", "/_assets/optional/versions/NET.json")
	assert.JSONEq(t, `{"book_names":{}}`, string(body))
	assert.True(t, st.has("bible_versions", srv.URL+"/_assets/optional/versions/NET.json"))
}

func TestFetchAndCacheFallsBackWhenOffline(t *testing.T) {
	srv := newServer(t)
	st := newMemStore()
	c, err := New(Config{BaseURL: srv.URL}, st, nil)
	require.NoError(t, err)

	ctx := context.Background()
	path := "/_assets/optional/versions/NET.json"
	require.NotNil(t, c.FetchAndCache(ctx, "bible_versions", path))

	srv.Close()
	body := c.FetchAndCache(ctx, "bible_versions", path)
	assert.JSONEq(t, `{"book_names":{}}`, string(body))

	// A fresh client only has the durable copy.
	fresh, err := New(Config{BaseURL: srv.URL}, st, nil)
	require.NoError(t, err)
	body = fresh.FetchAndCache(ctx, "bible_versions", path)
	assert.JSONEq(t, `{"book_names":{}}`, string(body))
}

func TestFetchAndCacheOfflineWithoutCopy(t *testing.T) {
	srv := newServer(t)
	srv.Close()

	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Trace})
	c, err := New(Config{BaseURL: srv.URL}, newMemStore(), logger)
	require.NoError(t, err)

	assert.Nil(t, c.FetchAndCache(context.Background(), "bible_versions", "/x.json"))
	assert.Empty(t, buf.String(), "network failures are not logged")
}

func TestFetchAndCacheLogsHTTPFailures(t *testing.T) {
	srv := newServer(t)
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Trace})
	st := newMemStore()
	c, err := New(Config{BaseURL: srv.URL}, st, logger)
	require.NoError(t, err)

	assert.Nil(t, c.FetchAndCache(context.Background(), "bible_versions", "/missing.json"))
	assert.Contains(t, buf.String(), "request failed")
	assert.Contains(t, buf.String(), "404")
	assert.False(t, st.has("bible_versions", srv.URL+"/missing.json"))
}

func TestFetchAndCacheWithoutStore(t *testing.T) {
	srv := newServer(t)
	c, err := New(Config{BaseURL: srv.URL}, nil, nil)
	require.NoError(t, err)

	ctx := context.Background()
	path := "/_assets/optional/puzzles/007.jpg"
	require.Equal(t, "jpeg", string(c.FetchAndCache(ctx, "puzzles", path)))
	srv.Close()
	assert.Equal(t, "jpeg", string(c.FetchAndCache(ctx, "puzzles", path)))
}

func TestPrefetch(t *testing.T) {
	srv := newServer(t)
	st := newMemStore()
	c, err := New(Config{BaseURL: srv.URL}, st, nil)
	require.NoError(t, err)

	c.Prefetch("puzzles", "_assets/optional/puzzles/007.jpg")
	c.Wait()
	assert.True(t, st.has("puzzles", srv.URL+"/_assets/optional/puzzles/007.jpg"))
}

func TestURL(t *testing.T) {
	c, err := New(Config{BaseURL: "https://example.org/"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/a/b.json", c.URL("/a/b.json"))
	assert.Equal(t, "https://example.org/a/b.json", c.URL("a/b.json"))
}
