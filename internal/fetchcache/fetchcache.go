// Package fetchcache fetches static assets over HTTP and keeps a local copy
// so they remain available offline.
package fetchcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheStore persists fetched bodies.
type CacheStore interface {
	GetCache(ctx context.Context, cache, url string) ([]byte, bool, error)
	PutCache(ctx context.Context, cache, url string, body []byte) error
}

// Config configures the client.
type Config struct {
	// BaseURL is prefixed to every requested path.
	BaseURL string
	// Timeout bounds a single request. Default: 15s.
	Timeout time.Duration
	// MaxBytes bounds a response body. Default: 16MB.
	MaxBytes int64
	// MemoryEntries sizes the in-memory cache. Default: 32.
	MemoryEntries int
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = 16 * 1024 * 1024
	}
	if c.MemoryEntries <= 0 {
		c.MemoryEntries = 32
	}
}

// Client fetches assets network-first and falls back to its cache when the
// network is unreachable.
type Client struct {
	http   *http.Client
	config Config
	store  CacheStore
	mem    *lru.Cache[string, []byte]
	log    hclog.Logger

	prefetches sync.WaitGroup
}

// New creates a Client. store may be nil, in which case only the in-memory
// cache is used.
func New(cfg Config, store CacheStore, logger hclog.Logger) (*Client, error) {
	cfg.defaults()
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	mem, err := lru.New[string, []byte](cfg.MemoryEntries)
	if err != nil {
		return nil, fmt.Errorf("memory cache: %w", err)
	}
	return &Client{
		http:   &http.Client{Timeout: cfg.Timeout},
		config: cfg,
		store:  store,
		mem:    mem,
		log:    logger,
	}, nil
}

// URL returns the absolute URL for path.
func (c *Client) URL(path string) string {
	return strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// FetchAndCache returns the body of path, caching it under cacheName. It
// never fails: it returns nil when the body is unavailable. Network failures
// fall back to the cache silently; any other failure is logged.
func (c *Client) FetchAndCache(ctx context.Context, cacheName, path string) []byte {
	url := c.URL(path)

	body, err := c.get(ctx, url)
	if err == nil {
		c.remember(ctx, cacheName, url, body)
		return body
	}

	var status *statusError
	if errors.As(err, &status) {
		c.log.Warn("request failed", "url", url, "status", status.code)
		return nil
	}
	if ctx.Err() != nil {
		return nil
	}
	return c.cached(ctx, cacheName, url)
}

// Prefetch fetches path in the background so it is cached for later use.
func (c *Client) Prefetch(cacheName, path string) {
	c.prefetches.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.config.Timeout)
		defer cancel()
		c.FetchAndCache(ctx, cacheName, path)
	})
}

// Wait blocks until every started prefetch has finished.
func (c *Client) Wait() {
	c.prefetches.Wait()
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("http %d", e.code)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (c *Client) remember(ctx context.Context, cacheName, url string, body []byte) {
	c.mem.Add(memKey(cacheName, url), body)
	if c.store == nil {
		return
	}
	if err := c.store.PutCache(ctx, cacheName, url, body); err != nil {
		c.log.Warn("cache write failed", "cache", cacheName, "url", url, "error", err)
	}
}

func (c *Client) cached(ctx context.Context, cacheName, url string) []byte {
	if body, ok := c.mem.Get(memKey(cacheName, url)); ok {
		return body
	}
	if c.store == nil {
		return nil
	}
	body, ok, err := c.store.GetCache(ctx, cacheName, url)
	if err != nil {
		c.log.Warn("cache read failed", "cache", cacheName, "url", url, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	c.mem.Add(memKey(cacheName, url), body)
	return body
}

func memKey(cacheName, url string) string {
	return cacheName + " " + url
}
