package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache provides caching for LLM responses
type Cache interface {
	// Get retrieves a cached response
	Get(ctx context.Context, key string) (*Response, bool)
	// Set stores a response in cache
	Set(ctx context.Context, key string, resp *Response, ttl time.Duration) error
	// Stats returns cache statistics
	Stats() CacheStats
}

// CacheStats holds cache statistics
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int64
}

// MemoryCache is an in-memory cache for LLM responses
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	maxSize int
	ttl     time.Duration
	stats   CacheStats
}

type cacheEntry struct {
	response  *Response
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(maxSize int, ttl time.Duration) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &MemoryCache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Get retrieves a cached response
func (c *MemoryCache) Get(ctx context.Context, key string) (*Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}

	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		c.stats.Misses++
		return nil, false
	}

	c.stats.Hits++
	return entry.response, true
}

// Set stores a response in cache
func (c *MemoryCache) Set(ctx context.Context, key string, resp *Response, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = &cacheEntry{
		response:  resp,
		expiresAt: time.Now().Add(ttl),
	}
	c.stats.Size = int64(len(c.entries))
	return nil
}

// Stats returns cache statistics
func (c *MemoryCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// evictOldest removes the entry closest to expiry
func (c *MemoryCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.entries {
		if oldestKey == "" || entry.expiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.expiresAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// RedisCache implements Cache backed by Redis, for deployments where
// several processes should share one response cache.
type RedisCache struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	statsMu sync.RWMutex
	stats   CacheStats
}

// NewRedisCache creates a Redis-backed cache from a redis:// URL
func NewRedisCache(redisURL, prefix string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if prefix == "" {
		prefix = "llmcache"
	}
	return &RedisCache{
		client: redis.NewClient(opts),
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Response, bool) {
	data, err := c.client.Get(ctx, c.prefix+":"+key).Bytes()
	if err != nil {
		c.statsMu.Lock()
		c.stats.Misses++
		c.statsMu.Unlock()
		if err != redis.Nil {
			log.Warn().Err(err).Msg("redis cache get failed")
		}
		return nil, false
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false
	}

	c.statsMu.Lock()
	c.stats.Hits++
	c.statsMu.Unlock()
	return &resp, true
}

func (c *RedisCache) Set(ctx context.Context, key string, resp *Response, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+":"+key, data, ttl).Err()
}

func (c *RedisCache) Stats() CacheStats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	return c.stats
}

// NullCache is a no-op cache for testing or when caching is disabled
type NullCache struct{}

func (c *NullCache) Get(ctx context.Context, key string) (*Response, bool) {
	return nil, false
}

func (c *NullCache) Set(ctx context.Context, key string, resp *Response, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Stats() CacheStats {
	return CacheStats{}
}

// GenerateCacheKey creates a deterministic cache key from a request
func GenerateCacheKey(req *Request) string {
	keyData := struct {
		System      string
		Messages    []Message
		Temperature float64
		JSONMode    bool
	}{
		System:      req.System,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		JSONMode:    req.JSONMode,
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// CachedClient wraps a Client with response caching
type CachedClient struct {
	client Client
	cache  Cache
	ttl    time.Duration
}

// NewCachedClient creates a client with caching enabled
func NewCachedClient(client Client, cache Cache, ttl time.Duration) *CachedClient {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedClient{client: client, cache: cache, ttl: ttl}
}

func (c *CachedClient) Name() Provider {
	return c.client.Name()
}

func (c *CachedClient) Available() bool {
	return c.client.Available()
}

// Complete sends a completion request, serving repeats from cache
func (c *CachedClient) Complete(ctx context.Context, req *Request) (*Response, error) {
	cacheKey := GenerateCacheKey(req)

	if cached, ok := c.cache.Get(ctx, cacheKey); ok {
		cached.Cached = true
		log.Debug().Str("provider", string(c.client.Name())).Msg("llm cache hit")
		return cached, nil
	}

	resp, err := c.client.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, cacheKey, resp, c.ttl); err != nil {
		log.Warn().Err(err).Msg("failed to cache response")
	}

	return resp, nil
}
