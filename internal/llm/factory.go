package llm

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Lohith2005/AICodeAnalyzer/internal/config"
)

// NewClientFromConfig builds the provider client selected by config,
// wrapped with the configured response cache.
func NewClientFromConfig(cfg *config.Config) (Client, error) {
	var client Client
	switch Provider(cfg.LLM.Provider) {
	case ProviderGemini:
		client = NewGeminiClient(cfg.LLM.GeminiKey, cfg.LLM.GeminiModel)
	case ProviderOpenAI:
		client = NewOpenAIClient(cfg.LLM.OpenAIKey, cfg.LLM.OpenAIModel)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.LLM.Provider)
	}

	cache, err := createCache(cfg)
	if err != nil {
		return nil, err
	}
	if _, ok := cache.(*NullCache); ok {
		return client, nil
	}

	log.Info().
		Str("provider", cfg.LLM.Provider).
		Str("cache", cfg.LLM.CacheBackend).
		Msg("llm client initialized")
	return NewCachedClient(client, cache, cfg.LLM.CacheTTL), nil
}

func createCache(cfg *config.Config) (Cache, error) {
	switch cfg.LLM.CacheBackend {
	case "memory":
		return NewMemoryCache(0, cfg.LLM.CacheTTL), nil
	case "redis":
		cache, err := NewRedisCache(cfg.LLM.RedisURL, "llmcache", cfg.LLM.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis cache: %w", err)
		}
		return cache, nil
	case "none", "":
		return &NullCache{}, nil
	default:
		log.Warn().Str("type", cfg.LLM.CacheBackend).Msg("unknown cache type, caching disabled")
		return &NullCache{}, nil
	}
}
