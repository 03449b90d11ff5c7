package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port int
	Env  string

	// Cooldown between accepted analyze requests (process-wide)
	AnalyzeCooldown time.Duration

	// Database (optional; in-memory store when empty)
	DatabaseURL string

	// LLM
	LLM LLMConfig
}

// LLMConfig holds LLM-related configuration
type LLMConfig struct {
	// Provider: gemini or openai
	Provider string

	// Gemini settings. The key is read from GEMINI_API_KEY with
	// GOOGLE_API_KEY as the alternate name.
	GeminiKey   string
	GeminiModel string

	// OpenAI settings
	OpenAIKey   string
	OpenAIModel string

	// Response cache: none, memory, redis
	CacheBackend string
	CacheTTL     time.Duration
	RedisURL     string
}

// fileConfig is the optional YAML file shape; environment variables win.
type fileConfig struct {
	Server struct {
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`
	Analyze struct {
		CooldownMS int `yaml:"cooldown_ms"`
	} `yaml:"analyze"`
	LLM struct {
		Provider     string `yaml:"provider"`
		GeminiModel  string `yaml:"gemini_model"`
		OpenAIModel  string `yaml:"openai_model"`
		CacheBackend string `yaml:"cache_backend"`
		CacheTTLMin  int    `yaml:"cache_ttl_minutes"`
	} `yaml:"llm"`
}

// Load loads configuration from an optional YAML file and environment
// variables. A .env file is honored outside production.
func Load() (*Config, error) {
	if os.Getenv("ENV") != "production" {
		// Best effort; system environment is the source of truth.
		_ = godotenv.Load()
	}

	var fc fileConfig
	if path := getEnv("CONFIG_FILE", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg := &Config{
		Port:            getEnvInt("PORT", firstInt(fc.Server.Port, 8080)),
		Env:             getEnv("ENV", first(fc.Server.Env, "development")),
		AnalyzeCooldown: time.Duration(getEnvInt("ANALYZE_COOLDOWN_MS", firstInt(fc.Analyze.CooldownMS, 3000))) * time.Millisecond,
		DatabaseURL:     getEnv("DATABASE_URL", ""),

		LLM: LLMConfig{
			Provider:     getEnv("LLM_PROVIDER", first(fc.LLM.Provider, "gemini")),
			GeminiKey:    getEnvAlt("GEMINI_API_KEY", "GOOGLE_API_KEY"),
			GeminiModel:  getEnv("GEMINI_MODEL", first(fc.LLM.GeminiModel, "gemini-1.5-flash")),
			OpenAIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:  getEnv("OPENAI_MODEL", first(fc.LLM.OpenAIModel, "gpt-4o-mini")),
			CacheBackend: getEnv("CACHE_BACKEND", first(fc.LLM.CacheBackend, "none")),
			CacheTTL:     time.Duration(getEnvInt("CACHE_TTL_MINUTES", firstInt(fc.LLM.CacheTTLMin, 24*60))) * time.Minute,
			RedisURL:     getEnv("REDIS_URL", ""),
		},
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	if c.LLM.CacheBackend == "redis" && c.LLM.RedisURL == "" {
		return fmt.Errorf("REDIS_URL required when CACHE_BACKEND is redis")
	}

	if c.AnalyzeCooldown < 0 {
		return fmt.Errorf("ANALYZE_COOLDOWN_MS must not be negative")
	}

	return nil
}

// ProviderKey returns the credential for the configured provider.
func (c *Config) ProviderKey() string {
	if c.LLM.Provider == "openai" {
		return c.LLM.OpenAIKey
	}
	return c.LLM.GeminiKey
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAlt reads the first non-empty value among alternately named
// variables.
func getEnvAlt(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func first(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func firstInt(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}
