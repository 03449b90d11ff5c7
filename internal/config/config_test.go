package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "ANALYZE_COOLDOWN_MS", "DATABASE_URL", "CONFIG_FILE",
		"LLM_PROVIDER", "GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL",
		"OPENAI_API_KEY", "OPENAI_MODEL", "CACHE_BACKEND", "CACHE_TTL_MINUTES", "REDIS_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 3*time.Second, cfg.AnalyzeCooldown)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.GeminiModel)
	assert.Equal(t, "none", cfg.LLM.CacheBackend)
	assert.Empty(t, cfg.LLM.GeminiKey)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ANALYZE_COOLDOWN_MS", "5000")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.AnalyzeCooldown)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.ProviderKey())
}

func TestLoad_AlternateKeyName(t *testing.T) {
	clearEnv(t)

	// GOOGLE_API_KEY is the alternate name for the Gemini credential.
	t.Setenv("GOOGLE_API_KEY", "alt-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "alt-key", cfg.LLM.GeminiKey)

	// The primary name wins when both are set.
	t.Setenv("GEMINI_API_KEY", "primary-key")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "primary-key", cfg.LLM.GeminiKey)
	assert.Equal(t, "primary-key", cfg.ProviderKey())
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  port: 9100\nanalyze:\n  cooldown_ms: 1500\nllm:\n  provider: openai\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.AnalyzeCooldown)
	assert.Equal(t, "openai", cfg.LLM.Provider)

	// Environment still wins over the file.
	t.Setenv("PORT", "9200")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Port)
}

func TestLoad_ConfigFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", "/does/not/exist.yaml")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	cfg.LLM.Provider = "mystery"
	assert.Error(t, cfg.Validate())

	cfg.LLM.Provider = "gemini"
	cfg.LLM.CacheBackend = "redis"
	cfg.LLM.RedisURL = ""
	assert.Error(t, cfg.Validate())

	cfg.LLM.RedisURL = "redis://localhost:6379"
	assert.NoError(t, cfg.Validate())

	cfg.AnalyzeCooldown = -time.Second
	assert.Error(t, cfg.Validate())
}
