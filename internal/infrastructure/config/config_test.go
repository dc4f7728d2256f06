package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-finder/internal/pkg/common"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "recipes.csv", cfg.Dataset.RawPath)
	assert.Equal(t, "recipes_clean.csv", cfg.Dataset.CleanPath)
	assert.Equal(t, ProviderGemini, cfg.Oracle.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 60*time.Second, cfg.Oracle.Timeout)
	assert.Equal(t, 10, cfg.Search.DefaultLimit)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ORACLE_PROVIDER", "OpenRouter")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test-key-123456")
	t.Setenv("DATASET_CLEAN_PATH", "/tmp/clean.csv")
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("CACHE_ENABLED", "false")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenRouter, cfg.Oracle.Provider)
	assert.Equal(t, "sk-or-test-key-123456", cfg.OpenRouter.APIKey)
	assert.Equal(t, "/tmp/clean.csv", cfg.Dataset.CleanPath)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("ORACLE_PROVIDER", "carrier-pigeon")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown oracle provider")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8000},
			Dataset: DatasetConfig{CleanPath: "recipes_clean.csv"},
			Oracle:  OracleConfig{Provider: ProviderGemini},
			Cache: CacheConfig{
				Enabled:         true,
				Backend:         CacheBackendMemory,
				MaxSize:         10,
				TTL:             time.Minute,
				CleanupInterval: time.Minute,
			},
		}
	}

	require.NoError(t, validateConfig(valid()))

	cfg := valid()
	cfg.Server.Port = 0
	err := validateConfig(cfg)
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))

	cfg = valid()
	cfg.Cache.Backend = "disk"
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Cache.Backend = CacheBackendRedis
	cfg.Redis.Addr = ""
	assert.Error(t, validateConfig(cfg))

	cfg = valid()
	cfg.Cache.Enabled = false
	cfg.Cache.TTL = 0
	assert.NoError(t, validateConfig(cfg))

	cfg = valid()
	cfg.RateLimit = RateLimitConfig{Enabled: true, Requests: 0, Window: time.Minute}
	assert.Error(t, validateConfig(cfg))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", MaskAPIKey("abcdefghijklmnopqrstuvwxyz"))
}
