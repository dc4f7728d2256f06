package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"recipe-finder/internal/pkg/common"
)

// 支援的語言模型提供者
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// 支援的快取後端
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config 應用配置
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Dataset    DatasetConfig    `mapstructure:"dataset"`
	Frontend   FrontendConfig   `mapstructure:"frontend"`
	Search     SearchConfig     `mapstructure:"search"`
	Oracle     OracleConfig     `mapstructure:"oracle"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Redis      RedisConfig      `mapstructure:"redis"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	LogLevel   string           `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// DatasetConfig 資料集路徑
type DatasetConfig struct {
	RawPath   string `mapstructure:"raw_path"`
	CleanPath string `mapstructure:"clean_path"`
}

// FrontendConfig 前端靜態檔案設定
type FrontendConfig struct {
	Dir string `mapstructure:"dir"`
}

// SearchConfig 搜尋設定
type SearchConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
}

// OracleConfig 限制條件抽取所用的語言模型
type OracleConfig struct {
	Provider    string        `mapstructure:"provider"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float64       `mapstructure:"temperature"`
}

// GeminiConfig Gemini 配置
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// OpenRouterConfig OpenRouter 配置
type OpenRouterConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定（.env 為選用）
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return Load(viper.New())
}

// Load 從指定的 viper 實例解析設定
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	v.BindEnv("dataset.raw_path", "DATASET_RAW_PATH")
	v.BindEnv("dataset.clean_path", "DATASET_CLEAN_PATH")
	v.BindEnv("frontend.dir", "FRONTEND_DIR")
	v.BindEnv("oracle.provider", "ORACLE_PROVIDER")
	v.BindEnv("oracle.timeout", "ORACLE_TIMEOUT")
	v.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("gemini.model", "GEMINI_MODEL")
	v.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	v.BindEnv("openrouter.model", "OPENROUTER_MODEL")
	v.BindEnv("openrouter.max_tokens", "MODEL_MAX_TOKENS")
	v.BindEnv("cache.enabled", "CACHE_ENABLED")
	v.BindEnv("cache.backend", "CACHE_BACKEND")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	v.BindEnv("log_level", "LOG_LEVEL")

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Oracle.Provider = strings.ToLower(strings.TrimSpace(config.Oracle.Provider))
	config.Cache.Backend = strings.ToLower(strings.TrimSpace(config.Cache.Backend))

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-finder")

	// 伺服器設定
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.max_body_bytes", 1<<20)

	// 資料集與前端
	v.SetDefault("dataset.raw_path", "recipes.csv")
	v.SetDefault("dataset.clean_path", "recipes_clean.csv")
	v.SetDefault("frontend.dir", "frontend/build")
	v.SetDefault("search.default_limit", 10)

	// 語言模型
	v.SetDefault("oracle.provider", ProviderGemini)
	v.SetDefault("oracle.timeout", "60s")
	v.SetDefault("oracle.temperature", 0.0)
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("openrouter.model", "google/gemini-2.5-flash")
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.max_tokens", 512)

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_interval", "10m")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "recipe-finder:constraints:")

	// 限流設定
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 {
		return common.NewValidationError("server port is required")
	}
	if config.Dataset.CleanPath == "" {
		return common.NewValidationError("dataset clean path is required")
	}

	switch config.Oracle.Provider {
	case ProviderGemini, ProviderOpenRouter:
	default:
		return common.NewValidationError(fmt.Sprintf("unknown oracle provider %q", config.Oracle.Provider))
	}

	if config.Cache.Enabled {
		switch config.Cache.Backend {
		case CacheBackendMemory:
			if config.Cache.MaxSize <= 0 {
				return common.NewValidationError("invalid cache max size")
			}
			if config.Cache.CleanupInterval <= 0 {
				return common.NewValidationError("invalid cache cleanup interval")
			}
		case CacheBackendRedis:
			if config.Redis.Addr == "" {
				return common.NewValidationError("redis address is required for redis cache")
			}
		default:
			return common.NewValidationError(fmt.Sprintf("unknown cache backend %q", config.Cache.Backend))
		}
		if config.Cache.TTL <= 0 {
			return common.NewValidationError("invalid cache ttl")
		}
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0 {
			return common.NewValidationError("invalid rate limit settings")
		}
	}

	return nil
}
