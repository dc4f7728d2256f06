package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"
)

// Cache 模型回覆快取介面；未命中時回傳 common.ErrCacheMiss
type Cache interface {
	Get(ctx context.Context, prompt string) (string, error)
	Set(ctx context.Context, prompt, value string) error
	Stats() map[string]interface{}
	Close() error
}

// New 依設定建立快取；停用時回傳 nil
func New(ctx context.Context, cfg *config.Config) (Cache, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		svc, err := NewService(ctx, cfg.Cache, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return svc, nil
	case config.CacheBackendMemory, "":
		return NewManager(cfg.Cache), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// generateKey 生成緩存鍵
func generateKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "text:" + hex.EncodeToString(hash[:])
}
