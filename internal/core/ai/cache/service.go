package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"
)

// Service Redis 緩存服務
type Service struct {
	client *redis.Client
	config config.CacheConfig
	prefix string
	hits   atomic.Int64
	misses atomic.Int64
}

// NewService 創建 Redis 緩存服務
func NewService(ctx context.Context, cfg config.CacheConfig, redisCfg config.RedisConfig) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 快取已連線",
		zap.String("addr", redisCfg.Addr),
		zap.Int("db", redisCfg.DB),
		zap.Duration("存活時間", cfg.TTL),
	)

	return &Service{
		client: client,
		config: cfg,
		prefix: redisCfg.Prefix,
	}, nil
}

// Get 獲取緩存
func (s *Service) Get(ctx context.Context, prompt string) (string, error) {
	val, err := s.client.Get(ctx, s.key(prompt)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.misses.Add(1)
			common.LogCacheMiss("redis")
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	s.hits.Add(1)
	common.LogCacheHit("redis")
	return val, nil
}

// Set 設置緩存
func (s *Service) Set(ctx context.Context, prompt, value string) error {
	if err := s.client.Set(ctx, s.key(prompt), value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Stats 獲取緩存統計信息
func (s *Service) Stats() map[string]interface{} {
	return map[string]interface{}{
		"backend": config.CacheBackendRedis,
		"hits":    s.hits.Load(),
		"misses":  s.misses.Load(),
	}
}

// Close 關閉 Redis 連線
func (s *Service) Close() error {
	return s.client.Close()
}

func (s *Service) key(prompt string) string {
	return s.prefix + generateKey(prompt)
}
