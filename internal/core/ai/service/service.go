package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"recipe-finder/internal/core/ai/cache"
	"recipe-finder/internal/core/ai/provider"
	"recipe-finder/internal/pkg/common"
)

// Service 以快取包裝語言模型提供者
type Service struct {
	provider provider.Provider
	cache    cache.Cache
}

// NewService 創建 AI 服務；cache 可為 nil
func NewService(p provider.Provider, c cache.Cache) *Service {
	return &Service{
		provider: p,
		cache:    c,
	}
}

// Generate 統一對外方法：先查快取，未命中才呼叫模型
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	if s.provider == nil {
		return "", common.ErrOracleUnavailable
	}

	// 統一 prompt 格式，確保快取 key 一致
	key := common.NormalizePrompt(prompt)

	if s.cache != nil {
		val, err := s.cache.Get(ctx, key)
		if err == nil && val != "" {
			return val, nil
		}
		if err != nil && !errors.Is(err, common.ErrCacheMiss) {
			common.LogWarn("讀取快取失敗", zap.Error(err))
		}
	}

	content, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return "", common.ErrAIServiceError.Wrap(err)
	}

	// 只快取含 JSON 物件的回覆
	if s.cache != nil {
		if _, ok := common.ExtractJSONObject(content); !ok {
			common.LogWarn("模型回覆不含 JSON 物件，不寫入快取", zap.Int("length", len(content)))
		} else if err := s.cache.Set(ctx, key, content); err != nil {
			common.LogWarn("寫入快取失敗", zap.Error(err))
		}
	}

	return content, nil
}

// Model 回傳模型名稱
func (s *Service) Model() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Model()
}

// Available 是否已設定語言模型
func (s *Service) Available() bool {
	return s.provider != nil
}

// CacheStats 快取統計，未啟用時回傳 nil
func (s *Service) CacheStats() map[string]interface{} {
	if s.cache == nil {
		return nil
	}
	return s.cache.Stats()
}

// Close 關閉模型與快取
func (s *Service) Close() error {
	var errs []error
	if s.provider != nil {
		errs = append(errs, s.provider.Close())
	}
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	return errors.Join(errs...)
}
