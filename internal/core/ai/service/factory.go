package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"recipe-finder/internal/core/ai/gemini"
	"recipe-finder/internal/core/ai/openrouter"
	"recipe-finder/internal/core/ai/provider"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"
)

// NewProvider 依設定建立語言模型提供者；未設定 API Key 時回傳 nil
func NewProvider(ctx context.Context, cfg *config.Config) (provider.Provider, error) {
	switch cfg.Oracle.Provider {
	case config.ProviderGemini:
		if cfg.Gemini.APIKey == "" {
			common.LogWarn("GEMINI_API_KEY 未設定，限制條件抽取將使用預設值")
			return nil, nil
		}
		client, err := gemini.NewClient(ctx, provider.Config{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			Timeout:     cfg.Oracle.Timeout,
			Temperature: cfg.Oracle.Temperature,
		})
		if err != nil {
			return nil, err
		}
		return client, nil

	case config.ProviderOpenRouter:
		if cfg.OpenRouter.APIKey == "" {
			common.LogWarn("OPENROUTER_API_KEY 未設定，限制條件抽取將使用預設值")
			return nil, nil
		}
		client, err := openrouter.NewClient(provider.Config{
			APIKey:      cfg.OpenRouter.APIKey,
			Model:       cfg.OpenRouter.Model,
			BaseURL:     cfg.OpenRouter.BaseURL,
			Timeout:     cfg.Oracle.Timeout,
			Temperature: cfg.Oracle.Temperature,
			MaxTokens:   cfg.OpenRouter.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
		common.LogDebug("OpenRouter API Key", zap.String("key", config.MaskAPIKey(cfg.OpenRouter.APIKey)))
		return client, nil

	default:
		return nil, fmt.Errorf("unknown oracle provider %q", cfg.Oracle.Provider)
	}
}
