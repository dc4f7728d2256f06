package provider

import (
	"context"
	"time"
)

// Provider 定義語言模型提供者介面
type Provider interface {
	// Generate 送出提示詞並回傳模型的文字回覆
	Generate(ctx context.Context, prompt string) (string, error)

	// Model 目前使用的模型名稱
	Model() string

	// Close 關閉提供者連接
	Close() error
}

// Config 定義提供者配置
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}
