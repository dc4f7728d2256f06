package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"recipe-finder/internal/core/ai/provider"
	"recipe-finder/internal/pkg/common"
)

const (
	// DefaultBaseURL OpenRouter API 位址
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModel 預設模型
	DefaultModel = "google/gemini-2.5-flash"
)

// Message 消息結構
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request chat completions 請求
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

// Response chat completions 響應
type Response struct {
	ID      string `json:"id"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// Client OpenRouter API 客戶端
type Client struct {
	client *resty.Client
	config provider.Config
}

// NewClient 創建 OpenRouter 客戶端
func NewClient(cfg provider.Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetHeader("HTTP-Referer", "https://github.com/recipe-finder").
		SetHeader("X-Title", "Recipe Finder")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	common.LogInfo("OpenRouter 客戶端已初始化",
		zap.String("model", cfg.Model),
		zap.String("base_url", cfg.BaseURL),
	)

	return &Client{
		client: client,
		config: cfg,
	}, nil
}

// Generate 生成回應
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := Request{
		Model: c.config.Model,
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	}

	start := time.Now()
	content, err := c.send(ctx, req)
	common.LogAICall(c.config.Model, time.Since(start), err)
	return content, err
}

func (c *Client) send(ctx context.Context, req Request) (string, error) {
	// 發送請求
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	// 解析回應
	var result Response
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("OpenRouter API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	return result.Choices[0].Message.Content, nil
}

// Model 回傳模型名稱
func (c *Client) Model() string {
	return c.config.Model
}

// Close 關閉閒置連線
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
