package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"recipe-finder/internal/core/ai/provider"
	"recipe-finder/internal/pkg/common"
)

// DefaultModel 預設的 Gemini 模型
const DefaultModel = "gemini-2.5-flash"

// Client Gemini API 客戶端
type Client struct {
	client      *genai.Client
	model       string
	timeout     time.Duration
	temperature float64
}

// NewClient 創建 Gemini 客戶端
func NewClient(ctx context.Context, cfg provider.Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	common.LogInfo("Gemini 客戶端已初始化",
		zap.String("model", model),
		zap.Duration("timeout", cfg.Timeout),
	)

	return &Client{
		client:      client,
		model:       model,
		timeout:     cfg.Timeout,
		temperature: cfg.Temperature,
	}, nil
}

// Generate 生成回應
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.temperature)),
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		common.LogAICall(c.model, time.Since(start), err)
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		err := fmt.Errorf("empty response from gemini")
		common.LogAICall(c.model, time.Since(start), err)
		return "", err
	}

	common.LogAICall(c.model, time.Since(start), nil)
	return text, nil
}

// responseText 合併所有候選回覆中的文字片段
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				b.WriteString(part.Text)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Model 回傳模型名稱
func (c *Client) Model() string {
	return c.model
}

// Close genai.Client 不需要明確關閉
func (c *Client) Close() error {
	c.client = nil
	return nil
}
