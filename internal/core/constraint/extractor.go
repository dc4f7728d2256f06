package constraint

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"recipe-finder/internal/pkg/common"
)

// Instruction 抽取限制條件的固定指示
const Instruction = "Extract structured numeric recipe constraints from the user's request. " +
	"Return JSON ONLY with these possible keys: " +
	"max_time, min_protein, max_fat, max_sat_fat, max_cholesterol, max_sodium, " +
	"min_fiber, max_sugar, min_calcium, min_iron, min_potassium, " +
	"available_ingredients (list of strings). " +
	"Leave fields null if not specified. Do NOT include explanations."

// Oracle 語言模型呼叫介面
type Oracle interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Extractor 透過語言模型將自然語言查詢轉為限制條件
type Extractor struct {
	oracle      Oracle
	unavailable sync.Once
}

// NewExtractor 創建抽取器；oracle 為 nil 時永遠回傳預設值
func NewExtractor(oracle Oracle) *Extractor {
	return &Extractor{oracle: oracle}
}

// BuildPrompt 組合指示與使用者查詢
func BuildPrompt(query string) string {
	return Instruction + "\nUser Prompt: " + query
}

// Extract 抽取限制條件；任何失敗都回傳 Default()
func (e *Extractor) Extract(ctx context.Context, query string) Constraints {
	if e.oracle == nil {
		e.logUnavailable()
		return Default()
	}

	reply, err := e.oracle.Generate(ctx, BuildPrompt(query))
	if err != nil {
		if errors.Is(err, common.ErrOracleUnavailable) {
			e.logUnavailable()
		} else {
			common.LogWarn("Constraint extraction error", zap.Error(err))
		}
		return Default()
	}

	c, err := Decode(reply)
	if err != nil {
		common.LogWarn("無法解析模型回覆，使用預設條件",
			zap.Error(err),
			zap.Int("reply_length", len(reply)),
		)
		return Default()
	}

	common.LogDebug("已抽取限制條件", zap.Any("constraints", c))
	return c
}

// Decode 從模型回覆中取出 JSON 物件並解析；鍵未加引號時重試一次
func Decode(reply string) (Constraints, error) {
	raw, ok := common.ExtractJSONObject(reply)
	if !ok {
		return Default(), fmt.Errorf("no JSON object in reply")
	}

	var c Constraints
	if err := common.ParseJSON(raw, &c); err != nil {
		c = Constraints{}
		if retryErr := common.ParseJSON(common.QuoteJSONKeys(raw), &c); retryErr != nil {
			return Default(), fmt.Errorf("failed to decode constraints: %w", err)
		}
	}

	c.normalize()
	return c, nil
}

func (e *Extractor) logUnavailable() {
	e.unavailable.Do(func() {
		common.LogWarn("未設定語言模型，限制條件抽取將使用預設值")
	})
}
