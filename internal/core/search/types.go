package search

import (
	"context"

	"recipe-finder/internal/core/constraint"
)

// DefaultLimit 未指定筆數時回傳的結果數
const DefaultLimit = 10

// Nutrition 搜尋結果中的營養資訊
type Nutrition struct {
	Fat         float64 `json:"fat"`
	SatFat      float64 `json:"sat_fat"`
	Cholesterol float64 `json:"cholesterol"`
	Sodium      float64 `json:"sodium"`
	Fiber       float64 `json:"fiber"`
	Sugar       float64 `json:"sugar"`
	Protein     float64 `json:"protein"`
	Calcium     float64 `json:"calcium"`
	Iron        float64 `json:"iron"`
	Potassium   float64 `json:"potassium"`
}

// Result 單筆搜尋結果
type Result struct {
	Name        string    `json:"name"`
	Time        int       `json:"time"`
	Ingredients []string  `json:"ingredients"`
	Directions  []string  `json:"directions"`
	Image       string    `json:"image"`
	Nutrition   Nutrition `json:"nutrition"`
	Score       float64   `json:"score"`
}

// Extractor 限制條件抽取介面
type Extractor interface {
	Extract(ctx context.Context, query string) constraint.Constraints
}

// Scorer 相似度評分介面
type Scorer interface {
	Similarity(query string) []float64
	Len() int
	VocabularySize() int
}
