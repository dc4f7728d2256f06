package search

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"time"

	"go.uber.org/zap"

	"recipe-finder/internal/core/dataset"
	"recipe-finder/internal/core/parser"
	"recipe-finder/internal/pkg/common"
)

// Engine 食譜搜尋引擎；資料集與索引在建立後唯讀
type Engine struct {
	records      []dataset.Record
	scorer       Scorer
	extractor    Extractor
	defaultLimit int
}

// NewEngine 創建搜尋引擎；scorer 必須與 records 以相同順序建立
func NewEngine(records []dataset.Record, scorer Scorer, extractor Extractor, defaultLimit int) (*Engine, error) {
	if scorer == nil || extractor == nil {
		return nil, fmt.Errorf("scorer and extractor are required")
	}
	if scorer.Len() != len(records) {
		return nil, fmt.Errorf("index covers %d records, dataset has %d", scorer.Len(), len(records))
	}
	return &Engine{
		records:      records,
		scorer:       scorer,
		extractor:    extractor,
		defaultLimit: common.FirstPositive(defaultLimit, DefaultLimit),
	}, nil
}

// Search 抽取條件、過濾、依相似度排序並回傳前 limit 筆
func (e *Engine) Search(ctx context.Context, prompt string, limit int) (results []Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError("Search panic",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
			)
			results = nil
			err = fmt.Errorf("search failed: %v", r)
		}
	}()

	start := time.Now()
	limit = common.FirstPositive(limit, e.defaultLimit)

	c := e.extractor.Extract(ctx, prompt)

	candidates := make([]int, len(e.records))
	for i := range candidates {
		candidates[i] = i
	}
	candidates = applyNumeric(e.records, candidates, c)
	candidates = applyIngredients(e.records, candidates, c.AvailableIngredients)

	scores := e.scorer.Similarity(prompt)
	if len(scores) != len(e.records) {
		return nil, fmt.Errorf("index returned %d scores for %d records", len(scores), len(e.records))
	}

	// 分數相同時保留原始順序
	sort.SliceStable(candidates, func(a, b int) bool {
		return scores[candidates[a]] > scores[candidates[b]]
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results = make([]Result, 0, len(candidates))
	for _, i := range candidates {
		results = append(results, toResult(e.records[i], scores[i]))
	}

	common.LogInfo("搜尋完成",
		zap.Int("results", len(results)),
		zap.Int("limit", limit),
		zap.Duration("耗時", time.Since(start)),
	)
	return results, nil
}

// Size 資料集筆數
func (e *Engine) Size() int {
	return len(e.records)
}

// VocabularySize 索引詞彙表大小
func (e *Engine) VocabularySize() int {
	return e.scorer.VocabularySize()
}

func toResult(r dataset.Record, score float64) Result {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	directions := r.Directions
	if directions == nil {
		directions = []string{}
	}

	return Result{
		Name:        r.Name,
		Time:        r.TotalTimeMinutes,
		Ingredients: ingredients,
		Directions:  directions,
		Image:       r.Image,
		Nutrition: Nutrition{
			Fat:         r.Nutrient(parser.NutrientFat),
			SatFat:      r.Nutrient(parser.NutrientSatFat),
			Cholesterol: r.Nutrient(parser.NutrientCholesterol),
			Sodium:      r.Nutrient(parser.NutrientSodium),
			Fiber:       r.Nutrient(parser.NutrientFiber),
			Sugar:       r.Nutrient(parser.NutrientSugar),
			Protein:     r.Nutrient(parser.NutrientProtein),
			Calcium:     r.Nutrient(parser.NutrientCalcium),
			Iron:        r.Nutrient(parser.NutrientIron),
			Potassium:   r.Nutrient(parser.NutrientPotassium),
		},
		Score: score,
	}
}
