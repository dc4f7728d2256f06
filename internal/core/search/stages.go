package search

import (
	"strings"

	"go.uber.org/zap"

	"recipe-finder/internal/core/constraint"
	"recipe-finder/internal/core/dataset"
	"recipe-finder/internal/core/parser"
	"recipe-finder/internal/pkg/common"
)

// numericStage 一個數值過濾階段
type numericStage struct {
	key   string
	bound func(c constraint.Constraints) *constraint.Bound
	value func(r dataset.Record) float64
	upper bool // true 表示保留 <= bound，否則保留 >= bound
}

func nutrient(key string) func(r dataset.Record) float64 {
	return func(r dataset.Record) float64 { return r.Nutrient(key) }
}

// numericStages 固定的過濾順序
var numericStages = []numericStage{
	{constraint.KeyMaxTime, func(c constraint.Constraints) *constraint.Bound { return c.MaxTime },
		func(r dataset.Record) float64 { return float64(r.TotalTimeMinutes) }, true},
	{constraint.KeyMinProtein, func(c constraint.Constraints) *constraint.Bound { return c.MinProtein },
		nutrient(parser.NutrientProtein), false},
	{constraint.KeyMaxFat, func(c constraint.Constraints) *constraint.Bound { return c.MaxFat },
		nutrient(parser.NutrientFat), true},
	{constraint.KeyMaxSatFat, func(c constraint.Constraints) *constraint.Bound { return c.MaxSatFat },
		nutrient(parser.NutrientSatFat), true},
	{constraint.KeyMaxCholesterol, func(c constraint.Constraints) *constraint.Bound { return c.MaxCholesterol },
		nutrient(parser.NutrientCholesterol), true},
	{constraint.KeyMaxSodium, func(c constraint.Constraints) *constraint.Bound { return c.MaxSodium },
		nutrient(parser.NutrientSodium), true},
	{constraint.KeyMinFiber, func(c constraint.Constraints) *constraint.Bound { return c.MinFiber },
		nutrient(parser.NutrientFiber), false},
	{constraint.KeyMaxSugar, func(c constraint.Constraints) *constraint.Bound { return c.MaxSugar },
		nutrient(parser.NutrientSugar), true},
	{constraint.KeyMinCalcium, func(c constraint.Constraints) *constraint.Bound { return c.MinCalcium },
		nutrient(parser.NutrientCalcium), false},
	{constraint.KeyMinIron, func(c constraint.Constraints) *constraint.Bound { return c.MinIron },
		nutrient(parser.NutrientIron), false},
	{constraint.KeyMinPotassium, func(c constraint.Constraints) *constraint.Bound { return c.MinPotassium },
		nutrient(parser.NutrientPotassium), false},
}

// applyNumeric 依序套用數值條件；無法轉為數字的條件會被略過
func applyNumeric(records []dataset.Record, candidates []int, c constraint.Constraints) []int {
	for _, stage := range numericStages {
		b := stage.bound(c)
		if b == nil {
			continue
		}
		limit, err := b.Float()
		if err != nil {
			common.LogWarn("Failed filter",
				zap.String("key", stage.key),
				zap.String("value", b.String()),
				zap.Error(err),
			)
			continue
		}

		kept := candidates[:0]
		for _, i := range candidates {
			v := stage.value(records[i])
			if (stage.upper && v <= limit) || (!stage.upper && v >= limit) {
				kept = append(kept, i)
			}
		}
		candidates = kept
	}
	return candidates
}

// applyIngredients 保留食材文字包含任一可用食材的食譜
func applyIngredients(records []dataset.Record, candidates []int, available []string) []int {
	if len(available) == 0 {
		return candidates
	}

	kept := candidates[:0]
	for _, i := range candidates {
		joined := strings.ToLower(strings.Join(records[i].Ingredients, " "))
		for _, want := range available {
			if strings.Contains(joined, strings.ToLower(want)) {
				kept = append(kept, i)
				break
			}
		}
	}
	return kept
}
