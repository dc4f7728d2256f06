package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// 營養素鍵
const (
	NutrientFat          = "fat"
	NutrientSatFat       = "sat_fat"
	NutrientCholesterol  = "cholesterol"
	NutrientSodium       = "sodium"
	NutrientCarbohydrate = "carbohydrate"
	NutrientFiber        = "fiber"
	NutrientSugar        = "sugar"
	NutrientProtein      = "protein"
	NutrientVitaminC     = "vitamin_c"
	NutrientCalcium      = "calcium"
	NutrientIron         = "iron"
	NutrientPotassium    = "potassium"
)

// NutrientKeys 清理後資料集保存的營養素欄位（固定順序）
var NutrientKeys = []string{
	NutrientFat,
	NutrientSatFat,
	NutrientCholesterol,
	NutrientSodium,
	NutrientCarbohydrate,
	NutrientFiber,
	NutrientSugar,
	NutrientProtein,
	NutrientVitaminC,
	NutrientCalcium,
	NutrientIron,
	NutrientPotassium,
}

// nutrientLabels 營養素對應的標籤同義詞，較長的標籤放前面
var nutrientLabels = []struct {
	key    string
	labels []string
}{
	{NutrientFat, []string{"total fat"}},
	{NutrientSatFat, []string{"saturated fat"}},
	{NutrientCholesterol, []string{"cholesterol"}},
	{NutrientSodium, []string{"sodium"}},
	{NutrientCarbohydrate, []string{"total carbohydrates?", "carbohydrates?"}},
	{NutrientFiber, []string{"dietary fiber", "fiber"}},
	{NutrientSugar, []string{"total sugars", "sugars?"}},
	{NutrientProtein, []string{"protein"}},
	{NutrientVitaminC, []string{"vitamin c"}},
	{NutrientCalcium, []string{"calcium"}},
	{NutrientIron, []string{"iron"}},
	{NutrientPotassium, []string{"potassium"}},
}

var (
	nutrientPatterns   = compileNutrientPatterns()
	thousandsSeparator = regexp.MustCompile(`(\d),(\d{3})`)
)

func compileNutrientPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(nutrientLabels))
	for _, n := range nutrientLabels {
		expr := `(?:` + strings.Join(n.labels, "|") + `)\D*?(\d+(?:\.\d+)?)\s*(?:mcg|mg|g)?`
		patterns[n.key] = regexp.MustCompile(expr)
	}
	return patterns
}

// ParseNutrition 解析營養標示文字，例如 "Total Fat 12g Sodium 430mg"。
// 只回傳實際找到的營養素；空白輸入回傳空 map。
func ParseNutrition(text string) map[string]float64 {
	nutrients := make(map[string]float64)
	if strings.TrimSpace(text) == "" {
		return nutrients
	}

	s := strings.ToLower(text)
	for thousandsSeparator.MatchString(s) {
		s = thousandsSeparator.ReplaceAllString(s, "$1$2")
	}
	s = strings.ReplaceAll(s, ",", " ")

	for _, n := range nutrientLabels {
		m := nutrientPatterns[n.key].FindStringSubmatch(s)
		if m == nil {
			continue
		}
		val, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		nutrients[n.key] = val
	}

	return nutrients
}
