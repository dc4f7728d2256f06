package constraint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"recipe-finder/internal/core/parser"
)

// 限制條件鍵
const (
	KeyMaxTime              = "max_time"
	KeyMinProtein           = "min_protein"
	KeyMaxFat               = "max_fat"
	KeyMaxSatFat            = "max_sat_fat"
	KeyMaxCholesterol       = "max_cholesterol"
	KeyMaxSodium            = "max_sodium"
	KeyMinFiber             = "min_fiber"
	KeyMaxSugar             = "max_sugar"
	KeyMinCalcium           = "min_calcium"
	KeyMinIron              = "min_iron"
	KeyMinPotassium         = "min_potassium"
	KeyAvailableIngredients = "available_ingredients"
)

// Bound 模型回傳的原始數值，保留原樣以便在過濾時判斷能否轉為數字
type Bound struct {
	raw json.RawMessage
}

// NewBound 以數字建立 Bound
func NewBound(v float64) *Bound {
	return &Bound{raw: json.RawMessage(strconv.FormatFloat(v, 'f', -1, 64))}
}

// UnmarshalJSON 實作 json.Unmarshaler，接受任何 JSON 值
func (b *Bound) UnmarshalJSON(data []byte) error {
	b.raw = append(b.raw[:0], bytes.TrimSpace(data)...)
	return nil
}

// MarshalJSON 原樣輸出
func (b Bound) MarshalJSON() ([]byte, error) {
	if len(b.raw) == 0 {
		return []byte("null"), nil
	}
	return b.raw, nil
}

// Float 轉為數字；接受 JSON 數字或數字字串
func (b *Bound) Float() (float64, error) {
	if b == nil || len(b.raw) == 0 {
		return 0, fmt.Errorf("bound is empty")
	}

	text := string(b.raw)
	if b.raw[0] == '"' {
		var s string
		if err := json.Unmarshal(b.raw, &s); err != nil {
			return 0, fmt.Errorf("invalid bound %s: %w", text, err)
		}
		text = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("bound %s is not a number", string(b.raw))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("bound %s is not finite", string(b.raw))
	}
	return f, nil
}

// String 原始值
func (b *Bound) String() string {
	if b == nil {
		return "null"
	}
	return string(b.raw)
}

// Ingredients 可用食材；接受字串陣列或逗號分隔字串
type Ingredients []string

// UnmarshalJSON 實作 json.Unmarshaler；無法辨識的型別視為空
func (in *Ingredients) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case []interface{}, string:
		*in = parser.ParseList(val)
	default:
		*in = Ingredients{}
	}
	return nil
}

// Constraints 從查詢抽取出的限制條件；nil 表示未指定
type Constraints struct {
	MaxTime              *Bound      `json:"max_time"`
	MinProtein           *Bound      `json:"min_protein"`
	MaxFat               *Bound      `json:"max_fat"`
	MaxSatFat            *Bound      `json:"max_sat_fat"`
	MaxCholesterol       *Bound      `json:"max_cholesterol"`
	MaxSodium            *Bound      `json:"max_sodium"`
	MinFiber             *Bound      `json:"min_fiber"`
	MaxSugar             *Bound      `json:"max_sugar"`
	MinCalcium           *Bound      `json:"min_calcium"`
	MinIron              *Bound      `json:"min_iron"`
	MinPotassium         *Bound      `json:"min_potassium"`
	AvailableIngredients Ingredients `json:"available_ingredients"`
}

// Default 所有條件皆未指定
func Default() Constraints {
	return Constraints{AvailableIngredients: Ingredients{}}
}

// normalize 確保食材清單非 nil、已去空白並轉小寫
func (c *Constraints) normalize() {
	c.AvailableIngredients = parser.ParseList([]string(c.AvailableIngredients))
}
