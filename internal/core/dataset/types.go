package dataset

// 原始資料集欄位名稱
const (
	RawColumnName        = "recipe_name"
	RawColumnIngredients = "ingredients"
	RawColumnDirections  = "directions"
	RawColumnNutrition   = "nutrition"
	RawColumnTotalTime   = "total_time"
	RawColumnCuisinePath = "cuisine_path"
	RawColumnImage       = "img_src"
)

// 清理後資料集欄位名稱
const (
	ColumnName        = "recipe_name"
	ColumnTotalTime   = "total_time"
	ColumnIngredients = "ingredients_list"
	ColumnDirections  = "directions_list"
	ColumnImage       = "img_src"
	ColumnText        = "text"
)

// RawRecord 原始食譜資料，欄位缺漏時為空字串
type RawRecord struct {
	Name        string
	Ingredients string
	Directions  string
	Nutrition   string
	TotalTime   string
	CuisinePath string
	Image       string
}

// Record 清理後的食譜
type Record struct {
	Name             string
	TotalTimeMinutes int
	Ingredients      []string
	Directions       []string
	// Nutrients 只包含實際存在的營養素，缺少的鍵在下游視為 0
	Nutrients  map[string]float64
	Image      string
	SearchText string
}

// Nutrient 取得營養素數值，不存在時回傳 0
func (r Record) Nutrient(key string) float64 {
	return r.Nutrients[key]
}

// Stats 離線清理的統計資訊
type Stats struct {
	InputRecords  int
	OutputRecords int
	OutputPath    string
}
