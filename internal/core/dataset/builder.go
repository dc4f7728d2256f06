package dataset

import (
	"strings"

	"recipe-finder/internal/core/parser"
)

// Build 將原始資料逐筆轉為清理後的食譜，筆數與順序不變
func Build(raw []RawRecord) []Record {
	records := make([]Record, 0, len(raw))
	for _, r := range raw {
		records = append(records, buildRecord(r))
	}
	return records
}

func buildRecord(r RawRecord) Record {
	return Record{
		Name:             strings.TrimSpace(r.Name),
		TotalTimeMinutes: parser.ParseDuration(r.TotalTime),
		Ingredients:      parser.ParseList(r.Ingredients),
		Directions:       parser.ParseList(r.Directions),
		Nutrients:        parser.ParseNutrition(r.Nutrition),
		Image:            strings.TrimSpace(r.Image),
		SearchText:       searchText(r),
	}
}

// searchText 合併名稱、原始食材、原始步驟與料理分類
func searchText(r RawRecord) string {
	return strings.Join([]string{r.Name, r.Ingredients, r.Directions, r.CuisinePath}, " ")
}
