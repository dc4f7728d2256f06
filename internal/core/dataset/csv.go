package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"recipe-finder/internal/core/parser"
)

// CleanColumns 清理後資料集的欄位順序
var CleanColumns = append(append([]string{
	ColumnName,
	ColumnTotalTime,
	ColumnIngredients,
	ColumnDirections,
}, parser.NutrientKeys...), ColumnImage, ColumnText)

// header 欄位名稱到索引的對應
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, exists := h[name]; !exists {
			h[name] = i
		}
	}
	return h
}

// get 取得欄位值，欄位不存在或該列過短時回傳空字串
func (h header) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// ReadRawCSV 讀取原始食譜 CSV，依標題列尋找欄位，未知欄位忽略
func ReadRawCSV(r io.Reader) ([]RawRecord, error) {
	cr := newReader(r)

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []RawRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	h := newHeader(first)

	var records []RawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(records)+1, err)
		}
		records = append(records, RawRecord{
			Name:        h.get(row, RawColumnName),
			Ingredients: h.get(row, RawColumnIngredients),
			Directions:  h.get(row, RawColumnDirections),
			Nutrition:   h.get(row, RawColumnNutrition),
			TotalTime:   h.get(row, RawColumnTotalTime),
			CuisinePath: h.get(row, RawColumnCuisinePath),
			Image:       h.get(row, RawColumnImage),
		})
	}
	if records == nil {
		records = []RawRecord{}
	}
	return records, nil
}

// WriteCleanCSV 依固定欄位順序寫出清理後資料集
func WriteCleanCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CleanColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range recs {
		row, err := encodeRecord(rec)
		if err != nil {
			return fmt.Errorf("failed to encode record %d: %w", i, err)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func encodeRecord(rec Record) ([]string, error) {
	ingredients, err := encodeList(rec.Ingredients)
	if err != nil {
		return nil, err
	}
	directions, err := encodeList(rec.Directions)
	if err != nil {
		return nil, err
	}

	row := make([]string, 0, len(CleanColumns))
	row = append(row, rec.Name, strconv.Itoa(rec.TotalTimeMinutes), ingredients, directions)
	for _, key := range parser.NutrientKeys {
		// 缺少的營養素寫成空欄位
		if v, ok := rec.Nutrients[key]; ok {
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		} else {
			row = append(row, "")
		}
	}
	row = append(row, rec.Image, rec.SearchText)
	return row, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(items); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// decodeList 先以 JSON 陣列解析，失敗時交給 ParseList
func decodeList(cell string) []string {
	var items []string
	if err := json.Unmarshal([]byte(cell), &items); err == nil {
		return parser.ParseList(items)
	}
	return parser.ParseList(cell)
}

// ReadCleanCSV 讀取清理後資料集；數值欄位無法解析或為負時視為 0
func ReadCleanCSV(r io.Reader) ([]Record, error) {
	cr := newReader(r)

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	h := newHeader(first)

	records := []Record{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(records)+1, err)
		}

		rec := Record{
			Name:             h.get(row, ColumnName),
			TotalTimeMinutes: int(coerceNumber(h.get(row, ColumnTotalTime))),
			Ingredients:      decodeList(h.get(row, ColumnIngredients)),
			Directions:       decodeList(h.get(row, ColumnDirections)),
			Nutrients:        make(map[string]float64),
			Image:            h.get(row, ColumnImage),
			SearchText:       h.get(row, ColumnText),
		}
		for _, key := range parser.NutrientKeys {
			cell := strings.TrimSpace(h.get(row, key))
			if cell == "" {
				continue
			}
			rec.Nutrients[key] = coerceNumber(cell)
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadFile 載入清理後資料集檔案
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := ReadCleanCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return records, nil
}

// coerceNumber 將欄位轉為非負數值，失敗時回傳 0
func coerceNumber(cell string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
