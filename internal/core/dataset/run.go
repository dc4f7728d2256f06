package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"recipe-finder/internal/pkg/common"
)

// Run 執行離線清理：讀取原始 CSV、轉換後寫出清理後資料集
func Run(ctx context.Context, in, out string) (Stats, error) {
	var stats Stats

	src, err := os.Open(in)
	if err != nil {
		return stats, fmt.Errorf("failed to open raw dataset: %w", err)
	}
	defer src.Close()

	raw, err := ReadRawCSV(src)
	if err != nil {
		return stats, fmt.Errorf("failed to read raw dataset %s: %w", in, err)
	}
	stats.InputRecords = len(raw)
	common.LogInfo("已載入原始資料",
		zap.Int("records", len(raw)),
		zap.String("path", in),
	)

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	records := Build(raw)
	stats.OutputRecords = len(records)

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	if err := writeFile(out, records); err != nil {
		return stats, err
	}

	abs, err := filepath.Abs(out)
	if err != nil {
		abs = out
	}
	stats.OutputPath = abs
	common.LogInfo("清理後資料集已儲存",
		zap.Int("records", len(records)),
		zap.String("path", abs),
	)

	return stats, nil
}

// writeFile 先寫入同目錄的暫存檔，完成後再改名
func writeFile(path string, records []Record) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".recipes-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := WriteCleanCSV(tmp, records); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write clean dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move clean dataset into place: %w", err)
	}
	return nil
}
