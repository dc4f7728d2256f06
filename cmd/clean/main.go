package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"recipe-finder/internal/core/dataset"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats, err := dataset.Run(ctx, cfg.Dataset.RawPath, cfg.Dataset.CleanPath)
	if err != nil {
		common.LogError("資料清理失敗",
			zap.Error(err),
			zap.String("input", cfg.Dataset.RawPath),
		)
		common.Sync()
		os.Exit(1)
	}

	fmt.Printf("Loaded %d records from %s\n", stats.InputRecords, cfg.Dataset.RawPath)
	fmt.Printf("Cleaned dataset saved → %s\n", stats.OutputPath)
}
