package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"recipe-finder/internal/api"
	"recipe-finder/internal/core/ai/cache"
	"recipe-finder/internal/core/ai/service"
	"recipe-finder/internal/core/constraint"
	"recipe-finder/internal/core/dataset"
	"recipe-finder/internal/core/index"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("oracle_provider", cfg.Oracle.Provider),
		zap.String("dataset", cfg.Dataset.CleanPath),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// 載入清理後資料集並建立索引
	records, err := dataset.LoadFile(cfg.Dataset.CleanPath)
	if err != nil {
		common.LogFatal("Failed to load dataset", zap.Error(err))
	}
	corpus := make([]string, len(records))
	for i, r := range records {
		corpus[i] = r.SearchText
	}
	idx := index.Build(corpus)
	common.LogInfo("索引已建立",
		zap.Int("records", idx.Len()),
		zap.Int("vocabulary_size", idx.VocabularySize()),
	)

	ctx := context.Background()

	// 初始化語言模型與快取
	provider, err := service.NewProvider(ctx, cfg)
	if err != nil {
		common.LogFatal("Failed to initialize oracle provider", zap.Error(err))
	}
	responseCache, err := cache.New(ctx, cfg)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	oracle := service.NewService(provider, responseCache)
	defer oracle.Close()

	engine, err := search.NewEngine(records, idx, constraint.NewExtractor(oracle), cfg.Search.DefaultLimit)
	if err != nil {
		common.LogFatal("Failed to initialize search engine", zap.Error(err))
	}

	// 設置路由
	router, err := api.SetupRouter(cfg, engine, oracle)
	if err != nil {
		common.LogFatal("Failed to setup router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
