package api

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-finder/internal/api/handlers/frontend"
	"recipe-finder/internal/api/handlers/health"
	searchHandler "recipe-finder/internal/api/handlers/search"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/core/ai/service"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, engine *search.Engine, oracle *service.Service) (*gin.Engine, error) {
	if engine == nil {
		return nil, fmt.Errorf("search engine is required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())

	// CORS 設置：允許所有來源、方法與標頭
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Length", "X-Request-ID"},
	}))

	// 請求體大小限制
	if cfg.Server.MaxBodyBytes > 0 {
		router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	}
	router.Use(middleware.Timeout(cfg.Server.WriteTimeout))

	// 健康檢查路由
	var oracleStatus health.Oracle
	if oracle != nil {
		oracleStatus = oracle
	}
	healthHandler := health.NewHandler(cfg, engine, oracleStatus)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// 搜尋路由
	searchGroup := router.Group("/")
	if cfg.RateLimit.Enabled {
		searchGroup.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	searchGroup.POST("/search", searchHandler.NewHandler(engine).HandleSearch)

	// 其餘路由交給前端
	router.NoRoute(frontend.NewHandler(cfg.Frontend.Dir).Serve)

	common.LogInfo("Router setup completed successfully",
		zap.Int("records", engine.Size()),
		zap.Int("vocabulary_size", engine.VocabularySize()),
		zap.Bool("oracle_available", oracle != nil && oracle.Available()),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
