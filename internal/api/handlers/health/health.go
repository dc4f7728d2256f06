package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Dataset   DatasetStatus          `json:"dataset"`
	Oracle    OracleStatus           `json:"oracle"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// DatasetStatus 資料集與索引狀態
type DatasetStatus struct {
	Records        int `json:"records"`
	VocabularySize int `json:"vocabulary_size"`
}

// OracleStatus 語言模型狀態
type OracleStatus struct {
	Provider  string `json:"provider"`
	Model     string `json:"model,omitempty"`
	Available bool   `json:"available"`
}

// Index 資料集與索引統計
type Index interface {
	Size() int
	VocabularySize() int
}

// Oracle 語言模型服務狀態
type Oracle interface {
	Model() string
	Available() bool
	CacheStats() map[string]interface{}
}

// Handler 健康檢查處理程序
type Handler struct {
	config *config.Config
	index  Index
	oracle Oracle
}

// NewHandler 創建健康檢查處理程序
func NewHandler(cfg *config.Config, index Index, oracle Oracle) *Handler {
	return &Handler{
		config: cfg,
		index:  index,
		oracle: oracle,
	}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Oracle: OracleStatus{Provider: h.config.Oracle.Provider},
	}

	if h.index != nil {
		response.Dataset = DatasetStatus{
			Records:        h.index.Size(),
			VocabularySize: h.index.VocabularySize(),
		}
	}
	if h.oracle != nil {
		response.Oracle.Model = h.oracle.Model()
		response.Oracle.Available = h.oracle.Available()
		response.Cache = h.oracle.CacheStats()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器：資料集已載入才算就緒
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.index == nil {
		c.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
			Error: common.ErrDatasetNotLoaded.Message,
			Code:  common.ErrDatasetNotLoaded.Code,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"records": h.index.Size(),
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
