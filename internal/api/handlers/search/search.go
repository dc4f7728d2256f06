package search

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	searchEngine "recipe-finder/internal/core/search"
	"recipe-finder/internal/pkg/common"
)

// Request 搜尋請求
type Request struct {
	Prompt string `json:"prompt" binding:"required"` // 自然語言查詢
	Limit  *int   `json:"limit,omitempty"`           // 回傳筆數，預設 10
}

// Searcher 搜尋引擎介面
type Searcher interface {
	Search(ctx context.Context, prompt string, limit int) ([]searchEngine.Result, error)
}

// Handler 搜尋處理程序
type Handler struct {
	searcher Searcher
}

// NewHandler 創建搜尋處理程序
func NewHandler(searcher Searcher) *Handler {
	return &Handler{searcher: searcher}
}

// HandleSearch 處理 POST /search
func (h *Handler) HandleSearch(c *gin.Context) {
	requestID := requestid.Get(c)

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "Invalid request format",
			Code:  common.ErrCodeInvalidRequest,
		})
		return
	}

	limit := 0
	if req.Limit != nil {
		limit = *req.Limit
	}

	common.LogInfo("開始處理搜尋請求",
		zap.String("request_id", requestID),
		zap.Int("prompt_length", len(req.Prompt)),
		zap.Int("limit", limit),
	)

	results, err := h.search(c.Request.Context(), req.Prompt, limit)
	if err != nil {
		common.LogError("Search error",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		// 錯誤以 200 回傳 {error}
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) search(ctx context.Context, prompt string, limit int) (results []searchEngine.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("search failed: %v", r)
		}
	}()

	results, err = h.searcher.Search(ctx, prompt, limit)
	if err == nil && results == nil {
		results = []searchEngine.Result{}
	}
	return results, err
}
