package frontend

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-finder/internal/pkg/common"
)

// Handler 前端靜態檔案處理程序
type Handler struct {
	dir string
}

// NewHandler 創建前端處理程序
func NewHandler(dir string) *Handler {
	if !isDir(dir) {
		common.LogWarn("前端目錄不存在", zap.String("dir", dir))
	}
	return &Handler{dir: dir}
}

// Serve 處理未匹配的路由：存在的檔案直接回傳，否則回傳 index.html
func (h *Handler) Serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
		return
	}

	if !isDir(h.dir) {
		c.JSON(http.StatusOK, gin.H{"detail": "Frontend not found"})
		return
	}

	// 清理路徑，限制在前端目錄內
	rel := path.Clean("/" + c.Request.URL.Path)
	if rel != "/" && h.serveFile(c, filepath.Join(h.dir, filepath.FromSlash(rel))) {
		return
	}

	if !h.serveFile(c, filepath.Join(h.dir, "index.html")) {
		c.JSON(http.StatusOK, gin.H{"detail": "Frontend not found"})
	}
}

// serveFile 回傳一般檔案；檔案不存在或為目錄時回傳 false
func (h *Handler) serveFile(c *gin.Context, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	return true
}

func isDir(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
