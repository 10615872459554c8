package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shebao/internal/model"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	model.Stats
	DefaultCity   string            `json:"default_city"`
	RecentImports []model.ImportLog `json:"recent_imports"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.repo.Stats(ctx)
	if err != nil {
		h.writeError(c, model.PersistenceError(err, "查询系统状态失败"))
		return
	}
	logs, err := h.repo.ListImportLogs(ctx, 5)
	if err != nil {
		h.writeError(c, model.PersistenceError(err, "查询上传记录失败"))
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		Stats:         stats,
		DefaultCity:   h.calc.DefaultCity(),
		RecentImports: logs,
	})
}
