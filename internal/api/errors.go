package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shebao/internal/model"
)

// statusOf 业务错误类别到 HTTP 状态码
func statusOf(err error) int {
	switch model.KindOf(err) {
	case model.KindFormat, model.KindValidation, model.KindNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError 输出 {"error": "..."}，5xx 记 error 日志
func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusOf(err)
	msg := model.MessageOf(err)
	if model.KindOf(err) == "" {
		msg = "服务器内部错误"
	}

	fields := []zap.Field{
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.String("kind", string(model.KindOf(err))),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Info("request rejected", fields...)
	}

	c.JSON(status, gin.H{"error": msg})
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// contentDisposition ASCII 回退名 + RFC 5987 UTF-8 文件名
func contentDisposition(fallback, filename string) string {
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", fallback, url.PathEscape(filename))
}
