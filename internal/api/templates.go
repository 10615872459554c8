package api

import (
	"github.com/gin-gonic/gin"

	"shebao/internal/model"
	"shebao/internal/service/excel"
)

// DownloadTemplate 下载上传模板
// GET /api/templates/:kind  (cities|salaries)
func (h *Handler) DownloadTemplate(c *gin.Context) {
	kind := model.ImportKind(c.Param("kind"))
	file, err := excel.NewUploadTemplate(kind)
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", contentDisposition(string(kind)+"-template.xlsx", excel.TemplateFilename(kind)))
	c.Header("Content-Type", xlsxContentType)
	if err := file.Write(c.Writer); err != nil {
		h.logger.Sugar().Warnw("write template failed", "kind", kind, "error", err)
	}
}
