package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"shebao/internal/importer"
	"shebao/internal/model"
)

var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

type importFunc func(ctx context.Context, filename string, r io.Reader) (*importer.Report, error)

// UploadCities 上传城市标准
// POST /api/upload-cities
func (h *Handler) UploadCities(c *gin.Context) {
	h.handleUpload(c, "城市标准", h.importer.ImportCities)
}

// UploadSalaries 上传员工工资
// POST /api/upload-salaries
func (h *Handler) UploadSalaries(c *gin.Context) {
	h.handleUpload(c, "工资", h.importer.ImportSalaries)
}

func (h *Handler) handleUpload(c *gin.Context, label string, run importFunc) {
	if c.Request.ContentLength > h.maxUpload {
		h.writeError(c, h.tooLarge())
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(c, h.tooLarge())
			return
		}
		h.writeError(c, model.ValidationError("未找到上传文件"))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		h.writeError(c, model.ValidationError("仅支持 .xlsx / .xls 文件"))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.writeError(c, model.FormatError(err, "读取上传文件失败"))
		return
	}
	defer file.Close()

	report, err := run(c.Request.Context(), header.Filename, file)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("成功导入 %d 条%s数据", report.ImportedRows, label),
		"count":    report.ImportedRows,
		"batch_id": report.BatchID,
	})
}

func (h *Handler) tooLarge() error {
	if h.maxUpload >= 1<<20 {
		return model.ValidationError("文件大小超过限制 (%d MB)", h.maxUpload>>20)
	}
	return model.ValidationError("文件大小超过限制 (%d KB)", h.maxUpload>>10)
}
