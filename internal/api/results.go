package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shebao/internal/model"
	"shebao/internal/service/excel"
)

// ListResults 查询计算结果
// GET /api/results?year=2024
func (h *Handler) ListResults(c *gin.Context) {
	year := strings.TrimSpace(c.Query("year"))
	results, err := h.repo.ListResults(c.Request.Context(), year)
	if err != nil {
		h.writeError(c, model.PersistenceError(err, "查询计算结果失败"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "results": results})
}

// ExportResults 导出计算结果 Excel
// GET /api/results/export?year=2024
func (h *Handler) ExportResults(c *gin.Context) {
	year := strings.TrimSpace(c.Query("year"))
	if year == "" {
		h.writeError(c, model.ValidationError("年份不能为空"))
		return
	}

	results, err := h.repo.ListResults(c.Request.Context(), year)
	if err != nil {
		h.writeError(c, model.PersistenceError(err, "查询计算结果失败"))
		return
	}
	if len(results) == 0 {
		h.writeError(c, model.NotFoundError("未找到 %s 年的计算结果", year))
		return
	}

	file, err := excel.ExportResults(results)
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", contentDisposition("results-"+year+".xlsx", excel.ResultsFilename(year)))
	c.Header("Content-Type", xlsxContentType)
	if err := file.Write(c.Writer); err != nil {
		h.logger.Sugar().Warnw("write export failed", "year", year, "error", err)
	}
}

// ListCities 查询全部城市标准
// GET /api/cities
func (h *Handler) ListCities(c *gin.Context) {
	cities, err := h.repo.ListCities(c.Request.Context())
	if err != nil {
		h.writeError(c, model.PersistenceError(err, "查询城市标准失败"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// ListSalaries 查询指定年份工资
// GET /api/salaries?year=2024
func (h *Handler) ListSalaries(c *gin.Context) {
	year := strings.TrimSpace(c.Query("year"))
	if year == "" {
		h.writeError(c, model.ValidationError("年份不能为空"))
		return
	}
	salaries, err := h.repo.ListSalariesByYear(c.Request.Context(), year)
	if err != nil {
		h.writeError(c, model.PersistenceError(err, "查询工资数据失败"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "salaries": salaries})
}
