package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shebao/internal/model"
)

// yearValue 同时接受 "2024" 与 2024
type yearValue string

func (y *yearValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = yearValue(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year must be a string or number: %w", err)
	}
	*y = yearValue(n.String())
	return nil
}

// CalculateRequest 计算请求
type CalculateRequest struct {
	Year yearValue `json:"year"`
	City string    `json:"city"`
}

// Calculate 计算并保存指定年份的社保缴费
// POST /api/calculate
func (h *Handler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, model.ValidationError("请求参数无效"))
		return
	}

	results, err := h.calc.Calculate(c.Request.Context(), string(req.Year), req.City)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("计算完成，共 %d 名员工", len(results)),
		"results": results,
	})
}
