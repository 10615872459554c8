package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reSpaces    = regexp.MustCompile(`\s+`)
	reYear      = regexp.MustCompile(`^(\d{4})(?:\.0+)?年?$`)
	reYearMonth = regexp.MustCompile(`^(\d{4})\s*[-/.年]?\s*(\d{1,2})\s*月?(?:[-/.]\d{1,2}日?)?$`)
)

// NormalizeColumnName 规范化列名，去除首尾空格与换行/制表符
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\n", "")
	name = strings.ReplaceAll(name, "\r", "")
	name = strings.ReplaceAll(name, "\t", "")
	// 压缩多个空格为一个
	return reSpaces.ReplaceAllString(name, " ")
}

// ParseNumber 宽松解析数值：去除千分位、货币单位；百分号按 /100 处理；失败返回 0
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "，", "")
	s = strings.TrimPrefix(s, "¥")
	s = strings.TrimPrefix(s, "￥")
	s = strings.TrimSuffix(s, "元")
	s = strings.TrimSpace(s)

	percent := false
	if strings.HasSuffix(s, "%") {
		percent = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if percent {
		return f / 100
	}
	return f
}

// NormalizeYear 将 "2024" / "2024年" / "2024.0" 统一为四位年份；无法识别时原样返回
func NormalizeYear(s string) string {
	s = strings.TrimSpace(s)
	if m := reYear.FindStringSubmatch(s); len(m) == 2 {
		return m[1]
	}
	return s
}

// NormalizeMonth 将 "202401" / "2024-01" / "2024/1" / "2024年1月" 统一为 YYYYMM；无法识别时原样返回
func NormalizeMonth(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".0")
	if len(s) == 6 && isDigits(s) {
		return s
	}
	m := reYearMonth.FindStringSubmatch(s)
	if len(m) != 3 {
		return s
	}
	month, err := strconv.Atoi(m[2])
	if err != nil || month < 1 || month > 12 {
		return s
	}
	return fmt.Sprintf("%s%02d", m[1], month)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func fallbackLabel(idx int) string {
	return fmt.Sprintf("column_%d", idx+1)
}
