package util

import (
	"fmt"
	"strings"
)

// FormatPercent 格式化比例（0.12 -> 12.00%）
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value*100)
}

// FormatCurrency 格式化金额（千分位，两位小数）
func FormatCurrency(value float64) string {
	s := fmt.Sprintf("%.2f", value)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}
