package model

import (
	"strconv"
	"strings"
)

// SalaryRecord 员工月度工资（按 工号+月份 唯一）
type SalaryRecord struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Month        string  `json:"month"` // YYYYMM
	SalaryAmount float64 `json:"salary_amount"`
}

// Valid 判断工资行是否可入库
func (r SalaryRecord) Valid() bool {
	if strings.TrimSpace(r.EmployeeID) == "" ||
		strings.TrimSpace(r.EmployeeName) == "" ||
		!validMonth(r.Month) {
		return false
	}
	return r.SalaryAmount > 0
}

// validMonth 月份必须为 YYYYMM 且月在 01..12
func validMonth(m string) bool {
	if len(m) != 6 {
		return false
	}
	for _, ch := range m {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	mm, _ := strconv.Atoi(m[4:])
	return mm >= 1 && mm <= 12
}

// InYear 月份是否属于指定年份（前缀匹配，"2024" 匹配 "202401".."202412"）
func (r SalaryRecord) InYear(year string) bool {
	return year != "" && strings.HasPrefix(r.Month, year)
}
