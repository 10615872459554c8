package model

import "time"

// ContributionResult 员工年度社保计算结果（按 姓名+年份 唯一，每次计算整体覆盖）
type ContributionResult struct {
	EmployeeName     string  `json:"employee_name"`
	Year             string  `json:"year"`
	AvgSalary        float64 `json:"avg_salary"`
	ContributionBase float64 `json:"contribution_base"`
	CompanyFee       float64 `json:"company_fee"`
}

// Stats 数据概况
type Stats struct {
	Cities       int        `json:"cities"`
	Salaries     int        `json:"salaries"`
	Results      int        `json:"results"`
	LastImportAt *time.Time `json:"last_import_at,omitempty"`
}
