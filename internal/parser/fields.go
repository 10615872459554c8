package parser

import "shebao/internal/model"

// 规范字段名
const (
	FieldCityName = "city_name"
	FieldYear     = "year"
	FieldBaseMin  = "base_min"
	FieldBaseMax  = "base_max"
	FieldRate     = "rate"

	FieldEmployeeID   = "employee_id"
	FieldEmployeeName = "employee_name"
	FieldMonth        = "month"
	FieldSalaryAmount = "salary_amount"
)

// CityFields 城市标准表字段规则
var CityFields = []FieldSpec{
	{
		Name:     FieldCityName,
		Aliases:  []string{"city_name", "城市", "城市名称", "城市名", "cityName", "City", "city"},
		Keyword:  "city",
		Position: 0,
		Kind:     KindString,
	},
	{
		Name:     FieldYear,
		Aliases:  []string{"year", "年份", "年度", "Year"},
		Keyword:  "year",
		Position: 1,
		Kind:     KindString,
	},
	{
		Name:     FieldBaseMin,
		Aliases:  []string{"base_min", "基数下限", "缴费基数下限", "最低基数", "下限", "baseMin", "Base Min"},
		Keyword:  "min",
		Position: 2,
		Kind:     KindNumber,
	},
	{
		Name:     FieldBaseMax,
		Aliases:  []string{"base_max", "基数上限", "缴费基数上限", "最高基数", "上限", "baseMax", "Base Max"},
		Keyword:  "max",
		Position: 3,
		Kind:     KindNumber,
	},
	{
		Name:     FieldRate,
		Aliases:  []string{"rate", "缴费比例", "单位缴费比例", "比例", "费率", "Rate"},
		Keyword:  "rate",
		Position: 4,
		Kind:     KindNumber,
	},
}

// SalaryFields 工资表字段规则
var SalaryFields = []FieldSpec{
	{
		Name:     FieldEmployeeID,
		Aliases:  []string{"employee_id", "员工工号", "工号", "员工编号", "员工ID", "employeeId", "Employee ID"},
		Keyword:  "id",
		Position: 0,
		Kind:     KindString,
	},
	{
		Name:     FieldEmployeeName,
		Aliases:  []string{"employee_name", "员工姓名", "姓名", "员工名称", "employeeName", "Employee Name", "name"},
		Keyword:  "name",
		Position: 1,
		Kind:     KindString,
	},
	{
		Name:     FieldMonth,
		Aliases:  []string{"month", "年份月份", "月份", "所属月份", "工资月份", "yearMonth", "Month"},
		Keyword:  "month",
		Position: 2,
		Kind:     KindString,
	},
	{
		Name:     FieldSalaryAmount,
		Aliases:  []string{"salary_amount", "工资金额", "工资", "应发工资", "薪资", "salaryAmount", "Salary"},
		Keyword:  "salary",
		Position: 3,
		Kind:     KindNumber,
	},
}

// CityStandardFromRow 将一行解析为城市标准（不做有效性校验）
func CityStandardFromRow(row Row) model.CityStandard {
	rec := Normalize(row, CityFields)
	return model.CityStandard{
		CityName: rec.Text(FieldCityName),
		Year:     NormalizeYear(rec.Text(FieldYear)),
		BaseMin:  rec.Number(FieldBaseMin),
		BaseMax:  rec.Number(FieldBaseMax),
		Rate:     rec.Number(FieldRate),
	}
}

// SalaryRecordFromRow 将一行解析为工资记录（不做有效性校验）
func SalaryRecordFromRow(row Row) model.SalaryRecord {
	rec := Normalize(row, SalaryFields)
	return model.SalaryRecord{
		EmployeeID:   rec.Text(FieldEmployeeID),
		EmployeeName: rec.Text(FieldEmployeeName),
		Month:        NormalizeMonth(rec.Text(FieldMonth)),
		SalaryAmount: rec.Number(FieldSalaryAmount),
	}
}
