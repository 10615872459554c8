package parser

import (
	"testing"

	"shebao/internal/model"
)

func TestCityStandardFromRow_HeaderLanguages(t *testing.T) {
	t.Parallel()

	want := model.CityStandard{CityName: "佛山", Year: "2024", BaseMin: 3000, BaseMax: 30000, Rate: 0.12}
	values := []string{"佛山", "2024", "3000", "30000", "0.12"}

	headerSets := map[string][]string{
		"chinese":   {"城市名称", "年份", "基数下限", "基数上限", "缴费比例"},
		"english":   {"city_name", "year", "base_min", "base_max", "rate"},
		"camelCase": {"cityName", "Year", "baseMin", "baseMax", "Rate"},
		// 列顺序打乱，依旧按别名解析
		"shuffled": {"缴费比例", "基数上限", "城市", "基数下限", "年度"},
	}
	for name, headers := range headerSets {
		cells := values
		if name == "shuffled" {
			cells = []string{"0.12", "30000", "佛山", "3000", "2024"}
		}
		got := CityStandardFromRow(NewRow(headers, cells))
		if got != want {
			t.Fatalf("%s: got %+v want %+v", name, got, want)
		}
	}
}

func TestSalaryRecordFromRow_HeaderLanguages(t *testing.T) {
	t.Parallel()

	want := model.SalaryRecord{EmployeeID: "E001", EmployeeName: "张三", Month: "202401", SalaryAmount: 10000}
	values := []string{"E001", "张三", "202401", "10000"}

	headerSets := map[string][]string{
		"chinese":   {"员工工号", "员工姓名", "年份月份", "工资金额"},
		"english":   {"employee_id", "employee_name", "month", "salary_amount"},
		"camelCase": {"employeeId", "employeeName", "yearMonth", "salaryAmount"},
		"title":     {"Employee ID", "Employee Name", "Month", "Salary"},
	}
	for name, headers := range headerSets {
		got := SalaryRecordFromRow(NewRow(headers, values))
		if got != want {
			t.Fatalf("%s: got %+v want %+v", name, got, want)
		}
	}
}

func TestResolveRaw_KeywordFallback(t *testing.T) {
	t.Parallel()

	row := NewRow(
		[]string{"Work City", "Fiscal Year", "Minimum", "Maximum", "Contribution Rate"},
		[]string{"深圳", "2024", "2360", "26421", "15%"},
	)
	got := CityStandardFromRow(row)
	want := model.CityStandard{CityName: "深圳", Year: "2024", BaseMin: 2360, BaseMax: 26421, Rate: 0.15}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestResolveRaw_PositionalFallback(t *testing.T) {
	t.Parallel()

	row := NewRow(
		[]string{"A", "B", "C", "D", "E"},
		[]string{"广州", "2024", "5284", "26421", "0.14"},
	)
	got := CityStandardFromRow(row)
	want := model.CityStandard{CityName: "广州", Year: "2024", BaseMin: 5284, BaseMax: 26421, Rate: 0.14}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestResolveRaw_SkipsBlankAlias(t *testing.T) {
	t.Parallel()

	row := Row{
		{Label: "城市", Value: "  "},
		{Label: "City", Value: "佛山"},
	}
	v, ok := ResolveRaw(row, CityFields[0])
	if !ok || v != "佛山" {
		t.Fatalf("got %q ok=%v", v, ok)
	}
}

func TestResolveRaw_ZeroValueWhenUnresolved(t *testing.T) {
	t.Parallel()

	row := NewRow([]string{"城市"}, []string{"佛山"})
	if got := ResolveNumber(row, CityFields[4]); got != 0 {
		t.Fatalf("rate=%v want 0", got)
	}
	if got := ResolveString(Row{}, CityFields[0]); got != "" {
		t.Fatalf("city=%q want empty", got)
	}
}

func TestNewRow_SkipsEmptyCellsAndNamesBlankHeaders(t *testing.T) {
	t.Parallel()

	row := NewRow([]string{"工号", "", "姓名"}, []string{"E1", "x", "", "extra"})
	labels := row.Labels()
	want := []string{"工号", "column_2", "column_4"}
	if len(labels) != len(want) {
		t.Fatalf("labels=%v want=%v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels=%v want=%v", labels, want)
		}
	}
}
