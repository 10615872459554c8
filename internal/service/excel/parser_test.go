package excel_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"shebao/internal/model"
	"shebao/internal/service/excel"
)

type testSheet struct {
	name string
	rows [][]interface{}
}

func buildWorkbookBytes(t *testing.T, sheets ...testSheet) []byte {
	t.Helper()

	wb := excelize.NewFile()
	t.Cleanup(func() { _ = wb.Close() })

	for i, s := range sheets {
		if i == 0 {
			if err := wb.SetSheetName("Sheet1", s.name); err != nil {
				t.Fatalf("SetSheetName failed: %v", err)
			}
		} else if _, err := wb.NewSheet(s.name); err != nil {
			t.Fatalf("NewSheet %s failed: %v", s.name, err)
		}
		for r, row := range s.rows {
			if row == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			values := row
			if err := wb.SetSheetRow(s.name, cell, &values); err != nil {
				t.Fatalf("SetSheetRow %s failed: %v", s.name, err)
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

func TestParseCities_DropsInvalidRows(t *testing.T) {
	t.Parallel()

	data := buildWorkbookBytes(t, testSheet{
		name: "城市标准",
		rows: [][]interface{}{
			{"城市名称", "年份", "基数下限", "基数上限", "缴费比例"},
			{"佛山", "2024", 3000, 30000, 0.12},
			nil, // 空行
			{"广州", "2024", 5284, 26421, 0}, // 比例为 0，无效
			{"深圳", 2024, "2,360", "26,421", "15%"},
		},
	})

	cities, report, err := excel.NewParser(nil).ParseCities(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCities failed: %v", err)
	}
	if len(cities) != 2 {
		t.Fatalf("cities=%d want 2: %+v", len(cities), cities)
	}
	if cities[0] != (model.CityStandard{CityName: "佛山", Year: "2024", BaseMin: 3000, BaseMax: 30000, Rate: 0.12}) {
		t.Fatalf("cities[0]=%+v", cities[0])
	}
	if cities[1].CityName != "深圳" || cities[1].BaseMin != 2360 || cities[1].Rate != 0.15 {
		t.Fatalf("cities[1]=%+v", cities[1])
	}
	if report.SheetName != "城市标准" || report.TotalRows != 3 || report.ValidRows != 2 || report.SkippedRows != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestParseSalaries_EnglishHeaders(t *testing.T) {
	t.Parallel()

	data := buildWorkbookBytes(t, testSheet{
		name: "salaries",
		rows: [][]interface{}{
			{"employee_id", "employee_name", "month", "salary_amount"},
			{"E001", "张三", "202401", 10000},
			{"E001", "张三", "2024-02", 12000},
			{"E002", "李四", "202401", "abc"}, // 工资无法解析
			{"E003", "王五", "202401", -1}, // 工资非正
		},
	})

	records, report, err := excel.NewParser(nil).ParseSalaries(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseSalaries failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records=%d want 2: %+v", len(records), records)
	}
	if records[1].Month != "202402" || records[1].SalaryAmount != 12000 {
		t.Fatalf("records[1]=%+v", records[1])
	}
	if report.SkippedRows != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestParse_UnreadableWorkbookIsFormatError(t *testing.T) {
	t.Parallel()

	p := excel.NewParser(nil)

	if _, _, err := p.ParseCities(bytes.NewReader(nil)); !errors.Is(err, model.ErrFormat) {
		t.Fatalf("empty input: want format error, got %v", err)
	}
	if _, _, err := p.ParseSalaries(strings.NewReader("not a workbook")); !errors.Is(err, model.ErrFormat) {
		t.Fatalf("garbage input: want format error, got %v", err)
	}
}

func TestParse_OnlyInvalidRowsReturnsEmpty(t *testing.T) {
	t.Parallel()

	data := buildWorkbookBytes(t, testSheet{
		name: "Sheet1",
		rows: [][]interface{}{
			{"员工工号", "员工姓名", "年份月份", "工资金额"},
			{"E001", "张三", "202401", 0},
			{"E002", "李四", "202401", "-100"},
		},
	})

	records, report, err := excel.NewParser(nil).ParseSalaries(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseSalaries failed: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", records)
	}
	if report.TotalRows != 2 || report.SkippedRows != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestParse_HeaderOnlySheet(t *testing.T) {
	t.Parallel()

	data := buildWorkbookBytes(t, testSheet{
		name: "Sheet1",
		rows: [][]interface{}{{"城市名称", "年份", "基数下限", "基数上限", "缴费比例"}},
	})

	cities, _, err := excel.NewParser(nil).ParseCities(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCities failed: %v", err)
	}
	if len(cities) != 0 {
		t.Fatalf("want no cities, got %+v", cities)
	}
}

func TestParse_OnlyFirstSheetIsRead(t *testing.T) {
	t.Parallel()

	header := []interface{}{"城市名称", "年份", "基数下限", "基数上限", "缴费比例"}
	data := buildWorkbookBytes(t,
		testSheet{name: "第一张", rows: [][]interface{}{header, {"佛山", "2024", 3000, 30000, 0.12}}},
		testSheet{name: "第二张", rows: [][]interface{}{header, {"广州", "2024", 5284, 26421, 0.14}}},
	)

	cities, report, err := excel.NewParser(nil).ParseCities(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseCities failed: %v", err)
	}
	if len(cities) != 1 || cities[0].CityName != "佛山" {
		t.Fatalf("unexpected cities: %+v", cities)
	}
	if report.SheetName != "第一张" {
		t.Fatalf("sheet=%q", report.SheetName)
	}
}

func TestParseSalaries_DateCellMonthIsSkipped(t *testing.T) {
	t.Parallel()

	data := buildWorkbookBytes(t, testSheet{
		name: "工资",
		rows: [][]interface{}{
			{"员工工号", "员工姓名", "年份月份", "工资金额"},
			{"E001", "张三", "202401", 10000},
			{"E002", "李四", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 9000}, // 日期单元格
			{"E003", "王五", "01-01-24", 9000},
			{"E004", "赵六", "202413", 9000},
		},
	})

	records, report, err := excel.NewParser(nil).ParseSalaries(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseSalaries failed: %v", err)
	}
	if len(records) != 1 || records[0].EmployeeID != "E001" {
		t.Fatalf("records=%+v", records)
	}
	if report.TotalRows != 4 || report.SkippedRows != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}
}
