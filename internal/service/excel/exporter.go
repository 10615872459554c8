package excel

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"shebao/internal/model"
)

// ResultSheetName 计算结果导出的工作表名
const ResultSheetName = "计算结果"

var resultHeaders = []string{"员工姓名", "年份", "平均工资", "缴费基数", "单位缴费金额"}

// ExportResults 将计算结果导出为 Excel，末行为单位缴费合计
func ExportResults(results []model.ContributionResult) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", ResultSheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, 0, len(resultHeaders))
	for _, h := range resultHeaders {
		header = append(header, h)
	}
	if err := f.SetSheetRow(ResultSheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(ResultSheetName, 1, 1, headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create amount style: %w", err)
	}

	total := 0.0
	for i, r := range results {
		rowNo := i + 2
		row := []interface{}{r.EmployeeName, r.Year, r.AvgSalary, r.ContributionBase, r.CompanyFee}
		cell, _ := excelize.CoordinatesToCellName(1, rowNo)
		if err := f.SetSheetRow(ResultSheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", rowNo, err)
		}
		total += r.CompanyFee
	}

	totalRow := len(results) + 2
	if err := f.SetCellValue(ResultSheetName, fmt.Sprintf("A%d", totalRow), "合计"); err != nil {
		f.Close()
		return nil, fmt.Errorf("write total label: %w", err)
	}
	if err := f.SetCellValue(ResultSheetName, fmt.Sprintf("E%d", totalRow), math.Round(total*100)/100); err != nil {
		f.Close()
		return nil, fmt.Errorf("write total amount: %w", err)
	}
	if err := f.SetCellStyle(ResultSheetName, "C2", fmt.Sprintf("E%d", totalRow), amountStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("apply amount style: %w", err)
	}

	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 14},
		{"B", "B", 8},
		{"C", "E", 16},
	}
	for _, w := range widths {
		if err := f.SetColWidth(ResultSheetName, w.from, w.to, w.width); err != nil {
			f.Close()
			return nil, fmt.Errorf("set column width %s: %w", w.from, err)
		}
	}

	return f, nil
}

// ResultsFilename 导出文件名
func ResultsFilename(year string) string {
	if year == "" {
		return "社保计算结果.xlsx"
	}
	return fmt.Sprintf("社保计算结果-%s.xlsx", year)
}
