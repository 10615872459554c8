package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"shebao/internal/model"
)

type uploadTemplate struct {
	sheet   string
	headers []string
	sample  []interface{}
}

var uploadTemplates = map[model.ImportKind]uploadTemplate{
	model.ImportCities: {
		sheet:   "城市标准",
		headers: []string{"城市名称", "年份", "基数下限", "基数上限", "缴费比例"},
		sample:  []interface{}{"佛山", "2024", 4546, 26421, 0.15},
	},
	model.ImportSalaries: {
		sheet:   "员工工资",
		headers: []string{"员工工号", "员工姓名", "年份月份", "工资金额"},
		sample:  []interface{}{"E001", "张三", "202401", 12000},
	},
}

// NewUploadTemplate 生成上传模板（表头 + 一行示例）
func NewUploadTemplate(kind model.ImportKind) (*excelize.File, error) {
	tmpl, ok := uploadTemplates[kind]
	if !ok {
		return nil, model.ValidationError("未知的模板类型: %s", kind)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", tmpl.sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, 0, len(tmpl.headers))
	for _, h := range tmpl.headers {
		header = append(header, h)
	}
	if err := f.SetSheetRow(tmpl.sheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	sample := tmpl.sample
	if err := f.SetSheetRow(tmpl.sheet, "A2", &sample); err != nil {
		f.Close()
		return nil, fmt.Errorf("write sample: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(tmpl.headers))
	if err := f.SetColWidth(tmpl.sheet, "A", lastCol, 14); err != nil {
		f.Close()
		return nil, fmt.Errorf("set column width: %w", err)
	}

	return f, nil
}

// TemplateFilename 模板下载文件名
func TemplateFilename(kind model.ImportKind) string {
	switch kind {
	case model.ImportCities:
		return "城市标准模板.xlsx"
	case model.ImportSalaries:
		return "员工工资模板.xlsx"
	}
	return "模板.xlsx"
}
