package excel

import (
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"shebao/internal/logging"
	"shebao/internal/model"
	"shebao/internal/parser"
)

// ParseReport 单次解析统计
type ParseReport struct {
	SheetName   string `json:"sheet_name"`
	TotalRows   int    `json:"total_rows"`   // 非空数据行
	ValidRows   int    `json:"valid_rows"`   // 通过校验的行
	SkippedRows int    `json:"skipped_rows"` // 被丢弃的无效行
}

// sheetShape 一类记录的构造与校验规则
type sheetShape[T any] struct {
	kind  model.ImportKind
	build func(parser.Row) T
	valid func(T) bool
}

var (
	cityShape = sheetShape[model.CityStandard]{
		kind:  model.ImportCities,
		build: parser.CityStandardFromRow,
		valid: model.CityStandard.Valid,
	}
	salaryShape = sheetShape[model.SalaryRecord]{
		kind:  model.ImportSalaries,
		build: parser.SalaryRecordFromRow,
		valid: model.SalaryRecord.Valid,
	}
)

// Parser 上传表格解析器（只读取第一个工作表）
type Parser struct {
	logger *zap.Logger
}

// NewParser 创建解析器
func NewParser(logger *zap.Logger) *Parser {
	return &Parser{logger: logging.OrNop(logger)}
}

// ParseCities 解析城市社保标准表
func (p *Parser) ParseCities(r io.Reader) ([]model.CityStandard, ParseReport, error) {
	return parseFirstSheet(p.logger, r, cityShape)
}

// ParseSalaries 解析员工工资表
func (p *Parser) ParseSalaries(r io.Reader) ([]model.SalaryRecord, ParseReport, error) {
	return parseFirstSheet(p.logger, r, salaryShape)
}

// parseFirstSheet 读取第一个工作表：首行为表头，其余行逐行规范化并校验，无效行直接丢弃
func parseFirstSheet[T any](logger *zap.Logger, r io.Reader, shape sheetShape[T]) ([]T, ParseReport, error) {
	var report ParseReport

	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, report, model.FormatError(err, "无法读取 Excel 文件")
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, report, model.FormatError(nil, "Excel 文件中没有工作表")
	}

	sheetName := sheets[0]
	report.SheetName = sheetName

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, report, model.FormatError(err, "读取工作表 %s 失败", sheetName)
	}

	out := make([]T, 0, len(rows))
	if len(rows) <= 1 {
		return out, report, nil
	}

	headers := rows[0]
	for i, cells := range rows[1:] {
		rowNo := i + 2
		row := parser.NewRow(headers, cells)
		if len(row) == 0 {
			continue
		}
		report.TotalRows++

		record := shape.build(row)
		if !shape.valid(record) {
			report.SkippedRows++
			logger.Debug("skip invalid row",
				zap.String("kind", string(shape.kind)),
				zap.String("sheet", sheetName),
				zap.Int("row", rowNo),
				zap.Any("record", record))
			continue
		}
		out = append(out, record)
	}
	report.ValidRows = len(out)

	if len(sheets) > 1 {
		logger.Debug("extra sheets ignored", zap.Strings("sheets", sheets[1:]))
	}

	return out, report, nil
}
