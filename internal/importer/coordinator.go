package importer

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shebao/internal/logging"
	"shebao/internal/model"
	"shebao/internal/service/excel"
)

// Store 导入依赖的存储能力
type Store interface {
	UpsertCities(ctx context.Context, cities []model.CityStandard) error
	UpsertSalaries(ctx context.Context, records []model.SalaryRecord) error
	RecordImport(ctx context.Context, entry model.ImportLog) error
}

// Report 单次上传结果
type Report struct {
	BatchID      string           `json:"batch_id"`
	Kind         model.ImportKind `json:"kind"`
	Filename     string           `json:"filename"`
	SheetName    string           `json:"sheet_name"`
	TotalRows    int              `json:"total_rows"`
	ImportedRows int              `json:"count"`
	SkippedRows  int              `json:"skipped_rows"`
	Duration     time.Duration    `json:"-"`
}

// Coordinator 导入协调器：解析 -> 校验 -> 入库 -> 写上传记录
type Coordinator struct {
	store  Store
	parser *excel.Parser
	logger *zap.Logger
	now    func() time.Time
}

// NewCoordinator 创建导入协调器
func NewCoordinator(store Store, logger *zap.Logger) *Coordinator {
	logger = logging.OrNop(logger)
	return &Coordinator{
		store:  store,
		parser: excel.NewParser(logger),
		logger: logger,
		now:    time.Now,
	}
}

// ImportCities 导入城市标准工作簿
func (c *Coordinator) ImportCities(ctx context.Context, filename string, r io.Reader) (*Report, error) {
	return runImport(ctx, c, model.ImportCities, filename, r, c.parser.ParseCities, c.store.UpsertCities)
}

// ImportSalaries 导入员工工资工作簿
func (c *Coordinator) ImportSalaries(ctx context.Context, filename string, r io.Reader) (*Report, error) {
	return runImport(ctx, c, model.ImportSalaries, filename, r, c.parser.ParseSalaries, c.store.UpsertSalaries)
}

func runImport[T any](
	ctx context.Context,
	c *Coordinator,
	kind model.ImportKind,
	filename string,
	r io.Reader,
	parse func(io.Reader) ([]T, excel.ParseReport, error),
	upsert func(context.Context, []T) error,
) (*Report, error) {
	start := c.now()
	report := &Report{
		BatchID:  uuid.NewString(),
		Kind:     kind,
		Filename: filepath.Base(filename),
	}

	records, parsed, err := parse(r)
	report.SheetName = parsed.SheetName
	report.TotalRows = parsed.TotalRows
	report.SkippedRows = parsed.SkippedRows
	if err != nil {
		c.finish(ctx, report, start, err)
		return nil, err
	}
	if len(records) == 0 {
		err = model.ValidationError("文件中没有有效数据")
		c.finish(ctx, report, start, err)
		return nil, err
	}

	if err := upsert(ctx, records); err != nil {
		err = model.PersistenceError(err, "保存数据失败")
		c.finish(ctx, report, start, err)
		return nil, err
	}

	report.ImportedRows = len(records)
	c.finish(ctx, report, start, nil)
	return report, nil
}

// finish 写上传记录；记录失败只告警，不影响已提交的数据
func (c *Coordinator) finish(ctx context.Context, report *Report, start time.Time, importErr error) {
	report.Duration = c.now().Sub(start)

	entry := model.ImportLog{
		BatchID:      report.BatchID,
		Kind:         report.Kind,
		Filename:     report.Filename,
		TotalRows:    report.TotalRows,
		ImportedRows: report.ImportedRows,
		SkippedRows:  report.SkippedRows,
		Status:       model.ImportStatusSuccess,
		CreatedAt:    c.now(),
	}
	fields := []zap.Field{
		zap.String("batch_id", report.BatchID),
		zap.String("kind", string(report.Kind)),
		zap.String("filename", report.Filename),
		zap.Int("total_rows", report.TotalRows),
		zap.Int("imported_rows", report.ImportedRows),
		zap.Int("skipped_rows", report.SkippedRows),
		zap.Duration("duration", report.Duration),
	}

	if importErr != nil {
		entry.Status = model.ImportStatusFailed
		entry.ErrorMessage = model.MessageOf(importErr)
		c.logger.Warn("import failed", append(fields, zap.Error(importErr))...)
	} else {
		c.logger.Info("import finished", fields...)
	}

	if err := c.store.RecordImport(ctx, entry); err != nil {
		c.logger.Warn("record import log failed", zap.String("batch_id", report.BatchID), zap.Error(err))
	}
}
