package store

import (
	"context"

	"shebao/internal/model"
)

// Repository 结果存储能力（SQLite / PostgreSQL / 内存 三种实现）
type Repository interface {
	UpsertCities(ctx context.Context, cities []model.CityStandard) error
	UpsertSalaries(ctx context.Context, records []model.SalaryRecord) error
	UpsertResults(ctx context.Context, results []model.ContributionResult) error

	GetCityStandard(ctx context.Context, cityName, year string) (model.CityStandard, bool, error)
	ListCities(ctx context.Context) ([]model.CityStandard, error)
	ListSalariesByYear(ctx context.Context, year string) ([]model.SalaryRecord, error)
	ListResults(ctx context.Context, year string) ([]model.ContributionResult, error)

	RecordImport(ctx context.Context, entry model.ImportLog) error
	ListImportLogs(ctx context.Context, limit int) ([]model.ImportLog, error)
	Stats(ctx context.Context) (model.Stats, error)

	Close() error
}

var _ Repository = (*Store)(nil)
