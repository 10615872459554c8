// Package postgres 基于 pgx 连接池的结果存储（兼容 Supabase）
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shebao/internal/model"
	"shebao/internal/store"
)

//go:embed schema.sql
var schemaSQL string

var _ store.Repository = (*Store)(nil)

// Store PostgreSQL 存储层
type Store struct {
	pool *pgxpool.Pool
}

// Open 连接数据库并初始化表结构
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is empty")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{pool: pool}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close 关闭连接池
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// sendBatch 在单个事务中执行批量语句
func (s *Store) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
}

// UpsertCities 按 城市+年份 覆盖写入
func (s *Store) UpsertCities(ctx context.Context, cities []model.CityStandard) error {
	batch := &pgx.Batch{}
	for _, c := range cities {
		batch.Queue(`
			INSERT INTO cities (city_name, year, base_min, base_max, rate)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (city_name, year) DO UPDATE SET
				base_min = EXCLUDED.base_min,
				base_max = EXCLUDED.base_max,
				rate = EXCLUDED.rate,
				updated_at = NOW()
		`, c.CityName, c.Year, c.BaseMin, c.BaseMax, c.Rate)
	}
	if err := s.sendBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to upsert cities: %w", err)
	}
	return nil
}

// UpsertSalaries 按 工号+月份 覆盖写入
func (s *Store) UpsertSalaries(ctx context.Context, records []model.SalaryRecord) error {
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO salaries (employee_id, employee_name, month, salary_amount)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (employee_id, month) DO UPDATE SET
				employee_name = EXCLUDED.employee_name,
				salary_amount = EXCLUDED.salary_amount,
				updated_at = NOW()
		`, r.EmployeeID, r.EmployeeName, r.Month, r.SalaryAmount)
	}
	if err := s.sendBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to upsert salaries: %w", err)
	}
	return nil
}

// UpsertResults 按 姓名+年份 覆盖写入
func (s *Store) UpsertResults(ctx context.Context, results []model.ContributionResult) error {
	batch := &pgx.Batch{}
	for _, r := range results {
		batch.Queue(`
			INSERT INTO results (employee_name, year, avg_salary, contribution_base, company_fee)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (employee_name, year) DO UPDATE SET
				avg_salary = EXCLUDED.avg_salary,
				contribution_base = EXCLUDED.contribution_base,
				company_fee = EXCLUDED.company_fee,
				updated_at = NOW()
		`, r.EmployeeName, r.Year, r.AvgSalary, r.ContributionBase, r.CompanyFee)
	}
	if err := s.sendBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to upsert results: %w", err)
	}
	return nil
}

// GetCityStandard 获取城市标准，不存在时 found=false
func (s *Store) GetCityStandard(ctx context.Context, cityName, year string) (model.CityStandard, bool, error) {
	var c model.CityStandard
	err := s.pool.QueryRow(ctx, `
		SELECT city_name, year, base_min, base_max, rate
		FROM cities WHERE city_name = $1 AND year = $2
	`, cityName, year).Scan(&c.CityName, &c.Year, &c.BaseMin, &c.BaseMax, &c.Rate)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.CityStandard{}, false, nil
	}
	if err != nil {
		return model.CityStandard{}, false, fmt.Errorf("failed to query city standard: %w", err)
	}
	return c, true, nil
}

// ListCities 按年份倒序、城市名升序
func (s *Store) ListCities(ctx context.Context) ([]model.CityStandard, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT city_name, year, base_min, base_max, rate
		FROM cities ORDER BY year DESC, city_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.CityStandard, error) {
		var c model.CityStandard
		err := row.Scan(&c.CityName, &c.Year, &c.BaseMin, &c.BaseMax, &c.Rate)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan cities: %w", err)
	}
	return nonNil(out), nil
}

// ListSalariesByYear 月份以 year 开头的工资记录，按工号、月份排序
func (s *Store) ListSalariesByYear(ctx context.Context, year string) ([]model.SalaryRecord, error) {
	if year == "" {
		return []model.SalaryRecord{}, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT employee_id, employee_name, month, salary_amount
		FROM salaries
		WHERE starts_with(month, $1)
		ORDER BY employee_id, month
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query salaries: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.SalaryRecord, error) {
		var r model.SalaryRecord
		err := row.Scan(&r.EmployeeID, &r.EmployeeName, &r.Month, &r.SalaryAmount)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan salaries: %w", err)
	}
	return nonNil(out), nil
}

// ListResults 年份为空时返回全部；按年份、姓名排序
func (s *Store) ListResults(ctx context.Context, year string) ([]model.ContributionResult, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT employee_name, year, avg_salary, contribution_base, company_fee
		FROM results
		WHERE $1 = '' OR year = $1
		ORDER BY year, employee_name
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ContributionResult, error) {
		var r model.ContributionResult
		err := row.Scan(&r.EmployeeName, &r.Year, &r.AvgSalary, &r.ContributionBase, &r.CompanyFee)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan results: %w", err)
	}
	return nonNil(out), nil
}

// RecordImport 写入一条上传记录
func (s *Store) RecordImport(ctx context.Context, entry model.ImportLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO import_logs (
			batch_id, kind, filename, total_rows, imported_rows, skipped_rows,
			status, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
	`, entry.BatchID, string(entry.Kind), entry.Filename,
		entry.TotalRows, entry.ImportedRows, entry.SkippedRows,
		entry.Status, entry.ErrorMessage, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create import log: %w", err)
	}
	return nil
}

// ListImportLogs 最近的上传记录（按时间倒序），limit<=0 表示不限
func (s *Store) ListImportLogs(ctx context.Context, limit int) ([]model.ImportLog, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT batch_id, kind, filename, total_rows, imported_rows, skipped_rows,
			status, COALESCE(error_message, ''), created_at
		FROM import_logs
		ORDER BY created_at DESC, id DESC
		LIMIT NULLIF($1, 0)
	`, max(limit, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to query import logs: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ImportLog, error) {
		var (
			l    model.ImportLog
			kind string
		)
		err := row.Scan(&l.BatchID, &kind, &l.Filename, &l.TotalRows, &l.ImportedRows, &l.SkippedRows,
			&l.Status, &l.ErrorMessage, &l.CreatedAt)
		l.Kind = model.ImportKind(kind)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan import logs: %w", err)
	}
	return nonNil(out), nil
}

// Stats 各表行数与最近一次成功上传时间
func (s *Store) Stats(ctx context.Context) (model.Stats, error) {
	var (
		st   model.Stats
		last *time.Time
	)
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM cities),
			(SELECT COUNT(*) FROM salaries),
			(SELECT COUNT(*) FROM results),
			(SELECT MAX(created_at) FROM import_logs WHERE status = $1)
	`, model.ImportStatusSuccess).Scan(&st.Cities, &st.Salaries, &st.Results, &last)
	if err != nil {
		return model.Stats{}, fmt.Errorf("failed to query stats: %w", err)
	}
	st.LastImportAt = last
	return st, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
