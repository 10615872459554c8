package store

import (
	"context"
	"database/sql"
	"fmt"

	"shebao/internal/model"
)

// UpsertResults 按 姓名+年份 覆盖写入计算结果（整批一个事务）
func (s *Store) UpsertResults(ctx context.Context, results []model.ContributionResult) error {
	if len(results) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO results (employee_name, year, avg_salary, contribution_base, company_fee)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(employee_name, year) DO UPDATE SET
				avg_salary = excluded.avg_salary,
				contribution_base = excluded.contribution_base,
				company_fee = excluded.company_fee,
				updated_at = CURRENT_TIMESTAMP
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, r := range results {
			if _, err := stmt.ExecContext(ctx, r.EmployeeName, r.Year, r.AvgSalary, r.ContributionBase, r.CompanyFee); err != nil {
				return fmt.Errorf("failed to upsert result %s/%s: %w", r.EmployeeName, r.Year, err)
			}
		}
		return nil
	})
}

// ListResults 年份为空时返回全部；按年份、姓名排序
func (s *Store) ListResults(ctx context.Context, year string) ([]model.ContributionResult, error) {
	query := `
		SELECT employee_name, year, avg_salary, contribution_base, company_fee
		FROM results`
	var args []any
	if year != "" {
		query += ` WHERE year = ?`
		args = append(args, year)
	}
	query += ` ORDER BY year, employee_name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	out := make([]model.ContributionResult, 0)
	for rows.Next() {
		var r model.ContributionResult
		if err := rows.Scan(&r.EmployeeName, &r.Year, &r.AvgSalary, &r.ContributionBase, &r.CompanyFee); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
