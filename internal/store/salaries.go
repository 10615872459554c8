package store

import (
	"context"
	"database/sql"
	"fmt"

	"shebao/internal/model"
)

// UpsertSalaries 按 工号+月份 覆盖写入工资记录
func (s *Store) UpsertSalaries(ctx context.Context, records []model.SalaryRecord) error {
	if len(records) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO salaries (employee_id, employee_name, month, salary_amount)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(employee_id, month) DO UPDATE SET
				employee_name = excluded.employee_name,
				salary_amount = excluded.salary_amount,
				updated_at = CURRENT_TIMESTAMP
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			if _, err := stmt.ExecContext(ctx, r.EmployeeID, r.EmployeeName, r.Month, r.SalaryAmount); err != nil {
				return fmt.Errorf("failed to upsert salary %s/%s: %w", r.EmployeeID, r.Month, err)
			}
		}
		return nil
	})
}

// ListSalariesByYear 月份以 year 开头的工资记录，按工号、月份排序
func (s *Store) ListSalariesByYear(ctx context.Context, year string) ([]model.SalaryRecord, error) {
	out := make([]model.SalaryRecord, 0)
	if year == "" {
		return out, nil
	}

	// substr 而非 LIKE，避免年份中的通配符
	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, employee_name, month, salary_amount
		FROM salaries
		WHERE substr(month, 1, length(?)) = ?
		ORDER BY employee_id, month
	`, year, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query salaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r model.SalaryRecord
		if err := rows.Scan(&r.EmployeeID, &r.EmployeeName, &r.Month, &r.SalaryAmount); err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
