package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shebao/internal/model"
)

// Stats 各表行数与最近一次成功上传时间
func (s *Store) Stats(ctx context.Context) (model.Stats, error) {
	var st model.Stats
	counts := []struct {
		table string
		dst   *int
	}{
		{"cities", &st.Cities},
		{"salaries", &st.Salaries},
		{"results", &st.Results},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dst); err != nil {
			return model.Stats{}, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}

	var last sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT created_at FROM import_logs
		WHERE status = ?
		ORDER BY created_at DESC LIMIT 1
	`, model.ImportStatusSuccess).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return model.Stats{}, fmt.Errorf("failed to query last import: %w", err)
	}
	if last.Valid {
		t := last.Time
		st.LastImportAt = &t
	}
	return st, nil
}
