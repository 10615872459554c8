package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shebao/internal/model"
)

// RecordImport 写入一条上传记录
func (s *Store) RecordImport(ctx context.Context, entry model.ImportLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_logs (
			batch_id, kind, filename, total_rows, imported_rows, skipped_rows,
			status, error_message, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.BatchID, string(entry.Kind), entry.Filename,
		entry.TotalRows, entry.ImportedRows, entry.SkippedRows,
		entry.Status, entry.ErrorMessage, entry.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create import log: %w", err)
	}
	return nil
}

// ListImportLogs 最近的上传记录（按时间倒序），limit<=0 表示不限
func (s *Store) ListImportLogs(ctx context.Context, limit int) ([]model.ImportLog, error) {
	query := `
		SELECT batch_id, kind, filename, total_rows, imported_rows, skipped_rows,
			status, error_message, created_at
		FROM import_logs ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query import logs: %w", err)
	}
	defer rows.Close()

	out := make([]model.ImportLog, 0)
	for rows.Next() {
		var (
			l      model.ImportLog
			kind   string
			errMsg sql.NullString
		)
		if err := rows.Scan(&l.BatchID, &kind, &l.Filename, &l.TotalRows, &l.ImportedRows, &l.SkippedRows,
			&l.Status, &errMsg, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		l.Kind = model.ImportKind(kind)
		l.ErrorMessage = errMsg.String
		out = append(out, l)
	}
	return out, rows.Err()
}
