package model

import "time"

// ImportKind 上传文件类别
type ImportKind string

const (
	ImportCities   ImportKind = "cities"
	ImportSalaries ImportKind = "salaries"
)

// 上传状态
const (
	ImportStatusSuccess = "success"
	ImportStatusFailed  = "failed"
)

// ImportLog 上传记录（每次上传一条，成功或失败都会写入）
type ImportLog struct {
	BatchID      string     `json:"batch_id"`
	Kind         ImportKind `json:"kind"`
	Filename     string     `json:"filename"`
	TotalRows    int        `json:"total_rows"`
	ImportedRows int        `json:"imported_rows"`
	SkippedRows  int        `json:"skipped_rows"`
	Status       string     `json:"status"` // success/failed
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
