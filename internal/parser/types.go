package parser

import "strings"

// FieldKind 字段值类型
type FieldKind int

const (
	KindString FieldKind = iota // 文本，去首尾空格
	KindNumber                  // 数值，解析失败为 0
)

// FieldSpec 单个规范字段的解析规则：别名精确匹配 → 关键词包含 → 列位置兜底
type FieldSpec struct {
	Name     string    // 规范字段名，如 city_name
	Aliases  []string  // 按优先级排列的列名别名（精确匹配）
	Keyword  string    // 小写列名包含该关键词即命中
	Position int       // 兜底列序号（0 起，按行内列顺序）
	Kind     FieldKind // 值类型
}

// Cell 行内单元格（列名 + 原始值）
type Cell struct {
	Label string
	Value string
}

// Row 一行数据，保持表头列顺序，只包含非空单元格
type Row []Cell

// Get 按列名精确取值
func (r Row) Get(label string) (string, bool) {
	for _, c := range r {
		if c.Label == label {
			return c.Value, true
		}
	}
	return "", false
}

// Labels 返回行内列名（列顺序）
func (r Row) Labels() []string {
	out := make([]string, 0, len(r))
	for _, c := range r {
		out = append(out, c.Label)
	}
	return out
}

// NewRow 由表头与一行单元格构造 Row，跳过空值；空表头记为 column_N（从 1 开始）
func NewRow(headers, cells []string) Row {
	row := make(Row, 0, len(cells))
	for i, v := range cells {
		if strings.TrimSpace(v) == "" {
			continue
		}
		label := ""
		if i < len(headers) {
			label = NormalizeColumnName(headers[i])
		}
		if label == "" {
			label = fallbackLabel(i)
		}
		row = append(row, Cell{Label: label, Value: v})
	}
	return row
}

// Record 按字段规则解析后的规范记录
type Record struct {
	strings map[string]string
	numbers map[string]float64
}

// Text 取文本字段
func (r Record) Text(name string) string {
	return r.strings[name]
}

// Number 取数值字段
func (r Record) Number(name string) float64 {
	return r.numbers[name]
}
