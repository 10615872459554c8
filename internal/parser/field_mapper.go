package parser

import (
	"strings"
)

// ResolveRaw 按 FieldSpec 解析原始值，返回值与是否命中
func ResolveRaw(row Row, spec FieldSpec) (string, bool) {
	// 1. 别名精确匹配（按优先级）
	for _, alias := range spec.Aliases {
		if v, ok := row.Get(alias); ok && !isBlank(v) {
			return v, true
		}
	}

	// 2. 列名包含关键词（不区分大小写）
	if spec.Keyword != "" {
		kw := strings.ToLower(spec.Keyword)
		for _, c := range row {
			if strings.Contains(strings.ToLower(c.Label), kw) && !isBlank(c.Value) {
				return c.Value, true
			}
		}
	}

	// 3. 列位置兜底
	if spec.Position >= 0 && spec.Position < len(row) {
		if v := row[spec.Position].Value; !isBlank(v) {
			return v, true
		}
	}

	return "", false
}

// ResolveString 解析文本字段，未命中为空串
func ResolveString(row Row, spec FieldSpec) string {
	v, _ := ResolveRaw(row, spec)
	return strings.TrimSpace(v)
}

// ResolveNumber 解析数值字段，未命中或解析失败为 0
func ResolveNumber(row Row, spec FieldSpec) float64 {
	v, ok := ResolveRaw(row, spec)
	if !ok {
		return 0
	}
	return ParseNumber(v)
}

// Normalize 按一组字段规则解析整行
func Normalize(row Row, specs []FieldSpec) Record {
	rec := Record{
		strings: make(map[string]string, len(specs)),
		numbers: make(map[string]float64, len(specs)),
	}
	for _, spec := range specs {
		switch spec.Kind {
		case KindNumber:
			rec.numbers[spec.Name] = ResolveNumber(row, spec)
		default:
			rec.strings[spec.Name] = ResolveString(row, spec)
		}
	}
	return rec
}

func isBlank(v string) bool {
	return strings.TrimSpace(v) == ""
}
