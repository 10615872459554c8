package model

import "strings"

// CityStandard 城市社保缴费基数标准（按 城市+年份 唯一）
type CityStandard struct {
	CityName string  `json:"city_name"`
	Year     string  `json:"year"`     // 四位年份
	BaseMin  float64 `json:"base_min"` // 缴费基数下限
	BaseMax  float64 `json:"base_max"` // 缴费基数上限
	Rate     float64 `json:"rate"`     // 单位缴费比例 0-1
}

// Valid 判断城市标准行是否可入库
func (s CityStandard) Valid() bool {
	if strings.TrimSpace(s.CityName) == "" || strings.TrimSpace(s.Year) == "" {
		return false
	}
	if s.BaseMin <= 0 || s.BaseMax <= 0 || s.Rate <= 0 {
		return false
	}
	return s.BaseMin <= s.BaseMax
}
