package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"shebao/internal/model"
)

type cityKey struct{ city, year string }
type salaryKey struct{ employeeID, month string }
type resultKey struct{ name, year string }

// MemoryStore 内存数据存储（测试与 driver=memory 使用），按自然键覆盖写入
type MemoryStore struct {
	cities   map[cityKey]model.CityStandard
	salaries map[salaryKey]model.SalaryRecord
	results  map[resultKey]model.ContributionResult
	imports  []model.ImportLog
	mu       sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cities:   make(map[cityKey]model.CityStandard),
		salaries: make(map[salaryKey]model.SalaryRecord),
		results:  make(map[resultKey]model.ContributionResult),
	}
}

// UpsertCities 按 城市+年份 覆盖写入
func (s *MemoryStore) UpsertCities(_ context.Context, cities []model.CityStandard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cities {
		s.cities[cityKey{c.CityName, c.Year}] = c
	}
	return nil
}

// UpsertSalaries 按 工号+月份 覆盖写入
func (s *MemoryStore) UpsertSalaries(_ context.Context, records []model.SalaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.salaries[salaryKey{r.EmployeeID, r.Month}] = r
	}
	return nil
}

// UpsertResults 按 姓名+年份 覆盖写入
func (s *MemoryStore) UpsertResults(_ context.Context, results []model.ContributionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range results {
		s.results[resultKey{r.EmployeeName, r.Year}] = r
	}
	return nil
}

// GetCityStandard 获取城市标准
func (s *MemoryStore) GetCityStandard(_ context.Context, cityName, year string) (model.CityStandard, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cities[cityKey{cityName, year}]
	return c, ok, nil
}

// ListCities 按年份倒序、城市名升序
func (s *MemoryStore) ListCities(_ context.Context) ([]model.CityStandard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.CityStandard, 0, len(s.cities))
	for _, c := range s.cities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].CityName < out[j].CityName
	})
	return out, nil
}

// ListSalariesByYear 月份以 year 开头的工资记录，按工号、月份排序
func (s *MemoryStore) ListSalariesByYear(_ context.Context, year string) ([]model.SalaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SalaryRecord, 0)
	for _, r := range s.salaries {
		if r.InYear(year) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

// ListResults 年份为空时返回全部；按年份、姓名排序
func (s *MemoryStore) ListResults(_ context.Context, year string) ([]model.ContributionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ContributionResult, 0, len(s.results))
	for _, r := range s.results {
		if year != "" && r.Year != year {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].EmployeeName < out[j].EmployeeName
	})
	return out, nil
}

// RecordImport 追加上传记录
func (s *MemoryStore) RecordImport(_ context.Context, entry model.ImportLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.imports = append(s.imports, entry)
	return nil
}

// ImportLogs 返回上传记录副本
func (s *MemoryStore) ImportLogs() []model.ImportLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ImportLog(nil), s.imports...)
}

// ListImportLogs 最近的上传记录（按时间倒序），limit<=0 表示不限
func (s *MemoryStore) ListImportLogs(_ context.Context, limit int) ([]model.ImportLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ImportLog, 0, len(s.imports))
	for i := len(s.imports) - 1; i >= 0; i-- {
		out = append(out, s.imports[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Stats 数据概况
func (s *MemoryStore) Stats(_ context.Context) (model.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := model.Stats{
		Cities:   len(s.cities),
		Salaries: len(s.salaries),
		Results:  len(s.results),
	}
	for _, l := range s.imports {
		if l.Status != model.ImportStatusSuccess {
			continue
		}
		at := l.CreatedAt
		if st.LastImportAt == nil || at.After(*st.LastImportAt) {
			st.LastImportAt = &at
		}
	}
	return st, nil
}

// Clear 清空所有数据
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities = make(map[cityKey]model.CityStandard)
	s.salaries = make(map[salaryKey]model.SalaryRecord)
	s.results = make(map[resultKey]model.ContributionResult)
	s.imports = nil
}

// Close 内存存储无需释放资源
func (s *MemoryStore) Close() error {
	return nil
}
