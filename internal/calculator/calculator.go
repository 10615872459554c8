package calculator

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"shebao/internal/logging"
	"shebao/internal/model"
)

// DefaultCity 未指定城市时使用的城市
const DefaultCity = "佛山"

// Store 计算器依赖的存储能力
type Store interface {
	GetCityStandard(ctx context.Context, cityName, year string) (model.CityStandard, bool, error)
	ListSalariesByYear(ctx context.Context, year string) ([]model.SalaryRecord, error)
	UpsertResults(ctx context.Context, results []model.ContributionResult) error
}

// Calculator 社保缴费计算器（无状态，每次调用独立读写存储）
type Calculator struct {
	store       Store
	defaultCity string
	logger      *zap.Logger
}

// Option 计算器选项
type Option func(*Calculator)

// WithDefaultCity 设置默认城市
func WithDefaultCity(city string) Option {
	return func(c *Calculator) {
		if city = strings.TrimSpace(city); city != "" {
			c.defaultCity = city
		}
	}
}

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(c *Calculator) {
		c.logger = logging.OrNop(logger)
	}
}

// NewCalculator 创建计算器
func NewCalculator(store Store, opts ...Option) *Calculator {
	c := &Calculator{
		store:       store,
		defaultCity: DefaultCity,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultCity 返回默认城市
func (c *Calculator) DefaultCity() string {
	return c.defaultCity
}

// Calculate 计算指定年份所有员工的社保缴费并整体写入结果表。
// 任何一步失败都不会写入结果。
func (c *Calculator) Calculate(ctx context.Context, year, cityName string) ([]model.ContributionResult, error) {
	year = strings.TrimSpace(year)
	if year == "" {
		return nil, model.ValidationError("年份不能为空")
	}
	cityName = strings.TrimSpace(cityName)
	if cityName == "" {
		cityName = c.defaultCity
	}

	standard, found, err := c.store.GetCityStandard(ctx, cityName, year)
	if err != nil {
		return nil, model.PersistenceError(err, "查询城市标准失败")
	}
	if !found {
		return nil, model.NotFoundError("未找到 %s %s 年的社保标准数据", cityName, year)
	}

	salaries, err := c.store.ListSalariesByYear(ctx, year)
	if err != nil {
		return nil, model.PersistenceError(err, "查询工资数据失败")
	}
	if len(salaries) == 0 {
		return nil, model.NotFoundError("未找到 %s 年的工资数据", year)
	}

	results := Compute(year, standard, salaries)

	if err := c.store.UpsertResults(ctx, results); err != nil {
		return nil, model.PersistenceError(err, "保存计算结果失败")
	}

	c.logger.Info("contribution calculated",
		zap.String("city", cityName),
		zap.String("year", year),
		zap.Int("salary_records", len(salaries)),
		zap.Int("employees", len(results)))

	return results, nil
}

// Compute 按员工姓名分组，求年度平均工资并按城市标准计算缴费基数与单位缴费。
// 结果按姓名排序。
func Compute(year string, standard model.CityStandard, salaries []model.SalaryRecord) []model.ContributionResult {
	type group struct {
		sum   float64
		count int
	}

	groups := make(map[string]*group)
	for _, s := range salaries {
		g, ok := groups[s.EmployeeName]
		if !ok {
			g = &group{}
			groups[s.EmployeeName] = g
		}
		g.sum += s.SalaryAmount
		g.count++
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]model.ContributionResult, 0, len(names))
	for _, name := range names {
		g := groups[name]
		avg := g.sum / float64(g.count)
		base := ClampBase(avg, standard.BaseMin, standard.BaseMax)
		fee := base * standard.Rate

		results = append(results, model.ContributionResult{
			EmployeeName:     name,
			Year:             year,
			AvgSalary:        Round2(avg),
			ContributionBase: Round2(base),
			CompanyFee:       Round2(fee),
		})
	}
	return results
}

// ClampBase 将平均工资限制在 [baseMin, baseMax] 区间
func ClampBase(avg, baseMin, baseMax float64) float64 {
	return min(max(avg, baseMin), baseMax)
}
