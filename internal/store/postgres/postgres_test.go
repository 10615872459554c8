package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"shebao/internal/model"
)

// 需要真实数据库：SHEBAO_TEST_DATABASE_URL=postgres://... go test ./internal/store/postgres
func openTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("SHEBAO_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SHEBAO_TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_EmptyDSN(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// 随机城市名与年份前缀，避免与库中已有数据冲突
	suffix := uuid.NewString()[:8]
	city := "测试城市-" + suffix
	year := "9" + suffix[:3]
	name := "测试员工-" + suffix

	std := model.CityStandard{CityName: city, Year: year, BaseMin: 3000, BaseMax: 30000, Rate: 0.12}
	if err := s.UpsertCities(ctx, []model.CityStandard{std}); err != nil {
		t.Fatalf("UpsertCities: %v", err)
	}
	got, found, err := s.GetCityStandard(ctx, city, year)
	if err != nil || !found {
		t.Fatalf("GetCityStandard found=%v err=%v", found, err)
	}
	if diff := cmp.Diff(std, got); diff != "" {
		t.Fatalf("standard mismatch (-want +got):\n%s", diff)
	}

	salaries := []model.SalaryRecord{
		{EmployeeID: "E-" + suffix, EmployeeName: name, Month: year + "01", SalaryAmount: 10000},
		{EmployeeID: "E-" + suffix, EmployeeName: name, Month: year + "02", SalaryAmount: 12000},
	}
	if err := s.UpsertSalaries(ctx, salaries); err != nil {
		t.Fatalf("UpsertSalaries: %v", err)
	}
	listed, err := s.ListSalariesByYear(ctx, year)
	if err != nil {
		t.Fatalf("ListSalariesByYear: %v", err)
	}
	if diff := cmp.Diff(salaries, listed); diff != "" {
		t.Fatalf("salaries mismatch (-want +got):\n%s", diff)
	}

	results := []model.ContributionResult{{EmployeeName: name, Year: year, AvgSalary: 11000, ContributionBase: 11000, CompanyFee: 1320}}
	for i := 0; i < 2; i++ {
		if err := s.UpsertResults(ctx, results); err != nil {
			t.Fatalf("UpsertResults #%d: %v", i, err)
		}
	}
	stored, err := s.ListResults(ctx, year)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if diff := cmp.Diff(results, stored); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}

	if err := s.RecordImport(ctx, model.ImportLog{
		BatchID: uuid.NewString(), Kind: model.ImportSalaries, Filename: "s.xlsx",
		Status: model.ImportStatusSuccess, TotalRows: 2, ImportedRows: 2,
	}); err != nil {
		t.Fatalf("RecordImport: %v", err)
	}
	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.LastImportAt == nil || st.Results < 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}
