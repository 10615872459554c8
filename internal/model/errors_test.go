package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindMatching(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := fmt.Errorf("calculate: %w", PersistenceError(cause, "保存计算结果失败"))

	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected persistence kind, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("persistence error must not match not_found")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause should stay reachable through Unwrap")
	}
	if got := KindOf(err); got != KindPersistence {
		t.Fatalf("KindOf=%q", got)
	}
	if got := MessageOf(err); got != "保存计算结果失败" {
		t.Fatalf("MessageOf=%q", got)
	}
}

func TestKindOf_PlainError(t *testing.T) {
	t.Parallel()

	if got := KindOf(errors.New("boom")); got != "" {
		t.Fatalf("plain error kind=%q, want empty", got)
	}
	if got := MessageOf(errors.New("boom")); got != "boom" {
		t.Fatalf("MessageOf=%q", got)
	}
}

func TestCityStandardValid(t *testing.T) {
	t.Parallel()

	ok := CityStandard{CityName: "佛山", Year: "2024", BaseMin: 3000, BaseMax: 30000, Rate: 0.12}
	if !ok.Valid() {
		t.Fatalf("expected valid: %+v", ok)
	}

	cases := map[string]CityStandard{
		"empty city":   {Year: "2024", BaseMin: 1, BaseMax: 2, Rate: 0.1},
		"empty year":   {CityName: "佛山", BaseMin: 1, BaseMax: 2, Rate: 0.1},
		"zero min":     {CityName: "佛山", Year: "2024", BaseMax: 2, Rate: 0.1},
		"zero rate":    {CityName: "佛山", Year: "2024", BaseMin: 1, BaseMax: 2},
		"min over max": {CityName: "佛山", Year: "2024", BaseMin: 5, BaseMax: 2, Rate: 0.1},
	}
	for name, c := range cases {
		if c.Valid() {
			t.Fatalf("%s: expected invalid", name)
		}
	}
}

func TestSalaryRecordValidAndInYear(t *testing.T) {
	t.Parallel()

	r := SalaryRecord{EmployeeID: "E01", EmployeeName: "张三", Month: "202403", SalaryAmount: 8000}
	if !r.Valid() {
		t.Fatalf("expected valid")
	}
	if !r.InYear("2024") || r.InYear("2023") || r.InYear("") {
		t.Fatalf("InYear prefix match broken")
	}

	r.SalaryAmount = 0
	if r.Valid() {
		t.Fatalf("zero salary must be invalid")
	}
}

func TestSalaryRecordValid_RejectsMalformedMonth(t *testing.T) {
	t.Parallel()

	for _, month := range []string{"01-01-24", "202413", "202400", "2024", "2024-01", "20240101", "２０２４０１"} {
		r := SalaryRecord{EmployeeID: "E01", EmployeeName: "张三", Month: month, SalaryAmount: 8000}
		if r.Valid() {
			t.Fatalf("month %q: expected invalid", month)
		}
	}
}
