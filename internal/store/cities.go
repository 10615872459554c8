package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shebao/internal/model"
)

// UpsertCities 按 城市+年份 覆盖写入城市标准
func (s *Store) UpsertCities(ctx context.Context, cities []model.CityStandard) error {
	if len(cities) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO cities (city_name, year, base_min, base_max, rate)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(city_name, year) DO UPDATE SET
				base_min = excluded.base_min,
				base_max = excluded.base_max,
				rate = excluded.rate,
				updated_at = CURRENT_TIMESTAMP
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, c := range cities {
			if _, err := stmt.ExecContext(ctx, c.CityName, c.Year, c.BaseMin, c.BaseMax, c.Rate); err != nil {
				return fmt.Errorf("failed to upsert city %s/%s: %w", c.CityName, c.Year, err)
			}
		}
		return nil
	})
}

// GetCityStandard 获取城市标准，不存在时 found=false
func (s *Store) GetCityStandard(ctx context.Context, cityName, year string) (model.CityStandard, bool, error) {
	var c model.CityStandard
	err := s.db.QueryRowContext(ctx, `
		SELECT city_name, year, base_min, base_max, rate
		FROM cities WHERE city_name = ? AND year = ?
	`, cityName, year).Scan(&c.CityName, &c.Year, &c.BaseMin, &c.BaseMax, &c.Rate)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CityStandard{}, false, nil
	}
	if err != nil {
		return model.CityStandard{}, false, fmt.Errorf("failed to query city standard: %w", err)
	}
	return c, true, nil
}

// ListCities 按年份倒序、城市名升序
func (s *Store) ListCities(ctx context.Context) ([]model.CityStandard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT city_name, year, base_min, base_max, rate
		FROM cities ORDER BY year DESC, city_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	out := make([]model.CityStandard, 0)
	for rows.Next() {
		var c model.CityStandard
		if err := rows.Scan(&c.CityName, &c.Year, &c.BaseMin, &c.BaseMax, &c.Rate); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
