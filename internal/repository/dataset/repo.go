// Package dataset reads the ADEI observations from Postgres.
package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oic-analytics/adeidex/internal/domain"
)

// Repository queries the oic_adei_data table.
type Repository struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool. The pool connects lazily;
// callers gate startup on WaitForReady.
func Connect(ctx context.Context, dsn string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Repository{pool: pool}, nil
}

// New wraps an existing pool (used by the feedback repository and tests).
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Pool exposes the underlying pool for repositories sharing the connection.
func (r *Repository) Pool() *pgxpool.Pool { return r.pool }

// Close closes the connection pool.
func (r *Repository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Ping checks database availability.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (r *Repository) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := r.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Observations loads the full dataset ordered by country, year. Rows with
// a missing country, year, or overall score are skipped rather than
// aborting the load.
func (r *Repository) Observations(ctx context.Context) ([]domain.Observation, error) {
	query := `SELECT country, year, adei_score,
	       adei_economic_opportunities, adei_educational_attainment,
	       adei_health_survival, adei_political_empowerment,
	       adei_access_land_non_land_assets, adei_access_justice,
	       adei_agency_voice_participation, adei_time_use_unpaid_care_work
	FROM oic_adei_data
	ORDER BY country, year`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	var observations []domain.Observation
	for rows.Next() {
		var (
			country *string
			year    *int
			score   *float64
			pillars [8]*float64
		)
		if err := rows.Scan(&country, &year, &score,
			&pillars[0], &pillars[1], &pillars[2], &pillars[3],
			&pillars[4], &pillars[5], &pillars[6], &pillars[7],
		); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}

		if country == nil || year == nil || score == nil {
			continue
		}

		obs := domain.Observation{
			Country: *country,
			Year:    *year,
			Score:   *score,
			Pillars: make(map[string]float64),
		}
		for i, p := range pillars {
			if p != nil {
				obs.Pillars[domain.PillarLabels[i].Label] = *p
			}
		}
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read observations: %w", err)
	}

	return observations, nil
}

// Countries returns the distinct country names, sorted.
func (r *Repository) Countries(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT country FROM oic_adei_data ORDER BY country`)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	var countries []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read countries: %w", err)
	}
	return countries, nil
}

// Years returns the distinct years, ascending.
func (r *Repository) Years(ctx context.Context) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT year FROM oic_adei_data ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("failed to query years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read years: %w", err)
	}
	return years, nil
}
