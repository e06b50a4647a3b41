// Package comparison aggregates ADEI observations for side-by-side
// country views: overall statistics, pillar means for radar charts, and
// per-year series for line charts.
package comparison

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/oic-analytics/adeidex/internal/domain"
)

// DatasetReader loads observations from the relational store.
type DatasetReader interface {
	Observations(ctx context.Context) ([]domain.Observation, error)
}

// CountryStats summarizes one country over the selected year range.
type CountryStats struct {
	Country     string             `json:"country"`
	Mean        float64            `json:"mean"`
	Min         float64            `json:"min"`
	Max         float64            `json:"max"`
	StdDev      float64            `json:"std_dev"`
	Latest      float64            `json:"latest"`
	LatestYear  int                `json:"latest_year"`
	Records     int                `json:"records"`
	PillarMeans map[string]float64 `json:"pillar_means,omitempty"`
	Series      []YearScore        `json:"series"`
}

// YearScore is one point of a country's time series.
type YearScore struct {
	Year  int     `json:"year"`
	Score float64 `json:"adei_score"`
}

// Result is a full comparison across the requested countries, ranked by
// mean score descending.
type Result struct {
	Countries []CountryStats `json:"countries"`
	FromYear  int            `json:"from_year"`
	ToYear    int            `json:"to_year"`
}

// Service computes country comparisons.
type Service struct {
	data         DatasetReader
	maxCountries int
}

// New creates a comparison service.
func New(data DatasetReader, maxCountries int) *Service {
	if maxCountries <= 0 {
		maxCountries = 10
	}
	return &Service{data: data, maxCountries: maxCountries}
}

// Compare aggregates the selected countries over [fromYear, toYear].
// Zero year bounds mean "no bound". Unknown names are dropped from the
// selection; the request fails only when nothing in it matches.
func (s *Service) Compare(ctx context.Context, countries []string, fromYear, toYear int) (Result, error) {
	if len(countries) == 0 {
		return Result{}, domain.ErrCountryNotFound
	}
	if len(countries) > s.maxCountries {
		return Result{}, fmt.Errorf("%w: %d requested, limit %d",
			domain.ErrTooManyCountries, len(countries), s.maxCountries)
	}

	observations, err := s.data.Observations(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load observations: %w", err)
	}
	if len(observations) == 0 {
		return Result{}, domain.ErrNoData
	}

	wanted := make(map[string]bool, len(countries))
	for _, c := range countries {
		wanted[normalize(c)] = true
	}

	grouped := make(map[string][]domain.Observation)
	for _, obs := range observations {
		if !wanted[normalize(obs.Country)] {
			continue
		}
		if fromYear > 0 && obs.Year < fromYear {
			continue
		}
		if toYear > 0 && obs.Year > toYear {
			continue
		}
		grouped[obs.Country] = append(grouped[obs.Country], obs)
	}
	if len(grouped) == 0 {
		return Result{}, domain.ErrCountryNotFound
	}

	result := Result{FromYear: fromYear, ToYear: toYear}
	for country, group := range grouped {
		result.Countries = append(result.Countries, summarize(country, group))
	}
	sort.SliceStable(result.Countries, func(i, j int) bool {
		return result.Countries[i].Mean > result.Countries[j].Mean
	})
	return result, nil
}

// summarize computes the aggregate stats for one country's observations.
func summarize(country string, group []domain.Observation) CountryStats {
	sort.SliceStable(group, func(i, j int) bool { return group[i].Year < group[j].Year })

	stats := CountryStats{
		Country: country,
		Min:     math.Inf(1),
		Max:     math.Inf(-1),
		Records: len(group),
	}

	sum := 0.0
	pillarSums := make(map[string]float64)
	pillarCounts := make(map[string]int)
	for _, obs := range group {
		sum += obs.Score
		stats.Min = math.Min(stats.Min, obs.Score)
		stats.Max = math.Max(stats.Max, obs.Score)
		stats.Series = append(stats.Series, YearScore{Year: obs.Year, Score: obs.Score})
		for name, v := range obs.Pillars {
			pillarSums[name] += v
			pillarCounts[name]++
		}
	}
	stats.Mean = sum / float64(len(group))

	variance := 0.0
	for _, obs := range group {
		d := obs.Score - stats.Mean
		variance += d * d
	}
	stats.StdDev = math.Sqrt(variance / float64(len(group)))

	latest := group[len(group)-1]
	stats.Latest = latest.Score
	stats.LatestYear = latest.Year

	if len(pillarSums) > 0 {
		stats.PillarMeans = make(map[string]float64, len(pillarSums))
		for name, total := range pillarSums {
			stats.PillarMeans[name] = total / float64(pillarCounts[name])
		}
	}
	return stats
}

func normalize(country string) string {
	return strings.ToLower(strings.TrimSpace(country))
}
