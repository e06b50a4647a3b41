// Package overview computes the executive-dashboard headline numbers:
// dataset coverage, latest-year averages, tier distribution, and the
// year-over-year mean trend.
package overview

import (
	"context"
	"fmt"
	"sort"

	"github.com/oic-analytics/adeidex/internal/domain"
)

// DatasetReader loads observations from the relational store.
type DatasetReader interface {
	Observations(ctx context.Context) ([]domain.Observation, error)
}

// YearMean is the mean overall score for one year.
type YearMean struct {
	Year int     `json:"year"`
	Mean float64 `json:"mean"`
}

// Report is the dashboard summary.
type Report struct {
	Countries     int                 `json:"countries"`
	Records       int                 `json:"records"`
	FirstYear     int                 `json:"first_year"`
	LastYear      int                 `json:"last_year"`
	LatestAverage float64             `json:"latest_average"`
	Tiers         map[domain.Tier]int `json:"tiers"`
	Trend         []YearMean          `json:"trend"`
}

// Service computes dashboard overviews.
type Service struct {
	data DatasetReader
}

// New creates an overview service.
func New(data DatasetReader) *Service {
	return &Service{data: data}
}

// Summarize builds the overview report from the current dataset.
func (s *Service) Summarize(ctx context.Context) (Report, error) {
	observations, err := s.data.Observations(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load observations: %w", err)
	}
	if len(observations) == 0 {
		return Report{}, domain.ErrNoData
	}

	countries := make(map[string]bool)
	yearSums := make(map[int]float64)
	yearCounts := make(map[int]int)
	first, last := observations[0].Year, observations[0].Year
	for _, obs := range observations {
		countries[obs.Country] = true
		yearSums[obs.Year] += obs.Score
		yearCounts[obs.Year]++
		if obs.Year < first {
			first = obs.Year
		}
		if obs.Year > last {
			last = obs.Year
		}
	}

	report := Report{
		Countries: len(countries),
		Records:   len(observations),
		FirstYear: first,
		LastYear:  last,
		Tiers:     make(map[domain.Tier]int),
	}

	// Tier distribution over the latest year only, matching the
	// dashboard's headline view.
	latestSum, latestCount := 0.0, 0
	for _, obs := range observations {
		if obs.Year != last {
			continue
		}
		report.Tiers[domain.TierFor(obs.Score)]++
		latestSum += obs.Score
		latestCount++
	}
	report.LatestAverage = latestSum / float64(latestCount)

	years := make([]int, 0, len(yearSums))
	for y := range yearSums {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		report.Trend = append(report.Trend, YearMean{
			Year: y,
			Mean: yearSums[y] / float64(yearCounts[y]),
		})
	}

	return report, nil
}
