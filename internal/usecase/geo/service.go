// Package geo aggregates observations along the OIC regional groupings:
// per-region statistics, choropleth rows, top performers, and
// country-versus-neighbors comparisons.
package geo

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/oic-analytics/adeidex/internal/domain"
	"github.com/oic-analytics/adeidex/internal/domain/region"
)

// DatasetReader loads observations from the relational store.
type DatasetReader interface {
	Observations(ctx context.Context) ([]domain.Observation, error)
}

// RegionStats summarizes one OIC region for a single year.
type RegionStats struct {
	Region    string  `json:"region"`
	Mean      float64 `json:"mean"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Countries int     `json:"countries"`
}

// RegionalReport is the per-region breakdown for one year.
type RegionalReport struct {
	Year          int           `json:"year"`
	GlobalAverage float64       `json:"global_average"`
	Regions       []RegionStats `json:"regions"`
	TopCountries  []CountryRow  `json:"top_countries"`
}

// CountryRow is one country's score with its region and map code.
type CountryRow struct {
	Country string  `json:"country"`
	ISOCode string  `json:"iso_code,omitempty"`
	Region  string  `json:"region,omitempty"`
	Score   float64 `json:"adei_score"`
}

// NeighborReport compares one country against the mean of its OIC
// neighbors present in the dataset for a given year.
type NeighborReport struct {
	Country      string             `json:"country"`
	Year         int                `json:"year"`
	Score        float64            `json:"adei_score"`
	NeighborMean float64            `json:"neighbor_mean"`
	Difference   float64            `json:"difference"`
	Neighbors    []CountryRow       `json:"neighbors"`
	PillarDeltas map[string]float64 `json:"pillar_deltas,omitempty"`
}

// topCountriesLimit caps the regional report's leaderboard.
const topCountriesLimit = 10

// Service computes geographic analytics.
type Service struct {
	data DatasetReader
}

// New creates a geo service.
func New(data DatasetReader) *Service {
	return &Service{data: data}
}

// Regional builds the per-region breakdown for a year. year <= 0 selects
// the latest year in the dataset.
func (s *Service) Regional(ctx context.Context, year int) (RegionalReport, error) {
	observations, year, err := s.yearSlice(ctx, year)
	if err != nil {
		return RegionalReport{}, err
	}

	type agg struct {
		sum, min, max float64
		count         int
	}
	regions := make(map[string]*agg)
	sum := 0.0
	for _, obs := range observations {
		sum += obs.Score
		name := region.For(obs.Country)
		if name == "" {
			continue
		}
		a, ok := regions[name]
		if !ok {
			a = &agg{min: obs.Score, max: obs.Score}
			regions[name] = a
		}
		a.sum += obs.Score
		a.count++
		if obs.Score < a.min {
			a.min = obs.Score
		}
		if obs.Score > a.max {
			a.max = obs.Score
		}
	}

	report := RegionalReport{
		Year:          year,
		GlobalAverage: sum / float64(len(observations)),
	}
	for name, a := range regions {
		report.Regions = append(report.Regions, RegionStats{
			Region:    name,
			Mean:      a.sum / float64(a.count),
			Min:       a.min,
			Max:       a.max,
			Countries: a.count,
		})
	}
	sort.SliceStable(report.Regions, func(i, j int) bool {
		return report.Regions[i].Mean > report.Regions[j].Mean
	})

	report.TopCountries = topN(observations, topCountriesLimit)
	return report, nil
}

// MapData returns one choropleth row per country for the year. Countries
// without a known ISO code are still returned, with the code empty.
func (s *Service) MapData(ctx context.Context, year int) ([]CountryRow, int, error) {
	observations, year, err := s.yearSlice(ctx, year)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]CountryRow, len(observations))
	for i, obs := range observations {
		rows[i] = CountryRow{
			Country: obs.Country,
			ISOCode: region.ISO(obs.Country),
			Region:  region.For(obs.Country),
			Score:   obs.Score,
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Country < rows[j].Country })
	return rows, year, nil
}

// Neighbors compares a country with its OIC neighbors for the year.
func (s *Service) Neighbors(ctx context.Context, country string, year int) (NeighborReport, error) {
	observations, year, err := s.yearSlice(ctx, year)
	if err != nil {
		return NeighborReport{}, err
	}

	byCountry := make(map[string]domain.Observation, len(observations))
	for _, obs := range observations {
		byCountry[strings.ToLower(obs.Country)] = obs
	}

	self, ok := byCountry[strings.ToLower(country)]
	if !ok {
		return NeighborReport{}, fmt.Errorf("%w: %s", domain.ErrCountryNotFound, country)
	}

	neighborNames := region.NeighborsOf(self.Country)
	if len(neighborNames) == 0 {
		return NeighborReport{}, fmt.Errorf("%w: %s has no neighbor mapping", domain.ErrNoRegion, self.Country)
	}

	report := NeighborReport{
		Country: self.Country,
		Year:    year,
		Score:   self.Score,
	}

	sum := 0.0
	pillarSums := make(map[string]float64)
	pillarCounts := make(map[string]int)
	for _, name := range neighborNames {
		obs, ok := byCountry[strings.ToLower(name)]
		if !ok {
			continue // neighbor outside the OIC dataset
		}
		report.Neighbors = append(report.Neighbors, CountryRow{
			Country: obs.Country,
			ISOCode: region.ISO(obs.Country),
			Region:  region.For(obs.Country),
			Score:   obs.Score,
		})
		sum += obs.Score
		for pname, v := range obs.Pillars {
			pillarSums[pname] += v
			pillarCounts[pname]++
		}
	}
	if len(report.Neighbors) == 0 {
		return report, nil
	}

	report.NeighborMean = sum / float64(len(report.Neighbors))
	report.Difference = report.Score - report.NeighborMean

	if len(self.Pillars) > 0 && len(pillarSums) > 0 {
		report.PillarDeltas = make(map[string]float64)
		for pname, own := range self.Pillars {
			if count := pillarCounts[pname]; count > 0 {
				report.PillarDeltas[pname] = own - pillarSums[pname]/float64(count)
			}
		}
	}
	return report, nil
}

// yearSlice loads the dataset and filters it to one year, defaulting to
// the latest year present.
func (s *Service) yearSlice(ctx context.Context, year int) ([]domain.Observation, int, error) {
	observations, err := s.data.Observations(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("load observations: %w", err)
	}
	if len(observations) == 0 {
		return nil, 0, domain.ErrNoData
	}

	if year <= 0 {
		for _, obs := range observations {
			if obs.Year > year {
				year = obs.Year
			}
		}
	}

	filtered := make([]domain.Observation, 0, len(observations))
	for _, obs := range observations {
		if obs.Year == year {
			filtered = append(filtered, obs)
		}
	}
	if len(filtered) == 0 {
		return nil, 0, fmt.Errorf("%w: %d", domain.ErrYearNotFound, year)
	}
	return filtered, year, nil
}

func topN(observations []domain.Observation, n int) []CountryRow {
	sorted := make([]domain.Observation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	rows := make([]CountryRow, len(sorted))
	for i, obs := range sorted {
		rows[i] = CountryRow{
			Country: obs.Country,
			ISOCode: region.ISO(obs.Country),
			Region:  region.For(obs.Country),
			Score:   obs.Score,
		}
	}
	return rows
}
