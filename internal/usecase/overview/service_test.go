package overview

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/oic-analytics/adeidex/internal/domain"
)

type mockDataset struct {
	observations []domain.Observation
	err          error
}

func (m *mockDataset) Observations(ctx context.Context) ([]domain.Observation, error) {
	return m.observations, m.err
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarize_Coverage(t *testing.T) {
	data := &mockDataset{observations: []domain.Observation{
		{Country: "Qatar", Year: 2022, Score: 0.80},
		{Country: "Qatar", Year: 2023, Score: 0.82},
		{Country: "Yemen", Year: 2022, Score: 0.30},
		{Country: "Yemen", Year: 2023, Score: 0.32},
		{Country: "Jordan", Year: 2023, Score: 0.55},
	}}
	svc := New(data)

	report, err := svc.Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if report.Countries != 3 {
		t.Errorf("Countries = %d, want 3", report.Countries)
	}
	if report.Records != 5 {
		t.Errorf("Records = %d, want 5", report.Records)
	}
	if report.FirstYear != 2022 || report.LastYear != 2023 {
		t.Errorf("year range = %d-%d, want 2022-2023", report.FirstYear, report.LastYear)
	}
	want := (0.82 + 0.32 + 0.55) / 3
	if !almostEqual(report.LatestAverage, want) {
		t.Errorf("LatestAverage = %f, want %f", report.LatestAverage, want)
	}
}

func TestSummarize_TierDistribution(t *testing.T) {
	data := &mockDataset{observations: []domain.Observation{
		{Country: "Qatar", Year: 2023, Score: 0.82},
		{Country: "UAE", Year: 2023, Score: 0.70},
		{Country: "Jordan", Year: 2023, Score: 0.55},
		{Country: "Yemen", Year: 2023, Score: 0.32},
		{Country: "Yemen", Year: 2022, Score: 0.30},
	}}
	svc := New(data)

	report, err := svc.Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got := report.Tiers[domain.TierHigh]; got != 2 {
		t.Errorf("high tier = %d, want 2", got)
	}
	if got := report.Tiers[domain.TierMedium]; got != 1 {
		t.Errorf("medium tier = %d, want 1", got)
	}
	if got := report.Tiers[domain.TierLow]; got != 1 {
		t.Errorf("low tier = %d, want 1", got)
	}
}

func TestSummarize_TrendOrderedByYear(t *testing.T) {
	data := &mockDataset{observations: []domain.Observation{
		{Country: "Qatar", Year: 2023, Score: 0.82},
		{Country: "Qatar", Year: 2021, Score: 0.78},
		{Country: "Qatar", Year: 2022, Score: 0.80},
		{Country: "Yemen", Year: 2022, Score: 0.30},
	}}
	svc := New(data)

	report, err := svc.Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if len(report.Trend) != 3 {
		t.Fatalf("Trend length = %d, want 3", len(report.Trend))
	}
	wantYears := []int{2021, 2022, 2023}
	for i, ym := range report.Trend {
		if ym.Year != wantYears[i] {
			t.Errorf("Trend[%d].Year = %d, want %d", i, ym.Year, wantYears[i])
		}
	}
	if !almostEqual(report.Trend[1].Mean, 0.55) {
		t.Errorf("2022 mean = %f, want 0.55", report.Trend[1].Mean)
	}
}

func TestSummarize_EmptyDataset(t *testing.T) {
	svc := New(&mockDataset{})

	_, err := svc.Summarize(context.Background())
	if !errors.Is(err, domain.ErrNoData) {
		t.Errorf("Summarize() error = %v, want ErrNoData", err)
	}
}

func TestSummarize_RepositoryError(t *testing.T) {
	svc := New(&mockDataset{err: errors.New("connection reset")})

	_, err := svc.Summarize(context.Background())
	if err == nil {
		t.Fatal("Summarize() error = nil, want error")
	}
}
