package rag

import (
	"strings"
	"testing"

	"github.com/oic-analytics/adeidex/internal/domain"
)

func testRecords() []domain.IndexedRecord {
	return BuildIndex([]domain.Observation{
		{Country: "Qatar", Year: 2023, Score: 0.82},
		{Country: "Yemen", Year: 2023, Score: 0.31},
	})
}

func TestAnswer_TopPerformers(t *testing.T) {
	answer, intent := Answer("highest ADEI scores", testRecords(), 5)

	if intent != domain.IntentTopPerformers {
		t.Fatalf("intent = %s, want %s", intent, domain.IntentTopPerformers)
	}
	qatar := strings.Index(answer, "Qatar")
	yemen := strings.Index(answer, "Yemen")
	if qatar < 0 {
		t.Fatal("answer should mention Qatar")
	}
	if yemen >= 0 && qatar > yemen {
		t.Errorf("Qatar should be listed before Yemen:\n%s", answer)
	}
	if !strings.Contains(answer, "ADEI Score: 0.820 (2023)") {
		t.Errorf("answer missing formatted Qatar entry:\n%s", answer)
	}
}

func TestAnswer_BottomPerformers(t *testing.T) {
	answer, intent := Answer("lowest performing countries", testRecords(), 5)

	if intent != domain.IntentBottomPerformers {
		t.Fatalf("intent = %s, want %s", intent, domain.IntentBottomPerformers)
	}
	yemen := strings.Index(answer, "Yemen")
	qatar := strings.Index(answer, "Qatar")
	if yemen < 0 {
		t.Fatal("answer should mention Yemen")
	}
	if qatar >= 0 && yemen > qatar {
		t.Errorf("Yemen should be listed before Qatar:\n%s", answer)
	}
}

func TestAnswer_Trend(t *testing.T) {
	records := BuildIndex([]domain.Observation{
		{Country: "Turkey", Year: 2021, Score: 0.55},
		{Country: "Turkey", Year: 2023, Score: 0.65},
	})

	answer, intent := Answer("trend for Turkey", records, 5)

	if intent != domain.IntentTrend {
		t.Fatalf("intent = %s, want %s", intent, domain.IntentTrend)
	}
	want := "improved by 0.100 points (0.550 → 0.650)"
	if !strings.Contains(answer, want) {
		t.Errorf("answer missing %q:\n%s", want, answer)
	}
}

func TestAnswer_TrendDeclined(t *testing.T) {
	records := BuildIndex([]domain.Observation{
		{Country: "Yemen", Year: 2021, Score: 0.40},
		{Country: "Yemen", Year: 2023, Score: 0.31},
	})

	answer, _ := Answer("yemen change over time", records, 5)
	if !strings.Contains(answer, "declined by 0.090 points") {
		t.Errorf("answer should report a decline:\n%s", answer)
	}
}

func TestAnswer_Comparison(t *testing.T) {
	answer, intent := Answer("compare Qatar and Yemen", testRecords(), 5)

	if intent != domain.IntentComparison {
		t.Fatalf("intent = %s, want %s", intent, domain.IntentComparison)
	}
	if !strings.Contains(answer, "Qatar") || !strings.Contains(answer, "Yemen") {
		t.Fatalf("both countries should be listed:\n%s", answer)
	}
	// Qatar's mean exceeds Yemen's, so Qatar ranks first.
	if strings.Index(answer, "Qatar") > strings.Index(answer, "Yemen") {
		t.Errorf("Qatar should rank above Yemen:\n%s", answer)
	}
	if !strings.Contains(answer, "Average ADEI: 0.820 (Years: 2023)") {
		t.Errorf("answer missing Qatar aggregate:\n%s", answer)
	}
}

func TestAnswer_NoMatch(t *testing.T) {
	query := "asdkjhaskjdh"
	answer, _ := Answer(query, testRecords(), 5)

	if !strings.Contains(answer, "couldn't find relevant information") {
		t.Errorf("expected no-match message, got:\n%s", answer)
	}
	if !strings.Contains(answer, query) {
		t.Errorf("no-match message should quote the query verbatim:\n%s", answer)
	}
}

func TestAnswer_EmptyIndex(t *testing.T) {
	answer, _ := Answer("highest scores", nil, 5)
	if !strings.Contains(answer, "couldn't find relevant information") {
		t.Errorf("empty index should yield the no-match message, got:\n%s", answer)
	}
}

func TestAnswer_Idempotent(t *testing.T) {
	records := testRecords()
	first, _ := Answer("highest ADEI scores", records, 5)
	second, _ := Answer("highest ADEI scores", records, 5)
	if first != second {
		t.Error("identical inputs should produce identical answers")
	}
}

func TestScoreRecords_VerbatimPhraseOutranksTokenMatches(t *testing.T) {
	records := []domain.IndexedRecord{
		{Text: "Country: Qatar, Year: 2023, ADEI Score: 0.820", Country: "Qatar", Year: 2023, Score: 0.82},
		{Text: "Country: Yemen, Year: 2023, ADEI Score: 0.310", Country: "Yemen", Year: 2023, Score: 0.31},
	}

	scored := scoreRecords("qatar, year: 2023", records)
	if len(scored) == 0 {
		t.Fatal("expected matches")
	}
	if scored[0].Record.Country != "Qatar" {
		t.Fatalf("verbatim match should rank first, got %s", scored[0].Record.Country)
	}
	if scored[0].Score < phraseWeight {
		t.Errorf("verbatim match score = %d, want >= %d", scored[0].Score, phraseWeight)
	}
}

func TestScoreRecords_CountryTokenWeight(t *testing.T) {
	records := testRecords()

	scored := scoreRecords("qatar", records)
	if len(scored) != 1 {
		t.Fatalf("expected only Qatar to qualify, got %d records", len(scored))
	}
	if scored[0].Record.Country != "Qatar" {
		t.Errorf("matched country = %s, want Qatar", scored[0].Record.Country)
	}
	if scored[0].Score < countryWeight {
		t.Errorf("score = %d, want >= %d", scored[0].Score, countryWeight)
	}
}

func TestScoreRecords_ShortTokensIgnored(t *testing.T) {
	scored := scoreRecords("qa ye", testRecords())
	if len(scored) != 0 {
		t.Errorf("two-letter tokens should not match, got %d records", len(scored))
	}
}

func TestScoreRecords_PerformanceBonus(t *testing.T) {
	records := testRecords()

	high := scoreRecords("best scores", records)
	if len(high) == 0 || high[0].Record.Country != "Qatar" {
		t.Fatalf("high-performance query should favor Qatar, got %+v", high)
	}

	low := scoreRecords("worst scores", records)
	if len(low) == 0 || low[0].Record.Country != "Yemen" {
		t.Fatalf("low-performance query should favor Yemen, got %+v", low)
	}
}

func TestRank_LimitsToK(t *testing.T) {
	var observations []domain.Observation
	for year := 2019; year <= 2025; year++ {
		observations = append(observations, domain.Observation{
			Country: "Malaysia", Year: year, Score: 0.6,
		})
	}
	records := BuildIndex(observations)

	top := rank("malaysia", records, 3)
	if len(top) != 3 {
		t.Errorf("rank returned %d records, want 3", len(top))
	}
}

func TestRetrieve_NormalizedSimilarity(t *testing.T) {
	records := testRecords()

	docs := Retrieve("qatar 2023 score", records, 5)
	if len(docs) != 2 {
		t.Fatalf("expected 2 retrieved docs, got %d", len(docs))
	}
	if docs[0].Record.Country != "Qatar" {
		t.Fatalf("best match = %s, want Qatar", docs[0].Record.Country)
	}
	if docs[0].Similarity != 1.0 {
		t.Errorf("best match similarity = %f, want 1.0", docs[0].Similarity)
	}
	if docs[1].Similarity <= 0 || docs[1].Similarity > 1 {
		t.Errorf("similarity out of range: %f", docs[1].Similarity)
	}
}

func TestRetrieve_NoMatches(t *testing.T) {
	if docs := Retrieve("zzzzzz", testRecords(), 5); len(docs) != 0 {
		t.Errorf("expected no retrieved docs, got %d", len(docs))
	}
}

func TestClassifyIntent_PriorityOrder(t *testing.T) {
	tests := []struct {
		query string
		want  domain.Intent
	}{
		{"Which countries have the highest ADEI scores?", domain.IntentTopPerformers},
		{"What are the lowest performing countries?", domain.IntentBottomPerformers},
		{"Compare Turkey and Indonesia", domain.IntentComparison},
		{"top countries versus last year", domain.IntentTopPerformers}, // "top" wins over "versus"
		{"Which countries improved the most?", domain.IntentTrend},
		{"Show me Malaysia's performance", domain.IntentGeneral},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			if got := domain.ClassifyIntent(tc.query); got != tc.want {
				t.Errorf("ClassifyIntent(%q) = %s, want %s", tc.query, got, tc.want)
			}
		})
	}
}
