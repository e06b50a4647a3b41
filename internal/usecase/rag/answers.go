package rag

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/oic-analytics/adeidex/internal/domain"
)

// listLimit caps how many entries each answer template enumerates.
const listLimit = 5

func noMatchAnswer(query string) string {
	return fmt.Sprintf("I couldn't find relevant information for your query: '%s'. "+
		"Try asking about specific countries, years, or performance indicators.", query)
}

func answerTopPerformers(records []domain.IndexedRecord) string {
	ranked := make([]domain.IndexedRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > listLimit {
		ranked = ranked[:listLimit]
	}

	var b strings.Builder
	b.WriteString("**Top performing countries based on your query:**\n\n")
	sum := 0.0
	for i, rec := range ranked {
		fmt.Fprintf(&b, "%d. **%s** - ADEI Score: %.3f (%d)\n", i+1, rec.Country, rec.Score, rec.Year)
		sum += rec.Score
	}
	fmt.Fprintf(&b, "\nAverage score among top performers: **%.3f**", sum/float64(len(ranked)))
	return b.String()
}

func answerBottomPerformers(records []domain.IndexedRecord) string {
	ranked := make([]domain.IndexedRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score < ranked[j].Score })
	if len(ranked) > listLimit {
		ranked = ranked[:listLimit]
	}

	var b strings.Builder
	b.WriteString("**Countries with lower performance based on your query:**\n\n")
	sum := 0.0
	for i, rec := range ranked {
		fmt.Fprintf(&b, "%d. **%s** - ADEI Score: %.3f (%d)\n", i+1, rec.Country, rec.Score, rec.Year)
		sum += rec.Score
	}
	fmt.Fprintf(&b, "\nAverage score among these countries: **%.3f**", sum/float64(len(ranked)))
	return b.String()
}

func answerComparison(records []domain.IndexedRecord) string {
	type countryStats struct {
		name  string
		years []int
		sum   float64
		count int
	}
	byCountry := make(map[string]*countryStats)
	order := make([]*countryStats, 0)
	for _, rec := range records {
		cs, ok := byCountry[rec.Country]
		if !ok {
			cs = &countryStats{name: rec.Country}
			byCountry[rec.Country] = cs
			order = append(order, cs)
		}
		cs.years = append(cs.years, rec.Year)
		cs.sum += rec.Score
		cs.count++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].sum/float64(order[i].count) > order[j].sum/float64(order[j].count)
	})
	if len(order) > listLimit {
		order = order[:listLimit]
	}

	var b strings.Builder
	b.WriteString("**Comparison results for your query:**\n\n")
	for i, cs := range order {
		years := make([]string, len(cs.years))
		for j, y := range cs.years {
			years[j] = strconv.Itoa(y)
		}
		fmt.Fprintf(&b, "%d. **%s** - Average ADEI: %.3f (Years: %s)\n",
			i+1, cs.name, cs.sum/float64(cs.count), strings.Join(years, ", "))
	}
	return b.String()
}

func answerTrend(records []domain.IndexedRecord) string {
	type yearScore struct {
		year  int
		score float64
	}
	byCountry := make(map[string][]yearScore)
	countryOrder := make([]string, 0)
	for _, rec := range records {
		if _, ok := byCountry[rec.Country]; !ok {
			countryOrder = append(countryOrder, rec.Country)
		}
		byCountry[rec.Country] = append(byCountry[rec.Country], yearScore{rec.Year, rec.Score})
	}

	type trend struct {
		country     string
		change      float64
		first, last float64
	}
	trends := make([]trend, 0, len(countryOrder))
	for _, country := range countryOrder {
		data := byCountry[country]
		if len(data) < 2 {
			continue
		}
		sort.SliceStable(data, func(i, j int) bool { return data[i].year < data[j].year })
		first := data[0].score
		last := data[len(data)-1].score
		trends = append(trends, trend{country: country, change: last - first, first: first, last: last})
	}

	sort.SliceStable(trends, func(i, j int) bool { return trends[i].change > trends[j].change })
	if len(trends) > listLimit {
		trends = trends[:listLimit]
	}

	var b strings.Builder
	b.WriteString("**Trend analysis based on your query:**\n\n")
	for i, tr := range trends {
		direction := "remained stable"
		switch {
		case tr.change > 0:
			direction = "improved"
		case tr.change < 0:
			direction = "declined"
		}
		change := tr.change
		if change < 0 {
			change = -change
		}
		fmt.Fprintf(&b, "%d. **%s** - %s by %.3f points (%.3f → %.3f)\n",
			i+1, tr.country, direction, change, tr.first, tr.last)
	}
	return b.String()
}

func answerGeneral(records []domain.IndexedRecord) string {
	countries := make([]string, 0)
	seenCountry := make(map[string]bool)
	yearSet := make(map[int]bool)
	sum := 0.0
	for _, rec := range records {
		if !seenCountry[rec.Country] {
			seenCountry[rec.Country] = true
			countries = append(countries, rec.Country)
		}
		yearSet[rec.Year] = true
		sum += rec.Score
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)
	yearStrs := make([]string, len(years))
	for i, y := range years {
		yearStrs[i] = strconv.Itoa(y)
	}

	var b strings.Builder
	b.WriteString("**Information relevant to your query:**\n\n")
	shown := countries
	if len(shown) > listLimit {
		shown = shown[:listLimit]
	}
	fmt.Fprintf(&b, "**Countries found:** %s", strings.Join(shown, ", "))
	if len(countries) > listLimit {
		fmt.Fprintf(&b, " and %d more", len(countries)-listLimit)
	}
	fmt.Fprintf(&b, "\n**Years covered:** %s\n", strings.Join(yearStrs, ", "))
	fmt.Fprintf(&b, "**Average ADEI score:** %.3f\n\n", sum/float64(len(records)))

	b.WriteString("**Most relevant data points:**\n")
	shownRecords := records
	if len(shownRecords) > 3 {
		shownRecords = shownRecords[:3]
	}
	for i, rec := range shownRecords {
		fmt.Fprintf(&b, "%d. %s (%d): ADEI Score %.3f\n", i+1, rec.Country, rec.Year, rec.Score)
	}
	return b.String()
}
