package rag

import (
	"sort"
	"strings"

	"github.com/oic-analytics/adeidex/internal/domain"
)

// Relevance scoring weights. All scores are integer and additive per document.
const (
	phraseWeight      = 10 // full query appears verbatim in the document text
	countryWeight     = 5  // query token matches the document's country
	superlativeWeight = 3  // query token is a superlative marker
	tokenWeight       = 1  // query token appears anywhere in the text
	performanceBonus  = 5  // score band matches a high/low performance query
)

// Score bands for the performance bonus.
const (
	highScoreFloor = 0.7
	lowScoreCeil   = 0.4
)

// minTokenLen filters out stop-word-sized query tokens.
const minTokenLen = 3

var superlatives = map[string]bool{
	"high": true, "highest": true, "low": true, "lowest": true,
	"best": true, "worst": true, "top": true, "bottom": true,
}

var (
	highMarkers = []string{"high", "highest", "top", "best"}
	lowMarkers  = []string{"low", "lowest", "bottom", "worst"}
)

// Answer scores every record against the query, ranks the qualifying ones,
// classifies the query's intent, and renders the matching answer template.
// It never fails: a query matching nothing yields the fixed no-match text.
func Answer(query string, records []domain.IndexedRecord, k int) (string, domain.Intent) {
	top := rank(query, records, k)
	intent := domain.ClassifyIntent(query)
	if len(top) == 0 {
		return noMatchAnswer(query), intent
	}

	switch intent {
	case domain.IntentTopPerformers:
		return answerTopPerformers(top), intent
	case domain.IntentBottomPerformers:
		return answerBottomPerformers(top), intent
	case domain.IntentComparison:
		return answerComparison(top), intent
	case domain.IntentTrend:
		return answerTrend(top), intent
	default:
		return answerGeneral(top), intent
	}
}

// rank returns the k highest-scoring records for the query. Records scoring
// zero are excluded entirely. Ties keep input order.
func rank(query string, records []domain.IndexedRecord, k int) []domain.IndexedRecord {
	scored := scoreRecords(query, records)
	if len(scored) > k {
		scored = scored[:k]
	}
	top := make([]domain.IndexedRecord, len(scored))
	for i, s := range scored {
		top[i] = s.Record
	}
	return top
}

// scoreRecords applies the weighted keyword heuristic to every record and
// returns the qualifying ones sorted by score descending, input order on ties.
func scoreRecords(query string, records []domain.IndexedRecord) []domain.ScoredRecord {
	queryLower := strings.ToLower(query)
	tokens := strings.Fields(queryLower)
	wantsHigh := containsAny(queryLower, highMarkers)
	wantsLow := containsAny(queryLower, lowMarkers)

	scored := make([]domain.ScoredRecord, 0, len(records))
	for _, rec := range records {
		text := strings.ToLower(rec.Text)
		country := strings.ToLower(rec.Country)

		score := 0
		if queryLower != "" && strings.Contains(text, queryLower) {
			score += phraseWeight
		}

		for _, tok := range tokens {
			if len(tok) < minTokenLen {
				continue
			}
			switch {
			case strings.Contains(country, tok):
				score += countryWeight
			case superlatives[tok]:
				score += superlativeWeight
			case strings.Contains(text, tok):
				score += tokenWeight
			}
		}

		if wantsHigh && rec.Score >= highScoreFloor {
			score += performanceBonus
		}
		if wantsLow && rec.Score <= lowScoreCeil {
			score += performanceBonus
		}

		if score > 0 {
			scored = append(scored, domain.ScoredRecord{Record: rec, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// Retrieve returns the top-k records for display as "source documents",
// annotated with a similarity normalized against the best raw match count.
// Raw counts only tally plain token hits, so normalization never divides by
// zero: any matched document has a raw count of at least one. No matches
// yields an empty slice.
func Retrieve(query string, records []domain.IndexedRecord, k int) []domain.RetrievedDocument {
	tokens := strings.Fields(strings.ToLower(query))

	type rawMatch struct {
		rec   domain.IndexedRecord
		count int
	}
	matched := make([]rawMatch, 0, len(records))
	maxCount := 0
	for _, rec := range records {
		text := strings.ToLower(rec.Text)
		count := 0
		for _, tok := range tokens {
			if strings.Contains(text, tok) {
				count++
			}
		}
		if count > 0 {
			matched = append(matched, rawMatch{rec: rec, count: count})
			if count > maxCount {
				maxCount = count
			}
		}
	}
	if len(matched) == 0 {
		return nil
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].count > matched[j].count
	})
	if len(matched) > k {
		matched = matched[:k]
	}

	docs := make([]domain.RetrievedDocument, len(matched))
	for i, m := range matched {
		docs[i] = domain.RetrievedDocument{
			Record:     m.rec,
			Similarity: float64(m.count) / float64(maxCount),
		}
	}
	return docs
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
