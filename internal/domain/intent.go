package domain

import "strings"

// Intent is the classified purpose of a natural-language query. It selects
// the answer template the engine renders from the ranked records.
type Intent string

const (
	// IntentTopPerformers asks for the highest-scoring countries.
	IntentTopPerformers Intent = "top_performers"
	// IntentBottomPerformers asks for the lowest-scoring countries.
	IntentBottomPerformers Intent = "bottom_performers"
	// IntentComparison asks to compare countries.
	IntentComparison Intent = "comparison"
	// IntentTrend asks about change over time.
	IntentTrend Intent = "trend"
	// IntentGeneral is the fallback for everything else.
	IntentGeneral Intent = "general"
)

// intentRule pairs a marker list with the intent it selects.
type intentRule struct {
	markers []string
	intent  Intent
}

// intentRules is evaluated top to bottom; the first rule whose marker
// appears in the query wins. The order is load-bearing: "top" must be
// checked before "compare" so "top countries vs last year" still ranks.
var intentRules = []intentRule{
	{[]string{"highest", "top", "best"}, IntentTopPerformers},
	{[]string{"lowest", "bottom", "worst"}, IntentBottomPerformers},
	{[]string{"compare", "comparison", "vs", "versus"}, IntentComparison},
	{[]string{"trend", "change", "improve", "progress"}, IntentTrend},
}

// ClassifyIntent maps a free-text query onto a closed set of intents.
func ClassifyIntent(query string) Intent {
	q := strings.ToLower(query)
	for _, rule := range intentRules {
		for _, m := range rule.markers {
			if strings.Contains(q, m) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}
