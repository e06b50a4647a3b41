package rag

import (
	"fmt"
	"strings"

	"github.com/oic-analytics/adeidex/internal/domain"
)

// BuildIndex flattens observations into searchable records, one record per
// usable observation. Rows missing a country name are skipped. The index
// is rebuilt wholesale on every call; records are never updated in place.
func BuildIndex(observations []domain.Observation) []domain.IndexedRecord {
	records := make([]domain.IndexedRecord, 0, len(observations))
	for _, obs := range observations {
		if obs.Country == "" || obs.Year == 0 {
			continue
		}
		records = append(records, domain.IndexedRecord{
			Text:    renderText(obs),
			Country: obs.Country,
			Year:    obs.Year,
			Score:   obs.Score,
		})
	}
	return records
}

// renderText produces the deterministic one-line summary of an observation.
// Absent pillar values are omitted entirely, not rendered as placeholders.
func renderText(obs domain.Observation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Country: %s, Year: %d, ADEI Score: %.3f", obs.Country, obs.Year, obs.Score)

	// Known pillars first, in dataset column order, then any extras sorted.
	seen := make(map[string]bool, len(obs.Pillars))
	for _, p := range domain.PillarLabels {
		if v, ok := obs.Pillars[p.Label]; ok {
			fmt.Fprintf(&b, ", %s: %.3f", p.Label, v)
			seen[p.Label] = true
		}
	}
	for _, name := range obs.PillarNames() {
		if !seen[name] {
			fmt.Fprintf(&b, ", %s: %.3f", name, obs.Pillars[name])
		}
	}
	return b.String()
}
