// Package domain holds the core types of the ADEI analytics service:
// dataset observations, the searchable index records built from them,
// query intents, and the sentinel errors shared across layers.
package domain

import "sort"

// Observation is one country/year row of the ADEI dataset. Score is the
// overall composite in [0,1]. Pillars maps display label to sub-score;
// absent pillar values are simply not present in the map.
type Observation struct {
	Country string
	Year    int
	Score   float64
	Pillars map[string]float64
}

// PillarNames returns the observation's pillar labels in a stable order.
func (o Observation) PillarNames() []string {
	names := make([]string, 0, len(o.Pillars))
	for name := range o.Pillars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PillarLabels maps dataset column names to display labels, in the order
// they are rendered into index records and reports.
var PillarLabels = []struct {
	Column string
	Label  string
}{
	{"adei_economic_opportunities", "Economic Opportunities"},
	{"adei_educational_attainment", "Educational Attainment"},
	{"adei_health_survival", "Health & Survival"},
	{"adei_political_empowerment", "Political Empowerment"},
	{"adei_access_land_non_land_assets", "Access To Assets"},
	{"adei_access_justice", "Access To Justice"},
	{"adei_agency_voice_participation", "Agency & Participation"},
	{"adei_time_use_unpaid_care_work", "Time Use & Care Work"},
}
