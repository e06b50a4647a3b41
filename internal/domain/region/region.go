// Package region carries the static geography of the OIC membership:
// regional groupings, land-neighbor lists, and ISO 3166-1 alpha-3 codes
// for choropleth output.
package region

// Groupings maps each OIC region to its member countries.
var Groupings = map[string][]string{
	"Gulf Cooperation Council (GCC)": {
		"Bahrain", "Kuwait", "Oman", "Qatar", "Saudi Arabia", "United Arab Emirates",
	},
	"Non-GCC Middle East": {
		"Iran", "Iraq", "Jordan", "Lebanon", "Palestine", "Syria", "Yemen",
	},
	"Southeast Asia (ASEAN)": {
		"Brunei Darussalam", "Indonesia", "Malaysia",
	},
	"North Africa": {
		"Algeria", "Egypt", "Libya", "Morocco", "Sudan", "Tunisia",
	},
	"West Africa": {
		"Benin", "Burkina Faso", "Cameroon", "Chad", "Côte d'Ivoire", "The Gambia",
		"Guinea", "Guinea-Bissau", "Mali", "Mauritania", "Niger", "Nigeria",
		"Senegal", "Sierra Leone", "Togo",
	},
	"East Africa": {
		"Comoros", "Djibouti", "Somalia", "Uganda",
	},
	"Central Asia": {
		"Azerbaijan", "Kazakhstan", "Kyrgyzstan", "Tajikistan", "Turkmenistan",
	},
	"South Asia": {
		"Afghanistan", "Bangladesh", "Maldives", "Pakistan",
	},
	"South America": {
		"Guyana", "Suriname",
	},
}

// Neighbors lists land neighbors per country. Simplified; only countries
// with meaningful neighbor sets in the dataset are present.
var Neighbors = map[string][]string{
	"Turkey":       {"Azerbaijan", "Iran", "Iraq", "Syria", "Armenia", "Georgia", "Bulgaria", "Greece"},
	"Saudi Arabia": {"Iraq", "Jordan", "Kuwait", "Oman", "Qatar", "United Arab Emirates", "Yemen"},
	"Egypt":        {"Libya", "Sudan", "Palestine", "Israel"},
	"Iran":         {"Afghanistan", "Azerbaijan", "Iraq", "Pakistan", "Turkey", "Turkmenistan"},
	"Pakistan":     {"Afghanistan", "Iran", "India", "China"},
	"Indonesia":    {"Malaysia", "Brunei", "Papua New Guinea", "East Timor"},
	"Malaysia":     {"Indonesia", "Brunei", "Thailand", "Singapore"},
	"Morocco":      {"Algeria", "Spain"},
	"Algeria":      {"Morocco", "Tunisia", "Libya", "Niger", "Mali"},
	"Nigeria":      {"Niger", "Chad", "Cameroon", "Benin"},
	"Kazakhstan":   {"Kyrgyzstan", "Uzbekistan", "Turkmenistan", "Russia", "China"},
	"Bangladesh":   {"India", "Myanmar"},
	"Jordan":       {"Iraq", "Saudi Arabia", "Syria", "Palestine", "Israel"},
	"Lebanon":      {"Syria", "Palestine", "Israel"},
	"Iraq":         {"Iran", "Turkey", "Syria", "Jordan", "Saudi Arabia", "Kuwait"},
	"Syria":        {"Turkey", "Iraq", "Jordan", "Lebanon", "Palestine", "Israel"},
	"Afghanistan":  {"Iran", "Pakistan", "Tajikistan", "Uzbekistan", "Turkmenistan", "China"},
	"UAE":          {"Saudi Arabia", "Oman"},
	"Kuwait":       {"Iraq", "Saudi Arabia"},
	"Qatar":        {"Saudi Arabia"},
	"Oman":         {"UAE", "Saudi Arabia", "Yemen"},
	"Yemen":        {"Saudi Arabia", "Oman"},
	"Uzbekistan":   {"Afghanistan", "Kazakhstan", "Kyrgyzstan", "Tajikistan", "Turkmenistan"},
	"Turkmenistan": {"Afghanistan", "Iran", "Kazakhstan", "Uzbekistan"},
	"Tajikistan":   {"Afghanistan", "Kyrgyzstan", "Uzbekistan", "China"},
	"Kyrgyzstan":   {"Kazakhstan", "Tajikistan", "Uzbekistan", "China"},
	"Azerbaijan":   {"Iran", "Turkey", "Armenia", "Georgia", "Russia"},
	"Albania":      {"Montenegro", "Kosovo", "North Macedonia", "Greece"},
	"Bosnia and Herzegovina": {"Croatia", "Montenegro", "Serbia"},
	"Kosovo":                 {"Albania", "Montenegro", "North Macedonia", "Serbia"},
}

// ISOCodes maps country names to ISO 3166-1 alpha-3 codes.
var ISOCodes = map[string]string{
	"Afghanistan": "AFG", "Albania": "ALB", "Algeria": "DZA", "Azerbaijan": "AZE",
	"Bahrain": "BHR", "Bangladesh": "BGD", "Benin": "BEN", "Bosnia and Herzegovina": "BIH",
	"Brunei": "BRN", "Burkina Faso": "BFA", "Cameroon": "CMR", "Chad": "TCD",
	"Comoros": "COM", "Ivory Coast": "CIV", "Djibouti": "DJI", "Egypt": "EGY",
	"Gabon": "GAB", "Gambia": "GMB", "Guinea": "GIN", "Guinea-Bissau": "GNB",
	"Guyana": "GUY", "Indonesia": "IDN", "Iran": "IRN", "Iraq": "IRQ",
	"Jordan": "JOR", "Kazakhstan": "KAZ", "Kosovo": "XKX", "Kuwait": "KWT",
	"Kyrgyzstan": "KGZ", "Lebanon": "LBN", "Libya": "LBY", "Malaysia": "MYS",
	"Maldives": "MDV", "Mali": "MLI", "Morocco": "MAR", "Mozambique": "MOZ",
	"Niger": "NER", "Nigeria": "NGA", "Oman": "OMN", "Pakistan": "PAK",
	"Palestine": "PSE", "Qatar": "QAT", "Saudi Arabia": "SAU", "Senegal": "SEN",
	"Sierra Leone": "SLE", "Somalia": "SOM", "Sudan": "SDN", "Suriname": "SUR",
	"Syria": "SYR", "Tajikistan": "TJK", "Togo": "TGO", "Tunisia": "TUN",
	"Turkey": "TUR", "Turkmenistan": "TKM", "Uganda": "UGA", "United Arab Emirates": "ARE",
	"Uzbekistan": "UZB", "Yemen": "YEM",
}

// For returns the OIC region of a country, or "" when it belongs to none.
func For(country string) string {
	for name, members := range Groupings {
		for _, m := range members {
			if m == country {
				return name
			}
		}
	}
	return ""
}

// NeighborsOf returns the known land neighbors of a country.
func NeighborsOf(country string) []string {
	return Neighbors[country]
}

// ISO returns the alpha-3 code for a country, or "" when unknown.
func ISO(country string) string {
	return ISOCodes[country]
}
