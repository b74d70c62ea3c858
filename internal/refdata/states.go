package refdata

import "strings"

// statesByCountry maps ISO country code to its ordered subdivision names.
// Coverage is deliberately partial; absent codes mean the state selector is
// disabled for that country.
var statesByCountry = map[string][]string{
	"US": {
		"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado", "Connecticut", "Delaware",
		"Florida", "Georgia", "Hawaii", "Idaho", "Illinois", "Indiana", "Iowa", "Kansas", "Kentucky",
		"Louisiana", "Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota", "Mississippi",
		"Missouri", "Montana", "Nebraska", "Nevada", "New Hampshire", "New Jersey", "New Mexico",
		"New York", "North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon", "Pennsylvania",
		"Rhode Island", "South Carolina", "South Dakota", "Tennessee", "Texas", "Utah", "Vermont",
		"Virginia", "Washington", "West Virginia", "Wisconsin", "Wyoming",
	},
	"CA": {
		"Alberta", "British Columbia", "Manitoba", "New Brunswick", "Newfoundland and Labrador",
		"Northwest Territories", "Nova Scotia", "Nunavut", "Ontario", "Prince Edward Island",
		"Quebec", "Saskatchewan", "Yukon",
	},
	"GB": {
		"England", "Scotland", "Wales", "Northern Ireland",
	},
	"AU": {
		"New South Wales", "Queensland", "South Australia", "Tasmania", "Victoria",
		"Western Australia", "Australian Capital Territory", "Northern Territory",
	},
	"IN": {
		"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh", "Goa", "Gujarat",
		"Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka", "Kerala", "Madhya Pradesh",
		"Maharashtra", "Manipur", "Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan",
		"Sikkim", "Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand", "West Bengal",
	},
	"PK": {
		"KPK", "Islamabad", "Punjab", "Balochistan", "Sindh",
	},
}

// StatesForCountry returns the subdivision list for the ISO code in table
// order, or an empty slice when the country has no entries.
func StatesForCountry(code string) []string {
	states, ok := statesByCountry[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return []string{}
	}
	out := make([]string, len(states))
	copy(out, states)
	return out
}

// HasStates reports whether the country participates in the state selector.
func HasStates(code string) bool {
	_, ok := statesByCountry[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// IsValidState reports whether the name appears in the country's table. A
// country without entries accepts only the empty state.
func IsValidState(code, state string) bool {
	state = strings.TrimSpace(state)
	if state == "" {
		return true
	}
	for _, candidate := range statesByCountry[strings.ToUpper(strings.TrimSpace(code))] {
		if candidate == state {
			return true
		}
	}
	return false
}
