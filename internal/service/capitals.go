package service

// stateCapitals maps each 2-letter state code to its capital city, used to
// key the weather lookup for a legislator's state.
var stateCapitals = map[string]string{
	"AL": "Montgomery", "AK": "Juneau", "AZ": "Phoenix", "AR": "Little Rock",
	"CA": "Sacramento", "CO": "Denver", "CT": "Hartford", "DE": "Dover",
	"FL": "Tallahassee", "GA": "Atlanta", "HI": "Honolulu", "ID": "Boise",
	"IL": "Springfield", "IN": "Indianapolis", "IA": "Des Moines", "KS": "Topeka",
	"KY": "Frankfort", "LA": "Baton Rouge", "ME": "Augusta", "MD": "Annapolis",
	"MA": "Boston", "MI": "Lansing", "MN": "Saint Paul", "MS": "Jackson",
	"MO": "Jefferson City", "MT": "Helena", "NE": "Lincoln", "NV": "Carson City",
	"NH": "Concord", "NJ": "Trenton", "NM": "Santa Fe", "NY": "Albany",
	"NC": "Raleigh", "ND": "Bismarck", "OH": "Columbus", "OK": "Oklahoma City",
	"OR": "Salem", "PA": "Harrisburg", "RI": "Providence", "SC": "Columbia",
	"SD": "Pierre", "TN": "Nashville", "TX": "Austin", "UT": "Salt Lake City",
	"VT": "Montpelier", "VA": "Richmond", "WA": "Olympia", "WV": "Charleston",
	"WI": "Madison", "WY": "Cheyenne", "DC": "Washington",
}

// CapitalForState returns the capital city for a 2-letter state code.
func CapitalForState(state string) (string, bool) {
	capital, ok := stateCapitals[state]
	return capital, ok
}
