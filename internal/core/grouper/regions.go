package grouper

import "strings"

// RegionOther is the catch-all ad group for keywords whose destination
// does not resolve to a known region.
const RegionOther = "other"

// cityRegions maps destination cities to their marketing region. The
// table covers the network's current destinations; unknown cities fall
// into the "other" group.
var cityRegions = map[string]string{
	"london":    "uk-ireland",
	"edinburgh": "uk-ireland",
	"dublin":    "uk-ireland",
	"paris":     "western-europe",
	"amsterdam": "western-europe",
	"brussels":  "western-europe",
	"berlin":    "central-europe",
	"vienna":    "central-europe",
	"prague":    "central-europe",
	"budapest":  "central-europe",
	"rome":      "southern-europe",
	"florence":  "southern-europe",
	"venice":    "southern-europe",
	"barcelona": "southern-europe",
	"madrid":    "southern-europe",
	"lisbon":    "southern-europe",
	"athens":    "southern-europe",
	"new york":  "north-america",
	"chicago":   "north-america",
	"toronto":   "north-america",
	"tokyo":     "asia-pacific",
	"kyoto":     "asia-pacific",
	"singapore": "asia-pacific",
	"sydney":    "asia-pacific",
	"bangkok":   "asia-pacific",
	"dubai":     "middle-east",
	"marrakech": "africa",
	"cape town": "africa",
}

// RegionFor resolves a destination location to its region, or
// RegionOther when unknown or empty.
func RegionFor(location string) string {
	if region, ok := cityRegions[strings.ToLower(strings.TrimSpace(location))]; ok {
		return region
	}
	return RegionOther
}
