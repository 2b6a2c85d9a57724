package domain

// RegionUnknown is substituted whenever the classifier cannot produce a
// member of Regions.
const RegionUnknown = "Unknown"

// Regions is the closed set of geographic category labels. Defined once;
// the classifier prompt and its validation both derive from this slice.
var Regions = []string{
	"Global",
	"China",
	"East Asia",
	"Singapore",
	"Southeast Asia",
	"South Asia",
	"Central Asia",
	"Russia",
	"Oceania",
	"West Asia (Middle East)",
	"Africa",
	"Europe",
	"Latin America & Caribbean",
	"North America",
	RegionUnknown,
}

// ValidRegion reports membership in the fixed label set.
func ValidRegion(label string) bool {
	for _, r := range Regions {
		if r == label {
			return true
		}
	}
	return false
}
