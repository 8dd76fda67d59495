package thinq

import "strings"

// Location identifies one independently controllable zone of a multi-zone
// appliance: an oven cavity or a cooktop burner.
type Location string

// Closed location vocabulary. Sub-device registries are keyed by these values
// only; vendor payloads naming anything else are treated as unlocated.
const (
	LocationOven       Location = "OVEN"
	LocationUpper      Location = "UPPER"
	LocationLower      Location = "LOWER"
	LocationLeftFront  Location = "LEFT_FRONT"
	LocationLeftRear   Location = "LEFT_REAR"
	LocationRightFront Location = "RIGHT_FRONT"
	LocationRightRear  Location = "RIGHT_REAR"
	LocationCenter     Location = "CENTER"
)

var knownLocations = map[string]Location{
	string(LocationOven):       LocationOven,
	string(LocationUpper):      LocationUpper,
	string(LocationLower):      LocationLower,
	string(LocationLeftFront):  LocationLeftFront,
	string(LocationLeftRear):   LocationLeftRear,
	string(LocationRightFront): LocationRightFront,
	string(LocationRightRear):  LocationRightRear,
	string(LocationCenter):     LocationCenter,
}

// defaultOvenLocations is the fallback chain used when the requested location
// is missing or unknown: the conventional primary cavity first.
var defaultOvenLocations = []Location{LocationOven, LocationUpper, LocationLower}

// ParseLocation matches a user-supplied location name against the vocabulary,
// case-insensitively. Unknown or empty names report ok=false.
func ParseLocation(name string) (Location, bool) {
	if name == "" {
		return "", false
	}
	loc, ok := knownLocations[strings.ToUpper(strings.TrimSpace(name))]
	return loc, ok
}
