// Package matching holds the pure evaluation functions the matching core
// is built on: great-circle distance, gender/preference compatibility and
// shared-interest counting. Nothing in here touches a store.
package matching

import (
	"math"

	"github.com/a-boudoun/matcha-server/internal/models"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Coordinates is a (latitude, longitude) pair in degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// DistanceKm returns the great-circle distance between two coordinate
// pairs in kilometers. Symmetric: DistanceKm(a, b) == DistanceKm(b, a).
func DistanceKm(a, b Coordinates) float64 {
	latA := radians(a.Latitude)
	latB := radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// RoundKm rounds a distance to 2 decimals for presentation.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// Compatible reports whether two profiles may be shown to each other.
// A requester with preference BOTH or unset accepts any gender; the same
// rule applies in the candidate's direction.
func Compatible(requester, candidate *models.Profile) bool {
	return accepts(requester.SexualPreferences, candidate.Gender) &&
		accepts(candidate.SexualPreferences, requester.Gender)
}

func accepts(preference, gender string) bool {
	if preference == models.PreferenceBoth || preference == "" {
		return true
	}
	return preference == gender
}

// SharedInterestCount returns the size of the intersection of two
// interest-tag sets. Duplicate tags within one list count once.
func SharedInterestCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, tag := range a {
		set[tag] = struct{}{}
	}
	count := 0
	for _, tag := range b {
		if _, ok := set[tag]; ok {
			count++
			delete(set, tag)
		}
	}
	return count
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
