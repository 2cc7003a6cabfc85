package analytics

import (
	"fmt"
	"math"
	"strconv"

	"spotsolve-be/models"
)

// CommunityGridDegrees is the cell size used to approximate communities.
// One tenth of a degree is roughly 11km of latitude; it is a display
// heuristic and does not follow administrative boundaries.
const CommunityGridDegrees = 0.1

// CommunityKey returns the grid cell for a coordinate pair, or false when
// either coordinate is missing or not finite.
func CommunityKey(lat, lng *float64) (string, bool) {
	if lat == nil || lng == nil || !finite(*lat) || !finite(*lng) {
		return "", false
	}
	return oneDecimal(*lat) + "," + oneDecimal(*lng), true
}

// RoundTenth rounds to one decimal place with halves going away from zero,
// so 12.25 becomes 12.3 and -12.25 becomes -12.3.
func RoundTenth(f float64) float64 {
	return math.Round(f*10) / 10
}

func oneDecimal(f float64) string {
	return strconv.FormatFloat(RoundTenth(f), 'f', 1, 64)
}

// CountCommunities estimates how many distinct areas have reports. Issues
// without usable coordinates neither add to nor subtract from the total.
func CountCommunities(issues []models.Issue) int {
	cells := make(map[string]struct{})
	for _, issue := range issues {
		if key, ok := CommunityKey(issue.Latitude, issue.Longitude); ok {
			cells[key] = struct{}{}
		}
	}
	return len(cells)
}

// CommunityBadge renders the approximate count. The "+" marks it as a lower
// bound rather than an exact administrative figure.
func CommunityBadge(n int) string {
	if n <= 0 {
		return "0 active communities"
	}
	return fmt.Sprintf("%d+ active communities", n)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
