package analytics

import (
	"regexp"
	"strconv"
	"strings"
)

// AIClassLabels maps positional classifier indices to issue categories.
var AIClassLabels = []string{"pothole", "streetlight", "garbage", "drainage", "road_damage", "other"}

var classIndexRe = regexp.MustCompile(`(?i)^class_(\d+)$`)

// NormalizeAICategory turns a classifier label into an issue category. An
// empty label stays empty. Placeholder labels like "class_2" resolve through
// AIClassLabels; unknown indices and readable labels are returned unchanged.
func NormalizeAICategory(raw string) string {
	if raw == "" {
		return ""
	}
	m := classIndexRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return raw
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil || idx < 0 || idx >= len(AIClassLabels) {
		return raw
	}
	return AIClassLabels[idx]
}
