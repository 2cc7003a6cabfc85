package analytics

import (
	"time"

	"spotsolve-be/models"
)

// Summary bundles the statistics shown on the dashboard and home page.
type Summary struct {
	Statuses          StatusCounts      `json:"statuses"`
	TopDepartments    []DepartmentCount `json:"topDepartments"`
	Last7Days         []DayCount        `json:"last7Days"`
	AvgResolution     float64           `json:"avgResolutionHours"`
	HasResolutionData bool              `json:"hasResolutionData"`
	ResponseLabel     string            `json:"avgResponseLabel"`
	Communities       int               `json:"communities"`
	CommunityBadge    string            `json:"communityBadge"`
	ActiveReporters   int               `json:"activeReporters"`
}

// Summarize computes every aggregate over one snapshot.
func Summarize(issues []models.Issue, now time.Time) Summary {
	hours, ok := ResolutionHours(issues)
	communities := CountCommunities(issues)
	return Summary{
		Statuses:          CountStatuses(issues),
		TopDepartments:    TopDepartments(issues, 3),
		Last7Days:         DailyCounts(issues, now, 7),
		AvgResolution:     hours,
		HasResolutionData: ok,
		ResponseLabel:     FormatResponseLabel(hours),
		Communities:       communities,
		CommunityBadge:    CommunityBadge(communities),
		ActiveReporters:   ActiveReporters(issues),
	}
}
