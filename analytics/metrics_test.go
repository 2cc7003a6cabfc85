package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spotsolve-be/models"
)

var base = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func issue(status models.IssueStatus, dept models.Department) models.Issue {
	return models.Issue{
		ID:         primitive.NewObjectID(),
		Status:     status,
		Department: dept,
		CreatedAt:  base,
	}
}

func resolvedAfter(d time.Duration) models.Issue {
	i := issue(models.Resolved, models.PublicWorks)
	updated := i.CreatedAt.Add(d)
	i.UpdatedAt = &updated
	return i
}

func TestAverageResolutionHours(t *testing.T) {
	issues := []models.Issue{
		resolvedAfter(2 * time.Hour),
		resolvedAfter(4 * time.Hour),
		issue(models.InProgress, models.Parks),
	}
	assert.InDelta(t, 3.0, AverageResolutionHours(issues), 1e-9)

	reversed := []models.Issue{issues[2], issues[1], issues[0]}
	assert.InDelta(t, 3.0, AverageResolutionHours(reversed), 1e-9)
}

func TestAverageResolutionHoursEmpty(t *testing.T) {
	assert.Equal(t, 0.0, AverageResolutionHours(nil))
	assert.Equal(t, 0.0, AverageResolutionHours([]models.Issue{issue(models.Reported, models.Parks)}))

	_, ok := ResolutionHours(nil)
	assert.False(t, ok)
}

func TestAverageResolutionHoursSkipsMalformed(t *testing.T) {
	noStamp := issue(models.Resolved, models.Parks)

	badCreated := resolvedAfter(time.Hour)
	badCreated.CreatedAt = time.Time{}

	issues := []models.Issue{resolvedAfter(6 * time.Hour), noStamp, badCreated}
	assert.InDelta(t, 6.0, AverageResolutionHours(issues), 1e-9)
}

func TestResolutionHoursDistinguishesInstantResolution(t *testing.T) {
	hours, ok := ResolutionHours([]models.Issue{resolvedAfter(0)})
	assert.True(t, ok)
	assert.Equal(t, 0.0, hours)
}

func TestCountStatuses(t *testing.T) {
	issues := []models.Issue{
		issue(models.Reported, ""),
		issue(models.Reported, ""),
		issue(models.Reported, ""),
		issue(models.Resolved, ""),
	}
	counts := CountStatuses(issues)
	assert.Equal(t, StatusCounts{Reported: 3, Resolved: 1, Total: 4}, counts)
	assert.Equal(t, counts.Total,
		counts.Reported+counts.Assigned+counts.AssignedToContractor+counts.InProgress+counts.Resolved)
	assert.Equal(t, 3, counts.Open())
	assert.Equal(t, 1, counts.Of(models.Resolved))
	assert.Equal(t, 0, counts.Of("closed"))

	assert.Equal(t, StatusCounts{}, CountStatuses(nil))
}

func TestTopDepartments(t *testing.T) {
	issues := []models.Issue{
		issue(models.Reported, models.Parks),
		issue(models.Reported, models.Sanitation),
		issue(models.Reported, models.Sanitation),
		issue(models.Reported, ""),
		issue(models.Reported, models.Utilities),
		issue(models.Reported, models.PublicWorks),
		issue(models.Reported, models.PublicWorks),
		issue(models.Reported, models.Sanitation),
	}

	top := TopDepartments(issues, 3)
	require.Len(t, top, 3)
	assert.Equal(t, []DepartmentCount{
		{models.Sanitation, 3},
		{models.PublicWorks, 2},
		{models.Parks, 1},
	}, top)

	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Count, top[i].Count)
	}
	for _, row := range top {
		assert.NotEqual(t, models.Transportation, row.Department)
	}
}

func TestTopDepartmentsMissingDepartmentIsOther(t *testing.T) {
	top := TopDepartments([]models.Issue{issue(models.Reported, "")}, 3)
	assert.Equal(t, []DepartmentCount{{models.OtherDept, 1}}, top)
}

func TestTopDepartmentsEmpty(t *testing.T) {
	assert.Empty(t, TopDepartments(nil, 3))
	assert.Empty(t, TopDepartments([]models.Issue{issue(models.Reported, models.Parks)}, 0))
}

func TestDailyCounts(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	mk := func(ts time.Time) models.Issue {
		i := issue(models.Reported, models.Parks)
		i.CreatedAt = ts
		return i
	}
	issues := []models.Issue{
		mk(now.Add(-time.Hour)),
		mk(now.AddDate(0, 0, -1)),
		mk(now.AddDate(0, 0, -1)),
		mk(now.AddDate(0, 0, -6)),
		mk(now.AddDate(0, 0, -7)),
		{Status: models.Reported},
	}

	days := DailyCounts(issues, now, 7)
	require.Len(t, days, 7)
	assert.Equal(t, DayCount{"2025-03-04", 1}, days[0])
	assert.Equal(t, DayCount{"2025-03-09", 2}, days[5])
	assert.Equal(t, DayCount{"2025-03-10", 1}, days[6])
	assert.Equal(t, 0, days[3].Count)
}

func TestActiveReporters(t *testing.T) {
	owner := primitive.NewObjectID()
	a := issue(models.Reported, "")
	a.UserID = owner
	b := issue(models.Resolved, "")
	b.UserID = owner
	c := issue(models.Reported, "")
	c.UserID = primitive.NewObjectID()
	d := issue(models.Reported, "")

	assert.Equal(t, 2, ActiveReporters([]models.Issue{a, b, c, d}))
}

func TestFormatResponseLabel(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0"},
		{-1, "0"},
		{math.NaN(), "0"},
		{0.001, "1m"},
		{0.5, "30m"},
		{1, "1.0h"},
		{5.24, "5.2h"},
		{2.25, "2.3h"},
		{5.25, "5.3h"},
		{23.9, "23.9h"},
		{36, "2d"},
		{72, "3d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatResponseLabel(tt.hours), "hours=%v", tt.hours)
	}
}

func TestSummarize(t *testing.T) {
	lat, lng := 12.9716, 77.5946
	i := resolvedAfter(3 * time.Hour)
	i.Latitude, i.Longitude = &lat, &lng

	s := Summarize([]models.Issue{i, issue(models.Reported, models.Parks)}, base)
	assert.Equal(t, 2, s.Statuses.Total)
	assert.True(t, s.HasResolutionData)
	assert.InDelta(t, 3.0, s.AvgResolution, 1e-9)
	assert.Equal(t, "3.0h", s.ResponseLabel)
	assert.Equal(t, 1, s.Communities)
	assert.Equal(t, "1+ active communities", s.CommunityBadge)
	assert.Len(t, s.Last7Days, 7)
	assert.Len(t, s.TopDepartments, 2)
}
