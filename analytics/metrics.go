// Package analytics derives dashboard statistics from snapshots of issues.
// Every function here is pure: malformed records are skipped, empty input
// yields zero values, and nothing returns an error.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"spotsolve-be/models"
)

// StatusCounts holds one counter per lifecycle status. Total is the size of
// the input, so statuses outside the lifecycle only show up there.
type StatusCounts struct {
	Reported             int `json:"reported"`
	Assigned             int `json:"assigned"`
	AssignedToContractor int `json:"assignedToContractor"`
	InProgress           int `json:"inProgress"`
	Resolved             int `json:"resolved"`
	Total                int `json:"total"`
}

// Open is the number of issues in an open lifecycle status.
func (c StatusCounts) Open() int {
	n := 0
	for _, s := range models.Statuses {
		if s.IsOpen() {
			n += c.Of(s)
		}
	}
	return n
}

// Of returns the counter for one lifecycle status, 0 for unknown ones.
func (c StatusCounts) Of(s models.IssueStatus) int {
	switch s {
	case models.Reported:
		return c.Reported
	case models.Assigned:
		return c.Assigned
	case models.AssignedToContractor:
		return c.AssignedToContractor
	case models.InProgress:
		return c.InProgress
	case models.Resolved:
		return c.Resolved
	}
	return 0
}

// DepartmentCount is one row of a department load ranking.
type DepartmentCount struct {
	Department models.Department `json:"department"`
	Count      int               `json:"count"`
}

// DayCount is the number of issues created on a calendar day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ResolutionHours returns the mean hours between creation and resolution for
// resolved issues with an update stamp. ok is false when no issue qualifies,
// which lets callers tell "no data" apart from an instant resolution.
func ResolutionHours(issues []models.Issue) (hours float64, ok bool) {
	var total float64
	var n int
	for _, issue := range issues {
		if issue.Status != models.Resolved || issue.UpdatedAt == nil {
			continue
		}
		if issue.CreatedAt.IsZero() || issue.UpdatedAt.IsZero() {
			continue
		}
		total += issue.UpdatedAt.Sub(issue.CreatedAt).Hours()
		n++
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// AverageResolutionHours is ResolutionHours collapsed to 0 when absent.
func AverageResolutionHours(issues []models.Issue) float64 {
	hours, _ := ResolutionHours(issues)
	return hours
}

// CountStatuses tallies issues per status.
func CountStatuses(issues []models.Issue) StatusCounts {
	counts := StatusCounts{Total: len(issues)}
	for _, issue := range issues {
		switch issue.Status {
		case models.Reported:
			counts.Reported++
		case models.Assigned:
			counts.Assigned++
		case models.AssignedToContractor:
			counts.AssignedToContractor++
		case models.InProgress:
			counts.InProgress++
		case models.Resolved:
			counts.Resolved++
		}
	}
	return counts
}

// TopDepartments ranks departments by issue count, highest first. Ties keep
// the order in which departments were first seen. At most k rows are returned.
func TopDepartments(issues []models.Issue, k int) []DepartmentCount {
	if k <= 0 {
		return []DepartmentCount{}
	}

	index := make(map[models.Department]int)
	ranked := []DepartmentCount{}
	for _, issue := range issues {
		dept := models.OtherDept
		if issue.Department != "" {
			dept = models.ParseDepartment(string(issue.Department))
		}
		if i, seen := index[dept]; seen {
			ranked[i].Count++
			continue
		}
		index[dept] = len(ranked)
		ranked = append(ranked, DepartmentCount{Department: dept, Count: 1})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// DailyCounts buckets issue creation into the last `days` calendar days
// ending with the day of now, oldest first. Days without issues report 0.
func DailyCounts(issues []models.Issue, now time.Time, days int) []DayCount {
	if days <= 0 {
		return []DayCount{}
	}

	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	start := today.AddDate(0, 0, -(days - 1))

	out := make([]DayCount, days)
	slot := make(map[string]int, days)
	for i := range out {
		out[i].Date = start.AddDate(0, 0, i).Format("2006-01-02")
		slot[out[i].Date] = i
	}

	for _, issue := range issues {
		if issue.CreatedAt.IsZero() {
			continue
		}
		if i, ok := slot[issue.CreatedAt.In(loc).Format("2006-01-02")]; ok {
			out[i].Count++
		}
	}
	return out
}

// ActiveReporters counts distinct owners across issues.
func ActiveReporters(issues []models.Issue) int {
	seen := make(map[string]struct{})
	for _, issue := range issues {
		if issue.UserID.IsZero() {
			continue
		}
		seen[issue.UserID.Hex()] = struct{}{}
	}
	return len(seen)
}

// FormatResponseLabel renders an average response time for the home page:
// minutes under an hour, tenths of hours under a day, whole days beyond.
func FormatResponseLabel(hours float64) string {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return "0"
	}
	if hours < 1 {
		minutes := math.Max(1, math.Round(hours*60))
		return fmt.Sprintf("%dm", int(minutes))
	}
	if hours < 24 {
		return oneDecimal(hours) + "h"
	}
	return fmt.Sprintf("%dd", int(math.Round(hours/24)))
}
