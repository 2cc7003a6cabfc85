// Package assistant answers citizen questions with canned guidance grounded
// in the caller's own issues.
package assistant

import (
	"fmt"
	"strings"

	"spotsolve-be/analytics"
	"spotsolve-be/models"
)

// Intent names the rule that produced a reply.
type Intent string

const (
	IntentStatus     Intent = "status"
	IntentRoad       Intent = "road"
	IntentLighting   Intent = "lighting"
	IntentDepartment Intent = "department"
	IntentTrends     Intent = "trends"
	IntentResponse   Intent = "response_time"
	IntentReporting  Intent = "reporting"
	IntentFallback   Intent = "fallback"
)

const (
	roadGuidance = "For pothole or road damage, use Department = Public Works and Priority = High if there is immediate safety risk. " +
		"Add a close-up photo and nearest landmark for faster routing."
	lightingGuidance = "For broken streetlights, choose Department = Utilities. " +
		"Include whether the area is dark at night and any nearby cross street. That helps dispatch teams prioritize."
	departmentGuide = "Department guide:\n" +
		"• Potholes / road cracks -> Public Works\n" +
		"• Garbage / sanitation -> Sanitation\n" +
		"• Power / streetlights / water interruptions -> Utilities\n" +
		"• Traffic signals / road markings -> Transportation\n" +
		"• Parks / trees / playgrounds -> Parks"
	noTrends           = "No report trends yet. Once reports are submitted, I can summarize issue patterns."
	noResponseTime     = "There are no resolved reports yet, so average response time is not available."
	reportingChecklist = "To file a strong report: 1) clear title, 2) exact location, 3) one clear photo, 4) safety impact in description. " +
		"I can help you phrase the description if you paste details."
	capabilities = "I can help with report status, department selection, issue trends, and response time insights. " +
		"Ask things like: “status of my reports”, “which department for pothole”, or “city trends this month”."

	// Welcome opens every conversation.
	Welcome = "Welcome to Spot&Solve AI Assistant. I can help you with reporting guidance, report status, " +
		"department mapping, trends, and response-time insights."
)

type rule struct {
	intent   Intent
	keywords []string
	reply    func(issues []models.Issue) string
}

// rules is evaluated top to bottom and the first hit wins. Inputs often
// carry several keywords, so the order decides the answer.
var rules = []rule{
	{IntentStatus, []string{"status", "my report"}, statusSummary},
	{IntentRoad, []string{"pothole", "road"}, static(roadGuidance)},
	{IntentLighting, []string{"streetlight", "light", "electric"}, static(lightingGuidance)},
	{IntentDepartment, []string{"which department", "department"}, static(departmentGuide)},
	{IntentTrends, []string{"trend", "analytics", "top issue"}, trendSummary},
	{IntentResponse, []string{"response", "time"}, responseTime},
	{IntentReporting, []string{"report", "submit"}, static(reportingChecklist)},
}

// Reply is an answer together with the rule that produced it.
type Reply struct {
	Intent Intent `json:"intent"`
	Text   string `json:"text"`
}

// Match runs the decision list over input. It always returns a reply.
func Match(input string, issues []models.Issue) Reply {
	text := strings.ToLower(input)
	for _, r := range rules {
		if containsAny(text, r.keywords) {
			return Reply{Intent: r.intent, Text: r.reply(issues)}
		}
	}
	return Reply{Intent: IntentFallback, Text: capabilities}
}

// Respond returns only the reply text.
func Respond(input string, issues []models.Issue) string {
	return Match(input, issues).Text
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func static(text string) func([]models.Issue) string {
	return func([]models.Issue) string { return text }
}

func statusSummary(issues []models.Issue) string {
	c := analytics.CountStatuses(issues)
	return fmt.Sprintf("Here is your current report status summary:\n"+
		"- Reported: %d\n- Assigned: %d\n- Assigned to Contractor: %d\n- In Progress: %d\n- Resolved: %d\n- Total: %d",
		c.Reported, c.Assigned, c.AssignedToContractor, c.InProgress, c.Resolved, c.Total)
}

func trendSummary(issues []models.Issue) string {
	top := analytics.TopDepartments(issues, 3)
	if len(top) == 0 {
		return noTrends
	}
	parts := make([]string, 0, len(top))
	for _, row := range top {
		parts = append(parts, fmt.Sprintf("%s (%d)", row.Department.Label(), row.Count))
	}
	return "Top issue categories in your reports: " + strings.Join(parts, ", ") + "."
}

func responseTime(issues []models.Issue) string {
	hours := analytics.AverageResolutionHours(issues)
	if hours == 0 {
		return noResponseTime
	}
	return fmt.Sprintf("Average resolution time based on your resolved reports is about %.1f hours.", analytics.RoundTenth(hours))
}
