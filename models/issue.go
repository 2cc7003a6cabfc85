package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department enum
type Department string

const (
	Sanitation     Department = "sanitation"
	PublicWorks    Department = "public_works"
	Utilities      Department = "utilities"
	Transportation Department = "transportation"
	Parks          Department = "parks"
	OtherDept      Department = "other"
)

// Departments lists every department in display order.
var Departments = []Department{Sanitation, PublicWorks, Utilities, Transportation, Parks, OtherDept}

// ParseDepartment maps external input onto a known department, defaulting to other.
func ParseDepartment(s string) Department {
	d := Department(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Departments {
		if d == known {
			return d
		}
	}
	return OtherDept
}

// Label returns the department with underscores replaced by spaces.
func (d Department) Label() string {
	return strings.ReplaceAll(string(d), "_", " ")
}

// Priority enum
type Priority string

const (
	Low      Priority = "low"
	Medium   Priority = "medium"
	High     Priority = "high"
	Critical Priority = "critical"
)

var Priorities = []Priority{Low, Medium, High, Critical}

// ParsePriority maps external input onto a known priority, defaulting to medium.
func ParsePriority(s string) Priority {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Priorities {
		if p == known {
			return p
		}
	}
	return Medium
}

// IssueStatus enum
type IssueStatus string

const (
	Reported             IssueStatus = "reported"
	Assigned             IssueStatus = "assigned"
	AssignedToContractor IssueStatus = "assigned_to_contractor"
	InProgress           IssueStatus = "in_progress"
	Resolved             IssueStatus = "resolved"
)

// Statuses lists the lifecycle in order. Resolved is the only terminal state.
var Statuses = []IssueStatus{Reported, Assigned, AssignedToContractor, InProgress, Resolved}

// ParseStatus reports whether s names a known status.
func ParseStatus(s string) (IssueStatus, bool) {
	st := IssueStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

// IsOpen is true for the lifecycle statuses before resolved. Unknown
// statuses are never open.
func (s IssueStatus) IsOpen() bool {
	switch s {
	case Reported, Assigned, AssignedToContractor, InProgress:
		return true
	}
	return false
}

// Issue represents a civic issue reported by a citizen
type Issue struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	ImageURL     *string            `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Location     string             `bson:"location" json:"location"`
	Department   Department         `bson:"department" json:"department"`
	Priority     Priority           `bson:"priority" json:"priority"`
	AICategory   *string            `bson:"aiCategory,omitempty" json:"aiCategory,omitempty"`
	AIConfidence *float64           `bson:"aiConfidence,omitempty" json:"aiConfidence,omitempty"`
	Latitude     *float64           `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude    *float64           `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Status       IssueStatus        `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
