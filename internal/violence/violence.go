// Package violence implements the violence-report urgency scoring,
// escalation and inter-agency routing path.
//
// This path is independent of the triage engine: it shares only the
// lexicon keyword-matching primitive. Reports carry their own status state
// machine (pending → reviewed → escalated|resolved) driven by human
// reviewers once the engine has produced an initial urgency and routing.
package violence

import (
	"context"
	"errors"
	"time"
)

// ReportType tags the category of violence being reported.
type ReportType string

const (
	TypeMurder            ReportType = "murder"
	TypeFirearms          ReportType = "firearms"
	TypePlannedViolence   ReportType = "planned_violence"
	TypeGang              ReportType = "gang"
	TypeCommunityViolence ReportType = "community_violence"
	TypeDomestic          ReportType = "domestic"
	TypeOther             ReportType = "other"
)

// KnownType reports whether t is one of the recognized report types.
func KnownType(t ReportType) bool {
	switch t {
	case TypeMurder, TypeFirearms, TypePlannedViolence, TypeGang,
		TypeCommunityViolence, TypeDomestic, TypeOther:
		return true
	}
	return false
}

// Agency identifies an external response agency a report can route to.
type Agency string

const (
	AgencyPolice        Agency = "JCF"                 // Jamaica Constabulary Force
	AgencyCommunity     Agency = "PMI"                 // Peace Management Initiative
	AgencyWomensCrisis  Agency = "WOMEN_CRISIS_CENTRE" // domestic violence response
	AgencyYouthServices Agency = "YOUTH_SERVICES"
)

// Status is the report lifecycle state. Transitions are one-way:
// pending → reviewed → escalated | resolved.
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewed  Status = "reviewed"
	StatusEscalated Status = "escalated"
	StatusResolved  Status = "resolved"
)

// CanTransition reports whether a report may move from one status to
// another. Escalated and resolved are terminal.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusReviewed
	case StatusReviewed:
		return to == StatusEscalated || to == StatusResolved
	default:
		return false
	}
}

// Entities are the NER collaborator's extracted spans, grouped by kind.
type Entities struct {
	Locations     []string `json:"locations"`
	Times         []string `json:"times"`
	Persons       []string `json:"persons"`
	Organizations []string `json:"organizations"`
}

// Assessment is the engine's verdict on one report.
type Assessment struct {
	Entities       Entities `json:"entities"`
	UrgencyScore   float64  `json:"urgencyScore"`
	ShouldEscalate bool     `json:"shouldEscalate"`
	RoutedTo       []Agency `json:"routedTo"`
}

// Report is a persisted violence report with its assessment attached.
// Content is stored PII-scrubbed; reporter may be empty for anonymous
// submissions.
type Report struct {
	ID         string     `json:"id"`
	ReporterID string     `json:"reporterId,omitempty"`
	Type       ReportType `json:"type"`
	Content    string     `json:"content"`
	Assessment Assessment `json:"assessment"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownReportType = errors.New("unknown report type")
	ErrEmptyContent      = errors.New("report content is empty after trimming")
	ErrContentTooLong    = errors.New("report content exceeds maximum length")
)

// Store persists reports.
type Store interface {
	Create(ctx context.Context, r *Report) error
	Get(ctx context.Context, id string) (*Report, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]*Report, error)
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error
}
