// Package alerts tracks crisis alerts raised when an analysis crosses the
// intervention threshold. Alerts are queued for counsellor review: they
// start pending and move to acknowledged exactly once.
package alerts

import (
	"context"
	"errors"
	"time"

	"github.com/nmorris876/yaadmind/internal/triage"
)

// Status is the review state of an alert.
type Status string

const (
	StatusPending      Status = "pending"
	StatusAcknowledged Status = "acknowledged"
)

var (
	ErrAlertNotFound       = errors.New("alert not found")
	ErrAlreadyAcknowledged = errors.New("alert already acknowledged")
)

// CrisisAlert is a single intervention-needed signal derived from one
// analysis. Flags carries the crisis categories that fired.
type CrisisAlert struct {
	ID             string             `json:"id"`
	UserID         string             `json:"user_id,omitempty"`
	AssessmentID   string             `json:"assessment_id"`
	RiskScore      float64            `json:"risk_score"`
	RiskLevel      triage.RiskLevel   `json:"risk_level"`
	Flags          triage.CrisisFlags `json:"flags"`
	Status         Status             `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
	AcknowledgedBy string             `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time         `json:"acknowledged_at,omitempty"`
}

// Store persists crisis alerts.
type Store interface {
	Create(ctx context.Context, alert *CrisisAlert) error
	Get(ctx context.Context, id string) (*CrisisAlert, error)
	ListPending(ctx context.Context, limit int) ([]*CrisisAlert, error)
	Update(ctx context.Context, alert *CrisisAlert) error
}
