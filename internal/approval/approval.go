// Package approval manages human approval of proposed automated
// changes: persistent pending requests and an interactive terminal
// prompt.
package approval

import (
	"time"
)

// Request statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

// ProposedFix describes one change awaiting approval.
type ProposedFix struct {
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	Original    string `json:"original,omitempty"`
	Fixed       string `json:"fixed,omitempty"`
}

// Request is a saved approval request for a single file's fixes.
type Request struct {
	ID           string        `json:"id"`
	Path         string        `json:"path"`
	QualityScore float64       `json:"quality_score"`
	Fixes        []ProposedFix `json:"fixes"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	DecidedAt    *time.Time    `json:"decided_at,omitempty"`
}
