// Package events defines the domain events of the scoring service.
// The bus itself lives in platform/events.
package events

import (
	"clinic_portal_backend/platform/events"

	"github.com/google/uuid"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lead Scoring Events
// =============================================================================

// LeadScored is published after a score has been stored.
type LeadScored struct {
	BaseEvent
	TenantID       uuid.UUID  `json:"tenantId"`
	LeadScoreID    uuid.UUID  `json:"leadScoreId"`
	CustomerID     *uuid.UUID `json:"customerId,omitempty"`
	CustomerPhone  string     `json:"customerPhone,omitempty"`
	TotalScore     int        `json:"totalScore"`
	Category       string     `json:"category"`
	Priority       string     `json:"priority"`
	EstimatedValue int        `json:"estimatedValue"`
	ConfigVersion  string     `json:"configVersion"`
	// Rescored is true when the score replaces an earlier one for the same profile.
	Rescored bool `json:"rescored"`
}

func (e LeadScored) EventName() string { return "leads.score.scored" }
