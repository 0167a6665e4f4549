package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lead links a buyer to a property they expressed interest in. Contact and
// qualification fields are copied from the buyer at creation time on purpose:
// a lead's displayed hotness must reflect the buyer as they were when the
// interest was recorded, not their current profile.
type Lead struct {
	ID         uuid.UUID
	BuyerID    uuid.UUID
	PropertyID uuid.UUID

	// Snapshot of the buyer at the moment of interest.
	BuyerName     string
	BuyerPhone    string
	BuyerEmail    string
	Budget        int64
	Locations     []string
	PropertyTypes []PropertyType
	Score         int32
	ScoreTier     ScoreTier

	// Overridden is true when the buyer confirmed interest despite a
	// reported mismatch.
	Overridden bool

	Status    LeadStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeadStatus is the marketer workflow state.
type LeadStatus string

const (
	LeadStatusUnspecified LeadStatus = ""
	LeadStatusNew         LeadStatus = "NEW"
	LeadStatusContacted   LeadStatus = "CONTACTED"
	LeadStatusDeal        LeadStatus = "DEAL"
	LeadStatusLost        LeadStatus = "LOST"
)

func (s LeadStatus) String() string {
	return string(s)
}

// ParseLeadStatus maps a wire value to a LeadStatus.
func ParseLeadStatus(s string) LeadStatus {
	switch LeadStatus(normalizeEnum(s)) {
	case LeadStatusNew:
		return LeadStatusNew
	case LeadStatusContacted:
		return LeadStatusContacted
	case LeadStatusDeal:
		return LeadStatusDeal
	case LeadStatusLost:
		return LeadStatusLost
	default:
		return LeadStatusUnspecified
	}
}

// CanTransitionTo reports whether a marketer may move a lead from s to next.
// New leads get contacted; contacted leads close as deal or lost.
func (s LeadStatus) CanTransitionTo(next LeadStatus) bool {
	switch s {
	case LeadStatusNew:
		return next == LeadStatusContacted || next == LeadStatusLost
	case LeadStatusContacted:
		return next == LeadStatusDeal || next == LeadStatusLost
	default:
		return false
	}
}

// LeadFilter carries list filters for the triage screen.
type LeadFilter struct {
	BuyerID    *uuid.UUID
	PropertyID *uuid.UUID
	Status     *LeadStatus
	ScoreTier  *ScoreTier
	Overridden *bool

	Pagination *PaginationParams
}
