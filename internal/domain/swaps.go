package domain

import "time"

type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapAccepted  SwapStatus = "accepted"
	SwapRejected  SwapStatus = "rejected"
	SwapCompleted SwapStatus = "completed"
	SwapCancelled SwapStatus = "cancelled"
)

func (s SwapStatus) Valid() bool {
	switch s {
	case SwapPending, SwapAccepted, SwapRejected, SwapCompleted, SwapCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition leaves s.
func (s SwapStatus) IsTerminal() bool {
	return len(swapTransitions[s]) == 0
}

var swapTransitions = map[SwapStatus][]SwapStatus{
	SwapPending:  {SwapAccepted, SwapRejected},
	SwapAccepted: {SwapCompleted},
}

// CanTransition reports whether a request may move from one status to another.
// Staying in the same status is not a transition.
func CanTransition(from, to SwapStatus) bool {
	for _, next := range swapTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type SwapRequest struct {
	ID             string     `json:"id"`
	FromUserID     string     `json:"from_user_id"`
	ToUserID       string     `json:"to_user_id"`
	SkillOffered   Skill      `json:"skill_offered"`
	SkillRequested Skill      `json:"skill_requested"`
	Status         SwapStatus `json:"status"`
	Message        string     `json:"message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CompletedBy    string     `json:"completed_by,omitempty"`
}

func (r SwapRequest) Involves(userID string) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

// Counterparty returns the other participant, or "" if userID is not one.
func (r SwapRequest) Counterparty(userID string) string {
	switch userID {
	case r.FromUserID:
		return r.ToUserID
	case r.ToUserID:
		return r.FromUserID
	default:
		return ""
	}
}

type Rating struct {
	ID            string    `json:"id"`
	SwapRequestID string    `json:"swap_request_id"`
	FromUserID    string    `json:"from_user_id"`
	ToUserID      string    `json:"to_user_id"`
	Value         int       `json:"rating"`
	Feedback      string    `json:"feedback,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	MinRating = 1
	MaxRating = 5
)

// RatingSummary is derived from Rating records. It never feeds back into User.Rating.
type RatingSummary struct {
	UserID  string  `json:"user_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
