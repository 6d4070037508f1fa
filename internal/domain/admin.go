package domain

import "time"

type AdminOverview struct {
	TotalUsers      int           `json:"total_users"`
	TotalRequests   int           `json:"total_requests"`
	CompletedSwaps  int           `json:"completed_swaps"`
	PendingRequests []SwapRequest `json:"pending_requests"`
	// AverageRating is nil when no ratings exist.
	AverageRating *float64      `json:"average_rating"`
	RecentUsers   []UserSummary `json:"recent_users"`
	LastBroadcast *Notification `json:"last_broadcast,omitempty"`
}

type Certificate struct {
	ID              string    `json:"id"`
	SwapRequestID   string    `json:"swap_request_id"`
	SkillName       string    `json:"skill_name"`
	LearnerID       string    `json:"learner_id"`
	LearnerName     string    `json:"learner_name"`
	IssuerID        string    `json:"issuer_id"`
	IssuerName      string    `json:"issuer_name"`
	CompletedAt     time.Time `json:"completed_at"`
	Hash            string    `json:"hash"`
	VerificationURL string    `json:"verification_url,omitempty"`
}
