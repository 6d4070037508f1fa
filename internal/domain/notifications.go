package domain

import "time"

type NotificationKind string

const (
	NotificationSwapRequested NotificationKind = "swap_requested"
	NotificationSwapAccepted  NotificationKind = "swap_accepted"
	NotificationSwapRejected  NotificationKind = "swap_rejected"
	NotificationSwapCompleted NotificationKind = "swap_completed"
	NotificationRated         NotificationKind = "rated"
	NotificationBroadcast     NotificationKind = "broadcast"
)

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	RequestID string           `json:"request_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
