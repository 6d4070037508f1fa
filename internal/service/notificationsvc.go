package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"skillswap/internal/domain"
	"skillswap/internal/store"
)

type NotificationSender interface {
	Send(ctx context.Context, n domain.Notification) error
}

type NotificationLister interface {
	List(ctx context.Context, userID string) ([]domain.Notification, error)
}

type NotificationService struct {
	Store  StateStore
	Sender NotificationSender
	Inbox  NotificationLister
	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string
}

func (s *NotificationService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *NotificationService) id() string {
	if s.NewID == nil {
		return newID()
	}
	return s.NewID()
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	if s.Inbox == nil {
		return []domain.Notification{}, nil
	}
	return s.Inbox.List(ctx, userID)
}

// NotifySwap tells the other participant about something actorID did to req.
// Delivery failures are logged and never fail the caller.
func (s *NotificationService) NotifySwap(ctx context.Context, kind domain.NotificationKind, actorID string, req domain.SwapRequest) {
	if s == nil || s.Sender == nil {
		return
	}
	logger := loggerOrDefault(s.Logger)

	recipient := req.Counterparty(actorID)
	if recipient == "" {
		return
	}
	actorName := actorID
	if actor, err := store.FindUser(s.Store.Snapshot(), actorID); err == nil {
		actorName = actor.Name
	}

	title, body := swapMessage(kind, actorName, req)
	n := domain.Notification{
		ID:        s.id(),
		UserID:    recipient,
		Kind:      kind,
		Title:     title,
		Body:      body,
		RequestID: req.ID,
		CreatedAt: s.now(),
	}
	if err := s.Sender.Send(ctx, n); err != nil {
		logger.Error("notifications: send failed", "err", err, "user_id", recipient, "kind", kind)
	}
}

func swapMessage(kind domain.NotificationKind, actor string, req domain.SwapRequest) (string, string) {
	switch kind {
	case domain.NotificationSwapRequested:
		return "New swap request", actor + " wants to swap " + req.SkillOffered.Name + " for " + req.SkillRequested.Name + "."
	case domain.NotificationSwapAccepted:
		return "Swap accepted", actor + " accepted your swap request."
	case domain.NotificationSwapRejected:
		return "Swap declined", actor + " declined your swap request."
	case domain.NotificationSwapCompleted:
		return "Swap completed", actor + " marked your swap as completed."
	case domain.NotificationRated:
		return "New rating", actor + " rated your swap."
	default:
		return "Swap update", actor + " updated a swap request."
	}
}

// Broadcast sends message to every non-admin user. The returned notification
// has no recipient or ID; each delivered copy gets its own.
func (s *NotificationService) Broadcast(ctx context.Context, message string) (domain.Notification, int, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.Notification{}, 0, domain.NewValidationError(map[string]string{"message": "required"})
	}
	if len(message) > 1000 {
		return domain.Notification{}, 0, domain.NewValidationError(map[string]string{"message": "must be 1000 characters or less"})
	}

	n := domain.Notification{
		Kind:      domain.NotificationBroadcast,
		Title:     "Platform announcement",
		Body:      message,
		CreatedAt: s.now(),
	}
	if s.Sender == nil {
		return n, 0, nil
	}

	logger := loggerOrDefault(s.Logger)
	sent := 0
	for _, u := range s.Store.Snapshot().Users {
		if u.IsAdmin {
			continue
		}
		msg := n
		msg.ID = s.id()
		msg.UserID = u.ID
		if err := s.Sender.Send(ctx, msg); err != nil {
			logger.Error("notifications: broadcast send failed", "err", err, "user_id", u.ID)
			continue
		}
		sent++
	}
	logger.Info("notifications: broadcast sent", "recipients", sent)
	return n, sent, nil
}
