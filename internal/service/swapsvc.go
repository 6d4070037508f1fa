package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"skillswap/internal/domain"
	"skillswap/internal/store"
)

type SwapNotifier interface {
	NotifySwap(ctx context.Context, kind domain.NotificationKind, actorID string, req domain.SwapRequest)
}

// SwapService drives the swap request lifecycle. Role checks (receiver
// accepts, sender deletes) are made here; status rules live in the store.
type SwapService struct {
	Store    StateStore
	Notifier SwapNotifier
	Logger   *slog.Logger
	Now      func() time.Time
	NewID    func() string
}

type CreateSwapInput struct {
	ToUserID         string
	OfferedSkillID   string
	RequestedSkillID string
	Message          string
}

func (s *SwapService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *SwapService) id() string {
	if s.NewID == nil {
		return newID()
	}
	return s.NewID()
}

func (s *SwapService) notify(ctx context.Context, kind domain.NotificationKind, actorID string, req domain.SwapRequest) {
	if s.Notifier != nil {
		s.Notifier.NotifySwap(ctx, kind, actorID, req)
	}
}

func (s *SwapService) List(_ context.Context, userID string) store.UserRequests {
	return store.RequestsFor(s.Store.Snapshot(), userID)
}

func (s *SwapService) Get(_ context.Context, userID, requestID string) (domain.SwapRequest, error) {
	req, err := store.FindRequest(s.Store.Snapshot(), requestID)
	if err != nil {
		return domain.SwapRequest{}, err
	}
	if !req.Involves(userID) {
		return domain.SwapRequest{}, domain.ErrForbidden
	}
	return req, nil
}

func (s *SwapService) Create(ctx context.Context, fromUserID string, in CreateSwapInput) (domain.SwapRequest, error) {
	in.ToUserID = strings.TrimSpace(in.ToUserID)
	fields := map[string]string{}
	if in.ToUserID == "" {
		fields["to_user_id"] = "required"
	} else if in.ToUserID == fromUserID {
		fields["to_user_id"] = "cannot swap with yourself"
	}
	if strings.TrimSpace(in.OfferedSkillID) == "" {
		fields["skill_offered"] = "required"
	}
	if strings.TrimSpace(in.RequestedSkillID) == "" {
		fields["skill_requested"] = "required"
	}
	if len(in.Message) > 1000 {
		fields["message"] = "must be 1000 characters or less"
	}
	if len(fields) > 0 {
		return domain.SwapRequest{}, domain.NewValidationError(fields)
	}

	state := s.Store.Snapshot()
	from, err := store.FindUser(state, fromUserID)
	if err != nil {
		return domain.SwapRequest{}, err
	}
	to, err := store.FindUser(state, in.ToUserID)
	if err != nil {
		return domain.SwapRequest{}, err
	}

	offered, ok := domain.FindSkill(from.SkillsOffered, in.OfferedSkillID)
	if !ok {
		fields["skill_offered"] = "must be one of your offered skills"
	}
	requested, ok := domain.FindSkill(to.SkillsOffered, in.RequestedSkillID)
	if !ok {
		fields["skill_requested"] = "must be one of their offered skills"
	}
	if len(fields) > 0 {
		return domain.SwapRequest{}, domain.NewValidationError(fields)
	}

	req := domain.SwapRequest{
		ID:             s.id(),
		FromUserID:     from.ID,
		ToUserID:       to.ID,
		SkillOffered:   offered,
		SkillRequested: requested,
		Status:         domain.SwapPending,
		Message:        strings.TrimSpace(in.Message),
		CreatedAt:      s.now(),
	}
	if _, err := s.Store.Dispatch(ctx, store.AddSwapRequest{Request: req}); err != nil {
		return domain.SwapRequest{}, err
	}

	loggerOrDefault(s.Logger).Info("swaps: created", "request_id", req.ID, "from", req.FromUserID, "to", req.ToUserID)
	s.notify(ctx, domain.NotificationSwapRequested, fromUserID, req)
	return req, nil
}

func (s *SwapService) Accept(ctx context.Context, userID, requestID string) (domain.SwapRequest, error) {
	return s.respond(ctx, userID, requestID, domain.SwapAccepted, domain.NotificationSwapAccepted)
}

func (s *SwapService) Reject(ctx context.Context, userID, requestID string) (domain.SwapRequest, error) {
	return s.respond(ctx, userID, requestID, domain.SwapRejected, domain.NotificationSwapRejected)
}

func (s *SwapService) respond(ctx context.Context, userID, requestID string, status domain.SwapStatus, kind domain.NotificationKind) (domain.SwapRequest, error) {
	req, err := store.FindRequest(s.Store.Snapshot(), requestID)
	if err != nil {
		return domain.SwapRequest{}, err
	}
	if req.ToUserID != userID {
		return domain.SwapRequest{}, domain.ErrForbidden
	}

	req.Status = status
	if _, err := s.Store.Dispatch(ctx, store.UpdateSwapRequest{Request: req}); err != nil {
		return domain.SwapRequest{}, err
	}

	loggerOrDefault(s.Logger).Info("swaps: status changed", "request_id", req.ID, "status", status)
	s.notify(ctx, kind, userID, req)
	return req, nil
}

// Delete removes a pending request. Only its sender may do so.
func (s *SwapService) Delete(ctx context.Context, userID, requestID string) error {
	req, err := store.FindRequest(s.Store.Snapshot(), requestID)
	if err != nil {
		return err
	}
	if req.FromUserID != userID {
		return domain.ErrForbidden
	}
	if _, err := s.Store.Dispatch(ctx, store.DeleteSwapRequest{ID: requestID}); err != nil {
		return err
	}
	loggerOrDefault(s.Logger).Info("swaps: deleted", "request_id", requestID)
	return nil
}

// Complete marks an accepted request completed. Either participant may do
// so, and only the completing participant may rate the swap afterwards.
func (s *SwapService) Complete(ctx context.Context, userID, requestID string) (domain.SwapRequest, error) {
	req, err := store.FindRequest(s.Store.Snapshot(), requestID)
	if err != nil {
		return domain.SwapRequest{}, err
	}
	if !req.Involves(userID) {
		return domain.SwapRequest{}, domain.ErrForbidden
	}

	at := s.now()
	if !at.After(req.CreatedAt) {
		at = req.CreatedAt.Add(time.Millisecond)
	}
	req.Status = domain.SwapCompleted
	req.CompletedAt = &at
	req.CompletedBy = userID

	if _, err := s.Store.Dispatch(ctx, store.UpdateSwapRequest{Request: req}); err != nil {
		return domain.SwapRequest{}, err
	}

	loggerOrDefault(s.Logger).Info("swaps: completed", "request_id", req.ID, "by", userID)
	s.notify(ctx, domain.NotificationSwapCompleted, userID, req)
	return req, nil
}

type RatingInput struct {
	Value    int
	Feedback string
}

// Rate records raterID's rating of the other participant of a completed swap.
// The other participant's stored aggregate rating is not changed.
func (s *SwapService) Rate(ctx context.Context, raterID, requestID string, in RatingInput) (domain.Rating, error) {
	req, err := store.FindRequest(s.Store.Snapshot(), requestID)
	if err != nil {
		return domain.Rating{}, err
	}
	if !req.Involves(raterID) {
		return domain.Rating{}, domain.ErrForbidden
	}
	if len(in.Feedback) > 1000 {
		return domain.Rating{}, domain.NewValidationError(map[string]string{"feedback": "must be 1000 characters or less"})
	}

	r := domain.Rating{
		ID:            s.id(),
		SwapRequestID: req.ID,
		FromUserID:    raterID,
		ToUserID:      req.Counterparty(raterID),
		Value:         in.Value,
		Feedback:      strings.TrimSpace(in.Feedback),
		CreatedAt:     s.now(),
	}
	if _, err := s.Store.Dispatch(ctx, store.AddRating{Rating: r}); err != nil {
		return domain.Rating{}, err
	}

	loggerOrDefault(s.Logger).Info("swaps: rated", "request_id", req.ID, "rating_id", r.ID)
	s.notify(ctx, domain.NotificationRated, raterID, req)
	return r, nil
}
