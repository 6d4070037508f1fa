package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap/internal/domain"
	"skillswap/internal/store"
)

func newSwapService(t *testing.T) (*SwapService, *store.Store, *stubNotifier) {
	t.Helper()
	st := newDemoStore(t)
	n := &stubNotifier{}
	return &SwapService{
		Store:    st,
		Notifier: n,
		Now:      fixedNow,
		NewID:    sequentialIDs("swap"),
	}, st, n
}

func TestSwapCreate(t *testing.T) {
	svc, st, notifier := newSwapService(t)

	req, err := svc.Create(context.Background(), "3", CreateSwapInput{
		ToUserID:         "1",
		OfferedSkillID:   "4",
		RequestedSkillID: "5",
		Message:          "  guitar for photos?  ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if req.ID != "swap-1" || req.Status != domain.SwapPending {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.SkillOffered.Name != "Guitar Playing" || req.SkillRequested.Name != "Photography" {
		t.Fatalf("unexpected skills: %+v / %+v", req.SkillOffered, req.SkillRequested)
	}
	if req.Message != "guitar for photos?" {
		t.Fatalf("message not trimmed: %q", req.Message)
	}
	if !req.CreatedAt.Equal(fixedNow()) {
		t.Fatalf("created at: %s", req.CreatedAt)
	}

	if _, err := store.FindRequest(st.Snapshot(), "swap-1"); err != nil {
		t.Fatalf("request not stored: %v", err)
	}
	if len(notifier.calls) != 1 || notifier.calls[0].kind != domain.NotificationSwapRequested || notifier.calls[0].actorID != "3" {
		t.Fatalf("unexpected notifications: %+v", notifier.calls)
	}
}

func TestSwapCreateValidation(t *testing.T) {
	svc, st, notifier := newSwapService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		in    CreateSwapInput
		field string
	}{
		{"missing offered skill", CreateSwapInput{ToUserID: "1", RequestedSkillID: "5"}, "skill_offered"},
		{"missing requested skill", CreateSwapInput{ToUserID: "1", OfferedSkillID: "4"}, "skill_requested"},
		{"self", CreateSwapInput{ToUserID: "3", OfferedSkillID: "4", RequestedSkillID: "6"}, "to_user_id"},
		{"skill not offered by sender", CreateSwapInput{ToUserID: "1", OfferedSkillID: "1", RequestedSkillID: "5"}, "skill_offered"},
		{"skill not offered by receiver", CreateSwapInput{ToUserID: "1", OfferedSkillID: "4", RequestedSkillID: "2"}, "skill_requested"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "3", tc.in)
			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := vErr.Fields[tc.field]; !ok {
				t.Fatalf("expected field %q in %v", tc.field, vErr.Fields)
			}
		})
	}

	_, err := svc.Create(ctx, "3", CreateSwapInput{ToUserID: "ghost", OfferedSkillID: "4", RequestedSkillID: "5"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if got := len(st.Snapshot().SwapRequests); got != 2 {
		t.Fatalf("store changed: %d requests", got)
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("unexpected notifications: %+v", notifier.calls)
	}
}

func TestSwapAcceptRejectReceiverOnly(t *testing.T) {
	svc, _, _ := newSwapService(t)
	ctx := context.Background()

	if _, err := svc.Accept(ctx, "1", "req1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("sender accept: expected forbidden, got %v", err)
	}
	if _, err := svc.Reject(ctx, "3", "req1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("outsider reject: expected forbidden, got %v", err)
	}

	req, err := svc.Accept(ctx, "2", "req1")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if req.Status != domain.SwapAccepted {
		t.Fatalf("status: %s", req.Status)
	}

	if _, err := svc.Reject(ctx, "2", "req1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("reject accepted: expected invalid transition, got %v", err)
	}
	if _, err := svc.Accept(ctx, "2", "req1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("accept accepted: expected invalid transition, got %v", err)
	}
	if _, err := svc.Accept(ctx, "2", "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing: expected not found, got %v", err)
	}
}

func TestSwapRejectIsTerminal(t *testing.T) {
	svc, st, _ := newSwapService(t)
	ctx := context.Background()

	if _, err := svc.Reject(ctx, "2", "req1"); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if _, err := svc.Accept(ctx, "2", "req1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if err := svc.Delete(ctx, "1", "req1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("delete rejected: expected invalid transition, got %v", err)
	}
	if st.Version() != 1 {
		t.Fatalf("unexpected dispatch count: %d", st.Version())
	}
	if got, _ := store.FindRequest(st.Snapshot(), "req1"); got.Status != domain.SwapRejected {
		t.Fatalf("status changed: %s", got.Status)
	}
}

func TestSwapDeleteSenderOnly(t *testing.T) {
	svc, st, _ := newSwapService(t)
	ctx := context.Background()

	if err := svc.Delete(ctx, "2", "req1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("receiver delete: expected forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, "1", "req1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	reqs := st.Snapshot().SwapRequests
	if len(reqs) != 1 || reqs[0].ID != "req2" {
		t.Fatalf("unexpected requests after delete: %+v", reqs)
	}
	if err := svc.Delete(ctx, "1", "req1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected not found, got %v", err)
	}
}

func TestSwapCompleteAndRate(t *testing.T) {
	svc, st, notifier := newSwapService(t)
	ctx := context.Background()

	if _, err := svc.Complete(ctx, "1", "req2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("outsider complete: expected forbidden, got %v", err)
	}

	req, err := svc.Complete(ctx, "3", "req2")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if req.Status != domain.SwapCompleted || req.CompletedAt == nil || req.CompletedBy != "3" {
		t.Fatalf("unexpected completion: %+v", req)
	}
	if !req.CompletedAt.After(req.CreatedAt) {
		t.Fatalf("completed at %s not after created at %s", req.CompletedAt, req.CreatedAt)
	}

	if _, err := svc.Complete(ctx, "2", "req2"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("second complete: expected invalid transition, got %v", err)
	}

	if _, err := svc.Rate(ctx, "2", "req2", RatingInput{Value: 5}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("non-completer rating: expected validation, got %v", err)
	}
	if _, err := svc.Rate(ctx, "3", "req2", RatingInput{Value: 0}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("zero rating: expected validation, got %v", err)
	}

	rating, err := svc.Rate(ctx, "3", "req2", RatingInput{Value: 5, Feedback: " Great! "})
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if rating.FromUserID != "3" || rating.ToUserID != "2" || rating.Feedback != "Great!" {
		t.Fatalf("unexpected rating: %+v", rating)
	}

	sarah, err := store.FindUser(st.Snapshot(), "2")
	if err != nil {
		t.Fatalf("FindUser: %v", err)
	}
	if sarah.Rating != 4.9 || sarah.TotalRatings != 31 {
		t.Fatalf("aggregate changed: %v / %d", sarah.Rating, sarah.TotalRatings)
	}

	if _, err := svc.Rate(ctx, "3", "req2", RatingInput{Value: 4}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("second rating: expected validation, got %v", err)
	}

	kinds := []domain.NotificationKind{}
	for _, c := range notifier.calls {
		kinds = append(kinds, c.kind)
	}
	if len(kinds) != 2 || kinds[0] != domain.NotificationSwapCompleted || kinds[1] != domain.NotificationRated {
		t.Fatalf("unexpected notifications: %v", kinds)
	}
}

func TestSwapCompleteBumpsClockBehindCreation(t *testing.T) {
	svc, _, _ := newSwapService(t)
	svc.Now = func() time.Time { return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC) }

	req, err := svc.Complete(context.Background(), "2", "req2")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	want := req.CreatedAt.Add(time.Millisecond)
	if !req.CompletedAt.Equal(want) {
		t.Fatalf("completed at: got %s want %s", req.CompletedAt, want)
	}
}

func TestSwapList(t *testing.T) {
	svc, _, _ := newSwapService(t)

	got := svc.List(context.Background(), "2")
	if len(got.Sent) != 1 || got.Sent[0].ID != "req2" {
		t.Fatalf("sent: %+v", got.Sent)
	}
	if len(got.Received) != 1 || got.Received[0].ID != "req1" {
		t.Fatalf("received: %+v", got.Received)
	}

	if _, err := svc.Get(context.Background(), "3", "req1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("outsider get: expected forbidden, got %v", err)
	}
}
