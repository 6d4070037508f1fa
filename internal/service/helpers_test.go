package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"skillswap/internal/domain"
	"skillswap/internal/matching"
	"skillswap/internal/seed"
	"skillswap/internal/store"
)

func newDemoStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := seed.Demo()
	if err != nil {
		t.Fatalf("seed.Demo: %v", err)
	}
	return store.New(s)
}

func fixedNow() time.Time {
	return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
}

func sequentialIDs(prefix string) func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type notifyCall struct {
	kind    domain.NotificationKind
	actorID string
	req     domain.SwapRequest
}

type stubNotifier struct {
	calls []notifyCall
}

func (s *stubNotifier) NotifySwap(_ context.Context, kind domain.NotificationKind, actorID string, req domain.SwapRequest) {
	s.calls = append(s.calls, notifyCall{kind: kind, actorID: actorID, req: req})
}

type stubSender struct {
	sendFunc func(context.Context, domain.Notification) error
	sent     []domain.Notification
}

func (s *stubSender) Send(ctx context.Context, n domain.Notification) error {
	if s.sendFunc != nil {
		if err := s.sendFunc(ctx, n); err != nil {
			return err
		}
	}
	s.sent = append(s.sent, n)
	return nil
}

type stubMatchCache struct {
	t *testing.T

	getFunc func(context.Context, string, store.Revision) ([]matching.Match, bool, error)
	setFunc func(context.Context, string, store.Revision, []matching.Match) error
}

func (s *stubMatchCache) Get(ctx context.Context, seekerID string, rev store.Revision) ([]matching.Match, bool, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, seekerID, rev)
	}
	s.t.Fatalf("Get called unexpectedly")
	return nil, false, nil
}

func (s *stubMatchCache) Set(ctx context.Context, seekerID string, rev store.Revision, matches []matching.Match) error {
	if s.setFunc != nil {
		return s.setFunc(ctx, seekerID, rev, matches)
	}
	s.t.Fatalf("Set called unexpectedly")
	return nil
}

type stubMatchObserver struct {
	observed            int
	hits, misses, fails int
	broadcasts          int
}

func (s *stubMatchObserver) ObserveMatch(time.Duration) { s.observed++ }
func (s *stubMatchObserver) CacheHit()                  { s.hits++ }
func (s *stubMatchObserver) CacheMiss()                 { s.misses++ }
func (s *stubMatchObserver) CacheError()                { s.fails++ }
func (s *stubMatchObserver) Broadcast()                 { s.broadcasts++ }
