package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skillswap/internal/domain"
	"skillswap/internal/notifications"
	"skillswap/internal/seed"
)

func TestNotificationServiceNotifySwapGoesToCounterparty(t *testing.T) {
	inbox := notifications.NewInbox(0)
	svc := &NotificationService{
		Store:  newDemoStore(t),
		Sender: inbox,
		Inbox:  inbox,
		Now:    fixedNow,
		NewID:  sequentialIDs("n"),
	}
	req := seed.SwapRequests()[0]

	svc.NotifySwap(context.Background(), domain.NotificationSwapRequested, "1", req)

	got, err := svc.List(context.Background(), "2")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	n := got[0]
	if n.ID != "n-1" || n.Kind != domain.NotificationSwapRequested || n.RequestID != "req1" {
		t.Fatalf("unexpected notification: %+v", n)
	}
	if !strings.Contains(n.Body, "John Doe") || !strings.Contains(n.Body, "React Development") {
		t.Fatalf("unexpected body: %q", n.Body)
	}

	sender, err := svc.List(context.Background(), "1")
	if err != nil {
		t.Fatalf("List sender: %v", err)
	}
	if len(sender) != 0 {
		t.Fatalf("sender should not be notified: %+v", sender)
	}
}

func TestNotificationServiceNotifySwapSwallowsSendErrors(t *testing.T) {
	called := false
	svc := &NotificationService{
		Store: newDemoStore(t),
		Sender: &stubSender{sendFunc: func(context.Context, domain.Notification) error {
			called = true
			return errors.New("boom")
		}},
	}

	svc.NotifySwap(context.Background(), domain.NotificationSwapAccepted, "2", seed.SwapRequests()[0])
	if !called {
		t.Fatalf("expected send to be attempted")
	}
}

func TestNotificationServiceNilIsNoop(t *testing.T) {
	var svc *NotificationService
	svc.NotifySwap(context.Background(), domain.NotificationSwapAccepted, "2", seed.SwapRequests()[0])

	empty := &NotificationService{}
	got, err := empty.List(context.Background(), "1")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v %v", got, err)
	}
}

func TestNotificationServiceBroadcast(t *testing.T) {
	sender := &stubSender{}
	svc := &NotificationService{
		Store:  newDemoStore(t),
		Sender: sender,
		Now:    fixedNow,
		NewID:  sequentialIDs("b"),
	}

	if _, _, err := svc.Broadcast(context.Background(), "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, _, err := svc.Broadcast(context.Background(), strings.Repeat("x", 1001)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	n, sent, err := svc.Broadcast(context.Background(), " Maintenance tonight ")
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if sent != 3 || len(sender.sent) != 3 {
		t.Fatalf("expected 3 recipients, got %d (%d sent)", sent, len(sender.sent))
	}
	if n.Body != "Maintenance tonight" || n.Kind != domain.NotificationBroadcast {
		t.Fatalf("unexpected broadcast: %+v", n)
	}
	for _, msg := range sender.sent {
		if msg.UserID == "admin" {
			t.Fatalf("admin should not receive broadcasts")
		}
		if msg.ID == "" {
			t.Fatalf("delivered copy missing id")
		}
	}
}

func TestNotificationServiceBroadcastCountsFailures(t *testing.T) {
	sender := &stubSender{sendFunc: func(_ context.Context, n domain.Notification) error {
		if n.UserID == "2" {
			return errors.New("inbox full")
		}
		return nil
	}}
	svc := &NotificationService{Store: newDemoStore(t), Sender: sender}

	_, sent, err := svc.Broadcast(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if sent != 2 {
		t.Fatalf("expected 2 delivered, got %d", sent)
	}
}
