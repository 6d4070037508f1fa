// Package notifications keeps a bounded in-memory inbox per user.
package notifications

import (
	"context"
	"sync"

	"skillswap/internal/domain"
)

const DefaultCapacity = 50

// Inbox holds the newest notifications per user, newest last. Older entries
// are dropped once a user's inbox reaches its capacity.
type Inbox struct {
	mu       sync.Mutex
	capacity int
	byUser   map[string][]domain.Notification
}

func NewInbox(capacity int) *Inbox {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Inbox{capacity: capacity, byUser: make(map[string][]domain.Notification)}
}

func (b *Inbox) Send(ctx context.Context, n domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	list := append(b.byUser[n.UserID], n)
	if len(list) > b.capacity {
		list = append([]domain.Notification(nil), list[len(list)-b.capacity:]...)
	}
	b.byUser[n.UserID] = list
	return nil
}

// List returns a copy of userID's notifications, newest first.
func (b *Inbox) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.byUser[userID]
	out := make([]domain.Notification, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, list[i])
	}
	return out, nil
}

func (b *Inbox) Clear(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.byUser, userID)
	return nil
}
