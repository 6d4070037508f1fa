package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"skillswap/internal/domain"
	"skillswap/internal/store"
)

// StateStore is the part of *store.Store the services use.
type StateStore interface {
	Dispatch(ctx context.Context, a store.Action) (store.State, error)
	Snapshot() store.State
}

func newID() string { return uuid.NewString() }

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

func currentUser(s store.State) (domain.User, error) {
	if s.CurrentUser == nil {
		return domain.User{}, domain.ErrUnauthorized
	}
	return *s.CurrentUser, nil
}
