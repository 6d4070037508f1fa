package service

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"skillswap/internal/domain"
	"skillswap/internal/store"
)

// AuthService switches the current user. There are no passwords: logging in
// by email is enough.
type AuthService struct {
	Store  StateStore
	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string
}

type RegisterInput struct {
	Name     string
	Email    string
	Location string
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *AuthService) Login(ctx context.Context, email string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.User{}, domain.NewValidationError(map[string]string{"email": "required"})
	}

	u, err := store.FindUserByEmail(s.Store.Snapshot(), email)
	if err != nil {
		return domain.User{}, err
	}
	state, err := s.Store.Dispatch(ctx, store.Login{UserID: u.ID})
	if err != nil {
		return domain.User{}, err
	}
	loggerOrDefault(s.Logger).Info("auth: login", "user_id", u.ID)
	return *state.CurrentUser, nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(strings.ToLower(in.Email))

	fields := map[string]string{}
	if name == "" {
		fields["name"] = "required"
	} else if len(name) > 80 {
		fields["name"] = "must be 80 characters or less"
	}
	if email == "" {
		fields["email"] = "required"
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		fields["email"] = "must be a valid email address"
	}
	if len(fields) > 0 {
		return domain.User{}, domain.NewValidationError(fields)
	}

	id := newID()
	if s.NewID != nil {
		id = s.NewID()
	}
	u := domain.User{
		ID:            id,
		Name:          name,
		Email:         email,
		Location:      strings.TrimSpace(in.Location),
		SkillsOffered: []domain.Skill{},
		SkillsWanted:  []domain.Skill{},
		Availability:  []string{},
		IsPublic:      true,
		JoinedAt:      s.now(),
	}

	if _, err := s.Store.Dispatch(ctx, store.AddUser{User: u}); err != nil {
		return domain.User{}, err
	}
	state, err := s.Store.Dispatch(ctx, store.Login{UserID: u.ID})
	if err != nil {
		return domain.User{}, err
	}
	loggerOrDefault(s.Logger).Info("auth: registered", "user_id", u.ID)
	return *state.CurrentUser, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.Store.Dispatch(ctx, store.Logout{})
	return err
}

// CurrentUser returns ErrUnauthorized when nobody is logged in.
func (s *AuthService) CurrentUser(_ context.Context) (domain.User, error) {
	return currentUser(s.Store.Snapshot())
}
