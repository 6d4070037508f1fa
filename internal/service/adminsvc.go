package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"skillswap/internal/domain"
	"skillswap/internal/store"
)

type Broadcaster interface {
	Broadcast(ctx context.Context, message string) (domain.Notification, int, error)
}

type BroadcastObserver interface {
	Broadcast()
}

type AdminService struct {
	Store       StateStore
	Broadcaster Broadcaster
	Metrics     BroadcastObserver
	Logger      *slog.Logger

	mu            sync.Mutex
	lastBroadcast *domain.Notification
}

const recentUsersLimit = 5

func requireAdmin(state store.State, userID string) error {
	u, err := store.FindUser(state, userID)
	if err != nil {
		return err
	}
	if !u.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}

func (s *AdminService) Overview(_ context.Context, userID string) (domain.AdminOverview, error) {
	state := s.Store.Snapshot()
	if err := requireAdmin(state, userID); err != nil {
		return domain.AdminOverview{}, err
	}

	out := domain.AdminOverview{
		TotalRequests:   len(state.SwapRequests),
		PendingRequests: []domain.SwapRequest{},
		RecentUsers:     []domain.UserSummary{},
	}
	nonAdmin := make([]domain.User, 0, len(state.Users))
	for _, u := range state.Users {
		if !u.IsAdmin {
			nonAdmin = append(nonAdmin, u)
		}
	}
	out.TotalUsers = len(nonAdmin)
	for _, u := range nonAdmin[max(0, len(nonAdmin)-recentUsersLimit):] {
		out.RecentUsers = append(out.RecentUsers, u.Summary())
	}

	for _, r := range state.SwapRequests {
		switch r.Status {
		case domain.SwapCompleted:
			out.CompletedSwaps++
		case domain.SwapPending:
			out.PendingRequests = append(out.PendingRequests, r)
		}
	}

	if len(state.Ratings) > 0 {
		total := 0
		for _, r := range state.Ratings {
			total += r.Value
		}
		avg := float64(total) / float64(len(state.Ratings))
		out.AverageRating = &avg
	}

	s.mu.Lock()
	out.LastBroadcast = s.lastBroadcast
	s.mu.Unlock()
	return out, nil
}

// Users lists every account, private and admin ones included.
func (s *AdminService) Users(_ context.Context, userID string) ([]domain.User, error) {
	state := s.Store.Snapshot()
	if err := requireAdmin(state, userID); err != nil {
		return nil, err
	}
	out := make([]domain.User, len(state.Users))
	copy(out, state.Users)
	return out, nil
}

func (s *AdminService) Broadcast(ctx context.Context, userID, message string) (int, error) {
	if err := requireAdmin(s.Store.Snapshot(), userID); err != nil {
		return 0, err
	}
	if s.Broadcaster == nil {
		return 0, fmt.Errorf("broadcast unavailable")
	}

	n, sent, err := s.Broadcaster.Broadcast(ctx, message)
	if err != nil {
		return 0, err
	}
	if s.Metrics != nil {
		s.Metrics.Broadcast()
	}
	s.mu.Lock()
	s.lastBroadcast = &n
	s.mu.Unlock()

	loggerOrDefault(s.Logger).Info("admin: broadcast", "admin_id", userID, "recipients", sent)
	return sent, nil
}

type ReportKind string

const (
	ReportUsers   ReportKind = "users"
	ReportSwaps   ReportKind = "swaps"
	ReportRatings ReportKind = "ratings"
)

// Report renders one collection as CSV.
func (s *AdminService) Report(_ context.Context, userID string, kind ReportKind) ([]byte, error) {
	state := s.Store.Snapshot()
	if err := requireAdmin(state, userID); err != nil {
		return nil, err
	}

	var rows [][]string
	switch kind {
	case ReportUsers:
		rows = append(rows, []string{"id", "name", "email", "location", "public", "rating", "total_ratings", "joined_at"})
		for _, u := range state.Users {
			if u.IsAdmin {
				continue
			}
			rows = append(rows, []string{
				u.ID, u.Name, u.Email, u.Location,
				strconv.FormatBool(u.IsPublic),
				strconv.FormatFloat(u.Rating, 'f', 1, 64),
				strconv.Itoa(u.TotalRatings),
				u.JoinedAt.UTC().Format(time.DateOnly),
			})
		}
	case ReportSwaps:
		rows = append(rows, []string{"id", "from_user_id", "to_user_id", "skill_offered", "skill_requested", "status", "created_at", "completed_at"})
		for _, r := range state.SwapRequests {
			completed := ""
			if r.CompletedAt != nil {
				completed = r.CompletedAt.UTC().Format(time.RFC3339)
			}
			rows = append(rows, []string{
				r.ID, r.FromUserID, r.ToUserID, r.SkillOffered.Name, r.SkillRequested.Name,
				string(r.Status), r.CreatedAt.UTC().Format(time.RFC3339), completed,
			})
		}
	case ReportRatings:
		rows = append(rows, []string{"id", "swap_request_id", "from_user_id", "to_user_id", "rating", "feedback", "created_at"})
		for _, r := range state.Ratings {
			rows = append(rows, []string{
				r.ID, r.SwapRequestID, r.FromUserID, r.ToUserID,
				strconv.Itoa(r.Value), r.Feedback, r.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
	default:
		return nil, domain.NewValidationError(map[string]string{"kind": "must be users, swaps or ratings"})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
