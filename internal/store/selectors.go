package store

import (
	"strings"

	"skillswap/internal/domain"
)

func FindUser(s State, id string) (domain.User, error) {
	i := s.userIndex(id)
	if i < 0 {
		return domain.User{}, domain.NotFound("user", id)
	}
	return s.Users[i], nil
}

func FindUserByEmail(s State, email string) (domain.User, error) {
	email = strings.TrimSpace(email)
	for _, u := range s.Users {
		if email != "" && strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFound("user", email)
}

func FindRequest(s State, id string) (domain.SwapRequest, error) {
	i := s.requestIndex(id)
	if i < 0 {
		return domain.SwapRequest{}, domain.NotFound("swap request", id)
	}
	return s.SwapRequests[i], nil
}

// BrowseUsers lists public, non-admin users other than viewerID. A non-empty
// term must appear (case-insensitively) in the user's name or in the name of
// one of their offered skills. A non-empty category must equal the category
// of one of their offered skills.
func BrowseUsers(s State, viewerID, term string, category domain.Category) []domain.User {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]domain.User, 0, len(s.Users))
	for _, u := range s.Users {
		if !u.IsPublic || u.IsAdmin || (viewerID != "" && u.ID == viewerID) {
			continue
		}
		if term != "" && !matchesTerm(u, term) {
			continue
		}
		if category != "" && !offersCategory(u, category) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func matchesTerm(u domain.User, term string) bool {
	if strings.Contains(strings.ToLower(u.Name), term) {
		return true
	}
	for _, sk := range u.SkillsOffered {
		if strings.Contains(strings.ToLower(sk.Name), term) {
			return true
		}
	}
	return false
}

func offersCategory(u domain.User, c domain.Category) bool {
	for _, sk := range u.SkillsOffered {
		if sk.Category == c {
			return true
		}
	}
	return false
}

type UserRequests struct {
	Sent     []domain.SwapRequest `json:"sent"`
	Received []domain.SwapRequest `json:"received"`
}

// RequestsFor splits the requests userID takes part in by direction, in store order.
func RequestsFor(s State, userID string) UserRequests {
	out := UserRequests{Sent: []domain.SwapRequest{}, Received: []domain.SwapRequest{}}
	for _, r := range s.SwapRequests {
		switch userID {
		case r.FromUserID:
			out.Sent = append(out.Sent, r)
		case r.ToUserID:
			out.Received = append(out.Received, r)
		}
	}
	return out
}

func RatingsFor(s State, userID string) []domain.Rating {
	out := []domain.Rating{}
	for _, r := range s.Ratings {
		if r.ToUserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// RatingSummaryFor computes mean and count from Rating records. The stored
// aggregate on the user is left alone.
func RatingSummaryFor(s State, userID string) domain.RatingSummary {
	sum := domain.RatingSummary{UserID: userID}
	total := 0
	for _, r := range s.Ratings {
		if r.ToUserID == userID {
			total += r.Value
			sum.Count++
		}
	}
	if sum.Count > 0 {
		sum.Average = float64(total) / float64(sum.Count)
	}
	return sum
}

func RatingForRequest(s State, requestID string) (domain.Rating, bool) {
	for _, r := range s.Ratings {
		if r.SwapRequestID == requestID {
			return r, true
		}
	}
	return domain.Rating{}, false
}
