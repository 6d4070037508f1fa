package store

import (
	"fmt"

	"skillswap/internal/domain"
)

// Build assembles a State from loaded collections and applies the same
// referential checks the transitions enforce. Requests and ratings may be in
// any lifecycle state, unlike AddSwapRequest which only accepts new ones.
func Build(users []domain.User, requests []domain.SwapRequest, ratings []domain.Rating) (State, error) {
	var s State
	for _, u := range users {
		next, err := Reduce(s, AddUser{User: u})
		if err != nil {
			return State{}, fmt.Errorf("user %q: %w", u.ID, err)
		}
		s = next
	}

	reqs := make([]domain.SwapRequest, 0, len(requests))
	seen := make(map[string]bool, len(requests))
	for _, r := range requests {
		if err := domain.ValidateSwapRequest(r); err != nil {
			return State{}, fmt.Errorf("swap request %q: %w", r.ID, err)
		}
		if seen[r.ID] {
			return State{}, fmt.Errorf("swap request %q: %w", r.ID, domain.NewValidationError(map[string]string{"id": "already exists"}))
		}
		seen[r.ID] = true
		if err := checkParties(s, r); err != nil {
			return State{}, fmt.Errorf("swap request %q: %w", r.ID, err)
		}
		reqs = append(reqs, r)
	}
	s.SwapRequests = reqs

	for _, r := range ratings {
		next, err := Reduce(s, AddRating{Rating: r})
		if err != nil {
			return State{}, fmt.Errorf("rating %q: %w", r.ID, err)
		}
		s = next
	}
	return s, nil
}
