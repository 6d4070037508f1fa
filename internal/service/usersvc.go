package service

import (
	"context"
	"strings"

	"skillswap/internal/domain"
	"skillswap/internal/store"
)

type UsersService struct {
	Store StateStore
}

// BrowseFilter fields left nil fall back to the filters stored in state.
type BrowseFilter struct {
	Term     *string
	Category *domain.Category
}

type Filters struct {
	SearchTerm       string          `json:"search_term"`
	SelectedCategory domain.Category `json:"selected_category"`
}

func (s *UsersService) Browse(_ context.Context, viewerID string, f BrowseFilter) ([]domain.User, error) {
	state := s.Store.Snapshot()
	term := state.SearchTerm
	if f.Term != nil {
		term = *f.Term
	}
	category := state.SelectedCategory
	if f.Category != nil {
		category = *f.Category
	}
	if category != "" && !category.Valid() {
		return nil, domain.NewValidationError(map[string]string{"category": "unknown category"})
	}
	return store.BrowseUsers(state, viewerID, term, category), nil
}

func (s *UsersService) Filters(_ context.Context) Filters {
	state := s.Store.Snapshot()
	return Filters{SearchTerm: state.SearchTerm, SelectedCategory: state.SelectedCategory}
}

func (s *UsersService) SetFilters(ctx context.Context, f Filters) (Filters, error) {
	f.SearchTerm = strings.TrimSpace(f.SearchTerm)
	if len(f.SearchTerm) > 100 {
		return Filters{}, domain.NewValidationError(map[string]string{"search_term": "must be 100 characters or less"})
	}
	if f.SelectedCategory != "" && !f.SelectedCategory.Valid() {
		return Filters{}, domain.NewValidationError(map[string]string{"selected_category": "unknown category"})
	}
	if _, err := s.Store.Dispatch(ctx, store.SetSelectedCategory{Category: f.SelectedCategory}); err != nil {
		return Filters{}, err
	}
	state, err := s.Store.Dispatch(ctx, store.SetSearchTerm{Term: f.SearchTerm})
	if err != nil {
		return Filters{}, err
	}
	return Filters{SearchTerm: state.SearchTerm, SelectedCategory: state.SelectedCategory}, nil
}

func (s *UsersService) Get(_ context.Context, id string) (domain.User, error) {
	return store.FindUser(s.Store.Snapshot(), id)
}

type UserRatings struct {
	Ratings []domain.Rating      `json:"ratings"`
	Summary domain.RatingSummary `json:"summary"`
}

func (s *UsersService) Ratings(_ context.Context, userID string) (UserRatings, error) {
	state := s.Store.Snapshot()
	if _, err := store.FindUser(state, userID); err != nil {
		return UserRatings{}, err
	}
	return UserRatings{
		Ratings: store.RatingsFor(state, userID),
		Summary: store.RatingSummaryFor(state, userID),
	}, nil
}
