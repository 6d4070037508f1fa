package store

import "skillswap/internal/domain"

// Action is one of the transitions defined in this package. The set is
// closed: only types declared here implement it.
type Action interface {
	Name() string
	apply(State) (State, error)
}

// Login makes an existing user the current user.
type Login struct {
	UserID string
}

// Logout clears the current user.
type Logout struct{}

// AddUser appends a newly registered user.
type AddUser struct {
	User domain.User
}

// UpdateUser replaces the stored record with the same ID.
type UpdateUser struct {
	User domain.User
}

// AddSwapRequest appends a new request. It must be pending.
type AddSwapRequest struct {
	Request domain.SwapRequest
}

// UpdateSwapRequest replaces the stored request with the same ID. The new
// status must be a lifecycle step away from the stored one.
type UpdateSwapRequest struct {
	Request domain.SwapRequest
}

// DeleteSwapRequest removes a pending request.
type DeleteSwapRequest struct {
	ID string
}

// AddRating records feedback for a completed request.
type AddRating struct {
	Rating domain.Rating
}

type SetSearchTerm struct {
	Term string
}

type SetSelectedCategory struct {
	Category domain.Category
}

func (Login) Name() string               { return "login" }
func (Logout) Name() string              { return "logout" }
func (AddUser) Name() string             { return "add_user" }
func (UpdateUser) Name() string          { return "update_user" }
func (AddSwapRequest) Name() string      { return "add_swap_request" }
func (UpdateSwapRequest) Name() string   { return "update_swap_request" }
func (DeleteSwapRequest) Name() string   { return "delete_swap_request" }
func (AddRating) Name() string           { return "add_rating" }
func (SetSearchTerm) Name() string       { return "set_search_term" }
func (SetSelectedCategory) Name() string { return "set_selected_category" }
