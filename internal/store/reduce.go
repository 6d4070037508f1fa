package store

import (
	"fmt"
	"strings"

	"skillswap/internal/domain"
)

// Reduce applies a to s. On error the returned state is s, unchanged.
func Reduce(s State, a Action) (State, error) {
	if a == nil {
		return s, domain.NewValidationError(map[string]string{"action": "required"})
	}
	next, err := a.apply(s)
	if err != nil {
		return s, err
	}
	return next, nil
}

func (a Login) apply(s State) (State, error) {
	i := s.userIndex(a.UserID)
	if i < 0 {
		return s, domain.NotFound("user", a.UserID)
	}
	u := s.Users[i]
	s.CurrentUser = &u
	return s, nil
}

func (Logout) apply(s State) (State, error) {
	s.CurrentUser = nil
	return s, nil
}

func (a AddUser) apply(s State) (State, error) {
	if err := domain.ValidateUser(a.User); err != nil {
		return s, err
	}
	if s.userIndex(a.User.ID) >= 0 {
		return s, domain.NewValidationError(map[string]string{"id": "already exists"})
	}
	if err := checkEmailFree(s, a.User); err != nil {
		return s, err
	}
	s.Users = appendCopy(s.Users, a.User.Clone())
	return s, nil
}

func (a UpdateUser) apply(s State) (State, error) {
	i := s.userIndex(a.User.ID)
	if i < 0 {
		return s, domain.NotFound("user", a.User.ID)
	}
	if err := domain.ValidateUser(a.User); err != nil {
		return s, err
	}
	if err := checkEmailFree(s, a.User); err != nil {
		return s, err
	}
	u := a.User.Clone()
	s.Users = replaceAt(s.Users, i, u)
	if s.CurrentUser != nil && s.CurrentUser.ID == u.ID {
		s.CurrentUser = &u
	}
	return s, nil
}

func checkEmailFree(s State, u domain.User) error {
	email := strings.TrimSpace(u.Email)
	if email == "" {
		return nil
	}
	for _, other := range s.Users {
		if other.ID != u.ID && strings.EqualFold(strings.TrimSpace(other.Email), email) {
			return domain.NewValidationError(map[string]string{"email": "already registered"})
		}
	}
	return nil
}

func (a AddSwapRequest) apply(s State) (State, error) {
	r := a.Request
	if r.Status != domain.SwapPending {
		return s, fmt.Errorf("%w: new swap request must be pending, got %q", domain.ErrInvalidTransition, r.Status)
	}
	if err := domain.ValidateSwapRequest(r); err != nil {
		return s, err
	}
	if r.CompletedAt != nil || r.CompletedBy != "" {
		return s, domain.NewValidationError(map[string]string{"completed_at": "must be empty for a new request"})
	}
	if s.requestIndex(r.ID) >= 0 {
		return s, domain.NewValidationError(map[string]string{"id": "already exists"})
	}
	if err := checkParties(s, r); err != nil {
		return s, err
	}
	s.SwapRequests = appendCopy(s.SwapRequests, r)
	return s, nil
}

func checkParties(s State, r domain.SwapRequest) error {
	if s.userIndex(r.FromUserID) < 0 {
		return domain.NotFound("user", r.FromUserID)
	}
	if s.userIndex(r.ToUserID) < 0 {
		return domain.NotFound("user", r.ToUserID)
	}
	return nil
}

func (a UpdateSwapRequest) apply(s State) (State, error) {
	r := a.Request
	i := s.requestIndex(r.ID)
	if i < 0 {
		return s, domain.NotFound("swap request", r.ID)
	}
	cur := s.SwapRequests[i]

	if !domain.CanTransition(cur.Status, r.Status) {
		return s, &domain.TransitionError{RequestID: r.ID, From: cur.Status, To: r.Status}
	}
	if err := domain.ValidateSwapRequest(r); err != nil {
		return s, err
	}

	fields := map[string]string{}
	if r.FromUserID != cur.FromUserID {
		fields["from_user_id"] = "cannot change"
	}
	if r.ToUserID != cur.ToUserID {
		fields["to_user_id"] = "cannot change"
	}
	if r.SkillOffered.ID != cur.SkillOffered.ID {
		fields["skill_offered"] = "cannot change"
	}
	if r.SkillRequested.ID != cur.SkillRequested.ID {
		fields["skill_requested"] = "cannot change"
	}
	if !r.CreatedAt.Equal(cur.CreatedAt) {
		fields["created_at"] = "cannot change"
	}
	if r.Status != domain.SwapCompleted && (r.CompletedAt != nil || r.CompletedBy != "") {
		fields["completed_at"] = "only set on completion"
	}
	if len(fields) > 0 {
		return s, domain.NewValidationError(fields)
	}

	s.SwapRequests = replaceAt(s.SwapRequests, i, r)
	return s, nil
}

func (a DeleteSwapRequest) apply(s State) (State, error) {
	i := s.requestIndex(a.ID)
	if i < 0 {
		return s, domain.NotFound("swap request", a.ID)
	}
	if st := s.SwapRequests[i].Status; st != domain.SwapPending {
		return s, fmt.Errorf("%w: swap request %q is %s, only pending requests can be deleted", domain.ErrInvalidTransition, a.ID, st)
	}
	s.SwapRequests = removeAt(s.SwapRequests, i)
	return s, nil
}

// apply does not touch the aggregate rating stored on either user.
func (a AddRating) apply(s State) (State, error) {
	r := a.Rating
	if err := domain.ValidateRating(r); err != nil {
		return s, err
	}
	if s.ratingIndex(r.ID) >= 0 {
		return s, domain.NewValidationError(map[string]string{"id": "already exists"})
	}
	ri := s.requestIndex(r.SwapRequestID)
	if ri < 0 {
		return s, domain.NotFound("swap request", r.SwapRequestID)
	}
	req := s.SwapRequests[ri]
	if req.Status != domain.SwapCompleted {
		return s, fmt.Errorf("%w: swap request %q is %s, only completed swaps can be rated", domain.ErrInvalidTransition, req.ID, req.Status)
	}
	if err := checkRater(req, r); err != nil {
		return s, err
	}
	for _, existing := range s.Ratings {
		if existing.SwapRequestID == r.SwapRequestID {
			return s, domain.NewValidationError(map[string]string{"swap_request_id": "already rated"})
		}
	}
	s.Ratings = appendCopy(s.Ratings, r)
	return s, nil
}

// checkRater allows the completing party to rate the other party. Requests
// completed without a recorded completer may be rated by either participant.
func checkRater(req domain.SwapRequest, r domain.Rating) error {
	fields := map[string]string{}
	switch {
	case !req.Involves(r.FromUserID):
		fields["from_user_id"] = "must be a participant"
	case req.CompletedBy != "" && r.FromUserID != req.CompletedBy:
		fields["from_user_id"] = "only the completing party can rate"
	}
	if r.ToUserID != req.Counterparty(r.FromUserID) {
		fields["to_user_id"] = "must be the other participant"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}

func (a SetSearchTerm) apply(s State) (State, error) {
	s.SearchTerm = a.Term
	return s, nil
}

func (a SetSelectedCategory) apply(s State) (State, error) {
	if a.Category != "" && !a.Category.Valid() {
		return s, domain.NewValidationError(map[string]string{"category": "unknown category"})
	}
	s.SelectedCategory = a.Category
	return s, nil
}
