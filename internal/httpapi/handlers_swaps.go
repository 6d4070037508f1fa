package httpapi

import (
	"context"
	"net/http"

	"skillswap/internal/domain"
	"skillswap/internal/service"
)

func (a *api) handleSwapsList(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}
	WriteJSON(w, http.StatusOK, a.swapSvc.List(r.Context(), u.ID))
}

type createSwapRequest struct {
	ToUserID         string `json:"to_user_id"`
	SkillOfferedID   string `json:"skill_offered_id"`
	SkillRequestedID string `json:"skill_requested_id"`
	Message          string `json:"message"`
}

func (a *api) handleSwapsCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var req createSwapRequest
	if !readJSON(w, r, &req) {
		return
	}

	out, err := a.swapSvc.Create(r.Context(), u.ID, service.CreateSwapInput{
		ToUserID:         req.ToUserID,
		OfferedSkillID:   req.SkillOfferedID,
		RequestedSkillID: req.SkillRequestedID,
		Message:          req.Message,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, out)
}

func (a *api) handleSwapsGet(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	out, err := a.swapSvc.Get(r.Context(), u.ID, r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

func (a *api) handleSwapsDelete(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	if err := a.swapSvc.Delete(r.Context(), u.ID, r.PathValue("id")); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type swapTransition func(ctx context.Context, userID, requestID string) (domain.SwapRequest, error)

func (a *api) handleSwapTransition(w http.ResponseWriter, r *http.Request, fn swapTransition) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	out, err := fn(r.Context(), u.ID, r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

func (a *api) handleSwapsAccept(w http.ResponseWriter, r *http.Request) {
	a.handleSwapTransition(w, r, a.swapSvc.Accept)
}

func (a *api) handleSwapsReject(w http.ResponseWriter, r *http.Request) {
	a.handleSwapTransition(w, r, a.swapSvc.Reject)
}

func (a *api) handleSwapsComplete(w http.ResponseWriter, r *http.Request) {
	a.handleSwapTransition(w, r, a.swapSvc.Complete)
}

type rateSwapRequest struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

func (a *api) handleSwapsRate(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var req rateSwapRequest
	if !readJSON(w, r, &req) {
		return
	}

	out, err := a.swapSvc.Rate(r.Context(), u.ID, r.PathValue("id"), service.RatingInput{
		Value:    req.Rating,
		Feedback: req.Feedback,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, out)
}
