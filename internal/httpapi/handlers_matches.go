package httpapi

import (
	"net/http"

	"skillswap/internal/domain"
)

func (a *api) handleMatchesList(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	matches, err := a.matchSvc.Find(r.Context(), u.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"matches": matches})
}
