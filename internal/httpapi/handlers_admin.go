package httpapi

import (
	"net/http"

	"skillswap/internal/domain"
	"skillswap/internal/service"
)

func (a *api) handleAdminOverview(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	out, err := a.adminSvc.Overview(r.Context(), u.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

type broadcastRequest struct {
	Message string `json:"message"`
}

func (a *api) handleAdminBroadcast(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var req broadcastRequest
	if !readJSON(w, r, &req) {
		return
	}

	sent, err := a.adminSvc.Broadcast(r.Context(), u.ID, req.Message)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusAccepted, map[string]int{"recipients": sent})
}

func (a *api) handleAdminReport(w http.ResponseWriter, r *http.Request) {
	u, ok := CurrentUser(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	kind := service.ReportKind(r.PathValue("kind"))
	data, err := a.adminSvc.Report(r.Context(), u.ID, kind)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(kind)+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
