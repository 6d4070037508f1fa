package adminui

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"skillswap/internal/domain"
	"skillswap/internal/service"
)

func (a *app) handleDashboard(w http.ResponseWriter, r *http.Request, u domain.User) {
	ov, err := a.adminSvc.Overview(r.Context(), u.ID)
	if err != nil {
		a.logger.Error("adminui: overview failed", "err", err)
		a.templates.renderError(w, http.StatusInternalServerError, "Error", "Failed to load overview")
		return
	}
	a.templates.renderDashboard(w, http.StatusOK, dashboardViewData{
		Title:    "Admin",
		Admin:    u.Name,
		Overview: ov,
		Average:  formatAverage(ov.AverageRating),
		Notice:   r.URL.Query().Get("notice"),
	})
}

func (a *app) handleLoginGet(w http.ResponseWriter, _ *http.Request) {
	a.templates.renderLogin(w, http.StatusOK, viewData{Title: "Admin Login"})
}

func (a *app) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.templates.renderLogin(w, http.StatusBadRequest, viewData{Title: "Admin Login", Error: "Invalid form"})
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.Form.Get("email")))
	if email == "" {
		a.templates.renderLogin(w, http.StatusBadRequest, viewData{Title: "Admin Login", Error: "Email is required"})
		return
	}

	u, err := a.authSvc.Login(r.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.templates.renderLogin(w, http.StatusUnauthorized, viewData{Title: "Admin Login", Error: "Unknown account"})
			return
		}
		a.logger.Error("adminui: login failed", "err", err)
		a.templates.renderLogin(w, http.StatusInternalServerError, viewData{Title: "Admin Login", Error: "Login failed"})
		return
	}
	if !u.IsAdmin {
		a.templates.renderLogin(w, http.StatusForbidden, viewData{Title: "Admin Login", Error: "Not allowed"})
		return
	}

	http.Redirect(w, r, "/admin/", http.StatusFound)
}

func (a *app) handleLogoutPost(w http.ResponseWriter, r *http.Request) {
	_ = a.authSvc.Logout(r.Context())
	http.Redirect(w, r, "/admin/login", http.StatusFound)
}

func (a *app) handleUsersList(w http.ResponseWriter, r *http.Request, u domain.User) {
	users, err := a.adminSvc.Users(r.Context(), u.ID)
	if err != nil {
		a.templates.renderError(w, http.StatusInternalServerError, "Error", "Failed to load users")
		return
	}
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Location: u.Location,
			Type:     userType(u),
			Skills:   len(u.SkillsOffered),
		})
	}
	a.templates.renderUsers(w, http.StatusOK, usersViewData{Title: "Users", Users: rows})
}

func (a *app) handleBroadcastPost(w http.ResponseWriter, r *http.Request, u domain.User) {
	if err := r.ParseForm(); err != nil {
		a.templates.renderError(w, http.StatusBadRequest, "Broadcast", "Invalid form")
		return
	}

	sent, err := a.adminSvc.Broadcast(r.Context(), u.ID, r.Form.Get("message"))
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			a.templates.renderError(w, http.StatusBadRequest, "Broadcast", "Message: "+vErr.Fields["message"])
			return
		}
		a.logger.Error("adminui: broadcast failed", "err", err)
		a.templates.renderError(w, http.StatusInternalServerError, "Broadcast", "Broadcast failed")
		return
	}

	notice := "Broadcast sent to " + pluralUsers(sent)
	http.Redirect(w, r, "/admin/?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}

func (a *app) handleReportDownload(w http.ResponseWriter, r *http.Request, u domain.User) {
	kind := service.ReportKind(r.PathValue("kind"))
	data, err := a.adminSvc.Report(r.Context(), u.ID, kind)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			a.templates.renderError(w, http.StatusNotFound, "Reports", "Unknown report")
			return
		}
		a.logger.Error("adminui: report failed", "err", err, "kind", kind)
		a.templates.renderError(w, http.StatusInternalServerError, "Reports", "Failed to build report")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(kind)+`.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
