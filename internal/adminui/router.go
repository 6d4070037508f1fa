// Package adminui serves the server-rendered admin dashboard under /admin.
// It shares the single store-wide session described in package httpapi.
package adminui

import (
	"errors"
	"log/slog"
	"net/http"

	"skillswap/internal/domain"
	"skillswap/internal/service"
)

type Opts struct {
	Logger *slog.Logger

	Auth  *service.AuthService
	Admin *service.AdminService
}

func New(opts Opts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Auth == nil || opts.Admin == nil {
		return http.NotFoundHandler()
	}

	app := &app{
		logger:   logger,
		authSvc:  opts.Auth,
		adminSvc: opts.Admin,
	}

	t, err := parseTemplates()
	if err != nil {
		logger.Error("adminui: parse templates failed", "err", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		})
	}
	app.templates = t

	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin", app.redirectAdmin)
	mux.HandleFunc("GET /admin/{$}", app.requireAdmin(app.handleDashboard))
	mux.HandleFunc("GET /admin/login", app.handleLoginGet)
	mux.HandleFunc("POST /admin/login", app.handleLoginPost)
	mux.HandleFunc("POST /admin/logout", app.handleLogoutPost)
	mux.HandleFunc("GET /admin/users", app.requireAdmin(app.handleUsersList))
	mux.HandleFunc("POST /admin/broadcast", app.requireAdmin(app.handleBroadcastPost))
	mux.HandleFunc("GET /admin/reports/{kind}", app.requireAdmin(app.handleReportDownload))

	return mux
}

type app struct {
	logger *slog.Logger

	authSvc  *service.AuthService
	adminSvc *service.AdminService

	templates *templates
}

func (a *app) redirectAdmin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/", http.StatusFound)
}

func (a *app) requireAdmin(next func(http.ResponseWriter, *http.Request, domain.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := a.authSvc.CurrentUser(r.Context())
		if errors.Is(err, domain.ErrUnauthorized) {
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}
		if err != nil {
			a.templates.renderError(w, http.StatusInternalServerError, "Error", "Failed to load the current user")
			return
		}
		if !u.IsAdmin {
			a.templates.renderError(w, http.StatusForbidden, "Forbidden", "This account is not allowed to access admin.")
			return
		}
		next(w, r, u)
	}
}
