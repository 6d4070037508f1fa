// Package httpapi serves the JSON API under /v1.
//
// The server keeps a single session: the store's current user. A login from
// any client changes the user every other client acts as, admin included.
// There are no cookies or tokens, so the API must only be reachable by one
// trusted client (for example bound to localhost or behind an authenticating
// proxy). It is not safe to expose publicly.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"skillswap/internal/service"
)

type RouterOpts struct {
	Logger *slog.Logger
	IsProd bool

	DBPing      func(context.Context) error
	Metrics     http.Handler
	HTTPMetrics HTTPObserver

	Auth          *service.AuthService
	Users         *service.UsersService
	Profile       *service.ProfileService
	Swaps         *service.SwapService
	Matches       *service.MatchService
	Notifications *service.NotificationService
	Admin         *service.AdminService
	Certificates  *service.CertificateService

	// LoginRate is the number of login or registration attempts allowed per
	// client IP per minute.
	LoginRate int

	// TrustedProxies lists the peers whose X-Forwarded-For header is
	// believed. Empty means the header is ignored.
	TrustedProxies []netip.Prefix
}

func NewRouter(opts RouterOpts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := &api{
		logger:       logger,
		isProd:       opts.IsProd,
		dbPing:       opts.DBPing,
		authSvc:      opts.Auth,
		usersSvc:     opts.Users,
		profileSvc:   opts.Profile,
		swapSvc:      opts.Swaps,
		matchSvc:     opts.Matches,
		notifySvc:    opts.Notifications,
		adminSvc:     opts.Admin,
		certSvc:      opts.Certificates,
		loginLimiter: newLoginLimiter(opts.LoginRate),
		now:          time.Now,
	}

	publicMux := http.NewServeMux()
	apiMux := http.NewServeMux()

	publicMux.HandleFunc("GET /healthz", api.handleHealthz)
	if opts.Metrics != nil {
		publicMux.Handle("GET /metrics", opts.Metrics)
	}

	apiMux.HandleFunc("GET /v1/catalog", api.handleCatalog)

	if api.authSvc == nil {
		apiMux.HandleFunc("POST /v1/auth/register", handleNotImplemented)
		apiMux.HandleFunc("POST /v1/auth/login", handleNotImplemented)
		apiMux.HandleFunc("POST /v1/auth/logout", handleNotImplemented)
		apiMux.HandleFunc("GET /v1/users/me", handleNotImplemented)
	} else {
		apiMux.HandleFunc("POST /v1/auth/register", api.handleAuthRegister)
		apiMux.HandleFunc("POST /v1/auth/login", api.handleAuthLogin)
		apiMux.HandleFunc("POST /v1/auth/logout", api.requireAuth(api.handleAuthLogout))
		apiMux.HandleFunc("GET /v1/users/me", api.requireAuth(api.handleUsersMe))
		if api.profileSvc != nil {
			apiMux.HandleFunc("PUT /v1/users/me", api.requireAuth(api.handleUsersMeUpdate))
		}

		if api.usersSvc != nil {
			apiMux.HandleFunc("GET /v1/users", api.requireAuth(api.handleUsersBrowse))
			apiMux.HandleFunc("GET /v1/users/{id}", api.requireAuth(api.handleUsersGet))
			apiMux.HandleFunc("GET /v1/users/{id}/ratings", api.requireAuth(api.handleUsersRatings))
			apiMux.HandleFunc("GET /v1/filters", api.requireAuth(api.handleFiltersGet))
			apiMux.HandleFunc("PUT /v1/filters", api.requireAuth(api.handleFiltersPut))
		}

		if api.matchSvc != nil {
			apiMux.HandleFunc("GET /v1/matches", api.requireAuth(api.handleMatchesList))
		}

		if api.swapSvc != nil {
			apiMux.HandleFunc("GET /v1/swaps", api.requireAuth(api.handleSwapsList))
			apiMux.HandleFunc("POST /v1/swaps", api.requireAuth(api.handleSwapsCreate))
			apiMux.HandleFunc("GET /v1/swaps/{id}", api.requireAuth(api.handleSwapsGet))
			apiMux.HandleFunc("DELETE /v1/swaps/{id}", api.requireAuth(api.handleSwapsDelete))
			apiMux.HandleFunc("POST /v1/swaps/{id}/accept", api.requireAuth(api.handleSwapsAccept))
			apiMux.HandleFunc("POST /v1/swaps/{id}/reject", api.requireAuth(api.handleSwapsReject))
			apiMux.HandleFunc("POST /v1/swaps/{id}/complete", api.requireAuth(api.handleSwapsComplete))
			apiMux.HandleFunc("POST /v1/swaps/{id}/ratings", api.requireAuth(api.handleSwapsRate))
		}

		if api.certSvc != nil {
			apiMux.HandleFunc("GET /v1/swaps/{id}/certificate", api.requireAuth(api.handleCertificateIssue))
		}

		if api.notifySvc != nil {
			apiMux.HandleFunc("GET /v1/notifications", api.requireAuth(api.handleNotificationsList))
		}

		if api.adminSvc != nil {
			apiMux.HandleFunc("GET /v1/admin/overview", api.requireAuth(api.handleAdminOverview))
			apiMux.HandleFunc("POST /v1/admin/broadcast", api.requireAuth(api.handleAdminBroadcast))
			apiMux.HandleFunc("GET /v1/admin/reports/{kind}", api.requireAuth(api.handleAdminReport))
		}
	}

	if api.certSvc != nil {
		apiMux.HandleFunc("GET /v1/certificates/{hash}", api.handleCertificateVerify)
	}

	apiHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := apiMux.Handler(r)
		if pattern == "" {
			handleV1NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})

	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v1/") || r.URL.Path == "/v1" {
			apiHandler.ServeHTTP(w, r)
			return
		}
		publicMux.ServeHTTP(w, r)
	})

	var h http.Handler = root
	h = RequestLogger(logger, opts.HTTPMetrics)(h)
	h = ClientIP(opts.TrustedProxies)(h)
	h = RequestID()(h)
	h = Recoverer(logger, opts.IsProd)(h)
	return h
}

func handleNotImplemented(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotImplemented, "not_implemented", "not implemented")
}

func handleV1NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, "not_found", "not found")
}

type api struct {
	logger *slog.Logger
	isProd bool

	dbPing func(context.Context) error

	authSvc    *service.AuthService
	usersSvc   *service.UsersService
	profileSvc *service.ProfileService
	swapSvc    *service.SwapService
	matchSvc   *service.MatchService
	notifySvc  *service.NotificationService
	adminSvc   *service.AdminService
	certSvc    *service.CertificateService

	loginLimiter *loginLimiter
	now          func() time.Time
}

func (a *api) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if a.dbPing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()
		if err := a.dbPing(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db down"))
			return
		}
	}

	_, _ = w.Write([]byte("ok"))
}
