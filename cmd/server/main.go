package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillswap/internal/adminui"
	"skillswap/internal/cache"
	"skillswap/internal/config"
	"skillswap/internal/httpapi"
	"skillswap/internal/metrics"
	"skillswap/internal/notifications"
	"skillswap/internal/seed"
	"skillswap/internal/service"
	"skillswap/internal/store"
	"skillswap/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := newLogger(cfg)
	ctx := context.Background()

	var (
		initial store.State
		dbPing  func(context.Context) error
	)
	if cfg.DBDSN != "" {
		pgPool, err := postgres.Open(ctx, cfg.DBDSN)
		if err != nil {
			logger.Error("db open failed", "err", err)
			os.Exit(1)
		}
		defer pgPool.Close()

		initial, err = postgres.NewStateLoader(pgPool).Load(ctx)
		if err != nil {
			logger.Error("db state load failed", "err", err)
			os.Exit(1)
		}
		dbPing = pgPool.Ping
	} else {
		initial, err = initialState(cfg)
		if err != nil {
			logger.Error("seed failed", "err", err, "seed", cfg.Seed)
			os.Exit(1)
		}
	}
	logger.Info("state loaded", "users", len(initial.Users), "swap_requests", len(initial.SwapRequests), "ratings", len(initial.Ratings))

	m := metrics.New()
	st := store.New(initial,
		store.WithLogger(logger),
		store.WithObserver(m.ObserveDispatch),
	)

	inbox := notifications.NewInbox(notifications.DefaultCapacity)
	notifySvc := &service.NotificationService{
		Store:  st,
		Sender: inbox,
		Inbox:  inbox,
		Logger: logger,
	}

	matchSvc := &service.MatchService{Store: st, Metrics: m, Logger: logger}
	if cfg.RedisAddr != "" {
		client, err := cache.Open(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("match cache disabled", "err", err, "addr", cfg.RedisAddr)
		} else {
			defer func() { _ = client.Close() }()
			matchSvc.Cache = cache.NewMatchCache(client, cfg.MatchCacheTTL)
			logger.Info("match cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.MatchCacheTTL)
		}
	}

	authSvc := &service.AuthService{Store: st, Logger: logger}
	adminSvc := &service.AdminService{Store: st, Broadcaster: notifySvc, Metrics: m, Logger: logger}

	apiRouter := httpapi.NewRouter(httpapi.RouterOpts{
		Logger:         logger,
		IsProd:         cfg.IsProd(),
		DBPing:         dbPing,
		Metrics:        m.Handler(),
		HTTPMetrics:    m,
		Auth:           authSvc,
		Users:          &service.UsersService{Store: st},
		Profile:        &service.ProfileService{Store: st},
		Swaps:          &service.SwapService{Store: st, Notifier: notifySvc, Logger: logger},
		Matches:        matchSvc,
		Notifications:  notifySvc,
		Admin:          adminSvc,
		Certificates:   &service.CertificateService{Store: st, PublicURL: cfg.PublicBaseURL()},
		LoginRate:      cfg.LoginRate,
		TrustedProxies: cfg.TrustedProxies,
	})

	adminRouter := adminui.New(adminui.Opts{
		Logger: logger,
		Auth:   authSvc,
		Admin:  adminSvc,
	})

	root := http.NewServeMux()
	root.Handle("/", apiRouter)
	root.Handle("/admin", adminRouter)
	root.Handle("/admin/", adminRouter)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           root,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if cfg.IsProd() {
		logger.Warn("single shared session: every client acts as the last logged-in user; keep the listener private", "addr", cfg.Addr)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "env", cfg.Env, "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}
}

// initialState returns the built-in seed selected by APP_SEED.
func initialState(cfg config.Config) (store.State, error) {
	switch cfg.Seed {
	case config.SeedEmpty:
		return seed.Empty(), nil
	case config.SeedDemo:
		return seed.Demo()
	default:
		return store.State{}, fmt.Errorf("unknown seed %q", cfg.Seed)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
