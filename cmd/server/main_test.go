package main

import (
	"context"
	"log/slog"
	"testing"

	"skillswap/internal/config"
)

func TestInitialState(t *testing.T) {
	demo, err := initialState(config.Config{Seed: config.SeedDemo})
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	if len(demo.Users) == 0 || len(demo.SwapRequests) == 0 {
		t.Fatalf("demo seed is empty: %d users, %d requests", len(demo.Users), len(demo.SwapRequests))
	}
	if demo.CurrentUser != nil {
		t.Fatalf("demo seed should start logged out")
	}

	empty, err := initialState(config.Config{Seed: config.SeedEmpty})
	if err != nil {
		t.Fatalf("empty: %v", err)
	}
	if len(empty.Users) != 0 {
		t.Fatalf("empty seed has %d users", len(empty.Users))
	}

	if _, err := initialState(config.Config{Seed: "bogus"}); err == nil {
		t.Fatalf("expected error for unknown seed")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"noise": slog.LevelInfo,
	}
	for in, want := range cases {
		l := newLogger(config.Config{Env: "test", LogLevel: in})
		if !l.Enabled(context.Background(), want) {
			t.Fatalf("%q: level %v not enabled", in, want)
		}
		if want > slog.LevelDebug && l.Enabled(context.Background(), want-4) {
			t.Fatalf("%q: level below %v enabled", in, want)
		}
	}
}
