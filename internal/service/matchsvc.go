package service

import (
	"context"
	"log/slog"
	"time"

	"skillswap/internal/matching"
	"skillswap/internal/store"
)

type RevisionedStore interface {
	SnapshotRevision() (store.State, store.Revision)
}

type MatchCache interface {
	Get(ctx context.Context, seekerID string, rev store.Revision) ([]matching.Match, bool, error)
	Set(ctx context.Context, seekerID string, rev store.Revision, matches []matching.Match) error
}

type MatchObserver interface {
	ObserveMatch(d time.Duration)
	CacheHit()
	CacheMiss()
	CacheError()
}

// MatchService computes match suggestions. Cache and Metrics are optional.
type MatchService struct {
	Store   RevisionedStore
	Cache   MatchCache
	Metrics MatchObserver
	Logger  *slog.Logger
}

func (s *MatchService) Find(ctx context.Context, seekerID string) ([]matching.Match, error) {
	state, rev := s.Store.SnapshotRevision()
	seeker, err := store.FindUser(state, seekerID)
	if err != nil {
		return nil, err
	}
	logger := loggerOrDefault(s.Logger)

	if s.Cache != nil {
		cached, ok, err := s.Cache.Get(ctx, seekerID, rev)
		switch {
		case err != nil:
			s.observeCache(err, false)
			logger.Warn("matches: cache get failed", "err", err, "user_id", seekerID)
		case ok:
			s.observeCache(nil, true)
			return cached, nil
		default:
			s.observeCache(nil, false)
		}
	}

	start := time.Now()
	matches := matching.FindMatches(seeker, state.Users)
	if s.Metrics != nil {
		s.Metrics.ObserveMatch(time.Since(start))
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, seekerID, rev, matches); err != nil {
			logger.Warn("matches: cache set failed", "err", err, "user_id", seekerID)
		}
	}
	return matches, nil
}

func (s *MatchService) observeCache(err error, hit bool) {
	if s.Metrics == nil {
		return
	}
	switch {
	case err != nil:
		s.Metrics.CacheError()
	case hit:
		s.Metrics.CacheHit()
	default:
		s.Metrics.CacheMiss()
	}
}
