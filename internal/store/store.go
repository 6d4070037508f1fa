package store

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Observer is called after every successful dispatch, outside the store lock.
// err is nil on success; failed dispatches are reported too so metrics can
// count them. Observers must not block.
type Observer func(a Action, next State, err error)

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func WithObserver(o Observer) Option {
	return func(s *Store) { s.observers = append(s.observers, o) }
}

// Revision identifies one state of one Store. Version alone restarts at zero
// in every process; Epoch is random per Store so revisions of different
// processes never compare equal.
type Revision struct {
	Epoch   string
	Version uint64
}

func (r Revision) String() string {
	return r.Epoch + ":" + strconv.FormatUint(r.Version, 10)
}

// Store is the single writer for State. Dispatch calls are serialised.
type Store struct {
	mu        sync.RWMutex
	state     State
	epoch     string
	version   uint64
	logger    *slog.Logger
	observers []Observer
}

func New(initial State, opts ...Option) *Store {
	s := &Store{state: initial, epoch: uuid.NewString()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Dispatch applies a and returns the new state. On error the stored state is
// unchanged and the current state is returned.
func (s *Store) Dispatch(ctx context.Context, a Action) (State, error) {
	if err := ctx.Err(); err != nil {
		return s.Snapshot(), err
	}

	s.mu.Lock()
	next, err := Reduce(s.state, a)
	if err == nil {
		s.state = next
		s.version++
	}
	version := s.version
	s.mu.Unlock()

	name := "<nil>"
	if a != nil {
		name = a.Name()
	}
	if err != nil {
		s.logger.DebugContext(ctx, "dispatch rejected", "action", name, "err", err)
	} else {
		s.logger.DebugContext(ctx, "dispatch applied", "action", name, "version", version)
	}
	for _, o := range s.observers {
		o(a, next, err)
	}
	return next, err
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Version increases by one with every successful dispatch.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// SnapshotRevision returns the state together with its revision.
func (s *Store) SnapshotRevision() (State, Revision) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, Revision{Epoch: s.epoch, Version: s.version}
}
