package identity

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"automix-bot/internal/adapters/metrics"
	"automix-bot/internal/core/domain"
	"automix-bot/internal/core/ports"
)

// DefaultRemoteTimeout bounds each remote Sync or Restore call.
const DefaultRemoteTimeout = 30 * time.Second

// Store owns the leaderboard message pointer. It keeps the last known
// identity in memory so a failed durable write never loses it for the
// lifetime of the process.
type Store struct {
	repo          ports.IdentityRepository
	remote        ports.RemoteSync
	remoteTimeout time.Duration

	mu      sync.Mutex
	current *domain.MessageIdentity
}

// NewStore wraps repo and remote. Remote calls never outlive remoteTimeout,
// whatever the caller's context.
func NewStore(repo ports.IdentityRepository, remote ports.RemoteSync, remoteTimeout time.Duration) *Store {
	if remote == nil {
		remote = NoopSync{}
	}
	if remoteTimeout <= 0 {
		remoteTimeout = DefaultRemoteTimeout
	}
	return &Store{repo: repo, remote: remote, remoteTimeout: remoteTimeout}
}

// Load returns the stored identity, or false on first run. Missing or
// corrupt storage is not an error.
func (s *Store) Load(ctx context.Context) (*domain.MessageIdentity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		id := *s.current
		return &id, true
	}

	identity, err := s.repo.Load(ctx)
	if err == nil {
		s.current = identity
		id := *identity
		return &id, true
	}
	if !errors.Is(err, domain.ErrNotFound) {
		slog.Warn("Failed to read message identity, treating as absent", "error", err)
	}

	restored := s.restore(ctx)
	if restored == nil {
		return nil, false
	}

	s.current = restored
	if err := s.repo.Save(ctx, *restored); err != nil {
		slog.Warn("Failed to write restored message identity", "error", err)
	}
	id := *restored
	return &id, true
}

func (s *Store) restore(ctx context.Context) *domain.MessageIdentity {
	restorer, ok := s.remote.(ports.Restorer)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	identity, err := restorer.Restore(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Warn("Failed to restore message identity from remote", "remote", s.remote.Name(), "error", err)
		}
		return nil
	}
	slog.Info("Restored message identity from remote", "remote", s.remote.Name(), "message_id", identity.ID)
	return identity
}

// Save updates the in-memory pointer and then the durable copy. A write
// failure is returned as *domain.PersistenceError for logging only.
func (s *Store) Save(ctx context.Context, identity domain.MessageIdentity) error {
	s.mu.Lock()
	id := identity
	s.current = &id
	s.mu.Unlock()

	err := s.repo.Save(ctx, identity)
	metrics.IdentityWrites.WithLabelValues("local", metrics.Status(err)).Inc()
	if err != nil {
		return &domain.PersistenceError{Target: "local", Err: err}
	}
	return nil
}

// TrySyncRemote replicates the identity. Errors are logged and swallowed.
func (s *Store) TrySyncRemote(ctx context.Context, identity domain.MessageIdentity) {
	ctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	err := s.remote.Sync(ctx, identity)
	metrics.IdentityWrites.WithLabelValues(s.remote.Name(), metrics.Status(err)).Inc()
	if err != nil {
		perr := &domain.PersistenceError{Target: s.remote.Name(), Err: err}
		slog.Warn("Failed to sync message identity", "error", perr)
		return
	}
	slog.Debug("Synced message identity", "remote", s.remote.Name(), "message_id", identity.ID)
}
