package identity

import (
	"context"
	"errors"
	"strings"

	"automix-bot/internal/core/domain"
	"automix-bot/internal/core/ports"
)

// NoopSync is used when no remote persistence is configured.
type NoopSync struct{}

func (NoopSync) Name() string { return "noop" }

func (NoopSync) Sync(ctx context.Context, identity domain.MessageIdentity) error { return nil }

// MultiSync fans a sync out to every target and joins their errors. It
// restores from the first target that can.
type MultiSync struct {
	targets []ports.RemoteSync
}

// NewRemoteSync collapses the configured targets: none yields NoopSync, one
// is returned as is.
func NewRemoteSync(targets ...ports.RemoteSync) ports.RemoteSync {
	var active []ports.RemoteSync
	for _, t := range targets {
		if t != nil {
			active = append(active, t)
		}
	}
	switch len(active) {
	case 0:
		return NoopSync{}
	case 1:
		return active[0]
	default:
		return &MultiSync{targets: active}
	}
}

func (m *MultiSync) Name() string {
	names := make([]string, len(m.targets))
	for i, t := range m.targets {
		names[i] = t.Name()
	}
	return strings.Join(names, "+")
}

func (m *MultiSync) Sync(ctx context.Context, identity domain.MessageIdentity) error {
	var errs []error
	for _, t := range m.targets {
		if err := t.Sync(ctx, identity); err != nil {
			errs = append(errs, &domain.PersistenceError{Target: t.Name(), Err: err})
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSync) Restore(ctx context.Context) (*domain.MessageIdentity, error) {
	for _, t := range m.targets {
		r, ok := t.(ports.Restorer)
		if !ok {
			continue
		}
		if identity, err := r.Restore(ctx); err == nil {
			return identity, nil
		}
	}
	return nil, domain.ErrNotFound
}
