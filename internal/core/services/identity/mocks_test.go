package identity

import (
	"context"

	"automix-bot/internal/core/domain"
)

type mockRepo struct {
	loadFunc  func(ctx context.Context) (*domain.MessageIdentity, error)
	saveFunc  func(ctx context.Context, identity domain.MessageIdentity) error
	saveCalls int
}

func (m *mockRepo) Load(ctx context.Context) (*domain.MessageIdentity, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return nil, domain.ErrNotFound
}

func (m *mockRepo) Save(ctx context.Context, identity domain.MessageIdentity) error {
	m.saveCalls++
	if m.saveFunc != nil {
		return m.saveFunc(ctx, identity)
	}
	return nil
}

type mockRemote struct {
	name     string
	syncFunc func(ctx context.Context, identity domain.MessageIdentity) error
	synced   []string
}

func (m *mockRemote) Name() string {
	if m.name == "" {
		return "mock"
	}
	return m.name
}

func (m *mockRemote) Sync(ctx context.Context, identity domain.MessageIdentity) error {
	m.synced = append(m.synced, identity.ID)
	if m.syncFunc != nil {
		return m.syncFunc(ctx, identity)
	}
	return nil
}

type mockRestoringRemote struct {
	mockRemote
	restoreFunc func(ctx context.Context) (*domain.MessageIdentity, error)
}

func (m *mockRestoringRemote) Restore(ctx context.Context) (*domain.MessageIdentity, error) {
	if m.restoreFunc != nil {
		return m.restoreFunc(ctx)
	}
	return nil, domain.ErrNotFound
}
