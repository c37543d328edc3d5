package status

import (
	"context"
	"sync"
	"time"

	"automix-bot/internal/core/domain"
)

type mockQuerier struct {
	queryFunc func(ctx context.Context, endpoint domain.ServerEndpoint) (*domain.QueryResult, error)
}

func (m *mockQuerier) Query(ctx context.Context, endpoint domain.ServerEndpoint) (*domain.QueryResult, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, endpoint)
	}
	return &domain.QueryResult{}, nil
}

// mockChat keeps channel names in memory so renames are observable.
type mockChat struct {
	mu           sync.Mutex
	names        map[string]string
	renameErr    error
	renames      map[string]string
	renameCalls  int
	resolveErr   error
	resolveDelay time.Duration
}

func newMockChat(names map[string]string) *mockChat {
	if names == nil {
		names = make(map[string]string)
	}
	return &mockChat{names: names, renames: make(map[string]string)}
}

func (m *mockChat) SelfID() string { return "bot" }

func (m *mockChat) ResolveChannel(ctx context.Context, channelID string) (*domain.Channel, error) {
	if m.resolveDelay > 0 {
		time.Sleep(m.resolveDelay)
	}
	if m.resolveErr != nil {
		return nil, m.resolveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return &domain.Channel{ID: channelID, Name: m.names[channelID]}, nil
}

func (m *mockChat) FetchMessage(ctx context.Context, channelID, messageID string) (*domain.ChatMessage, error) {
	return nil, domain.ErrNotFound
}

func (m *mockChat) RecentMessages(ctx context.Context, channelID string, limit int) ([]domain.ChatMessage, error) {
	return nil, nil
}

func (m *mockChat) SendLeaderboard(ctx context.Context, channelID string, post domain.LeaderboardPost) (string, error) {
	return "", nil
}

func (m *mockChat) EditLeaderboard(ctx context.Context, channelID, messageID string, post domain.LeaderboardPost) (string, error) {
	return "", nil
}

func (m *mockChat) RenameChannel(ctx context.Context, channelID, name string) error {
	if m.renameErr != nil {
		return m.renameErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renameCalls++
	m.renames[channelID] = name
	m.names[channelID] = name
	return nil
}
