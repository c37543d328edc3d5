package leaderboard

import (
	"context"
	"sync"

	"automix-bot/internal/core/domain"
)

type mockChat struct {
	selfID              string
	resolveChannelFunc  func(ctx context.Context, channelID string) (*domain.Channel, error)
	fetchMessageFunc    func(ctx context.Context, channelID, messageID string) (*domain.ChatMessage, error)
	recentMessagesFunc  func(ctx context.Context, channelID string, limit int) ([]domain.ChatMessage, error)
	sendLeaderboardFunc func(ctx context.Context, channelID string, post domain.LeaderboardPost) (string, error)
	editLeaderboardFunc func(ctx context.Context, channelID, messageID string, post domain.LeaderboardPost) (string, error)

	mu     sync.Mutex
	sends  int
	edits  []string
	scans  int
	posted []domain.LeaderboardPost
}

func (m *mockChat) SelfID() string { return m.selfID }

func (m *mockChat) ResolveChannel(ctx context.Context, channelID string) (*domain.Channel, error) {
	if m.resolveChannelFunc != nil {
		return m.resolveChannelFunc(ctx, channelID)
	}
	return &domain.Channel{ID: channelID}, nil
}

func (m *mockChat) FetchMessage(ctx context.Context, channelID, messageID string) (*domain.ChatMessage, error) {
	if m.fetchMessageFunc != nil {
		return m.fetchMessageFunc(ctx, channelID, messageID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockChat) RecentMessages(ctx context.Context, channelID string, limit int) ([]domain.ChatMessage, error) {
	m.mu.Lock()
	m.scans++
	m.mu.Unlock()
	if m.recentMessagesFunc != nil {
		return m.recentMessagesFunc(ctx, channelID, limit)
	}
	return nil, nil
}

func (m *mockChat) SendLeaderboard(ctx context.Context, channelID string, post domain.LeaderboardPost) (string, error) {
	m.mu.Lock()
	m.sends++
	m.posted = append(m.posted, post)
	m.mu.Unlock()
	if m.sendLeaderboardFunc != nil {
		return m.sendLeaderboardFunc(ctx, channelID, post)
	}
	return "sent-1", nil
}

func (m *mockChat) EditLeaderboard(ctx context.Context, channelID, messageID string, post domain.LeaderboardPost) (string, error) {
	m.mu.Lock()
	m.edits = append(m.edits, messageID)
	m.posted = append(m.posted, post)
	m.mu.Unlock()
	if m.editLeaderboardFunc != nil {
		return m.editLeaderboardFunc(ctx, channelID, messageID, post)
	}
	return messageID, nil
}

func (m *mockChat) RenameChannel(ctx context.Context, channelID, name string) error {
	return nil
}

type mockSource struct {
	fetchFunc func(ctx context.Context) (*domain.RankingSnapshot, error)
}

func (m *mockSource) Fetch(ctx context.Context) (*domain.RankingSnapshot, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx)
	}
	return &domain.RankingSnapshot{
		Rows:       []domain.RankingRow{{Name: "Alice", Points: 100}},
		LastUpdate: "2026-01-01 12:00",
	}, nil
}

type mockRenderer struct {
	renderFunc func(snapshot domain.RankingSnapshot, title string, topN int) ([]byte, error)
}

func (m *mockRenderer) Render(snapshot domain.RankingSnapshot, title string, topN int) ([]byte, error) {
	if m.renderFunc != nil {
		return m.renderFunc(snapshot, title, topN)
	}
	return []byte("png"), nil
}

// memoryStore mimics identity.Store: an in-memory pointer that survives a
// failed durable write.
type memoryStore struct {
	mu      sync.Mutex
	current *domain.MessageIdentity
	saveErr error
	saves   []string
	synced  []string
	loads   int
}

func (m *memoryStore) Load(ctx context.Context) (*domain.MessageIdentity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.current == nil {
		return nil, false
	}
	id := *m.current
	return &id, true
}

func (m *memoryStore) Save(ctx context.Context, identity domain.MessageIdentity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &identity
	m.saves = append(m.saves, identity.ID)
	return m.saveErr
}

func (m *memoryStore) TrySyncRemote(ctx context.Context, identity domain.MessageIdentity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.synced = append(m.synced, identity.ID)
}
