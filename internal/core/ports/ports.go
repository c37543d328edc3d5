package ports

import (
	"context"

	"automix-bot/internal/core/domain"
)

// ChatPlatform is the subset of the chat API the bot drives.
type ChatPlatform interface {
	SelfID() string
	ResolveChannel(ctx context.Context, channelID string) (*domain.Channel, error)
	FetchMessage(ctx context.Context, channelID, messageID string) (*domain.ChatMessage, error)
	RecentMessages(ctx context.Context, channelID string, limit int) ([]domain.ChatMessage, error)
	SendLeaderboard(ctx context.Context, channelID string, post domain.LeaderboardPost) (string, error)
	EditLeaderboard(ctx context.Context, channelID, messageID string, post domain.LeaderboardPost) (string, error)
	RenameChannel(ctx context.Context, channelID, name string) error
}

type LeaderboardSource interface {
	Fetch(ctx context.Context) (*domain.RankingSnapshot, error)
}

type RankingRenderer interface {
	Render(snapshot domain.RankingSnapshot, title string, topN int) ([]byte, error)
}

type ServerQuerier interface {
	Query(ctx context.Context, endpoint domain.ServerEndpoint) (*domain.QueryResult, error)
}

// IdentityRepository persists the leaderboard message pointer locally.
// Load returns domain.ErrNotFound when nothing usable is stored.
type IdentityRepository interface {
	Load(ctx context.Context) (*domain.MessageIdentity, error)
	Save(ctx context.Context, identity domain.MessageIdentity) error
}

// RemoteSync replicates the persisted pointer somewhere that outlives the
// process' filesystem.
type RemoteSync interface {
	Name() string
	Sync(ctx context.Context, identity domain.MessageIdentity) error
}

// Restorer is implemented by remote syncs that can hand back the last
// replicated identity.
type Restorer interface {
	Restore(ctx context.Context) (*domain.MessageIdentity, error)
}

// IdentityStore is the reconciler's view of the message pointer: an
// in-memory copy backed by local and remote persistence.
type IdentityStore interface {
	Load(ctx context.Context) (*domain.MessageIdentity, bool)
	Save(ctx context.Context, identity domain.MessageIdentity) error
	TrySyncRemote(ctx context.Context, identity domain.MessageIdentity)
}
