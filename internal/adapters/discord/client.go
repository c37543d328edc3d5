package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"automix-bot/internal/adapters/discord/formatting"
	"automix-bot/internal/adapters/metrics"
	"automix-bot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

const (
	DefaultRequestTimeout = 15 * time.Second

	// Discord allows two channel renames per ten minutes per channel.
	renameBurst  = 2
	renameWindow = 10 * time.Minute
)

type DiscordSession interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelEdit(channelID string, data *discordgo.ChannelEdit, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Adapter implements ports.ChatPlatform over the Discord REST API.
type Adapter struct {
	session DiscordSession
	selfID  string
	timeout time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewAdapter(session DiscordSession, selfID string, timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Adapter{
		session:  session,
		selfID:   selfID,
		timeout:  timeout,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (a *Adapter) SelfID() string {
	return a.selfID
}

func (a *Adapter) ResolveChannel(ctx context.Context, channelID string) (*domain.Channel, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	ch, err := a.session.Channel(channelID, discordgo.WithContext(ctx))
	record("channel", err)
	if err != nil {
		return nil, fmt.Errorf("resolve channel %s: %w", channelID, mapError(err))
	}
	return &domain.Channel{ID: ch.ID, GuildID: ch.GuildID, Name: ch.Name}, nil
}

func (a *Adapter) FetchMessage(ctx context.Context, channelID, messageID string) (*domain.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	msg, err := a.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	record("message_fetch", err)
	if err != nil {
		return nil, fmt.Errorf("fetch message %s: %w", messageID, mapError(err))
	}
	out := toChatMessage(msg)
	return &out, nil
}

func (a *Adapter) RecentMessages(ctx context.Context, channelID string, limit int) ([]domain.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	msgs, err := a.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	record("message_list", err)
	if err != nil {
		return nil, fmt.Errorf("list messages in %s: %w", channelID, mapError(err))
	}

	out := make([]domain.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		if m == nil {
			continue
		}
		out = append(out, toChatMessage(m))
	}
	return out, nil
}

func (a *Adapter) SendLeaderboard(ctx context.Context, channelID string, post domain.LeaderboardPost) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	msg, err := a.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{formatting.LeaderboardEmbed(post)},
		Files:  []*discordgo.File{imageFile(post)},
	}, discordgo.WithContext(ctx))
	record("message_send", err)
	if err != nil {
		return "", fmt.Errorf("send leaderboard: %w", mapError(err))
	}
	return msg.ID, nil
}

// EditLeaderboard rewrites an existing post in place. Content is cleared and
// embeds and attachments are replaced, which also migrates legacy text posts.
func (a *Adapter) EditLeaderboard(ctx context.Context, channelID, messageID string, post domain.LeaderboardPost) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	content := ""
	embeds := []*discordgo.MessageEmbed{formatting.LeaderboardEmbed(post)}
	attachments := []*discordgo.MessageAttachment{}

	msg, err := a.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:          messageID,
		Channel:     channelID,
		Content:     &content,
		Embeds:      &embeds,
		Attachments: &attachments,
		Files:       []*discordgo.File{imageFile(post)},
	}, discordgo.WithContext(ctx))
	record("message_edit", err)
	if err != nil {
		return "", fmt.Errorf("edit leaderboard %s: %w", messageID, mapError(err))
	}
	return msg.ID, nil
}

// RenameChannel sets the channel name. Renames beyond Discord's per-channel
// budget return domain.ErrRateLimited without calling the API.
func (a *Adapter) RenameChannel(ctx context.Context, channelID, name string) error {
	if !a.limiter(channelID).Allow() {
		slog.Debug("Skipping channel rename, budget exhausted", "channel_id", channelID)
		return domain.ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	_, err := a.session.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name}, discordgo.WithContext(ctx))
	record("channel_edit", err)
	if err != nil {
		return fmt.Errorf("rename channel %s: %w", channelID, mapError(err))
	}
	return nil
}

func (a *Adapter) limiter(channelID string) *rate.Limiter {
	a.mu.Lock()
	defer a.mu.Unlock()

	l, ok := a.limiters[channelID]
	if !ok {
		l = rate.NewLimiter(rate.Every(renameWindow/renameBurst), renameBurst)
		a.limiters[channelID] = l
	}
	return l
}

func imageFile(post domain.LeaderboardPost) *discordgo.File {
	return &discordgo.File{
		Name:        post.FileName,
		ContentType: "image/png",
		Reader:      bytes.NewReader(post.Image),
	}
}

func toChatMessage(m *discordgo.Message) domain.ChatMessage {
	out := domain.ChatMessage{ID: m.ID, Content: m.Content}
	if m.Author != nil {
		out.AuthorID = m.Author.ID
	}
	for _, e := range m.Embeds {
		if e != nil && e.Title != "" {
			out.EmbedTitle = e.Title
			break
		}
	}
	return out
}

// mapError turns Discord "unknown message/channel" responses into
// domain.ErrNotFound.
func mapError(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return err
}

func record(op string, err error) {
	metrics.DiscordRequests.WithLabelValues(op, metrics.Status(err)).Inc()
}
