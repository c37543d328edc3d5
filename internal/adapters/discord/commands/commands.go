package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"automix-bot/internal/adapters/discord/formatting"
	"automix-bot/internal/core/domain"
	"automix-bot/internal/core/services/status"

	"github.com/bwmarrin/discordgo"
)

const DefaultTimeout = 2 * time.Minute

type BotHandler struct {
	Leaderboard LeaderboardRefresher
	Status      StatusRefresher
	Timeout     time.Duration
}

func ReadyHandler(session *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("AUTOMIX bot is ready", "user", ready.User.Username, "guilds", len(ready.Guilds))
}

func (h *BotHandler) RefreshLeaderboard(s DiscordSession, i *discordgo.InteractionCreate) {
	if h.Leaderboard == nil {
		respond(s, i, formatting.MsgFeatureDisabled, true)
		return
	}
	if err := deferReply(s, i); err != nil {
		slog.Error("Failed to acknowledge interaction", "command", CommandLeaderboardRefresh, "error", err)
		return
	}

	ctx, cancel := h.context()
	defer cancel()

	err := h.Leaderboard.RunOnce(ctx)
	switch {
	case err == nil:
		editReply(s, i, formatting.MsgLeaderboardRefreshed)
	case errors.Is(err, domain.ErrCycleInFlight):
		editReply(s, i, formatting.MsgLeaderboardBusy)
	default:
		slog.Warn("Manual leaderboard refresh failed", "error", err)
		editReply(s, i, formatting.MsgLeaderboardFailed)
	}
}

func (h *BotHandler) RefreshStatus(s DiscordSession, i *discordgo.InteractionCreate) {
	if h.Status == nil {
		respond(s, i, formatting.MsgFeatureDisabled, true)
		return
	}
	if err := deferReply(s, i); err != nil {
		slog.Error("Failed to acknowledge interaction", "command", CommandStatusRefresh, "error", err)
		return
	}

	ctx, cancel := h.context()
	defer cancel()

	statuses, err := h.Status.SyncAll(ctx)
	if errors.Is(err, domain.ErrCycleInFlight) {
		editReply(s, i, formatting.MsgStatusBusy)
		return
	}
	if err != nil {
		slog.Warn("Manual status refresh failed", "error", err)
		editReply(s, i, formatting.MsgStatusFailed)
		return
	}

	labels := make([]string, len(statuses))
	for idx, st := range statuses {
		labels[idx] = status.Label(st)
	}
	editReply(s, i, formatting.MsgStatusSummary(labels))
}

func (h *BotHandler) context() (context.Context, context.CancelFunc) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}
