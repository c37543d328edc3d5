package commands

import (
	"context"

	"automix-bot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type DiscordSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type CommandSession interface {
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// LeaderboardRefresher runs one reconciliation cycle on demand.
type LeaderboardRefresher interface {
	RunOnce(ctx context.Context) error
}

// StatusRefresher runs one status sync on demand. It returns
// domain.ErrCycleInFlight when a sync is already running.
type StatusRefresher interface {
	SyncAll(ctx context.Context) ([]domain.ServerStatus, error)
}
