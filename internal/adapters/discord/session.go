package discord

import (
	"log/slog"

	"automix-bot/internal/config"

	"github.com/bwmarrin/discordgo"
)

// NewSession creates the REST/gateway session. The bot only reads its own
// posts and renames channels, so the guilds intent is enough.
func NewSession(cfg *config.Config) (*discordgo.Session, error) {
	discord, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		slog.Error("Failed to create discord session", "error", err)
		return nil, err
	}

	discord.Identify.Intents = discordgo.IntentsGuilds

	return discord, nil
}
