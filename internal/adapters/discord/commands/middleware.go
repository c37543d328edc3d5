package commands

import (
	"automix-bot/internal/adapters/discord/formatting"

	"github.com/bwmarrin/discordgo"
)

// WithAdmin rejects interactions from members without the Administrator
// permission. DMs have no member and are rejected too.
func WithAdmin(next CommandHandler) CommandHandler {
	return func(s DiscordSession, i *discordgo.InteractionCreate) {
		if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
			respond(s, i, formatting.MsgAdminRequired, true)
			return
		}
		next(s, i)
	}
}
