package commands

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

const (
	CommandLeaderboardRefresh = "leaderboard-refresh"
	CommandStatusRefresh      = "status-refresh"
)

var adminPerms = int64(discordgo.PermissionAdministrator)

// GetApplicationCommands returns the commands for the enabled tasks.
func GetApplicationCommands(leaderboard, status bool) []*discordgo.ApplicationCommand {
	var cmds []*discordgo.ApplicationCommand
	if leaderboard {
		cmds = append(cmds, &discordgo.ApplicationCommand{
			Name:                     CommandLeaderboardRefresh,
			Description:              "Re-render and update the leaderboard post now",
			DefaultMemberPermissions: &adminPerms,
		})
	}
	if status {
		cmds = append(cmds, &discordgo.ApplicationCommand{
			Name:                     CommandStatusRefresh,
			Description:              "Query the game servers and update channel names now",
			DefaultMemberPermissions: &adminPerms,
		})
	}
	return cmds
}

func RegisterCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID, guildID string) []*discordgo.ApplicationCommand {
	registered := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		result, err := session.ApplicationCommandCreate(userID, guildID, cmd)
		if err != nil {
			slog.Error("Cannot create command", "name", cmd.Name, "error", err)
			continue
		}
		registered[i] = result
		slog.Info("Registered command", "name", cmd.Name, "guild_id", guildID)
	}

	return registered
}

func CleanupCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID, guildID string) {
	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		if err := session.ApplicationCommandDelete(userID, guildID, cmd.ID); err != nil {
			slog.Error("Cannot delete command", "name", cmd.Name, "error", err)
		}
	}
}
