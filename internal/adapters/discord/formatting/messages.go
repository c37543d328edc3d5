package formatting

import (
	"fmt"
	"strings"

	"automix-bot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

// EmbedColor is the accent stripe of the leaderboard embed (podium gold).
const EmbedColor = 0xF5C542

func AttachmentURL(fileName string) string {
	return "attachment://" + fileName
}

// LeaderboardEmbed builds the embed that carries the rendered image. Its
// title doubles as the marker used to find the post again.
func LeaderboardEmbed(post domain.LeaderboardPost) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: post.Title,
		Color: EmbedColor,
		Image: &discordgo.MessageEmbedImage{URL: AttachmentURL(post.FileName)},
	}
	if footer := MsgLastUpdate(post.LastUpdate); footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	}
	return embed
}

func MsgLastUpdate(lastUpdate string) string {
	if lastUpdate == "" {
		return ""
	}
	return fmt.Sprintf("Last update: %s", lastUpdate)
}

const (
	MsgAdminRequired        = "You need Administrator permissions to use this command."
	MsgFeatureDisabled      = "This feature is not configured on this bot."
	MsgLeaderboardRefreshed = "Leaderboard updated."
	MsgLeaderboardBusy      = "A leaderboard update is already running, try again in a moment."
	MsgLeaderboardFailed    = "Failed to update the leaderboard, see the bot logs."
	MsgStatusBusy           = "A status sync is already running, try again in a moment."
	MsgStatusFailed         = "Failed to sync server status, see the bot logs."
	MsgNoServers            = "No servers are configured."
)

func MsgStatusSummary(labels []string) string {
	if len(labels) == 0 {
		return MsgNoServers
	}
	var b strings.Builder
	b.WriteString("Server status:\n")
	for _, l := range labels {
		b.WriteString("- ")
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}
