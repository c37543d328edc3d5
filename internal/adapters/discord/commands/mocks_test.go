package commands

import (
	"context"
	"sync"

	"automix-bot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type mockSession struct {
	mu          sync.Mutex
	respondFunc func(*discordgo.Interaction, *discordgo.InteractionResponse) error
	editFunc    func(*discordgo.Interaction, *discordgo.WebhookEdit) (*discordgo.Message, error)
	responses   []*discordgo.InteractionResponse
	edits       []string
}

func (m *mockSession) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	m.mu.Lock()
	m.responses = append(m.responses, resp)
	m.mu.Unlock()
	if m.respondFunc != nil {
		return m.respondFunc(i, resp)
	}
	return nil
}

func (m *mockSession) InteractionResponseEdit(i *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	if edit.Content != nil {
		m.edits = append(m.edits, *edit.Content)
	}
	m.mu.Unlock()
	if m.editFunc != nil {
		return m.editFunc(i, edit)
	}
	return &discordgo.Message{}, nil
}

type mockCommandSession struct {
	createFunc func(appID, guildID string, cmd *discordgo.ApplicationCommand) (*discordgo.ApplicationCommand, error)
	deleteFunc func(appID, guildID, cmdID string) error
	deleted    []string
}

func (m *mockCommandSession) ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, _ ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
	if m.createFunc != nil {
		return m.createFunc(appID, guildID, cmd)
	}
	return &discordgo.ApplicationCommand{ID: "id-" + cmd.Name, Name: cmd.Name}, nil
}

func (m *mockCommandSession) ApplicationCommandDelete(appID, guildID, cmdID string, _ ...discordgo.RequestOption) error {
	m.deleted = append(m.deleted, cmdID)
	if m.deleteFunc != nil {
		return m.deleteFunc(appID, guildID, cmdID)
	}
	return nil
}

type mockLeaderboard struct {
	runOnceFunc func(ctx context.Context) error
}

func (m *mockLeaderboard) RunOnce(ctx context.Context) error {
	if m.runOnceFunc != nil {
		return m.runOnceFunc(ctx)
	}
	return nil
}

type mockStatus struct {
	syncAllFunc func(ctx context.Context) ([]domain.ServerStatus, error)
}

func (m *mockStatus) SyncAll(ctx context.Context) ([]domain.ServerStatus, error) {
	if m.syncAllFunc != nil {
		return m.syncAllFunc(ctx)
	}
	return nil, nil
}

func commandInteraction(name string, perms int64) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "guild-1",
			Member:  &discordgo.Member{Permissions: perms},
			Data:    discordgo.ApplicationCommandInteractionData{Name: name},
		},
	}
}
