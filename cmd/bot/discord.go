package main

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

var errNoSelfUser = errors.New("discord session has no user after open")

// selfID returns the bot's own user id, which is only known once the
// gateway handshake has filled the session state.
func selfID(s *discordgo.Session) (string, error) {
	if s == nil || s.State == nil || s.State.User == nil || s.State.User.ID == "" {
		return "", errNoSelfUser
	}
	return s.State.User.ID, nil
}
