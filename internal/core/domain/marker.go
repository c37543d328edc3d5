package domain

import "strings"

// MarkerKind identifies how a message was recognised as a leaderboard post.
type MarkerKind int

const (
	MarkerNone MarkerKind = iota
	MarkerCurrentEmbed
	MarkerLegacyText
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerCurrentEmbed:
		return "current_embed"
	case MarkerLegacyText:
		return "legacy_text"
	default:
		return "none"
	}
}

// Markers holds the recognised leaderboard signatures, evaluated in order:
// the current embed title first, then the legacy text prefix.
type Markers struct {
	EmbedTitle   string
	LegacyPrefix string
}

// Classify reports which marker msg carries. Messages by other authors are
// never leaderboard posts.
func (m Markers) Classify(msg ChatMessage, selfID string) MarkerKind {
	if selfID == "" || msg.AuthorID != selfID {
		return MarkerNone
	}
	if m.EmbedTitle != "" && msg.EmbedTitle == m.EmbedTitle {
		return MarkerCurrentEmbed
	}
	if m.LegacyPrefix != "" && strings.HasPrefix(msg.Content, m.LegacyPrefix) {
		return MarkerLegacyText
	}
	return MarkerNone
}
