package domain

import "math"

// RankingRow is one line of the leaderboard feed. A nil KDR means the feed
// did not provide a usable ratio.
type RankingRow struct {
	Name   string
	Points int
	Kills  int
	Deaths int
	KDR    *float64
}

// HasKDR reports whether the row carries a finite kill/death ratio.
func (r RankingRow) HasKDR() bool {
	return r.KDR != nil && !math.IsNaN(*r.KDR) && !math.IsInf(*r.KDR, 0)
}

// RankingSnapshot is the rank-ordered result of a single feed fetch.
type RankingSnapshot struct {
	Rows       []RankingRow
	LastUpdate string
}

// Top returns the first n rows. n <= 0 returns every row.
func (s RankingSnapshot) Top(n int) []RankingRow {
	if n <= 0 || n >= len(s.Rows) {
		return s.Rows
	}
	return s.Rows[:n]
}

type MessageIdentity struct {
	ID string `json:"id"`
}

type ServerEndpoint struct {
	DisplayName string
	Host        string
	Port        int
	ChannelID   string
	GameType    string
}

type ServerStatus struct {
	Endpoint ServerEndpoint
	Online   bool
	Active   int
	Max      int
}

type Player struct {
	Name string
}

type QueryResult struct {
	Players    []Player
	MaxPlayers int
}

type Channel struct {
	ID      string
	GuildID string
	Name    string
}

// ChatMessage is the platform-neutral view of a posted message. Empty strings
// stand for absent content or embed title.
type ChatMessage struct {
	ID         string
	AuthorID   string
	Content    string
	EmbedTitle string
}

// LeaderboardPost is the payload sent or edited into the leaderboard channel.
type LeaderboardPost struct {
	Title      string
	LastUpdate string
	Image      []byte
	FileName   string
}
