package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LeaderboardCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automix_leaderboard_cycles_total",
		Help: "Leaderboard reconciliation cycles by outcome",
	}, []string{"outcome"})

	LeaderboardUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automix_leaderboard_upserts_total",
		Help: "Leaderboard message writes by action (edit or send)",
	}, []string{"action", "status"})

	LeaderboardLocate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automix_leaderboard_locate_total",
		Help: "How the canonical leaderboard message was found",
	}, []string{"source"})

	LeaderboardStageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "automix_leaderboard_stage_duration_seconds",
		Help:    "Duration of each reconciliation stage",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	FeedRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "automix_feed_request_duration_seconds",
		Help:    "Duration of leaderboard feed requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})

	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automix_feed_requests_total",
		Help: "Total number of leaderboard feed requests",
	}, []string{"status"})

	ServerQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automix_server_queries_total",
		Help: "Game server status queries by server and outcome",
	}, []string{"server", "status"})

	ServerActivePlayers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "automix_server_active_players",
		Help: "Active players reported by the last successful query",
	}, []string{"server"})

	ChannelRenames = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automix_channel_renames_total",
		Help: "Mirrored channel renames by outcome",
	}, []string{"status"})

	DiscordRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automix_discord_requests_total",
		Help: "Discord REST calls by operation and outcome",
	}, []string{"operation", "status"})

	IdentityWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automix_identity_writes_total",
		Help: "Leaderboard message identity writes by target and outcome",
	}, []string{"target", "status"})
)

// Status maps an error to the "success"/"failure" label used across collectors.
func Status(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
