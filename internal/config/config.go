package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"automix-bot/internal/core/domain"

	"github.com/joho/godotenv"
)

const (
	DefaultLeaderboardTitle = "AUTOMIX Leaderboard"
	DefaultExcludedPlayer   = "maxfps tv"
	DefaultMessageIDPath    = "data/leaderboard-message.json"
	DefaultGameType         = "csgo"
	DefaultServerName       = "Server"
)

type Config struct {
	Token   string
	GuildID string

	StatusInterval      time.Duration
	LeaderboardInterval time.Duration
	RunOnce             bool

	Servers            []domain.ServerEndpoint
	GameType           string
	ExcludedPlayerName string
	QueryTimeout       time.Duration
	RequestTimeout     time.Duration

	LeaderboardChannelID    string
	LeaderboardURL          string
	LeaderboardTitle        string
	LeaderboardLegacyPrefix string
	LeaderboardTopN         int
	MessageIDPath           string

	GitSync             GitSyncConfig
	IdentityDatabaseURL string

	CommandsEnabled bool
	MetricsEnabled  bool
	MetricsAddr     string
	OTLPEndpoint    string
	LogLevel        string
}

// GitSyncConfig enables committing the identity file back to the deploy
// repository. Token and Repository are both required.
type GitSyncConfig struct {
	Token      string
	Repository string
	Branch     string
	Author     string
}

func (g GitSyncConfig) Enabled() bool {
	return g.Token != "" && g.Repository != ""
}

func (c *Config) LeaderboardEnabled() bool {
	return c.LeaderboardChannelID != ""
}

func (c *Config) StatusEnabled() bool {
	return len(c.Servers) > 0
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	token := readSecret("discord_token")
	if token == "" {
		token = os.Getenv("DISCORD_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set (via secret or env var)")
	}

	dbURL := readSecret("identity_database_url")
	if dbURL == "" {
		dbURL = os.Getenv("IDENTITY_DATABASE_URL")
	}

	gameType := strings.ToLower(envString("GAME_TYPE", DefaultGameType))
	servers, err := loadServers(gameType)
	if err != nil {
		return nil, err
	}

	title := envString("LEADERBOARD_TITLE", DefaultLeaderboardTitle)

	cfg := &Config{
		Token:   token,
		GuildID: envString("GUILD_ID", ""),

		StatusInterval:      envMinutes("STATUS_INTERVAL_MINUTES", envInt("INTERVAL_MINUTES", 5)),
		LeaderboardInterval: envMinutes("LEADERBOARD_INTERVAL_MINUTES", 10),
		RunOnce:             envBool("RUN_ONCE", false),

		Servers:            servers,
		GameType:           gameType,
		ExcludedPlayerName: envString("EXCLUDED_PLAYER_NAME", DefaultExcludedPlayer),
		QueryTimeout:       envDuration("QUERY_TIMEOUT", 5*time.Second),
		RequestTimeout:     envDuration("REQUEST_TIMEOUT", 15*time.Second),

		LeaderboardChannelID:    envString("LEADERBOARD_CHANNEL_ID", ""),
		LeaderboardURL:          envString("LEADERBOARD_URL", ""),
		LeaderboardTitle:        title,
		LeaderboardLegacyPrefix: envString("LEADERBOARD_LEGACY_PREFIX", "**"+title+"**"),
		LeaderboardTopN:         envInt("LEADERBOARD_TOP_N", 15),
		MessageIDPath:           envString("MESSAGE_ID_PATH", DefaultMessageIDPath),

		GitSync: GitSyncConfig{
			Token:      envString("GIT_SYNC_TOKEN", ""),
			Repository: envString("GIT_SYNC_REPOSITORY", ""),
			Branch:     envString("GIT_SYNC_BRANCH", "main"),
			Author:     envString("GIT_SYNC_AUTHOR", "automix-bot"),
		},
		IdentityDatabaseURL: dbURL,

		CommandsEnabled: envBool("COMMANDS_ENABLED", true),
		MetricsEnabled:  envBool("METRICS_ENABLED", true),
		MetricsAddr:     envString("METRICS_ADDR", ":9090"),
		OTLPEndpoint:    envString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		LogLevel:        envString("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadServers reads SERVERS, falling back to the single-server variables.
func loadServers(gameType string) ([]domain.ServerEndpoint, error) {
	if raw := os.Getenv("SERVERS"); raw != "" {
		return ParseServers(raw, gameType)
	}

	host := os.Getenv("SERVER_IP")
	if host == "" {
		return nil, nil
	}
	port, err := strconv.Atoi(envString("SERVER_PORT", "27015"))
	if err != nil {
		return nil, fmt.Errorf("SERVER_PORT is not a number: %w", err)
	}
	return []domain.ServerEndpoint{{
		DisplayName: envString("SERVER_NAME", DefaultServerName),
		Host:        host,
		Port:        port,
		ChannelID:   os.Getenv("CHANNEL_ID"),
		GameType:    gameType,
	}}, nil
}

// ParseServers parses "Name|host|port|channelID" entries separated by commas.
func ParseServers(raw, gameType string) ([]domain.ServerEndpoint, error) {
	var servers []domain.ServerEndpoint
	for i, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, "|")
		if len(parts) != 4 {
			return nil, fmt.Errorf("SERVERS entry %d: expected Name|host|port|channelID, got %q", i+1, entry)
		}
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}

		port, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("SERVERS entry %d: invalid port %q", i+1, parts[2])
		}

		servers = append(servers, domain.ServerEndpoint{
			DisplayName: parts[0],
			Host:        parts[1],
			Port:        port,
			ChannelID:   parts[3],
			GameType:    gameType,
		})
	}
	return servers, nil
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envMinutes(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Minute
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
