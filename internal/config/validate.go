package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"automix-bot/internal/adapters/gamequery"
)

// Validation constants define acceptable bounds for configuration values
const (
	// Token validation
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	// Interval validation, shared by both periodic tasks
	minInterval = 1 * time.Minute
	maxInterval = 24 * time.Hour

	// Per-call timeouts
	minTimeout = 1 * time.Second
	maxTimeout = 2 * time.Minute

	// Leaderboard rows
	minTopN = 1
	maxTopN = 50

	minPort = 1
	maxPort = 65535
)

// Validate checks if the configuration values are valid and within acceptable ranges.
// It returns all validation errors at once using errors.Join.
//
// Validated fields:
//   - Token: at least 50 characters
//   - Intervals: between 1m and 24h
//   - Timeouts: between 1s and 2m
//   - Servers: name, host, port 1-65535 and channel id each
//   - Leaderboard: absolute http(s) URL and top N between 1 and 50 when a channel is set
//
// At least one of the two tasks must be configured.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateIntervals(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateTimeouts(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateTasks(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateServers(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateLeaderboard(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

// validateToken ensures the Discord token is present and has valid length
func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

func (c *Config) validateIntervals() error {
	var errs []error

	if err := validateInterval("STATUS_INTERVAL_MINUTES", c.StatusInterval); err != nil {
		errs = append(errs, err)
	}

	if err := validateInterval("LEADERBOARD_INTERVAL_MINUTES", c.LeaderboardInterval); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validateInterval(field string, d time.Duration) error {
	if d < minInterval || d > maxInterval {
		return fmt.Errorf(
			"%s must be between %v and %v, got %v",
			field, minInterval, maxInterval, d,
		)
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	var errs []error

	for field, d := range map[string]time.Duration{
		"QUERY_TIMEOUT":   c.QueryTimeout,
		"REQUEST_TIMEOUT": c.RequestTimeout,
	} {
		if d < minTimeout || d > maxTimeout {
			errs = append(errs, fmt.Errorf("%s must be between %v and %v, got %v", field, minTimeout, maxTimeout, d))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) validateTasks() error {
	if !c.StatusEnabled() && !c.LeaderboardEnabled() {
		return fmt.Errorf("nothing to do: set SERVERS (or SERVER_IP) and/or LEADERBOARD_CHANNEL_ID")
	}
	return nil
}

// validateServers checks every endpoint in SERVERS
func (c *Config) validateServers() error {
	var errs []error

	if c.StatusEnabled() && !gamequery.Supported(c.GameType) {
		errs = append(errs, fmt.Errorf("GAME_TYPE %q is not supported", c.GameType))
	}

	for i, s := range c.Servers {
		if s.DisplayName == "" {
			errs = append(errs, fmt.Errorf("server %d: name cannot be empty", i+1))
		}
		if s.Host == "" {
			errs = append(errs, fmt.Errorf("server %d: host cannot be empty", i+1))
		}
		if s.Port < minPort || s.Port > maxPort {
			errs = append(errs, fmt.Errorf("server %d: port must be between %d and %d, got %d", i+1, minPort, maxPort, s.Port))
		}
		if s.ChannelID == "" {
			errs = append(errs, fmt.Errorf("server %d: channel id cannot be empty", i+1))
		}
	}

	return errors.Join(errs...)
}

// validateLeaderboard only applies when the leaderboard task is enabled
func (c *Config) validateLeaderboard() error {
	if !c.LeaderboardEnabled() {
		return nil
	}

	var errs []error

	u, err := url.Parse(c.LeaderboardURL)
	if c.LeaderboardURL == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("LEADERBOARD_URL must be an absolute http(s) URL, got %q", c.LeaderboardURL))
	}

	if c.LeaderboardTitle == "" {
		errs = append(errs, fmt.Errorf("LEADERBOARD_TITLE cannot be empty"))
	}

	if c.LeaderboardTopN < minTopN || c.LeaderboardTopN > maxTopN {
		errs = append(errs, fmt.Errorf(
			"LEADERBOARD_TOP_N must be between %d and %d, got %d",
			minTopN, maxTopN, c.LeaderboardTopN,
		))
	}

	return errors.Join(errs...)
}
