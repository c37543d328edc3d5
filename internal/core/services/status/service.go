package status

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"automix-bot/internal/adapters/metrics"
	"automix-bot/internal/core/domain"
	"automix-bot/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

const DefaultQueryTimeout = 5 * time.Second

type Options struct {
	ExcludedPlayerName string
	QueryTimeout       time.Duration
	Interval           time.Duration
}

type Dependencies struct {
	Chat    ports.ChatPlatform
	Querier ports.ServerQuerier
	Servers []domain.ServerEndpoint
	Options Options
}

// Service mirrors game server population into channel names.
type Service struct {
	chat    ports.ChatPlatform
	querier ports.ServerQuerier
	servers []domain.ServerEndpoint
	opts    Options

	inFlight atomic.Bool
}

func NewService(deps Dependencies) *Service {
	opts := deps.Options
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultQueryTimeout
	}
	return &Service{
		chat:    deps.Chat,
		querier: deps.Querier,
		servers: deps.Servers,
		opts:    opts,
	}
}

func (s *Service) Start(ctx context.Context) {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	slog.Info("Status service started", "interval", s.opts.Interval, "servers", len(s.servers))

	s.runLoop(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runLoop(ctx)
		}
	}
}

func (s *Service) runLoop(ctx context.Context) {
	if _, err := s.SyncAll(ctx); errors.Is(err, domain.ErrCycleInFlight) {
		slog.Debug("Status sync skipped, previous sync still running")
	}
}

// SyncAll queries every endpoint concurrently and renames the channels whose
// label changed. One endpoint failing never affects the others. Only one
// sync runs at a time; an overlapping call returns domain.ErrCycleInFlight.
func (s *Service) SyncAll(ctx context.Context) ([]domain.ServerStatus, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, domain.ErrCycleInFlight
	}
	defer s.inFlight.Store(false)

	statuses := make([]domain.ServerStatus, len(s.servers))

	var g errgroup.Group
	for i, ep := range s.servers {
		g.Go(func() error {
			statuses[i] = s.syncEndpoint(ctx, ep)
			return nil
		})
	}
	_ = g.Wait()

	return statuses, nil
}

func (s *Service) syncEndpoint(ctx context.Context, ep domain.ServerEndpoint) domain.ServerStatus {
	status := s.query(ctx, ep)
	label := Label(status)

	if err := s.applyLabel(ctx, ep.ChannelID, label); err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			metrics.ChannelRenames.WithLabelValues("rate_limited").Inc()
			slog.Debug("Channel rename deferred", "server", ep.DisplayName, "channel_id", ep.ChannelID, "label", label)
		} else {
			metrics.ChannelRenames.WithLabelValues("failure").Inc()
			slog.Warn("Failed to update channel label", "server", ep.DisplayName, "channel_id", ep.ChannelID, "error", err)
		}
	}
	return status
}

func (s *Service) query(ctx context.Context, ep domain.ServerEndpoint) domain.ServerStatus {
	ctx, cancel := context.WithTimeout(ctx, s.opts.QueryTimeout)
	defer cancel()

	res, err := s.querier.Query(ctx, ep)
	metrics.ServerQueries.WithLabelValues(ep.DisplayName, metrics.Status(err)).Inc()
	if err != nil {
		slog.Warn("Failed to query server", "server", ep.DisplayName, "host", ep.Host, "port", ep.Port, "error", err)
		return domain.ServerStatus{Endpoint: ep}
	}

	active := CountActive(res.Players, s.opts.ExcludedPlayerName)
	metrics.ServerActivePlayers.WithLabelValues(ep.DisplayName).Set(float64(active))
	return domain.ServerStatus{
		Endpoint: ep,
		Online:   true,
		Active:   active,
		Max:      res.MaxPlayers,
	}
}

// applyLabel renames the channel only when its current name differs.
func (s *Service) applyLabel(ctx context.Context, channelID, label string) error {
	ch, err := s.chat.ResolveChannel(ctx, channelID)
	if err != nil {
		return err
	}
	if ch.Name == label {
		metrics.ChannelRenames.WithLabelValues("unchanged").Inc()
		return nil
	}

	if err := s.chat.RenameChannel(ctx, channelID, label); err != nil {
		return err
	}
	metrics.ChannelRenames.WithLabelValues("success").Inc()
	slog.Info("Channel label updated", "channel_id", channelID, "from", ch.Name, "to", label)
	return nil
}
