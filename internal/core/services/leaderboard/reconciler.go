package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"automix-bot/internal/adapters/metrics"
	"automix-bot/internal/adapters/telemetry"
	"automix-bot/internal/core/domain"
	"automix-bot/internal/core/ports"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultScanLimit = 50
	DefaultFileName  = "leaderboard.png"

	tracerName = "automix-bot/leaderboard"
)

type Options struct {
	ChannelID string
	Title     string
	TopN      int
	Markers   domain.Markers
	// ScanLimit bounds the fallback search of recent channel messages.
	ScanLimit int
	FileName  string
}

type Dependencies struct {
	Chat     ports.ChatPlatform
	Source   ports.LeaderboardSource
	Renderer ports.RankingRenderer
	Store    ports.IdentityStore
	Options  Options
}

// Reconciler keeps exactly one leaderboard post in a channel up to date.
type Reconciler struct {
	chat     ports.ChatPlatform
	source   ports.LeaderboardSource
	renderer ports.RankingRenderer
	store    ports.IdentityStore
	opts     Options

	inFlight atomic.Bool
	state    atomic.Int32
}

func NewReconciler(deps Dependencies) *Reconciler {
	opts := deps.Options
	if opts.ScanLimit <= 0 {
		opts.ScanLimit = DefaultScanLimit
	}
	if opts.FileName == "" {
		opts.FileName = DefaultFileName
	}
	if opts.Markers.EmbedTitle == "" {
		opts.Markers.EmbedTitle = opts.Title
	}
	return &Reconciler{
		chat:     deps.Chat,
		source:   deps.Source,
		renderer: deps.Renderer,
		store:    deps.Store,
		opts:     opts,
	}
}

func (r *Reconciler) State() State {
	return State(r.state.Load())
}

// located is the outcome of LOCATING_MESSAGE. An empty id means send.
type located struct {
	id     string
	source string
}

// RunCycle performs one IDLE→…→IDLE pass. Any failure aborts the cycle
// without retry; the identity is only written after a successful upsert.
func (r *Reconciler) RunCycle(ctx context.Context) (err error) {
	if !r.inFlight.CompareAndSwap(false, true) {
		metrics.LeaderboardCycles.WithLabelValues("in_flight").Inc()
		return domain.ErrCycleInFlight
	}
	defer r.inFlight.Store(false)
	defer r.state.Store(int32(StateIdle))

	cycleID := uuid.NewString()
	logger := slog.With("cycle_id", cycleID, "channel_id", r.opts.ChannelID)

	ctx, span := telemetry.StartSpan(ctx, tracerName, "leaderboard.cycle",
		attribute.String("cycle_id", cycleID),
		attribute.String("channel_id", r.opts.ChannelID),
	)
	defer func() {
		telemetry.EndSpan(span, err)
		outcome := "success"
		if err != nil {
			outcome = "failure"
			logger.Warn("Leaderboard cycle aborted", "state", r.State().String(), "error", err)
		}
		metrics.LeaderboardCycles.WithLabelValues(outcome).Inc()
	}()

	stored, _ := r.store.Load(ctx)

	done := r.enter(StateResolvingChannel)
	_, err = r.chat.ResolveChannel(ctx, r.opts.ChannelID)
	done()
	if err != nil {
		return fmt.Errorf("resolve channel: %w", err)
	}

	done = r.enter(StateFetching)
	snapshot, err := r.source.Fetch(ctx)
	done()
	if err != nil {
		return fmt.Errorf("fetch leaderboard: %w", err)
	}

	done = r.enter(StateRendering)
	image, err := r.renderer.Render(*snapshot, r.opts.Title, r.opts.TopN)
	done()
	if err != nil {
		return fmt.Errorf("render leaderboard: %w", err)
	}

	done = r.enter(StateLocatingMessage)
	target, err := r.locate(ctx, logger, stored)
	done()
	if err != nil {
		return fmt.Errorf("locate leaderboard message: %w", err)
	}
	metrics.LeaderboardLocate.WithLabelValues(target.source).Inc()

	post := domain.LeaderboardPost{
		Title:      r.opts.Title,
		LastUpdate: snapshot.LastUpdate,
		Image:      image,
		FileName:   r.opts.FileName,
	}

	done = r.enter(StateUpserting)
	id, action, err := r.upsert(ctx, target, post)
	done()
	metrics.LeaderboardUpserts.WithLabelValues(action, metrics.Status(err)).Inc()
	if err != nil {
		return fmt.Errorf("%s leaderboard message: %w", action, err)
	}

	done = r.enter(StatePersisting)
	identity := domain.MessageIdentity{ID: id}
	if err := r.store.Save(ctx, identity); err != nil {
		logger.Warn("Failed to persist leaderboard message id", "message_id", id, "error", err)
	}
	r.store.TrySyncRemote(ctx, identity)
	done()

	logger.Info("Leaderboard updated",
		"message_id", id,
		"action", action,
		"located_by", target.source,
		"rows", len(snapshot.Top(r.opts.TopN)),
	)
	return nil
}

// locate finds the canonical message: the stored id first, then the first
// recent message carrying a known marker. stored may be nil.
func (r *Reconciler) locate(ctx context.Context, logger *slog.Logger, stored *domain.MessageIdentity) (located, error) {
	if stored != nil {
		msg, err := r.chat.FetchMessage(ctx, r.opts.ChannelID, stored.ID)
		if err == nil {
			return located{id: msg.ID, source: "stored"}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Failed to fetch stored leaderboard message, searching channel", "message_id", stored.ID, "error", err)
		}
	}

	recent, err := r.chat.RecentMessages(ctx, r.opts.ChannelID, r.opts.ScanLimit)
	if err != nil {
		// Sending without a completed search could duplicate the post.
		return located{}, err
	}

	selfID := r.chat.SelfID()
	for _, msg := range recent {
		switch r.opts.Markers.Classify(msg, selfID) {
		case domain.MarkerCurrentEmbed:
			return located{id: msg.ID, source: "embed"}, nil
		case domain.MarkerLegacyText:
			logger.Info("Migrating legacy leaderboard message", "message_id", msg.ID)
			return located{id: msg.ID, source: "legacy"}, nil
		}
	}

	return located{source: "none"}, nil
}

func (r *Reconciler) upsert(ctx context.Context, target located, post domain.LeaderboardPost) (id, action string, err error) {
	if target.id != "" {
		id, err = r.chat.EditLeaderboard(ctx, r.opts.ChannelID, target.id, post)
		return id, "edit", err
	}
	id, err = r.chat.SendLeaderboard(ctx, r.opts.ChannelID, post)
	return id, "send", err
}

// enter moves to s and returns a func that records the time spent there.
func (r *Reconciler) enter(s State) func() {
	r.state.Store(int32(s))
	start := time.Now()
	return func() {
		metrics.LeaderboardStageDuration.WithLabelValues(s.String()).Observe(time.Since(start).Seconds())
	}
}
