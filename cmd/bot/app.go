package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"automix-bot/internal/adapters/discord"
	"automix-bot/internal/adapters/discord/commands"
	"automix-bot/internal/adapters/feed"
	"automix-bot/internal/adapters/gamequery"
	"automix-bot/internal/adapters/render"
	"automix-bot/internal/adapters/storage/file"
	"automix-bot/internal/adapters/storage/git"
	"automix-bot/internal/adapters/storage/postgres"
	"automix-bot/internal/adapters/telemetry"
	"automix-bot/internal/config"
	"automix-bot/internal/core/domain"
	"automix-bot/internal/core/ports"
	"automix-bot/internal/core/services/identity"
	"automix-bot/internal/core/services/leaderboard"
	"automix-bot/internal/core/services/status"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var version = "dev"

type closer interface {
	Close()
}

type App struct {
	config        *config.Config
	discord       *discordgo.Session
	selfID        string
	commands      []*discordgo.ApplicationCommand
	renderer      *render.Renderer
	identityDB    closer
	remote        ports.RemoteSync
	metricsServer *http.Server
	stopTracing   func()

	leaderboardService *leaderboard.Service
	statusService      *status.Service

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	stopTracing, err := telemetry.InitTracing(cfg.OTLPEndpoint, version)
	if err != nil {
		slog.Warn("Failed to initialize tracing, continuing without it", "error", err)
		stopTracing = func() {}
	}

	session, err := discord.NewSession(cfg)
	if err != nil {
		stopTracing()
		return nil, err
	}

	app := &App{
		config:      cfg,
		discord:     session,
		stopTracing: stopTracing,
	}

	if cfg.LeaderboardEnabled() {
		if app.renderer, err = render.NewRenderer(); err != nil {
			stopTracing()
			return nil, fmt.Errorf("load leaderboard fonts: %w", err)
		}
		app.remote = app.remoteSync(ctx)
	}

	return app, nil
}

// remoteSync builds the configured identity replicas. An unreachable
// database is logged and skipped; the local file still works.
func (a *App) remoteSync(ctx context.Context) ports.RemoteSync {
	var targets []ports.RemoteSync

	if a.config.GitSync.Enabled() {
		targets = append(targets, git.NewSync(git.Options{
			Token:      a.config.GitSync.Token,
			Repository: a.config.GitSync.Repository,
			Branch:     a.config.GitSync.Branch,
			Author:     a.config.GitSync.Author,
			File:       a.config.MessageIDPath,
		}))
	}

	if a.config.IdentityDatabaseURL != "" {
		store, err := postgres.NewPostgresStore(ctx, a.config.IdentityDatabaseURL)
		if err != nil {
			slog.Error("Failed to connect to identity database", "error", err)
		} else {
			a.identityDB = store
			targets = append(targets, store)
		}
	}

	return identity.NewRemoteSync(targets...)
}

// wire builds the services once the chat platform is connected.
func (a *App) wire(chat ports.ChatPlatform) {
	cfg := a.config

	if cfg.LeaderboardEnabled() {
		store := identity.NewStore(file.NewIdentityFile(cfg.MessageIDPath), a.remote, cfg.RequestTimeout)
		reconciler := leaderboard.NewReconciler(leaderboard.Dependencies{
			Chat:     chat,
			Source:   feed.NewClient(cfg.LeaderboardURL, cfg.RequestTimeout),
			Renderer: a.renderer,
			Store:    store,
			Options: leaderboard.Options{
				ChannelID: cfg.LeaderboardChannelID,
				Title:     cfg.LeaderboardTitle,
				TopN:      cfg.LeaderboardTopN,
				Markers: domain.Markers{
					EmbedTitle:   cfg.LeaderboardTitle,
					LegacyPrefix: cfg.LeaderboardLegacyPrefix,
				},
				FileName: render.FileName,
			},
		})
		a.leaderboardService = leaderboard.NewService(reconciler, cfg.LeaderboardInterval)
	}

	if cfg.StatusEnabled() {
		a.statusService = status.NewService(status.Dependencies{
			Chat:    chat,
			Querier: gamequery.NewQuerier(cfg.QueryTimeout),
			Servers: cfg.Servers,
			Options: status.Options{
				ExcludedPlayerName: cfg.ExcludedPlayerName,
				QueryTimeout:       cfg.QueryTimeout,
				Interval:           cfg.StatusInterval,
			},
		})
	}
}

// connect opens the gateway session and wires the services. A failure here
// is fatal: without a session nothing can be posted or renamed.
func (a *App) connect() error {
	if err := a.discord.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	id, err := selfID(a.discord)
	if err != nil {
		return err
	}

	a.selfID = id
	a.wire(discord.NewAdapter(a.discord, id, a.config.RequestTimeout))
	slog.Info("Connected to Discord", "user_id", id, "guild_id", a.config.GuildID)
	return nil
}

func (a *App) Run() error {
	if err := a.connect(); err != nil {
		return err
	}

	if a.config.CommandsEnabled {
		a.registerCommands()
	}

	if a.config.MetricsEnabled {
		a.startMetricsServer()
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.start(ctx)

	slog.Info("AUTOMIX bot is online!")
	return nil
}

func (a *App) start(ctx context.Context) {
	if a.statusService != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.statusService.Start(ctx)
		}()
	}

	if a.leaderboardService != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.leaderboardService.Start(ctx)
		}()
	}
}

// commandRouter maps the admin refresh commands onto the wired services.
func (a *App) commandRouter() *commands.Router {
	handler := &commands.BotHandler{Timeout: commands.DefaultTimeout}
	if a.leaderboardService != nil {
		handler.Leaderboard = a.leaderboardService
	}
	if a.statusService != nil {
		handler.Status = a.statusService
	}

	router := commands.NewRouter()
	router.Register(commands.CommandLeaderboardRefresh, commands.WithAdmin(handler.RefreshLeaderboard))
	router.Register(commands.CommandStatusRefresh, commands.WithAdmin(handler.RefreshStatus))
	return router
}

func (a *App) registerCommands() {
	a.discord.AddHandler(commands.ReadyHandler)
	a.discord.AddHandler(a.commandRouter().HandleFunc())

	cmds := commands.GetApplicationCommands(a.leaderboardService != nil, a.statusService != nil)
	a.commands = commands.RegisterCommands(a.discord, cmds, a.selfID, a.config.GuildID)
}

// RunOnce connects, runs each configured task a single time and returns.
func (a *App) RunOnce(ctx context.Context) error {
	if err := a.connect(); err != nil {
		return err
	}
	return a.runTasksOnce(ctx)
}

func (a *App) runTasksOnce(ctx context.Context) error {
	var errs []error

	if a.statusService != nil {
		statuses, err := a.statusService.SyncAll(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("status sync: %w", err))
		}
		for _, s := range statuses {
			slog.Info("Server status", "server", s.Endpoint.DisplayName, "label", status.Label(s))
		}
	}

	if a.leaderboardService != nil {
		if err := a.leaderboardService.RunOnce(ctx); err != nil {
			errs = append(errs, fmt.Errorf("leaderboard cycle: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (a *App) startMetricsServer() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	a.metricsServer = &http.Server{
		Addr:              a.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Metrics server listening", "addr", a.config.MetricsAddr)
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	var errs []error

	if a.cancel != nil {
		a.cancel()
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		errs = append(errs, fmt.Errorf("wait for services: %w", ctx.Err()))
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown metrics server: %w", err))
		}
	}

	if a.discord != nil && len(a.commands) > 0 {
		commands.CleanupCommands(a.discord, a.commands, a.selfID, a.config.GuildID)
	}

	if a.discord != nil {
		if err := a.discord.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close discord session: %w", err))
		}
	}

	if a.renderer != nil {
		a.renderer.Close()
	}

	if a.identityDB != nil {
		a.identityDB.Close()
	}

	if a.stopTracing != nil {
		a.stopTracing()
	}

	return errors.Join(errs...)
}
