package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"automix-bot/internal/config"
)

func main() {
	InitLogger()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	code := run(ctx, app, cfg.RunOnce)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := app.Shutdown(shutdownCtx); err != nil {
		slog.Error("Application shutdown error", "error", err)
	}
	cancel()

	os.Exit(code)
}

func run(ctx context.Context, app *App, once bool) int {
	if once {
		if err := app.RunOnce(ctx); err != nil {
			slog.Error("Run-once failed", "error", err)
			return 1
		}
		return 0
	}

	if err := app.Run(); err != nil {
		slog.Error("Failed to start application", "error", err)
		return 1
	}

	WaitForShutdown()
	return 0
}
