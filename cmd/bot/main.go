// Package main contains the entrypoint for the Telegram bot application.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/semaphore"

	"github.com/edfarias/picrelay/internal/bot"
	"github.com/edfarias/picrelay/internal/bot/handlers"
	"github.com/edfarias/picrelay/internal/bot/tasks"
	"github.com/edfarias/picrelay/internal/config"
	"github.com/edfarias/picrelay/internal/database"
	"github.com/edfarias/picrelay/internal/logger"
	"github.com/edfarias/picrelay/internal/telegram"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, db,
// bot, scheduler), handles graceful shutdown, and returns an exit code
// (0 for success, 1 for failure).
func run(ctx context.Context) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.Format == "json")
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	if err := os.MkdirAll(cfg.Image.TempDir, 0o755); err != nil {
		log.Error("Failed to create temp directory", "dir", cfg.Image.TempDir, "error", err)
		return 1
	}

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db) // Ensure DB is closed on function exit
	store := database.NewStore(db, log)

	if err := store.Ping(ctx); err != nil {
		log.Error("Database ping failed", "error", err)
		return 1
	}

	hDeps := handlers.HandlerDeps{
		Logger:     log,
		Config:     cfg,
		Store:      store,
		Transforms: semaphore.NewWeighted(cfg.Image.MaxConcurrent),
	}
	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewPhotoHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	sched := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	app := bot.NewBot(log, cfg, db, store, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx) // Run blocks until context is cancelled or an error occurs
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
