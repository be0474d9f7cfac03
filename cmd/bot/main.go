// Package main contains the entrypoint for the MindfulBot application.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/joho/godotenv"

	"github.com/edgard/mindfulbot/internal/analysis"
	"github.com/edgard/mindfulbot/internal/bot"
	"github.com/edgard/mindfulbot/internal/bot/handlers"
	"github.com/edgard/mindfulbot/internal/bot/tasks"
	"github.com/edgard/mindfulbot/internal/chat"
	"github.com/edgard/mindfulbot/internal/config"
	"github.com/edgard/mindfulbot/internal/database"
	"github.com/edgard/mindfulbot/internal/httpapi"
	"github.com/edgard/mindfulbot/internal/keywords"
	"github.com/edgard/mindfulbot/internal/logger"
	"github.com/edgard/mindfulbot/internal/report"
	"github.com/edgard/mindfulbot/internal/response"
	"github.com/edgard/mindfulbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, store,
// chat pipeline, transports, scheduler), handles graceful shutdown, and returns
// an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	store, closeStore, err := openStore(cfg.Database, log)
	if err != nil {
		log.Error("Failed to open message store", "driver", cfg.Database.Driver, "error", err)
		return 1
	}
	defer closeStore()

	tables, err := keywords.Load(cfg.Analysis.TablesPath)
	if err != nil {
		log.Error("Failed to load keyword tables", "path", cfg.Analysis.TablesPath, "error", err)
		return 1
	}

	generator := response.NewGenerator(tables, nil)
	if cfg.Analysis.Seed != 0 {
		generator = response.NewSeededGenerator(tables, cfg.Analysis.Seed)
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tasks.TaskDeps{Logger: log, Store: store}))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	chatSvc := chat.NewService(store, analysis.NewAnalyzer(tables), generator, sched, chat.Config{
		MinUserMessages: cfg.Analysis.MinUserMessages,
		ReplyDelay:      cfg.Analysis.ReplyDelay,
		MaxLength:       cfg.Messages.MaxLength,
	}, log)
	reports := report.NewAggregator(store, nil, log)

	var tg *tgbot.Bot
	if cfg.Telegram.Enabled {
		tg, err = newTelegramBot(ctx, cfg, log, handlers.HandlerDeps{
			Logger:  log,
			Config:  cfg,
			Chat:    chatSvc,
			Reports: reports,
			Tables:  tables,
		})
		if err != nil {
			log.Error("Failed to set up Telegram bot", "error", err)
			return 1
		}
	}

	var httpServer *http.Server
	if cfg.HTTP.Enabled {
		router := httpapi.NewRouter(httpapi.Deps{
			Logger:       log,
			Store:        store,
			Chat:         chatSvc,
			Reports:      reports,
			Tables:       tables,
			ReplyTimeout: cfg.HTTP.ReplyTimeout,
		})
		httpServer = httpapi.NewServer(cfg.HTTP.Addr, cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout, router)
	}

	app := bot.NewBot(log, cfg, store, tg, httpServer, sched)

	log.Info("Starting bot...", "telegram", cfg.Telegram.Enabled, "http", cfg.HTTP.Enabled)
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}

// openStore returns the configured message store and a function releasing it.
func openStore(cfg config.DatabaseConfig, log *slog.Logger) (database.Store, func(), error) {
	if cfg.Driver == "memory" {
		log.Warn("Using in-memory message store; history is lost on restart")
		return database.NewMemoryStore(log), func() {}, nil
	}

	db, err := database.NewDB(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	return database.NewStore(db, log), func() { database.CloseDB(db) }, nil
}

func newTelegramBot(ctx context.Context, cfg *config.Config, log *slog.Logger, hDeps handlers.HandlerDeps) (*tgbot.Bot, error) {
	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.DefaultHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		return nil, err
	}

	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		return nil, err
	}
	if err := telegram.PublishCommands(ctx, tg, log, cmdHandlers); err != nil {
		log.Warn("Continuing without command menu", "error", err)
	}
	return tg, nil
}
