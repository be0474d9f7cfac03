// Package bot implements lifecycle management and component orchestration
// for MindfulBot: the Telegram listener, the HTTP API server and the scheduler.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/mindfulbot/internal/config"
	"github.com/edgard/mindfulbot/internal/database"
)

// Bot represents the main application and manages its components' lifecycle.
// The Telegram bot and HTTP server are optional; nil means disabled.
type Bot struct {
	logger     *slog.Logger
	cfg        *config.Config
	store      database.Store
	tgBot      *tgbot.Bot
	httpServer *http.Server
	scheduler  *Scheduler
}

// NewBot creates a new instance of the application with all required dependencies.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	store database.Store,
	tgBot *tgbot.Bot,
	httpServer *http.Server,
	scheduler *Scheduler,
) *Bot {
	return &Bot{
		logger:     logger.With("component", "bot_orchestrator"),
		cfg:        cfg,
		store:      store,
		tgBot:      tgBot,
		httpServer: httpServer,
		scheduler:  scheduler,
	}
}

// Run starts every enabled component and blocks until ctx is cancelled or a
// component fails. The scheduler stops last so pending replies still run.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	if err := b.store.Ping(ctx); err != nil {
		return fmt.Errorf("message store unavailable: %w", err)
	}

	if err := b.scheduler.Start(); err != nil {
		b.logger.Error("Failed to start scheduler", "error", err)
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer func() {
		b.logger.Info("Stopping scheduler...")
		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
	}()

	g, gCtx := errgroup.WithContext(ctx)

	if b.tgBot != nil {
		g.Go(func() error {
			b.logger.Info("Starting Telegram bot listener...")
			b.tgBot.Start(gCtx)
			b.logger.Info("Telegram bot listener stopped.")

			if gCtx.Err() == nil {
				b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")
				return fmt.Errorf("telegram listener stopped unexpectedly")
			}
			return nil
		})
	}

	if b.httpServer != nil {
		g.Go(func() error {
			b.logger.Info("Starting HTTP server...", "addr", b.httpServer.Addr)
			if err := b.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server failed: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gCtx.Done()
			b.logger.Info("Shutdown signal received, stopping HTTP server...")

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gCtx), b.cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := b.httpServer.Shutdown(shutdownCtx); err != nil {
				b.logger.Error("Error stopping HTTP server", "error", err)
			}
			return nil
		})
	}

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
