package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/kisxel/ChatHelpBot/internal/antispam"
	"github.com/kisxel/ChatHelpBot/internal/config"
	"github.com/kisxel/ChatHelpBot/internal/handler"
	"github.com/kisxel/ChatHelpBot/internal/metrics"
	"github.com/kisxel/ChatHelpBot/internal/platform"
	"github.com/kisxel/ChatHelpBot/internal/platform/telegram"
	"github.com/kisxel/ChatHelpBot/internal/repository"
	"github.com/kisxel/ChatHelpBot/internal/resolver"
	"github.com/kisxel/ChatHelpBot/internal/service"
	"github.com/kisxel/ChatHelpBot/internal/transport/polling"
	"github.com/kisxel/ChatHelpBot/internal/transport/webhook"
)

type App struct {
	cfg    *config.Config
	logger *slog.Logger
	client *telegram.Client
	tracer trace.Tracer
}

func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {

	client, err := telegram.New(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot client: %w", err)
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		client: client,
		tracer: otel.Tracer("chathelpbot"),
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a.logger.Info("Starting ChatHelpBot")
	a.logger.Info("Bot connected", "username", a.client.BotUsername(), "id", a.client.BotID())

	db, err := repository.NewPostgresDB(a.cfg.GetDSN())
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}

	chatRepo := repository.NewChatRepository(db, a.cfg.EnableCache)
	warnRepo := repository.NewWarnRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	filterRepo := repository.NewUserFilterRepository(db)
	wordRepo := repository.NewBannedWordRepository(db)
	tempMessageRepo := repository.NewTemporaryMessageRepository(db)

	cache := resolver.NewUserCache()
	tracker := antispam.NewTracker(a.cfg.SpamWindow, a.cfg.SpamThreshold, a.cfg.SpamMuteCooldown)

	svc := service.NewModerationService(
		a.logger, a.client,
		chatRepo, warnRepo, statsRepo, filterRepo, wordRepo, tempMessageRepo,
		cache, tracker,
	)
	svc.SetPunishments(a.cfg.MaxWarns, a.cfg.SpamMuteDuration)
	svc.StartCleanupTask(ctx)

	h := handler.NewHandler(a.logger, svc, a.client.BotID(), a.client.BotUsername())

	metricsSrv := metrics.NewServer(a.logger, a.cfg.MetricsAddr)
	go func() {
		if err := metricsSrv.Listen(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("Metrics server failed", "error", err)
		}
	}()

	var updates <-chan platform.Update

	if a.cfg.WebhookHost != "" {

		a.logger.Info("Starting in Webhook mode", "host", a.cfg.WebhookHost)
		srv := webhook.NewServer(a.logger, a.client, a.cfg.WebhookHost, a.cfg.Port)

		var cleanup func() error
		updates, cleanup, err = srv.Start(ctx)
		if err != nil {
			return fmt.Errorf("failed to start webhook server: %w", err)
		}
		if cleanup != nil {
			defer func() {
				if err := cleanup(); err != nil {
					a.logger.Error("Cleanup failed", "error", err)
				}
			}()
		}

	} else {

		a.logger.Info("Starting in Long Polling mode")
		poller := polling.NewPoller(a.logger, a.client)
		updates = poller.Start(ctx)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				go h.HandleUpdate(ctx, upd)
			}
		}
	}()

	<-ctx.Done()
	a.logger.Info("Shutting down...")

	return nil
}
