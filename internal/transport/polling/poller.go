package polling

import (
	"context"
	"log/slog"

	"github.com/kisxel/ChatHelpBot/internal/platform"
	"github.com/kisxel/ChatHelpBot/internal/platform/telegram"
)

type Poller struct {
	logger *slog.Logger
	client *telegram.Client
}

func NewPoller(logger *slog.Logger, client *telegram.Client) *Poller {
	return &Poller{
		logger: logger,
		client: client,
	}
}

func (p *Poller) Start(ctx context.Context) <-chan platform.Update {
	// A leftover webhook blocks getUpdates.
	if err := p.client.DeleteWebhook(); err != nil {
		p.logger.Warn("Failed to drop stale webhook", "error", err)
	}

	p.logger.Info("Starting Long Polling")
	updates := p.client.UpdatesChan()

	go func() {
		<-ctx.Done()
		p.client.StopPolling()
	}()

	return updates
}
