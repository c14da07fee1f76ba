package handler

import (
	"context"
	"time"

	"github.com/kisxel/ChatHelpBot/internal/metrics"
	"github.com/kisxel/ChatHelpBot/internal/platform"
)

func (h *Handler) handleCallback(ctx context.Context, cb *platform.Callback) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpdateProcessing("callback", time.Since(start).Seconds(), nil)
	}()

	ctx, span := h.tracer.Start(ctx, "handleCallback")
	defer span.End()

	h.logger.Debug("Dispatching callback",
		"chat_id", cb.ChatID, "user_id", cb.From.ID, "data", cb.Data)
	h.svc.HandleCallback(ctx, cb)
}
