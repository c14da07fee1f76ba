// Package handler routes inbound updates to the moderation service. It
// decides what kind of event arrived; every decision about what to do with
// it lives in the service.
package handler

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kisxel/ChatHelpBot/internal/platform"
	"github.com/kisxel/ChatHelpBot/internal/service"
)

type Handler struct {
	logger      *slog.Logger
	svc         service.Service
	botID       int64
	botUsername string
	tracer      trace.Tracer
}

func NewHandler(logger *slog.Logger, svc service.Service, botID int64, botUsername string) *Handler {
	return &Handler{
		logger:      logger,
		svc:         svc,
		botID:       botID,
		botUsername: botUsername,
		tracer:      otel.Tracer("handler"),
	}
}

// HandleUpdate dispatches one update. Each update runs in its own goroutine
// upstream, so this may block on platform and storage I/O.
func (h *Handler) HandleUpdate(ctx context.Context, upd platform.Update) {
	ctx, span := h.tracer.Start(ctx, "HandleUpdate")
	defer span.End()

	switch {
	case upd.Callback != nil:
		span.SetAttributes(attribute.String("update_type", "callback"))
		h.handleCallback(ctx, upd.Callback)
	case upd.Message != nil:
		span.SetAttributes(attribute.String("update_type", "message"))
		h.handleMessage(ctx, upd.Message)
	default:
		h.logger.Debug("Received empty update")
	}
}
