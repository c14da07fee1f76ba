package webhook

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kisxel/ChatHelpBot/internal/platform"
	"github.com/kisxel/ChatHelpBot/internal/platform/telegram"
)

type Server struct {
	logger *slog.Logger
	client *telegram.Client
	host   string
	port   string
}

func NewServer(logger *slog.Logger, client *telegram.Client, host, port string) *Server {
	return &Server{
		logger: logger,
		client: client,
		host:   host,
		port:   port,
	}
}

func (s *Server) Start(ctx context.Context) (<-chan platform.Update, func() error, error) {
	updates, err := s.client.ListenForWebhook(s.host, "/webhook")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register webhook: %w", err)
	}
	s.logger.Info("Registered webhook", "url", s.host+"/webhook")

	// The bot library installs its handler on the default mux.
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: http.DefaultServeMux,
	}

	go func() {
		s.logger.Info("Webhook server listening", "port", s.port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Webhook server failed", "error", err)
		}
	}()

	cleanup := func() error {
		if err := s.client.DeleteWebhook(); err != nil {
			s.logger.Warn("Failed to delete webhook", "error", err)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	}

	return updates, cleanup, nil
}
