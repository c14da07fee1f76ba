package service

import (
	"context"
	"time"

	"github.com/kisxel/ChatHelpBot/internal/metrics"
)

// StartCleanupTask deletes expired temporary messages in batches until the
// context is cancelled.
func (s *ModerationService) StartCleanupTask(ctx context.Context) {
	ticker := time.NewTicker(2 * time.Second)

	cleanup := func() {
		expired, err := s.tempMessageRepo.GetExpired(50)
		if err != nil {
			s.logger.Error("Failed to get expired messages", "error", err)
			return
		}
		if len(expired) == 0 {
			return
		}
		s.logger.Debug("Found expired messages to delete", "count", len(expired))

		var toDeleteIDs []int64
		for _, msg := range expired {
			if err := s.client.DeleteMessage(ctx, msg.ChatID, msg.MessageID); err != nil {
				s.logger.Warn("Failed to delete expired message from chat (will delete from DB)",
					"msg_id", msg.MessageID, "chat_id", msg.ChatID, "error", err)
			} else {
				metrics.IncDeletedMessages("temp_expired")
			}
			toDeleteIDs = append(toDeleteIDs, msg.ID)
		}

		if len(toDeleteIDs) > 0 {
			if err := s.tempMessageRepo.Delete(toDeleteIDs); err != nil {
				s.logger.Error("Failed to delete messages from DB", "error", err)
			}
		}
	}

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cleanup()
			}
		}
	}()
}

// ScheduleDeletion marks a sent message for removal after the duration.
func (s *ModerationService) ScheduleDeletion(chatID int64, messageID int, duration time.Duration) {
	if err := s.tempMessageRepo.Add(chatID, messageID, duration); err != nil {
		s.logger.Error("Failed to schedule message deletion",
			"chat_id", chatID, "message_id", messageID, "error", err)
	}
}
