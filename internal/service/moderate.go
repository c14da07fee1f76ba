package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/kisxel/ChatHelpBot/internal/messages"
	"github.com/kisxel/ChatHelpBot/internal/metrics"
	"github.com/kisxel/ChatHelpBot/internal/pipeline"
	"github.com/kisxel/ChatHelpBot/internal/platform"
	"github.com/kisxel/ChatHelpBot/internal/timespec"
)

// ModerateMessage runs one group message through the filter chain and acts
// on the verdict: delete the message and, when a filter asks for it, notify
// the chat owner with an excerpt of what was removed.
func (s *ModerationService) ModerateMessage(ctx context.Context, payload pipeline.Payload) error {
	ctx, span := s.tracer.Start(ctx, "ModerateMessage")
	defer span.End()

	res, err := s.pipeline.Process(ctx, payload)
	if err != nil {
		return err
	}
	if res.Delete {
		if err := s.client.DeleteMessage(ctx, payload.ChatID, payload.MessageID); err != nil {
			s.logger.Warn("Failed to delete filtered message",
				"chat_id", payload.ChatID, "message_id", payload.MessageID, "error", err)
		} else {
			metrics.IncDeletedMessages(res.FilterName)
		}
		s.logger.Info("Message removed by filter",
			"chat_id", payload.ChatID, "user_id", payload.Sender.ID,
			"filter", res.FilterName, "reason", res.Reason)
	}
	if res.NotifyOwner {
		s.notifyOwner(ctx, payload)
	}
	return nil
}

func (s *ModerationService) notifyOwner(ctx context.Context, payload pipeline.Payload) {
	chat, err := s.chatRepo.Get(payload.ChatID)
	if err != nil || chat.ActivatedBy == 0 {
		return
	}
	title := payload.ChatTitle
	if title == "" {
		title = messages.MsgUnknownTitle
	}
	text := fmt.Sprintf(messages.MsgFilterNotice,
		html.EscapeString(title),
		userRef(senderTarget(&payload.Sender)),
		html.EscapeString(excerpt(payload.Text)))
	if _, err := s.client.SendMessage(ctx, platform.Outgoing{ChatID: chat.ActivatedBy, Text: text}); err != nil {
		s.logger.Warn("Failed to notify chat owner", "owner_id", chat.ActivatedBy, "error", err)
	}
}

// PunishSpam purges a spam burst and, unless the cooldown suppressed it,
// mutes the sender and announces the mute with a one-tap unmute button.
func (s *ModerationService) PunishSpam(ctx context.Context, chatID int64, user platform.User, messageIDs []int, mute bool) {
	metrics.SpamDetections.Inc()
	s.logger.Info("Spam burst detected",
		"chat_id", chatID, "user_id", user.ID, "messages", len(messageIDs), "mute", mute)

	for _, id := range messageIDs {
		if err := s.client.DeleteMessage(ctx, chatID, id); err != nil {
			s.logger.Debug("Failed to delete spam message",
				"chat_id", chatID, "message_id", id, "error", err)
			continue
		}
		metrics.IncDeletedMessages("spam")
	}
	if !mute {
		return
	}

	until := time.Now().Add(s.spamMute)
	if err := s.client.RestrictChatMember(ctx, chatID, user.ID, platform.MutedPermissions(), until); err != nil {
		s.logger.Warn("Failed to mute spammer", "chat_id", chatID, "user_id", user.ID, "error", err)
		return
	}
	metrics.IncModerationAction("spam_mute")

	target := senderTarget(&user)
	text := messages.ActionSpamMute +
		fmt.Sprintf(messages.MsgUserLine, userRef(target)) +
		fmt.Sprintf(messages.MsgDurationLine, timespec.Format(s.spamMute)) +
		fmt.Sprintf(messages.MsgReasonLine, "спам")
	if _, err := s.client.SendMessage(ctx, platform.Outgoing{
		ChatID:  chatID,
		Text:    text,
		Buttons: unmuteKeyboard(user.ID),
	}); err != nil {
		s.logger.Warn("Failed to announce spam mute", "chat_id", chatID, "error", err)
	}
}
