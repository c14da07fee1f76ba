package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kisxel/ChatHelpBot/internal/messages"
	"github.com/kisxel/ChatHelpBot/internal/platform"
)

// HandleChannelPost reacts to a post relayed from the chat's linked channel:
// it sends the configured auto-reply and, when close-on-post is enabled,
// revokes sending for the whole chat for the configured number of seconds.
func (s *ModerationService) HandleChannelPost(ctx context.Context, msg *platform.Message) {
	if msg.SenderChatID == 0 {
		return
	}
	chat, err := s.chatRepo.GetByLinkedChannel(msg.SenderChatID)
	if err != nil || chat == nil || chat.ChatID != msg.ChatID {
		return
	}
	if !chat.IsActive || !chat.EnableChannelPost || chat.ChannelPostText == "" {
		return
	}

	buttons := s.channelButtons(chat.ChatID)
	closing := chat.CloseChatOnPost && chat.CloseChatDuration > 0

	text := chat.ChannelPostText
	if closing {
		text += fmt.Sprintf(messages.MsgChatClosedSuffix, chat.CloseChatDuration)
	}
	noticeID, err := s.client.SendMessage(ctx, platform.Outgoing{
		ChatID:  msg.ChatID,
		Text:    text,
		ReplyTo: msg.ID,
		Buttons: buttons,
	})
	if err != nil {
		s.logger.Warn("Failed to send channel auto-reply", "chat_id", msg.ChatID, "error", err)
		return
	}
	if !closing {
		return
	}

	if err := s.client.SetChatPermissions(ctx, chat.ChatID, platform.ClosedPermissions()); err != nil {
		s.logger.Warn("Failed to close chat", "chat_id", chat.ChatID, "error", err)
		return
	}
	window := time.Duration(chat.CloseChatDuration) * time.Second
	deadline := time.Now().Add(window)
	if err := s.chatRepo.SetClosed(chat.ChatID, true, deadline); err != nil {
		s.logger.Error("Failed to persist closed flag", "chat_id", chat.ChatID, "error", err)
	}
	s.logger.Info("Chat closed after channel post",
		"chat_id", chat.ChatID, "seconds", chat.CloseChatDuration)

	s.scheduleReopen(chat.ChatID, noticeID, chat.ChannelPostText, window)
}

// scheduleReopen restores permissions after the close window. It re-reads
// the persisted state first: if the chat was reopened in the meantime, or a
// later post extended the close deadline past this timer, the latest state
// wins and this timer does nothing.
func (s *ModerationService) scheduleReopen(chatID int64, noticeID int, noticeText string, after time.Duration) {
	time.AfterFunc(after, func() {
		ctx := context.Background()

		chat, err := s.chatRepo.Get(chatID)
		if err != nil || !chat.IsClosed || time.Now().Before(chat.ClosedUntil) {
			return
		}
		if err := s.client.SetChatPermissions(ctx, chatID, platform.DefaultPermissions()); err != nil {
			s.logger.Warn("Failed to reopen chat", "chat_id", chatID, "error", err)
			return
		}
		if err := s.chatRepo.SetClosed(chatID, false, time.Time{}); err != nil {
			s.logger.Error("Failed to persist reopened flag", "chat_id", chatID, "error", err)
		}
		if noticeID != 0 {
			if err := s.client.EditMessageText(ctx, chatID, noticeID, noticeText); err != nil {
				s.logger.Debug("Failed to edit close notice", "chat_id", chatID, "error", err)
			}
		}
		s.logger.Info("Chat reopened", "chat_id", chatID)
	})
}

func (s *ModerationService) channelButtons(chatID int64) [][]platform.Button {
	stored, err := s.chatRepo.GetButtons(chatID)
	if err != nil || len(stored) == 0 {
		return nil
	}
	rows := make([][]platform.Button, 0, len(stored))
	for _, b := range stored {
		rows = append(rows, []platform.Button{{Label: b.Label, URL: b.URL}})
	}
	return rows
}
