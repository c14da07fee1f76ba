package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/kisxel/ChatHelpBot/internal/messages"
	"github.com/kisxel/ChatHelpBot/internal/metrics"
	"github.com/kisxel/ChatHelpBot/internal/platform"
)

// HandleCallback dispatches button presses from moderation reports. Only
// chat admins may use the one-tap reversal buttons.
func (s *ModerationService) HandleCallback(ctx context.Context, cb *platform.Callback) {
	ctx, span := s.tracer.Start(ctx, "HandleCallback")
	defer span.End()

	switch {
	case strings.HasPrefix(cb.Data, "unban:"):
		s.handleReversal(ctx, cb, strings.TrimPrefix(cb.Data, "unban:"), true)
	case strings.HasPrefix(cb.Data, "unmute:"):
		s.handleReversal(ctx, cb, strings.TrimPrefix(cb.Data, "unmute:"), false)
	default:
		s.answer(ctx, cb.ID, messages.MsgCallbackFail, true)
	}
}

func (s *ModerationService) handleReversal(ctx context.Context, cb *platform.Callback, idArg string, unban bool) {
	userID, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil || userID == 0 {
		s.answer(ctx, cb.ID, messages.MsgCallbackFail, true)
		return
	}
	if !s.perms.IsUserAdmin(ctx, cb.ChatID, cb.From.ID) {
		s.answer(ctx, cb.ID, messages.MsgAdminsOnly, true)
		return
	}

	if unban {
		err = s.client.UnbanChatMember(ctx, cb.ChatID, userID, true)
	} else {
		err = s.client.RestrictChatMember(ctx, cb.ChatID, userID, platform.DefaultPermissions(), time.Time{})
	}
	if err != nil {
		s.logger.Warn("Reversal button failed",
			"chat_id", cb.ChatID, "user_id", userID, "unban", unban, "error", err)
		s.answer(ctx, cb.ID, messages.MsgCallbackFail, true)
		return
	}

	ack := messages.MsgUnmuted
	suffix := messages.MsgUnmutedSuffix
	if unban {
		ack = messages.MsgUnbanned
		suffix = messages.MsgUnbannedSuffix
		metrics.IncModerationAction("unban")
	} else {
		metrics.IncModerationAction("unmute")
	}

	if cb.MessageID != 0 && !strings.HasSuffix(cb.MessageText, suffix) {
		if err := s.client.EditMessageText(ctx, cb.ChatID, cb.MessageID, cb.MessageText+suffix); err != nil {
			s.logger.Debug("Failed to edit report after reversal",
				"chat_id", cb.ChatID, "message_id", cb.MessageID, "error", err)
		}
	}
	s.answer(ctx, cb.ID, ack, false)
}

func (s *ModerationService) answer(ctx context.Context, callbackID, text string, alert bool) {
	if err := s.client.AnswerCallback(ctx, callbackID, text, alert); err != nil {
		s.logger.Debug("Failed to answer callback", "callback_id", callbackID, "error", err)
	}
}
