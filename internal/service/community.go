package service

import (
	"context"
	"fmt"
	"html"

	"github.com/kisxel/ChatHelpBot/internal/messages"
	"github.com/kisxel/ChatHelpBot/internal/platform"
)

// HandleReport forwards a report to the chat owner: the replied-to message
// when there is one, otherwise a free-text report.
func (s *ModerationService) HandleReport(ctx context.Context, msg *platform.Message, comment string) {
	if !msg.ChatType.IsGroup() || msg.From == nil {
		return
	}
	chat, err := s.chatRepo.Get(msg.ChatID)
	if err != nil || !chat.IsActive || !chat.EnableReportCmds || chat.ActivatedBy == 0 {
		return
	}

	title := msg.ChatTitle
	if title == "" {
		title = messages.MsgUnknownTitle
	}
	text := fmt.Sprintf(messages.MsgReportHeader, html.EscapeString(title), userRef(senderTarget(msg.From)))
	if comment != "" {
		text += fmt.Sprintf(messages.MsgReportComment, html.EscapeString(comment))
	}

	reported := msg.ReplyTo
	if reported != nil {
		if reported.From != nil {
			text += fmt.Sprintf(messages.MsgReportTarget, userRef(senderTarget(reported.From)))
		}
		if quoted := reported.EffectiveText(); quoted != "" {
			text += fmt.Sprintf(messages.MsgReportText, html.EscapeString(excerpt(quoted)))
		}
		text += messages.MsgReportForwarded
	} else {
		text += messages.MsgReportNoMessage
	}

	if _, err := s.client.SendMessage(ctx, platform.Outgoing{ChatID: chat.ActivatedBy, Text: text}); err != nil {
		s.logger.Warn("Failed to deliver report", "owner_id", chat.ActivatedBy, "error", err)
		s.replyTemp(ctx, msg, messages.MsgReportFail)
		return
	}
	if reported != nil {
		if err := s.client.ForwardMessage(ctx, chat.ActivatedBy, msg.ChatID, reported.ID); err != nil {
			s.logger.Warn("Failed to forward reported message",
				"owner_id", chat.ActivatedBy, "message_id", reported.ID, "error", err)
		}
	}
	s.replyTemp(ctx, msg, messages.MsgReportSent)
}

// SendRules replies with the stored rules text. The text is owner-authored
// HTML and is passed through untouched.
func (s *ModerationService) SendRules(ctx context.Context, msg *platform.Message) {
	if !msg.ChatType.IsGroup() {
		return
	}
	chat, err := s.chatRepo.Get(msg.ChatID)
	if err != nil || !chat.IsActive || !chat.EnableRulesCmd {
		return
	}
	if chat.ChatRules == "" {
		s.replyTemp(ctx, msg, messages.MsgRulesUnset)
		return
	}
	s.reply(ctx, msg, fmt.Sprintf(messages.MsgRulesHeader, chat.ChatRules), nil)
}

// SendChatStats reports the 7-day message volume and the member count.
func (s *ModerationService) SendChatStats(ctx context.Context, msg *platform.Message) {
	if !msg.ChatType.IsGroup() || msg.From == nil {
		return
	}
	if !s.perms.IsUserAdmin(ctx, msg.ChatID, msg.From.ID) {
		s.replyTemp(ctx, msg, messages.MsgNotAdmin)
		return
	}
	count, err := s.statsRepo.CountSince(ctx, msg.ChatID, 7)
	if err != nil {
		s.logger.Error("Failed to count messages", "chat_id", msg.ChatID, "error", err)
		return
	}
	members, err := s.client.GetChatMemberCount(ctx, msg.ChatID)
	if err != nil {
		s.logger.Warn("Failed to get member count", "chat_id", msg.ChatID, "error", err)
	}
	s.reply(ctx, msg, fmt.Sprintf(messages.MsgStatsReport, count, members), nil)
}

// SendBotStatus reports the bot's standing in the chat: activation state and
// the rights automated moderation depends on.
func (s *ModerationService) SendBotStatus(ctx context.Context, msg *platform.Message) {
	if !msg.ChatType.IsGroup() || msg.From == nil {
		return
	}
	if !s.perms.IsUserAdmin(ctx, msg.ChatID, msg.From.ID) {
		s.replyTemp(ctx, msg, messages.MsgNotAdmin)
		return
	}
	chat, err := s.chatRepo.Get(msg.ChatID)
	if err != nil {
		s.logger.Error("Failed to load chat for status check", "chat_id", msg.ChatID, "error", err)
		return
	}

	text := messages.MsgCheckHeader
	if info, err := s.client.GetChat(ctx, msg.ChatID); err == nil && info.Title != "" {
		text += fmt.Sprintf(messages.MsgCheckChatLine, html.EscapeString(info.Title))
	}
	if chat.IsActive {
		text += messages.MsgCheckActive
	} else {
		text += "\n" + messages.MsgBotNotActivated
	}
	text += fmt.Sprintf(messages.MsgCheckRestrict, checkMark(s.perms.CanBotRestrict(ctx, msg.ChatID)))
	text += fmt.Sprintf(messages.MsgCheckDelete, checkMark(s.perms.CanBotDelete(ctx, msg.ChatID)))
	s.reply(ctx, msg, text, nil)
}

func checkMark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}

// ActivateChat marks the chat as managed and records the activating admin
// as its owner for notifications and reports.
func (s *ModerationService) ActivateChat(ctx context.Context, msg *platform.Message) {
	if !msg.ChatType.IsGroup() || msg.From == nil {
		return
	}
	if !s.perms.IsUserAdmin(ctx, msg.ChatID, msg.From.ID) {
		s.replyTemp(ctx, msg, messages.MsgNotAdmin)
		return
	}
	if err := s.chatRepo.Activate(msg.ChatID, msg.ChatTitle, msg.From.ID); err != nil {
		s.logger.Error("Failed to activate chat", "chat_id", msg.ChatID, "error", err)
		return
	}
	s.logger.Info("Chat activated", "chat_id", msg.ChatID, "by", msg.From.ID)
	s.reply(ctx, msg, messages.MsgChatActivated, nil)
}

func (s *ModerationService) DeactivateChat(ctx context.Context, msg *platform.Message) {
	if !msg.ChatType.IsGroup() || msg.From == nil {
		return
	}
	if !s.perms.IsUserAdmin(ctx, msg.ChatID, msg.From.ID) {
		s.replyTemp(ctx, msg, messages.MsgNotAdmin)
		return
	}
	if err := s.chatRepo.Deactivate(msg.ChatID); err != nil {
		s.logger.Error("Failed to deactivate chat", "chat_id", msg.ChatID, "error", err)
		return
	}
	s.logger.Info("Chat deactivated", "chat_id", msg.ChatID, "by", msg.From.ID)
	s.reply(ctx, msg, messages.MsgChatDeactivated, nil)

	// Opportunistic; the chat is already marked inactive either way.
	_ = s.client.LeaveChat(ctx, msg.ChatID)
}
