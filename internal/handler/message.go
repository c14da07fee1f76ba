package handler

import (
	"context"
	"strings"
	"time"

	"github.com/kisxel/ChatHelpBot/internal/command"
	"github.com/kisxel/ChatHelpBot/internal/metrics"
	"github.com/kisxel/ChatHelpBot/internal/pipeline"
	"github.com/kisxel/ChatHelpBot/internal/platform"
)

func (h *Handler) handleMessage(ctx context.Context, msg *platform.Message) {
	start := time.Now()
	var err error
	defer func() {
		metrics.ObserveUpdateProcessing("message", time.Since(start).Seconds(), err)
	}()

	ctx, span := h.tracer.Start(ctx, "handleMessage")
	defer span.End()

	// Posts relayed on behalf of a chat have no regular sender and follow
	// the channel auto-reply path instead of the per-user chain.
	if msg.SenderChatID != 0 {
		h.svc.HandleChannelPost(ctx, msg)
		return
	}
	if msg.From == nil || msg.From.ID == h.botID {
		return
	}

	text := msg.EffectiveText()

	// Commands are intercepted before the filter chain; a command is never
	// itself subject to the filters. They are parsed in any chat type so the
	// executor can explain that moderation only works in groups.
	if action, argsText, ok := command.Parse(text, h.botUsername); ok {
		h.svc.ExecuteCommand(ctx, msg, action, command.ParseArgs(argsText, msg.ReplyTo != nil))
		return
	}
	if !msg.ChatType.IsGroup() {
		return
	}
	h.logger.Debug("Dispatching group message",
		"chat_id", msg.ChatID, "sender_id", msg.From.ID, "message_id", msg.ID)
	if comment, ok := command.ParseReport(text); ok {
		h.svc.HandleReport(ctx, msg, comment)
		return
	}
	if command.IsRules(text) {
		h.svc.SendRules(ctx, msg)
		return
	}
	switch h.slashCommand(text) {
	case "stats":
		h.svc.SendChatStats(ctx, msg)
		return
	case "check":
		h.svc.SendBotStatus(ctx, msg)
		return
	case "activate":
		h.svc.ActivateChat(ctx, msg)
		return
	case "deactivate":
		h.svc.DeactivateChat(ctx, msg)
		return
	}

	err = h.svc.ModerateMessage(ctx, pipeline.Payload{
		ChatID:    msg.ChatID,
		ChatTitle: msg.ChatTitle,
		MessageID: msg.ID,
		Sender:    *msg.From,
		Text:      text,
	})
	if err != nil {
		h.logger.Error("Failed to moderate message",
			"chat_id", msg.ChatID, "message_id", msg.ID, "error", err)
	}
}

// slashCommand extracts a bare slash-command name, honoring the /cmd@bot
// form and ignoring commands addressed to other bots.
func (h *Handler) slashCommand(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	name, _, _ := strings.Cut(text[1:], " ")
	name = strings.ToLower(name)
	if at := strings.IndexByte(name, '@'); at >= 0 {
		if !strings.EqualFold(name[at+1:], h.botUsername) {
			return ""
		}
		name = name[:at]
	}
	return name
}
