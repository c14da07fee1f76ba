package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kisxel/ChatHelpBot/internal/command"
	"github.com/kisxel/ChatHelpBot/internal/messages"
	"github.com/kisxel/ChatHelpBot/internal/metrics"
	"github.com/kisxel/ChatHelpBot/internal/platform"
	"github.com/kisxel/ChatHelpBot/internal/repository"
	"github.com/kisxel/ChatHelpBot/internal/resolver"
	"github.com/kisxel/ChatHelpBot/internal/timespec"
	"github.com/kisxel/ChatHelpBot/internal/utils"
)

var warnForms = [3]string{"варн", "варна", "варнов"}

// ExecuteCommand runs one moderation command end to end: authorize the
// caller, resolve and validate the target, then perform the action and
// report the outcome in the chat.
func (s *ModerationService) ExecuteCommand(ctx context.Context, msg *platform.Message, action command.Action, args command.Args) {
	ctx, span := s.tracer.Start(ctx, "ExecuteCommand")
	defer span.End()

	if msg.From == nil {
		return
	}
	if !msg.ChatType.IsGroup() {
		s.reply(ctx, msg, messages.MsgGroupOnly, nil)
		return
	}
	if chat, err := s.chatRepo.Get(msg.ChatID); err == nil && !chat.EnableModerationCmds {
		return
	}

	// Listing warns needs no privileges and defaults to the caller.
	if action == command.ActionWarns {
		s.showWarns(ctx, msg, args)
		return
	}

	if !s.perms.IsUserAdmin(ctx, msg.ChatID, msg.From.ID) {
		s.replyTemp(ctx, msg, messages.MsgNotAdmin)
		return
	}
	if denied := s.checkBotCapability(ctx, msg.ChatID, action); denied != "" {
		s.replyTemp(ctx, msg, denied)
		return
	}

	target := s.targets.Resolve(ctx, msg, args.TargetArg)
	if !target.Resolved() {
		if action == command.ActionWarn {
			s.replyTemp(ctx, msg, messages.MsgTargetHintWarn)
		} else {
			s.replyTemp(ctx, msg, messages.MsgTargetHint)
		}
		return
	}
	if rejected := s.checkTarget(ctx, msg, action, target); rejected != "" {
		s.replyTemp(ctx, msg, rejected)
		return
	}

	switch action {
	case command.ActionBan:
		s.execBan(ctx, msg, target, args)
	case command.ActionUnban:
		s.execUnban(ctx, msg, target)
	case command.ActionMute:
		s.execMute(ctx, msg, target, args)
	case command.ActionUnmute:
		s.execUnmute(ctx, msg, target)
	case command.ActionKick:
		s.execKick(ctx, msg, target, args)
	case command.ActionWarn:
		s.execWarn(ctx, msg, target, args)
	case command.ActionUnwarn:
		s.execUnwarn(ctx, msg, target)
	}
}

// checkBotCapability verifies the bot itself can carry the action out.
func (s *ModerationService) checkBotCapability(ctx context.Context, chatID int64, action command.Action) string {
	if s.perms.CanBotRestrict(ctx, chatID) {
		return ""
	}
	switch action {
	case command.ActionBan, command.ActionUnban, command.ActionKick:
		return messages.MsgBotCantBan
	case command.ActionMute, command.ActionUnmute:
		return messages.MsgBotCantMute
	default:
		return messages.MsgBotCantMod
	}
}

// checkTarget rejects self, the bot and chat admins. Username-only targets
// skip the checks; they carry no id to compare.
func (s *ModerationService) checkTarget(ctx context.Context, msg *platform.Message, action command.Action, target resolver.Target) string {
	if target.UserID == 0 {
		return ""
	}
	verb := action.Verb()
	if target.UserID == msg.From.ID {
		return fmt.Sprintf(messages.MsgCannotSelf, verb)
	}
	if target.UserID == s.client.BotID() {
		return fmt.Sprintf(messages.MsgCannotBot, verb)
	}
	switch action {
	case command.ActionBan, command.ActionMute, command.ActionKick, command.ActionWarn:
		if s.perms.IsUserAdmin(ctx, msg.ChatID, target.UserID) {
			return fmt.Sprintf(messages.MsgCannotAdmin, verb)
		}
	}
	return ""
}

func (s *ModerationService) execBan(ctx context.Context, msg *platform.Message, target resolver.Target, args command.Args) {
	if target.UserID == 0 {
		s.replyTemp(ctx, msg, messages.MsgTargetHint)
		return
	}
	var until time.Time
	if args.HasDuration {
		until = time.Now().Add(args.Duration)
	}
	if err := s.client.BanChatMember(ctx, msg.ChatID, target.UserID, until); err != nil {
		s.logger.Warn("Ban failed", "chat_id", msg.ChatID, "user_id", target.UserID, "error", err)
		s.replyTemp(ctx, msg, fmt.Sprintf(messages.MsgBanFail, err))
		return
	}
	metrics.IncModerationAction("ban")

	text := messages.ActionBan + fmt.Sprintf(messages.MsgUserLine, userRef(target))
	if args.HasDuration {
		text += fmt.Sprintf(messages.MsgDurationLine, timespec.Format(args.Duration))
	}
	if args.Reason != "" {
		text += fmt.Sprintf(messages.MsgReasonLine, args.Reason)
	}
	s.reply(ctx, msg, text, unbanKeyboard(target.UserID))
}

func (s *ModerationService) execUnban(ctx context.Context, msg *platform.Message, target resolver.Target) {
	if target.UserID == 0 {
		s.replyTemp(ctx, msg, messages.MsgTargetHint)
		return
	}
	if err := s.client.UnbanChatMember(ctx, msg.ChatID, target.UserID, true); err != nil {
		s.logger.Warn("Unban failed", "chat_id", msg.ChatID, "user_id", target.UserID, "error", err)
		s.replyTemp(ctx, msg, fmt.Sprintf(messages.MsgUnbanFail, err))
		return
	}
	metrics.IncModerationAction("unban")
	s.reply(ctx, msg, fmt.Sprintf(messages.MsgUnbanDone, userRef(target)), nil)
}

func (s *ModerationService) execMute(ctx context.Context, msg *platform.Message, target resolver.Target, args command.Args) {
	if target.UserID == 0 {
		s.replyTemp(ctx, msg, messages.MsgTargetHint)
		return
	}
	if args.HasDuration && args.Duration < MinMuteDuration {
		s.replyTemp(ctx, msg, messages.MsgMuteTooShort)
		return
	}
	var until time.Time
	if args.HasDuration {
		until = time.Now().Add(args.Duration)
	}
	if err := s.client.RestrictChatMember(ctx, msg.ChatID, target.UserID, platform.MutedPermissions(), until); err != nil {
		s.logger.Warn("Mute failed", "chat_id", msg.ChatID, "user_id", target.UserID, "error", err)
		s.replyTemp(ctx, msg, fmt.Sprintf(messages.MsgMuteFail, err))
		return
	}
	metrics.IncModerationAction("mute")

	text := messages.ActionMute + fmt.Sprintf(messages.MsgUserLine, userRef(target))
	if args.HasDuration {
		text += fmt.Sprintf(messages.MsgDurationLine, timespec.Format(args.Duration))
	}
	if args.Reason != "" {
		text += fmt.Sprintf(messages.MsgReasonLine, args.Reason)
	}
	s.reply(ctx, msg, text, unmuteKeyboard(target.UserID))
}

func (s *ModerationService) execUnmute(ctx context.Context, msg *platform.Message, target resolver.Target) {
	if target.UserID == 0 {
		s.replyTemp(ctx, msg, messages.MsgTargetHint)
		return
	}
	if err := s.client.RestrictChatMember(ctx, msg.ChatID, target.UserID, platform.DefaultPermissions(), time.Time{}); err != nil {
		s.logger.Warn("Unmute failed", "chat_id", msg.ChatID, "user_id", target.UserID, "error", err)
		s.replyTemp(ctx, msg, fmt.Sprintf(messages.MsgUnmuteFail, err))
		return
	}
	metrics.IncModerationAction("unmute")
	s.reply(ctx, msg, fmt.Sprintf(messages.MsgUnmuteDone, userRef(target)), nil)
}

// execKick removes the user without a lasting ban: ban then immediately
// lift it, so the user may rejoin by invite.
func (s *ModerationService) execKick(ctx context.Context, msg *platform.Message, target resolver.Target, args command.Args) {
	if target.UserID == 0 {
		s.replyTemp(ctx, msg, messages.MsgTargetHint)
		return
	}
	if err := s.client.BanChatMember(ctx, msg.ChatID, target.UserID, time.Time{}); err != nil {
		s.logger.Warn("Kick failed", "chat_id", msg.ChatID, "user_id", target.UserID, "error", err)
		s.replyTemp(ctx, msg, fmt.Sprintf(messages.MsgKickFail, err))
		return
	}
	if err := s.client.UnbanChatMember(ctx, msg.ChatID, target.UserID, true); err != nil {
		s.logger.Warn("Kick unban failed", "chat_id", msg.ChatID, "user_id", target.UserID, "error", err)
	}
	metrics.IncModerationAction("kick")

	text := messages.ActionKick + fmt.Sprintf(messages.MsgUserLine, userRef(target))
	if args.Reason != "" {
		text += fmt.Sprintf(messages.MsgReasonLine, args.Reason)
	}
	s.reply(ctx, msg, text, nil)
}

func (s *ModerationService) execWarn(ctx context.Context, msg *platform.Message, target resolver.Target, args command.Args) {
	count, err := s.warnRepo.Add(repository.Warn{
		ChatID:   msg.ChatID,
		UserID:   target.UserID,
		Username: target.Username,
		Reason:   args.Reason,
		WarnedBy: msg.From.ID,
		WarnedAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("Failed to store warn", "chat_id", msg.ChatID, "user_id", target.UserID, "error", err)
		s.replyTemp(ctx, msg, messages.MsgWarnFail)
		return
	}
	metrics.WarnsIssued.Inc()

	// The limit bans only identifiable users; a username-only record keeps
	// accumulating until an id is learned.
	if count >= s.maxWarns && target.UserID != 0 {
		s.banByWarns(ctx, msg, target)
		return
	}

	text := fmt.Sprintf(messages.MsgWarnHeader, userRef(target), count, s.maxWarns)
	if args.Reason != "" {
		text += fmt.Sprintf(messages.MsgReasonLine, args.Reason)
	}
	if count == s.maxWarns-1 {
		text += messages.MsgWarnNextIsBan
	}
	s.reply(ctx, msg, text, nil)
}

func (s *ModerationService) banByWarns(ctx context.Context, msg *platform.Message, target resolver.Target) {
	if err := s.client.BanChatMember(ctx, msg.ChatID, target.UserID, time.Time{}); err != nil {
		s.logger.Warn("Warn-limit ban failed", "chat_id", msg.ChatID, "user_id", target.UserID, "error", err)
		s.replyTemp(ctx, msg, fmt.Sprintf(messages.MsgBanFail, err))
		return
	}
	if _, err := s.warnRepo.RemoveAll(msg.ChatID, target.UserID, target.Username); err != nil {
		s.logger.Error("Failed to clear warns after ban", "chat_id", msg.ChatID, "user_id", target.UserID, "error", err)
	}
	metrics.IncModerationAction("warn_ban")

	text := messages.ActionWarnBan +
		fmt.Sprintf(messages.MsgUserLine, userRef(target)) +
		messages.MsgWarnBanReason
	s.reply(ctx, msg, text, unbanKeyboard(target.UserID))
}

func (s *ModerationService) execUnwarn(ctx context.Context, msg *platform.Message, target resolver.Target) {
	removed, err := s.warnRepo.RemoveAll(msg.ChatID, target.UserID, target.Username)
	if err != nil {
		s.logger.Error("Failed to remove warns", "chat_id", msg.ChatID, "user_id", target.UserID, "error", err)
		s.replyTemp(ctx, msg, messages.MsgWarnFail)
		return
	}
	if removed == 0 {
		s.replyTemp(ctx, msg, fmt.Sprintf(messages.MsgNoWarns, userRef(target)))
		return
	}
	s.reply(ctx, msg, fmt.Sprintf(messages.MsgWarnsRemoved, userRef(target), utils.Plural(removed, warnForms)), nil)
}

func (s *ModerationService) showWarns(ctx context.Context, msg *platform.Message, args command.Args) {
	target := s.targets.Resolve(ctx, msg, args.TargetArg)
	if !target.Resolved() {
		target = senderTarget(msg.From)
	}
	count, err := s.warnRepo.Count(msg.ChatID, target.UserID, target.Username)
	if err != nil {
		s.logger.Error("Failed to count warns", "chat_id", msg.ChatID, "user_id", target.UserID, "error", err)
		return
	}
	if count == 0 {
		s.replyTemp(ctx, msg, fmt.Sprintf(messages.MsgNoWarns, userRef(target)))
		return
	}
	s.reply(ctx, msg, fmt.Sprintf(messages.MsgWarnsStatus, userRef(target), count, s.maxWarns), nil)
}

func unbanKeyboard(userID int64) [][]platform.Button {
	return [][]platform.Button{{{
		Label: messages.BtnUnban,
		Data:  fmt.Sprintf("unban:%d", userID),
	}}}
}

func unmuteKeyboard(userID int64) [][]platform.Button {
	return [][]platform.Button{{{
		Label: messages.BtnUnmute,
		Data:  fmt.Sprintf("unmute:%d", userID),
	}}}
}
