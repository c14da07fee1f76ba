// Package telegram adapts the Telegram Bot API to the platform.Client
// boundary.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tbapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kisxel/ChatHelpBot/internal/platform"
)

type Client struct {
	api *tbapi.BotAPI
}

func New(token string) (*Client, error) {
	api, err := tbapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	return &Client{api: api}, nil
}

func (c *Client) BotID() int64        { return c.api.Self.ID }
func (c *Client) BotUsername() string { return c.api.Self.UserName }

// The v5 client has no context support; ctx is accepted to keep the boundary
// honest and ignored here.

func (c *Client) GetChatMember(_ context.Context, chatID, userID int64) (platform.ChatMember, error) {
	member, err := c.api.GetChatMember(tbapi.GetChatMemberConfig{
		ChatConfigWithUser: tbapi.ChatConfigWithUser{ChatID: chatID, UserID: userID},
	})
	if err != nil {
		return platform.ChatMember{}, fmt.Errorf("getChatMember: %w", err)
	}
	return platform.ChatMember{
		Status:             platform.MemberStatus(member.Status),
		CanRestrictMembers: member.CanRestrictMembers,
		CanDeleteMessages:  member.CanDeleteMessages,
	}, nil
}

func (c *Client) GetChat(_ context.Context, chatID int64) (platform.ChatInfo, error) {
	chat, err := c.api.GetChat(tbapi.ChatInfoConfig{
		ChatConfig: tbapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return platform.ChatInfo{}, fmt.Errorf("getChat: %w", err)
	}
	return toChatInfo(chat), nil
}

func (c *Client) GetChatByUsername(_ context.Context, username string) (platform.ChatInfo, error) {
	if !strings.HasPrefix(username, "@") {
		username = "@" + username
	}
	chat, err := c.api.GetChat(tbapi.ChatInfoConfig{
		ChatConfig: tbapi.ChatConfig{SuperGroupUsername: username},
	})
	if err != nil {
		return platform.ChatInfo{}, fmt.Errorf("getChat %s: %w", username, err)
	}
	return toChatInfo(chat), nil
}

func (c *Client) GetChatMemberCount(_ context.Context, chatID int64) (int, error) {
	count, err := c.api.GetChatMembersCount(tbapi.ChatMemberCountConfig{
		ChatConfig: tbapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return 0, fmt.Errorf("getChatMemberCount: %w", err)
	}
	return count, nil
}

func (c *Client) SendMessage(_ context.Context, out platform.Outgoing) (int, error) {
	msg := tbapi.NewMessage(out.ChatID, out.Text)
	if !out.PlainText {
		msg.ParseMode = tbapi.ModeHTML
	}
	if out.ReplyTo != 0 {
		msg.ReplyToMessageID = out.ReplyTo
	}
	if len(out.Buttons) > 0 {
		msg.ReplyMarkup = toKeyboard(out.Buttons)
	}
	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("sendMessage: %w", err)
	}
	return sent.MessageID, nil
}

func (c *Client) EditMessageText(_ context.Context, chatID int64, messageID int, text string) error {
	edit := tbapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tbapi.ModeHTML
	if _, err := c.api.Request(edit); err != nil {
		return fmt.Errorf("editMessageText: %w", err)
	}
	return nil
}

func (c *Client) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	if _, err := c.api.Request(tbapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("deleteMessage: %w", err)
	}
	return nil
}

func (c *Client) ForwardMessage(_ context.Context, toChatID, fromChatID int64, messageID int) error {
	if _, err := c.api.Send(tbapi.NewForward(toChatID, fromChatID, messageID)); err != nil {
		return fmt.Errorf("forwardMessage: %w", err)
	}
	return nil
}

func (c *Client) RestrictChatMember(_ context.Context, chatID, userID int64, perms platform.Permissions, until time.Time) error {
	cfg := tbapi.RestrictChatMemberConfig{
		ChatMemberConfig: tbapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
		Permissions:      toChatPermissions(perms),
	}
	if !until.IsZero() {
		cfg.UntilDate = until.Unix()
	}
	if _, err := c.api.Request(cfg); err != nil {
		return fmt.Errorf("restrictChatMember: %w", err)
	}
	return nil
}

func (c *Client) BanChatMember(_ context.Context, chatID, userID int64, until time.Time) error {
	cfg := tbapi.BanChatMemberConfig{
		ChatMemberConfig: tbapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
	}
	if !until.IsZero() {
		cfg.UntilDate = until.Unix()
	}
	if _, err := c.api.Request(cfg); err != nil {
		return fmt.Errorf("banChatMember: %w", err)
	}
	return nil
}

func (c *Client) UnbanChatMember(_ context.Context, chatID, userID int64, onlyIfBanned bool) error {
	cfg := tbapi.UnbanChatMemberConfig{
		ChatMemberConfig: tbapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
		OnlyIfBanned:     onlyIfBanned,
	}
	if _, err := c.api.Request(cfg); err != nil {
		return fmt.Errorf("unbanChatMember: %w", err)
	}
	return nil
}

func (c *Client) SetChatPermissions(_ context.Context, chatID int64, perms platform.Permissions) error {
	cfg := tbapi.SetChatPermissionsConfig{
		ChatConfig:  tbapi.ChatConfig{ChatID: chatID},
		Permissions: toChatPermissions(perms),
	}
	if _, err := c.api.Request(cfg); err != nil {
		return fmt.Errorf("setChatPermissions: %w", err)
	}
	return nil
}

func (c *Client) AnswerCallback(_ context.Context, callbackID, text string, alert bool) error {
	cb := tbapi.NewCallback(callbackID, text)
	cb.ShowAlert = alert
	if _, err := c.api.Request(cb); err != nil {
		return fmt.Errorf("answerCallbackQuery: %w", err)
	}
	return nil
}

func (c *Client) LeaveChat(_ context.Context, chatID int64) error {
	if _, err := c.api.Request(tbapi.LeaveChatConfig{ChatID: chatID}); err != nil {
		return fmt.Errorf("leaveChat: %w", err)
	}
	return nil
}

func toChatInfo(chat tbapi.Chat) platform.ChatInfo {
	return platform.ChatInfo{
		ID:       chat.ID,
		Title:    chat.Title,
		Username: chat.UserName,
		FullName: strings.TrimSpace(chat.FirstName + " " + chat.LastName),
	}
}

func toChatPermissions(p platform.Permissions) *tbapi.ChatPermissions {
	return &tbapi.ChatPermissions{
		CanSendMessages:       p.CanSendMessages,
		CanSendMediaMessages:  p.CanSendMedia,
		CanSendPolls:          p.CanSendPolls,
		CanSendOtherMessages:  p.CanSendOther,
		CanAddWebPagePreviews: p.CanAddWebPagePreviews,
	}
}

func toKeyboard(rows [][]platform.Button) tbapi.InlineKeyboardMarkup {
	kb := make([][]tbapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		btns := make([]tbapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				btns = append(btns, tbapi.NewInlineKeyboardButtonURL(b.Label, b.URL))
			} else {
				btns = append(btns, tbapi.NewInlineKeyboardButtonData(b.Label, b.Data))
			}
		}
		kb = append(kb, btns)
	}
	return tbapi.InlineKeyboardMarkup{InlineKeyboard: kb}
}
