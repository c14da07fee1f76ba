package telegram

import (
	"strings"

	tbapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kisxel/ChatHelpBot/internal/platform"
)

// Updates converts the raw tbapi update stream into platform updates.
// The returned channel closes when the source channel closes.
func Updates(src tbapi.UpdatesChannel) <-chan platform.Update {
	out := make(chan platform.Update, 100)
	go func() {
		defer close(out)
		for upd := range src {
			if converted, ok := convertUpdate(upd); ok {
				out <- converted
			}
		}
	}()
	return out
}

// UpdatesChan starts long polling against the Bot API.
func (c *Client) UpdatesChan() <-chan platform.Update {
	cfg := tbapi.NewUpdate(0)
	cfg.Timeout = 30
	return Updates(c.api.GetUpdatesChan(cfg))
}

// ListenForWebhook registers the webhook with Telegram and returns the update
// channel for the given local path. The caller owns the HTTP server.
func (c *Client) ListenForWebhook(publicURL, path string) (<-chan platform.Update, error) {
	wh, err := tbapi.NewWebhook(publicURL + path)
	if err != nil {
		return nil, err
	}
	if _, err := c.api.Request(wh); err != nil {
		return nil, err
	}
	return Updates(c.api.ListenForWebhook(path)), nil
}

// StopPolling stops the long-polling loop; the update channel drains and
// closes afterwards.
func (c *Client) StopPolling() {
	c.api.StopReceivingUpdates()
}

// DeleteWebhook removes the webhook registration, e.g. before switching to
// long polling.
func (c *Client) DeleteWebhook() error {
	_, err := c.api.Request(tbapi.DeleteWebhookConfig{})
	return err
}

func convertUpdate(upd tbapi.Update) (platform.Update, bool) {
	switch {
	case upd.Message != nil:
		return platform.Update{Message: convertMessage(upd.Message)}, true
	case upd.CallbackQuery != nil:
		cb := upd.CallbackQuery
		out := platform.Callback{
			ID:   cb.ID,
			Data: cb.Data,
			From: convertUser(cb.From),
		}
		if cb.Message != nil {
			out.ChatID = cb.Message.Chat.ID
			out.MessageID = cb.Message.MessageID
			out.MessageText = cb.Message.Text
		}
		return platform.Update{Callback: &out}, true
	}
	return platform.Update{}, false
}

func convertMessage(msg *tbapi.Message) *platform.Message {
	out := &platform.Message{
		ID:        msg.MessageID,
		ChatID:    msg.Chat.ID,
		ChatType:  platform.ChatType(msg.Chat.Type),
		ChatTitle: msg.Chat.Title,
		Text:      msg.Text,
		Caption:   msg.Caption,
	}
	if msg.From != nil {
		u := convertUser(msg.From)
		out.From = &u
	}
	if msg.SenderChat != nil {
		out.SenderChatID = msg.SenderChat.ID
	}
	if msg.ReplyToMessage != nil {
		out.ReplyTo = convertMessage(msg.ReplyToMessage)
	}
	for _, ent := range msg.Entities {
		if ent.Type == "text_mention" && ent.User != nil {
			out.Mentions = append(out.Mentions, convertUser(ent.User))
		}
	}
	return out
}

func convertUser(u *tbapi.User) platform.User {
	return platform.User{
		ID:       u.ID,
		Username: u.UserName,
		FullName: strings.TrimSpace(u.FirstName + " " + u.LastName),
		IsBot:    u.IsBot,
	}
}
