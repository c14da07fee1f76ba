package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kisxel/ChatHelpBot/internal/messages"
	"github.com/kisxel/ChatHelpBot/internal/platform"
	"github.com/kisxel/ChatHelpBot/internal/repository"
)

func activeChat() *repository.Chat {
	return &repository.Chat{
		ChatID:            -100500,
		IsActive:          true,
		ActivatedBy:       77,
		EnableReportCmds:  true,
		EnableRulesCmd:    true,
		EnableModerationCmds: true,
	}
}

func TestHandleReport_ForwardsToOwner(t *testing.T) {
	env := newTestEnv()
	env.chatRepo.chat = activeChat()

	reported := groupMessage(10, victim, "подозрительное сообщение", nil)
	msg := groupMessage(11, &platform.User{ID: 7, Username: "reporter"}, "!репорт реклама", reported)

	env.svc.HandleReport(context.Background(), msg, "реклама")

	require.Len(t, env.client.sent, 2, "owner notice plus confirmation reply")
	notice := env.client.sent[0]
	assert.Equal(t, int64(77), notice.ChatID)
	assert.Contains(t, notice.Text, "Новый репорт")
	assert.Contains(t, notice.Text, "реклама")

	assert.Contains(t, notice.Text, "подозрительное сообщение")

	require.Len(t, env.client.forwarded, 1)
	assert.Equal(t, int64(77), env.client.forwarded[0].toChatID)
	assert.Equal(t, 10, env.client.forwarded[0].messageID)

	assert.Equal(t, messages.MsgReportSent, env.client.sent[1].Text)
}

func TestHandleReport_WithoutReply(t *testing.T) {
	env := newTestEnv()
	env.chatRepo.chat = activeChat()

	msg := groupMessage(11, &platform.User{ID: 7, Username: "reporter"}, "!admin что-то не так", nil)
	env.svc.HandleReport(context.Background(), msg, "что-то не так")

	require.Len(t, env.client.sent, 2)
	assert.Contains(t, env.client.sent[0].Text, "Репорт без указания сообщения")
	assert.Empty(t, env.client.forwarded)
}

func TestHandleReport_InactiveChatIgnored(t *testing.T) {
	env := newTestEnv()
	chat := activeChat()
	chat.IsActive = false
	env.chatRepo.chat = chat

	msg := groupMessage(11, &platform.User{ID: 7}, "!репорт", nil)
	env.svc.HandleReport(context.Background(), msg, "")

	assert.Empty(t, env.client.sent)
}

func TestSendRules(t *testing.T) {
	env := newTestEnv()
	chat := activeChat()
	chat.ChatRules = "1. Не спамить.\n2. <b>Уважать</b> других."
	env.chatRepo.chat = chat

	msg := groupMessage(11, victim, "!правила", nil)
	env.svc.SendRules(context.Background(), msg)

	require.Len(t, env.client.sent, 1)
	assert.Contains(t, env.client.sent[0].Text, "Правила чата")
	// Owner-authored markup passes through untouched.
	assert.Contains(t, env.client.sent[0].Text, "<b>Уважать</b>")
}

func TestSendRules_Unset(t *testing.T) {
	env := newTestEnv()
	env.chatRepo.chat = activeChat()

	msg := groupMessage(11, victim, "!правила", nil)
	env.svc.SendRules(context.Background(), msg)

	require.Len(t, env.client.sent, 1)
	assert.Equal(t, messages.MsgRulesUnset, env.client.sent[0].Text)
	assert.Len(t, env.tempRepo.scheduled, 1)
}

func TestSendChatStats(t *testing.T) {
	env := newTestEnv()
	env.makeAdmin(admin.ID)
	env.stats.count = 1234
	env.client.memberCount = 56

	msg := groupMessage(11, admin, "/stats", nil)
	env.svc.SendChatStats(context.Background(), msg)

	require.Len(t, env.client.sent, 1)
	assert.Contains(t, env.client.sent[0].Text, "1234")
	assert.Contains(t, env.client.sent[0].Text, "56")
}

func TestSendBotStatus(t *testing.T) {
	env := newTestEnv()
	env.makeAdmin(admin.ID)
	env.chatRepo.chat = activeChat()
	env.client.chatInfo = platform.ChatInfo{ID: -100500, Title: "Тестовый чат"}

	msg := groupMessage(11, admin, "/check", nil)
	env.svc.SendBotStatus(context.Background(), msg)

	require.Len(t, env.client.sent, 1)
	report := env.client.sent[0].Text
	assert.Contains(t, report, "Проверка бота")
	assert.Contains(t, report, "Тестовый чат")
	assert.Contains(t, report, messages.MsgCheckActive)
	// The bot is a restricting and deleting admin in the test env.
	assert.Contains(t, report, "✅ Право ограничивать пользователей")
	assert.Contains(t, report, "✅ Право удалять сообщения")
}

func TestSendBotStatus_InactiveAndPowerless(t *testing.T) {
	env := newTestEnv()
	env.makeAdmin(admin.ID)
	// The bot is a plain member; the chat row has never been activated.
	env.client.members[env.client.botID] = platform.ChatMember{Status: platform.StatusMember}

	msg := groupMessage(11, admin, "/check", nil)
	env.svc.SendBotStatus(context.Background(), msg)

	require.Len(t, env.client.sent, 1)
	report := env.client.sent[0].Text
	assert.Contains(t, report, messages.MsgBotNotActivated)
	assert.Contains(t, report, "❌ Право ограничивать пользователей")
	assert.Contains(t, report, "❌ Право удалять сообщения")
}

func TestSendBotStatus_NonAdmin(t *testing.T) {
	env := newTestEnv()

	msg := groupMessage(11, victim, "/check", nil)
	env.svc.SendBotStatus(context.Background(), msg)

	require.Len(t, env.client.sent, 1)
	assert.Equal(t, messages.MsgNotAdmin, env.client.sent[0].Text)
}

func TestActivateChat(t *testing.T) {
	env := newTestEnv()
	env.makeAdmin(admin.ID)

	msg := groupMessage(11, admin, "/activate", nil)
	env.svc.ActivateChat(context.Background(), msg)

	require.Len(t, env.chatRepo.active, 1)
	assert.Equal(t, int64(-100500), env.chatRepo.active[0])
	require.Len(t, env.client.sent, 1)
	assert.Equal(t, messages.MsgChatActivated, env.client.sent[0].Text)
}

func TestActivateChat_NonAdmin(t *testing.T) {
	env := newTestEnv()

	msg := groupMessage(11, victim, "/activate", nil)
	env.svc.ActivateChat(context.Background(), msg)

	assert.Empty(t, env.chatRepo.active)
	require.Len(t, env.client.sent, 1)
	assert.Equal(t, messages.MsgNotAdmin, env.client.sent[0].Text)
}
