package filters

import (
	"context"
	"time"

	"github.com/kisxel/ChatHelpBot/internal/platform"
	"github.com/kisxel/ChatHelpBot/internal/repository"
)

type mockPerms struct {
	admin       bool
	canRestrict bool
}

func (m *mockPerms) IsUserAdmin(_ context.Context, _, _ int64) bool { return m.admin }
func (m *mockPerms) CanBotRestrict(_ context.Context, _ int64) bool { return m.canRestrict }

type punishment struct {
	chatID     int64
	user       platform.User
	messageIDs []int
	mute       bool
}

type mockEnforcer struct {
	punished []punishment
}

func (m *mockEnforcer) PunishSpam(_ context.Context, chatID int64, user platform.User, messageIDs []int, mute bool) {
	m.punished = append(m.punished, punishment{chatID: chatID, user: user, messageIDs: messageIDs, mute: mute})
}

type mockChatRepo struct {
	chat *repository.Chat
	err  error
}

func (m *mockChatRepo) Get(chatID int64) (*repository.Chat, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.chat != nil {
		return m.chat, nil
	}
	return &repository.Chat{ChatID: chatID}, nil
}
func (m *mockChatRepo) GetByLinkedChannel(_ int64) (*repository.Chat, error) { return m.chat, m.err }
func (m *mockChatRepo) Save(chat *repository.Chat) error                     { m.chat = chat; return m.err }
func (m *mockChatRepo) Activate(_ int64, _ string, _ int64) error            { return m.err }
func (m *mockChatRepo) Deactivate(_ int64) error                             { return m.err }
func (m *mockChatRepo) SetClosed(_ int64, _ bool, _ time.Time) error         { return m.err }
func (m *mockChatRepo) GetButtons(_ int64) ([]repository.ChannelButton, error) {
	return nil, m.err
}

type mockWordRepo struct {
	words []string
	err   error
}

func (m *mockWordRepo) List() ([]string, error) { return m.words, m.err }
func (m *mockWordRepo) Add(_ string) error      { return m.err }
func (m *mockWordRepo) Remove(_ string) error   { return m.err }

type mockFilterRepo struct {
	rules []repository.UserFilter
	err   error
}

func (m *mockFilterRepo) ActiveForUser(_, _ int64) ([]repository.UserFilter, error) {
	return m.rules, m.err
}
func (m *mockFilterRepo) Save(_ *repository.UserFilter) error { return m.err }
func (m *mockFilterRepo) Delete(_ uint) error                 { return m.err }

type mockStatsRepo struct {
	increments []int64
	err        error
}

func (m *mockStatsRepo) IncrementMessageCount(_ context.Context, chatID int64) error {
	m.increments = append(m.increments, chatID)
	return m.err
}
func (m *mockStatsRepo) CountSince(_ context.Context, _ int64, _ int) (int64, error) {
	return 0, m.err
}
