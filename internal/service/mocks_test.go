package service

import (
	"context"
	"sync"
	"time"

	"github.com/kisxel/ChatHelpBot/internal/platform"
	"github.com/kisxel/ChatHelpBot/internal/repository"
)

type restrictCall struct {
	chatID int64
	userID int64
	perms  platform.Permissions
	until  time.Time
}

type banCall struct {
	chatID int64
	userID int64
	until  time.Time
}

type unbanCall struct {
	chatID       int64
	userID       int64
	onlyIfBanned bool
}

type deleteCall struct {
	chatID    int64
	messageID int
}

type editCall struct {
	chatID    int64
	messageID int
	text      string
}

type answerCall struct {
	callbackID string
	text       string
	alert      bool
}

type forwardCall struct {
	toChatID   int64
	fromChatID int64
	messageID  int
}

// mockClient implements platform.Client for tests. Member statuses are keyed
// by user id; everything else records calls and returns the configured
// errors. The mutex covers the recorded slices, which timer goroutines may
// append to.
type mockClient struct {
	mu          sync.Mutex
	botID       int64
	botUsername string

	members   map[int64]platform.ChatMember
	memberErr error

	sent       []platform.Outgoing
	nextMsgID  int
	sendErr    error
	edited     []editCall
	editErr    error
	deleted    []deleteCall
	deleteErr  error
	forwarded  []forwardCall
	forwardErr error

	restricted  []restrictCall
	restrictErr error
	banned      []banCall
	banErr      error
	unbanned    []unbanCall
	unbanErr    error
	permsSet    []platform.Permissions
	setPermsErr error

	answered []answerCall

	memberCount    int
	memberCountErr error

	chatInfo          platform.ChatInfo
	chatByUsername    platform.ChatInfo
	chatByUsernameErr error
}

func newMockClient() *mockClient {
	return &mockClient{
		botID:       999,
		botUsername: "modbot",
		members:     make(map[int64]platform.ChatMember),
		nextMsgID:   1000,
	}
}

func (m *mockClient) BotID() int64        { return m.botID }
func (m *mockClient) BotUsername() string { return m.botUsername }

func (m *mockClient) GetChatMember(_ context.Context, _, userID int64) (platform.ChatMember, error) {
	if m.memberErr != nil {
		return platform.ChatMember{}, m.memberErr
	}
	if member, ok := m.members[userID]; ok {
		return member, nil
	}
	return platform.ChatMember{Status: platform.StatusMember}, nil
}

func (m *mockClient) GetChat(_ context.Context, chatID int64) (platform.ChatInfo, error) {
	if m.chatInfo.ID != 0 {
		return m.chatInfo, nil
	}
	return platform.ChatInfo{ID: chatID}, nil
}

func (m *mockClient) GetChatByUsername(_ context.Context, _ string) (platform.ChatInfo, error) {
	return m.chatByUsername, m.chatByUsernameErr
}

func (m *mockClient) GetChatMemberCount(_ context.Context, _ int64) (int, error) {
	return m.memberCount, m.memberCountErr
}

func (m *mockClient) SendMessage(_ context.Context, msg platform.Outgoing) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return 0, m.sendErr
	}
	m.sent = append(m.sent, msg)
	m.nextMsgID++
	return m.nextMsgID, nil
}

func (m *mockClient) EditMessageText(_ context.Context, chatID int64, messageID int, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.editErr != nil {
		return m.editErr
	}
	m.edited = append(m.edited, editCall{chatID: chatID, messageID: messageID, text: text})
	return nil
}

func (m *mockClient) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, deleteCall{chatID: chatID, messageID: messageID})
	return nil
}

func (m *mockClient) ForwardMessage(_ context.Context, toChatID, fromChatID int64, messageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forwardErr != nil {
		return m.forwardErr
	}
	m.forwarded = append(m.forwarded, forwardCall{toChatID: toChatID, fromChatID: fromChatID, messageID: messageID})
	return nil
}

func (m *mockClient) RestrictChatMember(_ context.Context, chatID, userID int64, perms platform.Permissions, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.restrictErr != nil {
		return m.restrictErr
	}
	m.restricted = append(m.restricted, restrictCall{chatID: chatID, userID: userID, perms: perms, until: until})
	return nil
}

func (m *mockClient) BanChatMember(_ context.Context, chatID, userID int64, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.banErr != nil {
		return m.banErr
	}
	m.banned = append(m.banned, banCall{chatID: chatID, userID: userID, until: until})
	return nil
}

func (m *mockClient) UnbanChatMember(_ context.Context, chatID, userID int64, onlyIfBanned bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unbanErr != nil {
		return m.unbanErr
	}
	m.unbanned = append(m.unbanned, unbanCall{chatID: chatID, userID: userID, onlyIfBanned: onlyIfBanned})
	return nil
}

func (m *mockClient) SetChatPermissions(_ context.Context, _ int64, perms platform.Permissions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setPermsErr != nil {
		return m.setPermsErr
	}
	m.permsSet = append(m.permsSet, perms)
	return nil
}

func (m *mockClient) AnswerCallback(_ context.Context, callbackID, text string, alert bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answered = append(m.answered, answerCall{callbackID: callbackID, text: text, alert: alert})
	return nil
}

func (m *mockClient) LeaveChat(_ context.Context, _ int64) error { return nil }

type mockChatRepo struct {
	chat        *repository.Chat
	byLink      *repository.Chat
	err         error
	active      []int64
	closed      map[int64]bool
	closedUntil map[int64]time.Time
	buttons     []repository.ChannelButton
}

func (m *mockChatRepo) Get(chatID int64) (*repository.Chat, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.chat != nil {
		if m.closed != nil {
			m.chat.IsClosed = m.closed[chatID]
		}
		if m.closedUntil != nil {
			m.chat.ClosedUntil = m.closedUntil[chatID]
		}
		return m.chat, nil
	}
	return &repository.Chat{
		ChatID:               chatID,
		EnableModerationCmds: true,
		EnableReportCmds:     true,
		EnableRulesCmd:       true,
	}, nil
}

func (m *mockChatRepo) GetByLinkedChannel(_ int64) (*repository.Chat, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byLink, nil
}

func (m *mockChatRepo) Save(chat *repository.Chat) error { m.chat = chat; return m.err }

func (m *mockChatRepo) Activate(chatID int64, _ string, _ int64) error {
	m.active = append(m.active, chatID)
	return m.err
}

func (m *mockChatRepo) Deactivate(_ int64) error { return m.err }

func (m *mockChatRepo) SetClosed(chatID int64, closed bool, until time.Time) error {
	if m.closed == nil {
		m.closed = make(map[int64]bool)
	}
	if m.closedUntil == nil {
		m.closedUntil = make(map[int64]time.Time)
	}
	m.closed[chatID] = closed
	m.closedUntil[chatID] = until
	return nil
}

func (m *mockChatRepo) GetButtons(_ int64) ([]repository.ChannelButton, error) {
	return m.buttons, nil
}

// mockWarnRepo keeps warns in a slice and mirrors the id/username matching
// of the real repository closely enough for executor tests.
type mockWarnRepo struct {
	warns  []repository.Warn
	addErr error
}

func (m *mockWarnRepo) matches(w repository.Warn, chatID, userID int64, username string) bool {
	if w.ChatID != chatID {
		return false
	}
	if userID != 0 && w.UserID == userID {
		return true
	}
	return username != "" && w.Username == username
}

func (m *mockWarnRepo) Add(warn repository.Warn) (int64, error) {
	if m.addErr != nil {
		return 0, m.addErr
	}
	m.warns = append(m.warns, warn)
	return m.Count(warn.ChatID, warn.UserID, warn.Username)
}

func (m *mockWarnRepo) Count(chatID, userID int64, username string) (int64, error) {
	var n int64
	for _, w := range m.warns {
		if m.matches(w, chatID, userID, username) {
			n++
		}
	}
	return n, nil
}

func (m *mockWarnRepo) RemoveAll(chatID, userID int64, username string) (int64, error) {
	var kept []repository.Warn
	var removed int64
	for _, w := range m.warns {
		if m.matches(w, chatID, userID, username) {
			removed++
			continue
		}
		kept = append(kept, w)
	}
	m.warns = kept
	return removed, nil
}

type mockStatsRepo struct {
	count int64
	err   error
}

func (m *mockStatsRepo) IncrementMessageCount(_ context.Context, _ int64) error { return m.err }
func (m *mockStatsRepo) CountSince(_ context.Context, _ int64, _ int) (int64, error) {
	return m.count, m.err
}

type mockFilterRepo struct {
	rules []repository.UserFilter
	err   error
}

func (m *mockFilterRepo) ActiveForUser(_, _ int64) ([]repository.UserFilter, error) {
	return m.rules, m.err
}
func (m *mockFilterRepo) Save(_ *repository.UserFilter) error { return m.err }
func (m *mockFilterRepo) Delete(_ uint) error                 { return m.err }

type mockWordRepo struct {
	words []string
	err   error
}

func (m *mockWordRepo) List() ([]string, error) { return m.words, m.err }
func (m *mockWordRepo) Add(_ string) error      { return m.err }
func (m *mockWordRepo) Remove(_ string) error   { return m.err }

type scheduledDeletion struct {
	chatID    int64
	messageID int
	duration  time.Duration
}

type mockTempRepo struct {
	scheduled []scheduledDeletion
	expired   []repository.TemporaryMessage
	deleted   [][]int64
	err       error
}

func (m *mockTempRepo) Add(chatID int64, messageID int, duration time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.scheduled = append(m.scheduled, scheduledDeletion{chatID: chatID, messageID: messageID, duration: duration})
	return nil
}

func (m *mockTempRepo) GetExpired(_ int) ([]repository.TemporaryMessage, error) {
	return m.expired, m.err
}

func (m *mockTempRepo) Delete(ids []int64) error {
	m.deleted = append(m.deleted, ids)
	return m.err
}

// snapshots for assertions that race with timer goroutines

func (m *mockClient) permsSetSnapshot() []platform.Permissions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]platform.Permissions(nil), m.permsSet...)
}

func (m *mockClient) editedSnapshot() []editCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]editCall(nil), m.edited...)
}
