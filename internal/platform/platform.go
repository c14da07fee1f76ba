// Package platform defines the chat-platform boundary. The rest of the bot
// talks to this interface only; the concrete Telegram client lives in the
// telegram subpackage. Every call is fallible and returns an error value,
// callers decide per call-site whether a failure is reportable or ignorable.
package platform

import (
	"context"
	"time"
)

type MemberStatus string

const (
	StatusCreator       MemberStatus = "creator"
	StatusAdministrator MemberStatus = "administrator"
	StatusMember        MemberStatus = "member"
	StatusRestricted    MemberStatus = "restricted"
	StatusLeft          MemberStatus = "left"
	StatusKicked        MemberStatus = "kicked"
)

type ChatMember struct {
	Status             MemberStatus
	CanRestrictMembers bool
	CanDeleteMessages  bool
}

// IsAdmin reports whether the member holds administrator or owner status.
func (m ChatMember) IsAdmin() bool {
	return m.Status == StatusAdministrator || m.Status == StatusCreator
}

type ChatInfo struct {
	ID       int64
	Title    string
	Username string
	FullName string
}

// DisplayName picks the best human-readable name for a chat/user record.
func (c ChatInfo) DisplayName() string {
	if c.FullName != "" {
		return c.FullName
	}
	if c.Username != "" {
		return "@" + c.Username
	}
	return c.Title
}

// Permissions is the subset of chat permissions the bot manages. Muting sets
// everything to false, unmuting restores the defaults.
type Permissions struct {
	CanSendMessages       bool
	CanSendMedia          bool
	CanSendPolls          bool
	CanSendOther          bool
	CanAddWebPagePreviews bool
}

func MutedPermissions() Permissions { return Permissions{} }

func DefaultPermissions() Permissions {
	return Permissions{
		CanSendMessages:       true,
		CanSendMedia:          true,
		CanSendPolls:          true,
		CanSendOther:          true,
		CanAddWebPagePreviews: true,
	}
}

// ClosedPermissions leaves the chat readable but revokes sending.
func ClosedPermissions() Permissions { return Permissions{} }

type Button struct {
	Label string
	URL   string
	Data  string
}

type Outgoing struct {
	ChatID    int64
	Text      string
	ReplyTo   int
	Buttons   [][]Button
	PlainText bool
}

// Client is the capability surface the moderation core needs from the chat
// platform.
type Client interface {
	BotID() int64
	BotUsername() string

	GetChatMember(ctx context.Context, chatID, userID int64) (ChatMember, error)
	GetChat(ctx context.Context, chatID int64) (ChatInfo, error)
	GetChatByUsername(ctx context.Context, username string) (ChatInfo, error)
	GetChatMemberCount(ctx context.Context, chatID int64) (int, error)

	SendMessage(ctx context.Context, msg Outgoing) (int, error)
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	ForwardMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) error

	RestrictChatMember(ctx context.Context, chatID, userID int64, perms Permissions, until time.Time) error
	BanChatMember(ctx context.Context, chatID, userID int64, until time.Time) error
	UnbanChatMember(ctx context.Context, chatID, userID int64, onlyIfBanned bool) error
	SetChatPermissions(ctx context.Context, chatID int64, perms Permissions) error

	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
	LeaveChat(ctx context.Context, chatID int64) error
}
