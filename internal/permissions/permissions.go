// Package permissions answers capability questions about chat members and the
// bot itself. Every query fails closed: a platform error means "no".
package permissions

import (
	"context"

	"github.com/kisxel/ChatHelpBot/internal/platform"
)

// MemberSource is the slice of the platform client the resolver needs.
type MemberSource interface {
	BotID() int64
	GetChatMember(ctx context.Context, chatID, userID int64) (platform.ChatMember, error)
}

type Resolver struct {
	client MemberSource
}

func NewResolver(client MemberSource) *Resolver {
	return &Resolver{client: client}
}

// IsUserAdmin reports whether the user holds administrator or owner status in
// the chat.
func (r *Resolver) IsUserAdmin(ctx context.Context, chatID, userID int64) bool {
	member, err := r.client.GetChatMember(ctx, chatID, userID)
	if err != nil {
		return false
	}
	return member.IsAdmin()
}

// CanBotRestrict reports whether the bot is an administrator allowed to
// restrict members.
func (r *Resolver) CanBotRestrict(ctx context.Context, chatID int64) bool {
	member, err := r.client.GetChatMember(ctx, chatID, r.client.BotID())
	if err != nil {
		return false
	}
	return member.Status == platform.StatusAdministrator && member.CanRestrictMembers
}

// CanBotDelete reports whether the bot is an administrator allowed to delete
// messages.
func (r *Resolver) CanBotDelete(ctx context.Context, chatID int64) bool {
	member, err := r.client.GetChatMember(ctx, chatID, r.client.BotID())
	if err != nil {
		return false
	}
	return member.Status == platform.StatusAdministrator && member.CanDeleteMessages
}
