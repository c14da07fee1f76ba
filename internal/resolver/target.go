// Package resolver extracts the target user of a moderation command from a
// message: the replied-to sender, a numeric id argument, or an @username
// resolved through the cache, message mentions, or a platform lookup.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/kisxel/ChatHelpBot/internal/platform"
)

// Target identifies the user an action is directed at. UserID may be zero
// when only the username is known (warn records tolerate that and reconcile
// later); Name is always set on a successful resolution.
type Target struct {
	UserID   int64
	Username string
	Name     string
}

// Resolved reports whether at least one identifier was extracted.
func (t Target) Resolved() bool { return t.UserID != 0 || t.Username != "" }

// ChatLookup is the platform slice used for @username fallback.
type ChatLookup interface {
	GetChatByUsername(ctx context.Context, username string) (platform.ChatInfo, error)
}

type TargetResolver struct {
	cache  *UserCache
	client ChatLookup
}

func NewTargetResolver(cache *UserCache, client ChatLookup) *TargetResolver {
	return &TargetResolver{cache: cache, client: client}
}

// Resolve finds the target for a command message. The reply-to sender wins;
// otherwise arg is interpreted as a numeric id or an @username.
func (r *TargetResolver) Resolve(ctx context.Context, msg *platform.Message, arg string) Target {
	if msg.ReplyTo != nil && msg.ReplyTo.From != nil {
		from := msg.ReplyTo.From
		return Target{
			UserID:   from.ID,
			Username: strings.ToLower(from.Username),
			Name:     from.FullName,
		}
	}
	if arg == "" {
		return Target{}
	}
	if isDigits(arg) {
		var id int64
		fmt.Sscanf(arg, "%d", &id)
		return Target{UserID: id, Name: "ID:" + arg}
	}
	if strings.HasPrefix(arg, "@") {
		return r.resolveUsername(ctx, msg, arg)
	}
	return Target{}
}

func (r *TargetResolver) resolveUsername(ctx context.Context, msg *platform.Message, arg string) Target {
	username := strings.ToLower(strings.TrimPrefix(arg, "@"))

	if id, name, ok := r.cache.Get(msg.ChatID, username); ok {
		return Target{UserID: id, Username: username, Name: name}
	}

	for _, mention := range msg.Mentions {
		return Target{
			UserID:   mention.ID,
			Username: strings.ToLower(mention.Username),
			Name:     mention.FullName,
		}
	}

	info, err := r.client.GetChatByUsername(ctx, arg)
	if err == nil && info.ID != 0 {
		name := info.DisplayName()
		if name == "" {
			name = arg
		}
		r.cache.Put(msg.ChatID, username, info.ID, name)
		return Target{UserID: info.ID, Username: username, Name: name}
	}

	// The platform could not resolve the handle; keep the username so warn
	// records can still be keyed by it.
	return Target{Username: username, Name: arg}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
