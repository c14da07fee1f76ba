// Package filters holds the stages of the group-message chain. Stage order
// is wired in the application assembly, not here.
package filters

import (
	"context"

	"github.com/kisxel/ChatHelpBot/internal/pipeline"
	"github.com/kisxel/ChatHelpBot/internal/resolver"
)

// UsernameCacheFilter records every sender in the username cache so later
// @username command arguments resolve without a platform lookup. It never
// stops the chain.
type UsernameCacheFilter struct {
	cache *resolver.UserCache
}

func NewUsernameCacheFilter(cache *resolver.UserCache) *UsernameCacheFilter {
	return &UsernameCacheFilter{cache: cache}
}

func (f *UsernameCacheFilter) Name() string {
	return "username_cache"
}

func (f *UsernameCacheFilter) Process(_ context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	f.cache.Observe(payload.ChatID, payload.Sender)
	return &pipeline.Result{}, nil
}
