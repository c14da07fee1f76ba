package filters

import (
	"context"

	"github.com/kisxel/ChatHelpBot/internal/pipeline"
)

// BotCapabilityFilter stops the chain when the bot cannot restrict members
// in the chat. Without that right automated enforcement cannot act, so the
// later stages are pointless.
type BotCapabilityFilter struct {
	perms permissionSource
}

func NewBotCapabilityFilter(perms permissionSource) *BotCapabilityFilter {
	return &BotCapabilityFilter{perms: perms}
}

func (f *BotCapabilityFilter) Name() string {
	return "bot_capability"
}

func (f *BotCapabilityFilter) Process(ctx context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	if !f.perms.CanBotRestrict(ctx, payload.ChatID) {
		return &pipeline.Result{Stop: true, FilterName: f.Name()}, nil
	}
	return &pipeline.Result{}, nil
}
