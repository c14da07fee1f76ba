package filters

import (
	"context"

	"github.com/kisxel/ChatHelpBot/internal/pipeline"
)

type permissionSource interface {
	IsUserAdmin(ctx context.Context, chatID, userID int64) bool
	CanBotRestrict(ctx context.Context, chatID int64) bool
}

// AdminExemptFilter stops the chain for messages from chat admins. Admins
// are never subject to automated checks.
type AdminExemptFilter struct {
	perms permissionSource
}

func NewAdminExemptFilter(perms permissionSource) *AdminExemptFilter {
	return &AdminExemptFilter{perms: perms}
}

func (f *AdminExemptFilter) Name() string {
	return "admin_exempt"
}

func (f *AdminExemptFilter) Process(ctx context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	if f.perms.IsUserAdmin(ctx, payload.ChatID, payload.Sender.ID) {
		return &pipeline.Result{Stop: true, FilterName: f.Name()}, nil
	}
	return &pipeline.Result{}, nil
}
