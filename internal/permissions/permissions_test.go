package permissions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kisxel/ChatHelpBot/internal/platform"
)

type mockMemberSource struct {
	botID   int64
	members map[int64]platform.ChatMember
	err     error
}

func (m *mockMemberSource) BotID() int64 { return m.botID }
func (m *mockMemberSource) GetChatMember(_ context.Context, _, userID int64) (platform.ChatMember, error) {
	if m.err != nil {
		return platform.ChatMember{}, m.err
	}
	return m.members[userID], nil
}

func TestIsUserAdmin(t *testing.T) {
	src := &mockMemberSource{
		botID: 1000,
		members: map[int64]platform.ChatMember{
			1: {Status: platform.StatusCreator},
			2: {Status: platform.StatusAdministrator},
			3: {Status: platform.StatusMember},
		},
	}
	r := NewResolver(src)
	ctx := context.Background()

	assert.True(t, r.IsUserAdmin(ctx, -100, 1), "creator is admin")
	assert.True(t, r.IsUserAdmin(ctx, -100, 2), "administrator is admin")
	assert.False(t, r.IsUserAdmin(ctx, -100, 3), "plain member is not")
	assert.False(t, r.IsUserAdmin(ctx, -100, 99), "unknown user is not")
}

func TestFailClosedOnPlatformError(t *testing.T) {
	src := &mockMemberSource{botID: 1000, err: errors.New("network down")}
	r := NewResolver(src)
	ctx := context.Background()

	assert.False(t, r.IsUserAdmin(ctx, -100, 1))
	assert.False(t, r.CanBotRestrict(ctx, -100))
	assert.False(t, r.CanBotDelete(ctx, -100))
}

func TestBotCapabilities(t *testing.T) {
	tests := []struct {
		name         string
		member       platform.ChatMember
		wantRestrict bool
		wantDelete   bool
	}{
		{
			name:         "admin with both flags",
			member:       platform.ChatMember{Status: platform.StatusAdministrator, CanRestrictMembers: true, CanDeleteMessages: true},
			wantRestrict: true,
			wantDelete:   true,
		},
		{
			name:         "admin without flags",
			member:       platform.ChatMember{Status: platform.StatusAdministrator},
			wantRestrict: false,
			wantDelete:   false,
		},
		{
			name:         "plain member flags ignored",
			member:       platform.ChatMember{Status: platform.StatusMember, CanRestrictMembers: true, CanDeleteMessages: true},
			wantRestrict: false,
			wantDelete:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &mockMemberSource{botID: 1000, members: map[int64]platform.ChatMember{1000: tt.member}}
			r := NewResolver(src)
			assert.Equal(t, tt.wantRestrict, r.CanBotRestrict(context.Background(), -100))
			assert.Equal(t, tt.wantDelete, r.CanBotDelete(context.Background(), -100))
		})
	}
}
