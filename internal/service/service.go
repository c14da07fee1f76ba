// Package service implements the moderation core: the command executor, the
// spam punisher, reports, rules, channel auto-replies and the message
// cleanup task. Handlers stay thin; every conversation with the user is
// driven from here.
package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/kisxel/ChatHelpBot/internal/antispam"
	"github.com/kisxel/ChatHelpBot/internal/command"
	"github.com/kisxel/ChatHelpBot/internal/messages"
	"github.com/kisxel/ChatHelpBot/internal/permissions"
	"github.com/kisxel/ChatHelpBot/internal/pipeline"
	"github.com/kisxel/ChatHelpBot/internal/pipeline/filters"
	"github.com/kisxel/ChatHelpBot/internal/platform"
	"github.com/kisxel/ChatHelpBot/internal/repository"
	"github.com/kisxel/ChatHelpBot/internal/resolver"
)

const (
	// DefaultMaxWarns is the warn count at which a user is banned.
	DefaultMaxWarns = 3

	// MinMuteDuration is the shortest mute an admin may request.
	MinMuteDuration = 30 * time.Second

	// tempReplyTTL is how long the bot's own error/usage replies live in a
	// group before the cleanup task removes them.
	tempReplyTTL = time.Minute

	// noticeExcerptLen bounds the quoted text in owner notifications.
	noticeExcerptLen = 200
)

// Service is the surface handlers drive. ModerationService is the only
// implementation; the interface exists for handler tests.
type Service interface {
	ModerateMessage(ctx context.Context, payload pipeline.Payload) error
	ExecuteCommand(ctx context.Context, msg *platform.Message, action command.Action, args command.Args)
	HandleReport(ctx context.Context, msg *platform.Message, comment string)
	SendRules(ctx context.Context, msg *platform.Message)
	SendChatStats(ctx context.Context, msg *platform.Message)
	SendBotStatus(ctx context.Context, msg *platform.Message)
	ActivateChat(ctx context.Context, msg *platform.Message)
	DeactivateChat(ctx context.Context, msg *platform.Message)
	HandleChannelPost(ctx context.Context, msg *platform.Message)
	HandleCallback(ctx context.Context, cb *platform.Callback)
}

type ModerationService struct {
	logger          *slog.Logger
	client          platform.Client
	perms           *permissions.Resolver
	targets         *resolver.TargetResolver
	chatRepo        repository.ChatRepository
	warnRepo        repository.WarnRepository
	statsRepo       repository.StatsRepository
	tempMessageRepo repository.TemporaryMessageRepository
	pipeline        *pipeline.Manager
	tracer          trace.Tracer
	maxWarns        int64
	spamMute        time.Duration
}

func NewModerationService(
	logger *slog.Logger,
	client platform.Client,
	chatRepo repository.ChatRepository,
	warnRepo repository.WarnRepository,
	statsRepo repository.StatsRepository,
	filterRepo repository.UserFilterRepository,
	wordRepo repository.BannedWordRepository,
	tempMessageRepo repository.TemporaryMessageRepository,
	cache *resolver.UserCache,
	tracker *antispam.Tracker,
) *ModerationService {
	perms := permissions.NewResolver(client)

	s := &ModerationService{
		logger:          logger,
		client:          client,
		perms:           perms,
		targets:         resolver.NewTargetResolver(cache, client),
		chatRepo:        chatRepo,
		warnRepo:        warnRepo,
		statsRepo:       statsRepo,
		tempMessageRepo: tempMessageRepo,
		tracer:          otel.Tracer("service"),
		maxWarns:        DefaultMaxWarns,
		spamMute:        antispam.DefaultMuteDuration,
	}

	s.pipeline = pipeline.NewManager(
		filters.NewUsernameCacheFilter(cache),
		filters.NewAdminExemptFilter(perms),
		filters.NewBotCapabilityFilter(perms),
		filters.NewSpamFilter(tracker, s),
		filters.NewStatsFilter(statsRepo),
		filters.NewBannedWordFilter(chatRepo, wordRepo),
		filters.NewUserPatternFilter(filterRepo),
	)
	return s
}

// SetPunishments overrides the warn threshold and the automatic spam mute
// length. Zero values keep the defaults.
func (s *ModerationService) SetPunishments(maxWarns int64, spamMute time.Duration) {
	if maxWarns > 0 {
		s.maxWarns = maxWarns
	}
	if spamMute > 0 {
		s.spamMute = spamMute
	}
}

// reply sends an HTML-formatted reply to msg and returns the sent message id.
func (s *ModerationService) reply(ctx context.Context, msg *platform.Message, text string, buttons [][]platform.Button) int {
	id, err := s.client.SendMessage(ctx, platform.Outgoing{
		ChatID:  msg.ChatID,
		Text:    text,
		ReplyTo: msg.ID,
		Buttons: buttons,
	})
	if err != nil {
		s.logger.Error("Failed to send reply", "chat_id", msg.ChatID, "error", err)
		return 0
	}
	return id
}

// replyTemp sends a reply and schedules it for deletion. Used for error and
// usage hints so groups do not fill up with bot noise.
func (s *ModerationService) replyTemp(ctx context.Context, msg *platform.Message, text string) {
	id := s.reply(ctx, msg, text, nil)
	if id != 0 && msg.ChatType.IsGroup() {
		s.ScheduleDeletion(msg.ChatID, id, tempReplyTTL)
	}
}

// userRef renders a user reference for HTML reports: a tg://user link when
// the id is known, the escaped display name otherwise.
func userRef(t resolver.Target) string {
	name := t.Name
	if name == "" {
		if t.Username != "" {
			name = "@" + t.Username
		} else {
			name = messages.MsgUnknownUser
		}
	}
	if t.UserID != 0 {
		return fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, t.UserID, html.EscapeString(name))
	}
	return html.EscapeString(name)
}

func senderTarget(user *platform.User) resolver.Target {
	if user == nil {
		return resolver.Target{}
	}
	return resolver.Target{UserID: user.ID, Username: user.Username, Name: user.FullName}
}

// excerpt truncates text for owner notifications.
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= noticeExcerptLen {
		return text
	}
	return string(runes[:noticeExcerptLen]) + "…"
}
