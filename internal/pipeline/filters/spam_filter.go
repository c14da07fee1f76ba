package filters

import (
	"context"
	"time"

	"github.com/kisxel/ChatHelpBot/internal/antispam"
	"github.com/kisxel/ChatHelpBot/internal/pipeline"
	"github.com/kisxel/ChatHelpBot/internal/platform"
)

// SpamEnforcer carries out a spam verdict: purge the burst's messages and,
// when mute is set, restrict the sender and announce the mute.
type SpamEnforcer interface {
	PunishSpam(ctx context.Context, chatID int64, user platform.User, messageIDs []int, mute bool)
}

// SpamFilter feeds every message into the sliding-window tracker and fires
// the enforcer when a burst crosses the threshold. It never stops the
// chain; the message counter and later filters still see the message.
type SpamFilter struct {
	tracker  *antispam.Tracker
	enforcer SpamEnforcer
	now      func() time.Time
}

func NewSpamFilter(tracker *antispam.Tracker, enforcer SpamEnforcer) *SpamFilter {
	return &SpamFilter{tracker: tracker, enforcer: enforcer, now: time.Now}
}

func (f *SpamFilter) Name() string {
	return "spam"
}

func (f *SpamFilter) Process(ctx context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	now := f.now()
	ids := f.tracker.Observe(payload.ChatID, payload.Sender.ID, payload.MessageID, now)
	if len(ids) == 0 {
		return &pipeline.Result{}, nil
	}
	mute := f.tracker.MuteAllowed(payload.ChatID, payload.Sender.ID, now)
	f.enforcer.PunishSpam(ctx, payload.ChatID, payload.Sender, ids, mute)
	return &pipeline.Result{}, nil
}
