package filters

import (
	"context"

	"github.com/kisxel/ChatHelpBot/internal/pipeline"
	"github.com/kisxel/ChatHelpBot/internal/repository"
)

// StatsFilter bumps the chat's per-day message counter. A storage error
// must not block moderation, so it is swallowed.
type StatsFilter struct {
	stats repository.StatsRepository
}

func NewStatsFilter(stats repository.StatsRepository) *StatsFilter {
	return &StatsFilter{stats: stats}
}

func (f *StatsFilter) Name() string {
	return "message_stats"
}

func (f *StatsFilter) Process(ctx context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	_ = f.stats.IncrementMessageCount(ctx, payload.ChatID)
	return &pipeline.Result{}, nil
}
