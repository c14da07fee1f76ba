package filters

import (
	"context"
	"strings"

	"github.com/kisxel/ChatHelpBot/internal/pipeline"
	"github.com/kisxel/ChatHelpBot/internal/repository"
)

// UserPatternFilter applies per-(chat,user) pattern filters. A block filter
// deletes on any pattern match; an allow filter deletes unless a pattern
// matches. The first filter that triggers wins and stops the chain.
type UserPatternFilter struct {
	filters repository.UserFilterRepository
}

func NewUserPatternFilter(filters repository.UserFilterRepository) *UserPatternFilter {
	return &UserPatternFilter{filters: filters}
}

func (f *UserPatternFilter) Name() string {
	return "user_patterns"
}

func (f *UserPatternFilter) Process(_ context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	rules, err := f.filters.ActiveForUser(payload.ChatID, payload.Sender.ID)
	if err != nil || len(rules) == 0 {
		return &pipeline.Result{}, nil
	}
	lowerMsg := strings.ToLower(payload.Text)
	for _, rule := range rules {
		matched := matchAny(lowerMsg, rule.Pattern)

		var triggered bool
		switch rule.FilterType {
		case repository.FilterTypeBlock:
			triggered = matched
		case repository.FilterTypeAllow:
			triggered = !matched
		}
		if !triggered {
			continue
		}
		return &pipeline.Result{
			Stop:        true,
			Delete:      true,
			NotifyOwner: rule.Notify,
			Reason:      rule.FilterType,
			FilterName:  f.Name(),
		}, nil
	}
	return &pipeline.Result{}, nil
}

// matchAny reports whether any comma-separated pattern is a substring of
// the lowercased text. Empty patterns are skipped.
func matchAny(lowerMsg, patterns string) bool {
	for _, p := range strings.Split(patterns, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.Contains(lowerMsg, p) {
			return true
		}
	}
	return false
}
