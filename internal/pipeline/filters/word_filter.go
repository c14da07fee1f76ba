package filters

import (
	"context"
	"strings"

	"github.com/kisxel/ChatHelpBot/internal/pipeline"
	"github.com/kisxel/ChatHelpBot/internal/repository"
)

// BannedWordFilter deletes messages containing an entry from the global
// banned-word list when the chat has word filtering enabled. A match stops
// the chain, so per-user filters do not run for the same message.
type BannedWordFilter struct {
	chats repository.ChatRepository
	words repository.BannedWordRepository
}

func NewBannedWordFilter(chats repository.ChatRepository, words repository.BannedWordRepository) *BannedWordFilter {
	return &BannedWordFilter{chats: chats, words: words}
}

func (f *BannedWordFilter) Name() string {
	return "banned_words"
}

func (f *BannedWordFilter) Process(_ context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	chat, err := f.chats.Get(payload.ChatID)
	if err != nil || !chat.EnableBannedWords {
		return &pipeline.Result{}, nil
	}
	words, err := f.words.List()
	if err != nil {
		return &pipeline.Result{}, nil
	}
	lowerMsg := strings.ToLower(payload.Text)
	for _, word := range words {
		if strings.Contains(lowerMsg, word) {
			return &pipeline.Result{
				Stop:       true,
				Delete:     true,
				Reason:     word,
				FilterName: f.Name(),
			}, nil
		}
	}
	return &pipeline.Result{}, nil
}
