package filters

import (
	"context"
	"testing"

	"github.com/kisxel/ChatHelpBot/internal/pipeline"
	"github.com/kisxel/ChatHelpBot/internal/platform"
	"github.com/kisxel/ChatHelpBot/internal/repository"
)

func TestBannedWordFilter_Process(t *testing.T) {
	chats := &mockChatRepo{chat: &repository.Chat{ChatID: 123, EnableBannedWords: true}}
	words := &mockWordRepo{words: []string{"казино", "spam"}}
	f := NewBannedWordFilter(chats, words)

	tests := []struct {
		name     string
		message  string
		wantStop bool
	}{
		{name: "clean message", message: "Привет всем"},
		{name: "exact match", message: "казино", wantStop: true},
		{name: "case insensitive", message: "Лучшее КАЗИНО города", wantStop: true},
		{name: "substring match", message: "анти-spam-бот", wantStop: true},
		{name: "long clean sentence", message: "Сегодня отличная погода для прогулки"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.Process(context.Background(), pipeline.Payload{
				ChatID: 123,
				Sender: platform.User{ID: 42},
				Text:   tt.message,
			})
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if res.Stop != tt.wantStop {
				t.Errorf("Process() stop = %v, want %v", res.Stop, tt.wantStop)
			}
			if tt.wantStop && !res.Delete {
				t.Error("Process() delete = false, matched message must be removed")
			}
		})
	}
}

func TestBannedWordFilter_DisabledChat(t *testing.T) {
	chats := &mockChatRepo{chat: &repository.Chat{ChatID: 123, EnableBannedWords: false}}
	words := &mockWordRepo{words: []string{"казино"}}
	f := NewBannedWordFilter(chats, words)

	res, err := f.Process(context.Background(), pipeline.Payload{ChatID: 123, Text: "казино"})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Stop {
		t.Error("Process() stop = true, filter must be inert when the chat toggle is off")
	}
}
