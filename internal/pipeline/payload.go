package pipeline

import (
	"github.com/kisxel/ChatHelpBot/internal/platform"
)

// Payload is the view of one group message the filter stages operate on.
// Text is the effective text: the body, or the media caption when the body
// is empty.
type Payload struct {
	ChatID    int64
	ChatTitle string
	MessageID int
	Sender    platform.User
	Text      string
}
