package platform

type ChatType string

const (
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
	ChatTypeChannel    ChatType = "channel"
)

func (t ChatType) IsGroup() bool {
	return t == ChatTypeGroup || t == ChatTypeSupergroup
}

type User struct {
	ID       int64
	Username string
	FullName string
	IsBot    bool
}

// Message is the platform-neutral view of an inbound chat message.
type Message struct {
	ID        int
	ChatID    int64
	ChatType  ChatType
	ChatTitle string
	From      *User
	// SenderChatID is set when the message was posted on behalf of a chat
	// (e.g. a linked channel), not a regular user.
	SenderChatID int64
	Text         string
	Caption      string
	ReplyTo      *Message
	// Mentions carries users referenced by explicit text_mention entities.
	Mentions []User
}

// EffectiveText returns the message body, or the media caption when the
// message has no body.
func (m *Message) EffectiveText() string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

// Callback is a button-press event.
type Callback struct {
	ID          string
	Data        string
	From        User
	ChatID      int64
	MessageID   int
	MessageText string
}

// Update is the single event type flowing out of a transport.
type Update struct {
	Message  *Message
	Callback *Callback
}
