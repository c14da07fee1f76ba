package repository

import (
	"time"
)

// Chat is one managed group conversation. A chat is never hard-deleted, only
// deactivated. ActivatedBy is the owner: the sole recipient of filter/report
// notifications for this chat.
type Chat struct {
	ChatID      int64  `gorm:"primaryKey;autoIncrement:false"`
	Title       string `gorm:"size:255"`
	IsActive    bool   `gorm:"default:false"`
	ActivatedBy int64
	ActivatedAt time.Time `gorm:"autoCreateTime"`
	IsClosed    bool      `gorm:"default:false"`
	ClosedUntil time.Time

	EnableModerationCmds bool `gorm:"default:true"`
	EnableReportCmds     bool `gorm:"default:true"`
	EnableRulesCmd       bool `gorm:"default:true"`
	EnableBannedWords    bool `gorm:"default:false"`
	EnableChannelPost    bool `gorm:"default:false"`
	CloseChatOnPost      bool `gorm:"default:false"`

	LinkedChannelID   int64
	ChatRules         string `gorm:"type:text"`
	ChannelPostText   string `gorm:"type:text"`
	ChannelPostMedia  string `gorm:"size:512"`
	ChannelMediaKind  string `gorm:"size:32"`
	CloseChatDuration int    // seconds

	UpdatedAt time.Time
}

// ChannelButton is one ordered {label,url} button attached to the channel
// auto-reply post.
type ChannelButton struct {
	ID       uint  `gorm:"primaryKey"`
	ChatID   int64 `gorm:"index"`
	Position int
	Label    string `gorm:"size:255"`
	URL      string `gorm:"size:512"`
}

// Warn is a single warning record. UserID and Username start out possibly
// half-known (zero / empty) and are back-filled once both identifiers are
// established for the user.
type Warn struct {
	ID       uint   `gorm:"primaryKey"`
	ChatID   int64  `gorm:"index"`
	UserID   int64  `gorm:"index"`
	Username string `gorm:"size:255;index"`
	Reason   string `gorm:"size:512"`
	WarnedBy int64
	WarnedAt time.Time `gorm:"autoCreateTime"`
}

// UserFilter is a per-(chat,user) content rule. Pattern holds comma-separated
// substrings; FilterType selects block (delete on match) or allow (delete
// unless matched) semantics.
type UserFilter struct {
	ID         uint   `gorm:"primaryKey"`
	ChatID     int64  `gorm:"index:idx_user_filters_chat_user,priority:1"`
	UserID     int64  `gorm:"index:idx_user_filters_chat_user,priority:2"`
	FilterType string `gorm:"size:16;default:block"`
	Pattern    string `gorm:"type:text"`
	IsActive   bool   `gorm:"default:true"`
	Notify     bool   `gorm:"default:false"`
}

const (
	FilterTypeBlock = "block"
	FilterTypeAllow = "allow"
)

// MessageStats is the per-day message counter for a chat.
type MessageStats struct {
	ChatID       int64     `gorm:"primaryKey;autoIncrement:false"`
	Date         time.Time `gorm:"primaryKey;type:date"`
	MessageCount int64     `gorm:"default:0"`
}

// BannedWord is one entry of the global banned-word list.
type BannedWord struct {
	Word      string `gorm:"primaryKey;size:255"`
	CreatedAt time.Time
}

// TemporaryMessage is a bot-sent message scheduled for deletion.
type TemporaryMessage struct {
	ID        int64     `gorm:"primaryKey"`
	ChatID    int64     `gorm:"not null"`
	MessageID int       `gorm:"not null"`
	DeleteAt  time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
