package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
)

type ChatRepository interface {
	Get(chatID int64) (*Chat, error)
	GetByLinkedChannel(channelID int64) (*Chat, error)
	Save(chat *Chat) error
	Activate(chatID int64, title string, userID int64) error
	Deactivate(chatID int64) error
	// SetClosed stores the closed flag together with the deadline of the
	// current close window; reopening passes the zero time.
	SetClosed(chatID int64, closed bool, until time.Time) error
	GetButtons(chatID int64) ([]ChannelButton, error)
}

// PostgresChatRepository reads chat rows through a short TTL cache: the
// filter chain consults toggles on every message and the row rarely changes.
type PostgresChatRepository struct {
	db          *gorm.DB
	cache       sync.Map
	enableCache bool
}

type cachedChat struct {
	chat      *Chat
	expiresAt time.Time
}

const chatCacheTTL = 5 * time.Minute

func NewChatRepository(db *gorm.DB, enableCache bool) ChatRepository {
	return &PostgresChatRepository{db: db, enableCache: enableCache}
}

func defaultChat(chatID int64) *Chat {
	return &Chat{
		ChatID:               chatID,
		EnableModerationCmds: true,
		EnableReportCmds:     true,
		EnableRulesCmd:       true,
	}
}

func (r *PostgresChatRepository) Get(chatID int64) (*Chat, error) {
	if r.enableCache {
		if val, ok := r.cache.Load(chatID); ok {
			entry := val.(*cachedChat)
			if time.Now().Before(entry.expiresAt) {
				return entry.chat, nil
			}
			r.cache.Delete(chatID)
		}
	}
	var chat Chat
	err := r.db.First(&chat, "chat_id = ?", chatID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown chats get defaults without persisting a row; rows are
			// created on activation.
			return defaultChat(chatID), nil
		}
		return nil, fmt.Errorf("failed to get chat: %w", err)
	}
	if r.enableCache {
		r.cache.Store(chatID, &cachedChat{chat: &chat, expiresAt: time.Now().Add(chatCacheTTL)})
	}
	return &chat, nil
}

func (r *PostgresChatRepository) GetByLinkedChannel(channelID int64) (*Chat, error) {
	var chat Chat
	err := r.db.First(&chat, "linked_channel_id = ? AND is_active", channelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chat by channel: %w", err)
	}
	return &chat, nil
}

func (r *PostgresChatRepository) Save(chat *Chat) error {
	if err := r.db.Save(chat).Error; err != nil {
		return fmt.Errorf("failed to save chat: %w", err)
	}
	if r.enableCache {
		r.cache.Store(chat.ChatID, &cachedChat{chat: chat, expiresAt: time.Now().Add(chatCacheTTL)})
	}
	return nil
}

func (r *PostgresChatRepository) Activate(chatID int64, title string, userID int64) error {
	chat := defaultChat(chatID)
	chat.Title = title
	chat.IsActive = true
	chat.ActivatedBy = userID

	err := r.db.Where(Chat{ChatID: chatID}).FirstOrCreate(chat).Error
	if err != nil {
		return fmt.Errorf("failed to activate chat: %w", err)
	}
	// Reactivation of a previously known chat.
	if !chat.IsActive || chat.Title != title || chat.ActivatedBy != userID {
		chat.IsActive = true
		chat.Title = title
		chat.ActivatedBy = userID
		if err := r.db.Save(chat).Error; err != nil {
			return fmt.Errorf("failed to reactivate chat: %w", err)
		}
	}
	r.cache.Delete(chatID)
	return nil
}

func (r *PostgresChatRepository) Deactivate(chatID int64) error {
	if err := r.db.Model(&Chat{}).Where("chat_id = ?", chatID).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate chat: %w", err)
	}
	r.cache.Delete(chatID)
	return nil
}

func (r *PostgresChatRepository) SetClosed(chatID int64, closed bool, until time.Time) error {
	updates := map[string]interface{}{"is_closed": closed, "closed_until": until}
	if err := r.db.Model(&Chat{}).Where("chat_id = ?", chatID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to set closed flag: %w", err)
	}
	r.cache.Delete(chatID)
	return nil
}

func (r *PostgresChatRepository) GetButtons(chatID int64) ([]ChannelButton, error) {
	var buttons []ChannelButton
	if err := r.db.Where("chat_id = ?", chatID).Order("position ASC").Find(&buttons).Error; err != nil {
		return nil, fmt.Errorf("failed to get channel buttons: %w", err)
	}
	return buttons, nil
}
