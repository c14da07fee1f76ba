package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type WarnRepository interface {
	// Add stores a warn and returns the user's total count after merging
	// records split across id and username.
	Add(warn Warn) (int64, error)
	Count(chatID, userID int64, username string) (int64, error)
	RemoveAll(chatID, userID int64, username string) (int64, error)
}

type PostgresWarnRepository struct {
	db *gorm.DB
}

func NewWarnRepository(db *gorm.DB) WarnRepository {
	return &PostgresWarnRepository{db: db}
}

// reconcile fills in the missing half of the (user id, username) pair from
// historical records and, once both are known, back-fills every matching row
// so counts are never split between the two identifiers.
func (r *PostgresWarnRepository) reconcile(tx *gorm.DB, chatID, userID int64, username string) (int64, string, error) {
	if username != "" && userID == 0 {
		var found int64
		err := tx.Model(&Warn{}).
			Where("chat_id = ? AND username = ? AND user_id <> 0", chatID, username).
			Limit(1).Pluck("user_id", &found).Error
		if err != nil {
			return 0, "", err
		}
		userID = found
	}
	if userID != 0 && username == "" {
		var found string
		err := tx.Model(&Warn{}).
			Where("chat_id = ? AND user_id = ? AND username <> ''", chatID, userID).
			Limit(1).Pluck("username", &found).Error
		if err != nil {
			return 0, "", err
		}
		username = found
	}
	if userID != 0 && username != "" {
		err := tx.Model(&Warn{}).
			Where("chat_id = ? AND (user_id = ? OR username = ?)", chatID, userID, username).
			Updates(map[string]interface{}{"user_id": userID, "username": username}).Error
		if err != nil {
			return 0, "", err
		}
	}
	return userID, username, nil
}

func (r *PostgresWarnRepository) Add(warn Warn) (int64, error) {
	warn.Username = strings.ToLower(warn.Username)

	var total int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		userID, username, err := r.reconcile(tx, warn.ChatID, warn.UserID, warn.Username)
		if err != nil {
			return err
		}
		if userID != 0 {
			warn.UserID = userID
		}
		if username != "" {
			warn.Username = username
		}
		if err := tx.Create(&warn).Error; err != nil {
			return err
		}
		total, err = countWarns(tx, warn.ChatID, warn.UserID, warn.Username)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add warn: %w", err)
	}
	return total, nil
}

func (r *PostgresWarnRepository) Count(chatID, userID int64, username string) (int64, error) {
	username = strings.ToLower(username)

	var total int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		mergedID, mergedName, err := r.reconcile(tx, chatID, userID, username)
		if err != nil {
			return err
		}
		total, err = countWarns(tx, chatID, mergedID, mergedName)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count warns: %w", err)
	}
	return total, nil
}

func (r *PostgresWarnRepository) RemoveAll(chatID, userID int64, username string) (int64, error) {
	username = strings.ToLower(username)

	var removed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		mergedID, mergedName, err := r.reconcile(tx, chatID, userID, username)
		if err != nil {
			return err
		}
		query := warnQuery(tx, chatID, mergedID, mergedName)
		if query == nil {
			return nil
		}
		res := query.Delete(&Warn{})
		removed = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to remove warns: %w", err)
	}
	return removed, nil
}

func countWarns(tx *gorm.DB, chatID, userID int64, username string) (int64, error) {
	query := warnQuery(tx, chatID, userID, username)
	if query == nil {
		return 0, nil
	}
	var count int64
	err := query.Model(&Warn{}).Count(&count).Error
	return count, err
}

// warnQuery prefers the user id when known, falling back to the username.
func warnQuery(tx *gorm.DB, chatID, userID int64, username string) *gorm.DB {
	switch {
	case userID != 0:
		return tx.Where("chat_id = ? AND user_id = ?", chatID, userID)
	case username != "":
		return tx.Where("chat_id = ? AND username = ?", chatID, username)
	default:
		return nil
	}
}
