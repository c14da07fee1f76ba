package repository

import (
	"fmt"

	"gorm.io/gorm"
)

type UserFilterRepository interface {
	ActiveForUser(chatID, userID int64) ([]UserFilter, error)
	Save(filter *UserFilter) error
	Delete(id uint) error
}

type PostgresUserFilterRepository struct {
	db *gorm.DB
}

func NewUserFilterRepository(db *gorm.DB) UserFilterRepository {
	return &PostgresUserFilterRepository{db: db}
}

func (r *PostgresUserFilterRepository) ActiveForUser(chatID, userID int64) ([]UserFilter, error) {
	var filters []UserFilter
	err := r.db.Where("chat_id = ? AND user_id = ? AND is_active", chatID, userID).
		Order("id ASC").Find(&filters).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user filters: %w", err)
	}
	return filters, nil
}

func (r *PostgresUserFilterRepository) Save(filter *UserFilter) error {
	if err := r.db.Save(filter).Error; err != nil {
		return fmt.Errorf("failed to save user filter: %w", err)
	}
	return nil
}

func (r *PostgresUserFilterRepository) Delete(id uint) error {
	if err := r.db.Delete(&UserFilter{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete user filter: %w", err)
	}
	return nil
}
