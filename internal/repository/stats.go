package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatsRepository interface {
	IncrementMessageCount(ctx context.Context, chatID int64) error
	CountSince(ctx context.Context, chatID int64, days int) (int64, error)
}

type PostgresStatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &PostgresStatsRepository{db: db}
}

// IncrementMessageCount upserts today's counter row for the chat.
func (r *PostgresStatsRepository) IncrementMessageCount(ctx context.Context, chatID int64) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "chat_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"message_count": clause.Expr{SQL: "message_stats.message_count + 1"},
		}),
	}).Create(&MessageStats{
		ChatID:       chatID,
		Date:         today,
		MessageCount: 1,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to increment message count: %w", err)
	}
	return nil
}

// CountSince sums the daily counters over the trailing N days, today included.
func (r *PostgresStatsRepository) CountSince(ctx context.Context, chatID int64, days int) (int64, error) {
	cutoff := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(days - 1))
	var total int64
	err := r.db.WithContext(ctx).Model(&MessageStats{}).
		Where("chat_id = ? AND date >= ?", chatID, cutoff).
		Select("COALESCE(SUM(message_count), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum message stats: %w", err)
	}
	return total, nil
}
