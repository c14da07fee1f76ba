package repository

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
)

type BannedWordRepository interface {
	List() ([]string, error)
	Add(word string) error
	Remove(word string) error
}

// PostgresBannedWordRepository caches the word list briefly: the banned-word
// filter reads it on every message and the list changes rarely.
type PostgresBannedWordRepository struct {
	db        *gorm.DB
	mu        sync.Mutex
	cached    []string
	expiresAt time.Time
}

const bannedWordsTTL = time.Minute

func NewBannedWordRepository(db *gorm.DB) BannedWordRepository {
	return &PostgresBannedWordRepository{db: db}
}

func (r *PostgresBannedWordRepository) List() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil && time.Now().Before(r.expiresAt) {
		return r.cached, nil
	}
	var words []string
	if err := r.db.Model(&BannedWord{}).Order("word ASC").Pluck("word", &words).Error; err != nil {
		return nil, fmt.Errorf("failed to list banned words: %w", err)
	}
	r.cached = words
	r.expiresAt = time.Now().Add(bannedWordsTTL)
	return words, nil
}

func (r *PostgresBannedWordRepository) Add(word string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil
	}
	if err := r.db.Where(BannedWord{Word: word}).FirstOrCreate(&BannedWord{Word: word}).Error; err != nil {
		return fmt.Errorf("failed to add banned word: %w", err)
	}
	r.invalidate()
	return nil
}

func (r *PostgresBannedWordRepository) Remove(word string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if err := r.db.Delete(&BannedWord{}, "word = ?", word).Error; err != nil {
		return fmt.Errorf("failed to remove banned word: %w", err)
	}
	r.invalidate()
	return nil
}

func (r *PostgresBannedWordRepository) invalidate() {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
}
