package resolver

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kisxel/ChatHelpBot/internal/platform"
)

const cacheSize = 10000

type cacheKey struct {
	ChatID   int64
	Username string
}

type cachedUser struct {
	ID   int64
	Name string
}

// UserCache maps (chat, lowercased username) to (user id, display name). It is
// populated opportunistically from every observed message, so @username
// arguments usually resolve without a platform round-trip.
type UserCache struct {
	entries *lru.Cache[cacheKey, cachedUser]
}

func NewUserCache() *UserCache {
	entries, _ := lru.New[cacheKey, cachedUser](cacheSize)
	return &UserCache{entries: entries}
}

func (c *UserCache) Put(chatID int64, username string, userID int64, name string) {
	username = strings.ToLower(strings.TrimPrefix(username, "@"))
	if username == "" {
		return
	}
	c.entries.Add(cacheKey{ChatID: chatID, Username: username}, cachedUser{ID: userID, Name: name})
}

func (c *UserCache) Get(chatID int64, username string) (int64, string, bool) {
	username = strings.ToLower(strings.TrimPrefix(username, "@"))
	entry, ok := c.entries.Get(cacheKey{ChatID: chatID, Username: username})
	if !ok {
		return 0, "", false
	}
	return entry.ID, entry.Name, true
}

// Observe caches the sender of a message. Senders without a public username
// cannot be targeted by @username and are skipped.
func (c *UserCache) Observe(chatID int64, user platform.User) {
	if user.Username == "" {
		return
	}
	c.Put(chatID, user.Username, user.ID, user.FullName)
}
