// Package antispam implements the per-(chat,user) sliding-window flood
// detector and the mute cooldown that keeps a single spam burst from
// triggering repeated restrict calls.
package antispam

import (
	"sync"
	"time"
)

const (
	// DefaultWindow is the trailing span over which arrivals are counted.
	DefaultWindow = 3 * time.Second
	// DefaultThreshold is the arrival count above which a burst is spam.
	DefaultThreshold = 4
	// DefaultMuteDuration is the length of an automatic spam mute.
	DefaultMuteDuration = 5 * time.Minute
	// DefaultMuteCooldown suppresses repeated mutes for the same burst.
	DefaultMuteCooldown = 10 * time.Second
)

type key struct {
	ChatID int64
	UserID int64
}

type arrival struct {
	at        time.Time
	messageID int
}

// Tracker owns the window lists and the cooldown map. All methods are safe
// for concurrent use; entries for different (chat,user) keys never interact.
type Tracker struct {
	mu        sync.Mutex
	window    time.Duration
	threshold int
	cooldown  time.Duration
	arrivals  map[key][]arrival
	lastMute  map[key]time.Time
}

func NewTracker(window time.Duration, threshold int, cooldown time.Duration) *Tracker {
	return &Tracker{
		window:    window,
		threshold: threshold,
		cooldown:  cooldown,
		arrivals:  make(map[key][]arrival),
		lastMute:  make(map[key]time.Time),
	}
}

func NewDefaultTracker() *Tracker {
	return NewTracker(DefaultWindow, DefaultThreshold, DefaultMuteCooldown)
}

// Observe records one message arrival. When the pruned window grows past the
// threshold it returns every tracked message id (for retroactive deletion)
// and clears the window; otherwise it returns nil.
func (t *Tracker) Observe(chatID, userID int64, messageID int, now time.Time) []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	k := key{ChatID: chatID, UserID: userID}
	cutoff := now.Add(-t.window)

	kept := t.arrivals[k][:0]
	for _, a := range t.arrivals[k] {
		if a.at.After(cutoff) {
			kept = append(kept, a)
		}
	}
	kept = append(kept, arrival{at: now, messageID: messageID})

	if len(kept) > t.threshold {
		ids := make([]int, len(kept))
		for i, a := range kept {
			ids[i] = a.messageID
		}
		delete(t.arrivals, k)
		return ids
	}

	t.arrivals[k] = kept
	return nil
}

// MuteAllowed reports whether an automatic mute may fire for this user now.
// When allowed it records now as the last mute time, starting the cooldown.
func (t *Tracker) MuteAllowed(chatID, userID int64, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	k := key{ChatID: chatID, UserID: userID}
	if last, ok := t.lastMute[k]; ok && now.Sub(last) < t.cooldown {
		return false
	}
	t.lastMute[k] = now
	return true
}
