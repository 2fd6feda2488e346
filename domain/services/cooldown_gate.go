package services

import (
	"sync"
	"time"
)

type cooldownKey struct {
	guildID int64
	userID  int64
}

// CooldownGate rate-limits text XP grants per (guild, user). State is
// in-memory and process-lifetime: after a restart every member is
// immediately eligible again.
type CooldownGate struct {
	mu         sync.Mutex
	lastGrants map[cooldownKey]time.Time
	now        func() time.Time
}

// NewCooldownGate creates an empty gate
func NewCooldownGate() *CooldownGate {
	return &CooldownGate{
		lastGrants: make(map[cooldownKey]time.Time),
		now:        time.Now,
	}
}

// CanGainXP reports whether the user is eligible for a new text XP grant.
// When it returns true it atomically records the grant time, so two
// concurrent calls for the same key can never both pass.
func (g *CooldownGate) CanGainXP(guildID, userID, cooldownMs int64) bool {
	key := cooldownKey{guildID: guildID, userID: userID}
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	if last, ok := g.lastGrants[key]; ok {
		if now.Sub(last) < time.Duration(cooldownMs)*time.Millisecond {
			return false
		}
	}

	g.lastGrants[key] = now
	return true
}
