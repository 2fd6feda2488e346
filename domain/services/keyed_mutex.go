package services

import "sync"

// KeyedMutex serializes XP read-modify-write sequences per (guild, user) so
// that concurrent awards for the same member cannot lose an update. Other
// members proceed independently.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[cooldownKey]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates an empty keyed mutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[cooldownKey]*keyedLock),
	}
}

// Lock acquires the lock for the key, blocking while another holder exists
func (m *KeyedMutex) Lock(guildID, userID int64) {
	key := cooldownKey{guildID: guildID, userID: userID}

	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &keyedLock{}
		m.locks[key] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
}

// Unlock releases the lock for the key, dropping the entry once no
// goroutine holds or awaits it
func (m *KeyedMutex) Unlock(guildID, userID int64) {
	key := cooldownKey{guildID: guildID, userID: userID}

	m.mu.Lock()
	l := m.locks[key]
	l.refs--
	if l.refs == 0 {
		delete(m.locks, key)
	}
	m.mu.Unlock()

	l.mu.Unlock()
}
