package entities

// LevelUp is a pending level-up side effect. The award pipeline resolves the
// role mapping and notification settings while its transaction is open; the
// caller fires the platform calls only after the XP write is durable, so a
// failed commit never produces a spurious announcement.
type LevelUp struct {
	GuildID int64
	UserID  int64
	Level   int64

	// RoleID is the level role to grant, nil when no role is mapped
	RoleID *int64

	// Notify indicates the guild wants a notification message
	Notify bool
	// ChannelID is the configured notification channel; nil falls back to
	// the guild system channel at announce time
	ChannelID *int64
	// Message is the rendered notification content
	Message string
}
