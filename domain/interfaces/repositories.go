package interfaces

import (
	"context"
	"time"

	"leveler/domain/entities"
)

// GuildSettingsRepository defines the interface for guild settings data access
type GuildSettingsRepository interface {
	// GetGuildSettings retrieves guild settings, or nil if the guild has none
	// (leveling not initialized)
	GetGuildSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error)

	// GetOrCreateGuildSettings retrieves guild settings or creates default ones if not found
	GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error)

	// UpdateGuildSettings updates guild settings
	UpdateGuildSettings(ctx context.Context, settings *entities.GuildSettings) error
}

// UserLevelRepository defines the interface for user level data access
type UserLevelRepository interface {
	// GetByUser retrieves the level row for a user, or nil if none exists yet
	GetByUser(ctx context.Context, userID int64) (*entities.UserLevel, error)

	// Upsert inserts or updates the level row for (guild, user), writing both
	// XP fields and the recomputed level as a single statement
	Upsert(ctx context.Context, userLevel *entities.UserLevel) error

	// GetTopUsers returns the highest-ranked rows by total XP
	GetTopUsers(ctx context.Context, limit int) ([]*entities.UserLevel, error)

	// GetRank returns the 1-based position of a user by total XP
	GetRank(ctx context.Context, userID int64) (int64, error)
}

// VoiceSessionRepository defines the interface for voice session data access
type VoiceSessionRepository interface {
	// GetByUser retrieves the open session for a user, or nil if none exists
	GetByUser(ctx context.Context, userID int64) (*entities.VoiceSession, error)

	// Create opens a new session for a user
	Create(ctx context.Context, userID, channelID int64, startTime time.Time) (*entities.VoiceSession, error)

	// Delete closes a session by ID
	Delete(ctx context.Context, sessionID int64) error
}

// SpecialChannelRepository defines the interface for special channel overrides
type SpecialChannelRepository interface {
	// GetByChannel retrieves the override for a channel, or nil if none exists
	GetByChannel(ctx context.Context, channelID int64) (*entities.SpecialChannel, error)

	// Upsert creates or replaces the override for a channel
	Upsert(ctx context.Context, channel *entities.SpecialChannel) error

	// DeleteByChannel removes the override for a channel
	DeleteByChannel(ctx context.Context, channelID int64) error

	// List returns all overrides for the guild
	List(ctx context.Context) ([]*entities.SpecialChannel, error)
}

// LevelRoleRepository defines the interface for level-role mappings
type LevelRoleRepository interface {
	// GetByLevel retrieves the role mapped to a level, or nil if none exists
	GetByLevel(ctx context.Context, level int64) (*entities.LevelRole, error)

	// Upsert creates or replaces the mapping for a level
	Upsert(ctx context.Context, levelRole *entities.LevelRole) error

	// DeleteByLevel removes the mapping for a level
	DeleteByLevel(ctx context.Context, level int64) error

	// List returns all mappings for the guild ordered by level
	List(ctx context.Context) ([]*entities.LevelRole, error)
}

// BoosterRoleRepository defines the interface for booster custom role records
type BoosterRoleRepository interface {
	// GetByUser retrieves the custom role record for a user, or nil if none exists
	GetByUser(ctx context.Context, userID int64) (*entities.BoosterRole, error)

	// Create records a newly created custom role
	Create(ctx context.Context, userID, roleID int64) (*entities.BoosterRole, error)

	// UpdateRole points an existing record at a replacement role
	UpdateRole(ctx context.Context, id, roleID int64) error

	// Delete removes a custom role record
	Delete(ctx context.Context, id int64) error
}
