package interfaces

import (
	"context"

	"leveler/domain/entities"
)

// LevelingService orchestrates XP awards: eligibility, roll, channel modifier,
// booster multiplier, persistence and level-up side effects. Awards return a
// pending level-up instead of firing side effects themselves, so callers can
// announce only after their transaction commits.
type LevelingService interface {
	// AwardTextXP processes a text-message activity event. Cooldown-gated.
	// Returns the pending level-up when a boundary was crossed, else nil.
	AwardTextXP(ctx context.Context, guildID, userID, channelID int64, isBooster bool) (*entities.LevelUp, error)

	// AwardVoiceXP processes a completed voice interval of the given whole-minute
	// duration. A zero duration is a no-op. Returns the pending level-up when a
	// boundary was crossed, else nil.
	AwardVoiceXP(ctx context.Context, guildID, userID, channelID, durationMinutes int64, isBooster bool) (*entities.LevelUp, error)

	// AnnounceLevelUp fires the role grant and notification for a committed
	// level-up. Failures are logged and swallowed; nil is a no-op.
	AnnounceLevelUp(ctx context.Context, levelUp *entities.LevelUp)
}

// VoiceTracker maintains the open voice session per (guild, user) and converts
// closed intervals into voice XP awards
type VoiceTracker interface {
	// HandleVoiceState applies a voice-state change. Nil channel IDs mean
	// "not in a voice channel" on that side of the transition. The returned
	// level-up, if any, belongs to the interval closed by this change.
	HandleVoiceState(ctx context.Context, guildID, userID int64, oldChannelID, newChannelID *int64, isBooster bool) (*entities.LevelUp, error)
}

// GuildSettingsService manages per-guild leveling configuration
type GuildSettingsService interface {
	GetOrCreateSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error)
	UpdateNotification(ctx context.Context, guildID int64, active *bool, channelID *int64, template *string) error
	UpdateCooldown(ctx context.Context, guildID, cooldownMs int64) error
	UpdateTextXPRange(ctx context.Context, guildID, minXP, maxXP int64) error
	UpdateVoiceXPRange(ctx context.Context, guildID, minXP, maxXP int64) error
	UpdateAutoRoles(ctx context.Context, guildID int64, userRoleID, botRoleID *int64) error
	UpdateBoosterReferenceRole(ctx context.Context, guildID int64, roleID *int64) error
}

// AutoRoleService grants the configured join role to new members
type AutoRoleService interface {
	AssignJoinRole(ctx context.Context, guildID, userID int64, isBot bool) error
}

// BoosterService manages the personal custom role perk for boosting members
type BoosterService interface {
	// EnsureCustomRole creates or updates the member's custom role and returns
	// the record plus whether a new role was created
	EnsureCustomRole(ctx context.Context, guildID, userID int64, name string, color int) (*entities.BoosterRole, bool, error)

	// RemoveCustomRole deletes the member's custom role and its record
	RemoveCustomRole(ctx context.Context, guildID, userID int64) error
}

// MembershipGateway performs role operations against the chat platform.
// All methods may fail for platform reasons (missing permissions, deleted
// roles); callers decide whether that is fatal.
type MembershipGateway interface {
	GrantRole(ctx context.Context, guildID, userID, roleID int64) error
	RevokeRole(ctx context.Context, guildID, userID, roleID int64) error
	CreateRole(ctx context.Context, guildID int64, name string, color int) (int64, error)
	EditRole(ctx context.Context, guildID, roleID int64, name string, color int) error
	DeleteRole(ctx context.Context, guildID, roleID int64, reason string) error
	PositionRoleBelow(ctx context.Context, guildID, roleID, referenceRoleID int64) error
}

// MessagingGateway delivers plain messages to guild channels
type MessagingGateway interface {
	SendMessage(ctx context.Context, guildID, channelID int64, content string) error

	// SystemChannelID returns the guild's default system channel, or nil if
	// the guild has none
	SystemChannelID(ctx context.Context, guildID int64) (*int64, error)
}
