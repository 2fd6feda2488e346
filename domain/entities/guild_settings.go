package entities

// Defaults applied when a guild settings row is first created
const (
	DefaultNotificationTemplate = "{user}, you have reached level {level}!"
	DefaultCooldownMs           = 5000
	DefaultMinXPText            = 5
	DefaultMaxXPText            = 15
	DefaultMinXPVoice           = 1
	DefaultMaxXPVoice           = 5
)

// GuildSettings holds the per-guild leveling tunables plus the auto-role and
// booster perk configuration
type GuildSettings struct {
	GuildID                int64  `db:"guild_id"`
	NotificationActive     bool   `db:"leveling_notification_active"`
	NotificationChannelID  *int64 `db:"leveling_notification_channel_id"` // Nullable - falls back to the guild system channel
	NotificationTemplate   string `db:"leveling_notification_template"`
	CooldownMs             int64  `db:"leveling_cooldown_ms"`
	MinXPText              int64  `db:"leveling_min_xp_text"`
	MaxXPText              int64  `db:"leveling_max_xp_text"`
	MinXPVoice             int64  `db:"leveling_min_xp_voice"`
	MaxXPVoice             int64  `db:"leveling_max_xp_voice"`
	BoosterReferenceRoleID *int64 `db:"booster_reference_role_id"` // Nullable - booster roles are positioned below this role
	AutoRoleUserRoleID     *int64 `db:"auto_role_user_role_id"`    // Nullable - role granted to joining users
	AutoRoleBotRoleID      *int64 `db:"auto_role_bot_role_id"`     // Nullable - role granted to joining bots
}

// NewGuildSettings creates guild settings with default values
func NewGuildSettings(guildID int64) *GuildSettings {
	return &GuildSettings{
		GuildID:              guildID,
		NotificationActive:   true,
		NotificationTemplate: DefaultNotificationTemplate,
		CooldownMs:           DefaultCooldownMs,
		MinXPText:            DefaultMinXPText,
		MaxXPText:            DefaultMaxXPText,
		MinXPVoice:           DefaultMinXPVoice,
		MaxXPVoice:           DefaultMaxXPVoice,
	}
}

// HasNotificationChannel checks if a notification channel is configured
func (gs *GuildSettings) HasNotificationChannel() bool {
	return gs.NotificationChannelID != nil && *gs.NotificationChannelID > 0
}

// SetNotificationChannel sets the notification channel ID
func (gs *GuildSettings) SetNotificationChannel(channelID *int64) {
	gs.NotificationChannelID = channelID
}

// SetAutoRoles sets the user and bot auto-role IDs
func (gs *GuildSettings) SetAutoRoles(userRoleID, botRoleID *int64) {
	gs.AutoRoleUserRoleID = userRoleID
	gs.AutoRoleBotRoleID = botRoleID
}
