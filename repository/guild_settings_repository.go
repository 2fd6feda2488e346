package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"leveler/database"
	"leveler/domain/entities"
)

const guildSettingsColumns = `
	guild_id, leveling_notification_active, leveling_notification_channel_id,
	leveling_notification_template, leveling_cooldown_ms,
	leveling_min_xp_text, leveling_max_xp_text,
	leveling_min_xp_voice, leveling_max_xp_voice,
	booster_reference_role_id, auto_role_user_role_id, auto_role_bot_role_id`

// GuildSettingsRepository implements the GuildSettingsRepository interface
type GuildSettingsRepository struct {
	q Queryable
}

// NewGuildSettingsRepository creates a new guild settings repository
func NewGuildSettingsRepository(db *database.DB) *GuildSettingsRepository {
	return &GuildSettingsRepository{q: db.Pool}
}

// NewGuildSettingsRepositoryWithTx creates a new guild settings repository with a transaction
func NewGuildSettingsRepositoryWithTx(tx Queryable) *GuildSettingsRepository {
	return &GuildSettingsRepository{q: tx}
}

func scanGuildSettings(row pgx.Row) (*entities.GuildSettings, error) {
	var settings entities.GuildSettings
	err := row.Scan(
		&settings.GuildID,
		&settings.NotificationActive,
		&settings.NotificationChannelID,
		&settings.NotificationTemplate,
		&settings.CooldownMs,
		&settings.MinXPText,
		&settings.MaxXPText,
		&settings.MinXPVoice,
		&settings.MaxXPVoice,
		&settings.BoosterReferenceRoleID,
		&settings.AutoRoleUserRoleID,
		&settings.AutoRoleBotRoleID,
	)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetGuildSettings retrieves guild settings, or nil if the guild has none
func (r *GuildSettingsRepository) GetGuildSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	query := fmt.Sprintf(`SELECT %s FROM guild_settings WHERE guild_id = $1`, guildSettingsColumns)

	settings, err := scanGuildSettings(r.q.QueryRow(ctx, query, guildID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings for guild %d: %w", guildID, err)
	}

	return settings, nil
}

// GetOrCreateGuildSettings retrieves guild settings or creates default ones if not found
func (r *GuildSettingsRepository) GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	settings, err := r.GetGuildSettings(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO guild_settings (guild_id)
		VALUES ($1)
		ON CONFLICT (guild_id) DO UPDATE SET guild_id = EXCLUDED.guild_id
		RETURNING %s`, guildSettingsColumns)

	settings, err = scanGuildSettings(r.q.QueryRow(ctx, insertQuery, guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to create guild settings for guild %d: %w", guildID, err)
	}

	return settings, nil
}

// UpdateGuildSettings updates guild settings
func (r *GuildSettingsRepository) UpdateGuildSettings(ctx context.Context, settings *entities.GuildSettings) error {
	query := `
		UPDATE guild_settings
		SET leveling_notification_active = $2,
		    leveling_notification_channel_id = $3,
		    leveling_notification_template = $4,
		    leveling_cooldown_ms = $5,
		    leveling_min_xp_text = $6,
		    leveling_max_xp_text = $7,
		    leveling_min_xp_voice = $8,
		    leveling_max_xp_voice = $9,
		    booster_reference_role_id = $10,
		    auto_role_user_role_id = $11,
		    auto_role_bot_role_id = $12
		WHERE guild_id = $1
	`

	result, err := r.q.Exec(ctx, query,
		settings.GuildID,
		settings.NotificationActive,
		settings.NotificationChannelID,
		settings.NotificationTemplate,
		settings.CooldownMs,
		settings.MinXPText,
		settings.MaxXPText,
		settings.MinXPVoice,
		settings.MaxXPVoice,
		settings.BoosterReferenceRoleID,
		settings.AutoRoleUserRoleID,
		settings.AutoRoleBotRoleID,
	)

	if err != nil {
		return fmt.Errorf("failed to update guild settings for guild %d: %w", settings.GuildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild settings for guild %d not found", settings.GuildID)
	}

	return nil
}
