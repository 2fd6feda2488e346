package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"leveler/domain/entities"
	"leveler/domain/interfaces"
)

// UserLevelRepository implements the UserLevelRepository interface,
// scoped to a single guild
type UserLevelRepository struct {
	q       Queryable
	guildID int64
}

// NewUserLevelRepositoryScoped creates a new user level repository with a
// transaction and guild scope
func NewUserLevelRepositoryScoped(tx Queryable, guildID int64) interfaces.UserLevelRepository {
	return &UserLevelRepository{
		q:       tx,
		guildID: guildID,
	}
}

// GetByUser retrieves the level row for a user in the current guild
func (r *UserLevelRepository) GetByUser(ctx context.Context, userID int64) (*entities.UserLevel, error) {
	query := `
		SELECT id, guild_id, user_id, text_xp, voice_xp, level
		FROM user_levels
		WHERE guild_id = $1 AND user_id = $2
	`

	var userLevel entities.UserLevel
	err := r.q.QueryRow(ctx, query, r.guildID, userID).Scan(
		&userLevel.ID,
		&userLevel.GuildID,
		&userLevel.UserID,
		&userLevel.TextXP,
		&userLevel.VoiceXP,
		&userLevel.Level,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user level for user %d: %w", userID, err)
	}

	return &userLevel, nil
}

// Upsert inserts or updates the level row for (guild, user) as a single write
func (r *UserLevelRepository) Upsert(ctx context.Context, userLevel *entities.UserLevel) error {
	query := `
		INSERT INTO user_levels (guild_id, user_id, text_xp, voice_xp, level)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (guild_id, user_id) DO UPDATE
		SET text_xp = EXCLUDED.text_xp,
		    voice_xp = EXCLUDED.voice_xp,
		    level = EXCLUDED.level
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		userLevel.UserID,
		userLevel.TextXP,
		userLevel.VoiceXP,
		userLevel.Level,
	).Scan(&userLevel.ID)

	if err != nil {
		return fmt.Errorf("failed to upsert user level for user %d: %w", userLevel.UserID, err)
	}

	userLevel.GuildID = r.guildID
	return nil
}

// GetTopUsers returns the highest-ranked rows by total XP in the current guild
func (r *UserLevelRepository) GetTopUsers(ctx context.Context, limit int) ([]*entities.UserLevel, error) {
	query := `
		SELECT id, guild_id, user_id, text_xp, voice_xp, level
		FROM user_levels
		WHERE guild_id = $1
		ORDER BY text_xp + voice_xp DESC, user_id
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, r.guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top users: %w", err)
	}
	defer rows.Close()

	var userLevels []*entities.UserLevel
	for rows.Next() {
		var userLevel entities.UserLevel
		if err := rows.Scan(
			&userLevel.ID,
			&userLevel.GuildID,
			&userLevel.UserID,
			&userLevel.TextXP,
			&userLevel.VoiceXP,
			&userLevel.Level,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user level: %w", err)
		}
		userLevels = append(userLevels, &userLevel)
	}

	return userLevels, rows.Err()
}

// GetRank returns the 1-based position of a user by total XP in the current guild
func (r *UserLevelRepository) GetRank(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT COUNT(*) + 1
		FROM user_levels
		WHERE guild_id = $1
		  AND text_xp + voice_xp > (
			SELECT text_xp + voice_xp FROM user_levels
			WHERE guild_id = $1 AND user_id = $2
		  )
	`

	var rank int64
	err := r.q.QueryRow(ctx, query, r.guildID, userID).Scan(&rank)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get rank for user %d: %w", userID, err)
	}

	return rank, nil
}
