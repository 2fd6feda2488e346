package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"leveler/domain/entities"
	"leveler/domain/interfaces"
)

// LevelRoleRepository implements the LevelRoleRepository interface, scoped to
// a single guild
type LevelRoleRepository struct {
	q       Queryable
	guildID int64
}

// NewLevelRoleRepositoryScoped creates a new level role repository with a
// transaction and guild scope
func NewLevelRoleRepositoryScoped(tx Queryable, guildID int64) interfaces.LevelRoleRepository {
	return &LevelRoleRepository{
		q:       tx,
		guildID: guildID,
	}
}

// GetByLevel retrieves the reward role for a level, or nil if none is mapped
func (r *LevelRoleRepository) GetByLevel(ctx context.Context, level int64) (*entities.LevelRole, error) {
	query := `
		SELECT id, guild_id, level, role_id
		FROM level_roles
		WHERE guild_id = $1 AND level = $2
	`

	var levelRole entities.LevelRole
	err := r.q.QueryRow(ctx, query, r.guildID, level).Scan(
		&levelRole.ID,
		&levelRole.GuildID,
		&levelRole.Level,
		&levelRole.RoleID,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get level role for level %d: %w", level, err)
	}

	return &levelRole, nil
}

// Upsert inserts or replaces the reward role mapping for a level
func (r *LevelRoleRepository) Upsert(ctx context.Context, levelRole *entities.LevelRole) error {
	query := `
		INSERT INTO level_roles (guild_id, level, role_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, level) DO UPDATE
		SET role_id = EXCLUDED.role_id
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		levelRole.Level,
		levelRole.RoleID,
	).Scan(&levelRole.ID)

	if err != nil {
		return fmt.Errorf("failed to upsert level role for level %d: %w", levelRole.Level, err)
	}

	levelRole.GuildID = r.guildID
	return nil
}

// DeleteByLevel removes the reward role mapping for a level
func (r *LevelRoleRepository) DeleteByLevel(ctx context.Context, level int64) error {
	query := `DELETE FROM level_roles WHERE guild_id = $1 AND level = $2`

	if _, err := r.q.Exec(ctx, query, r.guildID, level); err != nil {
		return fmt.Errorf("failed to delete level role for level %d: %w", level, err)
	}

	return nil
}

// List returns all reward role mappings for the current guild ordered by level
func (r *LevelRoleRepository) List(ctx context.Context) ([]*entities.LevelRole, error) {
	query := `
		SELECT id, guild_id, level, role_id
		FROM level_roles
		WHERE guild_id = $1
		ORDER BY level
	`

	rows, err := r.q.Query(ctx, query, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list level roles: %w", err)
	}
	defer rows.Close()

	var levelRoles []*entities.LevelRole
	for rows.Next() {
		var levelRole entities.LevelRole
		if err := rows.Scan(
			&levelRole.ID,
			&levelRole.GuildID,
			&levelRole.Level,
			&levelRole.RoleID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan level role: %w", err)
		}
		levelRoles = append(levelRoles, &levelRole)
	}

	return levelRoles, rows.Err()
}
