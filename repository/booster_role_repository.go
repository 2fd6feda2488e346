package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"leveler/domain/entities"
	"leveler/domain/interfaces"
)

// BoosterRoleRepository implements the BoosterRoleRepository interface, scoped
// to a single guild
type BoosterRoleRepository struct {
	q       Queryable
	guildID int64
}

// NewBoosterRoleRepositoryScoped creates a new booster role repository with a
// transaction and guild scope
func NewBoosterRoleRepositoryScoped(tx Queryable, guildID int64) interfaces.BoosterRoleRepository {
	return &BoosterRoleRepository{
		q:       tx,
		guildID: guildID,
	}
}

// GetByUser retrieves the custom role record for a booster, or nil if none exists
func (r *BoosterRoleRepository) GetByUser(ctx context.Context, userID int64) (*entities.BoosterRole, error) {
	query := `
		SELECT id, guild_id, user_id, role_id
		FROM booster_roles
		WHERE guild_id = $1 AND user_id = $2
	`

	var boosterRole entities.BoosterRole
	err := r.q.QueryRow(ctx, query, r.guildID, userID).Scan(
		&boosterRole.ID,
		&boosterRole.GuildID,
		&boosterRole.UserID,
		&boosterRole.RoleID,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booster role for user %d: %w", userID, err)
	}

	return &boosterRole, nil
}

// Create records a newly created custom role for a booster
func (r *BoosterRoleRepository) Create(ctx context.Context, userID, roleID int64) (*entities.BoosterRole, error) {
	query := `
		INSERT INTO booster_roles (guild_id, user_id, role_id)
		VALUES ($1, $2, $3)
		RETURNING id, guild_id, user_id, role_id
	`

	var boosterRole entities.BoosterRole
	err := r.q.QueryRow(ctx, query, r.guildID, userID, roleID).Scan(
		&boosterRole.ID,
		&boosterRole.GuildID,
		&boosterRole.UserID,
		&boosterRole.RoleID,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create booster role for user %d: %w", userID, err)
	}

	return &boosterRole, nil
}

// UpdateRole points an existing record at a new role ID
func (r *BoosterRoleRepository) UpdateRole(ctx context.Context, id, roleID int64) error {
	query := `UPDATE booster_roles SET role_id = $2 WHERE id = $1`

	result, err := r.q.Exec(ctx, query, id, roleID)
	if err != nil {
		return fmt.Errorf("failed to update booster role %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booster role %d not found", id)
	}

	return nil
}

// Delete removes a booster role record by ID
func (r *BoosterRoleRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM booster_roles WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete booster role %d: %w", id, err)
	}

	return nil
}
