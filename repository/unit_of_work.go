package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"leveler/database"
	"leveler/domain/interfaces"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db                 *database.DB
	tx                 pgx.Tx
	ctx                context.Context
	guildID            int64
	guildSettingsRepo  interfaces.GuildSettingsRepository
	userLevelRepo      interfaces.UserLevelRepository
	voiceSessionRepo   interfaces.VoiceSessionRepository
	specialChannelRepo interfaces.SpecialChannelRepository
	levelRoleRepo      interfaces.LevelRoleRepository
	boosterRoleRepo    interfaces.BoosterRoleRepository
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db: db,
	}
}

// CreateForGuild creates a new UnitOfWork scoped to the given guild
func (f *unitOfWorkFactory) CreateForGuild(guildID int64) interfaces.UnitOfWork {
	return &unitOfWork{
		db:      f.db,
		guildID: guildID,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create guild-scoped repositories with the transaction
	u.guildSettingsRepo = NewGuildSettingsRepositoryWithTx(tx) // Guild settings don't need scoping
	u.userLevelRepo = NewUserLevelRepositoryScoped(tx, u.guildID)
	u.voiceSessionRepo = NewVoiceSessionRepositoryScoped(tx, u.guildID)
	u.specialChannelRepo = NewSpecialChannelRepositoryScoped(tx, u.guildID)
	u.levelRoleRepo = NewLevelRoleRepositoryScoped(tx, u.guildID)
	u.boosterRoleRepo = NewBoosterRoleRepositoryScoped(tx, u.guildID)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// GuildSettingsRepository returns the guild settings repository for this unit of work
func (u *unitOfWork) GuildSettingsRepository() interfaces.GuildSettingsRepository {
	if u.guildSettingsRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.guildSettingsRepo
}

// UserLevelRepository returns the user level repository for this unit of work
func (u *unitOfWork) UserLevelRepository() interfaces.UserLevelRepository {
	if u.userLevelRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userLevelRepo
}

// VoiceSessionRepository returns the voice session repository for this unit of work
func (u *unitOfWork) VoiceSessionRepository() interfaces.VoiceSessionRepository {
	if u.voiceSessionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.voiceSessionRepo
}

// SpecialChannelRepository returns the special channel repository for this unit of work
func (u *unitOfWork) SpecialChannelRepository() interfaces.SpecialChannelRepository {
	if u.specialChannelRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.specialChannelRepo
}

// LevelRoleRepository returns the level role repository for this unit of work
func (u *unitOfWork) LevelRoleRepository() interfaces.LevelRoleRepository {
	if u.levelRoleRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.levelRoleRepo
}

// BoosterRoleRepository returns the booster role repository for this unit of work
func (u *unitOfWork) BoosterRoleRepository() interfaces.BoosterRoleRepository {
	if u.boosterRoleRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.boosterRoleRepo
}
