package interfaces

import "context"

// UnitOfWork provides transactional access to guild-scoped repositories.
// All repository operations within a unit of work share a single database
// transaction.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction. Safe to call after Commit.
	Rollback() error

	GuildSettingsRepository() GuildSettingsRepository
	UserLevelRepository() UserLevelRepository
	VoiceSessionRepository() VoiceSessionRepository
	SpecialChannelRepository() SpecialChannelRepository
	LevelRoleRepository() LevelRoleRepository
	BoosterRoleRepository() BoosterRoleRepository
}

// UnitOfWorkFactory creates units of work scoped to a guild
type UnitOfWorkFactory interface {
	CreateForGuild(guildID int64) UnitOfWork
}
