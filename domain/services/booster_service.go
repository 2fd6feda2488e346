package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"leveler/domain/entities"
	"leveler/domain/interfaces"
)

type boosterService struct {
	boosterRoleRepo interfaces.BoosterRoleRepository
	settingsRepo    interfaces.GuildSettingsRepository
	membership      interfaces.MembershipGateway
}

// NewBoosterService creates a new booster service
func NewBoosterService(
	boosterRoleRepo interfaces.BoosterRoleRepository,
	settingsRepo interfaces.GuildSettingsRepository,
	membership interfaces.MembershipGateway,
) interfaces.BoosterService {
	return &boosterService{
		boosterRoleRepo: boosterRoleRepo,
		settingsRepo:    settingsRepo,
		membership:      membership,
	}
}

// EnsureCustomRole creates or updates the member's personal role. If the
// recorded role was deleted out from under us, a replacement is created and
// the record repointed.
func (s *boosterService) EnsureCustomRole(ctx context.Context, guildID, userID int64, name string, color int) (*entities.BoosterRole, bool, error) {
	record, err := s.boosterRoleRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get booster role record: %w", err)
	}

	isNew := false

	if record != nil {
		if err := s.membership.EditRole(ctx, guildID, record.RoleID, name, color); err != nil {
			// Role likely deleted on the platform side; recreate it
			roleID, createErr := s.membership.CreateRole(ctx, guildID, name, color)
			if createErr != nil {
				return nil, false, fmt.Errorf("failed to recreate booster role: %w", createErr)
			}
			if err := s.boosterRoleRepo.UpdateRole(ctx, record.ID, roleID); err != nil {
				return nil, false, fmt.Errorf("failed to update booster role record: %w", err)
			}
			record.RoleID = roleID
			isNew = true
		}
	} else {
		roleID, err := s.membership.CreateRole(ctx, guildID, name, color)
		if err != nil {
			return nil, false, fmt.Errorf("failed to create booster role: %w", err)
		}
		record, err = s.boosterRoleRepo.Create(ctx, userID, roleID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to record booster role: %w", err)
		}
		isNew = true
	}

	s.positionRole(ctx, guildID, record.RoleID)

	if err := s.membership.GrantRole(ctx, guildID, userID, record.RoleID); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id": guildID,
			"user_id":  userID,
			"role_id":  record.RoleID,
		}).Warn("Failed to grant booster role")
	}

	return record, isNew, nil
}

// RemoveCustomRole deletes the member's custom role and its record.
// Called when a boost ends; platform-side failures are swallowed so the
// record is always cleaned up.
func (s *boosterService) RemoveCustomRole(ctx context.Context, guildID, userID int64) error {
	record, err := s.boosterRoleRepo.GetByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get booster role record: %w", err)
	}
	if record == nil {
		return nil
	}

	if err := s.membership.RevokeRole(ctx, guildID, userID, record.RoleID); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id": guildID,
			"user_id":  userID,
			"role_id":  record.RoleID,
		}).Warn("Failed to revoke booster role")
	}
	if err := s.membership.DeleteRole(ctx, guildID, record.RoleID, "User stopped boosting"); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id": guildID,
			"role_id":  record.RoleID,
		}).Warn("Failed to delete booster role")
	}

	if err := s.boosterRoleRepo.Delete(ctx, record.ID); err != nil {
		return fmt.Errorf("failed to delete booster role record: %w", err)
	}

	return nil
}

// positionRole moves the custom role below the configured reference role.
// Best effort only.
func (s *boosterService) positionRole(ctx context.Context, guildID, roleID int64) {
	settings, err := s.settingsRepo.GetGuildSettings(ctx, guildID)
	if err != nil || settings == nil || settings.BoosterReferenceRoleID == nil {
		return
	}

	if err := s.membership.PositionRoleBelow(ctx, guildID, roleID, *settings.BoosterReferenceRoleID); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id": guildID,
			"role_id":  roleID,
		}).Warn("Failed to position booster role")
	}
}
