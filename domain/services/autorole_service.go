package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"leveler/domain/interfaces"
)

type autoRoleService struct {
	settingsRepo interfaces.GuildSettingsRepository
	membership   interfaces.MembershipGateway
}

// NewAutoRoleService creates a new auto-role service
func NewAutoRoleService(settingsRepo interfaces.GuildSettingsRepository, membership interfaces.MembershipGateway) interfaces.AutoRoleService {
	return &autoRoleService{
		settingsRepo: settingsRepo,
		membership:   membership,
	}
}

// AssignJoinRole grants the configured auto-role to a joining member.
// Grant failures are swallowed; only persistence failures propagate.
func (s *autoRoleService) AssignJoinRole(ctx context.Context, guildID, userID int64, isBot bool) error {
	settings, err := s.settingsRepo.GetGuildSettings(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild settings: %w", err)
	}
	if settings == nil {
		return nil
	}

	roleID := settings.AutoRoleUserRoleID
	if isBot {
		roleID = settings.AutoRoleBotRoleID
	}
	if roleID == nil {
		return nil
	}

	if err := s.membership.GrantRole(ctx, guildID, userID, *roleID); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id": guildID,
			"user_id":  userID,
			"role_id":  *roleID,
		}).Warn("Failed to grant auto-role")
	}

	return nil
}
