package services

import (
	"context"
	"fmt"

	"leveler/domain/entities"
	"leveler/domain/interfaces"
)

// guildSettingsService implements the GuildSettingsService interface
type guildSettingsService struct {
	settingsRepo interfaces.GuildSettingsRepository
}

// NewGuildSettingsService creates a new guild settings service
func NewGuildSettingsService(settingsRepo interfaces.GuildSettingsRepository) interfaces.GuildSettingsService {
	return &guildSettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetOrCreateSettings retrieves guild settings or creates default ones if not found
func (s *guildSettingsService) GetOrCreateSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	settings, err := s.settingsRepo.GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create guild settings: %w", err)
	}

	return settings, nil
}

// UpdateNotification updates the level-up notification settings. Nil fields
// are left unchanged, except channelID which clears the override when nil.
func (s *guildSettingsService) UpdateNotification(ctx context.Context, guildID int64, active *bool, channelID *int64, template *string) error {
	settings, err := s.settingsRepo.GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild settings: %w", err)
	}

	if active != nil {
		settings.NotificationActive = *active
	}
	settings.SetNotificationChannel(channelID)
	if template != nil {
		settings.NotificationTemplate = *template
	}

	if err := s.settingsRepo.UpdateGuildSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to update guild settings: %w", err)
	}

	return nil
}

// UpdateCooldown updates the text XP cooldown for a guild
func (s *guildSettingsService) UpdateCooldown(ctx context.Context, guildID, cooldownMs int64) error {
	if cooldownMs < 0 {
		return fmt.Errorf("cooldown must be non-negative")
	}

	settings, err := s.settingsRepo.GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild settings: %w", err)
	}

	settings.CooldownMs = cooldownMs

	if err := s.settingsRepo.UpdateGuildSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to update guild settings: %w", err)
	}

	return nil
}

// UpdateTextXPRange updates the text XP range for a guild
func (s *guildSettingsService) UpdateTextXPRange(ctx context.Context, guildID, minXP, maxXP int64) error {
	if err := validateXPRange(minXP, maxXP); err != nil {
		return err
	}

	settings, err := s.settingsRepo.GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild settings: %w", err)
	}

	settings.MinXPText = minXP
	settings.MaxXPText = maxXP

	if err := s.settingsRepo.UpdateGuildSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to update guild settings: %w", err)
	}

	return nil
}

// UpdateVoiceXPRange updates the per-minute voice XP range for a guild
func (s *guildSettingsService) UpdateVoiceXPRange(ctx context.Context, guildID, minXP, maxXP int64) error {
	if err := validateXPRange(minXP, maxXP); err != nil {
		return err
	}

	settings, err := s.settingsRepo.GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild settings: %w", err)
	}

	settings.MinXPVoice = minXP
	settings.MaxXPVoice = maxXP

	if err := s.settingsRepo.UpdateGuildSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to update guild settings: %w", err)
	}

	return nil
}

// UpdateAutoRoles updates the roles granted to joining users and bots
func (s *guildSettingsService) UpdateAutoRoles(ctx context.Context, guildID int64, userRoleID, botRoleID *int64) error {
	settings, err := s.settingsRepo.GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild settings: %w", err)
	}

	settings.SetAutoRoles(userRoleID, botRoleID)

	if err := s.settingsRepo.UpdateGuildSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to update guild settings: %w", err)
	}

	return nil
}

// UpdateBoosterReferenceRole updates the role booster custom roles are positioned below
func (s *guildSettingsService) UpdateBoosterReferenceRole(ctx context.Context, guildID int64, roleID *int64) error {
	settings, err := s.settingsRepo.GetOrCreateGuildSettings(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild settings: %w", err)
	}

	settings.BoosterReferenceRoleID = roleID

	if err := s.settingsRepo.UpdateGuildSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to update guild settings: %w", err)
	}

	return nil
}

func validateXPRange(minXP, maxXP int64) error {
	if minXP < 0 {
		return fmt.Errorf("minimum XP must be non-negative")
	}
	if maxXP < minXP {
		return fmt.Errorf("maximum XP must not be below the minimum")
	}
	return nil
}
