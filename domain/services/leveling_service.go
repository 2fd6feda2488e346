package services

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"leveler/domain/entities"
	"leveler/domain/interfaces"
)

type xpKind int

const (
	xpText xpKind = iota
	xpVoice
)

type levelingService struct {
	settingsRepo       interfaces.GuildSettingsRepository
	specialChannelRepo interfaces.SpecialChannelRepository
	userLevelRepo      interfaces.UserLevelRepository
	levelRoleRepo      interfaces.LevelRoleRepository
	gate               *CooldownGate
	locks              *KeyedMutex
	membership         interfaces.MembershipGateway
	messaging          interfaces.MessagingGateway
}

// NewLevelingService creates a new leveling service. The cooldown gate and
// keyed mutex are process-lifetime state shared across events; everything
// else is scoped to the current unit of work.
func NewLevelingService(
	settingsRepo interfaces.GuildSettingsRepository,
	specialChannelRepo interfaces.SpecialChannelRepository,
	userLevelRepo interfaces.UserLevelRepository,
	levelRoleRepo interfaces.LevelRoleRepository,
	gate *CooldownGate,
	locks *KeyedMutex,
	membership interfaces.MembershipGateway,
	messaging interfaces.MessagingGateway,
) interfaces.LevelingService {
	return &levelingService{
		settingsRepo:       settingsRepo,
		specialChannelRepo: specialChannelRepo,
		userLevelRepo:      userLevelRepo,
		levelRoleRepo:      levelRoleRepo,
		gate:               gate,
		locks:              locks,
		membership:         membership,
		messaging:          messaging,
	}
}

// AwardTextXP processes a text-message activity event
func (s *levelingService) AwardTextXP(ctx context.Context, guildID, userID, channelID int64, isBooster bool) (*entities.LevelUp, error) {
	settings, err := s.settingsRepo.GetGuildSettings(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings: %w", err)
	}
	if settings == nil {
		// Leveling not initialized for this guild
		return nil, nil
	}

	if !s.gate.CanGainXP(guildID, userID, settings.CooldownMs) {
		return nil, nil
	}

	baseXP := rollRange(settings.MinXPText, settings.MaxXPText)
	return s.award(ctx, settings, guildID, userID, channelID, xpText, baseXP, isBooster)
}

// AwardVoiceXP processes a completed voice interval
func (s *levelingService) AwardVoiceXP(ctx context.Context, guildID, userID, channelID, durationMinutes int64, isBooster bool) (*entities.LevelUp, error) {
	if durationMinutes <= 0 {
		// Sub-minute intervals grant nothing
		return nil, nil
	}

	settings, err := s.settingsRepo.GetGuildSettings(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings: %w", err)
	}
	if settings == nil {
		return nil, nil
	}

	baseXP := rollRange(durationMinutes*settings.MinXPVoice, durationMinutes*settings.MaxXPVoice)
	return s.award(ctx, settings, guildID, userID, channelID, xpVoice, baseXP, isBooster)
}

// award applies the channel override and booster multiplier, persists the
// grant and resolves a pending level-up when a boundary is crossed. Side
// effects are not fired here; the caller announces after its transaction
// commits, so an award that cannot be persisted is never reported.
func (s *levelingService) award(ctx context.Context, settings *entities.GuildSettings, guildID, userID, channelID int64, kind xpKind, xp int64, isBooster bool) (*entities.LevelUp, error) {
	special, err := s.specialChannelRepo.GetByChannel(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get special channel config: %w", err)
	}
	if special != nil {
		if special.Blacklisted {
			return nil, nil
		}
		xp = special.ApplyModifier(xp)
	}

	if isBooster {
		// 1.1x, truncated toward zero
		xp = xp * 11 / 10
	}

	s.locks.Lock(guildID, userID)
	defer s.locks.Unlock(guildID, userID)

	userLevel, err := s.userLevelRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user level: %w", err)
	}
	if userLevel == nil {
		userLevel = &entities.UserLevel{GuildID: guildID, UserID: userID}
	}

	previousLevel := userLevel.Level
	switch kind {
	case xpText:
		userLevel.TextXP += xp
	case xpVoice:
		userLevel.VoiceXP += xp
	}
	userLevel.Level = LevelFromXP(userLevel.TotalXP())

	if err := s.userLevelRepo.Upsert(ctx, userLevel); err != nil {
		return nil, fmt.Errorf("failed to persist user level: %w", err)
	}

	if userLevel.Level > previousLevel {
		return s.buildLevelUp(ctx, settings, guildID, userID, userLevel.Level), nil
	}

	return nil, nil
}

// buildLevelUp resolves the role mapping and notification content for a
// crossed boundary while the transaction is still open, so announcing later
// needs no repository access
func (s *levelingService) buildLevelUp(ctx context.Context, settings *entities.GuildSettings, guildID, userID, newLevel int64) *entities.LevelUp {
	levelUp := &entities.LevelUp{
		GuildID: guildID,
		UserID:  userID,
		Level:   newLevel,
	}

	levelRole, err := s.levelRoleRepo.GetByLevel(ctx, newLevel)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id": guildID,
			"level":    newLevel,
		}).Warn("Failed to look up level role")
	} else if levelRole != nil {
		levelUp.RoleID = &levelRole.RoleID
	}

	if settings.NotificationActive {
		levelUp.Notify = true
		levelUp.ChannelID = settings.NotificationChannelID
		levelUp.Message = renderLevelUpMessage(settings.NotificationTemplate, userID, newLevel)
	}

	return levelUp
}

// AnnounceLevelUp grants the mapped role and posts the notification for a
// committed level-up. Downstream failures never unwind the persisted XP
// update; they are logged and swallowed.
func (s *levelingService) AnnounceLevelUp(ctx context.Context, levelUp *entities.LevelUp) {
	if levelUp == nil {
		return
	}

	if levelUp.RoleID != nil {
		if err := s.membership.GrantRole(ctx, levelUp.GuildID, levelUp.UserID, *levelUp.RoleID); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"guild_id": levelUp.GuildID,
				"user_id":  levelUp.UserID,
				"role_id":  *levelUp.RoleID,
			}).Warn("Failed to grant level role")
		}
	}

	if !levelUp.Notify {
		return
	}

	channelID := levelUp.ChannelID
	if channelID == nil {
		var err error
		channelID, err = s.messaging.SystemChannelID(ctx, levelUp.GuildID)
		if err != nil || channelID == nil {
			return
		}
	}

	if err := s.messaging.SendMessage(ctx, levelUp.GuildID, *channelID, levelUp.Message); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id":   levelUp.GuildID,
			"channel_id": *channelID,
		}).Warn("Failed to send level-up notification")
	}
}

// renderLevelUpMessage substitutes the {user} and {level} placeholders
func renderLevelUpMessage(template string, userID, level int64) string {
	content := strings.ReplaceAll(template, "{user}", fmt.Sprintf("<@%d>", userID))
	return strings.ReplaceAll(content, "{level}", strconv.FormatInt(level, 10))
}

// rollRange returns a uniformly random integer in [min, max] inclusive.
// A max below min collapses the range to min rather than failing.
func rollRange(min, max int64) int64 {
	if max < min {
		max = min
	}
	if min == max {
		return min
	}
	return min + rand.Int63n(max-min+1)
}
