package settings

import (
	"context"
	"fmt"

	"leveler/bot/common"
	"leveler/domain/entities"
	"leveler/domain/interfaces"
	"leveler/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// requireAdminGuild performs the admin permission check shared by all
// settings handlers and returns the parsed guild ID
func requireAdminGuild(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, bool) {
	if !common.IsUserAdmin(s, i.GuildID, i.Member.User.ID) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command")
		return 0, false
	}

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return 0, false
	}

	return guildID, true
}

// withSettingsUow runs fn inside a guild-scoped transaction and responds with
// a generic failure message if any step errors
func (f *Feature) withSettingsUow(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, fn func(ctx context.Context, uow interfaces.UnitOfWork) error) bool {
	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to update settings")
		return false
	}
	defer uow.Rollback()

	if err := fn(ctx, uow); err != nil {
		log.Errorf("Failed to update settings: %v", err)
		common.RespondWithError(s, i, "Failed to update settings")
		return false
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to update settings")
		return false
	}

	return true
}

// handleNotifications handles the /levelsettings notifications command
func (f *Feature) handleNotifications(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireAdminGuild(s, i)
	if !ok {
		return
	}

	var active *bool
	var channelID *int64
	var template *string

	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "active":
			v := opt.BoolValue()
			active = &v
		case "channel":
			channelIDStr := opt.ChannelValue(s).ID
			if channelIDStr != "" {
				id, err := common.ParseSnowflake(channelIDStr)
				if err != nil {
					log.Errorf("Failed to parse channel ID: %v", err)
					common.RespondWithError(s, i, "Invalid channel selected")
					return
				}
				channelID = &id
			}
		case "template":
			v := opt.StringValue()
			template = &v
		}
	}

	ok = f.withSettingsUow(s, i, guildID, func(ctx context.Context, uow interfaces.UnitOfWork) error {
		return services.NewGuildSettingsService(uow.GuildSettingsRepository()).
			UpdateNotification(ctx, guildID, active, channelID, template)
	})
	if !ok {
		return
	}

	common.RespondWithSuccess(s, i, "Level-up notification settings updated")
}

// handleCooldown handles the /levelsettings cooldown command
func (f *Feature) handleCooldown(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireAdminGuild(s, i)
	if !ok {
		return
	}

	options := i.ApplicationCommandData().Options[0].Options
	if len(options) == 0 {
		return
	}
	cooldownMs := options[0].IntValue()

	ok = f.withSettingsUow(s, i, guildID, func(ctx context.Context, uow interfaces.UnitOfWork) error {
		return services.NewGuildSettingsService(uow.GuildSettingsRepository()).
			UpdateCooldown(ctx, guildID, cooldownMs)
	})
	if !ok {
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Text XP cooldown set to %dms", cooldownMs))
}

// handleTextXP handles the /levelsettings text-xp command
func (f *Feature) handleTextXP(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireAdminGuild(s, i)
	if !ok {
		return
	}

	var minXP, maxXP int64
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "min":
			minXP = opt.IntValue()
		case "max":
			maxXP = opt.IntValue()
		}
	}

	ok = f.withSettingsUow(s, i, guildID, func(ctx context.Context, uow interfaces.UnitOfWork) error {
		return services.NewGuildSettingsService(uow.GuildSettingsRepository()).
			UpdateTextXPRange(ctx, guildID, minXP, maxXP)
	})
	if !ok {
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Text XP range set to %d-%d per message", minXP, maxXP))
}

// handleVoiceXP handles the /levelsettings voice-xp command
func (f *Feature) handleVoiceXP(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireAdminGuild(s, i)
	if !ok {
		return
	}

	var minXP, maxXP int64
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "min":
			minXP = opt.IntValue()
		case "max":
			maxXP = opt.IntValue()
		}
	}

	ok = f.withSettingsUow(s, i, guildID, func(ctx context.Context, uow interfaces.UnitOfWork) error {
		return services.NewGuildSettingsService(uow.GuildSettingsRepository()).
			UpdateVoiceXPRange(ctx, guildID, minXP, maxXP)
	})
	if !ok {
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Voice XP range set to %d-%d per minute", minXP, maxXP))
}

// handleAutoRoles handles the /levelsettings auto-roles command
func (f *Feature) handleAutoRoles(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireAdminGuild(s, i)
	if !ok {
		return
	}

	var userRoleID, botRoleID *int64
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		roleIDStr := opt.RoleValue(s, "").ID
		if roleIDStr == "" {
			continue
		}
		id, err := common.ParseSnowflake(roleIDStr)
		if err != nil {
			log.Errorf("Failed to parse role ID: %v", err)
			common.RespondWithError(s, i, "Invalid role selected")
			return
		}
		switch opt.Name {
		case "user_role":
			userRoleID = &id
		case "bot_role":
			botRoleID = &id
		}
	}

	ok = f.withSettingsUow(s, i, guildID, func(ctx context.Context, uow interfaces.UnitOfWork) error {
		return services.NewGuildSettingsService(uow.GuildSettingsRepository()).
			UpdateAutoRoles(ctx, guildID, userRoleID, botRoleID)
	})
	if !ok {
		return
	}

	var message string
	switch {
	case userRoleID != nil && botRoleID != nil:
		message = fmt.Sprintf("Auto-roles set: <@&%d> for users, <@&%d> for bots", *userRoleID, *botRoleID)
	case userRoleID != nil:
		message = fmt.Sprintf("Auto-role for users set to <@&%d>", *userRoleID)
	case botRoleID != nil:
		message = fmt.Sprintf("Auto-role for bots set to <@&%d>", *botRoleID)
	default:
		message = "Auto-roles disabled"
	}
	common.RespondWithSuccess(s, i, message)
}

// handleBoosterRole handles the /levelsettings booster-role command
func (f *Feature) handleBoosterRole(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireAdminGuild(s, i)
	if !ok {
		return
	}

	var roleID *int64
	options := i.ApplicationCommandData().Options[0].Options
	if len(options) > 0 && options[0].Name == "role" {
		roleIDStr := options[0].RoleValue(s, "").ID
		if roleIDStr != "" {
			id, err := common.ParseSnowflake(roleIDStr)
			if err != nil {
				log.Errorf("Failed to parse role ID: %v", err)
				common.RespondWithError(s, i, "Invalid role selected")
				return
			}
			roleID = &id
		}
	}

	ok = f.withSettingsUow(s, i, guildID, func(ctx context.Context, uow interfaces.UnitOfWork) error {
		return services.NewGuildSettingsService(uow.GuildSettingsRepository()).
			UpdateBoosterReferenceRole(ctx, guildID, roleID)
	})
	if !ok {
		return
	}

	if roleID != nil {
		common.RespondWithSuccess(s, i, fmt.Sprintf("Booster roles will be positioned below <@&%d>", *roleID))
	} else {
		common.RespondWithSuccess(s, i, "Booster reference role disabled")
	}
}

// handleSpecialChannel handles the /levelsettings special-channel command
func (f *Feature) handleSpecialChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireAdminGuild(s, i)
	if !ok {
		return
	}

	var channelID int64
	blacklisted := false
	modifier := int64(entities.DefaultChannelModifier)

	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "channel":
			id, err := common.ParseSnowflake(opt.ChannelValue(s).ID)
			if err != nil {
				log.Errorf("Failed to parse channel ID: %v", err)
				common.RespondWithError(s, i, "Invalid channel selected")
				return
			}
			channelID = id
		case "blacklisted":
			blacklisted = opt.BoolValue()
		case "modifier":
			modifier = opt.IntValue()
		}
	}

	if modifier < 0 {
		common.RespondWithError(s, i, "Modifier must not be negative")
		return
	}

	ok = f.withSettingsUow(s, i, guildID, func(ctx context.Context, uow interfaces.UnitOfWork) error {
		return uow.SpecialChannelRepository().Upsert(ctx, &entities.SpecialChannel{
			ChannelID:   channelID,
			Blacklisted: blacklisted,
			Modifier:    modifier,
		})
	})
	if !ok {
		return
	}

	if blacklisted {
		common.RespondWithSuccess(s, i, fmt.Sprintf("<#%d> no longer awards XP", channelID))
	} else {
		common.RespondWithSuccess(s, i, fmt.Sprintf("<#%d> awards %d%% XP", channelID, modifier))
	}
}

// handleSpecialChannelRemove handles the /levelsettings special-channel-remove command
func (f *Feature) handleSpecialChannelRemove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireAdminGuild(s, i)
	if !ok {
		return
	}

	options := i.ApplicationCommandData().Options[0].Options
	if len(options) == 0 {
		return
	}
	channelID, err := common.ParseSnowflake(options[0].ChannelValue(s).ID)
	if err != nil {
		log.Errorf("Failed to parse channel ID: %v", err)
		common.RespondWithError(s, i, "Invalid channel selected")
		return
	}

	ok = f.withSettingsUow(s, i, guildID, func(ctx context.Context, uow interfaces.UnitOfWork) error {
		return uow.SpecialChannelRepository().DeleteByChannel(ctx, channelID)
	})
	if !ok {
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("<#%d> awards normal XP again", channelID))
}

// handleLevelRole handles the /levelsettings level-role command
func (f *Feature) handleLevelRole(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireAdminGuild(s, i)
	if !ok {
		return
	}

	var level, roleID int64
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "level":
			level = opt.IntValue()
		case "role":
			id, err := common.ParseSnowflake(opt.RoleValue(s, "").ID)
			if err != nil {
				log.Errorf("Failed to parse role ID: %v", err)
				common.RespondWithError(s, i, "Invalid role selected")
				return
			}
			roleID = id
		}
	}

	if level < 1 {
		common.RespondWithError(s, i, "Level must be at least 1")
		return
	}

	ok = f.withSettingsUow(s, i, guildID, func(ctx context.Context, uow interfaces.UnitOfWork) error {
		return uow.LevelRoleRepository().Upsert(ctx, &entities.LevelRole{
			Level:  level,
			RoleID: roleID,
		})
	})
	if !ok {
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Members reaching level %d now receive <@&%d>", level, roleID))
}

// handleLevelRoleRemove handles the /levelsettings level-role-remove command
func (f *Feature) handleLevelRoleRemove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := requireAdminGuild(s, i)
	if !ok {
		return
	}

	options := i.ApplicationCommandData().Options[0].Options
	if len(options) == 0 {
		return
	}
	level := options[0].IntValue()

	ok = f.withSettingsUow(s, i, guildID, func(ctx context.Context, uow interfaces.UnitOfWork) error {
		return uow.LevelRoleRepository().DeleteByLevel(ctx, level)
	})
	if !ok {
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Level %d no longer grants a role", level))
}
