package boosterrole

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"leveler/bot/common"
	"leveler/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// parseHexColor parses a "#rrggbb" or "rrggbb" color string
func parseHexColor(input string) (int, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(input), "#")
	if len(trimmed) != 6 {
		return 0, fmt.Errorf("expected 6 hex digits, got %q", input)
	}

	color, err := strconv.ParseInt(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid hex color %q: %w", input, err)
	}

	return int(color), nil
}

// handleSet handles the /boosterrole set command
func (f *Feature) handleSet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsBooster(i.Member) {
		common.RespondWithError(s, i, "Only server boosters can use this command")
		return
	}

	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}
	userID, err := common.ParseSnowflake(i.Member.User.ID)
	if err != nil {
		log.Errorf("Failed to parse user ID: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	var name string
	var color int
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "name":
			name = opt.StringValue()
		case "color":
			color, err = parseHexColor(opt.StringValue())
			if err != nil {
				common.RespondWithError(s, i, "Invalid color, use a hex value like #ff8800")
				return
			}
		}
	}

	if name == "" {
		common.RespondWithError(s, i, "Role name must not be empty")
		return
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to update your role")
		return
	}
	defer uow.Rollback()

	boosterService := services.NewBoosterService(
		uow.BoosterRoleRepository(),
		uow.GuildSettingsRepository(),
		f.membership,
	)

	record, created, err := boosterService.EnsureCustomRole(ctx, guildID, userID, name, color)
	if err != nil {
		log.Errorf("Failed to ensure custom role: %v", err)
		common.RespondWithError(s, i, "Failed to update your role")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to update your role")
		return
	}

	if created {
		common.RespondWithSuccess(s, i, fmt.Sprintf("Created your personal role <@&%d>", record.RoleID))
	} else {
		common.RespondWithSuccess(s, i, fmt.Sprintf("Updated your personal role <@&%d>", record.RoleID))
	}
}

// handleRemove handles the /boosterrole remove command
func (f *Feature) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}
	userID, err := common.ParseSnowflake(i.Member.User.ID)
	if err != nil {
		log.Errorf("Failed to parse user ID: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to remove your role")
		return
	}
	defer uow.Rollback()

	boosterService := services.NewBoosterService(
		uow.BoosterRoleRepository(),
		uow.GuildSettingsRepository(),
		f.membership,
	)

	if err := boosterService.RemoveCustomRole(ctx, guildID, userID); err != nil {
		log.Errorf("Failed to remove custom role: %v", err)
		common.RespondWithError(s, i, "Failed to remove your role")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to remove your role")
		return
	}

	common.RespondWithSuccess(s, i, "Your personal role has been removed")
}
