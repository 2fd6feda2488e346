package level

import (
	"context"
	"fmt"
	"strings"

	"leveler/bot/common"
	"leveler/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleRank handles the /level rank command
func (f *Feature) handleRank(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	// Target defaults to the invoker
	targetID := i.Member.User.ID
	options := i.ApplicationCommandData().Options[0].Options
	if len(options) > 0 && options[0].Name == "user" {
		targetID = options[0].UserValue(s).ID
	}

	userID, err := common.ParseSnowflake(targetID)
	if err != nil {
		log.Errorf("Failed to parse user ID: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to look up level")
		return
	}
	defer uow.Rollback()

	userLevel, err := uow.UserLevelRepository().GetByUser(ctx, userID)
	if err != nil {
		log.Errorf("Failed to get user level: %v", err)
		common.RespondWithError(s, i, "Failed to look up level")
		return
	}
	if userLevel == nil {
		common.RespondWithError(s, i, "No XP recorded for that member yet")
		return
	}

	rank, err := uow.UserLevelRepository().GetRank(ctx, userID)
	if err != nil {
		log.Errorf("Failed to get rank: %v", err)
		common.RespondWithError(s, i, "Failed to look up level")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to look up level")
		return
	}

	totalXP := userLevel.TotalXP()
	levelFloor := services.XPForLevel(userLevel.Level)
	nextLevel := services.XPForLevel(userLevel.Level + 1)
	progress := totalXP - levelFloor
	needed := nextLevel - levelFloor

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %s", common.FormatRank(rank), common.GetDisplayName(s, i.GuildID, targetID)),
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Level",
				Value:  fmt.Sprintf("%d", userLevel.Level),
				Inline: true,
			},
			{
				Name:   "Text XP",
				Value:  common.FormatXP(userLevel.TextXP),
				Inline: true,
			},
			{
				Name:   "Voice XP",
				Value:  common.FormatXP(userLevel.VoiceXP),
				Inline: true,
			},
			{
				Name: fmt.Sprintf("Progress to level %d", userLevel.Level+1),
				Value: fmt.Sprintf("%s %s / %s XP",
					common.ProgressBar(progress, needed),
					common.FormatXP(progress),
					common.FormatXP(needed)),
			},
		},
	}

	common.RespondWithEmbed(s, i, embed)
}

// handleLeaderboard handles the /level leaderboard command
func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := common.ParseSnowflake(i.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID: %v", err)
		common.RespondWithError(s, i, "Failed to process command")
		return
	}

	ctx := context.Background()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Failed to load leaderboard")
		return
	}
	defer uow.Rollback()

	top, err := uow.UserLevelRepository().GetTopUsers(ctx, common.LeaderboardSize)
	if err != nil {
		log.Errorf("Failed to get top users: %v", err)
		common.RespondWithError(s, i, "Failed to load leaderboard")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Failed to load leaderboard")
		return
	}

	if len(top) == 0 {
		common.RespondWithError(s, i, "Nobody has earned XP yet")
		return
	}

	var lines []string
	for idx, entry := range top {
		lines = append(lines, fmt.Sprintf("%s %s - level %d (%s XP)",
			common.FormatRank(int64(idx+1)),
			common.GetUserMention(entry.UserID),
			entry.Level,
			common.FormatXP(entry.TotalXP())))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Leaderboard",
		Description: strings.Join(lines, "\n"),
		Color:       common.ColorWarning,
	}

	common.RespondWithEmbed(s, i, embed)
}
