package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"leveler/bot/common"
	"leveler/bot/features/boosterrole"
	"leveler/bot/features/level"
	"leveler/bot/features/settings"
	"leveler/domain/interfaces"
	"leveler/domain/services"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

// Bot manages the Discord bot and all feature modules
type Bot struct {
	// Core components
	config     Config
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
	gateway    *discordGateway

	// Shared in-memory leveling state. Lives for the process lifetime, so
	// cooldowns reset on restart.
	gate  *services.CooldownGate
	locks *services.KeyedMutex

	// Feature modules
	level       *level.Feature
	settings    *settings.Feature
	boosterRole *boosterrole.Feature
}

// New creates a new bot instance with all features
func New(config Config, uowFactory interfaces.UnitOfWorkFactory) (*Bot, error) {
	// Create Discord session
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	// Create bot instance
	bot := &Bot{
		config:     config,
		session:    dg,
		uowFactory: uowFactory,
		gateway:    newDiscordGateway(dg),
		gate:       services.NewCooldownGate(),
		locks:      services.NewKeyedMutex(),
	}

	// Create feature modules
	bot.level = level.NewFeature(dg, uowFactory)
	bot.settings = settings.NewFeature(dg, uowFactory)
	bot.boosterRole = boosterrole.NewFeature(dg, uowFactory, bot.gateway)

	// Register handlers
	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(bot.handleGuildCreate)
	dg.AddHandler(bot.handleMessageCreate)
	dg.AddHandler(bot.handleVoiceStateUpdate)
	dg.AddHandler(bot.handleGuildMemberAdd)
	dg.AddHandler(bot.handleGuildMemberUpdate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

// newLevelingService builds the XP award pipeline from the repositories of
// an open unit of work plus the bot's shared cooldown and lock state
func (b *Bot) newLevelingService(uow interfaces.UnitOfWork) interfaces.LevelingService {
	return services.NewLevelingService(
		uow.GuildSettingsRepository(),
		uow.SpecialChannelRepository(),
		uow.UserLevelRepository(),
		uow.LevelRoleRepository(),
		b.gate,
		b.locks,
		b.gateway,
		b.gateway,
	)
}

// handleCommands routes slash commands to appropriate handlers
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "level":
		b.level.HandleCommand(s, i)
	case "levelsettings":
		b.settings.HandleCommand(s, i)
	case "boosterrole":
		b.boosterRole.HandleCommand(s, i)
	}
}

// handleGuildCreate seeds default leveling settings when the bot joins a guild
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	ctx := context.Background()

	guildID, err := common.ParseSnowflake(g.ID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", g.ID, err)
		return
	}

	// Create guild-scoped unit of work
	uow := b.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		return
	}
	defer uow.Rollback()

	// Instantiate service with repositories from UnitOfWork
	guildSettingsService := services.NewGuildSettingsService(
		uow.GuildSettingsRepository(),
	)

	// Get or create settings for this guild
	settings, err := guildSettingsService.GetOrCreateSettings(ctx, guildID)
	if err != nil {
		log.Errorf("Failed to initialize guild %s (%s): %v", g.Name, g.ID, err)
		return
	}

	// Commit the transaction
	if err := uow.Commit(); err != nil {
		log.Errorf("Failed to commit transaction: %v", err)
		return
	}

	log.Infof("Bot joined guild: %s (ID: %d, Cooldown: %dms, Text XP: %d-%d, Voice XP: %d-%d/min)",
		g.Name, settings.GuildID, settings.CooldownMs,
		settings.MinXPText, settings.MaxXPText, settings.MinXPVoice, settings.MaxXPVoice)
}

// handleMessageCreate awards text XP for guild messages
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Skip messages from bots, including our own
	if m.Author == nil || m.Author.Bot {
		return
	}

	// Skip if message is not from a guild
	if m.GuildID == "" {
		log.Debugf("Skipping message %s - not from a guild (possibly a DM)", m.ID)
		return
	}

	guildID, err := common.ParseSnowflake(m.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", m.GuildID, err)
		return
	}
	userID, err := common.ParseSnowflake(m.Author.ID)
	if err != nil {
		log.Errorf("Failed to parse user ID %s: %v", m.Author.ID, err)
		return
	}
	channelID, err := common.ParseSnowflake(m.ChannelID)
	if err != nil {
		log.Errorf("Failed to parse channel ID %s: %v", m.ChannelID, err)
		return
	}

	ctx := context.Background()

	uow := b.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		return
	}
	defer uow.Rollback()

	leveling := b.newLevelingService(uow)
	levelUp, err := leveling.AwardTextXP(ctx, guildID, userID, channelID, common.IsBooster(m.Member))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id":   m.GuildID,
			"channel_id": m.ChannelID,
			"user_id":    m.Author.ID,
		}).Error("Failed to award text XP")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Failed to commit transaction: %v", err)
		return
	}

	// Only announce once the XP write is durable
	leveling.AnnounceLevelUp(ctx, levelUp)
}

// handleVoiceStateUpdate tracks voice sessions and awards voice XP for
// completed intervals
func (b *Bot) handleVoiceStateUpdate(s *discordgo.Session, vsu *discordgo.VoiceStateUpdate) {
	// Skip bots; they idle in channels and would farm XP forever
	if vsu.Member != nil && vsu.Member.User != nil && vsu.Member.User.Bot {
		return
	}

	guildID, err := common.ParseSnowflake(vsu.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", vsu.GuildID, err)
		return
	}
	userID, err := common.ParseSnowflake(vsu.UserID)
	if err != nil {
		log.Errorf("Failed to parse user ID %s: %v", vsu.UserID, err)
		return
	}

	var oldChannelID, newChannelID *int64
	if vsu.BeforeUpdate != nil && vsu.BeforeUpdate.ChannelID != "" {
		id, err := common.ParseSnowflake(vsu.BeforeUpdate.ChannelID)
		if err != nil {
			log.Errorf("Failed to parse old channel ID %s: %v", vsu.BeforeUpdate.ChannelID, err)
			return
		}
		oldChannelID = &id
	}
	if vsu.ChannelID != "" {
		id, err := common.ParseSnowflake(vsu.ChannelID)
		if err != nil {
			log.Errorf("Failed to parse new channel ID %s: %v", vsu.ChannelID, err)
			return
		}
		newChannelID = &id
	}

	ctx := context.Background()

	uow := b.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		return
	}
	defer uow.Rollback()

	leveling := b.newLevelingService(uow)
	tracker := services.NewVoiceTracker(uow.VoiceSessionRepository(), leveling)
	levelUp, err := tracker.HandleVoiceState(ctx, guildID, userID, oldChannelID, newChannelID, common.IsBooster(vsu.Member))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id": vsu.GuildID,
			"user_id":  vsu.UserID,
		}).Error("Failed to handle voice state update")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Failed to commit transaction: %v", err)
		return
	}

	// Only announce once the XP write is durable
	leveling.AnnounceLevelUp(ctx, levelUp)
}

// handleGuildMemberAdd grants the configured auto-role to joining members
func (b *Bot) handleGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.User == nil {
		return
	}

	guildID, err := common.ParseSnowflake(m.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", m.GuildID, err)
		return
	}
	userID, err := common.ParseSnowflake(m.User.ID)
	if err != nil {
		log.Errorf("Failed to parse user ID %s: %v", m.User.ID, err)
		return
	}

	ctx := context.Background()

	uow := b.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		return
	}
	defer uow.Rollback()

	autoRole := services.NewAutoRoleService(uow.GuildSettingsRepository(), b.gateway)
	if err := autoRole.AssignJoinRole(ctx, guildID, userID, m.User.Bot); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id": m.GuildID,
			"user_id":  m.User.ID,
		}).Error("Failed to assign join role")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Failed to commit transaction: %v", err)
	}
}

// handleGuildMemberUpdate removes the booster custom role when a member
// stops boosting
func (b *Bot) handleGuildMemberUpdate(s *discordgo.Session, m *discordgo.GuildMemberUpdate) {
	if m.User == nil || m.BeforeUpdate == nil {
		return
	}

	// Only interested in the boost-lost transition
	if m.BeforeUpdate.PremiumSince == nil || m.PremiumSince != nil {
		return
	}

	guildID, err := common.ParseSnowflake(m.GuildID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", m.GuildID, err)
		return
	}
	userID, err := common.ParseSnowflake(m.User.ID)
	if err != nil {
		log.Errorf("Failed to parse user ID %s: %v", m.User.ID, err)
		return
	}

	ctx := context.Background()

	uow := b.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		return
	}
	defer uow.Rollback()

	booster := services.NewBoosterService(uow.BoosterRoleRepository(), uow.GuildSettingsRepository(), b.gateway)
	if err := booster.RemoveCustomRole(ctx, guildID, userID); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id": m.GuildID,
			"user_id":  m.User.ID,
		}).Error("Failed to remove booster custom role")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Failed to commit transaction: %v", err)
	}

	log.Infof("Removed custom role for former booster %s in guild %s", m.User.ID, m.GuildID)
}
