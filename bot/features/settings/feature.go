package settings

import (
	"leveler/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// Feature handles leveling configuration commands
type Feature struct {
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
}

// NewFeature creates a new settings feature instance
func NewFeature(session *discordgo.Session, uowFactory interfaces.UnitOfWorkFactory) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
	}
}

// HandleCommand routes settings commands to appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "notifications":
		f.handleNotifications(s, i)
	case "cooldown":
		f.handleCooldown(s, i)
	case "text-xp":
		f.handleTextXP(s, i)
	case "voice-xp":
		f.handleVoiceXP(s, i)
	case "auto-roles":
		f.handleAutoRoles(s, i)
	case "booster-role":
		f.handleBoosterRole(s, i)
	case "special-channel":
		f.handleSpecialChannel(s, i)
	case "special-channel-remove":
		f.handleSpecialChannelRemove(s, i)
	case "level-role":
		f.handleLevelRole(s, i)
	case "level-role-remove":
		f.handleLevelRoleRemove(s, i)
	}
}
