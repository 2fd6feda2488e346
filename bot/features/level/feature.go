package level

import (
	"leveler/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// Feature handles level lookup and leaderboard commands
type Feature struct {
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
}

// NewFeature creates a new level feature instance
func NewFeature(session *discordgo.Session, uowFactory interfaces.UnitOfWorkFactory) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
	}
}

// HandleCommand routes level commands to appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "rank":
		f.handleRank(s, i)
	case "leaderboard":
		f.handleLeaderboard(s, i)
	}
}
