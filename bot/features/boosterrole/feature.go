package boosterrole

import (
	"leveler/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// Feature handles the personal booster role perk
type Feature struct {
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory
	membership interfaces.MembershipGateway
}

// NewFeature creates a new booster role feature instance
func NewFeature(session *discordgo.Session, uowFactory interfaces.UnitOfWorkFactory, membership interfaces.MembershipGateway) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
		membership: membership,
	}
}

// HandleCommand routes booster role commands to appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "set":
		f.handleSet(s, i)
	case "remove":
		f.handleRemove(s, i)
	}
}
