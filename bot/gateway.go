package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"leveler/bot/common"
	"leveler/domain/interfaces"
)

// discordGateway implements the MembershipGateway and MessagingGateway
// interfaces over a live Discord session
type discordGateway struct {
	session *discordgo.Session
}

func newDiscordGateway(session *discordgo.Session) *discordGateway {
	return &discordGateway{session: session}
}

var _ interfaces.MembershipGateway = (*discordGateway)(nil)
var _ interfaces.MessagingGateway = (*discordGateway)(nil)

// GrantRole adds a role to a guild member
func (g *discordGateway) GrantRole(ctx context.Context, guildID, userID, roleID int64) error {
	err := g.session.GuildMemberRoleAdd(
		common.FormatSnowflake(guildID),
		common.FormatSnowflake(userID),
		common.FormatSnowflake(roleID),
	)
	if err != nil {
		return fmt.Errorf("failed to grant role %d to user %d: %w", roleID, userID, err)
	}
	return nil
}

// RevokeRole removes a role from a guild member
func (g *discordGateway) RevokeRole(ctx context.Context, guildID, userID, roleID int64) error {
	err := g.session.GuildMemberRoleRemove(
		common.FormatSnowflake(guildID),
		common.FormatSnowflake(userID),
		common.FormatSnowflake(roleID),
	)
	if err != nil {
		return fmt.Errorf("failed to revoke role %d from user %d: %w", roleID, userID, err)
	}
	return nil
}

// CreateRole creates a new role in the guild and returns its ID
func (g *discordGateway) CreateRole(ctx context.Context, guildID int64, name string, color int) (int64, error) {
	role, err := g.session.GuildRoleCreate(common.FormatSnowflake(guildID), &discordgo.RoleParams{
		Name:  name,
		Color: &color,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create role %q: %w", name, err)
	}

	roleID, err := common.ParseSnowflake(role.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to parse created role ID %s: %w", role.ID, err)
	}

	return roleID, nil
}

// EditRole updates the name and color of an existing role
func (g *discordGateway) EditRole(ctx context.Context, guildID, roleID int64, name string, color int) error {
	_, err := g.session.GuildRoleEdit(
		common.FormatSnowflake(guildID),
		common.FormatSnowflake(roleID),
		&discordgo.RoleParams{
			Name:  name,
			Color: &color,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to edit role %d: %w", roleID, err)
	}
	return nil
}

// DeleteRole deletes a role from the guild
func (g *discordGateway) DeleteRole(ctx context.Context, guildID, roleID int64, reason string) error {
	err := g.session.GuildRoleDelete(
		common.FormatSnowflake(guildID),
		common.FormatSnowflake(roleID),
		discordgo.WithAuditLogReason(reason),
	)
	if err != nil {
		return fmt.Errorf("failed to delete role %d: %w", roleID, err)
	}
	return nil
}

// PositionRoleBelow moves a role directly below a reference role in the
// guild's role hierarchy
func (g *discordGateway) PositionRoleBelow(ctx context.Context, guildID, roleID, referenceRoleID int64) error {
	guildIDStr := common.FormatSnowflake(guildID)

	roles, err := g.session.GuildRoles(guildIDStr)
	if err != nil {
		return fmt.Errorf("failed to list guild roles: %w", err)
	}

	roleIDStr := common.FormatSnowflake(roleID)
	referenceIDStr := common.FormatSnowflake(referenceRoleID)

	var reference *discordgo.Role
	for _, r := range roles {
		if r.ID == referenceIDStr {
			reference = r
			break
		}
	}
	if reference == nil {
		return fmt.Errorf("reference role %d not found in guild %d", referenceRoleID, guildID)
	}

	position := reference.Position - 1
	if position < 1 {
		position = 1
	}

	for _, r := range roles {
		if r.ID == roleIDStr {
			r.Position = position
		}
	}

	if _, err := g.session.GuildRoleReorder(guildIDStr, roles); err != nil {
		return fmt.Errorf("failed to reorder roles: %w", err)
	}

	return nil
}

// SendMessage posts a plain text message to a guild channel
func (g *discordGateway) SendMessage(ctx context.Context, guildID, channelID int64, content string) error {
	_, err := g.session.ChannelMessageSend(common.FormatSnowflake(channelID), content)
	if err != nil {
		return fmt.Errorf("failed to send message to channel %d: %w", channelID, err)
	}
	return nil
}

// SystemChannelID returns the guild's system channel, or nil if none is set
func (g *discordGateway) SystemChannelID(ctx context.Context, guildID int64) (*int64, error) {
	guildIDStr := common.FormatSnowflake(guildID)

	guild, err := g.session.State.Guild(guildIDStr)
	if err != nil {
		guild, err = g.session.Guild(guildIDStr)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch guild %d: %w", guildID, err)
		}
	}

	if guild.SystemChannelID == "" {
		return nil, nil
	}

	channelID, err := common.ParseSnowflake(guild.SystemChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse system channel ID %s: %w", guild.SystemChannelID, err)
	}

	return &channelID, nil
}
