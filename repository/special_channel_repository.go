package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"leveler/domain/entities"
	"leveler/domain/interfaces"
)

// SpecialChannelRepository implements the SpecialChannelRepository interface,
// scoped to a single guild
type SpecialChannelRepository struct {
	q       Queryable
	guildID int64
}

// NewSpecialChannelRepositoryScoped creates a new special channel repository
// with a transaction and guild scope
func NewSpecialChannelRepositoryScoped(tx Queryable, guildID int64) interfaces.SpecialChannelRepository {
	return &SpecialChannelRepository{
		q:       tx,
		guildID: guildID,
	}
}

// GetByChannel retrieves the special channel config for a channel, or nil if
// the channel has no override
func (r *SpecialChannelRepository) GetByChannel(ctx context.Context, channelID int64) (*entities.SpecialChannel, error) {
	query := `
		SELECT id, guild_id, channel_id, blacklisted, modifier
		FROM special_channels
		WHERE guild_id = $1 AND channel_id = $2
	`

	var channel entities.SpecialChannel
	err := r.q.QueryRow(ctx, query, r.guildID, channelID).Scan(
		&channel.ID,
		&channel.GuildID,
		&channel.ChannelID,
		&channel.Blacklisted,
		&channel.Modifier,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get special channel %d: %w", channelID, err)
	}

	return &channel, nil
}

// Upsert inserts or replaces the override for a channel
func (r *SpecialChannelRepository) Upsert(ctx context.Context, channel *entities.SpecialChannel) error {
	query := `
		INSERT INTO special_channels (guild_id, channel_id, blacklisted, modifier)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, channel_id) DO UPDATE
		SET blacklisted = EXCLUDED.blacklisted,
		    modifier = EXCLUDED.modifier
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		channel.ChannelID,
		channel.Blacklisted,
		channel.Modifier,
	).Scan(&channel.ID)

	if err != nil {
		return fmt.Errorf("failed to upsert special channel %d: %w", channel.ChannelID, err)
	}

	channel.GuildID = r.guildID
	return nil
}

// DeleteByChannel removes the override for a channel
func (r *SpecialChannelRepository) DeleteByChannel(ctx context.Context, channelID int64) error {
	query := `DELETE FROM special_channels WHERE guild_id = $1 AND channel_id = $2`

	if _, err := r.q.Exec(ctx, query, r.guildID, channelID); err != nil {
		return fmt.Errorf("failed to delete special channel %d: %w", channelID, err)
	}

	return nil
}

// List returns all channel overrides for the current guild
func (r *SpecialChannelRepository) List(ctx context.Context) ([]*entities.SpecialChannel, error) {
	query := `
		SELECT id, guild_id, channel_id, blacklisted, modifier
		FROM special_channels
		WHERE guild_id = $1
		ORDER BY channel_id
	`

	rows, err := r.q.Query(ctx, query, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list special channels: %w", err)
	}
	defer rows.Close()

	var channels []*entities.SpecialChannel
	for rows.Next() {
		var channel entities.SpecialChannel
		if err := rows.Scan(
			&channel.ID,
			&channel.GuildID,
			&channel.ChannelID,
			&channel.Blacklisted,
			&channel.Modifier,
		); err != nil {
			return nil, fmt.Errorf("failed to scan special channel: %w", err)
		}
		channels = append(channels, &channel)
	}

	return channels, rows.Err()
}
