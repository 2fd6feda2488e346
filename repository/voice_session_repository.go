package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"leveler/domain/entities"
	"leveler/domain/interfaces"
)

// VoiceSessionRepository implements the VoiceSessionRepository interface,
// scoped to a single guild
type VoiceSessionRepository struct {
	q       Queryable
	guildID int64
}

// NewVoiceSessionRepositoryScoped creates a new voice session repository with
// a transaction and guild scope
func NewVoiceSessionRepositoryScoped(tx Queryable, guildID int64) interfaces.VoiceSessionRepository {
	return &VoiceSessionRepository{
		q:       tx,
		guildID: guildID,
	}
}

// GetByUser retrieves the open session for a user, or nil if none exists
func (r *VoiceSessionRepository) GetByUser(ctx context.Context, userID int64) (*entities.VoiceSession, error) {
	query := `
		SELECT id, guild_id, user_id, channel_id, start_time
		FROM voice_sessions
		WHERE guild_id = $1 AND user_id = $2
	`

	var session entities.VoiceSession
	err := r.q.QueryRow(ctx, query, r.guildID, userID).Scan(
		&session.ID,
		&session.GuildID,
		&session.UserID,
		&session.ChannelID,
		&session.StartTime,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get voice session for user %d: %w", userID, err)
	}

	return &session, nil
}

// Create opens a new session for a user. The unique constraint on
// (guild_id, user_id) enforces the single-open-session invariant.
func (r *VoiceSessionRepository) Create(ctx context.Context, userID, channelID int64, startTime time.Time) (*entities.VoiceSession, error) {
	query := `
		INSERT INTO voice_sessions (guild_id, user_id, channel_id, start_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, guild_id, user_id, channel_id, start_time
	`

	var session entities.VoiceSession
	err := r.q.QueryRow(ctx, query, r.guildID, userID, channelID, startTime).Scan(
		&session.ID,
		&session.GuildID,
		&session.UserID,
		&session.ChannelID,
		&session.StartTime,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create voice session for user %d: %w", userID, err)
	}

	return &session, nil
}

// Delete closes a session by ID
func (r *VoiceSessionRepository) Delete(ctx context.Context, sessionID int64) error {
	query := `DELETE FROM voice_sessions WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete voice session %d: %w", sessionID, err)
	}

	return nil
}
