package services

import (
	"context"
	"fmt"
	"time"

	"leveler/domain/entities"
	"leveler/domain/interfaces"
)

// VoiceTransition classifies a voice-state change
type VoiceTransition int

const (
	// VoiceNoop is a state change that does not move the user between channels
	// (mute, deafen, stream toggles)
	VoiceNoop VoiceTransition = iota
	// VoiceJoin is a connection to a voice channel from none
	VoiceJoin
	// VoiceMove is a switch from one voice channel to another
	VoiceMove
	// VoiceLeave is a disconnection from voice
	VoiceLeave
)

// ClassifyVoiceTransition derives the transition from the old and new channel
// IDs of a voice-state change. Nil means "not in a channel".
func ClassifyVoiceTransition(oldChannelID, newChannelID *int64) VoiceTransition {
	switch {
	case oldChannelID == nil && newChannelID == nil:
		return VoiceNoop
	case oldChannelID == nil:
		return VoiceJoin
	case newChannelID == nil:
		return VoiceLeave
	case *oldChannelID == *newChannelID:
		return VoiceNoop
	default:
		return VoiceMove
	}
}

type voiceTracker struct {
	sessionRepo interfaces.VoiceSessionRepository
	leveling    interfaces.LevelingService
	now         func() time.Time
}

// NewVoiceTracker creates a new voice tracker
func NewVoiceTracker(sessionRepo interfaces.VoiceSessionRepository, leveling interfaces.LevelingService) interfaces.VoiceTracker {
	return &voiceTracker{
		sessionRepo: sessionRepo,
		leveling:    leveling,
		now:         time.Now,
	}
}

// HandleVoiceState applies a voice-state change: the old session (if any) is
// closed and credited before a new one is opened. Sessions are opened even
// for blacklisted channels so that leaving them stays consistent; the
// blacklist only suppresses the XP grant itself.
func (t *voiceTracker) HandleVoiceState(ctx context.Context, guildID, userID int64, oldChannelID, newChannelID *int64, isBooster bool) (*entities.LevelUp, error) {
	switch ClassifyVoiceTransition(oldChannelID, newChannelID) {
	case VoiceNoop:
		return nil, nil

	case VoiceJoin:
		// A lingering session here means a missed leave event; treat the
		// join as an implicit move and credit the stale interval first.
		levelUp, err := t.closeSession(ctx, guildID, userID, isBooster)
		if err != nil {
			return nil, err
		}
		return levelUp, t.openSession(ctx, userID, *newChannelID)

	case VoiceMove:
		levelUp, err := t.closeSession(ctx, guildID, userID, isBooster)
		if err != nil {
			return nil, err
		}
		return levelUp, t.openSession(ctx, userID, *newChannelID)

	case VoiceLeave:
		return t.closeSession(ctx, guildID, userID, isBooster)
	}

	return nil, nil
}

// closeSession credits the open session's whole-minute duration as voice XP
// and deletes the row. Nothing is awarded for sub-minute intervals.
func (t *voiceTracker) closeSession(ctx context.Context, guildID, userID int64, isBooster bool) (*entities.LevelUp, error) {
	session, err := t.sessionRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get voice session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	var levelUp *entities.LevelUp
	if minutes := session.DurationMinutes(t.now()); minutes > 0 {
		levelUp, err = t.leveling.AwardVoiceXP(ctx, guildID, userID, session.ChannelID, minutes, isBooster)
		if err != nil {
			return nil, fmt.Errorf("failed to award voice XP: %w", err)
		}
	}

	if err := t.sessionRepo.Delete(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to delete voice session: %w", err)
	}

	return levelUp, nil
}

func (t *voiceTracker) openSession(ctx context.Context, userID, channelID int64) error {
	if _, err := t.sessionRepo.Create(ctx, userID, channelID, t.now()); err != nil {
		return fmt.Errorf("failed to open voice session: %w", err)
	}
	return nil
}
