package entities

import "time"

// VoiceSession is the open interval recorded while a member occupies a voice
// channel. At most one session exists per (guild, user).
type VoiceSession struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	UserID    int64     `db:"user_id"`
	ChannelID int64     `db:"channel_id"`
	StartTime time.Time `db:"start_time"`
}

// DurationMinutes returns the whole minutes elapsed since the session opened,
// truncated toward zero.
func (s *VoiceSession) DurationMinutes(now time.Time) int64 {
	d := now.Sub(s.StartTime)
	if d < 0 {
		return 0
	}
	return int64(d / time.Minute)
}
