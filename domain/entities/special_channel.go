package entities

// DefaultChannelModifier leaves rolled XP unchanged
const DefaultChannelModifier = 100

// SpecialChannel overrides XP computation for one channel: a percentage
// modifier applied to rolled XP, or a blacklist flag suppressing XP entirely
type SpecialChannel struct {
	ID          int64 `db:"id"`
	GuildID     int64 `db:"guild_id"`
	ChannelID   int64 `db:"channel_id"`
	Modifier    int64 `db:"modifier"` // Percentage, 100 = unchanged
	Blacklisted bool  `db:"blacklisted"`
}

// ApplyModifier scales xp by the channel modifier, truncating toward zero
func (c *SpecialChannel) ApplyModifier(xp int64) int64 {
	return xp * c.Modifier / 100
}
