package entities

// UserLevel tracks accumulated XP and the derived level for one guild member
type UserLevel struct {
	ID      int64 `db:"id"`
	GuildID int64 `db:"guild_id"`
	UserID  int64 `db:"user_id"`
	TextXP  int64 `db:"text_xp"`
	VoiceXP int64 `db:"voice_xp"`
	Level   int64 `db:"level"`
}

// TotalXP returns the combined text and voice XP
func (u *UserLevel) TotalXP() int64 {
	return u.TextXP + u.VoiceXP
}
