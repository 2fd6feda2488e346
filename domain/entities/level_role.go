package entities

// LevelRole maps a level to the role granted when a member reaches it.
// A level has zero or one mapped role per guild.
type LevelRole struct {
	ID      int64 `db:"id"`
	GuildID int64 `db:"guild_id"`
	Level   int64 `db:"level"`
	RoleID  int64 `db:"role_id"`
}
