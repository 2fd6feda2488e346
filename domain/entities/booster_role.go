package entities

// BoosterRole records the personal custom role created for a boosting member.
// The role is deleted when the boost ends.
type BoosterRole struct {
	ID      int64 `db:"id"`
	GuildID int64 `db:"guild_id"`
	UserID  int64 `db:"user_id"`
	RoleID  int64 `db:"role_id"`
}
