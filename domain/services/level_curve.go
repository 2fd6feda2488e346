package services

// The level curve is quadratic: reaching level L from level L-1 costs an
// additional 5*L^2 + 50*L + 100 XP on top of the cumulative threshold for
// L-1. Level 1 therefore costs 155 XP total.

// LevelFromXP returns the highest level fully reached with totalXP.
// Monotonic non-decreasing; safe for concurrent use.
func LevelFromXP(totalXP int64) int64 {
	var level, neededXP int64
	for {
		next := level + 1
		neededXP += 5*next*next + 50*next + 100
		if totalXP < neededXP {
			return level
		}
		level = next
	}
}

// XPForLevel returns the cumulative XP required to reach level.
// XPForLevel(0) == 0, and LevelFromXP(XPForLevel(L)) == L for any L >= 0.
func XPForLevel(level int64) int64 {
	var xp int64
	for i := int64(1); i <= level; i++ {
		xp += 5*i*i + 50*i + 100
	}
	return xp
}
