package common

import (
	"fmt"
	"strings"
)

// FormatXP formats an XP amount with thousand separators
func FormatXP(xp int64) string {
	str := fmt.Sprintf("%d", xp)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// ProgressBar renders progress toward the next level as a text bar
func ProgressBar(current, total int64) string {
	if total <= 0 {
		return strings.Repeat("░", ProgressBarLength)
	}
	if current > total {
		current = total
	}

	filled := int(current * ProgressBarLength / total)
	return strings.Repeat("█", filled) + strings.Repeat("░", ProgressBarLength-filled)
}

// FormatRank renders a leaderboard position with medals for the top three
func FormatRank(rank int64) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("#%d", rank)
	}
}
