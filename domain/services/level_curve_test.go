package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestLevelFromXP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		totalXP int64
		want    int64
	}{
		{name: "zero XP", totalXP: 0, want: 0},
		{name: "just below level 1", totalXP: 154, want: 0},
		{name: "exactly level 1", totalXP: 155, want: 1},
		{name: "between levels", totalXP: 300, want: 1},
		{name: "just below level 2", totalXP: 374, want: 1},
		{name: "exactly level 2", totalXP: 375, want: 2},
		{name: "deep into the curve", totalXP: 100000, want: 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LevelFromXP(tt.totalXP))
		})
	}
}

func TestXPForLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(0), XPForLevel(0))
	assert.Equal(t, int64(155), XPForLevel(1)) // 5 + 50 + 100
	assert.Equal(t, int64(375), XPForLevel(2)) // 155 + 220
	assert.Equal(t, int64(670), XPForLevel(3)) // 375 + 295
}

func TestLevelCurve_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		level := rapid.Int64Range(0, 200).Draw(t, "level")

		threshold := XPForLevel(level)
		assert.Equal(t, level, LevelFromXP(threshold),
			"threshold XP must land exactly on its level")
		if threshold > 0 {
			assert.Equal(t, level-1, LevelFromXP(threshold-1),
				"one XP below the threshold must stay on the previous level")
		}
	})
}

func TestLevelCurve_Monotonic(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int64Range(0, 10_000_000).Draw(t, "a")
		b := rapid.Int64Range(0, 10_000_000).Draw(t, "b")
		if a > b {
			a, b = b, a
		}

		assert.LessOrEqual(t, LevelFromXP(a), LevelFromXP(b),
			"more XP must never mean a lower level")
	})
}
