package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGuildSettings_Defaults(t *testing.T) {
	t.Parallel()

	settings := NewGuildSettings(123)

	assert.Equal(t, int64(123), settings.GuildID)
	assert.True(t, settings.NotificationActive)
	assert.Nil(t, settings.NotificationChannelID)
	assert.Equal(t, DefaultNotificationTemplate, settings.NotificationTemplate)
	assert.Equal(t, int64(DefaultCooldownMs), settings.CooldownMs)
	assert.Equal(t, int64(DefaultMinXPText), settings.MinXPText)
	assert.Equal(t, int64(DefaultMaxXPText), settings.MaxXPText)
	assert.Equal(t, int64(DefaultMinXPVoice), settings.MinXPVoice)
	assert.Equal(t, int64(DefaultMaxXPVoice), settings.MaxXPVoice)
}

func TestGuildSettings_HasNotificationChannel(t *testing.T) {
	t.Parallel()

	settings := NewGuildSettings(123)
	assert.False(t, settings.HasNotificationChannel())

	channelID := int64(456)
	settings.SetNotificationChannel(&channelID)
	assert.True(t, settings.HasNotificationChannel())

	settings.SetNotificationChannel(nil)
	assert.False(t, settings.HasNotificationChannel())
}
