package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"leveler/domain/entities"
	"leveler/domain/testhelpers"
)

func TestGuildSettingsService_GetOrCreateSettings(t *testing.T) {
	t.Parallel()
	repo := new(testhelpers.MockGuildSettingsRepository)
	service := NewGuildSettingsService(repo)
	ctx := context.Background()

	expected := entities.NewGuildSettings(testGuildID)
	repo.On("GetOrCreateGuildSettings", ctx, testGuildID).Return(expected, nil)

	settings, err := service.GetOrCreateSettings(ctx, testGuildID)
	require.NoError(t, err)
	assert.Equal(t, expected, settings)
}

func TestGuildSettingsService_UpdateNotification(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockGuildSettingsRepository)
		service := NewGuildSettingsService(repo)

		settings := entities.NewGuildSettings(testGuildID)
		repo.On("GetOrCreateGuildSettings", ctx, testGuildID).Return(settings, nil)

		var saved *entities.GuildSettings
		repo.On("UpdateGuildSettings", ctx, mock.AnythingOfType("*entities.GuildSettings")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*entities.GuildSettings)
			}).Return(nil)

		active := false
		require.NoError(t, service.UpdateNotification(ctx, testGuildID, &active, nil, nil))

		require.NotNil(t, saved)
		assert.False(t, saved.NotificationActive)
		assert.Equal(t, entities.DefaultNotificationTemplate, saved.NotificationTemplate)
		assert.Nil(t, saved.NotificationChannelID)
	})

	t.Run("sets channel and template", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockGuildSettingsRepository)
		service := NewGuildSettingsService(repo)

		settings := entities.NewGuildSettings(testGuildID)
		repo.On("GetOrCreateGuildSettings", ctx, testGuildID).Return(settings, nil)

		var saved *entities.GuildSettings
		repo.On("UpdateGuildSettings", ctx, mock.AnythingOfType("*entities.GuildSettings")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*entities.GuildSettings)
			}).Return(nil)

		channelID := int64(777)
		template := "custom {user} {level}"
		require.NoError(t, service.UpdateNotification(ctx, testGuildID, nil, &channelID, &template))

		require.NotNil(t, saved)
		require.NotNil(t, saved.NotificationChannelID)
		assert.Equal(t, channelID, *saved.NotificationChannelID)
		assert.Equal(t, template, saved.NotificationTemplate)
	})
}

func TestGuildSettingsService_UpdateCooldown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rejects negative cooldown", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockGuildSettingsRepository)
		service := NewGuildSettingsService(repo)

		err := service.UpdateCooldown(ctx, testGuildID, -1)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "UpdateGuildSettings", mock.Anything, mock.Anything)
	})

	t.Run("persists new cooldown", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockGuildSettingsRepository)
		service := NewGuildSettingsService(repo)

		settings := entities.NewGuildSettings(testGuildID)
		repo.On("GetOrCreateGuildSettings", ctx, testGuildID).Return(settings, nil)
		repo.On("UpdateGuildSettings", ctx, mock.AnythingOfType("*entities.GuildSettings")).Return(nil)

		require.NoError(t, service.UpdateCooldown(ctx, testGuildID, 2500))
		assert.Equal(t, int64(2500), settings.CooldownMs)
	})
}

func TestGuildSettingsService_UpdateXPRanges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rejects negative minimum", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockGuildSettingsRepository)
		service := NewGuildSettingsService(repo)

		assert.Error(t, service.UpdateTextXPRange(ctx, testGuildID, -1, 10))
		assert.Error(t, service.UpdateVoiceXPRange(ctx, testGuildID, -1, 10))
	})

	t.Run("rejects max below min", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockGuildSettingsRepository)
		service := NewGuildSettingsService(repo)

		assert.Error(t, service.UpdateTextXPRange(ctx, testGuildID, 10, 5))
		assert.Error(t, service.UpdateVoiceXPRange(ctx, testGuildID, 10, 5))
	})

	t.Run("persists valid ranges", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockGuildSettingsRepository)
		service := NewGuildSettingsService(repo)

		settings := entities.NewGuildSettings(testGuildID)
		repo.On("GetOrCreateGuildSettings", ctx, testGuildID).Return(settings, nil)
		repo.On("UpdateGuildSettings", ctx, mock.AnythingOfType("*entities.GuildSettings")).Return(nil)

		require.NoError(t, service.UpdateTextXPRange(ctx, testGuildID, 10, 20))
		assert.Equal(t, int64(10), settings.MinXPText)
		assert.Equal(t, int64(20), settings.MaxXPText)

		require.NoError(t, service.UpdateVoiceXPRange(ctx, testGuildID, 2, 8))
		assert.Equal(t, int64(2), settings.MinXPVoice)
		assert.Equal(t, int64(8), settings.MaxXPVoice)
	})
}

func TestGuildSettingsService_UpdateAutoRoles(t *testing.T) {
	t.Parallel()
	repo := new(testhelpers.MockGuildSettingsRepository)
	service := NewGuildSettingsService(repo)
	ctx := context.Background()

	settings := entities.NewGuildSettings(testGuildID)
	repo.On("GetOrCreateGuildSettings", ctx, testGuildID).Return(settings, nil)
	repo.On("UpdateGuildSettings", ctx, mock.AnythingOfType("*entities.GuildSettings")).Return(nil)

	userRole := int64(11)
	botRole := int64(22)
	require.NoError(t, service.UpdateAutoRoles(ctx, testGuildID, &userRole, &botRole))
	assert.Equal(t, &userRole, settings.AutoRoleUserRoleID)
	assert.Equal(t, &botRole, settings.AutoRoleBotRoleID)

	require.NoError(t, service.UpdateAutoRoles(ctx, testGuildID, nil, nil))
	assert.Nil(t, settings.AutoRoleUserRoleID)
	assert.Nil(t, settings.AutoRoleBotRoleID)
}

func TestGuildSettingsService_UpdateBoosterReferenceRole(t *testing.T) {
	t.Parallel()
	repo := new(testhelpers.MockGuildSettingsRepository)
	service := NewGuildSettingsService(repo)
	ctx := context.Background()

	settings := entities.NewGuildSettings(testGuildID)
	repo.On("GetOrCreateGuildSettings", ctx, testGuildID).Return(settings, nil)
	repo.On("UpdateGuildSettings", ctx, mock.AnythingOfType("*entities.GuildSettings")).Return(nil)

	roleID := int64(33)
	require.NoError(t, service.UpdateBoosterReferenceRole(ctx, testGuildID, &roleID))
	assert.Equal(t, &roleID, settings.BoosterReferenceRoleID)
}
