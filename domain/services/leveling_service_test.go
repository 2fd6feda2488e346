package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"leveler/domain/entities"
	"leveler/domain/interfaces"
	"leveler/domain/testhelpers"
)

const (
	testGuildID   = int64(1000)
	testUserID    = int64(2000)
	testChannelID = int64(3000)
)

type levelingFixture struct {
	settingsRepo       *testhelpers.MockGuildSettingsRepository
	specialChannelRepo *testhelpers.MockSpecialChannelRepository
	userLevelRepo      *testhelpers.MockUserLevelRepository
	levelRoleRepo      *testhelpers.MockLevelRoleRepository
	membership         *testhelpers.MockMembershipGateway
	messaging          *testhelpers.MockMessagingGateway
	service            interfaces.LevelingService
}

func newLevelingFixture() *levelingFixture {
	f := &levelingFixture{
		settingsRepo:       new(testhelpers.MockGuildSettingsRepository),
		specialChannelRepo: new(testhelpers.MockSpecialChannelRepository),
		userLevelRepo:      new(testhelpers.MockUserLevelRepository),
		levelRoleRepo:      new(testhelpers.MockLevelRoleRepository),
		membership:         new(testhelpers.MockMembershipGateway),
		messaging:          new(testhelpers.MockMessagingGateway),
	}
	f.service = NewLevelingService(
		f.settingsRepo,
		f.specialChannelRepo,
		f.userLevelRepo,
		f.levelRoleRepo,
		NewCooldownGate(),
		NewKeyedMutex(),
		f.membership,
		f.messaging,
	)
	return f
}

// fixedSettings pins both XP ranges to a single value so awards are deterministic
func fixedSettings(xp int64) *entities.GuildSettings {
	settings := entities.NewGuildSettings(testGuildID)
	settings.CooldownMs = 0
	settings.MinXPText = xp
	settings.MaxXPText = xp
	settings.MinXPVoice = xp
	settings.MaxXPVoice = xp
	return settings
}

func TestAwardTextXP_NewUser(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()
	ctx := context.Background()

	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).Return(fixedSettings(5), nil)
	f.specialChannelRepo.On("GetByChannel", ctx, testChannelID).Return(nil, nil)
	f.userLevelRepo.On("GetByUser", ctx, testUserID).Return(nil, nil)

	var persisted *entities.UserLevel
	f.userLevelRepo.On("Upsert", ctx, mock.AnythingOfType("*entities.UserLevel")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*entities.UserLevel)
		}).Return(nil)

	levelUp, err := f.service.AwardTextXP(ctx, testGuildID, testUserID, testChannelID, false)
	require.NoError(t, err)
	assert.Nil(t, levelUp)

	require.NotNil(t, persisted)
	assert.Equal(t, int64(5), persisted.TextXP)
	assert.Equal(t, int64(0), persisted.VoiceXP)
	assert.Equal(t, int64(0), persisted.Level)

	// No level-up, so no side effects
	f.levelRoleRepo.AssertNotCalled(t, "GetByLevel", mock.Anything, mock.Anything)
	f.messaging.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAwardTextXP_UninitializedGuildIsNoop(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()
	ctx := context.Background()

	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).Return(nil, nil)

	levelUp, err := f.service.AwardTextXP(ctx, testGuildID, testUserID, testChannelID, false)
	require.NoError(t, err)
	assert.Nil(t, levelUp)

	f.userLevelRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestAwardTextXP_CooldownBlocksSecondGrant(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()
	ctx := context.Background()

	settings := fixedSettings(5)
	settings.CooldownMs = 60_000
	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).Return(settings, nil)
	f.specialChannelRepo.On("GetByChannel", ctx, testChannelID).Return(nil, nil)
	f.userLevelRepo.On("GetByUser", ctx, testUserID).Return(nil, nil)
	f.userLevelRepo.On("Upsert", ctx, mock.AnythingOfType("*entities.UserLevel")).Return(nil)

	_, err := f.service.AwardTextXP(ctx, testGuildID, testUserID, testChannelID, false)
	require.NoError(t, err)
	_, err = f.service.AwardTextXP(ctx, testGuildID, testUserID, testChannelID, false)
	require.NoError(t, err)

	f.userLevelRepo.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestAwardTextXP_LevelUpAnnouncedOnce(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()
	ctx := context.Background()

	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).Return(fixedSettings(5), nil)
	f.specialChannelRepo.On("GetByChannel", ctx, testChannelID).Return(nil, nil)
	f.userLevelRepo.On("GetByUser", ctx, testUserID).
		Return(&entities.UserLevel{GuildID: testGuildID, UserID: testUserID, TextXP: 150}, nil)
	f.userLevelRepo.On("Upsert", ctx, mock.AnythingOfType("*entities.UserLevel")).Return(nil)
	f.levelRoleRepo.On("GetByLevel", ctx, int64(1)).
		Return(&entities.LevelRole{GuildID: testGuildID, Level: 1, RoleID: 42}, nil)
	f.membership.On("GrantRole", ctx, testGuildID, testUserID, int64(42)).Return(nil)

	systemChannel := int64(9999)
	f.messaging.On("SystemChannelID", ctx, testGuildID).Return(&systemChannel, nil)
	f.messaging.On("SendMessage", ctx, testGuildID, systemChannel,
		"<@2000>, you have reached level 1!").Return(nil)

	levelUp, err := f.service.AwardTextXP(ctx, testGuildID, testUserID, testChannelID, false)
	require.NoError(t, err)
	require.NotNil(t, levelUp)
	assert.Equal(t, int64(1), levelUp.Level)
	require.NotNil(t, levelUp.RoleID)
	assert.Equal(t, int64(42), *levelUp.RoleID)

	f.service.AnnounceLevelUp(ctx, levelUp)

	f.membership.AssertNumberOfCalls(t, "GrantRole", 1)
	f.messaging.AssertNumberOfCalls(t, "SendMessage", 1)
}

func TestAwardTextXP_NoPlatformCallsUntilAnnounced(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()
	ctx := context.Background()

	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).Return(fixedSettings(5), nil)
	f.specialChannelRepo.On("GetByChannel", ctx, testChannelID).Return(nil, nil)
	f.userLevelRepo.On("GetByUser", ctx, testUserID).
		Return(&entities.UserLevel{GuildID: testGuildID, UserID: testUserID, TextXP: 150}, nil)
	f.userLevelRepo.On("Upsert", ctx, mock.AnythingOfType("*entities.UserLevel")).Return(nil)
	f.levelRoleRepo.On("GetByLevel", ctx, int64(1)).
		Return(&entities.LevelRole{GuildID: testGuildID, Level: 1, RoleID: 42}, nil)

	levelUp, err := f.service.AwardTextXP(ctx, testGuildID, testUserID, testChannelID, false)
	require.NoError(t, err)
	require.NotNil(t, levelUp)

	// The award itself touches nothing on the platform; a caller whose
	// commit fails can drop the level-up without a spurious announcement
	f.membership.AssertNotCalled(t, "GrantRole",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.messaging.AssertNotCalled(t, "SendMessage",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.messaging.AssertNotCalled(t, "SystemChannelID", mock.Anything, mock.Anything)
}

func TestAnnounceLevelUp_NilIsNoop(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()

	f.service.AnnounceLevelUp(context.Background(), nil)

	f.membership.AssertNotCalled(t, "GrantRole",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.messaging.AssertNotCalled(t, "SendMessage",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAwardTextXP_NotificationFailureIsSwallowed(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()
	ctx := context.Background()

	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).Return(fixedSettings(5), nil)
	f.specialChannelRepo.On("GetByChannel", ctx, testChannelID).Return(nil, nil)
	f.userLevelRepo.On("GetByUser", ctx, testUserID).
		Return(&entities.UserLevel{GuildID: testGuildID, UserID: testUserID, TextXP: 150}, nil)
	f.userLevelRepo.On("Upsert", ctx, mock.AnythingOfType("*entities.UserLevel")).Return(nil)
	f.levelRoleRepo.On("GetByLevel", ctx, int64(1)).Return(nil, nil)

	systemChannel := int64(9999)
	f.messaging.On("SystemChannelID", ctx, testGuildID).Return(&systemChannel, nil)
	f.messaging.On("SendMessage", ctx, testGuildID, systemChannel, mock.AnythingOfType("string")).
		Return(errors.New("missing permissions"))

	levelUp, err := f.service.AwardTextXP(ctx, testGuildID, testUserID, testChannelID, false)
	require.NoError(t, err)
	require.NotNil(t, levelUp)

	f.service.AnnounceLevelUp(ctx, levelUp)
	f.messaging.AssertExpectations(t)
}

func TestAwardTextXP_PersistenceFailurePropagates(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()
	ctx := context.Background()

	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).Return(fixedSettings(5), nil)
	f.specialChannelRepo.On("GetByChannel", ctx, testChannelID).Return(nil, nil)
	f.userLevelRepo.On("GetByUser", ctx, testUserID).Return(nil, nil)
	f.userLevelRepo.On("Upsert", ctx, mock.AnythingOfType("*entities.UserLevel")).
		Return(errors.New("connection reset"))

	levelUp, err := f.service.AwardTextXP(ctx, testGuildID, testUserID, testChannelID, false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist user level")
	assert.Nil(t, levelUp)
}

func TestAwardTextXP_BlacklistedChannelLeavesRowUntouched(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()
	ctx := context.Background()

	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).Return(fixedSettings(5), nil)
	f.specialChannelRepo.On("GetByChannel", ctx, testChannelID).
		Return(&entities.SpecialChannel{ChannelID: testChannelID, Blacklisted: true, Modifier: 100}, nil)

	levelUp, err := f.service.AwardTextXP(ctx, testGuildID, testUserID, testChannelID, false)
	require.NoError(t, err)
	assert.Nil(t, levelUp)

	f.userLevelRepo.AssertNotCalled(t, "GetByUser", mock.Anything, mock.Anything)
	f.userLevelRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestAwardTextXP_ChannelModifierScalesXP(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()
	ctx := context.Background()

	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).Return(fixedSettings(10), nil)
	f.specialChannelRepo.On("GetByChannel", ctx, testChannelID).
		Return(&entities.SpecialChannel{ChannelID: testChannelID, Modifier: 50}, nil)
	f.userLevelRepo.On("GetByUser", ctx, testUserID).Return(nil, nil)

	var persisted *entities.UserLevel
	f.userLevelRepo.On("Upsert", ctx, mock.AnythingOfType("*entities.UserLevel")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*entities.UserLevel)
		}).Return(nil)

	_, err := f.service.AwardTextXP(ctx, testGuildID, testUserID, testChannelID, false)
	require.NoError(t, err)

	require.NotNil(t, persisted)
	assert.Equal(t, int64(5), persisted.TextXP)
}

func TestAwardTextXP_BoosterMultiplier(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()
	ctx := context.Background()

	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).Return(fixedSettings(10), nil)
	f.specialChannelRepo.On("GetByChannel", ctx, testChannelID).Return(nil, nil)
	f.userLevelRepo.On("GetByUser", ctx, testUserID).Return(nil, nil)

	var persisted *entities.UserLevel
	f.userLevelRepo.On("Upsert", ctx, mock.AnythingOfType("*entities.UserLevel")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*entities.UserLevel)
		}).Return(nil)

	_, err := f.service.AwardTextXP(ctx, testGuildID, testUserID, testChannelID, true)
	require.NoError(t, err)

	require.NotNil(t, persisted)
	assert.Equal(t, int64(11), persisted.TextXP, "10 * 1.1 = 11")
}

func TestAwardVoiceXP_CreditsVoiceColumn(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()
	ctx := context.Background()

	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).Return(fixedSettings(3), nil)
	f.specialChannelRepo.On("GetByChannel", ctx, testChannelID).Return(nil, nil)
	f.userLevelRepo.On("GetByUser", ctx, testUserID).
		Return(&entities.UserLevel{GuildID: testGuildID, UserID: testUserID, TextXP: 20, VoiceXP: 7}, nil)

	var persisted *entities.UserLevel
	f.userLevelRepo.On("Upsert", ctx, mock.AnythingOfType("*entities.UserLevel")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*entities.UserLevel)
		}).Return(nil)

	// 4 minutes at a pinned 3 XP/min
	_, err := f.service.AwardVoiceXP(ctx, testGuildID, testUserID, testChannelID, 4, false)
	require.NoError(t, err)

	require.NotNil(t, persisted)
	assert.Equal(t, int64(20), persisted.TextXP, "text XP untouched")
	assert.Equal(t, int64(19), persisted.VoiceXP, "7 + 4*3")
}

func TestAwardVoiceXP_ZeroMinutesIsNoop(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()
	ctx := context.Background()

	levelUp, err := f.service.AwardVoiceXP(ctx, testGuildID, testUserID, testChannelID, 0, false)
	require.NoError(t, err)
	assert.Nil(t, levelUp)

	f.settingsRepo.AssertNotCalled(t, "GetGuildSettings", mock.Anything, mock.Anything)
	f.userLevelRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestAwardTextXP_NotificationChannelOverride(t *testing.T) {
	t.Parallel()
	f := newLevelingFixture()
	ctx := context.Background()

	override := int64(4242)
	settings := fixedSettings(5)
	settings.NotificationChannelID = &override
	settings.NotificationTemplate = "GG {user}, welcome to {level}"

	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).Return(settings, nil)
	f.specialChannelRepo.On("GetByChannel", ctx, testChannelID).Return(nil, nil)
	f.userLevelRepo.On("GetByUser", ctx, testUserID).
		Return(&entities.UserLevel{GuildID: testGuildID, UserID: testUserID, TextXP: 150}, nil)
	f.userLevelRepo.On("Upsert", ctx, mock.AnythingOfType("*entities.UserLevel")).Return(nil)
	f.levelRoleRepo.On("GetByLevel", ctx, int64(1)).Return(nil, nil)
	f.messaging.On("SendMessage", ctx, testGuildID, override, "GG <@2000>, welcome to 1").Return(nil)

	levelUp, err := f.service.AwardTextXP(ctx, testGuildID, testUserID, testChannelID, false)
	require.NoError(t, err)
	require.NotNil(t, levelUp)
	assert.Nil(t, levelUp.RoleID)
	assert.Equal(t, "GG <@2000>, welcome to 1", levelUp.Message)

	f.service.AnnounceLevelUp(ctx, levelUp)

	// Configured channel wins, no system channel fallback
	f.messaging.AssertNotCalled(t, "SystemChannelID", mock.Anything, mock.Anything)
	f.messaging.AssertExpectations(t)
}

func TestRollRange(t *testing.T) {
	t.Parallel()

	t.Run("degenerate range returns min", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, int64(7), rollRange(7, 7))
	})

	t.Run("inverted range collapses to min", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, int64(15), rollRange(15, 5))
	})

	t.Run("stays within bounds", func(t *testing.T) {
		t.Parallel()
		for i := 0; i < 100; i++ {
			got := rollRange(5, 15)
			assert.GreaterOrEqual(t, got, int64(5))
			assert.LessOrEqual(t, got, int64(15))
		}
	})
}

func TestRenderLevelUpMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<@2000>, you have reached level 3!",
		renderLevelUpMessage(entities.DefaultNotificationTemplate, 2000, 3))
	assert.Equal(t, "no placeholders",
		renderLevelUpMessage("no placeholders", 2000, 3))
	assert.Equal(t, "<@1> <@1> 2 2",
		renderLevelUpMessage("{user} {user} {level} {level}", 1, 2))
}
