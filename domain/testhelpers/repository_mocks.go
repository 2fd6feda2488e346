package testhelpers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"leveler/domain/entities"
)

// MockGuildSettingsRepository is a mock implementation of GuildSettingsRepository
type MockGuildSettingsRepository struct {
	mock.Mock
}

func (m *MockGuildSettingsRepository) GetGuildSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GuildSettings), args.Error(1)
}

func (m *MockGuildSettingsRepository) GetOrCreateGuildSettings(ctx context.Context, guildID int64) (*entities.GuildSettings, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GuildSettings), args.Error(1)
}

func (m *MockGuildSettingsRepository) UpdateGuildSettings(ctx context.Context, settings *entities.GuildSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockUserLevelRepository is a mock implementation of UserLevelRepository
type MockUserLevelRepository struct {
	mock.Mock
}

func (m *MockUserLevelRepository) GetByUser(ctx context.Context, userID int64) (*entities.UserLevel, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserLevel), args.Error(1)
}

func (m *MockUserLevelRepository) Upsert(ctx context.Context, userLevel *entities.UserLevel) error {
	args := m.Called(ctx, userLevel)
	return args.Error(0)
}

func (m *MockUserLevelRepository) GetTopUsers(ctx context.Context, limit int) ([]*entities.UserLevel, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.UserLevel), args.Error(1)
}

func (m *MockUserLevelRepository) GetRank(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockVoiceSessionRepository is a mock implementation of VoiceSessionRepository
type MockVoiceSessionRepository struct {
	mock.Mock
}

func (m *MockVoiceSessionRepository) GetByUser(ctx context.Context, userID int64) (*entities.VoiceSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VoiceSession), args.Error(1)
}

func (m *MockVoiceSessionRepository) Create(ctx context.Context, userID, channelID int64, startTime time.Time) (*entities.VoiceSession, error) {
	args := m.Called(ctx, userID, channelID, startTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VoiceSession), args.Error(1)
}

func (m *MockVoiceSessionRepository) Delete(ctx context.Context, sessionID int64) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockSpecialChannelRepository is a mock implementation of SpecialChannelRepository
type MockSpecialChannelRepository struct {
	mock.Mock
}

func (m *MockSpecialChannelRepository) GetByChannel(ctx context.Context, channelID int64) (*entities.SpecialChannel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SpecialChannel), args.Error(1)
}

func (m *MockSpecialChannelRepository) Upsert(ctx context.Context, channel *entities.SpecialChannel) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

func (m *MockSpecialChannelRepository) DeleteByChannel(ctx context.Context, channelID int64) error {
	args := m.Called(ctx, channelID)
	return args.Error(0)
}

func (m *MockSpecialChannelRepository) List(ctx context.Context) ([]*entities.SpecialChannel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SpecialChannel), args.Error(1)
}

// MockLevelRoleRepository is a mock implementation of LevelRoleRepository
type MockLevelRoleRepository struct {
	mock.Mock
}

func (m *MockLevelRoleRepository) GetByLevel(ctx context.Context, level int64) (*entities.LevelRole, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LevelRole), args.Error(1)
}

func (m *MockLevelRoleRepository) Upsert(ctx context.Context, levelRole *entities.LevelRole) error {
	args := m.Called(ctx, levelRole)
	return args.Error(0)
}

func (m *MockLevelRoleRepository) DeleteByLevel(ctx context.Context, level int64) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockLevelRoleRepository) List(ctx context.Context) ([]*entities.LevelRole, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LevelRole), args.Error(1)
}

// MockBoosterRoleRepository is a mock implementation of BoosterRoleRepository
type MockBoosterRoleRepository struct {
	mock.Mock
}

func (m *MockBoosterRoleRepository) GetByUser(ctx context.Context, userID int64) (*entities.BoosterRole, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BoosterRole), args.Error(1)
}

func (m *MockBoosterRoleRepository) Create(ctx context.Context, userID, roleID int64) (*entities.BoosterRole, error) {
	args := m.Called(ctx, userID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BoosterRole), args.Error(1)
}

func (m *MockBoosterRoleRepository) UpdateRole(ctx context.Context, id, roleID int64) error {
	args := m.Called(ctx, id, roleID)
	return args.Error(0)
}

func (m *MockBoosterRoleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
