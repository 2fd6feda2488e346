package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"leveler/domain/entities"
)

// MockMembershipGateway is a mock implementation of MembershipGateway
type MockMembershipGateway struct {
	mock.Mock
}

func (m *MockMembershipGateway) GrantRole(ctx context.Context, guildID, userID, roleID int64) error {
	args := m.Called(ctx, guildID, userID, roleID)
	return args.Error(0)
}

func (m *MockMembershipGateway) RevokeRole(ctx context.Context, guildID, userID, roleID int64) error {
	args := m.Called(ctx, guildID, userID, roleID)
	return args.Error(0)
}

func (m *MockMembershipGateway) CreateRole(ctx context.Context, guildID int64, name string, color int) (int64, error) {
	args := m.Called(ctx, guildID, name, color)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMembershipGateway) EditRole(ctx context.Context, guildID, roleID int64, name string, color int) error {
	args := m.Called(ctx, guildID, roleID, name, color)
	return args.Error(0)
}

func (m *MockMembershipGateway) DeleteRole(ctx context.Context, guildID, roleID int64, reason string) error {
	args := m.Called(ctx, guildID, roleID, reason)
	return args.Error(0)
}

func (m *MockMembershipGateway) PositionRoleBelow(ctx context.Context, guildID, roleID, referenceRoleID int64) error {
	args := m.Called(ctx, guildID, roleID, referenceRoleID)
	return args.Error(0)
}

// MockMessagingGateway is a mock implementation of MessagingGateway
type MockMessagingGateway struct {
	mock.Mock
}

func (m *MockMessagingGateway) SendMessage(ctx context.Context, guildID, channelID int64, content string) error {
	args := m.Called(ctx, guildID, channelID, content)
	return args.Error(0)
}

func (m *MockMessagingGateway) SystemChannelID(ctx context.Context, guildID int64) (*int64, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

// MockLevelingService is a mock implementation of LevelingService
type MockLevelingService struct {
	mock.Mock
}

func (m *MockLevelingService) AwardTextXP(ctx context.Context, guildID, userID, channelID int64, isBooster bool) (*entities.LevelUp, error) {
	args := m.Called(ctx, guildID, userID, channelID, isBooster)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LevelUp), args.Error(1)
}

func (m *MockLevelingService) AwardVoiceXP(ctx context.Context, guildID, userID, channelID, durationMinutes int64, isBooster bool) (*entities.LevelUp, error) {
	args := m.Called(ctx, guildID, userID, channelID, durationMinutes, isBooster)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LevelUp), args.Error(1)
}

func (m *MockLevelingService) AnnounceLevelUp(ctx context.Context, levelUp *entities.LevelUp) {
	m.Called(ctx, levelUp)
}
