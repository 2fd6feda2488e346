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

type boosterFixture struct {
	boosterRoleRepo *testhelpers.MockBoosterRoleRepository
	settingsRepo    *testhelpers.MockGuildSettingsRepository
	membership      *testhelpers.MockMembershipGateway
	service         *boosterService
}

func newBoosterFixture() *boosterFixture {
	f := &boosterFixture{
		boosterRoleRepo: new(testhelpers.MockBoosterRoleRepository),
		settingsRepo:    new(testhelpers.MockGuildSettingsRepository),
		membership:      new(testhelpers.MockMembershipGateway),
	}
	f.service = NewBoosterService(f.boosterRoleRepo, f.settingsRepo, f.membership).(*boosterService)
	return f
}

func TestEnsureCustomRole_CreatesNewRole(t *testing.T) {
	t.Parallel()
	f := newBoosterFixture()
	ctx := context.Background()

	f.boosterRoleRepo.On("GetByUser", ctx, testUserID).Return(nil, nil)
	f.membership.On("CreateRole", ctx, testGuildID, "Neon", 0xff8800).Return(int64(55), nil)
	f.boosterRoleRepo.On("Create", ctx, testUserID, int64(55)).
		Return(&entities.BoosterRole{ID: 1, GuildID: testGuildID, UserID: testUserID, RoleID: 55}, nil)
	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).
		Return(entities.NewGuildSettings(testGuildID), nil)
	f.membership.On("GrantRole", ctx, testGuildID, testUserID, int64(55)).Return(nil)

	record, created, err := f.service.EnsureCustomRole(ctx, testGuildID, testUserID, "Neon", 0xff8800)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(55), record.RoleID)

	// No reference role configured, so no repositioning
	f.membership.AssertNotCalled(t, "PositionRoleBelow",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureCustomRole_EditsExistingRole(t *testing.T) {
	t.Parallel()
	f := newBoosterFixture()
	ctx := context.Background()

	existing := &entities.BoosterRole{ID: 1, GuildID: testGuildID, UserID: testUserID, RoleID: 55}
	f.boosterRoleRepo.On("GetByUser", ctx, testUserID).Return(existing, nil)
	f.membership.On("EditRole", ctx, testGuildID, int64(55), "Neon", 0xff8800).Return(nil)

	referenceRole := int64(66)
	settings := entities.NewGuildSettings(testGuildID)
	settings.BoosterReferenceRoleID = &referenceRole
	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).Return(settings, nil)
	f.membership.On("PositionRoleBelow", ctx, testGuildID, int64(55), referenceRole).Return(nil)
	f.membership.On("GrantRole", ctx, testGuildID, testUserID, int64(55)).Return(nil)

	record, created, err := f.service.EnsureCustomRole(ctx, testGuildID, testUserID, "Neon", 0xff8800)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(55), record.RoleID)
	f.membership.AssertExpectations(t)
}

func TestEnsureCustomRole_RecreatesDeletedRole(t *testing.T) {
	t.Parallel()
	f := newBoosterFixture()
	ctx := context.Background()

	existing := &entities.BoosterRole{ID: 1, GuildID: testGuildID, UserID: testUserID, RoleID: 55}
	f.boosterRoleRepo.On("GetByUser", ctx, testUserID).Return(existing, nil)
	// Edit fails because the role was deleted on the platform side
	f.membership.On("EditRole", ctx, testGuildID, int64(55), "Neon", 0xff8800).Return(assert.AnError)
	f.membership.On("CreateRole", ctx, testGuildID, "Neon", 0xff8800).Return(int64(77), nil)
	f.boosterRoleRepo.On("UpdateRole", ctx, int64(1), int64(77)).Return(nil)
	f.settingsRepo.On("GetGuildSettings", ctx, testGuildID).
		Return(entities.NewGuildSettings(testGuildID), nil)
	f.membership.On("GrantRole", ctx, testGuildID, testUserID, int64(77)).Return(nil)

	record, created, err := f.service.EnsureCustomRole(ctx, testGuildID, testUserID, "Neon", 0xff8800)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(77), record.RoleID)
}

func TestRemoveCustomRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes role and record", func(t *testing.T) {
		t.Parallel()
		f := newBoosterFixture()

		record := &entities.BoosterRole{ID: 1, GuildID: testGuildID, UserID: testUserID, RoleID: 55}
		f.boosterRoleRepo.On("GetByUser", ctx, testUserID).Return(record, nil)
		f.membership.On("RevokeRole", ctx, testGuildID, testUserID, int64(55)).Return(nil)
		f.membership.On("DeleteRole", ctx, testGuildID, int64(55), "User stopped boosting").Return(nil)
		f.boosterRoleRepo.On("Delete", ctx, int64(1)).Return(nil)

		require.NoError(t, f.service.RemoveCustomRole(ctx, testGuildID, testUserID))
		f.boosterRoleRepo.AssertExpectations(t)
	})

	t.Run("no record is a noop", func(t *testing.T) {
		t.Parallel()
		f := newBoosterFixture()

		f.boosterRoleRepo.On("GetByUser", ctx, testUserID).Return(nil, nil)

		require.NoError(t, f.service.RemoveCustomRole(ctx, testGuildID, testUserID))
		f.membership.AssertNotCalled(t, "DeleteRole",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("platform failures still clean up the record", func(t *testing.T) {
		t.Parallel()
		f := newBoosterFixture()

		record := &entities.BoosterRole{ID: 1, GuildID: testGuildID, UserID: testUserID, RoleID: 55}
		f.boosterRoleRepo.On("GetByUser", ctx, testUserID).Return(record, nil)
		f.membership.On("RevokeRole", ctx, testGuildID, testUserID, int64(55)).Return(assert.AnError)
		f.membership.On("DeleteRole", ctx, testGuildID, int64(55), "User stopped boosting").Return(assert.AnError)
		f.boosterRoleRepo.On("Delete", ctx, int64(1)).Return(nil)

		require.NoError(t, f.service.RemoveCustomRole(ctx, testGuildID, testUserID))
		f.boosterRoleRepo.AssertExpectations(t)
	})
}
