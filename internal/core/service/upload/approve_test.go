package upload_test

import (
	"context"
	"testing"

	"assetvault/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploadService_Approve_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	tenantID := uuid.New()
	assetID := uuid.New()
	actorID := uuid.New()
	asset := &domain.Asset{ID: assetID, TenantID: tenantID, PendingApproval: true}

	m.uow.GetAssetRepoMock().On("FindByID", ctx, assetID).Return(asset, nil)
	m.uow.GetAssetRepoMock().On("SetPublication", ctx, assetID, true, false, &actorID).Return(nil)

	// Act
	approved, err := service.Approve(ctx, tenantID, assetID, actorID)

	// Assert
	require.NoError(t, err)
	assert.True(t, approved.Published)
	assert.False(t, approved.PendingApproval)
	require.NotNil(t, approved.PublishedBy)
	assert.Equal(t, actorID, *approved.PublishedBy)
	m.uow.GetAssetRepoMock().AssertExpectations(t)
}

func TestUploadService_Approve_AlreadyPublished(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	tenantID := uuid.New()
	assetID := uuid.New()
	asset := &domain.Asset{ID: assetID, TenantID: tenantID, Published: true}

	m.uow.GetAssetRepoMock().On("FindByID", ctx, assetID).Return(asset, nil)

	// Act
	approved, err := service.Approve(ctx, tenantID, assetID, uuid.New())

	// Assert
	require.NoError(t, err)
	assert.True(t, approved.Published)
	m.uow.GetAssetRepoMock().AssertNotCalled(t, "SetPublication",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_Approve_ForeignAsset(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	assetID := uuid.New()
	asset := &domain.Asset{ID: assetID, TenantID: uuid.New(), PendingApproval: true}

	m.uow.GetAssetRepoMock().On("FindByID", ctx, assetID).Return(asset, nil)

	// Act
	approved, err := service.Approve(ctx, uuid.New(), assetID, uuid.New())

	// Assert
	assert.Nil(t, approved)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}
