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

func TestUploadService_Cancel_Success_Direct(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	sessionID := uuid.New()
	session := liveSession(sessionID, domain.SessionStatusUploading)
	key := domain.ObjectKeyFor(sessionID)

	m.uow.GetSessionRepoMock().
		On("FindByID", ctx, sessionID).
		Return(session, nil)
	m.uow.GetSessionRepoMock().
		On("Cancel", ctx, sessionID, domain.FailureReasonUserCancelled).
		Return(nil)
	m.storage.On("DeleteObject", ctx, session.BucketName, key).Return(nil)

	// Act
	result, err := service.Cancel(ctx, sessionID, "changed my mind")

	// Assert
	require.NoError(t, err)
	assert.False(t, result.AlreadyTerminal)

	m.uow.GetSessionRepoMock().AssertExpectations(t)
	m.storage.AssertExpectations(t)
	m.storage.AssertNotCalled(t, "AbortMultipart", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_Cancel_Success_Chunked_AbortsTransfer(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	sessionID := uuid.New()
	session := liveSession(sessionID, domain.SessionStatusUploading)
	session.TransferType = domain.TransferTypeChunked
	session.MultipartUploadID = "upload-789"
	key := domain.ObjectKeyFor(sessionID)

	m.uow.GetSessionRepoMock().
		On("FindByID", ctx, sessionID).
		Return(session, nil)
	m.uow.GetSessionRepoMock().
		On("Cancel", ctx, sessionID, domain.FailureReasonUserCancelled).
		Return(nil)
	m.storage.On("AbortMultipart", ctx, session.BucketName, key, "upload-789").Return(nil)
	m.storage.On("DeleteObject", ctx, session.BucketName, key).Return(nil)

	// Act
	result, err := service.Cancel(ctx, sessionID, "")

	// Assert
	require.NoError(t, err)
	assert.False(t, result.AlreadyTerminal)
	m.storage.AssertExpectations(t)
}

func TestUploadService_Cancel_AlreadyCancelled(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	sessionID := uuid.New()
	m.uow.GetSessionRepoMock().
		On("FindByID", ctx, sessionID).
		Return(liveSession(sessionID, domain.SessionStatusCancelled), nil)

	// Act
	result, err := service.Cancel(ctx, sessionID, "again")

	// Assert
	require.NoError(t, err)
	assert.True(t, result.AlreadyTerminal)
	m.uow.GetSessionRepoMock().AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
	m.storage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_Cancel_CompletedSession(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	sessionID := uuid.New()
	m.uow.GetSessionRepoMock().
		On("FindByID", ctx, sessionID).
		Return(liveSession(sessionID, domain.SessionStatusCompleted), nil)

	// Act
	result, err := service.Cancel(ctx, sessionID, "too late")

	// Assert: nothing to do, never an error.
	require.NoError(t, err)
	assert.True(t, result.AlreadyTerminal)
	m.uow.GetSessionRepoMock().AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
	m.storage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_Cancel_FailedSession(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	sessionID := uuid.New()
	m.uow.GetSessionRepoMock().
		On("FindByID", ctx, sessionID).
		Return(liveSession(sessionID, domain.SessionStatusFailed), nil)

	// Act
	result, err := service.Cancel(ctx, sessionID, "")

	// Assert
	require.NoError(t, err)
	assert.True(t, result.AlreadyTerminal)
	m.uow.GetSessionRepoMock().AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}
