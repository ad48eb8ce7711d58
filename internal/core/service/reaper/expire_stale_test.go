package reaper_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"assetvault/internal/adapters/repository"
	"assetvault/internal/adapters/storage"
	"assetvault/internal/config"
	"assetvault/internal/core/domain"
	"assetvault/internal/core/service/reaper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var defaultCfg = config.UploadConfig{
	SessionTTL:    time.Hour,
	ReapEvery:     time.Minute,
	ReapBatchSize: 10,
}

func staleSession(transferType domain.TransferType, uploadID string) domain.UploadSession {
	return domain.UploadSession{
		ID:                uuid.New(),
		TenantID:          uuid.New(),
		TransferType:      transferType,
		MultipartUploadID: uploadID,
		BucketName:        "tenant-bucket",
		Status:            domain.SessionStatusUploading,
		ExpiresAt:         time.Now().Add(-time.Hour),
	}
}

func TestReaperService_ExpireStale_SweepsDirectAndChunked(t *testing.T) {
	// Arrange
	ctx := context.Background()
	now := time.Now()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := reaper.NewReaperService(mockUow, mockStorage, defaultCfg, testLogger)

	direct := staleSession(domain.TransferTypeDirect, "")
	chunked := staleSession(domain.TransferTypeChunked, "upload-321")

	mockUow.GetSessionRepoMock().
		On("FindAllExpired", ctx, now, defaultCfg.ReapBatchSize).
		Return([]domain.UploadSession{direct, chunked}, nil)
	mockUow.GetSessionRepoMock().
		On("UpdateStatus", ctx, direct.ID, domain.SessionStatusExpired).
		Return(nil)
	mockUow.GetSessionRepoMock().
		On("UpdateStatus", ctx, chunked.ID, domain.SessionStatusExpired).
		Return(nil)
	mockStorage.
		On("AbortMultipart", ctx, "tenant-bucket", domain.ObjectKeyFor(chunked.ID), "upload-321").
		Return(nil)
	mockStorage.On("DeleteObject", ctx, "tenant-bucket", domain.ObjectKeyFor(direct.ID)).Return(nil)
	mockStorage.On("DeleteObject", ctx, "tenant-bucket", domain.ObjectKeyFor(chunked.ID)).Return(nil)

	// Act
	err := service.ExpireStale(ctx, now)

	// Assert
	require.NoError(t, err)
	mockUow.GetSessionRepoMock().AssertExpectations(t)
	mockStorage.AssertExpectations(t)
}

func TestReaperService_ExpireStale_SkipsSessionsSettledConcurrently(t *testing.T) {
	// Arrange
	ctx := context.Background()
	now := time.Now()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := reaper.NewReaperService(mockUow, mockStorage, defaultCfg, testLogger)

	settled := staleSession(domain.TransferTypeDirect, "")
	stale := staleSession(domain.TransferTypeDirect, "")

	mockUow.GetSessionRepoMock().
		On("FindAllExpired", ctx, now, defaultCfg.ReapBatchSize).
		Return([]domain.UploadSession{settled, stale}, nil)
	mockUow.GetSessionRepoMock().
		On("UpdateStatus", ctx, settled.ID, domain.SessionStatusExpired).
		Return(domain.ErrSessionNotFound)
	mockUow.GetSessionRepoMock().
		On("UpdateStatus", ctx, stale.ID, domain.SessionStatusExpired).
		Return(nil)
	mockStorage.On("DeleteObject", ctx, "tenant-bucket", domain.ObjectKeyFor(stale.ID)).Return(nil)

	// Act
	err := service.ExpireStale(ctx, now)

	// Assert
	require.NoError(t, err)
	mockStorage.AssertNotCalled(t, "DeleteObject", ctx, "tenant-bucket", domain.ObjectKeyFor(settled.ID))
	mockUow.GetSessionRepoMock().AssertExpectations(t)
}

func TestReaperService_ExpireStale_RepositoryFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	now := time.Now()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := reaper.NewReaperService(mockUow, mockStorage, defaultCfg, testLogger)

	expectedErr := errors.New("connection refused")
	mockUow.GetSessionRepoMock().
		On("FindAllExpired", ctx, now, defaultCfg.ReapBatchSize).
		Return([]domain.UploadSession{}, expectedErr)

	// Act
	err := service.ExpireStale(ctx, now)

	// Assert
	assert.ErrorIs(t, err, expectedErr)
	mockStorage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything, mock.Anything)
}
