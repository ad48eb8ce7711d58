package upload_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"assetvault/internal/adapters/collaborator"
	"assetvault/internal/adapters/repository"
	"assetvault/internal/adapters/storage"
	"assetvault/internal/config"
	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"
	"assetvault/internal/core/service/upload"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var defaultCfg = config.UploadConfig{
	MultipartThreshold:    1000,
	MaxUploadSize:         100000,
	PartSize:              500,
	SessionTTL:            time.Hour,
	BatchMaxItems:         5,
	ReapEvery:             time.Minute,
	ReapBatchSize:         10,
	EscalateAfterFailures: 3,
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type serviceMocks struct {
	uow        *repository.MockUnitOfWork
	storage    *storage.MockStorage
	buckets    *storage.MockBucketResolver
	plans      *collaborator.MockPlanGate
	categories *collaborator.MockCategoryGate
	metadata   *collaborator.MockMetadataPersister
	notifier   *collaborator.MockNotifier
	tickets    *collaborator.MockTicketEscalator
	events     *collaborator.MockEventPublisher
}

func newTestService() (port.UploadService, *serviceMocks) {
	m := &serviceMocks{
		uow:        repository.NewMockUnitOfWork(),
		storage:    storage.NewMockStorage(),
		buckets:    storage.NewMockBucketResolver(),
		plans:      collaborator.NewMockPlanGate(),
		categories: collaborator.NewMockCategoryGate(),
		metadata:   collaborator.NewMockMetadataPersister(),
		notifier:   collaborator.NewMockNotifier(),
		tickets:    collaborator.NewMockTicketEscalator(),
		events:     collaborator.NewMockEventPublisher(),
	}

	service := upload.NewUploadService(m.uow, m.storage, upload.Collaborators{
		Plans:      m.plans,
		Buckets:    m.buckets,
		Categories: m.categories,
		Metadata:   m.metadata,
		Notifier:   m.notifier,
		Tickets:    m.tickets,
		Events:     m.events,
	}, defaultCfg, testLogger)

	return service, m
}

func TestUploadService_Initiate_Success_Direct(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	tenantID := uuid.New()
	presignedURL := "https://minio.example.com/tenant-bucket/key"
	headers := map[string]string{"Content-Type": "image/png"}
	expiresAt := time.Now().Add(time.Hour)

	m.plans.On("CheckUploadAllowed", ctx, tenantID, int64(800)).Return(nil)
	m.buckets.On("Resolve", ctx, tenantID).Return("tenant-bucket", nil)
	m.uow.On("Execute", ctx, mock.Anything).Return(nil)
	m.storage.
		On("PresignPut", ctx, "tenant-bucket", mock.Anything, "image/png", defaultCfg.SessionTTL).
		Return(presignedURL, headers, &expiresAt, nil)
	m.uow.GetSessionRepoMock().
		On("Create", ctx, mock.MatchedBy(func(s domain.UploadSession) bool {
			return s.TenantID == tenantID &&
				s.Status == domain.SessionStatusInitiating &&
				s.TransferType == domain.TransferTypeDirect &&
				s.Mode == domain.SessionModeCreate &&
				s.ExpectedSize == 800
		})).
		Return(nil)

	// Act
	result, err := service.Initiate(ctx, port.InitiateRequest{
		TenantID:       tenantID,
		FileName:       "logo.png",
		ContentType:    "image/png",
		SizeBytes:      800,
		CorrelationRef: "item-1",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.TransferTypeDirect, result.TransferType)
	assert.Equal(t, presignedURL, result.UploadURL)
	assert.Equal(t, headers, result.UploadHeaders)
	assert.Equal(t, "item-1", result.CorrelationRef)
	assert.Empty(t, result.MultipartUploadID)
	assert.NotEqual(t, uuid.Nil, result.SessionID)

	m.uow.AssertExpectations(t)
	m.storage.AssertExpectations(t)
	m.uow.GetSessionRepoMock().AssertExpectations(t)
}

func TestUploadService_Initiate_Success_Chunked(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	tenantID := uuid.New()
	sizeBytes := int64(5000) // above the threshold

	m.plans.On("CheckUploadAllowed", ctx, tenantID, sizeBytes).Return(nil)
	m.buckets.On("Resolve", ctx, tenantID).Return("tenant-bucket", nil)
	m.uow.On("Execute", ctx, mock.Anything).Return(nil)
	m.storage.
		On("InitiateMultipart", ctx, "tenant-bucket", mock.Anything, "video/mp4").
		Return("upload-123", nil)
	m.uow.GetSessionRepoMock().
		On("Create", ctx, mock.MatchedBy(func(s domain.UploadSession) bool {
			return s.TransferType == domain.TransferTypeChunked && s.MultipartUploadID == "upload-123"
		})).
		Return(nil)

	// Act
	result, err := service.Initiate(ctx, port.InitiateRequest{
		TenantID:    tenantID,
		FileName:    "clip.mp4",
		ContentType: "video/mp4",
		SizeBytes:   sizeBytes,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.TransferTypeChunked, result.TransferType)
	assert.Equal(t, "upload-123", result.MultipartUploadID)
	assert.Equal(t, defaultCfg.PartSize, result.PartSizeBytes)
	assert.Empty(t, result.UploadURL)

	m.storage.AssertExpectations(t)
	m.uow.GetSessionRepoMock().AssertExpectations(t)
}

func TestUploadService_Initiate_PlanLimitExceeded(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	tenantID := uuid.New()
	m.plans.
		On("CheckUploadAllowed", ctx, tenantID, int64(900)).
		Return(&domain.PlanLimitError{LimitBytes: 500, RequestedBytes: 900})

	// Act
	result, err := service.Initiate(ctx, port.InitiateRequest{
		TenantID:    tenantID,
		FileName:    "big.bin",
		ContentType: "application/octet-stream",
		SizeBytes:   900,
	})

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrPlanLimitExceeded)

	var planErr *domain.PlanLimitError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, int64(500), planErr.LimitBytes)

	m.buckets.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	m.uow.GetSessionRepoMock().AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadService_Initiate_BucketNotReady(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	tenantID := uuid.New()
	m.plans.On("CheckUploadAllowed", ctx, tenantID, int64(100)).Return(nil)
	m.buckets.On("Resolve", ctx, tenantID).Return("", domain.ErrBucketNotReady)

	// Act
	result, err := service.Initiate(ctx, port.InitiateRequest{
		TenantID:    tenantID,
		FileName:    "doc.pdf",
		ContentType: "application/pdf",
		SizeBytes:   100,
	})

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrBucketNotReady)
}

func TestUploadService_Initiate_InvalidSize(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService()

	result, err := service.Initiate(ctx, port.InitiateRequest{
		TenantID:    uuid.New(),
		FileName:    "empty.txt",
		ContentType: "text/plain",
		SizeBytes:   0,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	m.plans.AssertNotCalled(t, "CheckUploadAllowed", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_Initiate_AboveAbsoluteCap(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	result, err := service.Initiate(ctx, port.InitiateRequest{
		TenantID:    uuid.New(),
		FileName:    "huge.bin",
		ContentType: "application/octet-stream",
		SizeBytes:   defaultCfg.MaxUploadSize + 1,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUploadTooLarge)
}

func TestUploadService_Initiate_ReplaceMode(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	tenantID := uuid.New()
	targetID := uuid.New()

	m.plans.On("CheckUploadAllowed", ctx, tenantID, int64(400)).Return(nil)
	m.buckets.On("Resolve", ctx, tenantID).Return("tenant-bucket", nil)
	m.uow.GetAssetRepoMock().
		On("FindByID", ctx, targetID).
		Return(&domain.Asset{ID: targetID, TenantID: tenantID}, nil)
	m.uow.On("Execute", ctx, mock.Anything).Return(nil)
	m.storage.
		On("PresignPut", ctx, "tenant-bucket", mock.Anything, "image/jpeg", defaultCfg.SessionTTL).
		Return("https://example.com/put", map[string]string{}, &time.Time{}, nil)
	m.uow.GetSessionRepoMock().
		On("Create", ctx, mock.MatchedBy(func(s domain.UploadSession) bool {
			return s.Mode == domain.SessionModeReplace &&
				s.TargetAssetID != nil && *s.TargetAssetID == targetID
		})).
		Return(nil)

	// Act
	result, err := service.Initiate(ctx, port.InitiateRequest{
		TenantID:      tenantID,
		FileName:      "replacement.jpg",
		ContentType:   "image/jpeg",
		SizeBytes:     400,
		TargetAssetID: &targetID,
	})

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, result)
	m.uow.GetSessionRepoMock().AssertExpectations(t)
}

func TestUploadService_Initiate_ReplaceMode_ForeignAsset(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service, m := newTestService()

	tenantID := uuid.New()
	targetID := uuid.New()

	m.plans.On("CheckUploadAllowed", ctx, tenantID, int64(400)).Return(nil)
	m.buckets.On("Resolve", ctx, tenantID).Return("tenant-bucket", nil)
	m.uow.GetAssetRepoMock().
		On("FindByID", ctx, targetID).
		Return(&domain.Asset{ID: targetID, TenantID: uuid.New()}, nil)

	// Act
	result, err := service.Initiate(ctx, port.InitiateRequest{
		TenantID:      tenantID,
		FileName:      "replacement.jpg",
		ContentType:   "image/jpeg",
		SizeBytes:     400,
		TargetAssetID: &targetID,
	})

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
	m.uow.GetSessionRepoMock().AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
