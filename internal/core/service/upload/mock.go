package upload

import (
	"context"

	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	mock.Mock
}

// NewMockUploadService creates a new MockUploadService
func NewMockUploadService() *MockUploadService {
	return &MockUploadService{}
}

func (m *MockUploadService) Initiate(ctx context.Context, req port.InitiateRequest) (*port.InitiateResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*port.InitiateResult), args.Error(1)
}

func (m *MockUploadService) InitiateBatch(ctx context.Context, req port.InitiateBatchRequest) (*port.InitiateBatchResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*port.InitiateBatchResult), args.Error(1)
}

func (m *MockUploadService) PresignParts(ctx context.Context, sessionID uuid.UUID, partNumbers []int) ([]port.PartGrant, error) {
	args := m.Called(ctx, sessionID, partNumbers)
	return args.Get(0).([]port.PartGrant), args.Error(1)
}

func (m *MockUploadService) MarkUploading(ctx context.Context, sessionID uuid.UUID) (*port.MarkUploadingResult, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(*port.MarkUploadingResult), args.Error(1)
}

func (m *MockUploadService) Cancel(ctx context.Context, sessionID uuid.UUID, reason string) (*port.CancelResult, error) {
	args := m.Called(ctx, sessionID, reason)
	return args.Get(0).(*port.CancelResult), args.Error(1)
}

func (m *MockUploadService) Complete(ctx context.Context, req port.CompleteRequest) (*port.CompleteResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*port.CompleteResult), args.Error(1)
}

func (m *MockUploadService) Approve(ctx context.Context, tenantID, assetID, actorID uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, tenantID, assetID, actorID)
	return args.Get(0).(*domain.Asset), args.Error(1)
}
