package repository

import (
	"context"
	"time"

	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUploadSessionRepository struct {
	mock.Mock
}

func NewMockUploadSessionRepository() *MockUploadSessionRepository {
	return &MockUploadSessionRepository{}
}

func (m *MockUploadSessionRepository) Create(ctx context.Context, session domain.UploadSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockUploadSessionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockUploadSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SessionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) Fail(ctx context.Context, id uuid.UUID, reason domain.FailureReason) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) Cancel(ctx context.Context, id uuid.UUID, reason domain.FailureReason) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) Complete(ctx context.Context, id uuid.UUID, uploadedSize int64) error {
	args := m.Called(ctx, id, uploadedSize)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) TouchActivity(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) AttachTicket(ctx context.Context, id uuid.UUID, ticketRef string) error {
	args := m.Called(ctx, id, ticketRef)
	return args.Error(0)
}

func (m *MockUploadSessionRepository) FindAllExpired(ctx context.Context, now time.Time, limit int) ([]domain.UploadSession, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).([]domain.UploadSession), args.Error(1)
}

type MockAssetRepository struct {
	mock.Mock
}

func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{}
}

func (m *MockAssetRepository) Create(ctx context.Context, asset domain.Asset) (port.AssetCreateOutcome, *domain.Asset, error) {
	args := m.Called(ctx, asset)
	return args.Get(0).(port.AssetCreateOutcome), args.Get(1).(*domain.Asset), args.Error(2)
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindBySessionIDForUpdate(ctx context.Context, sessionID uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) ReplaceFile(ctx context.Context, id uuid.UUID, fileName, contentType string, sizeBytes int64, objectKey string) error {
	args := m.Called(ctx, id, fileName, contentType, sizeBytes, objectKey)
	return args.Error(0)
}

func (m *MockAssetRepository) SetPublication(ctx context.Context, id uuid.UUID, published, pendingApproval bool, publishedBy *uuid.UUID) error {
	args := m.Called(ctx, id, published, pendingApproval, publishedBy)
	return args.Error(0)
}

type MockUnitOfWork struct {
	mock.Mock
	sessionRepo *MockUploadSessionRepository
	assetRepo   *MockAssetRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		sessionRepo: &MockUploadSessionRepository{},
		assetRepo:   &MockAssetRepository{},
	}
}

func (m *MockUnitOfWork) SessionRepo() port.UploadSessionRepository {
	return m.sessionRepo
}

func (m *MockUnitOfWork) AssetRepo() port.AssetRepository {
	return m.assetRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetSessionRepoMock() *MockUploadSessionRepository {
	return m.sessionRepo
}

func (m *MockUnitOfWork) GetAssetRepoMock() *MockAssetRepository {
	return m.assetRepo
}
