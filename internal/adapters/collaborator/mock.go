package collaborator

import (
	"context"

	"assetvault/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockPlanGate struct {
	mock.Mock
}

func NewMockPlanGate() *MockPlanGate {
	return &MockPlanGate{}
}

func (m *MockPlanGate) CheckUploadAllowed(ctx context.Context, tenantID uuid.UUID, sizeBytes int64) error {
	args := m.Called(ctx, tenantID, sizeBytes)
	return args.Error(0)
}

type MockCategoryGate struct {
	mock.Mock
}

func NewMockCategoryGate() *MockCategoryGate {
	return &MockCategoryGate{}
}

func (m *MockCategoryGate) Classify(ctx context.Context, tenantID, categoryID uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, tenantID, categoryID)
	return args.Get(0).(*domain.Category), args.Error(1)
}

type MockMetadataPersister struct {
	mock.Mock
}

func NewMockMetadataPersister() *MockMetadataPersister {
	return &MockMetadataPersister{}
}

func (m *MockMetadataPersister) PersistFields(ctx context.Context, assetID uuid.UUID, categoryID *uuid.UUID, fields map[string]string) (int, []string, error) {
	args := m.Called(ctx, assetID, categoryID, fields)
	return args.Int(0), args.Get(1).([]string), args.Error(2)
}

type MockNotifier struct {
	mock.Mock
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) AssetPendingApproval(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

type MockTicketEscalator struct {
	mock.Mock
}

func NewMockTicketEscalator() *MockTicketEscalator {
	return &MockTicketEscalator{}
}

func (m *MockTicketEscalator) Escalate(ctx context.Context, summary domain.TicketSummary) (string, error) {
	args := m.Called(ctx, summary)
	return args.String(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.AssetEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
