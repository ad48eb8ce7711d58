package storage

import (
	"context"
	"time"

	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) ExistsAndStat(ctx context.Context, bucket, key string) (*port.ObjectStat, error) {
	args := m.Called(ctx, bucket, key)
	return args.Get(0).(*port.ObjectStat), args.Error(1)
}

func (m *MockStorage) PresignPut(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, map[string]string, *time.Time, error) {
	args := m.Called(ctx, bucket, key, contentType, ttl)
	return args.String(0), args.Get(1).(map[string]string), args.Get(2).(*time.Time), args.Error(3)
}

func (m *MockStorage) PresignPutPart(ctx context.Context, bucket, key, uploadID string, partNumber int, ttl time.Duration) (string, map[string]string, *time.Time, error) {
	args := m.Called(ctx, bucket, key, uploadID, partNumber, ttl)
	return args.String(0), args.Get(1).(map[string]string), args.Get(2).(*time.Time), args.Error(3)
}

func (m *MockStorage) InitiateMultipart(ctx context.Context, bucket, key, contentType string) (string, error) {
	args := m.Called(ctx, bucket, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) ListParts(ctx context.Context, bucket, key, uploadID string, maxParts, partNumberMarker int) ([]domain.UploadPart, int, error) {
	args := m.Called(ctx, bucket, key, uploadID, maxParts, partNumberMarker)
	return args.Get(0).([]domain.UploadPart), args.Int(1), args.Error(2)
}

func (m *MockStorage) CompleteMultipart(ctx context.Context, bucket, key, uploadID string, orderedParts []domain.UploadPart) error {
	args := m.Called(ctx, bucket, key, uploadID, orderedParts)
	return args.Error(0)
}

func (m *MockStorage) AbortMultipart(ctx context.Context, bucket, key, uploadID string) error {
	args := m.Called(ctx, bucket, key, uploadID)
	return args.Error(0)
}

func (m *MockStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

type MockBucketResolver struct {
	mock.Mock
}

func NewMockBucketResolver() *MockBucketResolver {
	return &MockBucketResolver{}
}

func (m *MockBucketResolver) Resolve(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}
