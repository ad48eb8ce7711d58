package port

import (
	"assetvault/internal/core/domain"
	"context"
	"time"

	"github.com/google/uuid"
)

// ObjectStat reports the verified facts about a remote object. Exists is
// false when nothing lives at the key; the other fields are then zero.
type ObjectStat struct {
	Exists      bool
	SizeBytes   int64
	ContentType string
}

// ObjectStorage is an interface to define object store gateway interactions
type ObjectStorage interface {
	ExistsAndStat(ctx context.Context, bucket, key string) (*ObjectStat, error)
	PresignPut(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, map[string]string, *time.Time, error)
	PresignPutPart(ctx context.Context, bucket, key, uploadID string, partNumber int, ttl time.Duration) (string, map[string]string, *time.Time, error)
	InitiateMultipart(ctx context.Context, bucket, key, contentType string) (string, error)
	ListParts(ctx context.Context, bucket, key, uploadID string, maxParts, partNumberMarker int) ([]domain.UploadPart, int, error)
	CompleteMultipart(ctx context.Context, bucket, key, uploadID string, orderedParts []domain.UploadPart) error
	AbortMultipart(ctx context.Context, bucket, key, uploadID string) error
	DeleteObject(ctx context.Context, bucket, key string) error
}

// BucketResolver resolves (or provisions) the storage bucket bound to a
// tenant. Returns domain.ErrBucketNotReady while provisioning is still in
// flight; callers treat that as retryable.
type BucketResolver interface {
	Resolve(ctx context.Context, tenantID uuid.UUID) (string, error)
}
