package port

import (
	"assetvault/internal/core/domain"
	"context"
	"time"

	"github.com/google/uuid"
)

// InitiateRequest carries the parameters of a single session initiation.
// TenantID is threaded explicitly through every call; there is no ambient
// tenant or brand context.
type InitiateRequest struct {
	TenantID       uuid.UUID
	BrandID        *uuid.UUID
	FileName       string
	ContentType    string
	SizeBytes      int64
	CorrelationRef string
	// TargetAssetID switches the session to replace mode: the completed
	// upload overwrites the file of this asset instead of creating one.
	TargetAssetID *uuid.UUID
}

// InitiateResult is the upload grant returned to the client.
type InitiateResult struct {
	SessionID         uuid.UUID
	CorrelationRef    string
	TransferType      domain.TransferType
	UploadURL         string
	UploadHeaders     map[string]string
	MultipartUploadID string
	PartSizeBytes     int64
	ExpiresAt         time.Time
}

// BatchItem is one file within a batch initiation.
type BatchItem struct {
	FileName       string
	ContentType    string
	SizeBytes      int64
	CorrelationRef string
	TargetAssetID  *uuid.UUID
}

// InitiateBatchRequest carries the parameters of a batched initiation.
type InitiateBatchRequest struct {
	TenantID uuid.UUID
	BrandID  *uuid.UUID
	Items    []BatchItem
}

// BatchItemResult is the isolated outcome of one batch item: either a
// grant or that item's error, never both.
type BatchItemResult struct {
	CorrelationRef string
	Result         *InitiateResult
	Err            error
}

// InitiateBatchResult groups the per-item outcomes under one batch reference.
type InitiateBatchResult struct {
	BatchRef string
	Items    []BatchItemResult
}

// PartGrant is one presigned part upload URL of a chunked transfer.
type PartGrant struct {
	PartNumber int
	URL        string
	Headers    map[string]string
	ExpiresAt  time.Time
}

// MarkUploadingResult reports whether the call actually transitioned the
// session or only refreshed its activity timestamp.
type MarkUploadingResult struct {
	Transitioned bool
}

// CancelResult reports whether there was anything to cancel.
type CancelResult struct {
	AlreadyTerminal bool
}

// CompleteRequest carries the client-declared facts of a completion call.
// None of them override what the object store reports; Title and FileName
// are human-facing labels only.
type CompleteRequest struct {
	SessionID      uuid.UUID
	ActorID        uuid.UUID
	FileName       string
	Title          string
	CategoryID     *uuid.UUID
	MetadataFields map[string]string
}

// CompleteResult returns the asset the session resolved to.
type CompleteResult struct {
	Asset            *domain.Asset
	AlreadyCompleted bool
}

// UploadService is an interface to define the upload session lifecycle
type UploadService interface {
	Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error)
	InitiateBatch(ctx context.Context, req InitiateBatchRequest) (*InitiateBatchResult, error)
	PresignParts(ctx context.Context, sessionID uuid.UUID, partNumbers []int) ([]PartGrant, error)
	MarkUploading(ctx context.Context, sessionID uuid.UUID) (*MarkUploadingResult, error)
	Cancel(ctx context.Context, sessionID uuid.UUID, reason string) (*CancelResult, error)
	Complete(ctx context.Context, req CompleteRequest) (*CompleteResult, error)
	// Approve publishes an asset held in pending approval. Idempotent:
	// approving a published asset returns it unchanged.
	Approve(ctx context.Context, tenantID, assetID, actorID uuid.UUID) (*domain.Asset, error)
}

// ReaperService is a service that reclaims expired sessions and their
// orphaned remote objects.
type ReaperService interface {
	ExpireStale(ctx context.Context, now time.Time) error
}
