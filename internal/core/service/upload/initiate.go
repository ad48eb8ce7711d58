package upload

import (
	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (s *uploadService) Initiate(ctx context.Context, req port.InitiateRequest) (*port.InitiateResult, error) {
	item := port.BatchItem{
		FileName:       req.FileName,
		ContentType:    req.ContentType,
		SizeBytes:      req.SizeBytes,
		CorrelationRef: req.CorrelationRef,
		TargetAssetID:  req.TargetAssetID,
	}

	if err := s.validateItem(item); err != nil {
		return nil, err
	}

	if err := s.collab.Plans.CheckUploadAllowed(ctx, req.TenantID, req.SizeBytes); err != nil {
		return nil, err
	}

	bucket, err := s.collab.Buckets.Resolve(ctx, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("could not resolve tenant bucket: %w", err)
	}

	return s.initiateSession(ctx, bucket, "", req.TenantID, req.BrandID, item)
}

// validateItem rejects malformed initiation parameters before any remote
// or database work happens.
func (s *uploadService) validateItem(item port.BatchItem) error {
	if item.FileName == "" {
		return fmt.Errorf("%w: file name is required", domain.ErrInvalidRequest)
	}
	if item.ContentType == "" {
		return fmt.Errorf("%w: content type is required", domain.ErrInvalidRequest)
	}
	if item.SizeBytes <= 0 {
		return fmt.Errorf("%w: declared size must be positive", domain.ErrInvalidRequest)
	}
	if item.SizeBytes > s.cfg.MaxUploadSize {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte cap", domain.ErrUploadTooLarge, item.SizeBytes, s.cfg.MaxUploadSize)
	}
	return nil
}

// initiateSession creates one session in the resolved bucket: it picks the
// transfer strategy from the declared size, opens the remote transfer and
// persists the row in a single transaction, so a failed remote call never
// leaves a dangling session.
func (s *uploadService) initiateSession(ctx context.Context, bucket, batchRef string, tenantID uuid.UUID, brandID *uuid.UUID, item port.BatchItem) (*port.InitiateResult, error) {

	mode := domain.SessionModeCreate
	if item.TargetAssetID != nil {
		target, err := s.uow.AssetRepo().FindByID(ctx, *item.TargetAssetID)
		if err != nil {
			return nil, err
		}
		if target.TenantID != tenantID {
			return nil, domain.ErrAssetNotFound
		}
		mode = domain.SessionModeReplace
	}

	transferType := domain.TransferTypeDirect
	if item.SizeBytes > s.cfg.MultipartThreshold {
		transferType = domain.TransferTypeChunked
	}

	sessionID := uuid.New()
	key := domain.ObjectKeyFor(sessionID)
	now := time.Now()

	session := domain.UploadSession{
		ID:             sessionID,
		TenantID:       tenantID,
		BrandID:        brandID,
		CorrelationRef: item.CorrelationRef,
		BatchRef:       batchRef,
		TransferType:   transferType,
		Mode:           mode,
		TargetAssetID:  item.TargetAssetID,
		FileName:       item.FileName,
		ContentType:    item.ContentType,
		ExpectedSize:   item.SizeBytes,
		BucketName:     bucket,
		Status:         domain.SessionStatusInitiating,
		ExpiresAt:      now.Add(s.cfg.SessionTTL),
		LastActivityAt: now,
	}

	result := &port.InitiateResult{
		SessionID:      sessionID,
		CorrelationRef: item.CorrelationRef,
		TransferType:   transferType,
		ExpiresAt:      session.ExpiresAt,
	}

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {

		if transferType == domain.TransferTypeChunked {
			uploadID, err := s.storage.InitiateMultipart(ctx, bucket, key, item.ContentType)
			if err != nil {
				return err
			}
			session.MultipartUploadID = uploadID
			result.MultipartUploadID = uploadID
			result.PartSizeBytes = s.cfg.PartSize
		} else {
			url, headers, _, err := s.storage.PresignPut(ctx, bucket, key, item.ContentType, s.cfg.SessionTTL)
			if err != nil {
				return err
			}
			result.UploadURL = url
			result.UploadHeaders = headers
		}

		return uow.SessionRepo().Create(ctx, session)
	})

	if txErr != nil {
		return nil, fmt.Errorf("could not initiate upload session: %w", txErr)
	}

	return result, nil
}
