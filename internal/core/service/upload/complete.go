package upload

import (
	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Complete turns an uploaded session into a durable asset. The call is
// idempotent: however many times (or concurrently) it runs for one session,
// exactly one asset results and every caller receives it.
func (s *uploadService) Complete(ctx context.Context, req port.CompleteRequest) (*port.CompleteResult, error) {
	session, err := s.loadSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == domain.SessionStatusCompleted {
		asset, err := s.resolveAsset(ctx, s.uow, session)
		if err != nil {
			return nil, err
		}
		return &port.CompleteResult{Asset: asset, AlreadyCompleted: true}, nil
	}

	if !session.CanTransition(domain.SessionStatusCompleted, time.Now()) {
		return nil, &domain.StateConflictError{Current: session.Status, Target: domain.SessionStatusCompleted}
	}

	key := domain.ObjectKeyFor(session.ID)

	if session.TransferType == domain.TransferTypeChunked {
		if err := s.assembleChunked(ctx, session); err != nil {
			if !errors.Is(err, domain.ErrTransferNotFound) {
				s.failSession(ctx, session, domain.FailureReasonAssembly, err.Error())
				return nil, err
			}
			// The transfer is gone. A concurrent completion may already have
			// assembled the object; the stat below settles it.
		}
	}

	stat, err := s.storage.ExistsAndStat(ctx, session.BucketName, key)
	if err != nil {
		return nil, fmt.Errorf("could not stat uploaded object: %w", err)
	}
	if !stat.Exists {
		if session.TransferType == domain.TransferTypeChunked {
			s.failSession(ctx, session, domain.FailureReasonAssembly, "multipart transfer lost before assembly")
			return nil, fmt.Errorf("%w: transfer lost before assembly", domain.ErrTransferAssembly)
		}
		// Direct upload never arrived. The session stays live: the client
		// can still upload and retry until expiry.
		return nil, domain.ErrObjectMissing
	}

	if stat.SizeBytes != session.ExpectedSize {
		s.failSession(ctx, session, domain.FailureReasonSizeMismatch,
			fmt.Sprintf("expected %d bytes, object store reports %d", session.ExpectedSize, stat.SizeBytes))
		s.cleanupRemote(ctx, session)
		return nil, &domain.SizeMismatchError{ExpectedBytes: session.ExpectedSize, ObservedBytes: stat.SizeBytes}
	}

	// The object store's report wins over anything the client declared. When
	// the store reports nothing, the type stays unknown rather than trusting
	// the client's declaration.
	contentType := stat.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	fileName := req.FileName
	if fileName == "" {
		fileName = session.FileName
	}

	published, pendingApproval := true, false
	if req.CategoryID != nil {
		category, err := s.collab.Categories.Classify(ctx, session.TenantID, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("could not classify category: %w", err)
		}
		if category.RequiresApproval {
			published, pendingApproval = false, true
		}
	}
	var publishedBy *uuid.UUID
	if published {
		actorID := req.ActorID
		publishedBy = &actorID
	}

	var (
		asset            *domain.Asset
		alreadyCompleted bool
	)

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		locked, err := uow.SessionRepo().FindByIDForUpdate(ctx, session.ID)
		if err != nil {
			return err
		}

		if locked.Status == domain.SessionStatusCompleted {
			existing, err := s.resolveAssetLocked(ctx, uow, locked)
			if err != nil {
				return err
			}
			asset, alreadyCompleted = existing, true
			return nil
		}

		if !locked.CanTransition(domain.SessionStatusCompleted, time.Now()) {
			return &domain.StateConflictError{Current: locked.Status, Target: domain.SessionStatusCompleted}
		}

		if locked.Mode == domain.SessionModeReplace {
			if locked.TargetAssetID == nil {
				return domain.ErrAssetNotFound
			}
			target, err := uow.AssetRepo().FindByID(ctx, *locked.TargetAssetID)
			if err != nil {
				return err
			}
			if err := uow.AssetRepo().ReplaceFile(ctx, target.ID, fileName, contentType, stat.SizeBytes, key); err != nil {
				return err
			}
			target.FileName = fileName
			target.ContentType = contentType
			target.SizeBytes = stat.SizeBytes
			target.ObjectKey = key
			asset = target
		} else {
			candidate := domain.Asset{
				ID:              uuid.New(),
				TenantID:        locked.TenantID,
				UploadSessionID: locked.ID,
				Title:           domain.NormalizeTitle(req.Title, fileName),
				FileName:        fileName,
				ContentType:     contentType,
				SizeBytes:       stat.SizeBytes,
				ObjectKey:       key,
				CategoryID:      req.CategoryID,
				Kind:            domain.ResolveKind(contentType),
				Published:       published,
				PendingApproval: pendingApproval,
				PublishedBy:     publishedBy,
			}

			outcome, row, err := uow.AssetRepo().Create(ctx, candidate)
			if err != nil {
				return err
			}
			asset = row
			if outcome == port.AssetAlreadyExists {
				// A concurrent completion won the unique constraint race.
				// The locked session is still live, so settle it too; left
				// non-terminal it would expire and the reaper would delete
				// the object the winning asset points at.
				alreadyCompleted = true
				return uow.SessionRepo().Complete(ctx, locked.ID, stat.SizeBytes)
			}
		}

		return uow.SessionRepo().Complete(ctx, locked.ID, stat.SizeBytes)
	})
	if txErr != nil {
		return nil, txErr
	}

	if alreadyCompleted {
		return &port.CompleteResult{Asset: asset, AlreadyCompleted: true}, nil
	}

	if len(req.MetadataFields) > 0 {
		accepted, rejected, err := s.collab.Metadata.PersistFields(ctx, asset.ID, req.CategoryID, req.MetadataFields)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMetadataPersistence, err)
		}
		if accepted == 0 && len(rejected) > 0 {
			return nil, fmt.Errorf("%w: all %d fields rejected", domain.ErrMetadataPersistence, len(rejected))
		}
		if len(rejected) > 0 {
			s.logger.Warn("some metadata fields were rejected", "asset_id", asset.ID, "rejected", rejected)
		}
	}

	if asset.PendingApproval {
		if err := s.collab.Notifier.AssetPendingApproval(ctx, asset); err != nil {
			s.logger.Warn("failed to send approval notification", "asset_id", asset.ID, "error", err)
		}
	}

	s.publishEvents(ctx, session, asset)

	return &port.CompleteResult{Asset: asset, AlreadyCompleted: false}, nil
}

// resolveAsset returns the asset a completed session settled on: the
// replaced target in replace mode, the session-anchored row otherwise.
func (s *uploadService) resolveAsset(ctx context.Context, uow port.UnitOfWork, session *domain.UploadSession) (*domain.Asset, error) {
	if session.Mode == domain.SessionModeReplace {
		if session.TargetAssetID == nil {
			return nil, domain.ErrAssetNotFound
		}
		return uow.AssetRepo().FindByID(ctx, *session.TargetAssetID)
	}
	return uow.AssetRepo().FindBySessionID(ctx, session.ID)
}

// resolveAssetLocked is resolveAsset under the completion transaction: the
// session-anchored row is locked so a racing completion cannot observe it
// half-settled.
func (s *uploadService) resolveAssetLocked(ctx context.Context, uow port.UnitOfWork, session *domain.UploadSession) (*domain.Asset, error) {
	if session.Mode == domain.SessionModeReplace {
		if session.TargetAssetID == nil {
			return nil, domain.ErrAssetNotFound
		}
		return uow.AssetRepo().FindByID(ctx, *session.TargetAssetID)
	}
	return uow.AssetRepo().FindBySessionIDForUpdate(ctx, session.ID)
}

// failSession moves the session to failed with the given reason and
// escalates once the failure count crosses the configured threshold.
func (s *uploadService) failSession(ctx context.Context, session *domain.UploadSession, reason domain.FailureReason, detail string) {
	s.logger.Error("upload session failed",
		"session_id", session.ID, "reason", reason, "detail", detail)

	if err := s.uow.SessionRepo().Fail(ctx, session.ID, reason); err != nil {
		s.logger.Error("failed to record session failure", "session_id", session.ID, "error", err)
		return
	}

	s.escalateIfNeeded(ctx, session, detail)
}

func (s *uploadService) publishEvents(ctx context.Context, session *domain.UploadSession, asset *domain.Asset) {
	now := time.Now()
	for _, eventType := range []domain.AssetEventType{domain.EventAssetCreated, domain.EventAssetProcess} {
		event := domain.AssetEvent{
			Type:       eventType,
			AssetID:    asset.ID,
			SessionID:  session.ID,
			TenantID:   asset.TenantID,
			ObjectKey:  asset.ObjectKey,
			Kind:       asset.Kind,
			SizeBytes:  asset.SizeBytes,
			OccurredAt: now,
		}
		if err := s.collab.Events.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish asset event", "type", eventType, "asset_id", asset.ID, "error", err)
		}
	}
}
