package reaper

import (
	"assetvault/internal/core/domain"
	"context"
	"time"
)

// ExpireStale finds live sessions whose expiry window has passed, moves
// them to expired and reclaims their remote leftovers. One bad session
// never stops the sweep: per-session failures are logged and skipped.
func (r *reaperService) ExpireStale(ctx context.Context, now time.Time) error {

	sessions, err := r.uow.SessionRepo().FindAllExpired(ctx, now, r.cfg.ReapBatchSize)
	if err != nil {
		return err
	}

	expired := 0
	for _, session := range sessions {

		if err := r.uow.SessionRepo().UpdateStatus(ctx, session.ID, domain.SessionStatusExpired); err != nil {
			// A concurrent touch may have settled the session first.
			r.logger.Warn("failed to expire session", "session_id", session.ID, "error", err)
			continue
		}
		expired++

		key := domain.ObjectKeyFor(session.ID)

		if session.TransferType == domain.TransferTypeChunked && session.MultipartUploadID != "" {
			if err := r.storage.AbortMultipart(ctx, session.BucketName, key, session.MultipartUploadID); err != nil {
				r.logger.Warn("failed to abort multipart transfer for expired session",
					"session_id", session.ID, "upload_id", session.MultipartUploadID, "error", err)
			}
		}

		if err := r.storage.DeleteObject(ctx, session.BucketName, key); err != nil {
			r.logger.Warn("failed to delete remote object for expired session",
				"session_id", session.ID, "key", key, "error", err)
		}
	}

	if expired > 0 {
		r.logger.Info("expired stale upload sessions", "count", expired)
	}
	return nil
}
