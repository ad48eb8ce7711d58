package upload

import (
	"assetvault/internal/config"
	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Collaborators groups the external services the upload core consumes
// through narrow ports. All of them are required.
type Collaborators struct {
	Plans      port.PlanGate
	Buckets    port.BucketResolver
	Categories port.CategoryGate
	Metadata   port.MetadataPersister
	Notifier   port.Notifier
	Tickets    port.TicketEscalator
	Events     port.EventPublisher
}

type uploadService struct {
	uow     port.UnitOfWork
	storage port.ObjectStorage
	collab  Collaborators
	cfg     config.UploadConfig
	logger  *slog.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(uow port.UnitOfWork, storage port.ObjectStorage, collab Collaborators, cfg config.UploadConfig, logger *slog.Logger) port.UploadService {
	return &uploadService{uow: uow, storage: storage, collab: collab, cfg: cfg, logger: logger}
}

// loadSession fetches a session and applies lazy expiry: a live session
// whose window has passed is moved to expired before it is returned, so an
// abandoned session is never silently revived by a later touch.
func (s *uploadService) loadSession(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	session, err := s.uow.SessionRepo().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now()) {
		if err := s.uow.SessionRepo().UpdateStatus(ctx, id, domain.SessionStatusExpired); err != nil {
			s.logger.Error("failed to expire stale session", "session_id", id, "error", err)
		}
		session.Status = domain.SessionStatusExpired
	}

	return session, nil
}

// cleanupRemote best-effort deletes whatever the session left behind in
// the object store. Failures are logged, never propagated.
func (s *uploadService) cleanupRemote(ctx context.Context, session *domain.UploadSession) {
	key := domain.ObjectKeyFor(session.ID)

	if session.TransferType == domain.TransferTypeChunked && session.MultipartUploadID != "" {
		if err := s.storage.AbortMultipart(ctx, session.BucketName, key, session.MultipartUploadID); err != nil {
			s.logger.Warn("failed to abort multipart transfer during cleanup",
				"session_id", session.ID, "upload_id", session.MultipartUploadID, "error", err)
		}
	}

	if err := s.storage.DeleteObject(ctx, session.BucketName, key); err != nil {
		s.logger.Warn("failed to delete remote object during cleanup",
			"session_id", session.ID, "key", key, "error", err)
	}
}

// escalateIfNeeded opens a support ticket once a session has failed
// repeatedly. Best-effort: a ticketing outage never fails the caller.
func (s *uploadService) escalateIfNeeded(ctx context.Context, session *domain.UploadSession, reason string) {
	failureCount := session.FailureCount + 1
	if failureCount < s.cfg.EscalateAfterFailures || session.TicketRef != nil {
		return
	}

	ref, err := s.collab.Tickets.Escalate(ctx, domain.TicketSummary{
		SessionID:    session.ID,
		TenantID:     session.TenantID,
		FailureCount: failureCount,
		Reason:       reason,
	})
	if err != nil {
		s.logger.Warn("failed to escalate failing session", "session_id", session.ID, "error", err)
		return
	}

	if err := s.uow.SessionRepo().AttachTicket(ctx, session.ID, ref); err != nil {
		s.logger.Warn("failed to attach ticket to session", "session_id", session.ID, "ticket_ref", ref, "error", err)
	}
}
