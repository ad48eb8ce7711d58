package port

import (
	"assetvault/internal/core/domain"
	"context"
	"time"

	"github.com/google/uuid"
)

// UploadSessionRepository is an interface to interact with upload session repositories
type UploadSessionRepository interface {
	Create(ctx context.Context, session domain.UploadSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	// FindByIDForUpdate locks the session row for the duration of the
	// surrounding transaction. Only meaningful inside UnitOfWork.Execute.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error)
	// UpdateStatus moves a live (non-terminal) session to status. Returns
	// domain.ErrSessionNotFound when no live row matched, so terminal rows
	// can never be silently overwritten.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SessionStatus) error
	// Fail moves a live session to failed, records the reason and bumps the
	// failure counter.
	Fail(ctx context.Context, id uuid.UUID, reason domain.FailureReason) error
	// Cancel moves a live session to cancelled with the given reason.
	Cancel(ctx context.Context, id uuid.UUID, reason domain.FailureReason) error
	// Complete moves a live session to completed and records the verified
	// uploaded size.
	Complete(ctx context.Context, id uuid.UUID, uploadedSize int64) error
	TouchActivity(ctx context.Context, id uuid.UUID) error
	// AttachTicket records the escalation ticket reference. A session holds
	// at most one ticket; subsequent attaches are no-ops.
	AttachTicket(ctx context.Context, id uuid.UUID, ticketRef string) error
	FindAllExpired(ctx context.Context, now time.Time, limit int) ([]domain.UploadSession, error)
}
