package upload

import (
	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"
	"context"
	"errors"

	"github.com/google/uuid"
)

// MarkUploading records that bytes started flowing. Repeated calls are
// idempotent activity refreshes; only the first one transitions the session.
func (s *uploadService) MarkUploading(ctx context.Context, sessionID uuid.UUID) (*port.MarkUploadingResult, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Status {
	case domain.SessionStatusInitiating:
		if err := s.uow.SessionRepo().UpdateStatus(ctx, sessionID, domain.SessionStatusUploading); err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				// The guarded update found no live row, so a concurrent
				// transition settled the session between the read and here.
				fresh, findErr := s.uow.SessionRepo().FindByID(ctx, sessionID)
				if findErr != nil {
					return nil, findErr
				}
				return nil, &domain.StateConflictError{Current: fresh.Status, Target: domain.SessionStatusUploading}
			}
			return nil, err
		}
		return &port.MarkUploadingResult{Transitioned: true}, nil

	case domain.SessionStatusUploading:
		if err := s.uow.SessionRepo().TouchActivity(ctx, sessionID); err != nil {
			return nil, err
		}
		return &port.MarkUploadingResult{Transitioned: false}, nil

	default:
		return nil, &domain.StateConflictError{Current: session.Status, Target: domain.SessionStatusUploading}
	}
}
