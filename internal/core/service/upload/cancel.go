package upload

import (
	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"
	"context"

	"github.com/google/uuid"
)

// Cancel aborts a live session and reclaims whatever it left in the object
// store. Cancelling a session that already reached any terminal state is a
// no-op reporting there was nothing to do, never an error.
func (s *uploadService) Cancel(ctx context.Context, sessionID uuid.UUID, reason string) (*port.CancelResult, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status.Terminal() {
		return &port.CancelResult{AlreadyTerminal: true}, nil
	}

	if reason != "" {
		s.logger.Info("cancelling upload session", "session_id", sessionID, "reason", reason)
	}

	if err := s.uow.SessionRepo().Cancel(ctx, sessionID, domain.FailureReasonUserCancelled); err != nil {
		return nil, err
	}

	s.cleanupRemote(ctx, session)

	return &port.CancelResult{AlreadyTerminal: false}, nil
}
