package upload

import (
	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"
	"context"
	"fmt"

	"github.com/google/uuid"
)

// PresignParts returns one presigned PUT URL per requested part of a
// chunked session. The call counts as client activity.
func (s *uploadService) PresignParts(ctx context.Context, sessionID uuid.UUID, partNumbers []int) ([]port.PartGrant, error) {
	if len(partNumbers) == 0 {
		return nil, fmt.Errorf("%w: no part numbers", domain.ErrInvalidRequest)
	}

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status.Terminal() {
		return nil, &domain.StateConflictError{Current: session.Status, Target: domain.SessionStatusUploading}
	}
	if session.TransferType != domain.TransferTypeChunked {
		return nil, fmt.Errorf("%w: session is not a chunked transfer", domain.ErrInvalidRequest)
	}

	if err := s.uow.SessionRepo().TouchActivity(ctx, sessionID); err != nil {
		return nil, err
	}

	key := domain.ObjectKeyFor(session.ID)
	grants := make([]port.PartGrant, 0, len(partNumbers))

	for _, partNumber := range partNumbers {
		if partNumber < 1 {
			return nil, fmt.Errorf("%w: part numbers start at 1", domain.ErrInvalidRequest)
		}

		url, headers, expiresAt, err := s.storage.PresignPutPart(ctx, session.BucketName, key, session.MultipartUploadID, partNumber, s.cfg.SessionTTL)
		if err != nil {
			return nil, err
		}

		grants = append(grants, port.PartGrant{
			PartNumber: partNumber,
			URL:        url,
			Headers:    headers,
			ExpiresAt:  *expiresAt,
		})
	}

	return grants, nil
}
