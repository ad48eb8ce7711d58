package upload

import (
	"assetvault/internal/core/domain"
	"context"
	"errors"
	"fmt"
	"sort"
)

// listPartsPageSize is the page size used when enumerating uploaded parts.
const listPartsPageSize = 1000

// assembleChunked finishes the remote multipart transfer of a chunked
// session: it enumerates every uploaded part from the object store (client
// part lists are never trusted), orders them and completes the transfer.
// Returns domain.ErrTransferNotFound unwrapped when the transfer no longer
// exists, so the caller can check whether a concurrent completion already
// assembled the object.
func (s *uploadService) assembleChunked(ctx context.Context, session *domain.UploadSession) error {
	key := domain.ObjectKeyFor(session.ID)

	var parts []domain.UploadPart
	marker := 0
	for {
		page, next, err := s.storage.ListParts(ctx, session.BucketName, key, session.MultipartUploadID, listPartsPageSize, marker)
		if err != nil {
			if errors.Is(err, domain.ErrTransferNotFound) {
				return err
			}
			return fmt.Errorf("%w: could not list uploaded parts: %w", domain.ErrTransferAssembly, err)
		}
		parts = append(parts, page...)
		if next == 0 {
			break
		}
		marker = next
	}

	if len(parts) == 0 {
		return fmt.Errorf("%w: no parts uploaded", domain.ErrTransferAssembly)
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].PartNumber < parts[j].PartNumber })

	if err := s.storage.CompleteMultipart(ctx, session.BucketName, key, session.MultipartUploadID, parts); err != nil {
		if errors.Is(err, domain.ErrTransferNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrTransferAssembly, err)
	}

	return nil
}
