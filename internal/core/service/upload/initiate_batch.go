package upload

import (
	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// InitiateBatch opens one session per item. The bucket is resolved once for
// the whole batch, so a provisioning failure rejects everything uniformly;
// past that point every item succeeds or fails on its own.
func (s *uploadService) InitiateBatch(ctx context.Context, req port.InitiateBatchRequest) (*port.InitiateBatchResult, error) {

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: batch has no items", domain.ErrInvalidRequest)
	}
	if len(req.Items) > s.cfg.BatchMaxItems {
		return nil, fmt.Errorf("%w: %d items, cap is %d", domain.ErrBatchTooLarge, len(req.Items), s.cfg.BatchMaxItems)
	}

	bucket, err := s.collab.Buckets.Resolve(ctx, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("could not resolve tenant bucket: %w", err)
	}

	batchRef := uuid.New().String()
	items := make([]port.BatchItemResult, len(req.Items))

	var wg sync.WaitGroup
	for i, item := range req.Items {
		wg.Add(1)
		go func(i int, item port.BatchItem) {
			defer wg.Done()
			items[i] = s.initiateBatchItem(ctx, bucket, batchRef, req.TenantID, req.BrandID, item)
		}(i, item)
	}
	wg.Wait()

	return &port.InitiateBatchResult{BatchRef: batchRef, Items: items}, nil
}

func (s *uploadService) initiateBatchItem(ctx context.Context, bucket, batchRef string, tenantID uuid.UUID, brandID *uuid.UUID, item port.BatchItem) port.BatchItemResult {
	out := port.BatchItemResult{CorrelationRef: item.CorrelationRef}

	if err := s.validateItem(item); err != nil {
		out.Err = err
		return out
	}

	if err := s.collab.Plans.CheckUploadAllowed(ctx, tenantID, item.SizeBytes); err != nil {
		out.Err = err
		return out
	}

	result, err := s.initiateSession(ctx, bucket, batchRef, tenantID, brandID, item)
	if err != nil {
		s.logger.Warn("batch item initiation failed",
			"batch_ref", batchRef, "correlation_ref", item.CorrelationRef, "error", err)
		out.Err = err
		return out
	}

	out.Result = result
	return out
}
