package upload

import (
	"assetvault/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// Approve publishes an asset that completion left in pending approval and
// records who approved it.
func (s *uploadService) Approve(ctx context.Context, tenantID, assetID, actorID uuid.UUID) (*domain.Asset, error) {
	asset, err := s.uow.AssetRepo().FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	// Assets are never visible across tenants.
	if asset.TenantID != tenantID {
		return nil, domain.ErrAssetNotFound
	}

	if asset.Published {
		return asset, nil
	}

	if err := s.uow.AssetRepo().SetPublication(ctx, assetID, true, false, &actorID); err != nil {
		return nil, err
	}

	asset.Published = true
	asset.PendingApproval = false
	asset.PublishedBy = &actorID

	s.logger.Info("asset approved", "asset_id", assetID, "approved_by", actorID)
	return asset, nil
}
