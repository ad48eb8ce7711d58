package port

import (
	"assetvault/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// AssetCreateOutcome is the result variant of AssetRepository.Create. A
// duplicate-session race is not an error: the loser receives
// AssetAlreadyExists together with the winning row.
type AssetCreateOutcome int

const (
	AssetCreated AssetCreateOutcome = iota
	AssetAlreadyExists
)

// AssetRepository is an interface to interact with asset repositories
type AssetRepository interface {
	// Create inserts the asset. When the unique constraint on
	// upload_session_id fires, it fetches and returns the winning row with
	// outcome AssetAlreadyExists instead of failing.
	Create(ctx context.Context, asset domain.Asset) (AssetCreateOutcome, *domain.Asset, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error)
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.Asset, error)
	// FindBySessionIDForUpdate locks the candidate asset row. Only
	// meaningful inside UnitOfWork.Execute.
	FindBySessionIDForUpdate(ctx context.Context, sessionID uuid.UUID) (*domain.Asset, error)
	// ReplaceFile overwrites the file facts of an existing asset, leaving
	// every other column untouched.
	ReplaceFile(ctx context.Context, id uuid.UUID, fileName, contentType string, sizeBytes int64, objectKey string) error
	SetPublication(ctx context.Context, id uuid.UUID, published, pendingApproval bool, publishedBy *uuid.UUID) error
}
