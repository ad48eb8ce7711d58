package port

import (
	"assetvault/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// PlanGate approves or rejects an upload size against the tenant's plan
// before any session is created. A rejection is a *domain.PlanLimitError.
type PlanGate interface {
	CheckUploadAllowed(ctx context.Context, tenantID uuid.UUID, sizeBytes int64) error
}

// CategoryGate resolves the classification facts of a target category.
type CategoryGate interface {
	Classify(ctx context.Context, tenantID, categoryID uuid.UUID) (*domain.Category, error)
}

// MetadataPersister validates and persists client-declared metadata fields
// against the category's schema. It reports how many fields were accepted
// and which were rejected; the completion pipeline decides whether that is
// fatal.
type MetadataPersister interface {
	PersistFields(ctx context.Context, assetID uuid.UUID, categoryID *uuid.UUID, fields map[string]string) (accepted int, rejected []string, err error)
}

// Notifier fans out approval notifications. Best-effort: failures are
// logged by the caller, never propagated.
type Notifier interface {
	AssetPendingApproval(ctx context.Context, asset *domain.Asset) error
}

// TicketEscalator opens a support ticket for a repeatedly failing session
// and returns its reference. At most one ticket is attached per session.
type TicketEscalator interface {
	Escalate(ctx context.Context, summary domain.TicketSummary) (string, error)
}

// EventPublisher publishes domain events for downstream collaborators.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.AssetEvent) error
}
