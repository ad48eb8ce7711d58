package domain

import (
	"time"

	"github.com/google/uuid"
)

// AssetEventType is a type that represents the type of a domain event
type AssetEventType string

const (
	// EventAssetCreated signals that a durable asset record now exists.
	EventAssetCreated AssetEventType = "asset.created"
	// EventAssetProcess signals that downstream processing (thumbnails,
	// metadata extraction) may begin for the asset.
	EventAssetProcess AssetEventType = "asset.process"
)

// AssetEvent is the payload published to downstream collaborators after a
// completed upload. The completion pipeline emits it best-effort: delivery
// failures never fail the completion call.
type AssetEvent struct {
	Type       AssetEventType `json:"type"`
	AssetID    uuid.UUID      `json:"asset_id"`
	SessionID  uuid.UUID      `json:"session_id"`
	TenantID   uuid.UUID      `json:"tenant_id"`
	ObjectKey  string         `json:"object_key"`
	Kind       AssetKind      `json:"kind"`
	SizeBytes  int64          `json:"size_bytes"`
	OccurredAt time.Time      `json:"occurred_at"`
}
