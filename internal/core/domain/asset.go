package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AssetKind is the capability variant of an asset, resolved once from the
// verified content type. Downstream processors dispatch on it instead of
// re-inspecting MIME strings.
type AssetKind string

const (
	AssetKindImage    AssetKind = "image"
	AssetKindVideo    AssetKind = "video"
	AssetKindAudio    AssetKind = "audio"
	AssetKindDocument AssetKind = "document"
	AssetKindArchive  AssetKind = "archive"
	AssetKindOther    AssetKind = "other"
)

// ResolveKind maps a verified content type to its asset kind.
func ResolveKind(contentType string) AssetKind {
	mimeType := contentType
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = mimeType[:idx]
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return AssetKindImage
	case strings.HasPrefix(mimeType, "video/"):
		return AssetKindVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return AssetKindAudio
	}

	switch mimeType {
	case "application/pdf", "application/msword", "text/plain", "text/csv",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation":
		return AssetKindDocument
	case "application/zip", "application/gzip", "application/x-tar", "application/x-7z-compressed":
		return AssetKindArchive
	}
	return AssetKindOther
}

// titlePlaceholders are client values that mean "no title was entered".
// They are collapsed to absent instead of being stored literally.
var titlePlaceholders = map[string]struct{}{
	"":          {},
	"untitled":  {},
	"unknown":   {},
	"n/a":       {},
	"null":      {},
	"undefined": {},
}

// NormalizeTitle derives a human-readable title from the client-declared
// title, falling back to the file name with its extension stripped. Returns
// "" when neither yields a usable value.
func NormalizeTitle(title, fileName string) string {
	cleaned := strings.TrimSpace(title)
	if _, placeholder := titlePlaceholders[strings.ToLower(cleaned)]; !placeholder {
		return cleaned
	}

	base := strings.TrimSpace(fileName)
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	if _, placeholder := titlePlaceholders[strings.ToLower(base)]; placeholder {
		return ""
	}
	return base
}

// Asset represents a durable asset derived from exactly one completed
// upload session. UploadSessionID is the idempotency anchor: the
// persistence layer enforces its uniqueness across non-deleted assets.
type Asset struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	UploadSessionID uuid.UUID
	Title           string
	FileName        string
	ContentType     string
	SizeBytes       int64
	ObjectKey       string
	CategoryID      *uuid.UUID
	Kind            AssetKind
	Published       bool
	PendingApproval bool
	PublishedBy     *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// Category carries the classification facts the completion pipeline needs
// from the (external) category collaborator.
type Category struct {
	ID               uuid.UUID
	RequiresApproval bool
}

// TicketSummary is the payload handed to the ticket escalation collaborator.
type TicketSummary struct {
	SessionID    uuid.UUID
	TenantID     uuid.UUID
	FailureCount int
	Reason       string
}
