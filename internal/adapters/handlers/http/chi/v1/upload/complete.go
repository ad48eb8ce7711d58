package upload

import (
	"encoding/json"
	"net/http"
	"time"

	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"

	"github.com/google/uuid"
)

// V1CompleteRequest carries the client-declared facts of a completion call
type V1CompleteRequest struct {
	ActorID        uuid.UUID         `json:"actor_id"`
	FileName       string            `json:"filename,omitempty"`
	Title          string            `json:"title,omitempty"`
	CategoryID     *uuid.UUID        `json:"category_id,omitempty"`
	MetadataFields map[string]string `json:"metadata,omitempty"`
}

// V1Asset is the asset representation returned on completion
type V1Asset struct {
	ID              uuid.UUID        `json:"id"`
	TenantID        uuid.UUID        `json:"tenant_id"`
	Title           string           `json:"title,omitempty"`
	FileName        string           `json:"filename"`
	ContentType     string           `json:"content_type"`
	SizeBytes       int64            `json:"size_bytes"`
	Kind            domain.AssetKind `json:"kind"`
	CategoryID      *uuid.UUID       `json:"category_id,omitempty"`
	Published       bool             `json:"published"`
	PendingApproval bool             `json:"pending_approval"`
	CreatedAt       time.Time        `json:"created_at"`
}

// V1CompleteResponse returns the asset the session resolved to
type V1CompleteResponse struct {
	Asset            V1Asset `json:"asset"`
	AlreadyCompleted bool    `json:"already_completed"`
}

func (h *HandlerV1) CompleteV1(w http.ResponseWriter, r *http.Request) {
	sessionID, err := sessionIDParam(r)
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	var req V1CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding complete request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ActorID == uuid.Nil {
		http.Error(w, "missing actor_id", http.StatusBadRequest)
		return
	}

	result, err := h.uploadService.Complete(r.Context(), port.CompleteRequest{
		SessionID:      sessionID,
		ActorID:        req.ActorID,
		FileName:       req.FileName,
		Title:          req.Title,
		CategoryID:     req.CategoryID,
		MetadataFields: req.MetadataFields,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyCompleted {
		status = http.StatusOK
	}

	asset := result.Asset
	h.writeJSON(w, status, V1CompleteResponse{
		AlreadyCompleted: result.AlreadyCompleted,
		Asset: V1Asset{
			ID:              asset.ID,
			TenantID:        asset.TenantID,
			Title:           asset.Title,
			FileName:        asset.FileName,
			ContentType:     asset.ContentType,
			SizeBytes:       asset.SizeBytes,
			Kind:            asset.Kind,
			CategoryID:      asset.CategoryID,
			Published:       asset.Published,
			PendingApproval: asset.PendingApproval,
			CreatedAt:       asset.CreatedAt,
		},
	})
}
