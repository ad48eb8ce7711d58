package upload

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1ApproveRequest names who approved the asset
type V1ApproveRequest struct {
	ActorID uuid.UUID `json:"actor_id"`
}

func (h *HandlerV1) ApproveV1(w http.ResponseWriter, r *http.Request) {
	tenant, err := tenantID(r)
	if err != nil {
		http.Error(w, "missing or invalid X-Tenant-ID", http.StatusBadRequest)
		return
	}

	assetID, err := uuid.Parse(chi.URLParam(r, "assetID"))
	if err != nil {
		http.Error(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	var req V1ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding approve request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ActorID == uuid.Nil {
		http.Error(w, "missing actor_id", http.StatusBadRequest)
		return
	}

	asset, err := h.uploadService.Approve(r.Context(), tenant, assetID, req.ActorID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, V1Asset{
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
	})
}
