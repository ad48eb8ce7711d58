package upload

import (
	"encoding/json"
	"net/http"

	"assetvault/internal/core/port"

	"github.com/google/uuid"
)

// V1BatchItem is one file within a batch initiation request
type V1BatchItem struct {
	FileName       string     `json:"filename"`
	ContentType    string     `json:"content_type"`
	SizeBytes      int64      `json:"size_bytes"`
	CorrelationRef string     `json:"correlation_ref,omitempty"`
	TargetAssetID  *uuid.UUID `json:"target_asset_id,omitempty"`
}

// V1InitiateBatchRequest is the request to open several sessions at once
type V1InitiateBatchRequest struct {
	BrandID *uuid.UUID    `json:"brand_id,omitempty"`
	Items   []V1BatchItem `json:"items"`
}

// V1BatchItemResult is one item's outcome: a grant or that item's error
type V1BatchItemResult struct {
	CorrelationRef string              `json:"correlation_ref,omitempty"`
	Session        *V1InitiateResponse `json:"session,omitempty"`
	Error          string              `json:"error,omitempty"`
}

// V1InitiateBatchResponse groups the per-item outcomes under one batch reference
type V1InitiateBatchResponse struct {
	BatchRef string              `json:"batch_ref"`
	Items    []V1BatchItemResult `json:"items"`
}

func (h *HandlerV1) InitiateBatchV1(w http.ResponseWriter, r *http.Request) {
	tenant, err := tenantID(r)
	if err != nil {
		http.Error(w, "missing or invalid X-Tenant-ID", http.StatusBadRequest)
		return
	}

	var req V1InitiateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding batch initiate request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]port.BatchItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, port.BatchItem{
			FileName:       item.FileName,
			ContentType:    item.ContentType,
			SizeBytes:      item.SizeBytes,
			CorrelationRef: item.CorrelationRef,
			TargetAssetID:  item.TargetAssetID,
		})
	}

	result, err := h.uploadService.InitiateBatch(r.Context(), port.InitiateBatchRequest{
		TenantID: tenant,
		BrandID:  req.BrandID,
		Items:    items,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := V1InitiateBatchResponse{
		BatchRef: result.BatchRef,
		Items:    make([]V1BatchItemResult, 0, len(result.Items)),
	}
	for _, item := range result.Items {
		out := V1BatchItemResult{CorrelationRef: item.CorrelationRef}
		if item.Err != nil {
			out.Error = item.Err.Error()
		} else {
			session := toInitiateResponse(item.Result)
			out.Session = &session
		}
		resp.Items = append(resp.Items, out)
	}

	// 207: individual items may have failed while others were granted.
	h.writeJSON(w, http.StatusMultiStatus, resp)
}
