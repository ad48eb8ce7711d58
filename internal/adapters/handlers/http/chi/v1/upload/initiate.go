package upload

import (
	"encoding/json"
	"net/http"
	"time"

	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"

	"github.com/google/uuid"
)

// V1InitiateRequest is the request to open a single upload session
type V1InitiateRequest struct {
	BrandID        *uuid.UUID `json:"brand_id,omitempty"`
	FileName       string     `json:"filename"`
	ContentType    string     `json:"content_type"`
	SizeBytes      int64      `json:"size_bytes"`
	CorrelationRef string     `json:"correlation_ref,omitempty"`
	TargetAssetID  *uuid.UUID `json:"target_asset_id,omitempty"`
}

// V1InitiateResponse is the upload grant returned to the client
type V1InitiateResponse struct {
	SessionID         uuid.UUID           `json:"session_id"`
	CorrelationRef    string              `json:"correlation_ref,omitempty"`
	TransferType      domain.TransferType `json:"transfer_type"`
	UploadURL         string              `json:"upload_url,omitempty"`
	UploadHeaders     map[string]string   `json:"upload_headers,omitempty"`
	MultipartUploadID string              `json:"multipart_upload_id,omitempty"`
	PartSizeBytes     int64               `json:"part_size_bytes,omitempty"`
	ExpiresAt         time.Time           `json:"expires_at"`
}

func (h *HandlerV1) InitiateV1(w http.ResponseWriter, r *http.Request) {
	tenant, err := tenantID(r)
	if err != nil {
		http.Error(w, "missing or invalid X-Tenant-ID", http.StatusBadRequest)
		return
	}

	var req V1InitiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding initiate request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.uploadService.Initiate(r.Context(), port.InitiateRequest{
		TenantID:       tenant,
		BrandID:        req.BrandID,
		FileName:       req.FileName,
		ContentType:    req.ContentType,
		SizeBytes:      req.SizeBytes,
		CorrelationRef: req.CorrelationRef,
		TargetAssetID:  req.TargetAssetID,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toInitiateResponse(result))
}

func toInitiateResponse(result *port.InitiateResult) V1InitiateResponse {
	return V1InitiateResponse{
		SessionID:         result.SessionID,
		CorrelationRef:    result.CorrelationRef,
		TransferType:      result.TransferType,
		UploadURL:         result.UploadURL,
		UploadHeaders:     result.UploadHeaders,
		MultipartUploadID: result.MultipartUploadID,
		PartSizeBytes:     result.PartSizeBytes,
		ExpiresAt:         result.ExpiresAt,
	}
}
