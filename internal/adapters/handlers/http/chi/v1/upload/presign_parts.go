package upload

import (
	"encoding/json"
	"net/http"
	"time"
)

// V1PresignPartsRequest names the parts the client wants upload URLs for
type V1PresignPartsRequest struct {
	PartNumbers []int `json:"part_numbers"`
}

// V1PartGrant is one presigned part upload URL
type V1PartGrant struct {
	PartNumber int               `json:"part_number"`
	URL        string            `json:"url"`
	Headers    map[string]string `json:"headers,omitempty"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

// V1PresignPartsResponse carries the requested part grants
type V1PresignPartsResponse struct {
	Parts []V1PartGrant `json:"parts"`
}

func (h *HandlerV1) PresignPartsV1(w http.ResponseWriter, r *http.Request) {
	sessionID, err := sessionIDParam(r)
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	var req V1PresignPartsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding presign parts request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	grants, err := h.uploadService.PresignParts(r.Context(), sessionID, req.PartNumbers)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := V1PresignPartsResponse{Parts: make([]V1PartGrant, 0, len(grants))}
	for _, grant := range grants {
		resp.Parts = append(resp.Parts, V1PartGrant{
			PartNumber: grant.PartNumber,
			URL:        grant.URL,
			Headers:    grant.Headers,
			ExpiresAt:  grant.ExpiresAt,
		})
	}

	h.writeJSON(w, http.StatusOK, resp)
}
