package upload

import (
	"net/http"
)

// V1MarkUploadingResponse reports whether the call transitioned the session
// or only refreshed its activity window
type V1MarkUploadingResponse struct {
	Transitioned bool `json:"transitioned"`
}

func (h *HandlerV1) MarkUploadingV1(w http.ResponseWriter, r *http.Request) {
	sessionID, err := sessionIDParam(r)
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	result, err := h.uploadService.MarkUploading(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, V1MarkUploadingResponse{Transitioned: result.Transitioned})
}
