package upload

import (
	"encoding/json"
	"io"
	"net/http"
)

// V1CancelRequest optionally records why the client abandoned the upload
type V1CancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

// V1CancelResponse reports whether there was anything left to cancel
type V1CancelResponse struct {
	AlreadyTerminal bool `json:"already_terminal"`
}

func (h *HandlerV1) CancelV1(w http.ResponseWriter, r *http.Request) {
	sessionID, err := sessionIDParam(r)
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	// The body is optional.
	var req V1CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.uploadService.Cancel(r.Context(), sessionID, req.Reason)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, V1CancelResponse{AlreadyTerminal: result.AlreadyTerminal})
}
