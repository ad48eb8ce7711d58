package upload

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// HandlerV1 is the handler for v1 upload session routes
type HandlerV1 struct {
	uploadService port.UploadService
	logger        *slog.Logger
}

// NewUploadHandlerV1 creates HandlerV1
func NewUploadHandlerV1(service port.UploadService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		uploadService: service,
		logger:        logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.InitiateV1)
	router.Post("/batch", h.InitiateBatchV1)
	router.Post("/{sessionID}/parts", h.PresignPartsV1)
	router.Post("/{sessionID}/uploading", h.MarkUploadingV1)
	router.Post("/{sessionID}/cancel", h.CancelV1)
	router.Post("/{sessionID}/complete", h.CompleteV1)

	return router
}

// AssetRoutes exposes the asset-facing routes of the handler
func (h *HandlerV1) AssetRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/{assetID}/approve", h.ApproveV1)

	return router
}

// tenantID reads the tenant of the call from the X-Tenant-ID header. Tenancy
// is explicit on every route; there is no ambient tenant context.
func tenantID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.Header.Get("X-Tenant-ID"))
}

func sessionIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "sessionID"))
}

func (h *HandlerV1) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}

// handleServiceError maps domain errors to HTTP statuses.
func (h *HandlerV1) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrAssetNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrStateConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrPlanLimitExceeded), errors.Is(err, domain.ErrUploadTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrBatchTooLarge):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrObjectMissing):
		http.Error(w, err.Error(), http.StatusPreconditionFailed)
	case errors.Is(err, domain.ErrSizeMismatch), errors.Is(err, domain.ErrMetadataPersistence), errors.Is(err, domain.ErrTransferAssembly):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrBucketNotReady), errors.Is(err, domain.ErrRemoteUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		h.logger.Error("unexpected service error", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
