package upload_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	http2 "net/http"
	"net/http/httptest"
	"testing"
	"time"

	upload2 "assetvault/internal/adapters/handlers/http/chi/v1/upload"
	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"
	"assetvault/internal/core/service/upload"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkUploadingV1(t *testing.T) {

	t.Run("nominal", func(t *testing.T) {
		//Arrange
		sessionID := uuid.New()
		mockService := upload.NewMockUploadService()
		mockService.On("MarkUploading", mock.Anything, sessionID).
			Return(&port.MarkUploadingResult{Transitioned: true}, nil)

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http2.MethodPost, fmt.Sprintf("/api/v1/uploads/%s/uploading", sessionID), nil)

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		var response upload2.V1MarkUploadingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Transitioned)
	})

	t.Run("error - terminal session", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("MarkUploading", mock.Anything, mock.Anything).
			Return((*port.MarkUploadingResult)(nil), &domain.StateConflictError{
				Current: domain.SessionStatusCompleted,
				Target:  domain.SessionStatusUploading,
			})

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http2.MethodPost, fmt.Sprintf("/api/v1/uploads/%s/uploading", uuid.New()), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusConflict, w.Code)
	})

	t.Run("error - malformed session id", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		h := newTestRouter(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http2.MethodPost, "/api/v1/uploads/not-a-uuid/uploading", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "MarkUploading")
	})
}

func TestCancelV1(t *testing.T) {

	t.Run("nominal with reason", func(t *testing.T) {
		//Arrange
		sessionID := uuid.New()
		mockService := upload.NewMockUploadService()
		mockService.On("Cancel", mock.Anything, sessionID, "changed my mind").
			Return(&port.CancelResult{}, nil)

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		jsonBody, _ := json.Marshal(upload2.V1CancelRequest{Reason: "changed my mind"})
		req := httptest.NewRequest(http2.MethodPost, fmt.Sprintf("/api/v1/uploads/%s/cancel", sessionID), bytes.NewReader(jsonBody))

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("nominal without body", func(t *testing.T) {
		//Arrange
		sessionID := uuid.New()
		mockService := upload.NewMockUploadService()
		mockService.On("Cancel", mock.Anything, sessionID, "").
			Return(&port.CancelResult{AlreadyTerminal: true}, nil)

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http2.MethodPost, fmt.Sprintf("/api/v1/uploads/%s/cancel", sessionID), nil)

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		var response upload2.V1CancelResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.AlreadyTerminal)
	})
}

func TestPresignPartsV1(t *testing.T) {

	t.Run("nominal", func(t *testing.T) {
		//Arrange
		sessionID := uuid.New()
		expiry := time.Now().Add(time.Hour).UTC()

		mockService := upload.NewMockUploadService()
		mockService.On("PresignParts", mock.Anything, sessionID, []int{1, 2}).
			Return([]port.PartGrant{
				{PartNumber: 1, URL: "https://store.example.com/part/1", ExpiresAt: expiry},
				{PartNumber: 2, URL: "https://store.example.com/part/2", ExpiresAt: expiry},
			}, nil)

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		jsonBody, _ := json.Marshal(upload2.V1PresignPartsRequest{PartNumbers: []int{1, 2}})
		req := httptest.NewRequest(http2.MethodPost, fmt.Sprintf("/api/v1/uploads/%s/parts", sessionID), bytes.NewReader(jsonBody))

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		var response upload2.V1PresignPartsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Parts, 2)
		assert.Equal(t, 1, response.Parts[0].PartNumber)
		assert.Equal(t, "https://store.example.com/part/1", response.Parts[0].URL)
	})

	t.Run("error - not a chunked session", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("PresignParts", mock.Anything, mock.Anything, mock.Anything).
			Return(([]port.PartGrant)(nil), fmt.Errorf("%w: session is not a chunked transfer", domain.ErrInvalidRequest))

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		jsonBody, _ := json.Marshal(upload2.V1PresignPartsRequest{PartNumbers: []int{1}})
		req := httptest.NewRequest(http2.MethodPost, fmt.Sprintf("/api/v1/uploads/%s/parts", uuid.New()), bytes.NewReader(jsonBody))

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
	})
}

func TestApproveV1(t *testing.T) {

	t.Run("nominal", func(t *testing.T) {
		//Arrange
		tenant := uuid.New()
		assetID := uuid.New()
		actorID := uuid.New()

		mockService := upload.NewMockUploadService()
		mockService.On("Approve", mock.Anything, tenant, assetID, actorID).
			Return(&domain.Asset{ID: assetID, TenantID: tenant, Published: true}, nil)

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		jsonBody, _ := json.Marshal(upload2.V1ApproveRequest{ActorID: actorID})
		req := httptest.NewRequest(http2.MethodPost, fmt.Sprintf("/api/v1/assets/%s/approve", assetID), bytes.NewReader(jsonBody))
		req.Header.Set("X-Tenant-ID", tenant.String())

		//Act
		h.ServeHTTP(w, req)

		//Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		mockService.AssertExpectations(t)

		var response upload2.V1Asset
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, assetID, response.ID)
		assert.True(t, response.Published)
	})

	t.Run("error - unknown asset", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		mockService.On("Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return((*domain.Asset)(nil), domain.ErrAssetNotFound)

		h := newTestRouter(mockService)
		w := httptest.NewRecorder()

		jsonBody, _ := json.Marshal(upload2.V1ApproveRequest{ActorID: uuid.New()})
		req := httptest.NewRequest(http2.MethodPost, fmt.Sprintf("/api/v1/assets/%s/approve", uuid.New()), bytes.NewReader(jsonBody))
		req.Header.Set("X-Tenant-ID", uuid.New().String())

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
	})
}
