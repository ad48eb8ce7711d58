package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionStatus represents the status of an upload session
type SessionStatus string

const (
	SessionStatusInitiating SessionStatus = "initiating"
	SessionStatusUploading  SessionStatus = "uploading"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusCancelled  SessionStatus = "cancelled"
	SessionStatusFailed     SessionStatus = "failed"
	SessionStatusExpired    SessionStatus = "expired"
)

// Terminal reports whether no further transition is permitted from s.
func (s SessionStatus) Terminal() bool {
	switch s {
	case SessionStatusCompleted, SessionStatusCancelled, SessionStatusFailed, SessionStatusExpired:
		return true
	}
	return false
}

// TransferType represents how the bytes reach the object store
type TransferType string

const (
	TransferTypeDirect  TransferType = "direct"
	TransferTypeChunked TransferType = "chunked"
)

// SessionMode distinguishes sessions producing a new asset from sessions
// overwriting the file of an existing one
type SessionMode string

const (
	SessionModeCreate  SessionMode = "create"
	SessionModeReplace SessionMode = "replace"
)

// FailureReason categorizes why a session ended in a failure state
type FailureReason string

const (
	FailureReasonSizeMismatch  FailureReason = "size_mismatch"
	FailureReasonAssembly      FailureReason = "assembly_failed"
	FailureReasonUserCancelled FailureReason = "user_cancelled"
	FailureReasonExpired       FailureReason = "expired"
)

// transitions lists the legal target states per current state. Terminal
// states have no entry: nothing leaves them.
var transitions = map[SessionStatus][]SessionStatus{
	SessionStatusInitiating: {SessionStatusUploading, SessionStatusCompleted, SessionStatusCancelled, SessionStatusFailed, SessionStatusExpired},
	SessionStatusUploading:  {SessionStatusCompleted, SessionStatusCancelled, SessionStatusFailed, SessionStatusExpired},
}

// UploadSession represents one upload attempt, identified independently of
// any resulting asset.
type UploadSession struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	BrandID           *uuid.UUID
	CorrelationRef    string
	BatchRef          string
	TransferType      TransferType
	Mode              SessionMode
	TargetAssetID     *uuid.UUID
	FileName          string
	ContentType       string
	ExpectedSize      int64
	UploadedSize      *int64
	MultipartUploadID string
	BucketName        string
	Status            SessionStatus
	FailureReason     *FailureReason
	FailureCount      int
	TicketRef         *string
	ExpiresAt         time.Time
	LastActivityAt    time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Expired reports whether the session's expiry window has passed. Terminal
// sessions never report expired: their outcome is already settled.
func (s *UploadSession) Expired(now time.Time) bool {
	if s.Status.Terminal() {
		return false
	}
	return !s.ExpiresAt.After(now)
}

// CanTransition reports whether moving to target is legal from the current
// status. An expired session can only move to expired.
func (s *UploadSession) CanTransition(target SessionStatus, now time.Time) bool {
	if s.Expired(now) {
		return target == SessionStatusExpired
	}
	for _, allowed := range transitions[s.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ObjectKeyFor computes the deterministic object-store key for a session.
// The format is immutable: any component holding only the session id can
// reproduce it, independent of tenant, brand or file name.
func ObjectKeyFor(sessionID uuid.UUID) string {
	return fmt.Sprintf("temp/uploads/%s/original", sessionID)
}

// UploadPart represents an uploaded part of a chunked transfer
type UploadPart struct {
	PartNumber int
	ETag       string
}
