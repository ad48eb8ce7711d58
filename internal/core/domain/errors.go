package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is an error thrown when session is not found
var ErrSessionNotFound = errors.New("session not found")

// ErrAssetNotFound is an error thrown when asset is not found
var ErrAssetNotFound = errors.New("asset not found")

// ErrPlanLimitExceeded is an error thrown when an upload exceeds the tenant's plan allowance
var ErrPlanLimitExceeded = errors.New("plan limit exceeded")

// ErrBucketNotReady is a retryable error thrown while the tenant bucket is still provisioning
var ErrBucketNotReady = errors.New("bucket not ready")

// ErrStateConflict is an error thrown when an illegal session transition is attempted
var ErrStateConflict = errors.New("state conflict")

// ErrSizeMismatch is an error thrown when the verified object size disagrees with the expected size
var ErrSizeMismatch = errors.New("size mismatch")

// ErrTransferAssembly is an error thrown when multipart assembly cannot complete
var ErrTransferAssembly = errors.New("transfer assembly failed")

// ErrTransferNotFound is an error thrown when the remote multipart transfer no longer exists
var ErrTransferNotFound = errors.New("transfer not found")

// ErrObjectMissing is an error thrown when the uploaded object is absent at the deterministic key
var ErrObjectMissing = errors.New("uploaded object not found")

// ErrMetadataPersistence is an error thrown when every client-supplied metadata field is rejected
var ErrMetadataPersistence = errors.New("metadata persistence failed")

// ErrRemoteUnavailable is a retryable error thrown when the object store cannot be reached
var ErrRemoteUnavailable = errors.New("object store unavailable")

// ErrBatchTooLarge is an error thrown when a batch exceeds the item cap
var ErrBatchTooLarge = errors.New("batch too large")

// ErrInvalidRequest is an error thrown when a request is malformed
var ErrInvalidRequest = errors.New("invalid request")

// ErrUploadTooLarge is an error thrown when an upload exceeds the absolute size cap
var ErrUploadTooLarge = errors.New("upload too large")

// PlanLimitError carries the tenant allowance that was exceeded.
// errors.Is(err, ErrPlanLimitExceeded) matches it.
type PlanLimitError struct {
	LimitBytes     int64
	RequestedBytes int64
}

func (e *PlanLimitError) Error() string {
	return fmt.Sprintf("plan limit exceeded: requested %d bytes, limit %d bytes", e.RequestedBytes, e.LimitBytes)
}

func (e *PlanLimitError) Unwrap() error { return ErrPlanLimitExceeded }

// StateConflictError names the current and required session states of a
// rejected transition. errors.Is(err, ErrStateConflict) matches it.
type StateConflictError struct {
	Current SessionStatus
	Target  SessionStatus
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("state conflict: session is %s, cannot transition to %s", e.Current, e.Target)
}

func (e *StateConflictError) Unwrap() error { return ErrStateConflict }

// SizeMismatchError carries the expected and observed byte sizes.
// errors.Is(err, ErrSizeMismatch) matches it.
type SizeMismatchError struct {
	ExpectedBytes int64
	ObservedBytes int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("size mismatch: expected %d bytes, object store reports %d bytes", e.ExpectedBytes, e.ObservedBytes)
}

func (e *SizeMismatchError) Unwrap() error { return ErrSizeMismatch }
