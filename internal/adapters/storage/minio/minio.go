package minio

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"assetvault/internal/config"
	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio. It serves both as the object store
// gateway and as the per-tenant bucket resolver.
type Adapter struct {
	client *minio.Client
	core   *minio.Core
	config config.MinioConfig
	logger *slog.Logger

	// knownBuckets caches bucket names already verified remotely.
	knownBuckets sync.Map
}

// NewAdapter returns Adapter
func NewAdapter(cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	core := minio.Core{Client: client}
	return &Adapter{client: client, core: &core, config: cfg, logger: logger}, nil
}

// Resolve returns the bucket bound to a tenant, provisioning it on first
// use. Returns domain.ErrBucketNotReady when the bucket does not surface
// after provisioning; callers treat that as retryable.
func (a *Adapter) Resolve(ctx context.Context, tenantID uuid.UUID) (string, error) {
	bucket := fmt.Sprintf("%s-%s", a.config.BucketPrefix, tenantID)

	if _, ok := a.knownBuckets.Load(bucket); ok {
		return bucket, nil
	}

	ctx, cancel := a.opContext(ctx)
	defer cancel()

	exists, err := a.client.BucketExists(ctx, bucket)
	if err != nil {
		return "", a.mapRemoteError(err)
	}

	if !exists {
		if err := a.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return "", a.mapRemoteError(err)
		}
		exists, err = a.client.BucketExists(ctx, bucket)
		if err != nil {
			return "", a.mapRemoteError(err)
		}
		if !exists {
			return "", domain.ErrBucketNotReady
		}
		a.logger.Info("provisioned tenant bucket", "bucket", bucket)
	}

	a.knownBuckets.Store(bucket, struct{}{})
	return bucket, nil
}

// ExistsAndStat reports the verified size and content type of an object.
// A missing object is not an error.
func (a *Adapter) ExistsAndStat(ctx context.Context, bucket, key string) (*port.ObjectStat, error) {
	ctx, cancel := a.opContext(ctx)
	defer cancel()

	info, err := a.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return &port.ObjectStat{Exists: false}, nil
		}
		return nil, a.mapRemoteError(err)
	}

	return &port.ObjectStat{
		Exists:      true,
		SizeBytes:   info.Size,
		ContentType: info.ContentType,
	}, nil
}

// PresignPut generates a presigned PUT URL for a direct upload
func (a *Adapter) PresignPut(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, map[string]string, *time.Time, error) {
	requestHeaders := make(http.Header)
	requestHeaders.Set("Content-Type", contentType)

	presignedURL, err := a.client.PresignHeader(ctx, http.MethodPut, bucket, key, ttl, nil, requestHeaders)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to generate pre-signed URL: %w", a.mapRemoteError(err))
	}

	expiresAt := time.Now().Add(ttl)

	return presignedURL.String(), a.headerToMap(requestHeaders), &expiresAt, nil
}

// PresignPutPart generates a presigned PUT URL for one part of a chunked
// transfer
func (a *Adapter) PresignPutPart(ctx context.Context, bucket, key, uploadID string, partNumber int, ttl time.Duration) (string, map[string]string, *time.Time, error) {
	reqParams := make(url.Values)
	reqParams.Set("partNumber", fmt.Sprintf("%d", partNumber))
	reqParams.Set("uploadId", uploadID)

	presignedURL, err := a.core.PresignHeader(ctx, http.MethodPut, bucket, key, ttl, reqParams, nil)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to generate presigned URL for part: %w", a.mapRemoteError(err))
	}

	expiresAt := time.Now().Add(ttl)

	return presignedURL.String(), map[string]string{}, &expiresAt, nil
}

// InitiateMultipart opens a multipart transfer
func (a *Adapter) InitiateMultipart(ctx context.Context, bucket, key, contentType string) (string, error) {
	ctx, cancel := a.opContext(ctx)
	defer cancel()

	opts := minio.PutObjectOptions{ContentType: contentType}
	uploadID, err := a.core.NewMultipartUpload(ctx, bucket, key, opts)
	if err != nil {
		return "", fmt.Errorf("failed to init multipart upload: %w", a.mapRemoteError(err))
	}
	return uploadID, nil
}

// ListParts lists uploaded parts with pagination
func (a *Adapter) ListParts(ctx context.Context, bucket, key, uploadID string, maxParts, partNumberMarker int) ([]domain.UploadPart, int, error) {
	if maxParts <= 0 || maxParts > 1000 {
		maxParts = 1000 //max size for minio
	}

	ctx, cancel := a.opContext(ctx)
	defer cancel()

	result, err := a.core.ListObjectParts(ctx, bucket, key, uploadID, partNumberMarker, maxParts)
	if err != nil {
		return nil, 0, a.mapRemoteError(err)
	}

	parts := make([]domain.UploadPart, 0, len(result.ObjectParts))
	for _, part := range result.ObjectParts {
		parts = append(parts, domain.UploadPart{
			PartNumber: part.PartNumber,
			ETag:       strings.Trim(part.ETag, "\""),
		})
	}

	marker := 0
	if result.IsTruncated {
		marker = result.NextPartNumberMarker
	}

	return parts, marker, nil
}

// CompleteMultipart stitches the uploaded parts into the final object
func (a *Adapter) CompleteMultipart(ctx context.Context, bucket, key, uploadID string, orderedParts []domain.UploadPart) error {
	sort.Slice(orderedParts, func(i, j int) bool {
		return orderedParts[i].PartNumber < orderedParts[j].PartNumber
	})

	completeParts := make([]minio.CompletePart, 0, len(orderedParts))
	for _, part := range orderedParts {
		completeParts = append(completeParts, minio.CompletePart{
			PartNumber: part.PartNumber,
			ETag:       strings.Trim(part.ETag, "\""),
		})
	}

	ctx, cancel := a.opContext(ctx)
	defer cancel()

	opts := minio.PutObjectOptions{SendContentMd5: false}
	_, err := a.core.CompleteMultipartUpload(ctx, bucket, key, uploadID, completeParts, opts)
	if err != nil {
		return fmt.Errorf("failed to complete multipart upload: %w", a.mapRemoteError(err))
	}

	return nil
}

// AbortMultipart abandons a multipart transfer
func (a *Adapter) AbortMultipart(ctx context.Context, bucket, key, uploadID string) error {
	ctx, cancel := a.opContext(ctx)
	defer cancel()

	if err := a.core.AbortMultipartUpload(ctx, bucket, key, uploadID); err != nil {
		mapped := a.mapRemoteError(err)
		if mapped == domain.ErrTransferNotFound {
			// Already gone, nothing to abort.
			return nil
		}
		return fmt.Errorf("failed to abort multipart upload: %w", mapped)
	}

	a.logger.Info("multipart upload aborted",
		slog.String("key", key),
		slog.String("uploadID", uploadID))

	return nil
}

// DeleteObject deletes an object from storage
func (a *Adapter) DeleteObject(ctx context.Context, bucket, key string) error {
	ctx, cancel := a.opContext(ctx)
	defer cancel()

	if err := a.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", a.mapRemoteError(err))
	}

	return nil
}

func (a *Adapter) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.OperationTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.config.OperationTimeout)
}

// mapRemoteError translates minio errors into domain errors. API errors
// with a response code keep their identity; transport failures collapse
// into the retryable ErrRemoteUnavailable.
func (a *Adapter) mapRemoteError(err error) error {
	if err == nil {
		return nil
	}

	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchUpload":
		return domain.ErrTransferNotFound
	case "":
		return fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
	}
	return err
}

func (a *Adapter) headerToMap(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if len(values) > 0 {
			result[key] = values[0]
		}
	}
	return result
}
