package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"

	"github.com/google/uuid"
)

const assetColumns = `
	id, tenant_id, upload_session_id, title, file_name, content_type,
	size_bytes, object_key, category_id, kind, published, pending_approval,
	published_by, created_at, updated_at, deleted_at`

type sqlAssetRepository struct {
	db SQLQuerier
}

// NewSQLAssetRepository creates a new sqlAssetRepository
func NewSQLAssetRepository(db SQLQuerier) port.AssetRepository {
	return &sqlAssetRepository{db: db}
}

// Create inserts the asset. The unique index on upload_session_id is the
// last line of defense against duplicate completions: when it fires, the
// winning row is returned instead of an error. ON CONFLICT DO NOTHING keeps
// the duplicate from aborting the surrounding transaction, so the recovery
// SELECT stays valid inside a unit of work.
func (s *sqlAssetRepository) Create(ctx context.Context, asset domain.Asset) (port.AssetCreateOutcome, *domain.Asset, error) {
	query := `
		INSERT INTO assets (
			id, tenant_id, upload_session_id, title, file_name, content_type,
			size_bytes, object_key, category_id, kind, published, pending_approval, published_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (upload_session_id) WHERE deleted_at IS NULL DO NOTHING
		RETURNING created_at, updated_at`

	err := s.db.QueryRowContext(
		ctx,
		query,
		asset.ID,
		asset.TenantID,
		asset.UploadSessionID,
		asset.Title,
		asset.FileName,
		asset.ContentType,
		asset.SizeBytes,
		asset.ObjectKey,
		asset.CategoryID,
		asset.Kind,
		asset.Published,
		asset.PendingApproval,
		asset.PublishedBy,
	).Scan(&asset.CreatedAt, &asset.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The insert was swallowed by the unique index: a concurrent
			// completion already anchored this session.
			winner, findErr := s.FindBySessionID(ctx, asset.UploadSessionID)
			if findErr != nil {
				return 0, nil, findErr
			}
			return port.AssetAlreadyExists, winner, nil
		}
		return 0, nil, err
	}

	return port.AssetCreated, &asset, nil
}

func (s *sqlAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1 AND deleted_at IS NULL`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

func (s *sqlAssetRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE upload_session_id = $1 AND deleted_at IS NULL`
	return s.scanOne(s.db.QueryRowContext(ctx, query, sessionID))
}

func (s *sqlAssetRepository) FindBySessionIDForUpdate(ctx context.Context, sessionID uuid.UUID) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE upload_session_id = $1 AND deleted_at IS NULL FOR UPDATE`
	return s.scanOne(s.db.QueryRowContext(ctx, query, sessionID))
}

// ReplaceFile overwrites the file facts of an asset, leaving everything
// else untouched
func (s *sqlAssetRepository) ReplaceFile(ctx context.Context, id uuid.UUID, fileName, contentType string, sizeBytes int64, objectKey string) error {
	query := `
		UPDATE assets
		SET file_name = $1, content_type = $2, size_bytes = $3, object_key = $4, updated_at = now()
		WHERE id = $5 AND deleted_at IS NULL`

	return s.mutateOne(ctx, query, fileName, contentType, sizeBytes, objectKey, id)
}

// SetPublication updates the publication flags of an asset
func (s *sqlAssetRepository) SetPublication(ctx context.Context, id uuid.UUID, published, pendingApproval bool, publishedBy *uuid.UUID) error {
	query := `
		UPDATE assets
		SET published = $1, pending_approval = $2, published_by = $3, updated_at = now()
		WHERE id = $4 AND deleted_at IS NULL`

	return s.mutateOne(ctx, query, published, pendingApproval, publishedBy, id)
}

func (s *sqlAssetRepository) mutateOne(ctx context.Context, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrAssetNotFound
	}

	return nil
}

func (s *sqlAssetRepository) scanOne(row *sql.Row) (*domain.Asset, error) {
	var dbRow dbAsset
	if err := dbRow.scan(row.Scan); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return dbRow.ToDomain(), nil
}

type dbAsset struct {
	ID              uuid.UUID     `db:"id"`
	TenantID        uuid.UUID     `db:"tenant_id"`
	UploadSessionID uuid.UUID     `db:"upload_session_id"`
	Title           string        `db:"title"`
	FileName        string        `db:"file_name"`
	ContentType     string        `db:"content_type"`
	SizeBytes       int64         `db:"size_bytes"`
	ObjectKey       string        `db:"object_key"`
	CategoryID      uuid.NullUUID `db:"category_id"`
	Kind            string        `db:"kind"`
	Published       bool          `db:"published"`
	PendingApproval bool          `db:"pending_approval"`
	PublishedBy     uuid.NullUUID `db:"published_by"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
	DeletedAt       sql.NullTime  `db:"deleted_at"`
}

func (a *dbAsset) scan(scan func(dest ...any) error) error {
	return scan(
		&a.ID,
		&a.TenantID,
		&a.UploadSessionID,
		&a.Title,
		&a.FileName,
		&a.ContentType,
		&a.SizeBytes,
		&a.ObjectKey,
		&a.CategoryID,
		&a.Kind,
		&a.Published,
		&a.PendingApproval,
		&a.PublishedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.DeletedAt,
	)
}

// ToDomain converts db obj to domain
func (a *dbAsset) ToDomain() *domain.Asset {
	asset := &domain.Asset{
		ID:              a.ID,
		TenantID:        a.TenantID,
		UploadSessionID: a.UploadSessionID,
		Title:           a.Title,
		FileName:        a.FileName,
		ContentType:     a.ContentType,
		SizeBytes:       a.SizeBytes,
		ObjectKey:       a.ObjectKey,
		Kind:            domain.AssetKind(a.Kind),
		Published:       a.Published,
		PendingApproval: a.PendingApproval,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	if a.CategoryID.Valid {
		categoryID := a.CategoryID.UUID
		asset.CategoryID = &categoryID
	}
	if a.PublishedBy.Valid {
		publishedBy := a.PublishedBy.UUID
		asset.PublishedBy = &publishedBy
	}
	if a.DeletedAt.Valid {
		deletedAt := a.DeletedAt.Time
		asset.DeletedAt = &deletedAt
	}

	return asset
}
