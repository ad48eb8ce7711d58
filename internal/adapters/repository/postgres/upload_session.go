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

const sessionColumns = `
	id, tenant_id, brand_id, correlation_ref, batch_ref, transfer_type, mode,
	target_asset_id, file_name, content_type, expected_size, uploaded_size,
	multipart_upload_id, bucket_name, status, failure_reason, failure_count,
	ticket_ref, expires_at, last_activity_at, created_at, updated_at`

// liveStatuses guards every mutation: terminal rows are never updated in
// place, whatever the caller believes about the session.
const liveStatuses = `('initiating', 'uploading')`

type sqlUploadSessionRepository struct {
	db SQLQuerier
}

// NewSQLUploadSessionRepository creates a new sqlUploadSessionRepository
func NewSQLUploadSessionRepository(db SQLQuerier) port.UploadSessionRepository {
	return &sqlUploadSessionRepository{db: db}
}

// Create creates an upload session
func (s *sqlUploadSessionRepository) Create(ctx context.Context, session domain.UploadSession) error {
	query := `
		INSERT INTO upload_sessions (
			id, tenant_id, brand_id, correlation_ref, batch_ref, transfer_type, mode,
			target_asset_id, file_name, content_type, expected_size,
			multipart_upload_id, bucket_name, status, expires_at, last_activity_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.TenantID,
		session.BrandID,
		session.CorrelationRef,
		session.BatchRef,
		session.TransferType,
		session.Mode,
		session.TargetAssetID,
		session.FileName,
		session.ContentType,
		session.ExpectedSize,
		session.MultipartUploadID,
		session.BucketName,
		session.Status,
		session.ExpiresAt,
		session.LastActivityAt,
	)
	return err
}

func (s *sqlUploadSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM upload_sessions WHERE id = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

func (s *sqlUploadSessionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM upload_sessions WHERE id = $1 FOR UPDATE`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

// UpdateStatus moves a live session to status
func (s *sqlUploadSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SessionStatus) error {
	query := `
		UPDATE upload_sessions
		SET status = $1, last_activity_at = now(), updated_at = now()
		WHERE id = $2 AND status IN ` + liveStatuses

	return s.mutateLive(ctx, query, status, id)
}

// Fail moves a live session to failed and bumps its failure counter
func (s *sqlUploadSessionRepository) Fail(ctx context.Context, id uuid.UUID, reason domain.FailureReason) error {
	query := `
		UPDATE upload_sessions
		SET status = 'failed', failure_reason = $1, failure_count = failure_count + 1,
		    last_activity_at = now(), updated_at = now()
		WHERE id = $2 AND status IN ` + liveStatuses

	return s.mutateLive(ctx, query, reason, id)
}

// Cancel moves a live session to cancelled
func (s *sqlUploadSessionRepository) Cancel(ctx context.Context, id uuid.UUID, reason domain.FailureReason) error {
	query := `
		UPDATE upload_sessions
		SET status = 'cancelled', failure_reason = $1,
		    last_activity_at = now(), updated_at = now()
		WHERE id = $2 AND status IN ` + liveStatuses

	return s.mutateLive(ctx, query, reason, id)
}

// Complete moves a live session to completed and records the verified size
func (s *sqlUploadSessionRepository) Complete(ctx context.Context, id uuid.UUID, uploadedSize int64) error {
	query := `
		UPDATE upload_sessions
		SET status = 'completed', uploaded_size = $1,
		    last_activity_at = now(), updated_at = now()
		WHERE id = $2 AND status IN ` + liveStatuses

	return s.mutateLive(ctx, query, uploadedSize, id)
}

// TouchActivity refreshes the activity timestamp of a live session
func (s *sqlUploadSessionRepository) TouchActivity(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE upload_sessions
		SET last_activity_at = now(), updated_at = now()
		WHERE id = $1 AND status IN ` + liveStatuses

	return s.mutateLive(ctx, query, id)
}

// AttachTicket records the escalation ticket once; later attaches are no-ops
func (s *sqlUploadSessionRepository) AttachTicket(ctx context.Context, id uuid.UUID, ticketRef string) error {
	query := `
		UPDATE upload_sessions
		SET ticket_ref = $1, updated_at = now()
		WHERE id = $2 AND ticket_ref IS NULL`

	_, err := s.db.ExecContext(ctx, query, ticketRef, id)
	return err
}

func (s *sqlUploadSessionRepository) FindAllExpired(ctx context.Context, now time.Time, limit int) ([]domain.UploadSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM upload_sessions
		WHERE status IN ` + liveStatuses + ` AND expires_at < $1
		ORDER BY expires_at
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.UploadSession
	for rows.Next() {
		var row dbUploadSession
		if err := row.scan(rows.Scan); err != nil {
			return nil, err
		}
		sessions = append(sessions, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (s *sqlUploadSessionRepository) mutateLive(ctx context.Context, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrSessionNotFound
	}

	return nil
}

func (s *sqlUploadSessionRepository) scanOne(row *sql.Row) (*domain.UploadSession, error) {
	var dbRow dbUploadSession
	if err := dbRow.scan(row.Scan); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return dbRow.ToDomain(), nil
}

type dbUploadSession struct {
	ID                uuid.UUID      `db:"id"`
	TenantID          uuid.UUID      `db:"tenant_id"`
	BrandID           uuid.NullUUID  `db:"brand_id"`
	CorrelationRef    string         `db:"correlation_ref"`
	BatchRef          string         `db:"batch_ref"`
	TransferType      string         `db:"transfer_type"`
	Mode              string         `db:"mode"`
	TargetAssetID     uuid.NullUUID  `db:"target_asset_id"`
	FileName          string         `db:"file_name"`
	ContentType       string         `db:"content_type"`
	ExpectedSize      int64          `db:"expected_size"`
	UploadedSize      sql.NullInt64  `db:"uploaded_size"`
	MultipartUploadID string         `db:"multipart_upload_id"`
	BucketName        string         `db:"bucket_name"`
	Status            string         `db:"status"`
	FailureReason     sql.NullString `db:"failure_reason"`
	FailureCount      int            `db:"failure_count"`
	TicketRef         sql.NullString `db:"ticket_ref"`
	ExpiresAt         time.Time      `db:"expires_at"`
	LastActivityAt    time.Time      `db:"last_activity_at"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

func (s *dbUploadSession) scan(scan func(dest ...any) error) error {
	return scan(
		&s.ID,
		&s.TenantID,
		&s.BrandID,
		&s.CorrelationRef,
		&s.BatchRef,
		&s.TransferType,
		&s.Mode,
		&s.TargetAssetID,
		&s.FileName,
		&s.ContentType,
		&s.ExpectedSize,
		&s.UploadedSize,
		&s.MultipartUploadID,
		&s.BucketName,
		&s.Status,
		&s.FailureReason,
		&s.FailureCount,
		&s.TicketRef,
		&s.ExpiresAt,
		&s.LastActivityAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

// ToDomain converts db obj to domain
func (s *dbUploadSession) ToDomain() *domain.UploadSession {
	session := &domain.UploadSession{
		ID:                s.ID,
		TenantID:          s.TenantID,
		CorrelationRef:    s.CorrelationRef,
		BatchRef:          s.BatchRef,
		TransferType:      domain.TransferType(s.TransferType),
		Mode:              domain.SessionMode(s.Mode),
		FileName:          s.FileName,
		ContentType:       s.ContentType,
		ExpectedSize:      s.ExpectedSize,
		MultipartUploadID: s.MultipartUploadID,
		BucketName:        s.BucketName,
		Status:            domain.SessionStatus(s.Status),
		FailureCount:      s.FailureCount,
		ExpiresAt:         s.ExpiresAt,
		LastActivityAt:    s.LastActivityAt,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}

	if s.BrandID.Valid {
		brandID := s.BrandID.UUID
		session.BrandID = &brandID
	}
	if s.TargetAssetID.Valid {
		targetID := s.TargetAssetID.UUID
		session.TargetAssetID = &targetID
	}
	if s.UploadedSize.Valid {
		size := s.UploadedSize.Int64
		session.UploadedSize = &size
	}
	if s.FailureReason.Valid {
		reason := domain.FailureReason(s.FailureReason.String)
		session.FailureReason = &reason
	}
	if s.TicketRef.Valid {
		ref := s.TicketRef.String
		session.TicketRef = &ref
	}

	return session
}
