// Package collaborator holds the in-process defaults for the services the
// upload pipeline talks to but does not own: plan enforcement, category
// classification, metadata validation, approval notification and ticket
// escalation. Deployments with real backing services swap these out at
// wiring time.
package collaborator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"

	"github.com/google/uuid"
)

// StaticPlanGate enforces a single per-upload byte limit for every tenant.
type StaticPlanGate struct {
	limitBytes int64
}

func NewStaticPlanGate(limitBytes int64) *StaticPlanGate {
	return &StaticPlanGate{limitBytes: limitBytes}
}

func (g *StaticPlanGate) CheckUploadAllowed(_ context.Context, _ uuid.UUID, sizeBytes int64) error {
	if g.limitBytes > 0 && sizeBytes > g.limitBytes {
		return &domain.PlanLimitError{LimitBytes: g.limitBytes, RequestedBytes: sizeBytes}
	}
	return nil
}

// OpenCategoryGate classifies every category as publish-on-completion.
type OpenCategoryGate struct{}

func NewOpenCategoryGate() *OpenCategoryGate {
	return &OpenCategoryGate{}
}

func (g *OpenCategoryGate) Classify(_ context.Context, _, categoryID uuid.UUID) (*domain.Category, error) {
	return &domain.Category{ID: categoryID, RequiresApproval: false}, nil
}

// AcceptAllMetadataPersister accepts every declared field without schema
// validation. It only logs what it received; a schema-backed persister
// belongs to the category service.
type AcceptAllMetadataPersister struct {
	logger *slog.Logger
}

func NewAcceptAllMetadataPersister(logger *slog.Logger) *AcceptAllMetadataPersister {
	return &AcceptAllMetadataPersister{logger: logger}
}

func (p *AcceptAllMetadataPersister) PersistFields(_ context.Context, assetID uuid.UUID, _ *uuid.UUID, fields map[string]string) (int, []string, error) {
	if len(fields) > 0 {
		p.logger.Debug("persisted metadata fields", "asset_id", assetID, "count", len(fields))
	}
	return len(fields), nil, nil
}

// LogNotifier records approval notifications in the log stream.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) AssetPendingApproval(_ context.Context, asset *domain.Asset) error {
	n.logger.Info("asset pending approval",
		"asset_id", asset.ID,
		"tenant_id", asset.TenantID,
		"title", asset.Title,
	)
	return nil
}

// LogTicketEscalator fabricates a ticket reference locally instead of
// calling a ticketing system.
type LogTicketEscalator struct {
	logger *slog.Logger
}

func NewLogTicketEscalator(logger *slog.Logger) *LogTicketEscalator {
	return &LogTicketEscalator{logger: logger}
}

func (e *LogTicketEscalator) Escalate(_ context.Context, summary domain.TicketSummary) (string, error) {
	ref := fmt.Sprintf("local-%d", time.Now().UnixNano())
	e.logger.Warn("session escalated to support",
		"ticket_ref", ref,
		"session_id", summary.SessionID,
		"tenant_id", summary.TenantID,
		"failure_count", summary.FailureCount,
		"reason", summary.Reason,
	)
	return ref, nil
}

var (
	_ port.PlanGate          = (*StaticPlanGate)(nil)
	_ port.CategoryGate      = (*OpenCategoryGate)(nil)
	_ port.MetadataPersister = (*AcceptAllMetadataPersister)(nil)
	_ port.Notifier          = (*LogNotifier)(nil)
	_ port.TicketEscalator   = (*LogTicketEscalator)(nil)
)
