package persistence

import (
	"context"

	"github.com/retailflow/backend/internal/domain/audit"
	"go.uber.org/zap"
)

// AuditRecorder persists audit entries through the audit repository. A
// failed write never fails the caller: the error is logged and swallowed,
// because an audit gap is preferable to a rolled-back business operation.
type AuditRecorder struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewAuditRecorder creates a new AuditRecorder
func NewAuditRecorder(repo audit.Repository, logger *zap.Logger) *AuditRecorder {
	return &AuditRecorder{repo: repo, logger: logger}
}

// Record appends an audit entry, logging and swallowing any persistence error
func (r *AuditRecorder) Record(ctx context.Context, entry *audit.Entry) {
	if err := r.repo.Save(ctx, entry); err != nil {
		r.logger.Warn("failed to record audit entry",
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID.String()),
			zap.String("action", string(entry.Action)),
			zap.Error(err),
		)
	}
}

// Ensure AuditRecorder implements audit.Recorder
var _ audit.Recorder = (*AuditRecorder)(nil)
