package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
)

// Action names what happened to an aggregate
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionReceived  Action = "received"
	ActionValidated Action = "validated"
	ActionCancelled Action = "cancelled"
	ActionConverted Action = "converted"
)

// Entry is one append-only audit line. Details holds a small free-form
// payload (amounts, references) serialized by the persistence layer.
type Entry struct {
	shared.BaseEntity
	TenantID   uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	Action     Action
	ActorID    *uuid.UUID
	Details    map[string]any
	OccurredAt time.Time
}

// NewEntry creates an audit entry
func NewEntry(tenantID uuid.UUID, entityType string, entityID uuid.UUID, action Action) *Entry {
	return &Entry{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    make(map[string]any),
		OccurredAt: time.Now(),
	}
}

// WithActor records who performed the action
func (e *Entry) WithActor(actorID uuid.UUID) *Entry {
	e.ActorID = &actorID
	return e
}

// WithDetail attaches one key of context to the entry
func (e *Entry) WithDetail(key string, value any) *Entry {
	e.Details[key] = value
	return e
}

// Recorder appends audit entries. Implementations must never fail a business
// transaction: recording errors are logged and swallowed.
type Recorder interface {
	Record(ctx context.Context, entry *Entry)
}

// Repository reads and writes audit entries
type Repository interface {
	FindByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, filter shared.Filter) ([]*Entry, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Entry, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, entry *Entry) error
}
