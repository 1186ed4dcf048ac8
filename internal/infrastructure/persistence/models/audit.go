package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/audit"
)

// AuditEntryModel is the persistence model for an audit entry. Details is
// serialized to JSON on the way in and parsed back on the way out.
type AuditEntryModel struct {
	BaseModel
	TenantID   uuid.UUID    `gorm:"type:uuid;not null;index:idx_audit_tenant_entity,priority:1"`
	EntityType string       `gorm:"type:varchar(50);not null;index:idx_audit_tenant_entity,priority:2"`
	EntityID   uuid.UUID    `gorm:"type:uuid;not null;index:idx_audit_tenant_entity,priority:3"`
	Action     audit.Action `gorm:"type:varchar(30);not null"`
	ActorID    *uuid.UUID   `gorm:"type:uuid"`
	Details    string       `gorm:"type:jsonb"`
	OccurredAt time.Time    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// ToDomain converts the persistence model to a domain audit Entry.
func (m *AuditEntryModel) ToDomain() *audit.Entry {
	details := make(map[string]any)
	if m.Details != "" {
		// Malformed stored payloads degrade to an empty detail map.
		_ = json.Unmarshal([]byte(m.Details), &details)
	}
	return &audit.Entry{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Action:     m.Action,
		ActorID:    m.ActorID,
		Details:    details,
		OccurredAt: m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain audit Entry.
func (m *AuditEntryModel) FromDomain(e *audit.Entry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.TenantID = e.TenantID
	m.EntityType = e.EntityType
	m.EntityID = e.EntityID
	m.Action = e.Action
	m.ActorID = e.ActorID
	if len(e.Details) > 0 {
		if raw, err := json.Marshal(e.Details); err == nil {
			m.Details = string(raw)
		}
	}
	m.OccurredAt = e.OccurredAt
}

// AuditEntryModelFromDomain creates a new persistence model from a domain
// audit Entry.
func AuditEntryModelFromDomain(e *audit.Entry) *AuditEntryModel {
	m := &AuditEntryModel{}
	m.FromDomain(e)
	return m
}
