package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/audit"
	"github.com/retailflow/backend/internal/domain/shared"
)

// EntryResponse is one audit line returned to callers
type EntryResponse struct {
	ID         uuid.UUID      `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   uuid.UUID      `json:"entity_id"`
	Action     string         `json:"action"`
	ActorID    *uuid.UUID     `json:"actor_id,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Service reads the audit trail
type Service struct {
	repo audit.Repository
}

// NewService creates a new audit Service
func NewService(repo audit.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the tenant's audit trail, newest first
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]EntryResponse, int64, error) {
	entries, err := s.repo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return toEntryResponses(entries), total, nil
}

// ListForEntity returns the audit trail of one aggregate
func (s *Service) ListForEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, filter shared.Filter) ([]EntryResponse, error) {
	entries, err := s.repo.FindByEntity(ctx, tenantID, entityType, entityID, filter)
	if err != nil {
		return nil, err
	}
	return toEntryResponses(entries), nil
}

func toEntryResponses(entries []*audit.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = EntryResponse{
			ID:         e.ID,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Action:     string(e.Action),
			ActorID:    e.ActorID,
			Details:    e.Details,
			OccurredAt: e.OccurredAt,
		}
	}
	return responses
}
