package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/audit"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditRepository implements audit.Repository using GORM
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByEntity lists audit entries for one entity, most recent first
func (r *GormAuditRepository) FindByEntity(ctx context.Context, tenantID uuid.UUID, entityType string, entityID uuid.UUID, filter shared.Filter) ([]*audit.Entry, error) {
	var entryModels []models.AuditEntryModel
	query := r.conn(ctx).Model(&models.AuditEntryModel{}).
		Where("tenant_id = ? AND entity_type = ? AND entity_id = ?", tenantID, entityType, entityID).
		Order("occurred_at DESC")
	query = applyPagination(query, filter)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toAuditEntries(entryModels), nil
}

// FindAllForTenant lists audit entries for a tenant, most recent first
func (r *GormAuditRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*audit.Entry, error) {
	var entryModels []models.AuditEntryModel
	query := r.conn(ctx).Model(&models.AuditEntryModel{}).
		Where("tenant_id = ?", tenantID).
		Order("occurred_at DESC")
	query = r.applyFilters(query, filter)
	query = applyPagination(query, filter)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toAuditEntries(entryModels), nil
}

// CountForTenant counts audit entries for a tenant
func (r *GormAuditRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.conn(ctx).Model(&models.AuditEntryModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilters(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save appends an audit entry
func (r *GormAuditRepository) Save(ctx context.Context, entry *audit.Entry) error {
	model := models.AuditEntryModelFromDomain(entry)
	return r.conn(ctx).Create(model).Error
}

func (r *GormAuditRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "entity_type":
			query = query.Where("entity_type = ?", value)
		case "action":
			query = query.Where("action = ?", value)
		}
	}
	return query
}

func toAuditEntries(entryModels []models.AuditEntryModel) []*audit.Entry {
	entries := make([]*audit.Entry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries
}

// Ensure GormAuditRepository implements audit.Repository
var _ audit.Repository = (*GormAuditRepository)(nil)
