package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/trade"
	"github.com/retailflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockTransferRepository implements trade.StockTransferRepository using
// GORM. Transfers are visible to both the source and destination business,
// so every tenant-scoped lookup matches the acting tenant against either end.
type GormStockTransferRepository struct {
	db *gorm.DB
}

// NewGormStockTransferRepository creates a new GormStockTransferRepository
func NewGormStockTransferRepository(db *gorm.DB) *GormStockTransferRepository {
	return &GormStockTransferRepository{db: db}
}

func (r *GormStockTransferRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByIDForTenant finds a transfer by ID visible to the acting tenant
func (r *GormStockTransferRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.StockTransfer, error) {
	var model models.StockTransferModel
	if err := r.conn(ctx).
		Preload("Items").
		Where("id = ? AND (source_tenant_id = ? OR destination_tenant_id = ?)", id, tenantID, tenantID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists transfers visible to the acting tenant
func (r *GormStockTransferRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*trade.StockTransfer, error) {
	var transferModels []models.StockTransferModel
	query := r.conn(ctx).Model(&models.StockTransferModel{}).
		Preload("Items").
		Where("source_tenant_id = ? OR destination_tenant_id = ?", tenantID, tenantID)
	query = r.applySearchAndFilters(query, filter)
	query = applyOrdering(query, filter, CommonSortFields, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&transferModels).Error; err != nil {
		return nil, err
	}

	transfers := make([]*trade.StockTransfer, len(transferModels))
	for i := range transferModels {
		transfers[i] = transferModels[i].ToDomain()
	}
	return transfers, nil
}

// CountForTenant counts transfers visible to the acting tenant
func (r *GormStockTransferRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.conn(ctx).Model(&models.StockTransferModel{}).
		Where("source_tenant_id = ? OR destination_tenant_id = ?", tenantID, tenantID)
	query = r.applySearchAndFilters(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForDay counts transfers dispatched by the source tenant on the given
// calendar day
func (r *GormStockTransferRepository) CountForDay(ctx context.Context, sourceTenantID uuid.UUID, day time.Time) (int64, error) {
	start, end := dayRange(day)
	var count int64
	if err := r.conn(ctx).
		Model(&models.StockTransferModel{}).
		Where("source_tenant_id = ? AND created_at >= ? AND created_at < ?", sourceTenantID, start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a transfer with its items
func (r *GormStockTransferRepository) Save(ctx context.Context, transfer *trade.StockTransfer) error {
	model := models.StockTransferModelFromDomain(transfer)
	return translateDBError(r.conn(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error)
}

func (r *GormStockTransferRepository) applySearchAndFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("reference ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "source_tenant_id":
			query = query.Where("source_tenant_id = ?", value)
		case "destination_tenant_id":
			query = query.Where("destination_tenant_id = ?", value)
		}
	}
	return query
}

// Ensure GormStockTransferRepository implements StockTransferRepository
var _ trade.StockTransferRepository = (*GormStockTransferRepository)(nil)
