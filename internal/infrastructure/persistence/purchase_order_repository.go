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

// GormPurchaseOrderRepository implements trade.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

func (r *GormPurchaseOrderRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByIDForTenant finds an order by ID within a tenant
func (r *GormPurchaseOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.conn(ctx).
		Preload("Items").
		Preload("Items.Receptions").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTransfer finds the destination order generated by a stock transfer
func (r *GormPurchaseOrderRepository) FindByTransfer(ctx context.Context, transferID uuid.UUID) (*trade.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
	if err := r.conn(ctx).
		Preload("Items").
		Preload("Items.Receptions").
		Where("transfer_id = ?", transferID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists orders for a tenant with filtering
func (r *GormPurchaseOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*trade.PurchaseOrder, error) {
	var orderModels []models.PurchaseOrderModel
	query := r.conn(ctx).Model(&models.PurchaseOrderModel{}).
		Preload("Items").
		Preload("Items.Receptions").
		Where("tenant_id = ?", tenantID)
	query = r.applySearchAndFilters(query, filter)
	query = applyOrdering(query, filter, ReferenceSortFields, "ordered_at")
	query = applyPagination(query, filter)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*trade.PurchaseOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders, nil
}

// CountForTenant counts orders for a tenant
func (r *GormPurchaseOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.conn(ctx).Model(&models.PurchaseOrderModel{}).Where("tenant_id = ?", tenantID)
	query = r.applySearchAndFilters(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForDay counts the tenant's orders created on the given calendar day
func (r *GormPurchaseOrderRepository) CountForDay(ctx context.Context, tenantID uuid.UUID, day time.Time) (int64, error) {
	start, end := dayRange(day)
	var count int64
	if err := r.conn(ctx).
		Model(&models.PurchaseOrderModel{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order with its items and receptions
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	model := models.PurchaseOrderModelFromDomain(order)
	return translateDBError(r.conn(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error)
}

// SaveWithLock updates an order guarded by the version it was loaded with.
// The guarded version bump locks the root row and detects a concurrent
// writer; the full save then persists items and receptions under that lock.
func (r *GormPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *trade.PurchaseOrder) error {
	result := r.conn(ctx).
		Model(&models.PurchaseOrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Update("version", order.Version+1)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrVersionConflict
	}

	model := models.PurchaseOrderModelFromDomain(order)
	model.Version = order.Version + 1
	return translateDBError(r.conn(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error)
}

func (r *GormPurchaseOrderRepository) applySearchAndFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("reference ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "transfer_linked":
			if value == true {
				query = query.Where("transfer_id IS NOT NULL")
			} else {
				query = query.Where("transfer_id IS NULL")
			}
		}
	}
	return query
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
