package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/trade"
	"github.com/retailflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPurchaseHistoryRepository implements the append-only stock inflow
// ledger using GORM
type GormPurchaseHistoryRepository struct {
	db *gorm.DB
}

// NewGormPurchaseHistoryRepository creates a new GormPurchaseHistoryRepository
func NewGormPurchaseHistoryRepository(db *gorm.DB) *GormPurchaseHistoryRepository {
	return &GormPurchaseHistoryRepository{db: db}
}

func (r *GormPurchaseHistoryRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByProduct lists inflow records for a product, most recent first
func (r *GormPurchaseHistoryRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID, filter shared.Filter) ([]*trade.PurchaseHistory, error) {
	var historyModels []models.PurchaseHistoryModel
	query := r.conn(ctx).Model(&models.PurchaseHistoryModel{}).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("received_at DESC")
	query = applyPagination(query, filter)

	if err := query.Find(&historyModels).Error; err != nil {
		return nil, err
	}

	records := make([]*trade.PurchaseHistory, len(historyModels))
	for i := range historyModels {
		records[i] = historyModels[i].ToDomain()
	}
	return records, nil
}

// CountByProduct counts inflow records for a product
func (r *GormPurchaseHistoryRepository) CountByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.conn(ctx).
		Model(&models.PurchaseHistoryModel{}).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save appends an inflow record. Records are immutable once written.
func (r *GormPurchaseHistoryRepository) Save(ctx context.Context, record *trade.PurchaseHistory) error {
	model := models.PurchaseHistoryModelFromDomain(record)
	return r.conn(ctx).Create(model).Error
}

// Ensure GormPurchaseHistoryRepository implements PurchaseHistoryRepository
var _ trade.PurchaseHistoryRepository = (*GormPurchaseHistoryRepository)(nil)
