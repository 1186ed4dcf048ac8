package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/partner"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAccountTransactionRepository implements the append-only account ledger
// using GORM
type GormAccountTransactionRepository struct {
	db *gorm.DB
}

// NewGormAccountTransactionRepository creates a new GormAccountTransactionRepository
func NewGormAccountTransactionRepository(db *gorm.DB) *GormAccountTransactionRepository {
	return &GormAccountTransactionRepository{db: db}
}

func (r *GormAccountTransactionRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Save appends a ledger entry. Entries are never updated, so Create is used
// rather than Save.
func (r *GormAccountTransactionRepository) Save(ctx context.Context, tx *partner.AccountTransaction) error {
	model := models.AccountTransactionModelFromDomain(tx)
	return r.conn(ctx).Create(model).Error
}

// FindByClient lists ledger entries for a client, most recent first
func (r *GormAccountTransactionRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]partner.AccountTransaction, error) {
	var txModels []models.AccountTransactionModel
	query := r.conn(ctx).Model(&models.AccountTransactionModel{}).
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
		Order("occurred_at DESC")
	query = applyPagination(query, filter)

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]partner.AccountTransaction, len(txModels))
	for i, model := range txModels {
		transactions[i] = *model.ToDomain()
	}
	return transactions, nil
}

// CountByClient counts ledger entries for a client
func (r *GormAccountTransactionRepository) CountByClient(ctx context.Context, tenantID, clientID uuid.UUID) (int64, error) {
	var count int64
	if err := r.conn(ctx).
		Model(&models.AccountTransactionModel{}).
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormAccountTransactionRepository implements AccountTransactionRepository
var _ partner.AccountTransactionRepository = (*GormAccountTransactionRepository)(nil)
