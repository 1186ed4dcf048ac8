package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/partner"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormClientAccountRepository implements partner.ClientAccountRepository
// using GORM. Balance mutations are single conditional UPDATE statements so
// concurrent debits can never drive a balance below the guard.
type GormClientAccountRepository struct {
	db *gorm.DB
}

// NewGormClientAccountRepository creates a new GormClientAccountRepository
func NewGormClientAccountRepository(db *gorm.DB) *GormClientAccountRepository {
	return &GormClientAccountRepository{db: db}
}

func (r *GormClientAccountRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindByClient finds the account for a client, ErrNotFound if absent
func (r *GormClientAccountRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) (*partner.ClientAccount, error) {
	var model models.ClientAccountModel
	if err := r.conn(ctx).
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an account record
func (r *GormClientAccountRepository) Save(ctx context.Context, account *partner.ClientAccount) error {
	model := models.ClientAccountModelFromDomain(account)
	return translateDBError(r.conn(ctx).Save(model).Error)
}

// IncrementBalance atomically adds amount to the account balance, creating
// the account on first use, and returns the post-operation balance.
func (r *GormClientAccountRepository) IncrementBalance(ctx context.Context, tenantID, clientID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	db := r.conn(ctx)
	result := db.Model(&models.ClientAccountModel{}).
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if result.RowsAffected == 0 {
		account, err := partner.NewClientAccount(tenantID, clientID)
		if err != nil {
			return decimal.Zero, err
		}
		account.Balance = amount
		if err := db.Create(models.ClientAccountModelFromDomain(account)).Error; err != nil {
			return decimal.Zero, err
		}
		return amount, nil
	}
	return r.currentBalance(ctx, tenantID, clientID)
}

// DecrementBalance atomically subtracts amount from the balance. Unless
// allowNegative is set, the update is guarded by balance >= amount and
// ErrInsufficientBalance is returned when the guard fails. Returns the
// post-operation balance.
func (r *GormClientAccountRepository) DecrementBalance(ctx context.Context, tenantID, clientID uuid.UUID, amount decimal.Decimal, allowNegative bool) (decimal.Decimal, error) {
	db := r.conn(ctx)
	query := db.Model(&models.ClientAccountModel{}).
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID)
	if !allowNegative {
		query = query.Where("balance >= ?", amount)
	}
	result := query.Updates(map[string]interface{}{
		"balance":    gorm.Expr("balance - ?", amount),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.ClientAccountModel{}).
			Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
			Count(&count).Error; err != nil {
			return decimal.Zero, err
		}
		if count == 0 {
			return decimal.Zero, shared.ErrNotFound
		}
		return decimal.Zero, shared.ErrInsufficientBalance
	}
	return r.currentBalance(ctx, tenantID, clientID)
}

func (r *GormClientAccountRepository) currentBalance(ctx context.Context, tenantID, clientID uuid.UUID) (decimal.Decimal, error) {
	var model models.ClientAccountModel
	if err := r.conn(ctx).
		Select("balance").
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
		First(&model).Error; err != nil {
		return decimal.Zero, err
	}
	return model.Balance, nil
}

// Ensure GormClientAccountRepository implements ClientAccountRepository
var _ partner.ClientAccountRepository = (*GormClientAccountRepository)(nil)
