package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/trade"
	"github.com/retailflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentRepository implements trade.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// FindBySale lists the payments recorded against a sale, oldest first
func (r *GormPaymentRepository) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]*trade.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.conn(ctx).
		Where("tenant_id = ? AND sale_id = ?", tenantID, saleID).
		Order("paid_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*trade.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToDomain()
	}
	return payments, nil
}

// Save appends a payment record
func (r *GormPaymentRepository) Save(ctx context.Context, payment *trade.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.conn(ctx).Create(model).Error
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ trade.PaymentRepository = (*GormPaymentRepository)(nil)
