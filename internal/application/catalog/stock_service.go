package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// LowStockNotifier publishes low-stock alerts. Implementations must be safe
// to call after the business transaction committed; failures are logged, not
// propagated.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, product *catalog.Product)
}

// StockService applies stock movements to products. All mutations load the
// product, change it through the aggregate and save it within the caller's
// transaction, so a failed movement rolls back with everything else.
type StockService struct {
	productRepo catalog.ProductRepository
}

// NewStockService creates a new StockService
func NewStockService(productRepo catalog.ProductRepository) *StockService {
	return &StockService{productRepo: productRepo}
}

// Product loads a product without changing it
func (s *StockService) Product(ctx context.Context, tenantID, productID uuid.UUID) (*catalog.Product, error) {
	return s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
}

// Deduct removes quantity from a product's stock and returns the updated
// product so the caller can collect low-stock alerts.
func (s *StockService) Deduct(ctx context.Context, tenantID, productID uuid.UUID, quantity decimal.Decimal) (*catalog.Product, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Deduct(quantity); err != nil {
		return nil, err
	}
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Receive adds quantity to stock and lifetime, optionally updating the
// purchase cost basis to the given price.
func (s *StockService) Receive(ctx context.Context, tenantID, productID uuid.UUID, quantity decimal.Decimal, newPurchasePrice *decimal.Decimal) (*catalog.Product, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Receive(quantity); err != nil {
		return nil, err
	}
	if newPurchasePrice != nil {
		if err := product.UpdatePurchasePrice(*newPurchasePrice); err != nil {
			return nil, err
		}
	}
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Restore returns previously deducted quantity to stock without counting it
// as a new inflow. Used when a transfer is cancelled.
func (s *StockService) Restore(ctx context.Context, tenantID, productID uuid.UUID, quantity decimal.Decimal) (*catalog.Product, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Restore(quantity); err != nil {
		return nil, err
	}
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
