package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/retailflow/backend/internal/domain/shared"
	"github.com/retailflow/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductStatus reflects the stock position of a product
type ProductStatus string

const (
	ProductStatusInStock    ProductStatus = "in_stock"
	ProductStatusLowStock   ProductStatus = "low_stock"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// Product is the tenant-scoped catalog aggregate. StockQuantity is the live
// sellable quantity; LifetimeQuantity accumulates every inflow (initial stock,
// order receipts, transfer receipts) and is the base for sell-through
// reporting. GlobalReference is the cross-tenant identity key used to match
// products between businesses during stock transfers.
type Product struct {
	shared.TenantAggregateRoot
	Name             string
	LocalReference   string
	GlobalReference  string
	PurchasePrice    decimal.Decimal
	SalePrice        decimal.Decimal
	StockQuantity    decimal.Decimal
	LifetimeQuantity decimal.Decimal
	AlertThreshold   decimal.Decimal
	CategoryID       *uuid.UUID
	SupplierID       *uuid.UUID
	Status           ProductStatus
}

// NewProduct creates a new product with its initial stock counted into the
// lifetime quantity.
func NewProduct(tenantID uuid.UUID, name string, purchasePrice, salePrice, initialStock decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if purchasePrice.IsNegative() || salePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product prices cannot be negative")
	}
	if initialStock.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Initial stock cannot be negative")
	}

	p := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		PurchasePrice:       valueobject.Round2(purchasePrice),
		SalePrice:           valueobject.Round2(salePrice),
		StockQuantity:       valueobject.Round2(initialStock),
		LifetimeQuantity:    valueobject.Round2(initialStock),
	}
	p.refreshStatus()
	return p, nil
}

// Deduct removes quantity from stock. Stock may never be driven negative by
// a sale or transfer; the caller aborts its transaction on error so no
// partial decrement survives.
func (p *Product) Deduct(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Deduction quantity must be positive")
	}
	remaining := p.StockQuantity.Sub(quantity)
	if remaining.IsNegative() {
		return shared.ErrInsufficientStock
	}
	p.StockQuantity = valueobject.Round2(remaining)
	p.refreshStatus()
	p.Touch()
	return nil
}

// Receive adds quantity to stock and to the lifetime quantity. Used by order
// receipt and transfer receipt.
func (p *Product) Receive(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Received quantity must be positive")
	}
	p.StockQuantity = valueobject.Round2(p.StockQuantity.Add(quantity))
	p.LifetimeQuantity = valueobject.Round2(p.LifetimeQuantity.Add(quantity))
	p.refreshStatus()
	p.Touch()
	return nil
}

// Restore reverses a prior deduction, returning quantity to stock without
// touching the lifetime counter. Used when a transfer is cancelled.
func (p *Product) Restore(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Restored quantity must be positive")
	}
	p.StockQuantity = valueobject.Round2(p.StockQuantity.Add(quantity))
	p.refreshStatus()
	p.Touch()
	return nil
}

// UpdatePurchasePrice sets a new purchase cost basis
func (p *Product) UpdatePurchasePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Purchase price cannot be negative")
	}
	p.PurchasePrice = valueobject.Round2(price)
	p.Touch()
	return nil
}

// SetReferences sets the local and global reference keys
func (p *Product) SetReferences(local, global string) {
	p.LocalReference = strings.TrimSpace(local)
	p.GlobalReference = strings.TrimSpace(global)
	p.Touch()
}

// SetAlertThreshold sets the low-stock alert threshold
func (p *Product) SetAlertThreshold(threshold decimal.Decimal) error {
	if threshold.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Alert threshold cannot be negative")
	}
	p.AlertThreshold = valueobject.Round2(threshold)
	p.refreshStatus()
	return nil
}

// IsBelowThreshold reports whether current stock triggers a low-stock alert
func (p *Product) IsBelowThreshold() bool {
	if p.AlertThreshold.IsZero() {
		return false
	}
	return p.StockQuantity.LessThanOrEqual(p.AlertThreshold)
}

func (p *Product) refreshStatus() {
	switch {
	case p.StockQuantity.LessThanOrEqual(decimal.Zero):
		p.Status = ProductStatusOutOfStock
	case p.IsBelowThreshold():
		p.Status = ProductStatusLowStock
	default:
		p.Status = ProductStatusInStock
	}
}
